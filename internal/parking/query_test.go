package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkly/internal/model"
)

func TestStats(t *testing.T) {
	zones := model.DefaultZoneConfigs()
	table := Generate(zones)

	stats := Stats(table, model.ZoneS)
	assert.Equal(t, model.ZoneStats{Zone: model.ZoneS, Total: 100, Available: 40}, stats)

	table, _, err := Book(table, alice(), "S-USR-1", model.BookingRequest{ArrivalTime: "10:00", DurationHours: 1}, bookedAt)
	require.NoError(t, err)
	table, _, err = Book(table, alice(), "S-USR-2", model.BookingRequest{ArrivalTime: "11:00", DurationHours: 3}, bookedAt)
	require.NoError(t, err)
	table, _, err = ConfirmArrival(table, alice(), "S-USR-2")
	require.NoError(t, err)

	stats = Stats(table, model.ZoneS)
	assert.Equal(t, 38, stats.Available)
	assert.Equal(t, 1, stats.Reserved)
	assert.Equal(t, 1, stats.Occupied)

	assert.Equal(t, model.ZoneStats{Zone: model.ZoneR, Total: 100, Available: 45}, Stats(table, model.ZoneR))
}

func TestStats_SumsToUserSlots(t *testing.T) {
	zones := model.DefaultZoneConfigs()
	table := Generate(zones)

	// walk every user slot through a different status mix
	for i, slot := range table.Slots(model.ZoneR) {
		if !slot.Bookable() {
			continue
		}
		var err error
		switch i % 3 {
		case 1:
			table, _, err = Book(table, alice(), slot.ID, model.BookingRequest{ArrivalTime: "12:00", DurationHours: 4}, bookedAt)
		case 2:
			table, _, err = Book(table, alice(), slot.ID, model.BookingRequest{ArrivalTime: "12:00", DurationHours: 4}, bookedAt)
			if err == nil {
				table, _, err = ConfirmArrival(table, alice(), slot.ID)
			}
		}
		require.NoError(t, err)

		for zone, cfg := range zones {
			stats := Stats(table, zone)
			assert.Equal(t, cfg.UserSlots, stats.Available+stats.Reserved+stats.Occupied)
			assert.Equal(t, cfg.TotalSlots, stats.Total)
		}
	}
}

func TestUserBookings(t *testing.T) {
	table := bookedTable(t, alice(), "R-USR-2")
	table, _, err := Book(table, alice(), "S-USR-9", model.BookingRequest{ArrivalTime: "16:00", DurationHours: 1}, bookedAt)
	require.NoError(t, err)
	bob := &model.User{Name: "Bob", VehicleNumber: "XYZ9", Email: "bob@example.com"}
	table, _, err = Book(table, bob, "S-USR-10", model.BookingRequest{ArrivalTime: "16:00", DurationHours: 1}, bookedAt)
	require.NoError(t, err)

	bookings := UserBookings(table, "ABC123")
	require.Len(t, bookings, 2)
	// S is listed before R
	assert.Equal(t, "S-USR-9", bookings[0].ID)
	assert.Equal(t, "R-USR-2", bookings[1].ID)

	assert.Len(t, UserBookings(table, "XYZ9"), 1)
	assert.NotNil(t, UserBookings(table, "NOPE"))
	assert.Empty(t, UserBookings(table, ""))
}
