package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkly/internal/errors"
	"parkly/internal/model"
)

var bookedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func alice() *model.User {
	return &model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "a@b.com"}
}

func bookedTable(t *testing.T, user *model.User, slotID string) Table {
	t.Helper()
	table, _, err := Book(Generate(model.DefaultZoneConfigs()), user, slotID,
		model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2}, bookedAt)
	require.NoError(t, err)
	return table
}

func TestBook(t *testing.T) {
	reserved := bookedTable(t, alice(), "S-USR-1")
	occupied, _, err := ConfirmArrival(reserved, alice(), "S-USR-1")
	require.NoError(t, err)

	tests := []struct {
		name          string
		table         Table
		user          *model.User
		slotID        string
		req           model.BookingRequest
		expectedError error
	}{
		{
			name:   "successful booking",
			table:  Generate(model.DefaultZoneConfigs()),
			user:   alice(),
			slotID: "S-USR-2",
			req:    model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2},
		},
		{
			name:          "no registered user",
			table:         Generate(model.DefaultZoneConfigs()),
			slotID:        "S-USR-1",
			req:           model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2},
			expectedError: errors.ErrUserNotRegistered,
		},
		{
			name:          "unknown slot",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "S-USR-999",
			req:           model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2},
			expectedError: errors.ErrSlotNotFound,
		},
		{
			name:          "employee slot",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "S-EMP-1",
			req:           model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2},
			expectedError: errors.ErrSlotNotBookable,
		},
		{
			name:          "emergency slot",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "R-EMG-1",
			req:           model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2},
			expectedError: errors.ErrSlotNotBookable,
		},
		{
			name:          "slot already reserved",
			table:         reserved,
			user:          alice(),
			slotID:        "S-USR-1",
			req:           model.BookingRequest{ArrivalTime: "15:00", DurationHours: 1},
			expectedError: errors.ErrSlotNotAvailable,
		},
		{
			name:          "slot occupied by someone else",
			table:         occupied,
			user:          &model.User{Name: "Bob", VehicleNumber: "XYZ9", Email: "bob@example.com"},
			slotID:        "S-USR-1",
			req:           model.BookingRequest{ArrivalTime: "15:00", DurationHours: 1},
			expectedError: errors.ErrSlotNotAvailable,
		},
		{
			name:          "blank arrival time",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "S-USR-1",
			req:           model.BookingRequest{ArrivalTime: "  ", DurationHours: 2},
			expectedError: errors.ErrInvalidArrivalTime,
		},
		{
			name:          "zero duration",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "S-USR-1",
			req:           model.BookingRequest{ArrivalTime: "14:00"},
			expectedError: errors.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.table.ETag()
			next, slot, err := Book(tt.table, tt.user, tt.slotID, tt.req, bookedAt)

			assert.Equal(t, before, tt.table.ETag(), "input table must not change")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, before, next.ETag())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.SlotStatusReserved, slot.Status)
			assert.Equal(t, tt.user.VehicleNumber, slot.OccupantVehicle)
			assert.Equal(t, tt.user.Name, slot.OccupantName)
			assert.Equal(t, tt.req.ArrivalTime, slot.ArrivalTime)
			assert.Equal(t, tt.req.DurationHours, slot.DurationHours)
			require.NotNil(t, slot.BookedAt)
			assert.True(t, bookedAt.Equal(*slot.BookedAt))

			stored, ok := next.Get(tt.slotID)
			require.True(t, ok)
			assert.Equal(t, slot, stored)
		})
	}
}

func TestConfirmArrival(t *testing.T) {
	tests := []struct {
		name          string
		table         Table
		user          *model.User
		slotID        string
		expectedError error
	}{
		{
			name:   "reserved slot",
			table:  bookedTable(t, alice(), "S-USR-3"),
			user:   alice(),
			slotID: "S-USR-3",
		},
		{
			name:          "available slot",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "S-USR-3",
			expectedError: errors.ErrSlotNotReserved,
		},
		{
			name:          "booked by another vehicle",
			table:         bookedTable(t, alice(), "S-USR-3"),
			user:          &model.User{Name: "Bob", VehicleNumber: "XYZ9", Email: "bob@example.com"},
			slotID:        "S-USR-3",
			expectedError: errors.ErrNotSlotOwner,
		},
		{
			name:          "no registered user",
			table:         bookedTable(t, alice(), "S-USR-3"),
			slotID:        "S-USR-3",
			expectedError: errors.ErrUserNotRegistered,
		},
		{
			name:          "staff slot",
			table:         Generate(model.DefaultZoneConfigs()),
			user:          alice(),
			slotID:        "R-EMP-1",
			expectedError: errors.ErrSlotNotBookable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.table.ETag()
			next, slot, err := ConfirmArrival(tt.table, tt.user, tt.slotID)

			assert.Equal(t, before, tt.table.ETag())
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, before, next.ETag())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.SlotStatusOccupied, slot.Status)
			assert.Equal(t, "14:00", slot.ArrivalTime)
			assert.Equal(t, "ABC123", slot.OccupantVehicle)
		})
	}

	t.Run("twice", func(t *testing.T) {
		table, _, err := ConfirmArrival(bookedTable(t, alice(), "S-USR-3"), alice(), "S-USR-3")
		require.NoError(t, err)
		_, _, err = ConfirmArrival(table, alice(), "S-USR-3")
		assert.ErrorIs(t, err, errors.ErrSlotNotReserved)
	})
}

func TestCancel(t *testing.T) {
	t.Run("available slot is rejected", func(t *testing.T) {
		table := Generate(model.DefaultZoneConfigs())
		next, _, err := Cancel(table, alice(), "S-USR-1")
		assert.ErrorIs(t, err, errors.ErrSlotNotBooked)
		assert.Equal(t, table.ETag(), next.ETag())
	})

	t.Run("another vehicle's booking", func(t *testing.T) {
		table := bookedTable(t, alice(), "S-USR-1")
		_, _, err := Cancel(table, &model.User{Name: "Bob", VehicleNumber: "XYZ9", Email: "bob@example.com"}, "S-USR-1")
		assert.ErrorIs(t, err, errors.ErrNotSlotOwner)
	})

	t.Run("reserved slot", func(t *testing.T) {
		table := bookedTable(t, alice(), "R-USR-5")
		next, slot, err := Cancel(table, alice(), "R-USR-5")
		require.NoError(t, err)
		assert.Equal(t, model.SlotStatusAvailable, slot.Status)
		assert.False(t, slot.HasBooking())
		assert.Equal(t, Generate(model.DefaultZoneConfigs()), next)
	})
}

func TestTransitions_RoundTrip(t *testing.T) {
	zones := model.DefaultZoneConfigs()
	initial := Generate(zones)

	for _, slot := range initial.All() {
		if !slot.Bookable() {
			continue
		}
		table, _, err := Book(initial, alice(), slot.ID, model.BookingRequest{ArrivalTime: "08:15", DurationHours: 8}, bookedAt)
		require.NoError(t, err, slot.ID)
		table, _, err = ConfirmArrival(table, alice(), slot.ID)
		require.NoError(t, err, slot.ID)
		table, released, err := Cancel(table, alice(), slot.ID)
		require.NoError(t, err, slot.ID)

		assert.Equal(t, slot, released)
		assert.Equal(t, initial, table)
	}
}

func TestTransitions_Scenario(t *testing.T) {
	table := Generate(model.ZoneConfigs{
		model.ZoneS: {TotalSlots: 40, UserSlots: 40},
	})

	user, err := NormalizeRegistration(model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", user.VehicleNumber)
	assert.Equal(t, "a@b.com", user.Email)

	table, slot, err := Book(table, &user, "S-USR-1", model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2}, bookedAt)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusReserved, slot.Status)
	assert.Equal(t, "ABC123", slot.OccupantVehicle)

	table, slot, err = ConfirmArrival(table, &user, "S-USR-1")
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusOccupied, slot.Status)

	_, slot, err = Cancel(table, &user, "S-USR-1")
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusAvailable, slot.Status)
	assert.Empty(t, slot.OccupantName)
	assert.Empty(t, slot.OccupantVehicle)
	assert.Empty(t, slot.ArrivalTime)
	assert.Zero(t, slot.DurationHours)
	assert.Nil(t, slot.BookedAt)
}

func TestBook_DoesNotShareSlices(t *testing.T) {
	table := Generate(model.DefaultZoneConfigs())
	next, _, err := Book(table, alice(), "S-USR-1", model.BookingRequest{ArrivalTime: "14:00", DurationHours: 2}, bookedAt)
	require.NoError(t, err)

	original, _ := table.Get("S-USR-1")
	assert.Equal(t, model.SlotStatusAvailable, original.Status)

	// zones without a change stay shared
	assert.Same(t, &table[model.ZoneR][0], &next[model.ZoneR][0])
}
