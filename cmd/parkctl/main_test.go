package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/repository"
	"parkly/internal/storage"
)

func TestInspect(t *testing.T) {
	ctx := context.Background()
	zones := model.DefaultZoneConfigs()
	repo := repository.NewParkingRepository(storage.NewMemoryStore())

	report, err := inspect(ctx, repo, zones, "s1")
	require.NoError(t, err)
	assert.Nil(t, report.User)
	assert.Empty(t, report.Stats)
	assert.Empty(t, report.Bookings)

	user := model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "a@b.com"}
	require.NoError(t, repo.SaveUser(ctx, "s1", user))
	table, _, err := parking.Book(parking.Generate(zones), &user, "R-USR-9",
		model.BookingRequest{ArrivalTime: "18:00", DurationHours: 1}, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.SaveSlots(ctx, "s1", table))

	report, err = inspect(ctx, repo, zones, "s1")
	require.NoError(t, err)
	require.NotNil(t, report.User)
	require.Len(t, report.Stats, 2)
	assert.Equal(t, model.ZoneS, report.Stats[0].Zone)
	assert.Equal(t, 1, report.Stats[1].Reserved)
	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "R-USR-9", report.Bookings[0].ID)
	assert.Equal(t, table.ETag(), report.ETag)
}

func TestGenerateCmd(t *testing.T) {
	var out bytes.Buffer
	e := &env{zones: model.DefaultZoneConfigs(), out: &out}

	require.NoError(t, (&GenerateCmd{Zone: "R"}).Run(e))
	var slots []model.ParkingSlot
	require.NoError(t, json.Unmarshal(out.Bytes(), &slots))
	assert.Len(t, slots, 100)
	assert.Equal(t, "R-EMP-1", slots[0].ID)

	assert.Error(t, (&GenerateCmd{Zone: "Q"}).Run(e))
}
