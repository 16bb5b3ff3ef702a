package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkly/internal/errors"
	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/storage"
)

func TestParkingRepository_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewParkingRepository(storage.NewMemoryStore())

	_, err := repo.LoadUser(ctx, "s1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	user := model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "alice@example.com"}
	require.NoError(t, repo.SaveUser(ctx, "s1", user))

	loaded, err := repo.LoadUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, user, *loaded)

	_, err = repo.LoadUser(ctx, "s2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestParkingRepository_SlotsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewParkingRepository(storage.NewMemoryStore())

	table := parking.Generate(model.DefaultZoneConfigs())
	user := &model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "alice@example.com"}
	table, _, err := parking.Book(table, user, "R-USR-4", model.BookingRequest{ArrivalTime: "10:30", DurationHours: 3}, testTime)
	require.NoError(t, err)

	require.NoError(t, repo.SaveSlots(ctx, "s1", table))
	loaded, err := repo.LoadSlots(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, table.ETag(), loaded.ETag())
	assert.NoError(t, loaded.Validate(model.DefaultZoneConfigs()))
	slot, ok := loaded.Get("R-USR-4")
	require.True(t, ok)
	assert.Equal(t, model.SlotStatusReserved, slot.Status)
	require.NotNil(t, slot.BookedAt)
	assert.True(t, testTime.Equal(*slot.BookedAt))
}

func TestParkingRepository_CorruptRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewParkingRepository(store)

	require.NoError(t, store.Set(ctx, RecordKey("s1", UserRecord), []byte("{not json")))
	require.NoError(t, store.Set(ctx, RecordKey("s1", SlotsRecord), []byte(`["wrong shape"]`)))

	var readErr *errors.PersistenceReadError

	_, err := repo.LoadUser(ctx, "s1")
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "session:s1:parking_user", readErr.Key)

	_, err = repo.LoadSlots(ctx, "s1")
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "session:s1:parking_slots", readErr.Key)
}

func TestParkingRepository_DeleteSession(t *testing.T) {
	ctx := context.Background()
	repo := NewParkingRepository(storage.NewMemoryStore())

	require.NoError(t, repo.SaveUser(ctx, "s1", model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "a@b.com"}))
	require.NoError(t, repo.SaveSlots(ctx, "s1", parking.Generate(model.DefaultZoneConfigs())))
	require.NoError(t, repo.SaveUser(ctx, "s2", model.User{Name: "Bob", VehicleNumber: "XYZ9", Email: "b@c.com"}))

	require.NoError(t, repo.DeleteSession(ctx, "s1"))

	_, err := repo.LoadUser(ctx, "s1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.LoadSlots(ctx, "s1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.LoadUser(ctx, "s2")
	assert.NoError(t, err)
}

var testTime = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
