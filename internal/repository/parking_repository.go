package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"parkly/internal/errors"
	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/storage"
)

// Record names of a session's persisted state.
const (
	UserRecord  = "parking_user"
	SlotsRecord = "parking_slots"
)

// ParkingRepository defines per-session persistence of the user and slot table.
// Load methods return storage.ErrNotFound when nothing is stored and
// *errors.PersistenceReadError when the stored record cannot be decoded.
type ParkingRepository interface {
	LoadUser(ctx context.Context, sessionID string) (*model.User, error)
	SaveUser(ctx context.Context, sessionID string, user model.User) error
	LoadSlots(ctx context.Context, sessionID string) (parking.Table, error)
	SaveSlots(ctx context.Context, sessionID string, table parking.Table) error
	DeleteSession(ctx context.Context, sessionID string) error
}

type parkingRepository struct {
	store storage.Store
}

// NewParkingRepository creates a repository over a key-value store.
func NewParkingRepository(store storage.Store) ParkingRepository {
	return &parkingRepository{store: store}
}

// RecordKey returns the storage key of a session record.
func RecordKey(sessionID, record string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, record)
}

func (r *parkingRepository) LoadUser(ctx context.Context, sessionID string) (*model.User, error) {
	key := RecordKey(sessionID, UserRecord)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &errors.PersistenceReadError{Key: key, Err: err}
	}
	return &user, nil
}

func (r *parkingRepository) SaveUser(ctx context.Context, sessionID string, user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.store.Set(ctx, RecordKey(sessionID, UserRecord), payload)
}

func (r *parkingRepository) LoadSlots(ctx context.Context, sessionID string) (parking.Table, error) {
	key := RecordKey(sessionID, SlotsRecord)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var table parking.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, &errors.PersistenceReadError{Key: key, Err: err}
	}
	return table, nil
}

func (r *parkingRepository) SaveSlots(ctx context.Context, sessionID string, table parking.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal slots: %w", err)
	}
	return r.store.Set(ctx, RecordKey(sessionID, SlotsRecord), payload)
}

// DeleteSession removes both records of a session.
func (r *parkingRepository) DeleteSession(ctx context.Context, sessionID string) error {
	for _, record := range []string{UserRecord, SlotsRecord} {
		if err := r.store.Delete(ctx, RecordKey(sessionID, record)); err != nil {
			return fmt.Errorf("delete %s: %w", record, err)
		}
	}
	return nil
}
