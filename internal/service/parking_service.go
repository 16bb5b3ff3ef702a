package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parkly/internal/errors"
	"parkly/internal/events"
	"parkly/internal/metrics"
	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/repository"
	"parkly/internal/storage"
)

// Operation names used for metrics.
const (
	OpBook           = "book"
	OpConfirmArrival = "confirm_arrival"
	OpCancel         = "cancel"
)

// Snapshot is the full state a client renders from.
type Snapshot struct {
	User       *model.User   `json:"user"`
	ActiveZone model.Zone    `json:"activeZone"`
	Slots      parking.Table `json:"slots"`
	ETag       string        `json:"etag"`
}

// ParkingService is the per-session parking state store. Every call runs to
// completion under the session's lock before the next call on that session
// starts.
type ParkingService interface {
	Zones() model.ZoneConfigs
	OpenSession(ctx context.Context, sessionID string) (*Snapshot, error)
	Snapshot(ctx context.Context, sessionID string) (*Snapshot, error)
	Reset(ctx context.Context, sessionID string) error

	Register(ctx context.Context, sessionID string, req model.RegistrationRequest) (*model.User, error)
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)

	Slots(ctx context.Context, sessionID string) (parking.Table, string, error)
	Slot(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error)
	Book(ctx context.Context, sessionID, slotID string, req model.BookingRequest, ifMatch string) (*model.ParkingSlot, error)
	ConfirmArrival(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error)
	Cancel(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error)

	ZoneStats(ctx context.Context, sessionID string, zone model.Zone) (model.ZoneStats, error)
	UserBookings(ctx context.Context, sessionID string) ([]model.ParkingSlot, error)
	SetActiveZone(ctx context.Context, sessionID string, zone model.Zone) error
	ActiveZone(sessionID string) model.Zone
}

// Option customizes the parking service.
type Option func(*parkingService)

// WithClock overrides the clock used for booking timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *parkingService) {
		s.now = now
	}
}

type parkingService struct {
	repo      repository.ParkingRepository
	zones     model.ZoneConfigs
	metrics   metrics.Recorder
	publisher events.Publisher
	now       func() time.Time
	// Mutex map for per-session locking
	sessionMutexes sync.Map
	// Transient UI focus per session, never persisted
	activeZones sync.Map
}

// NewParkingService creates a new parking service.
func NewParkingService(
	repo repository.ParkingRepository,
	zones model.ZoneConfigs,
	recorder metrics.Recorder,
	publisher events.Publisher,
	opts ...Option,
) ParkingService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	s := &parkingService{
		repo:      repo,
		zones:     zones,
		metrics:   recorder,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lock acquires the mutex of a session and returns its release func.
func (s *parkingService) lock(sessionID string) func() {
	value, _ := s.sessionMutexes.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *parkingService) Zones() model.ZoneConfigs {
	return s.zones
}

// OpenSession loads the session state, generating the slot table on first use.
func (s *parkingService) OpenSession(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.Snapshot(ctx, sessionID)
}

func (s *parkingService) Snapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	user, err := s.loadUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		User:       user,
		ActiveZone: s.ActiveZone(sessionID),
		Slots:      table,
		ETag:       table.ETag(),
	}, nil
}

// Reset removes everything stored for the session, including its in-memory
// lock and active zone.
func (s *parkingService) Reset(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.activeZones.Delete(sessionID)
	s.sessionMutexes.Delete(sessionID)
	slog.Info("Session reset", "session_id", sessionID)
	return nil
}

// Register validates and stores the session's user, replacing any previous one.
func (s *parkingService) Register(ctx context.Context, sessionID string, req model.RegistrationRequest) (*model.User, error) {
	user, err := parking.NormalizeRegistration(req)
	if err != nil {
		s.metrics.IncRegistration(metrics.ResultFailure)
		return nil, err
	}

	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.repo.SaveUser(ctx, sessionID, user); err != nil {
		s.metrics.IncRegistration(metrics.ResultFailure)
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.metrics.IncRegistration(metrics.ResultSuccess)
	return &user, nil
}

// CurrentUser returns the registered user, or nil when there is none.
func (s *parkingService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	unlock := s.lock(sessionID)
	defer unlock()
	return s.loadUser(ctx, sessionID)
}

func (s *parkingService) Slots(ctx context.Context, sessionID string) (parking.Table, string, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	return table, table.ETag(), nil
}

func (s *parkingService) Slot(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error) {
	table, _, err := s.Slots(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	slot, ok := table.Get(slotID)
	if !ok {
		return nil, errors.ErrSlotNotFound
	}
	return &slot, nil
}

// Book reserves a slot for the session's user. A non-empty ifMatch must equal
// the current table etag or the booking is rejected.
func (s *parkingService) Book(ctx context.Context, sessionID, slotID string, req model.BookingRequest, ifMatch string) (*model.ParkingSlot, error) {
	return s.transition(ctx, sessionID, OpBook, events.TypeBooked, func(t parking.Table, user *model.User) (parking.Table, model.ParkingSlot, error) {
		if ifMatch != "" && ifMatch != t.ETag() {
			return t, model.ParkingSlot{}, errors.ErrTableVersionMismatch
		}
		return parking.Book(t, user, slotID, req, s.now())
	})
}

func (s *parkingService) ConfirmArrival(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error) {
	return s.transition(ctx, sessionID, OpConfirmArrival, events.TypeArrived, func(t parking.Table, user *model.User) (parking.Table, model.ParkingSlot, error) {
		return parking.ConfirmArrival(t, user, slotID)
	})
}

func (s *parkingService) Cancel(ctx context.Context, sessionID, slotID string) (*model.ParkingSlot, error) {
	return s.transition(ctx, sessionID, OpCancel, events.TypeCancelled, func(t parking.Table, user *model.User) (parking.Table, model.ParkingSlot, error) {
		return parking.Cancel(t, user, slotID)
	})
}

func (s *parkingService) ZoneStats(ctx context.Context, sessionID string, zone model.Zone) (model.ZoneStats, error) {
	if _, ok := s.zones[zone]; !ok {
		return model.ZoneStats{}, errors.ErrUnknownZone
	}
	table, _, err := s.Slots(ctx, sessionID)
	if err != nil {
		return model.ZoneStats{}, err
	}
	return parking.Stats(table, zone), nil
}

// UserBookings lists the slots booked by the session's user. Without a user
// the list is empty.
func (s *parkingService) UserBookings(ctx context.Context, sessionID string) ([]model.ParkingSlot, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	user, err := s.loadUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []model.ParkingSlot{}, nil
	}
	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return parking.UserBookings(table, user.VehicleNumber), nil
}

func (s *parkingService) SetActiveZone(ctx context.Context, sessionID string, zone model.Zone) error {
	if _, ok := s.zones[zone]; !ok {
		return errors.ErrUnknownZone
	}
	s.activeZones.Store(sessionID, zone)
	return nil
}

func (s *parkingService) ActiveZone(sessionID string) model.Zone {
	if value, ok := s.activeZones.Load(sessionID); ok {
		return value.(model.Zone)
	}
	return model.ZoneS
}

type transitionFunc func(parking.Table, *model.User) (parking.Table, model.ParkingSlot, error)

// transition runs one load-mutate-save cycle. The new table is persisted
// before the updated slot is returned; events are published afterwards.
func (s *parkingService) transition(ctx context.Context, sessionID, operation, eventType string, fn transitionFunc) (*model.ParkingSlot, error) {
	slot, err := s.applyTransition(ctx, sessionID, fn)
	s.metrics.IncTransition(operation, metrics.Result(err))
	if err != nil {
		return nil, err
	}

	event := events.SlotEvent{
		Type:       eventType,
		SessionID:  sessionID,
		Slot:       *slot,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish slot event", "session_id", sessionID, "slot_id", slot.ID, "type", eventType, "error", err)
	}
	return slot, nil
}

func (s *parkingService) applyTransition(ctx context.Context, sessionID string, fn transitionFunc) (*model.ParkingSlot, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	user, err := s.loadUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, slot, err := fn(table, user)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSlots(ctx, sessionID, next); err != nil {
		slog.Error("Failed to persist slot table", "session_id", sessionID, "slot_id", slot.ID, "error", err)
		return nil, fmt.Errorf("save slots: %w", err)
	}
	return &slot, nil
}

// loadUser returns the stored user. A missing or unreadable record means
// there is no user.
func (s *parkingService) loadUser(ctx context.Context, sessionID string) (*model.User, error) {
	user, err := s.repo.LoadUser(ctx, sessionID)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	var readErr *errors.PersistenceReadError
	if errors.As(err, &readErr) {
		s.metrics.IncPersistenceReadError(repository.UserRecord)
		slog.Warn("Ignoring unreadable user record", "session_id", sessionID, "error", err)
		return nil, nil
	}
	return nil, fmt.Errorf("load user: %w", err)
}

// loadTable returns the stored slot table. A missing, unreadable or
// structurally invalid table is replaced with a freshly generated one.
func (s *parkingService) loadTable(ctx context.Context, sessionID string) (parking.Table, error) {
	table, err := s.repo.LoadSlots(ctx, sessionID)
	var readErr *errors.PersistenceReadError
	switch {
	case err == nil:
		verr := table.Validate(s.zones)
		if verr == nil {
			return table, nil
		}
		s.metrics.IncPersistenceReadError(repository.SlotsRecord)
		slog.Warn("Regenerating invalid slot table", "session_id", sessionID, "error", verr)
	case errors.As(err, &readErr):
		s.metrics.IncPersistenceReadError(repository.SlotsRecord)
		slog.Warn("Regenerating unreadable slot table", "session_id", sessionID, "error", err)
	case errors.Is(err, storage.ErrNotFound):
		slog.Debug("Generating slot table", "session_id", sessionID)
	default:
		return nil, fmt.Errorf("load slots: %w", err)
	}

	table = parking.Generate(s.zones)
	s.metrics.IncTableGenerated()
	if err := s.repo.SaveSlots(ctx, sessionID, table); err != nil {
		return nil, fmt.Errorf("save generated slots: %w", err)
	}
	return table, nil
}
