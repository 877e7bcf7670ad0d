// Package release owns the load lifecycle: DRAFT -> VALID -> USED, with
// VOID as the terminal operator override, and the one-time PIN-gated
// confirmation protocol behind it. No other component writes status, pin
// or log rows.
//
// There is deliberately no lockout on repeated PIN attempts: the
// unguessable verification token gates access to a single load, so the
// 6-digit PIN is a liveness check rather than the secret. Rate limiting
// remains a hardening candidate.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/idgen"
	"github.com/dthlogistics/release-portal/internal/metrics"
	"github.com/dthlogistics/release-portal/internal/notify"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type LoadRepository interface {
	Create(ctx context.Context, load *repository.Load) (*repository.Load, error)
	GetByID(ctx context.Context, id int64) (*repository.Load, error)
	GetByToken(ctx context.Context, token string) (*repository.LoadWithDispatcher, error)
	GetAll(ctx context.Context) ([]*repository.Load, error)
	GetActive(ctx context.Context) ([]*repository.Load, error)
	Update(ctx context.Context, load *repository.Load) (*repository.Load, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*repository.Load, error)
	MarkUsedTx(ctx context.Context, tx db.Tx, id int64) (bool, error)
	DeleteTx(ctx context.Context, tx db.Tx, id int64) error
	LoadIDExists(ctx context.Context, loadID string) (bool, error)
}

type LogRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.LoadLog) error
	GetLastConfirmation(ctx context.Context, loadID int64) (*repository.Confirmation, error)
	GetReleaseLogs(ctx context.Context) ([]*repository.ReleaseLogEntry, error)
	DeleteByLoadTx(ctx context.Context, tx db.Tx, loadID int64) error
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

type Cache interface {
	Get(token string) (*repository.Load, bool)
	Set(load *repository.Load)
	Delete(token string)
}

type Notifier interface {
	Dispatch(n notify.Notification)
}

// Deps wires the service. Everything is injected; the service holds no
// global state.
type Deps struct {
	DB       db.DB
	Loads    LoadRepository
	Logs     LogRepository
	Outbox   OutboxRepository
	Cache    Cache
	Notifier Notifier
	Logger   *zap.Logger

	EventTopic    string
	DispatchEmail string
	// StrictTransitions confines the administrative status override to
	// legal lifecycle transitions instead of accepting any status.
	StrictTransitions bool
	Location          *time.Location

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{deps: deps}
}

// CreateLoad creates a DRAFT load with generated identifier, PIN and
// verification token, then emails the release sheet to the creator.
func (s *Service) CreateLoad(ctx context.Context, payload LoadPayload, actingUser *repository.User) (*repository.Load, error) {
	if payload.PickupLocation == "" {
		return nil, validationError("pickupLocation is required")
	}

	loadID := payload.LoadID
	if loadID == "" {
		var err error
		loadID, err = idgen.GenerateLoadID(ctx, s.deps.Loads.LoadIDExists)
		if err != nil {
			if errors.Is(err, idgen.ErrGenerationExhausted) {
				return nil, &Error{Kind: KindGenerationExhausted, Status: 500, Message: "Failed to generate a unique load id"}
			}
			return nil, err
		}
	}

	customFields, err := marshalCustomFields(payload.CustomFields)
	if err != nil {
		return nil, validationError("customFields must be JSON-serializable")
	}

	now := s.deps.Now().UTC()
	load := &repository.Load{
		LoadID:            loadID,
		PickupLocation:    payload.PickupLocation,
		VehicleYear:       payload.VehicleYear,
		VehicleMake:       payload.VehicleMake,
		VehicleModel:      payload.VehicleModel,
		VinLast6:          payload.VinLast6,
		CarrierName:       payload.CarrierName,
		DriverName:        payload.DriverName,
		DriverLicenseInfo: payload.DriverLicenseInfo,
		DriverPhoto:       payload.DriverPhoto,
		TruckPlate:        payload.TruckPlate,
		TrailerPlate:      payload.TrailerPlate,
		PickupWindowStart: payload.PickupWindowStart,
		PickupWindowEnd:   payload.PickupWindowEnd,
		PickupInfo:        payload.PickupInfo,
		PickupContact:     payload.PickupContact,
		PIN:               idgen.GeneratePIN(6),
		VerificationToken: idgen.GenerateToken(),
		Status:            repository.StatusDraft,
		CustomFields:      customFields,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if actingUser != nil {
		load.CreatedBy = &actingUser.ID
	}

	created, err := s.deps.Loads.Create(ctx, load)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_load").Inc()
		return nil, err
	}

	s.deps.Cache.Set(created)
	s.publishEvent(ctx, "LOAD_CREATED", created, "")

	if actingUser != nil && actingUser.Email != "" {
		s.deps.Notifier.Dispatch(notify.Notification{
			Event:         notify.EventCreated,
			Load:          *created,
			Recipient:     actingUser.Email,
			RecipientName: actingUser.FullName,
		})
	}

	metrics.LoadsCreatedTotal.Inc()
	s.deps.Logger.Info("load created",
		zap.String("load_id", created.LoadID),
		zap.Int64("id", created.ID))
	return created, nil
}

// GetLoadByID returns the load, augmented with its latest confirmation
// entry once it has been released.
func (s *Service) GetLoadByID(ctx context.Context, id int64) (*LoadDetails, error) {
	load, err := s.deps.Loads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Load not found")
		}
		return nil, err
	}

	details := &LoadDetails{Load: load}
	if load.Status == repository.StatusUsed {
		confirmation, err := s.deps.Logs.GetLastConfirmation(ctx, load.ID)
		if err != nil {
			return nil, err
		}
		details.Confirmation = confirmation
	}
	return details, nil
}

func (s *Service) GetLoads(ctx context.Context) ([]*repository.Load, error) {
	return s.deps.Loads.GetAll(ctx)
}

// GetLoadByToken serves the public gateway read. Active loads come from
// the token cache; the dispatcher join fields are only populated on a
// cache miss and are stripped by the gateway anyway.
func (s *Service) GetLoadByToken(ctx context.Context, token string) (*repository.LoadWithDispatcher, error) {
	if cached, ok := s.deps.Cache.Get(token); ok {
		return &repository.LoadWithDispatcher{Load: *cached}, nil
	}

	load, err := s.deps.Loads.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Invalid verification link")
		}
		return nil, err
	}
	s.deps.Cache.Set(&load.Load)
	return load, nil
}

func (s *Service) GetReleaseLogs(ctx context.Context) ([]*repository.ReleaseLogEntry, error) {
	return s.deps.Logs.GetReleaseLogs(ctx)
}

// UpdateLoad overwrites the editable attributes of a load.
func (s *Service) UpdateLoad(ctx context.Context, id int64, payload LoadPayload) (*repository.Load, error) {
	if payload.PickupLocation == "" {
		return nil, validationError("pickupLocation is required")
	}

	customFields, err := marshalCustomFields(payload.CustomFields)
	if err != nil {
		return nil, validationError("customFields must be JSON-serializable")
	}

	updated, err := s.deps.Loads.Update(ctx, &repository.Load{
		ID:                id,
		LoadID:            payload.LoadID,
		PickupLocation:    payload.PickupLocation,
		VehicleYear:       payload.VehicleYear,
		VehicleMake:       payload.VehicleMake,
		VehicleModel:      payload.VehicleModel,
		VinLast6:          payload.VinLast6,
		CarrierName:       payload.CarrierName,
		DriverName:        payload.DriverName,
		DriverLicenseInfo: payload.DriverLicenseInfo,
		TruckPlate:        payload.TruckPlate,
		TrailerPlate:      payload.TrailerPlate,
		PickupWindowStart: payload.PickupWindowStart,
		PickupWindowEnd:   payload.PickupWindowEnd,
		PickupInfo:        payload.PickupInfo,
		PickupContact:     payload.PickupContact,
		CustomFields:      customFields,
	})
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Load not found")
		}
		return nil, err
	}

	s.deps.Cache.Set(updated)
	return updated, nil
}

// Validate promotes a load to VALID and notifies the dispatch address.
func (s *Service) Validate(ctx context.Context, id int64) (*repository.Load, error) {
	load, err := s.deps.Loads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Load not found")
		}
		return nil, err
	}
	if load.Status == repository.StatusUsed || load.Status == repository.StatusVoid {
		return nil, protocolError(KindNotReleasable, fmt.Sprintf("Cannot validate: load is %s", load.Status))
	}

	validated, err := s.deps.Loads.UpdateStatus(ctx, id, repository.StatusValid)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("validate_load").Inc()
		return nil, err
	}

	s.deps.Cache.Set(validated)
	metrics.LoadsValidatedTotal.Inc()

	if s.deps.DispatchEmail != "" {
		s.deps.Notifier.Dispatch(notify.Notification{
			Event:     notify.EventValidated,
			Load:      *validated,
			Recipient: s.deps.DispatchEmail,
		})
	}

	s.deps.Logger.Info("load validated", zap.String("load_id", validated.LoadID))
	return validated, nil
}

// Void sets the terminal override from any state, including USED: voiding
// an already-released load is allowed so operators can correct mistakes.
func (s *Service) Void(ctx context.Context, id int64) (*repository.Load, error) {
	voided, err := s.deps.Loads.UpdateStatus(ctx, id, repository.StatusVoid)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Load not found")
		}
		return nil, err
	}

	s.deps.Cache.Delete(voided.VerificationToken)
	s.deps.Logger.Info("load voided", zap.String("load_id", voided.LoadID))
	return voided, nil
}

var legalTransitions = map[string][]string{
	repository.StatusDraft: {repository.StatusValid, repository.StatusVoid},
	repository.StatusValid: {repository.StatusVoid},
}

// UpdateStatus is the administrative override. By default it accepts any
// status; with StrictTransitions it only allows legal lifecycle moves
// (USED stays reachable only through ConfirmRelease).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*repository.Load, error) {
	switch status {
	case repository.StatusDraft, repository.StatusValid, repository.StatusUsed, repository.StatusVoid:
	default:
		return nil, validationError(fmt.Sprintf("Unknown status %q", status))
	}

	if s.deps.StrictTransitions {
		current, err := s.deps.Loads.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrLoadNotFound) {
				return nil, notFoundError("Load not found")
			}
			return nil, err
		}
		if !transitionAllowed(current.Status, status) {
			return nil, protocolError(KindNotReleasable,
				fmt.Sprintf("Illegal transition %s -> %s", current.Status, status))
		}
	}

	updated, err := s.deps.Loads.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return nil, notFoundError("Load not found")
		}
		return nil, err
	}

	if status == repository.StatusUsed || status == repository.StatusVoid {
		s.deps.Cache.Delete(updated.VerificationToken)
	} else {
		s.deps.Cache.Set(updated)
	}
	return updated, nil
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ConfirmRelease is the one-time confirmation protocol. The check order
// matters: replay detection comes before window and PIN checks so a
// dealer retrying after success sees "already used" instead of a PIN
// error. The status flip, the audit row and the outbox event commit as
// one transaction; the conditional update closes the double-release race.
func (s *Service) ConfirmRelease(ctx context.Context, req ConfirmRequest) (*repository.Load, error) {
	load, err := s.deps.Loads.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			metrics.ConfirmFailuresTotal.WithLabelValues("not_found").Inc()
			return nil, notFoundError("Invalid verification link")
		}
		return nil, err
	}

	if load.Status == repository.StatusUsed {
		metrics.ConfirmFailuresTotal.WithLabelValues("already_used").Inc()
		return nil, protocolError(KindAlreadyUsed, "ALREADY USED")
	}
	if load.Status != repository.StatusValid {
		metrics.ConfirmFailuresTotal.WithLabelValues("not_releasable").Inc()
		return nil, protocolError(KindNotReleasable, "DO NOT RELEASE - Status is not VALID")
	}

	now := s.deps.Now().UTC()
	if load.PickupWindowStart != nil && now.Before(*load.PickupWindowStart) {
		metrics.ConfirmFailuresTotal.WithLabelValues("not_yet_active").Inc()
		startTime := load.PickupWindowStart.In(s.deps.Location).Format("Jan 2, 2006, 3:04 PM")
		return nil, protocolError(KindNotYetActive, fmt.Sprintf("LOAD NOT YET ACTIVE - Pickup window starts at %s", startTime))
	}
	if load.PickupWindowEnd != nil && now.After(*load.PickupWindowEnd) {
		metrics.ConfirmFailuresTotal.WithLabelValues("window_expired").Inc()
		return nil, protocolError(KindWindowExpired, "LOAD EXPIRED")
	}

	if load.PIN != req.PIN {
		metrics.ConfirmFailuresTotal.WithLabelValues("invalid_pin").Inc()
		return nil, protocolError(KindInvalidPin, "INVALID PIN")
	}

	tx, err := s.deps.DB.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin confirmation transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	won, err := s.deps.Loads.MarkUsedTx(ctx, tx, load.ID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("confirm_release").Inc()
		return nil, err
	}
	if !won {
		// A concurrent confirmation flipped the status first.
		metrics.ConfirmFailuresTotal.WithLabelValues("already_used").Inc()
		return nil, protocolError(KindAlreadyUsed, "ALREADY USED")
	}

	details, err := json.Marshal(repository.ConfirmationDetails{
		ConfirmedBy: req.ConfirmedBy,
		Timestamp:   now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.deps.Logs.CreateTx(ctx, tx, &repository.LoadLog{
		LoadID:    load.ID,
		Action:    repository.ActionReleaseConfirmed,
		Details:   details,
		UserID:    nil, // public action
		CreatedAt: now,
	}); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("confirm_release").Inc()
		return nil, err
	}

	eventPayload, err := json.Marshal(repository.LoadEventPayload{
		Timestamp:   now,
		Action:      repository.ActionReleaseConfirmed,
		LoadID:      load.LoadID,
		LoadRawID:   load.ID,
		Status:      repository.StatusUsed,
		ConfirmedBy: req.ConfirmedBy,
	})
	if err != nil {
		return nil, err
	}
	if err := s.deps.Outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Topic:   s.deps.EventTopic,
		Payload: eventPayload,
	}); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("confirm_release").Inc()
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	s.deps.Cache.Delete(load.VerificationToken)

	updated := load.Load
	updated.Status = repository.StatusUsed
	updated.UpdatedAt = now

	if load.DispatcherEmail != nil && *load.DispatcherEmail != "" {
		dispatcherName := "Dispatcher"
		if load.DispatcherName != nil && *load.DispatcherName != "" {
			dispatcherName = *load.DispatcherName
		}
		s.deps.Notifier.Dispatch(notify.Notification{
			Event:         notify.EventReleased,
			Load:          updated,
			Recipient:     *load.DispatcherEmail,
			RecipientName: dispatcherName,
			ConfirmedBy:   req.ConfirmedBy,
		})
	}

	metrics.ReleasesConfirmedTotal.Inc()
	s.deps.Logger.Info("release confirmed",
		zap.String("load_id", updated.LoadID),
		zap.String("confirmed_by", req.ConfirmedBy))
	return &updated, nil
}

// DeleteLoad removes a load and its log rows in one transaction.
func (s *Service) DeleteLoad(ctx context.Context, id int64) error {
	load, err := s.deps.Loads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return notFoundError("Load not found")
		}
		return err
	}

	tx, err := s.deps.DB.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := s.deps.Logs.DeleteByLoadTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.deps.Loads.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrLoadNotFound) {
			return notFoundError("Load not found")
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	s.deps.Cache.Delete(load.VerificationToken)
	return nil
}

// publishEvent records a lifecycle event through the outbox in its own
// short transaction. Failures only log: events are telemetry here, the
// confirmation path writes its event inside the main transaction instead.
func (s *Service) publishEvent(ctx context.Context, action string, load *repository.Load, confirmedBy string) {
	payload, err := json.Marshal(repository.LoadEventPayload{
		Timestamp:   s.deps.Now().UTC(),
		Action:      action,
		LoadID:      load.LoadID,
		LoadRawID:   load.ID,
		Status:      load.Status,
		ConfirmedBy: confirmedBy,
	})
	if err != nil {
		s.deps.Logger.Error("failed to marshal load event", zap.Error(err))
		return
	}

	tx, err := s.deps.DB.BeginTx(ctx)
	if err != nil {
		s.deps.Logger.Error("failed to begin event transaction", zap.Error(err))
		return
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := s.deps.Outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Topic:   s.deps.EventTopic,
		Payload: payload,
	}); err != nil {
		s.deps.Logger.Error("failed to enqueue load event", zap.Error(err))
		return
	}
	if err := tx.Commit(ctx); err != nil {
		s.deps.Logger.Error("failed to commit load event", zap.Error(err))
	}
}

func marshalCustomFields(fields map[string]interface{}) (json.RawMessage, error) {
	if fields == nil {
		return json.RawMessage("{}"), nil
	}
	return json.Marshal(fields)
}
