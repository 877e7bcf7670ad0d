package release_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/notify"
	"github.com/dthlogistics/release-portal/internal/release"
	"github.com/dthlogistics/release-portal/internal/repository"
)

// fakeStore is an in-memory stand-in for the three repositories. The
// mutex makes MarkUsedTx an honest compare-and-set so the concurrency
// test below exercises the same race the conditional UPDATE closes.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	loads   map[int64]*repository.Load
	byToken map[string]int64
	logs    []*repository.LoadLog

	dispatcherEmail *string
	dispatcherName  *string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		loads:   make(map[int64]*repository.Load),
		byToken: make(map[string]int64),
	}
}

func (f *fakeStore) Create(_ context.Context, load *repository.Load) (*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *load
	stored.ID = f.nextID
	f.loads[stored.ID] = &stored
	f.byToken[stored.VerificationToken] = stored.ID
	out := stored
	return &out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	load, ok := f.loads[id]
	if !ok {
		return nil, repository.ErrLoadNotFound
	}
	out := *load
	return &out, nil
}

func (f *fakeStore) GetByToken(_ context.Context, token string) (*repository.LoadWithDispatcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byToken[token]
	if !ok {
		return nil, repository.ErrLoadNotFound
	}
	out := repository.LoadWithDispatcher{
		Load:            *f.loads[id],
		DispatcherEmail: f.dispatcherEmail,
		DispatcherName:  f.dispatcherName,
	}
	return &out, nil
}

func (f *fakeStore) GetAll(_ context.Context) ([]*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loads := make([]*repository.Load, 0, len(f.loads))
	for _, load := range f.loads {
		out := *load
		loads = append(loads, &out)
	}
	return loads, nil
}

func (f *fakeStore) GetActive(_ context.Context) ([]*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var loads []*repository.Load
	for _, load := range f.loads {
		if load.Status == repository.StatusDraft || load.Status == repository.StatusValid {
			out := *load
			loads = append(loads, &out)
		}
	}
	return loads, nil
}

func (f *fakeStore) Update(_ context.Context, load *repository.Load) (*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.loads[load.ID]
	if !ok {
		return nil, repository.ErrLoadNotFound
	}
	current.PickupLocation = load.PickupLocation
	current.VehicleYear = load.VehicleYear
	current.VehicleMake = load.VehicleMake
	current.VehicleModel = load.VehicleModel
	current.VinLast6 = load.VinLast6
	current.CarrierName = load.CarrierName
	current.DriverName = load.DriverName
	current.PickupWindowStart = load.PickupWindowStart
	current.PickupWindowEnd = load.PickupWindowEnd
	current.PickupInfo = load.PickupInfo
	current.PickupContact = load.PickupContact
	out := *current
	return &out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id int64, status string) (*repository.Load, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	load, ok := f.loads[id]
	if !ok {
		return nil, repository.ErrLoadNotFound
	}
	load.Status = status
	out := *load
	return &out, nil
}

func (f *fakeStore) MarkUsedTx(_ context.Context, _ db.Tx, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	load, ok := f.loads[id]
	if !ok || load.Status != repository.StatusValid {
		return false, nil
	}
	load.Status = repository.StatusUsed
	return true, nil
}

func (f *fakeStore) DeleteTx(_ context.Context, _ db.Tx, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	load, ok := f.loads[id]
	if !ok {
		return repository.ErrLoadNotFound
	}
	delete(f.byToken, load.VerificationToken)
	delete(f.loads, id)
	return nil
}

func (f *fakeStore) LoadIDExists(_ context.Context, loadID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, load := range f.loads {
		if load.LoadID == loadID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateTx(_ context.Context, _ db.Tx, entry *repository.LoadLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *entry
	f.logs = append(f.logs, &stored)
	return nil
}

func (f *fakeStore) GetLastConfirmation(_ context.Context, loadID int64) (*repository.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].LoadID == loadID && f.logs[i].Action == repository.ActionReleaseConfirmed {
			var details repository.ConfirmationDetails
			if err := json.Unmarshal(f.logs[i].Details, &details); err != nil {
				return nil, err
			}
			return &repository.Confirmation{
				ConfirmedBy: details.ConfirmedBy,
				Timestamp:   details.Timestamp,
			}, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetReleaseLogs(_ context.Context) ([]*repository.ReleaseLogEntry, error) {
	return nil, nil
}

func (f *fakeStore) DeleteByLoadTx(_ context.Context, _ db.Tx, loadID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.logs[:0]
	for _, entry := range f.logs {
		if entry.LoadID != loadID {
			kept = append(kept, entry)
		}
	}
	f.logs = kept
	return nil
}

func (f *fakeStore) logCount(loadID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, entry := range f.logs {
		if entry.LoadID == loadID {
			count++
		}
	}
	return count
}

// outbox side

type fakeOutbox struct {
	mu    sync.Mutex
	tasks []*repository.OutboxTask
}

func (f *fakeOutbox) CreateTx(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *task
	f.tasks = append(f.tasks, &stored)
	return nil
}

func (f *fakeOutbox) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]*repository.Load
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]*repository.Load)}
}

func (f *fakeCache) Get(token string) (*repository.Load, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	load, ok := f.items[token]
	if !ok {
		return nil, false
	}
	out := *load
	return &out, true
}

func (f *fakeCache) Set(load *repository.Load) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *load
	f.items[load.VerificationToken] = &stored
}

func (f *fakeCache) Delete(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, token)
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (f *fakeNotifier) Dispatch(n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *fakeNotifier) all() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Notification(nil), f.notifications...)
}

// fakeTx and fakeDB satisfy the db interfaces; the fakes above do the
// actual bookkeeping so the tx itself is inert.

type fakeTx struct{}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }
func (fakeTx) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (fakeTx) Get(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (fakeTx) Select(context.Context, interface{}, string, ...interface{}) error { return nil }

type fakeDB struct{}

func (fakeDB) Get(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (fakeDB) Select(context.Context, interface{}, string, ...interface{}) error { return nil }
func (fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (fakeDB) ExecQueryRow(context.Context, string, ...interface{}) pgx.Row { return nil }
func (fakeDB) BeginTx(context.Context) (db.Tx, error)                       { return fakeTx{}, nil }

type testEnv struct {
	service  *release.Service
	store    *fakeStore
	outbox   *fakeOutbox
	cache    *fakeCache
	notifier *fakeNotifier
	now      time.Time
}

func newTestEnv(t *testing.T, opts ...func(*release.Deps)) *testEnv {
	t.Helper()

	store := newFakeStore()
	outbox := &fakeOutbox{}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	deps := release.Deps{
		DB:            fakeDB{},
		Loads:         store,
		Logs:          store,
		Outbox:        outbox,
		Cache:         cache,
		Notifier:      notifier,
		EventTopic:    "load_events",
		DispatchEmail: "dispatch@dthlogistics.com",
		Now:           func() time.Time { return now },
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &testEnv{
		service:  release.NewService(deps),
		store:    store,
		outbox:   outbox,
		cache:    cache,
		notifier: notifier,
		now:      now,
	}
}

func (e *testEnv) createValidLoad(t *testing.T, ctx context.Context) *repository.Load {
	t.Helper()

	created, err := e.service.CreateLoad(ctx, release.LoadPayload{
		PickupLocation: "Manheim Pennsylvania",
		VehicleYear:    "2022",
		VehicleMake:    "Ford",
		VehicleModel:   "F-150",
		VinLast6:       "A12345",
		CarrierName:    "Roadrunner Transport",
		DriverName:     "Mike Stone",
	}, nil)
	require.NoError(t, err)

	validated, err := e.service.Validate(ctx, created.ID)
	require.NoError(t, err)
	return validated
}

func TestCreateLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("generates identifier, pin and token", func(t *testing.T) {
		env := newTestEnv(t)

		load, err := env.service.CreateLoad(ctx, release.LoadPayload{
			PickupLocation: "Adesa Boston",
		}, nil)
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^DTH-[0-9A-F]{6}$`), load.LoadID)
		assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{5}$`), load.PIN)
		assert.NotEmpty(t, load.VerificationToken)
		assert.Equal(t, repository.StatusDraft, load.Status)
		assert.Equal(t, env.now, load.CreatedAt)
	})

	t.Run("missing pickup location", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.CreateLoad(ctx, release.LoadPayload{}, nil)
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindValidation, relErr.Kind)
	})

	t.Run("custom load id is honored", func(t *testing.T) {
		env := newTestEnv(t)

		load, err := env.service.CreateLoad(ctx, release.LoadPayload{
			LoadID:         "DTH-CUSTOM",
			PickupLocation: "Adesa Boston",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "DTH-CUSTOM", load.LoadID)
	})

	t.Run("notifies the creator", func(t *testing.T) {
		env := newTestEnv(t)

		user := &repository.User{ID: 7, Email: "ops@dthlogistics.com", FullName: "Dana Ops"}
		load, err := env.service.CreateLoad(ctx, release.LoadPayload{
			PickupLocation: "Adesa Boston",
		}, user)
		require.NoError(t, err)
		require.NotNil(t, load.CreatedBy)
		assert.Equal(t, user.ID, *load.CreatedBy)

		notifications := env.notifier.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.EventCreated, notifications[0].Event)
		assert.Equal(t, "ops@dthlogistics.com", notifications[0].Recipient)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes draft and notifies dispatch", func(t *testing.T) {
		env := newTestEnv(t)
		created, err := env.service.CreateLoad(ctx, release.LoadPayload{PickupLocation: "Adesa Boston"}, nil)
		require.NoError(t, err)

		validated, err := env.service.Validate(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusValid, validated.Status)

		notifications := env.notifier.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.EventValidated, notifications[0].Event)
		assert.Equal(t, "dispatch@dthlogistics.com", notifications[0].Recipient)
	})

	t.Run("rejects terminal loads", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)
		_, err := env.service.Void(ctx, load.ID)
		require.NoError(t, err)

		_, err = env.service.Validate(ctx, load.ID)
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotReleasable, relErr.Kind)
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.Validate(ctx, 404)
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotFound, relErr.Kind)
	})
}

func TestConfirmRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid token", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{Token: "no-such-token", PIN: "123456"})
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotFound, relErr.Kind)
	})

	t.Run("draft load is not releasable", func(t *testing.T) {
		env := newTestEnv(t)
		created, err := env.service.CreateLoad(ctx, release.LoadPayload{PickupLocation: "Adesa Boston"}, nil)
		require.NoError(t, err)

		_, err = env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: created.VerificationToken,
			PIN:   created.PIN,
		})
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotReleasable, relErr.Kind)
		assert.Equal(t, "DO NOT RELEASE - Status is not VALID", relErr.Message)
	})

	t.Run("before pickup window", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		start := env.now.Add(2 * time.Hour)
		_, err := env.service.UpdateLoad(ctx, load.ID, release.LoadPayload{
			PickupLocation:    load.PickupLocation,
			PickupWindowStart: &start,
		})
		require.NoError(t, err)

		_, err = env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: load.VerificationToken,
			PIN:   load.PIN,
		})
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotYetActive, relErr.Kind)
		assert.Contains(t, relErr.Message, "LOAD NOT YET ACTIVE - Pickup window starts at")
	})

	t.Run("after pickup window", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		end := env.now.Add(-time.Hour)
		_, err := env.service.UpdateLoad(ctx, load.ID, release.LoadPayload{
			PickupLocation:  load.PickupLocation,
			PickupWindowEnd: &end,
		})
		require.NoError(t, err)

		_, err = env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: load.VerificationToken,
			PIN:   load.PIN,
		})
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindWindowExpired, relErr.Kind)
		assert.Equal(t, "LOAD EXPIRED", relErr.Message)
	})

	t.Run("wrong pin, then success, then replay", func(t *testing.T) {
		env := newTestEnv(t)
		email := "dispatcher@dthlogistics.com"
		name := "Pat Dispatcher"
		env.store.dispatcherEmail = &email
		env.store.dispatcherName = &name
		load := env.createValidLoad(t, ctx)

		_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: load.VerificationToken,
			PIN:   "000000",
		})
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindInvalidPin, relErr.Kind)
		assert.Equal(t, "INVALID PIN", relErr.Message)

		confirmed, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token:       load.VerificationToken,
			PIN:         load.PIN,
			ConfirmedBy: "Front Desk",
		})
		require.NoError(t, err)
		assert.Equal(t, repository.StatusUsed, confirmed.Status)
		assert.Equal(t, 1, env.store.logCount(load.ID))
		assert.Equal(t, 1, env.outbox.count())

		notifications := env.notifier.all()
		require.NotEmpty(t, notifications)
		last := notifications[len(notifications)-1]
		assert.Equal(t, notify.EventReleased, last.Event)
		assert.Equal(t, email, last.Recipient)
		assert.Equal(t, name, last.RecipientName)
		assert.Equal(t, "Front Desk", last.ConfirmedBy)

		_, err = env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: load.VerificationToken,
			PIN:   load.PIN,
		})
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindAlreadyUsed, relErr.Kind)
		assert.Equal(t, "ALREADY USED", relErr.Message)
		assert.Equal(t, 1, env.store.logCount(load.ID))
	})

	t.Run("confirmation is recorded on the load", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token:       load.VerificationToken,
			PIN:         load.PIN,
			ConfirmedBy: "Gate Guard",
		})
		require.NoError(t, err)

		details, err := env.service.GetLoadByID(ctx, load.ID)
		require.NoError(t, err)
		require.NotNil(t, details.Confirmation)
		assert.Equal(t, "Gate Guard", details.Confirmation.ConfirmedBy)
		assert.Equal(t, env.now, details.Confirmation.Timestamp)
	})
}

func TestConfirmReleaseConcurrent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	load := env.createValidLoad(t, ctx)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		replayed  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
				Token:       load.VerificationToken,
				PIN:         load.PIN,
				ConfirmedBy: "Gate",
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			var relErr *release.Error
			if errors.As(err, &relErr) && relErr.Kind == release.KindAlreadyUsed {
				replayed++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, replayed)
	assert.Equal(t, 1, env.store.logCount(load.ID))
	assert.Equal(t, 1, env.outbox.count())
}

func TestVoid(t *testing.T) {
	ctx := context.Background()

	t.Run("void after release is allowed", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
			Token: load.VerificationToken,
			PIN:   load.PIN,
		})
		require.NoError(t, err)

		voided, err := env.service.Void(ctx, load.ID)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusVoid, voided.Status)
	})

	t.Run("evicts the verification cache", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		_, ok := env.cache.Get(load.VerificationToken)
		require.True(t, ok)

		_, err := env.service.Void(ctx, load.ID)
		require.NoError(t, err)

		_, ok = env.cache.Get(load.VerificationToken)
		assert.False(t, ok)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		_, err := env.service.UpdateStatus(ctx, load.ID, "SHIPPED")
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindValidation, relErr.Kind)
	})

	t.Run("permissive by default", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		updated, err := env.service.UpdateStatus(ctx, load.ID, repository.StatusDraft)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusDraft, updated.Status)
	})

	t.Run("strict mode rejects illegal transitions", func(t *testing.T) {
		env := newTestEnv(t, func(deps *release.Deps) {
			deps.StrictTransitions = true
		})
		load := env.createValidLoad(t, ctx)

		_, err := env.service.UpdateStatus(ctx, load.ID, repository.StatusDraft)
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotReleasable, relErr.Kind)

		updated, err := env.service.UpdateStatus(ctx, load.ID, repository.StatusVoid)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusVoid, updated.Status)
	})
}

func TestGetLoadByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from cache after warm read", func(t *testing.T) {
		env := newTestEnv(t)
		load := env.createValidLoad(t, ctx)

		found, err := env.service.GetLoadByToken(ctx, load.VerificationToken)
		require.NoError(t, err)
		assert.Equal(t, load.LoadID, found.LoadID)

		// Drop the row underneath the cache; the token read still hits.
		require.NoError(t, env.store.DeleteTx(ctx, fakeTx{}, load.ID))
		found, err = env.service.GetLoadByToken(ctx, load.VerificationToken)
		require.NoError(t, err)
		assert.Equal(t, load.LoadID, found.LoadID)
	})

	t.Run("unknown token", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.GetLoadByToken(ctx, "bogus")
		var relErr *release.Error
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, release.KindNotFound, relErr.Kind)
	})
}

func TestDeleteLoad(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	load := env.createValidLoad(t, ctx)

	_, err := env.service.ConfirmRelease(ctx, release.ConfirmRequest{
		Token: load.VerificationToken,
		PIN:   load.PIN,
	})
	require.NoError(t, err)
	require.Equal(t, 1, env.store.logCount(load.ID))

	require.NoError(t, env.service.DeleteLoad(ctx, load.ID))

	_, err = env.service.GetLoadByID(ctx, load.ID)
	var relErr *release.Error
	require.ErrorAs(t, err, &relErr)
	assert.Equal(t, release.KindNotFound, relErr.Kind)
	assert.Equal(t, 0, env.store.logCount(load.ID))
}
