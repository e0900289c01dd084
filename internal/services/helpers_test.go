package services

import (
	"context"
	"testing"
	"time"

	"pool-market-client/internal/models"
	"pool-market-client/internal/storage"
	"pool-market-client/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scheduledCall struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

// fakeScheduler records scheduled removals so tests decide when they fire
type fakeScheduler struct {
	calls []*scheduledCall
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) func() {
	c := &scheduledCall{d: d, fn: fn}
	f.calls = append(f.calls, c)
	return func() { c.cancelled = true }
}

// fire runs the i-th callback even when it was cancelled, like a timer that
// already fired before Stop
func (f *fakeScheduler) fire(i int) {
	f.calls[i].fn()
}

func newTestStorage(t *testing.T) *storage.Adapter {
	t.Helper()
	backend, err := storage.NewBadgerBackend("")
	require.NoError(t, err)
	a := storage.New(backend, zerolog.Nop())
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func newTestNotifications(hub *Hub) (*NotificationService, *fakeScheduler) {
	sched := &fakeScheduler{}
	return NewNotificationService(time.Second, sched.schedule, hub), sched
}

type memTokens struct {
	tok string
}

func (m *memTokens) Get() string    { return m.tok }
func (m *memTokens) Set(tok string) { m.tok = tok }

type fakeUserAPI struct {
	loginResp    *models.AuthResponse
	loginErr     error
	registerResp *models.AuthResponse
	registerErr  error
	updateUser   *models.User
	updateErr    error
	forgotErr    error
	resetErr     error

	loginCalls  int
	updateCalls int
}

func (f *fakeUserAPI) Login(_ context.Context, _ models.LoginRequest) (*models.AuthResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeUserAPI) Register(_ context.Context, _ models.RegisterRequest) (*models.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeUserAPI) UpdateUser(_ context.Context, _ models.UpdateUserRequest) (*models.User, error) {
	f.updateCalls++
	return f.updateUser, f.updateErr
}

func (f *fakeUserAPI) ForgotPassword(_ context.Context, _ string) error {
	return f.forgotErr
}

func (f *fakeUserAPI) ResetPassword(_ context.Context, _, _ string) error {
	return f.resetErr
}

type fakePoolsAPI struct {
	pools     []models.Pool
	listErr   error
	getPool   *models.Pool
	getErr    error
	created   *models.Pool
	createErr error
	updated   *models.Pool
	updateErr error
	deleteErr error

	lastUserID  string
	createCalls int
	getCalls    int
}

func (f *fakePoolsAPI) ListPools(_ context.Context, userID string) ([]models.Pool, error) {
	f.lastUserID = userID
	return f.pools, f.listErr
}

func (f *fakePoolsAPI) GetPool(_ context.Context, _ string) (*models.Pool, error) {
	f.getCalls++
	return f.getPool, f.getErr
}

func (f *fakePoolsAPI) CreatePool(_ context.Context, _ models.PoolInput) (*models.Pool, error) {
	f.createCalls++
	return f.created, f.createErr
}

func (f *fakePoolsAPI) UpdatePool(_ context.Context, _ string, _ models.PoolInput) (*models.Pool, error) {
	return f.updated, f.updateErr
}

func (f *fakePoolsAPI) DeletePool(_ context.Context, _ string) error {
	return f.deleteErr
}

type userFixture struct {
	svc           *UserService
	api           *fakeUserAPI
	storage       *storage.Adapter
	tokens        *memTokens
	notifications *NotificationService
	hub           *Hub
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	hub := NewHub()
	notifications, _ := newTestNotifications(hub)
	f := &userFixture{
		api:           &fakeUserAPI{},
		storage:       newTestStorage(t),
		tokens:        &memTokens{},
		notifications: notifications,
		hub:           hub,
	}
	f.svc = NewUserService(f.api, f.storage, f.tokens, notifications, validation.New(), hub, zerolog.Nop())
	return f
}

func intPtr(n int) *int { return &n }
