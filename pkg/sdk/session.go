package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status is the authentication state of the session.
type Status int

const (
	// StatusAnonymous means no user is signed in. LastError may carry the
	// detail of the most recent failed attempt.
	StatusAnonymous Status = iota
	// StatusAuthenticating means a login or registration is in flight.
	StatusAuthenticating
	// StatusAuthenticated means a token is persisted and its profile has
	// been resolved.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Session is a snapshot of the authentication state. A non-nil User always
// comes with its token; StatusAuthenticated implies both are set and the
// user was resolved from that token.
type Session struct {
	Status Status
	User   *UserProfile
	Token  string
}

// Route names a navigational context in the consuming frontend.
type Route string

const (
	RouteSignIn Route = "/sign-in"
	RouteSignUp Route = "/sign-up"
)

// Navigator is how the session manager asks the frontend to change pages.
// The SDK never navigates on its own; it only requests the sign-in page
// after a session invalidation, and suppresses even that while one of the
// two auth entry pages is active.
type Navigator interface {
	// Current reports the active route.
	Current() Route
	// Navigate requests a transition to the given route.
	Navigate(Route)
}

var (
	// ErrOperationPending is returned when an operation class already has
	// an invocation in flight. Concurrent calls of the same class are
	// rejected rather than queued so the persisted token can never be
	// half-overwritten.
	ErrOperationPending = errors.New("operation already in flight")
	// ErrSuperseded is returned when an operation completed after a
	// logout or invalidation advanced the session generation; its result
	// is discarded instead of overwriting newer state.
	ErrSuperseded = errors.New("session superseded during operation")
)

// opClass buckets manager operations for the one-in-flight guard.
type opClass int

const (
	opLogin opClass = iota
	opRegister
	opLogout
	opRefresh
	opRestore
	opCount
)

// Manager owns the session state machine and is the only writer of the
// persisted token. It subscribes to the gateway's invalidation signal and
// performs the centralized teardown (clear token, purge caches, request
// navigation).
type Manager struct {
	client *Client
	store  CredentialStore
	nav    Navigator
	log    *zap.Logger

	mu       sync.Mutex
	session  Session
	prior    Session
	lastErr  error
	gen      uint64
	inFlight [opCount]bool
	purge    []func()
}

// ManagerOption mutates manager construction.
type ManagerOption func(*Manager)

// WithNavigator wires the frontend's navigation policy into invalidation
// handling. Without one, invalidation still tears the session down but
// requests no page change.
func WithNavigator(nav Navigator) ManagerOption {
	return func(m *Manager) {
		m.nav = nav
	}
}

// WithManagerLogger attaches a logger for state transition logging.
func WithManagerLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager builds the session manager on top of the gateway and the
// credential store the gateway reads from. It registers itself as the
// gateway's invalidation handler.
func NewManager(client *Client, store CredentialStore, optFns ...ManagerOption) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		log:    zap.NewNop(),
	}
	for _, fn := range optFns {
		fn(m)
	}
	client.SetInvalidationHandler(m.handleInvalidation)
	return m
}

// Session returns a copy of the current session snapshot.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// UserID reports the authenticated user's id, used by caches as the owner
// component of their keys.
func (m *Manager) UserID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Status != StatusAuthenticated || m.session.User == nil {
		return 0, false
	}
	return m.session.User.ID, true
}

// LastError returns the failure detail of the most recent unsuccessful
// operation, or nil.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// OnPurge registers a teardown hook run whenever the session is cleared by
// logout or invalidation. Caches register here to drop identity-derived
// entries.
func (m *Manager) OnPurge(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge = append(m.purge, fn)
}

// Login authenticates with email and password. The token obtained from the
// backend is persisted, and the session becomes Authenticated, only after
// identity resolution succeeds; a failure discards the token and reverts to
// the pre-login session, Anonymous on a first login, with the error
// surfaced. No observable state ever holds a token without its resolved
// profile beyond the duration of this call.
func (m *Manager) Login(ctx context.Context, email, password string) (*UserProfile, error) {
	gen, err := m.begin(opLogin, true)
	if err != nil {
		return nil, err
	}
	defer m.end(opLogin)

	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.fail(gen, err)
		return nil, err
	}

	user, err := m.client.ResolveIdentity(ctx, token)
	if err != nil {
		m.fail(gen, err)
		return nil, err
	}

	return m.commit(gen, token, user)
}

// Register creates an account and signs it in, with the same strict
// persist-after-resolution semantics as Login.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*UserProfile, error) {
	gen, err := m.begin(opRegister, true)
	if err != nil {
		return nil, err
	}
	defer m.end(opRegister)

	token, err := m.client.Register(ctx, in)
	if err != nil {
		m.fail(gen, err)
		return nil, err
	}

	user, err := m.client.ResolveIdentity(ctx, token)
	if err != nil {
		m.fail(gen, err)
		return nil, err
	}

	return m.commit(gen, token, user)
}

// Logout clears the session. The remote invalidation call is best effort;
// local teardown happens unconditionally regardless of its outcome.
func (m *Manager) Logout(ctx context.Context) error {
	if _, err := m.begin(opLogout, false); err != nil {
		return err
	}
	defer m.end(opLogout)

	if err := m.client.Logout(ctx); err != nil {
		m.log.Debug("remote logout failed, clearing local session anyway", zap.Error(err))
	}
	m.teardown()
	return nil
}

// Refresh re-resolves the profile behind the persisted token without
// entering Authenticating. It degrades leniently: any failure leaves the
// existing session untouched, in contrast to Login's strict atomicity.
func (m *Manager) Refresh(ctx context.Context) (*UserProfile, error) {
	gen, err := m.begin(opRefresh, false)
	if err != nil {
		return nil, err
	}
	defer m.end(opRefresh)

	creds, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	user, err := m.client.ResolveIdentity(ctx, creds.Token)
	if err != nil {
		return nil, err
	}

	return m.adopt(gen, creds.Token, user)
}

// Restore is the startup path: when a token survived the previous process,
// resolve it and adopt the session. An unresolvable token is cleared so a
// stale credential cannot linger. No persisted token is not an error; the
// session simply stays anonymous with a nil profile returned.
func (m *Manager) Restore(ctx context.Context) (*UserProfile, error) {
	gen, err := m.begin(opRestore, false)
	if err != nil {
		return nil, err
	}
	defer m.end(opRestore)

	creds, err := m.store.Load()
	if errors.Is(err, ErrNotLoggedIn) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := m.client.ResolveIdentity(ctx, creds.Token)
	if err != nil {
		if delErr := m.store.Delete(); delErr != nil {
			m.log.Warn("failed to clear stale credentials", zap.Error(delErr))
		}
		return nil, err
	}

	return m.adopt(gen, creds.Token, user)
}

// begin claims the in-flight slot for an operation class and captures the
// generation stamp the operation must present when committing.
func (m *Manager) begin(op opClass, authenticating bool) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[op] {
		return 0, ErrOperationPending
	}
	m.inFlight[op] = true
	if authenticating {
		if m.session.Status != StatusAuthenticating {
			m.prior = m.session
		}
		m.session.Status = StatusAuthenticating
		m.lastErr = nil
	}
	return m.gen, nil
}

func (m *Manager) end(op opClass) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight[op] = false
}

// fail reverts an Authenticating session to the snapshot it replaced: a
// failed first login lands on Anonymous, a failed re-login keeps the still
// valid existing session whose token remains persisted. A stale generation
// means teardown already moved the session on, in which case the failure has
// nothing left to revert.
func (m *Manager) fail(gen uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return
	}
	if m.session.Status == StatusAuthenticating {
		m.session = m.prior
	}
	m.lastErr = err
	m.log.Debug("authentication failed", zap.Error(err))
}

// commit persists the token and adopts the authenticated session, unless a
// superseding operation advanced the generation while this one was in
// flight, in which case the token is deliberately discarded unpersisted.
func (m *Manager) commit(gen uint64, token string, user *UserProfile) (*UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return nil, ErrSuperseded
	}
	if err := m.store.Save(&Credentials{Token: token, SavedAt: time.Now()}); err != nil {
		m.session = m.prior
		m.lastErr = err
		return nil, fmt.Errorf("persist credentials: %w", err)
	}
	m.gen++
	m.session = Session{Status: StatusAuthenticated, User: user, Token: token}
	m.prior = Session{}
	m.lastErr = nil
	m.log.Info("session authenticated", zap.Int64("user_id", user.ID))
	return user, nil
}

// adopt installs an already persisted token's resolved profile (refresh and
// restore paths). It does not advance the generation: nothing was
// invalidated, and a concurrent login's commit must still win.
func (m *Manager) adopt(gen uint64, token string, user *UserProfile) (*UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return nil, ErrSuperseded
	}
	m.session = Session{Status: StatusAuthenticated, User: user, Token: token}
	m.lastErr = nil
	return user, nil
}

// teardown clears every trace of the session: persisted token, in-memory
// state, and identity-derived cache entries via the registered purge hooks.
// Advancing the generation makes any in-flight operation discard its result.
func (m *Manager) teardown() {
	m.mu.Lock()
	if err := m.store.Delete(); err != nil {
		m.log.Warn("failed to delete credentials", zap.Error(err))
	}
	m.gen++
	m.session = Session{}
	m.prior = Session{}
	m.lastErr = nil
	hooks := append([]func(){}, m.purge...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	m.log.Info("session cleared")
}

// handleInvalidation reacts to the gateway's 401 signal: tear the session
// down, then request the sign-in page unless one of the auth entry pages is
// already active, so an in-progress login or registration attempt is never
// interrupted by a redirect.
func (m *Manager) handleInvalidation() {
	m.teardown()
	if m.nav == nil {
		return
	}
	if current := m.nav.Current(); current == RouteSignIn || current == RouteSignUp {
		return
	}
	m.nav.Navigate(RouteSignIn)
}
