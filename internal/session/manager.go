package session

import (
	"context"
	"sync"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/log"
)

// Fallback messages rendered when a failure carries no server message.
const (
	msgLoginFailed         = "Login failed"
	msgRegistrationFailed  = "Registration failed"
	msgAdminRegisterFailed = "Admin registration failed"
)

// Manager owns the in-memory session state for the user portal. It is the
// only writer of the persisted store; the gateway reads the store's token
// before every outbound request.
type Manager struct {
	store  Store
	api    AuthAPI
	logger *log.Logger

	mu       sync.RWMutex
	state    State
	member   *Member
	token    string
	initOnce sync.Once
}

// NewManager creates a session manager over the given store and gateway.
func NewManager(store Store, api AuthAPI, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:  store,
		api:    api,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

// Initialize hydrates the session from the persisted store and validates the
// stored token against the server. A token that fails validation (or any
// hydration error) clears the store so no stale identity survives. Runs once
// per process; later calls are no-ops.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.initialize(ctx)
	})
}

func (m *Manager) initialize(ctx context.Context) {
	sess, err := m.store.Load()
	if err != nil {
		if !IsNoSession(err) {
			m.logger.WithError(err).Warn("discarding unreadable session")
			if cerr := m.store.Clear(); cerr != nil {
				m.logger.WithError(cerr).Warn("clear session store")
			}
		}
		m.setState(StateUnauthenticated, nil, "")
		return
	}

	m.setState(StateAuthenticating, nil, "")

	valid, err := m.api.Validate(ctx)
	if err != nil || !valid {
		if err != nil {
			m.logger.WithError(err).Warn("token validation failed")
		}
		if cerr := m.store.Clear(); cerr != nil {
			m.logger.WithError(cerr).Warn("clear session store")
		}
		m.setState(StateUnauthenticated, nil, "")
		return
	}

	member := sess.Member
	m.setState(StateAuthenticated, &member, sess.Token)
	m.logger.Debug("session hydrated", "member", member.Name, "role", string(member.Role))
}

// Login exchanges credentials for a session. On success the token and
// identity are persisted together and the state becomes Authenticated. On
// failure the state is left unchanged and the server's message (or a generic
// fallback) is returned; no error ever escapes this boundary.
func (m *Manager) Login(ctx context.Context, phoneNumber, password string) Result {
	m.mu.Lock()
	prev := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	outcome, err := m.api.Login(ctx, phoneNumber, password)
	if err != nil {
		m.setState(prev, m.Current(), m.Token())
		m.logger.WithError(err).Debug("login rejected")
		return Result{Success: false, Message: kerrors.ServerMessage(err, msgLoginFailed)}
	}

	sess := &Session{Token: outcome.Token, Member: outcome.Member}
	if err := m.store.Save(sess); err != nil {
		m.setState(prev, m.Current(), m.Token())
		m.logger.WithError(err).Error("persist session")
		return Result{Success: false, Message: msgLoginFailed}
	}

	member := outcome.Member
	m.setState(StateAuthenticated, &member, outcome.Token)
	m.logger.Info("logged in", "member", member.Name, "role", string(member.Role))

	return Result{Success: true, Message: outcome.Message}
}

// Register creates a user account. Registration does not log in and never
// mutates session state.
func (m *Manager) Register(ctx context.Context, name, phoneNumber, password string) Result {
	msg, err := m.api.Register(ctx, name, phoneNumber, password)
	if err != nil {
		return Result{Success: false, Message: kerrors.ServerMessage(err, msgRegistrationFailed)}
	}
	return Result{Success: true, Message: msg}
}

// RegisterAdmin creates an admin account. Like Register it leaves session
// state untouched.
func (m *Manager) RegisterAdmin(ctx context.Context, name, phoneNumber, password string) Result {
	msg, err := m.api.RegisterAdmin(ctx, name, phoneNumber, password)
	if err != nil {
		return Result{Success: false, Message: kerrors.ServerMessage(err, msgAdminRegisterFailed)}
	}
	return Result{Success: true, Message: msg}
}

// Logout clears the persisted store and drops the in-memory session
// unconditionally. Idempotent.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("clear session store")
	}
	m.setState(StateUnauthenticated, nil, "")
}

// Invalidate handles a session-expiry signal (a 401 observed by the
// gateway): the store is cleared and the state becomes Invalid so guards
// redirect to login.
func (m *Manager) Invalidate() {
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("clear session store")
	}
	m.setState(StateInvalid, nil, "")
}

// UpdateBalance replaces the cached balance on the current identity and
// re-persists the composite record. Local only: no network call is made.
// No-op when unauthenticated.
func (m *Manager) UpdateBalance(newBalance float64) {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.member == nil {
		m.mu.Unlock()
		return
	}
	m.member.Balance = newBalance
	sess := &Session{Token: m.token, Member: *m.member}
	m.mu.Unlock()

	if err := m.store.Save(sess); err != nil {
		m.logger.WithError(err).Warn("persist balance update")
	}
}

// IsAuthenticated reports whether a validated session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// IsAdmin reports whether the current role is ADMIN. False when
// unauthenticated.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.member != nil && m.member.Role == RoleAdmin
}

// IsUser reports whether the current role is USER. False when
// unauthenticated.
func (m *Manager) IsUser() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.member != nil && m.member.Role == RoleUser
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the current identity, or nil when
// unauthenticated.
func (m *Manager) Current() *Member {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.member == nil {
		return nil
	}
	member := *m.member
	return &member
}

// Token returns the current bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) setState(state State, member *Member, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.member = member
	m.token = token
}
