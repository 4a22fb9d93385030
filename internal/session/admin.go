package session

import (
	"context"
	"sync"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/log"
)

const msgAdminLoginFailed = "Admin login failed"

// AdminManager drives the administrative portal's session. It shares the
// user manager's state-machine shape with two differences: login applies an
// authorization check on top of authentication, and token validation happens
// on demand when entering the admin area instead of via a global interceptor.
type AdminManager struct {
	store  Store
	api    AuthAPI
	logger *log.Logger

	mu     sync.RWMutex
	state  State
	member *Member
	token  string
}

// NewAdminManager creates an admin session manager. The store and gateway
// must be scoped to the admin namespace; tokens never cross portals.
func NewAdminManager(store Store, api AuthAPI, logger *log.Logger) *AdminManager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &AdminManager{
		store:  store,
		api:    api,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

// Hydrate loads a previously stored admin session without contacting the
// server. Validation is deferred until the admin area is entered.
func (m *AdminManager) Hydrate() {
	sess, err := m.store.Load()
	if err != nil {
		if !IsNoSession(err) {
			m.logger.WithError(err).Warn("discarding unreadable admin session")
			if cerr := m.store.Clear(); cerr != nil {
				m.logger.WithError(cerr).Warn("clear admin session store")
			}
		}
		m.setState(StateUnauthenticated, nil, "")
		return
	}

	member := sess.Member
	m.setState(StateAuthenticated, &member, sess.Token)
}

// Login authenticates against the shared credential endpoint, then requires
// the returned role collection to carry an admin marker. Valid credentials
// without admin privilege are rejected outright: no token or identity is
// written and the result is an access-denied message distinct from a
// credential failure.
func (m *AdminManager) Login(ctx context.Context, phoneNumber, password string) Result {
	m.mu.Lock()
	prev := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	outcome, err := m.api.Login(ctx, phoneNumber, password)
	if err != nil {
		m.restore(prev)
		m.logger.WithError(err).Debug("admin login rejected")
		return Result{Success: false, Message: kerrors.ServerMessage(err, msgAdminLoginFailed)}
	}

	if outcome.Member.Role != RoleAdmin {
		m.restore(prev)
		m.logger.Info("admin login denied", "member", outcome.Member.Name, "role", string(outcome.Member.Role))
		denied := kerrors.NewAccessDeniedError()
		return Result{Success: false, Message: denied.Message}
	}

	sess := &Session{Token: outcome.Token, Member: outcome.Member}
	if err := m.store.Save(sess); err != nil {
		m.restore(prev)
		m.logger.WithError(err).Error("persist admin session")
		return Result{Success: false, Message: msgAdminLoginFailed}
	}

	member := outcome.Member
	m.setState(StateAuthenticated, &member, outcome.Token)
	m.logger.Info("admin logged in", "member", member.Name)

	return Result{Success: true, Message: outcome.Message}
}

// Validate checks the stored admin token against the server. Called on
// demand when entering the admin area. Any failure forces logout of the
// admin session only; the user session is untouched.
func (m *AdminManager) Validate(ctx context.Context) bool {
	if !m.LoggedIn() {
		return false
	}

	valid, err := m.api.Validate(ctx)
	if err != nil || !valid {
		if err != nil {
			m.logger.WithError(err).Warn("admin token validation failed")
		}
		m.Logout()
		return false
	}

	return true
}

// Logout clears the admin session. Idempotent.
func (m *AdminManager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("clear admin session store")
	}
	m.setState(StateUnauthenticated, nil, "")
}

// LoggedIn reports whether an admin session is held (validated or not).
func (m *AdminManager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated && m.member != nil && m.token != ""
}

// IsAdmin reports whether the held identity carries the admin role. Always
// true for a session this manager accepted.
func (m *AdminManager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.member != nil && m.member.Role == RoleAdmin
}

// State returns the current lifecycle state.
func (m *AdminManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the admin identity, or nil when logged out.
func (m *AdminManager) Current() *Member {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.member == nil {
		return nil
	}
	member := *m.member
	return &member
}

// Token returns the admin bearer token, or "" when logged out.
func (m *AdminManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *AdminManager) restore(prev State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = prev
}

func (m *AdminManager) setState(state State, member *Member, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.member = member
	m.token = token
}
