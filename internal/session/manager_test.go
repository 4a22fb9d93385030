package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/khel-store/khel/internal/errors"
)

// fakeAuthAPI is a scripted AuthAPI that counts calls so tests can assert
// which operations touch the network.
type fakeAuthAPI struct {
	loginOutcome *LoginOutcome
	loginErr     error
	registerMsg  string
	registerErr  error
	validateOK   bool
	validateErr  error

	calls int
}

func (f *fakeAuthAPI) Login(ctx context.Context, phoneNumber, password string) (*LoginOutcome, error) {
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginOutcome, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, name, phoneNumber, password string) (string, error) {
	f.calls++
	return f.registerMsg, f.registerErr
}

func (f *fakeAuthAPI) RegisterAdmin(ctx context.Context, name, phoneNumber, password string) (string, error) {
	f.calls++
	return f.registerMsg, f.registerErr
}

func (f *fakeAuthAPI) Validate(ctx context.Context) (bool, error) {
	f.calls++
	return f.validateOK, f.validateErr
}

func ashaOutcome() *LoginOutcome {
	return &LoginOutcome{
		Token: "abc123",
		Member: Member{
			ID:          1,
			Name:        "Asha",
			PhoneNumber: "9000000000",
			Role:        RoleUser,
			Balance:     500,
		},
		Message: "Login successful",
	}
}

func newTestManager(t *testing.T, api AuthAPI) (*Manager, *FileStore) {
	t.Helper()
	store := NewFileStore(t.TempDir(), NamespaceUser)
	return NewManager(store, api, nil), store
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAuthAPI{loginOutcome: ashaOutcome()}
	mgr, store := newTestManager(t, api)

	res := mgr.Login(context.Background(), "9000000000", "secret")

	require.True(t, res.Success)
	assert.Equal(t, "Login successful", res.Message)
	assert.True(t, mgr.IsAuthenticated())
	assert.False(t, mgr.IsAdmin())
	assert.True(t, mgr.IsUser())
	assert.Equal(t, "abc123", mgr.Token())

	// Token and identity are persisted together.
	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, 500.0, sess.Member.Balance)
}

func TestLoginFailureKeepsState(t *testing.T) {
	api := &fakeAuthAPI{loginErr: kerrors.New(kerrors.ErrCodeAPIStatus, "Invalid phone number or password")}
	mgr, store := newTestManager(t, api)

	res := mgr.Login(context.Background(), "9000000000", "wrong")

	require.False(t, res.Success)
	assert.Equal(t, "Invalid phone number or password", res.Message)
	assert.Equal(t, StateUnauthenticated, mgr.State())

	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestLoginTransportFailureUsesFallbackMessage(t *testing.T) {
	api := &fakeAuthAPI{loginErr: kerrors.NewTransportError(errors.New("connection refused"))}
	mgr, _ := newTestManager(t, api)

	res := mgr.Login(context.Background(), "9000000000", "secret")

	require.False(t, res.Success)
	assert.Equal(t, "Login failed", res.Message)
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	api := &fakeAuthAPI{registerMsg: "Member registered successfully"}
	mgr, store := newTestManager(t, api)

	res := mgr.Register(context.Background(), "Asha", "9000000000", "secret")

	require.True(t, res.Success)
	assert.Equal(t, "Member registered successfully", res.Message)
	assert.Equal(t, StateUnauthenticated, mgr.State())

	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestRegisterFailure(t *testing.T) {
	api := &fakeAuthAPI{registerErr: kerrors.New(kerrors.ErrCodeAPIStatus, "Phone number already registered")}
	mgr, _ := newTestManager(t, api)

	res := mgr.Register(context.Background(), "Asha", "9000000000", "secret")

	require.False(t, res.Success)
	assert.Equal(t, "Phone number already registered", res.Message)
}

func TestLogoutFromAnyStateIsIdempotent(t *testing.T) {
	api := &fakeAuthAPI{loginOutcome: ashaOutcome()}
	mgr, store := newTestManager(t, api)

	require.True(t, mgr.Login(context.Background(), "9000000000", "secret").Success)

	mgr.Logout()
	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.Empty(t, mgr.Token())
	assert.Nil(t, mgr.Current())
	_, err := store.Load()
	assert.True(t, IsNoSession(err))

	// Repeat from already-unauthenticated state.
	mgr.Logout()
	assert.Equal(t, StateUnauthenticated, mgr.State())
}

func TestUpdateBalanceIsLocalOnly(t *testing.T) {
	api := &fakeAuthAPI{loginOutcome: ashaOutcome()}
	mgr, store := newTestManager(t, api)

	require.True(t, mgr.Login(context.Background(), "9000000000", "secret").Success)
	callsAfterLogin := api.calls

	mgr.UpdateBalance(450)

	// No network call was issued.
	assert.Equal(t, callsAfterLogin, api.calls)

	// Balance changed in memory and in storage; everything else untouched.
	current := mgr.Current()
	require.NotNil(t, current)
	assert.Equal(t, 450.0, current.Balance)
	assert.Equal(t, "Asha", current.Name)
	assert.Equal(t, "abc123", mgr.Token())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, 450.0, sess.Member.Balance)
	assert.Equal(t, "9000000000", sess.Member.PhoneNumber)
}

func TestUpdateBalanceNoOpWhenUnauthenticated(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, store := newTestManager(t, api)

	mgr.UpdateBalance(999)

	assert.Zero(t, api.calls)
	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestInitializeValidTokenHydrates(t *testing.T) {
	api := &fakeAuthAPI{validateOK: true}
	mgr, store := newTestManager(t, api)

	require.NoError(t, store.Save(&Session{
		Token:  "abc123",
		Member: Member{ID: 1, Name: "Asha", Role: RoleAdmin, Balance: 42},
	}))

	mgr.Initialize(context.Background())

	assert.True(t, mgr.IsAuthenticated())
	assert.True(t, mgr.IsAdmin())
	assert.Equal(t, "abc123", mgr.Token())
}

func TestInitializeInvalidTokenClearsEverything(t *testing.T) {
	api := &fakeAuthAPI{validateOK: false}
	mgr, store := newTestManager(t, api)

	require.NoError(t, store.Save(&Session{
		Token:  "stale",
		Member: Member{ID: 1, Name: "Asha", Role: RoleUser},
	}))

	mgr.Initialize(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	assert.Nil(t, mgr.Current())
	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestInitializeValidationErrorClearsEverything(t *testing.T) {
	api := &fakeAuthAPI{validateErr: errors.New("connection refused")}
	mgr, store := newTestManager(t, api)

	require.NoError(t, store.Save(&Session{Token: "abc", Member: Member{ID: 1}}))

	mgr.Initialize(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestInitializeWithoutStoredSession(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, _ := newTestManager(t, api)

	mgr.Initialize(context.Background())

	assert.Equal(t, StateUnauthenticated, mgr.State())
	// No validation call without a token.
	assert.Zero(t, api.calls)
}

func TestInitializeRunsOnce(t *testing.T) {
	api := &fakeAuthAPI{validateOK: true}
	mgr, store := newTestManager(t, api)

	require.NoError(t, store.Save(&Session{Token: "abc", Member: Member{ID: 1, Role: RoleUser}}))

	mgr.Initialize(context.Background())
	callsAfterFirst := api.calls
	mgr.Initialize(context.Background())

	assert.Equal(t, callsAfterFirst, api.calls)
}

func TestInvalidate(t *testing.T) {
	api := &fakeAuthAPI{loginOutcome: ashaOutcome()}
	mgr, store := newTestManager(t, api)

	require.True(t, mgr.Login(context.Background(), "9000000000", "secret").Success)

	mgr.Invalidate()

	assert.Equal(t, StateInvalid, mgr.State())
	assert.False(t, mgr.IsAuthenticated())
	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestScenarioLoginPurchaseBalanceUpdate(t *testing.T) {
	// login → authenticated with balance 500, then a ₹50 purchase drops the
	// cached balance to 450 while the token stays untouched.
	api := &fakeAuthAPI{loginOutcome: ashaOutcome()}
	mgr, store := newTestManager(t, api)

	res := mgr.Login(context.Background(), "9000000000", "secret")
	require.True(t, res.Success)
	assert.False(t, mgr.IsAdmin())
	assert.Equal(t, 500.0, mgr.Current().Balance)

	mgr.UpdateBalance(mgr.Current().Balance - 50)

	assert.Equal(t, "abc123", mgr.Token())
	assert.Equal(t, 450.0, mgr.Current().Balance)

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, 450.0, sess.Member.Balance)
}
