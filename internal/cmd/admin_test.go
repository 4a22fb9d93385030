package cmd

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khel-store/khel/internal/api"
	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/log"
	"github.com/khel-store/khel/internal/session"
)

// newAdminTestApp wires the application with a stored admin session pointed
// at the given server.
func newAdminTestApp(t *testing.T, serverURL string) {
	t.Helper()

	logCfg := log.DefaultConfig()
	logCfg.Output = log.NewOutput(io.Discard)
	logger := log.New(logCfg)

	adminStore := session.NewFileStore(t.TempDir(), session.NamespaceAdmin)
	require.NoError(t, adminStore.Save(&session.Session{
		Token:  "admin-token",
		Member: session.Member{ID: 9, Name: "Priya", Role: session.RoleAdmin},
	}))

	adminClient := api.NewClient(serverURL, api.StoreTokenSource(adminStore), logger)
	admin := session.NewAdminManager(adminStore, adminClient, logger)
	admin.Hydrate()

	app = &application{
		logger:      logger,
		adminStore:  adminStore,
		adminClient: adminClient,
		admin:       admin,
	}
}

func TestAdminDashboardDegradesWhenStatsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/validate":
			w.Write([]byte(`{"valid":true}`))
		case "/admin/dashboard":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"stats backend down"}`))
		}
	}))
	defer srv.Close()

	newAdminTestApp(t, srv.URL)
	adminDashboardCmd.SetContext(context.Background())

	// A stats failure renders a zero-value dashboard instead of failing the
	// command.
	err := runAdminDashboard(adminDashboardCmd, nil)
	assert.NoError(t, err)
}

func TestAdminDashboardPropagatesExpiredSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/validate":
			w.Write([]byte(`{"valid":true}`))
		case "/admin/dashboard":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Session expired"}`))
		}
	}))
	defer srv.Close()

	newAdminTestApp(t, srv.URL)
	adminDashboardCmd.SetContext(context.Background())

	err := runAdminDashboard(adminDashboardCmd, nil)
	require.Error(t, err)
	assert.Equal(t, kerrors.ErrCodeAuthSessionExpired, kerrors.CodeOf(err))
}

func TestAdminDashboardRequiresLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	newAdminTestApp(t, srv.URL)
	app.admin.Logout()
	adminDashboardCmd.SetContext(context.Background())

	err := runAdminDashboard(adminDashboardCmd, nil)
	require.Error(t, err)
	assert.Equal(t, kerrors.ErrCodeAuthNotLoggedIn, kerrors.CodeOf(err))
}
