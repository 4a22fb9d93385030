package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khel-store/khel/internal/session"
)

func TestLoginParsesNestedMember(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"token": "abc123",
			"member": {"id":1,"name":"Asha","phoneNumber":"9000000000","role":"USER","balance":500},
			"message": "Login successful"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	outcome, err := client.Login(context.Background(), "9000000000", "secret")
	require.NoError(t, err)

	assert.Equal(t, "9000000000", gotBody["phoneNumber"])
	assert.Equal(t, "secret", gotBody["password"])

	assert.Equal(t, "abc123", outcome.Token)
	assert.Equal(t, "Asha", outcome.Member.Name)
	assert.Equal(t, session.RoleUser, outcome.Member.Role)
	assert.Equal(t, 500.0, outcome.Member.Balance)
	assert.Equal(t, "Login successful", outcome.Message)
}

func TestLoginParsesRootLevelMember(t *testing.T) {
	// Some deployments return the member fields at the response root.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"token": "abc123",
			"id": 9,
			"name": "Priya",
			"phoneNumber": "9222222222",
			"roles": [{"authority":"ROLE_ADMIN"}],
			"balance": 0
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	outcome, err := client.Login(context.Background(), "9222222222", "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(9), outcome.Member.ID)
	assert.Equal(t, session.RoleAdmin, outcome.Member.Role)
}

func TestLoginNormalizesRoleShapes(t *testing.T) {
	shapes := []string{
		`["ADMIN"]`,
		`[{"name":"ADMIN"}]`,
		`[{"authority":"ROLE_ADMIN"}]`,
	}

	for _, shape := range shapes {
		t.Run(shape, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"token":"abc","member":{"id":1,"name":"Priya","roles":` + shape + `}}`))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil, nil)
			outcome, err := client.Login(context.Background(), "9222222222", "secret")
			require.NoError(t, err)
			assert.Equal(t, session.RoleAdmin, outcome.Member.Role)
		})
	}
}

func TestLoginRejectsTokenlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"member":{"id":1}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	_, err := client.Login(context.Background(), "9000000000", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"message":"Member registered successfully"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	msg, err := client.Register(context.Background(), "Asha", "9000000000", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Member registered successfully", msg)
}

func TestRegisterAdmin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register/admin", r.URL.Path)
		w.Write([]byte(`{"message":"Admin registered successfully"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	msg, err := client.RegisterAdmin(context.Background(), "Priya", "9222222222", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Admin registered successfully", msg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
		hasErr bool
	}{
		{"valid true", http.StatusOK, `{"valid":true}`, true, false},
		{"valid false", http.StatusOK, `{"valid":false}`, false, false},
		{"data payload means valid", http.StatusOK, `{"data":{"id":1}}`, true, false},
		{"401 is invalid", http.StatusUnauthorized, `{}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/auth/validate", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, StaticTokenSource("abc"), nil)
			valid, err := client.Validate(context.Background())
			if tt.hasErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, valid)
		})
	}
}
