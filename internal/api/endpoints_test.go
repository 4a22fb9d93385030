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

func TestListGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"name":"Carrom","description":"Board classic","price":50,"minPlayer":2,"maxPlayer":4,"duration":30,"multipleOf":2,"gifURL":"https://cdn.khel.store/carrom.gif"},
			{"id":2,"name":"Chess","price":75,"minPlayer":2,"maxPlayer":2}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil)
	games, err := client.ListGames(context.Background())
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Equal(t, "Carrom", games[0].Name)
	assert.Equal(t, 50.0, games[0].Price)
	assert.Equal(t, 4, games[0].MaxPlayer)
	assert.Equal(t, "https://cdn.khel.store/carrom.gif", games[0].GifURL)
}

func TestCreateAndDeleteGame(t *testing.T) {
	var createdPath, deletedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createdPath = r.URL.Path
			var input GameInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "Ludo", input.Name)
			w.Write([]byte(`{"id":3,"name":"Ludo","price":25}`))
		case http.MethodDelete:
			deletedPath = r.URL.Path
			w.Write([]byte(`{"message":"Game deleted"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("admin-token"), nil)

	game, err := client.CreateGame(context.Background(), GameInput{Name: "Ludo", Price: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(3), game.ID)
	assert.Equal(t, "/admin/games", createdPath)

	require.NoError(t, client.DeleteGame(context.Background(), 3))
	assert.Equal(t, "/admin/games/3", deletedPath)
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/members/profile", r.URL.Path)
		w.Write([]byte(`{
			"member": {"id":1,"name":"Asha","phoneNumber":"9000000000","role":"USER","balance":450,"joiningDate":"2025-01-15"},
			"transactions": [{"id":10,"gameName":"Carrom","amount":50,"date":"2025-02-01"}],
			"recharges": [{"id":20,"amount":500,"date":"2025-01-20"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("abc"), nil)
	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Asha", profile.Member.Name)
	assert.Equal(t, session.RoleUser, profile.Member.Role)
	require.Len(t, profile.Transactions, 1)
	assert.Equal(t, "Carrom", profile.Transactions[0].GameName)
	require.Len(t, profile.Recharges, 1)
	assert.Equal(t, 500.0, profile.Recharges[0].Amount)
}

func TestGetMember(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/members/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"name":"Ravi","roles":["USER"],"balance":120}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("abc"), nil)
	member, err := client.GetMember(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Ravi", member.Name)
	assert.Equal(t, session.RoleUser, member.Role)
}

func TestListAndDeleteMembers(t *testing.T) {
	var deletedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/admin/members", r.URL.Path)
			w.Write([]byte(`[
				{"id":1,"name":"Asha","roles":["USER"],"balance":450,"joiningDate":"2025-01-15"},
				{"id":9,"name":"Priya","roles":[{"authority":"ROLE_ADMIN"}]}
			]`))
		case http.MethodDelete:
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("admin-token"), nil)

	members, err := client.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, session.RoleUser, members[0].Role)
	assert.Equal(t, session.RoleAdmin, members[1].Role)

	require.NoError(t, client.DeleteMember(context.Background(), 1))
	assert.Equal(t, "/admin/members/1", deletedPath)
}

func TestCreateRecharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recharges", r.URL.Path)
		var req map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 200.0, req["amount"])
		w.Write([]byte(`{"message":"Recharge successful"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("abc"), nil)
	msg, err := client.CreateRecharge(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, "Recharge successful", msg)
}

func TestListRecharges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/recharges", r.URL.Path)
		w.Write([]byte(`[{"id":1,"memberId":4,"amount":500,"status":"SUCCESS","rechargeDate":"2025-02-10"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("admin-token"), nil)
	recharges, err := client.ListRecharges(context.Background())
	require.NoError(t, err)

	require.Len(t, recharges, 1)
	assert.Equal(t, "SUCCESS", recharges[0].Status)
	assert.Equal(t, "2025-02-10", recharges[0].When())
}

func TestPurchase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/purchase", r.URL.Path)
		var req map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(2), req["gameId"])
		w.Write([]byte(`{"message":"Purchase successful"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("abc"), nil)
	msg, err := client.Purchase(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Purchase successful", msg)
}

func TestListTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/transactions", r.URL.Path)
		w.Write([]byte(`[{"id":1,"memberId":4,"amount":50,"type":"PURCHASE","description":"Carrom","transactionDate":"2025-02-11"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("admin-token"), nil)
	transactions, err := client.ListTransactions(context.Background())
	require.NoError(t, err)

	require.Len(t, transactions, 1)
	assert.Equal(t, "PURCHASE", transactions[0].Type)
	assert.Equal(t, "2025-02-11", transactions[0].When())
}

func TestDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/dashboard", r.URL.Path)
		w.Write([]byte(`{
			"totalMembers": 42,
			"totalGames": 7,
			"totalTransactions": 130,
			"totalRecharges": 51,
			"totalRevenue": 6500.5,
			"totalRechargeAmount": 21000
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticTokenSource("admin-token"), nil)
	stats, err := client.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), stats.TotalMembers)
	assert.Equal(t, 6500.5, stats.TotalRevenue)
	assert.Equal(t, 21000.0, stats.TotalRechargeAmount)
}
