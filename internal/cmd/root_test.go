package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khel-store/khel/internal/api"
)

func commandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

func TestRootCommandTree(t *testing.T) {
	names := commandNames(rootCmd)
	for _, want := range []string{
		"login", "logout", "register", "status",
		"games", "wallet", "profile", "member", "admin", "config", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestGamesSubcommands(t *testing.T) {
	assert.ElementsMatch(t, []string{"list", "buy", "browse"}, commandNames(gamesCmd))
}

func TestAdminSubcommands(t *testing.T) {
	names := commandNames(adminCmd)
	for _, want := range []string{
		"login", "logout", "status", "dashboard",
		"members", "games", "transactions", "recharges",
	} {
		assert.Contains(t, names, want)
	}
}

func TestFindGame(t *testing.T) {
	games := []api.Game{{ID: 1, Name: "Carrom"}, {ID: 2, Name: "Chess"}}

	game, ok := findGame(games, 2)
	require.True(t, ok)
	assert.Equal(t, "Chess", game.Name)

	_, ok = findGame(games, 99)
	assert.False(t, ok)
}
