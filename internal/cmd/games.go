package cmd

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/khel-store/khel/internal/api"
	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/guard"
	"github.com/khel-store/khel/internal/tui"
	"github.com/khel-store/khel/internal/ux"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Browse and buy games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game catalog",
	Long: `Fetch and display the game catalog. Requires a signed-in session.

Examples:
  khel games list
  khel games list --format json`,
	RunE: runGamesList,
}

var gamesBuyCmd = &cobra.Command{
	Use:   "buy <game-id>",
	Short: "Buy a game against your wallet balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesBuy,
}

var gamesBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Open an interactive catalog browser. Navigate with the arrow keys,
press enter to buy the selected game, q to quit.`,
	RunE: runGamesBrowse,
}

func runGamesList(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewGames); err != nil {
		return err
	}

	games, err := app.client.ListGames(cmd.Context())
	if err != nil {
		return err
	}

	if structured() {
		return emit(games)
	}

	fmt.Println(ux.Title("Game Catalog"))
	fmt.Println(ux.GamesTable(games))
	return nil
}

func runGamesBuy(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewGames); err != nil {
		return err
	}

	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return kerrors.New(kerrors.ErrCodeAPINotFound,
			fmt.Sprintf("invalid game id %q", args[0]))
	}

	games, err := app.client.ListGames(cmd.Context())
	if err != nil {
		return err
	}
	game, ok := findGame(games, gameID)
	if !ok {
		return kerrors.New(kerrors.ErrCodeAPINotFound,
			fmt.Sprintf("no game with id %d", gameID))
	}

	member := app.sessions.Current()
	if member != nil && member.Balance < game.Price {
		return kerrors.New(kerrors.ErrCodeWalletInsufficient,
			fmt.Sprintf("insufficient balance: %s available, %s needed",
				ux.Rupees(member.Balance), ux.Rupees(game.Price))).
			WithSuggestion("Recharge with 'khel wallet recharge <amount>'")
	}

	msg, err := app.client.Purchase(cmd.Context(), gameID)
	if err != nil {
		return err
	}

	if member != nil {
		app.sessions.UpdateBalance(member.Balance - game.Price)
	}

	fmt.Println(ux.Success(msg))
	if current := app.sessions.Current(); current != nil {
		fmt.Printf("New balance: %s\n", ux.Rupees(current.Balance))
	}
	return nil
}

func runGamesBrowse(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewGames); err != nil {
		return err
	}

	games, err := app.client.ListGames(cmd.Context())
	if err != nil {
		return err
	}

	purchase := func(gameID int64) (string, error) {
		game, ok := findGame(games, gameID)
		if !ok {
			return "", kerrors.New(kerrors.ErrCodeAPINotFound,
				fmt.Sprintf("no game with id %d", gameID))
		}

		msg, err := app.client.Purchase(cmd.Context(), gameID)
		if err != nil {
			return "", err
		}
		if member := app.sessions.Current(); member != nil {
			app.sessions.UpdateBalance(member.Balance - game.Price)
		}
		return msg, nil
	}

	model := tui.NewBrowseModel(games, purchase)
	_, err = tea.NewProgram(model).Run()
	return err
}

func findGame(games []api.Game, id int64) (api.Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return api.Game{}, false
}

func init() {
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesBuyCmd)
	gamesCmd.AddCommand(gamesBrowseCmd)
	rootCmd.AddCommand(gamesCmd)
}
