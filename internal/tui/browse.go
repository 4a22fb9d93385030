package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/khel-store/khel/internal/api"
)

// PurchaseFunc performs the purchase for the selected game and returns the
// server's confirmation message.
type PurchaseFunc func(gameID int64) (string, error)

type purchaseDoneMsg struct {
	message string
	err     error
}

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	browseHelpStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	browseResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1)
)

// BrowseModel is an interactive catalog browser. Enter purchases the
// selected game; q quits.
type BrowseModel struct {
	table    table.Model
	spinner  spinner.Model
	games    []api.Game
	purchase PurchaseFunc
	buying   bool
	result   string
	err      error
}

// NewBrowseModel builds the browser over a loaded catalog.
func NewBrowseModel(games []api.Game, purchase PurchaseFunc) BrowseModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Price", Width: 12},
		{Title: "Players", Width: 9},
		{Title: "Duration", Width: 10},
	}

	rows := make([]table.Row, 0, len(games))
	for _, g := range games {
		rows = append(rows, table.Row{
			strconv.FormatInt(g.ID, 10),
			g.Name,
			fmt.Sprintf("₹%.2f", g.Price),
			fmt.Sprintf("%d-%d", g.MinPlayer, g.MaxPlayer),
			fmt.Sprintf("%d min", g.Duration),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 12)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("99"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return BrowseModel{
		table:    t,
		spinner:  s,
		games:    games,
		purchase: purchase,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.buying {
				return m, nil
			}
			game, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.buying = true
			m.result = ""
			m.err = nil
			buy := func() tea.Msg {
				message, err := m.purchase(game.ID)
				return purchaseDoneMsg{message: message, err: err}
			}
			return m, tea.Batch(m.spinner.Tick, buy)
		}

	case purchaseDoneMsg:
		m.buying = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.result = msg.message
		}
		return m, nil

	case spinner.TickMsg:
		if !m.buying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowseModel) View() string {
	sections := []string{
		browseTitleStyle.Render("Game Catalog"),
		m.table.View(),
	}

	switch {
	case m.buying:
		sections = append(sections, browseHelpStyle.Render(m.spinner.View()+" purchasing..."))
	case m.err != nil:
		sections = append(sections, browseErrorStyle.Render(m.err.Error()))
	case m.result != "":
		sections = append(sections, browseResultStyle.Render(m.result))
	}

	sections = append(sections, browseHelpStyle.Render("↑/↓ navigate • enter buy • q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BrowseModel) selected() (api.Game, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.games) {
		return api.Game{}, false
	}
	return m.games[idx], true
}
