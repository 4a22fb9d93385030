package ux

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/khel-store/khel/internal/api"
	"github.com/khel-store/khel/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Margin(0, 1, 1, 0)
	statLabelStyle = lipgloss.NewStyle().Faint(true)
)

// Rupees formats a monetary amount.
func Rupees(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// Success renders a success message.
func Success(msg string) string {
	return successStyle.Render(msg)
}

// Error renders a failure message.
func Error(msg string) string {
	return errorStyle.Render(msg)
}

// Title renders a section heading.
func Title(msg string) string {
	return titleStyle.Render(msg)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// GamesTable renders the catalog.
func GamesTable(games []api.Game) string {
	t := newTable("ID", "NAME", "PRICE", "PLAYERS", "DURATION")
	for _, g := range games {
		players := fmt.Sprintf("%d-%d", g.MinPlayer, g.MaxPlayer)
		t.Row(
			strconv.FormatInt(g.ID, 10),
			g.Name,
			Rupees(g.Price),
			players,
			fmt.Sprintf("%d min", g.Duration),
		)
	}
	return t.Render()
}

// MembersTable renders the admin member listing.
func MembersTable(members []session.Member) string {
	t := newTable("ID", "NAME", "PHONE", "ROLE", "BALANCE", "JOINED")
	for _, m := range members {
		t.Row(
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.PhoneNumber,
			string(m.Role),
			Rupees(m.Balance),
			m.JoiningDate,
		)
	}
	return t.Render()
}

// TransactionsTable renders a transaction history. The admin listing adds
// member and type columns the profile view does not carry.
func TransactionsTable(transactions []api.Transaction, admin bool) string {
	var t *table.Table
	if admin {
		t = newTable("ID", "MEMBER", "TYPE", "DESCRIPTION", "AMOUNT", "DATE")
		for _, txn := range transactions {
			t.Row(
				strconv.FormatInt(txn.ID, 10),
				strconv.FormatInt(txn.MemberID, 10),
				txn.Type,
				txn.Description,
				Rupees(txn.Amount),
				txn.When(),
			)
		}
	} else {
		t = newTable("GAME", "AMOUNT", "DATE")
		for _, txn := range transactions {
			t.Row(txn.GameName, Rupees(txn.Amount), txn.When())
		}
	}
	return t.Render()
}

// RechargesTable renders a recharge history.
func RechargesTable(recharges []api.Recharge, admin bool) string {
	var t *table.Table
	if admin {
		t = newTable("ID", "MEMBER", "AMOUNT", "STATUS", "DATE")
		for _, r := range recharges {
			t.Row(
				strconv.FormatInt(r.ID, 10),
				strconv.FormatInt(r.MemberID, 10),
				Rupees(r.Amount),
				r.Status,
				r.When(),
			)
		}
	} else {
		t = newTable("AMOUNT", "DATE")
		for _, r := range recharges {
			t.Row(Rupees(r.Amount), r.When())
		}
	}
	return t.Render()
}

// DashboardView renders the admin dashboard stat boxes.
func DashboardView(stats api.DashboardStats) string {
	box := func(label, value string) string {
		return statBoxStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				statLabelStyle.Render(label),
				lipgloss.NewStyle().Bold(true).Render(value),
			),
		)
	}

	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		box("Members", strconv.FormatInt(stats.TotalMembers, 10)),
		box("Games", strconv.FormatInt(stats.TotalGames, 10)),
		box("Transactions", strconv.FormatInt(stats.TotalTransactions, 10)),
		box("Recharges", strconv.FormatInt(stats.TotalRecharges, 10)),
	)
	money := lipgloss.JoinHorizontal(lipgloss.Top,
		box("Revenue", Rupees(stats.TotalRevenue)),
		box("Recharge volume", Rupees(stats.TotalRechargeAmount)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, counts, money)
}
