// Package guard holds the route-guard decision functions. Guards are pure:
// they inspect already-hydrated session state and never perform network
// calls, so every navigation attempt can be gated synchronously.
package guard

import (
	"github.com/khel-store/khel/internal/session"
)

// View identifies a navigable destination in the client.
type View string

const (
	ViewHome     View = "home"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewGames    View = "games"
	ViewAbout    View = "about"
	ViewContact  View = "contact"
	ViewWallet   View = "wallet"
	ViewProfile  View = "profile"
	ViewAdmin    View = "admin"
)

// Decision is the outcome of a guard evaluation. When Allowed is false the
// caller must navigate to RedirectTo instead; the attempted destination is
// discarded.
type Decision struct {
	Allowed    bool
	RedirectTo View
}

// RequireAuthenticated allows rendering only for an authenticated session;
// anything else redirects to the login view.
func RequireAuthenticated(state session.State, dest View) Decision {
	if state == session.StateAuthenticated {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RedirectTo: ViewLogin}
}

// RequireAdmin allows rendering only for an authenticated session holding
// the admin role; anything else redirects to the non-admin landing view.
func RequireAdmin(state session.State, isAdmin bool, dest View) Decision {
	if state == session.StateAuthenticated && isAdmin {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RedirectTo: ViewHome}
}

// ForView evaluates the guard appropriate for the destination: public views
// always render, admin views require the admin role, and everything else
// requires authentication.
func ForView(dest View, state session.State, isAdmin bool) Decision {
	switch dest {
	case ViewHome, ViewLogin, ViewRegister:
		return Decision{Allowed: true}
	case ViewAdmin:
		return RequireAdmin(state, isAdmin, dest)
	default:
		return RequireAuthenticated(state, dest)
	}
}
