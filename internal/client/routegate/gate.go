// Package routegate decides what a navigation shows: the authenticated
// layout with its navigation bar, or the bare authentication page.
package routegate

import (
	"strings"

	"github.com/dmitrijs2005/travelrisk/internal/client/session"
)

const (
	PathHome          = "/"
	PathTravelRisk    = "/travelrisk"
	PathNotifications = "/notifications"
	PathAccount       = "/account"
	PathAbout         = "/about"
	PathAuthenticate  = "/authenticate"
)

// InterstitialMessage replaces protected content when nobody is signed in.
const InterstitialMessage = "Please log in to continue."

type State int

const (
	AuthenticatedLayout State = iota
	BareAuthPage
)

func (s State) String() string {
	switch s {
	case AuthenticatedLayout:
		return "authenticated-layout"
	case BareAuthPage:
		return "bare-auth-page"
	default:
		return "unknown"
	}
}

// Decision is the outcome for one navigation. Interstitial is only ever
// set within AuthenticatedLayout.
type Decision struct {
	Path         string
	State        State
	Interstitial bool
}

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Label string
	Path  string
}

var NavItems = []NavItem{
	{Label: "Home", Path: PathHome},
	{Label: "Travel Risk Assessment", Path: PathTravelRisk},
	{Label: "Notifications", Path: PathNotifications},
	{Label: "Account", Path: PathAccount},
}

type Gate struct {
	bare map[string]struct{}
}

// New returns a gate whose bare paths are PathAuthenticate plus extra.
func New(extra ...string) *Gate {
	g := &Gate{bare: map[string]struct{}{PathAuthenticate: {}}}
	for _, p := range extra {
		g.bare[Normalize(p)] = struct{}{}
	}
	return g
}

// Decide is a pure function of path and user. It never redirects.
func (g *Gate) Decide(path string, user *session.User) Decision {
	p := Normalize(path)
	if _, ok := g.bare[p]; ok {
		return Decision{Path: p, State: BareAuthPage}
	}
	return Decision{Path: p, State: AuthenticatedLayout, Interstitial: user == nil}
}

// Normalize trims surrounding space and trailing slashes. The empty path
// becomes "/".
func Normalize(path string) string {
	p := strings.TrimRight(strings.TrimSpace(path), "/")
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
