package routegate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/travelrisk/internal/client/session"
)

func TestDecide(t *testing.T) {
	user := &session.User{Email: "a@b.c"}
	g := New()

	tests := []struct {
		name string
		path string
		user *session.User
		want Decision
	}{
		{name: "auth page signed out", path: "/authenticate", want: Decision{Path: "/authenticate", State: BareAuthPage}},
		{name: "auth page signed in", path: "/authenticate", user: user, want: Decision{Path: "/authenticate", State: BareAuthPage}},
		{name: "auth page trailing slash", path: "/authenticate/", want: Decision{Path: "/authenticate", State: BareAuthPage}},
		{name: "home signed in", path: "/", user: user, want: Decision{Path: "/", State: AuthenticatedLayout}},
		{name: "home signed out", path: "", want: Decision{Path: "/", State: AuthenticatedLayout, Interstitial: true}},
		{name: "travelrisk signed out", path: "/travelrisk", want: Decision{Path: "/travelrisk", State: AuthenticatedLayout, Interstitial: true}},
		{name: "notifications signed in", path: "notifications", user: user, want: Decision{Path: "/notifications", State: AuthenticatedLayout}},
		{name: "unknown signed out", path: "/nowhere", want: Decision{Path: "/nowhere", State: AuthenticatedLayout, Interstitial: true}},
		{name: "user without email still counts", path: "/account", user: &session.User{}, want: Decision{Path: "/account", State: AuthenticatedLayout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Decide(tt.path, tt.user))
		})
	}
}

func TestDecide_ExtraBarePaths(t *testing.T) {
	g := New("/about/")
	assert.Equal(t, BareAuthPage, g.Decide("/about", nil).State)
	assert.Equal(t, BareAuthPage, g.Decide("/authenticate", nil).State)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"///":           "/",
		" /account/ ":   "/account",
		"about":         "/about",
		"/travelrisk//": "/travelrisk",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "authenticated-layout", AuthenticatedLayout.String())
	assert.Equal(t, "bare-auth-page", BareAuthPage.String())
	assert.Equal(t, "unknown", State(9).String())
}
