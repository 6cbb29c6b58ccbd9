package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/travelrisk/internal/client/routegate"
)

const appTitle = "M&R Travel Risk Assessment Tool"

// Open navigates to path and renders whatever the gate allows there.
func (a *App) Open(ctx context.Context, path string) error {
	p := routegate.Normalize(path)
	return a.navigate(ctx, p, a.pageFor(p))
}

// navigate renders one route: the bare page for gate-excluded paths,
// otherwise the navigation bar followed by the page or, when nobody is
// signed in, the log-in interstitial. It never redirects.
func (a *App) navigate(ctx context.Context, path string, page func(context.Context) error) error {
	d := a.gate.Decide(path, a.session.User())
	a.logger.Debug(ctx, "navigate", "path", d.Path, "state", d.State.String(), "interstitial", d.Interstitial)

	if d.State == routegate.BareAuthPage {
		return page(ctx)
	}

	a.renderNav(d.Path)
	if d.Interstitial {
		a.println(routegate.InterstitialMessage)
		a.printf("Go to %s: type 'login' or 'register'.\n", routegate.PathAuthenticate)
		return nil
	}
	return page(ctx)
}

func (a *App) renderNav(current string) {
	items := make([]string, 0, len(routegate.NavItems))
	for _, it := range routegate.NavItems {
		label := it.Label
		if it.Path == routegate.PathNotifications {
			if n := a.notes.UnreadCount(); n > 0 {
				label = label + " (" + itoa(n) + ")"
			}
		}
		if it.Path == current {
			label = "[" + label + "]"
		}
		items = append(items, label)
	}
	a.println(appTitle + " | " + strings.Join(items, " | "))
}

func (a *App) pageFor(path string) func(context.Context) error {
	switch path {
	case routegate.PathHome:
		return a.homePage
	case routegate.PathTravelRisk:
		return func(ctx context.Context) error { return a.listDestinations(ctx, nil) }
	case routegate.PathNotifications:
		return a.listNotifications
	case routegate.PathAccount:
		return a.accountPage
	case routegate.PathAbout:
		return a.aboutPage
	case routegate.PathAuthenticate:
		return a.authPage
	default:
		return func(context.Context) error {
			a.printf("Page not found: %s\n", path)
			return nil
		}
	}
}

func (a *App) homePage(context.Context) error {
	a.println("Welcome to the Home Page")
	if u := a.session.User(); u != nil {
		a.printf("Hello, %s!\n", u.Email)
	}
	return nil
}

func (a *App) aboutPage(context.Context) error {
	a.println("About Team 11")
	a.println("Contact Us: support@team11.com")
	return nil
}

func (a *App) authPage(context.Context) error {
	a.println("Authentication")
	a.println("Type 'login' to sign in or 'register' to create an account.")
	return nil
}

func (a *App) accountPage(ctx context.Context) error {
	a.println("Loading account info...")
	acc, err := a.account.Me(ctx)
	if err != nil {
		a.toastError("Account", err)
		return err
	}
	a.println("Profile Settings")
	a.printf("  Name:     %s\n", acc.Name)
	a.printf("  Email:    %s\n", acc.Email)
	if acc.Role != "" {
		a.printf("  Role:     %s\n", acc.Role)
	}
	if acc.Location != "" {
		a.printf("  Location: %s\n", acc.Location)
	}
	a.printf("  Email notifications: %t (threshold %d)\n", acc.ReceiveEmailNotifications, acc.NotificationThreshold)
	return nil
}
