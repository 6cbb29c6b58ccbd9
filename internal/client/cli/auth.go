package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/travelrisk/internal/client/forms"
	"github.com/dmitrijs2005/travelrisk/internal/client/notifications"
	"github.com/dmitrijs2005/travelrisk/internal/client/routegate"
)

// Login shows the authentication page in login mode. On success the user
// lands on the home page. Both outcomes are recorded as notifications.
func (a *App) Login(ctx context.Context) error {
	return a.navigate(ctx, routegate.PathAuthenticate, a.login)
}

// Register shows the authentication page in registration mode.
func (a *App) Register(ctx context.Context) error {
	return a.navigate(ctx, routegate.PathAuthenticate, a.register)
}

func (a *App) login(ctx context.Context) error {
	var f forms.LoginForm
	var err error

	if f.Email, err = a.prompt("Enter email"); err != nil {
		return err
	}
	if f.Password, err = a.promptPassword("Enter password"); err != nil {
		return err
	}
	if errs := f.Validate(); len(errs) > 0 {
		a.printFormErrors(errs)
		return nil
	}

	if err := a.session.Login(ctx, f.Email, f.Password); err != nil {
		a.logger.Warn(ctx, "login failed", "email", f.Email, "error", err)
		msg := describeError(err)
		a.notify(ctx, fmt.Sprintf("Login failed for %s. %s", f.Email, msg), notifications.SeverityWarning)
		a.toast("error", "Login Error", msg)
		return err
	}

	a.notify(ctx, fmt.Sprintf("Welcome back, %s! You have successfully logged in.", localPart(f.Email)), notifications.SeverityInfo)
	a.toast("success", "Login Success", "You are now logged in!")
	return a.Open(ctx, routegate.PathHome)
}

func (a *App) register(ctx context.Context) error {
	var f forms.RegisterForm
	var err error

	if f.Name, err = a.prompt("Enter name"); err != nil {
		return err
	}
	if f.Email, err = a.prompt("Enter email"); err != nil {
		return err
	}
	if f.Password, err = a.promptPassword("Enter password"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.promptPassword("Confirm password"); err != nil {
		return err
	}
	if errs := f.Validate(); len(errs) > 0 {
		a.printFormErrors(errs)
		return nil
	}

	if _, err := a.session.Register(ctx, f.Name, f.Email, f.Password); err != nil {
		a.logger.Warn(ctx, "registration failed", "email", f.Email, "error", err)
		msg := describeError(err)
		a.notify(ctx, fmt.Sprintf("Registration failed for %s. %s", f.Name, msg), notifications.SeverityWarning)
		a.toast("error", "Registration Error", msg)
		return err
	}

	a.notify(ctx, fmt.Sprintf("Welcome, %s! Your account has been successfully registered.", f.Name), notifications.SeverityInfo)
	a.toast("success", "Registration Success", "Your account has been created!")
	return a.Open(ctx, routegate.PathHome)
}

// Logout never fails; it also makes no network call.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.toast("info", "Logout", "You have been logged out.")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("You are not logged in.")
		return nil
	}
	if u.Email == "" {
		a.println("Logged in (no e-mail in token).")
		return nil
	}
	a.printf("Logged in as %s\n", u.Email)
	return nil
}

// notify records msg in the notification store. A failure is logged only:
// the remote store refuses additions while signed out.
func (a *App) notify(ctx context.Context, msg string, severity notifications.Severity) {
	if _, err := a.notes.Add(ctx, msg, severity); err != nil {
		a.logger.Warn(ctx, "could not record notification", "error", err)
	}
}

func (a *App) printFormErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		a.printf("  %s: %s\n", f, errs[f])
	}
}
