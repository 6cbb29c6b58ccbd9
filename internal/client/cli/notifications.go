package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/travelrisk/internal/client/notifications"
	"github.com/dmitrijs2005/travelrisk/internal/client/routegate"
)

// refresher is implemented by stores that can refetch on demand.
type refresher interface {
	Refresh(ctx context.Context) error
}

// Notifications handles "notifications [list|add [-s severity] <msg>|read <id>|readall|rm <id>|refresh]".
func (a *App) Notifications(ctx context.Context, args []string) error {
	sub, rest := "list", []string(nil)
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	var page func(context.Context) error
	switch sub {
	case "list", "ls":
		page = a.listNotifications
	case "add":
		severity := notifications.SeverityInfo
		if len(rest) >= 2 && rest[0] == "-s" {
			severity = notifications.Severity(rest[1])
			rest = rest[2:]
		}
		msg := strings.Join(rest, " ")
		if msg == "" {
			a.println("Usage: notifications add [-s info|warning|danger] <message>")
			return nil
		}
		page = func(ctx context.Context) error { return a.addNotification(ctx, msg, severity) }
	case "read":
		if len(rest) == 0 {
			a.println("Usage: notifications read <id>")
			return nil
		}
		page = func(ctx context.Context) error { return a.markRead(ctx, rest[0]) }
	case "readall":
		page = a.markAllRead
	case "rm", "remove":
		if len(rest) == 0 {
			a.println("Usage: notifications rm <id>")
			return nil
		}
		page = func(ctx context.Context) error { return a.removeNotification(ctx, rest[0]) }
	case "refresh":
		page = a.refreshNotifications
	default:
		a.printf("Unknown notifications command: %s\n", sub)
		return nil
	}
	return a.navigate(ctx, routegate.PathNotifications, page)
}

func (a *App) listNotifications(context.Context) error {
	st := a.notes.Status()
	if st.Loading {
		a.println("Loading notifications...")
	}
	if st.Err != "" {
		a.printf("[error] %s\n", st.Err)
	}

	items := a.notes.List()
	if len(items) == 0 {
		a.println("You have no notifications.")
		return nil
	}
	for _, it := range items {
		mark := " "
		if !it.Read {
			mark = "*"
		}
		a.printf("%s %s  %s  [%s] %s\n", mark, it.ID, it.Timestamp, it.Severity, it.Message)
	}
	return nil
}

func (a *App) addNotification(ctx context.Context, msg string, severity notifications.Severity) error {
	it, err := a.notes.Add(ctx, msg, severity)
	if err != nil {
		a.toastError("Notifications", err)
		return err
	}
	a.toast("success", "Notification Added", it.ID)
	return nil
}

func (a *App) markRead(ctx context.Context, id string) error {
	if err := a.notes.MarkRead(ctx, id); err != nil {
		a.toastError("Notifications", err)
		return err
	}
	return a.listNotifications(ctx)
}

func (a *App) markAllRead(ctx context.Context) error {
	if err := a.notes.MarkAllRead(ctx); err != nil {
		a.toastError("Notifications", err)
		return err
	}
	return a.listNotifications(ctx)
}

func (a *App) removeNotification(ctx context.Context, id string) error {
	if err := a.notes.Remove(ctx, id); err != nil {
		a.toastError("Notifications", err)
		return err
	}
	return a.listNotifications(ctx)
}

func (a *App) refreshNotifications(ctx context.Context) error {
	r, ok := a.notes.(refresher)
	if !ok {
		return a.listNotifications(ctx)
	}
	if err := r.Refresh(ctx); err != nil {
		a.toastError("Notifications", err)
		return err
	}
	return a.listNotifications(ctx)
}
