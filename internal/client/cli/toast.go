package cli

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/client/session"
	"github.com/dmitrijs2005/travelrisk/internal/common"
)

// describeError turns err into the one-line message shown to the user.
func describeError(err error) string {
	var authErr *session.AuthenticationError
	switch {
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Not authenticated. Please log in."
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session is no longer valid. Please log in again."
	case errors.Is(err, api.ErrUnavailable):
		return "Cannot reach the server. Please try again."
	case errors.Is(err, api.ErrBadResponse):
		return "The server sent an unexpected response. Please try again."
	}
	if msg, ok := api.MessageOf(err); ok {
		return msg
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return "Request failed (" + http.StatusText(apiErr.StatusCode) + "). Please try again."
	}
	return "An unexpected error occurred: " + err.Error()
}

// toast prints a transient one-line message.
func (a *App) toast(severity, summary, detail string) {
	a.printf("[%s] %s: %s\n", severity, summary, detail)
}

func (a *App) toastError(summary string, err error) {
	a.toast("error", summary, describeError(err))
}

func itoa(n int) string { return strconv.Itoa(n) }
