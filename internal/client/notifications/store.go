package notifications

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/travelrisk/internal/client/storage"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Item is one notification. Timestamp is a display string in local mode
// and the server's ISO-8601 time in remote mode.
type Item struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	Read      bool     `json:"read"`
	Severity  Severity `json:"type,omitempty"`
}

// Status reports the background state of a store. Err is the last
// user-facing failure message, or "".
type Status struct {
	Loading bool
	Err     string
}

type Store interface {
	// List returns a snapshot, newest first.
	List() []Item
	Add(ctx context.Context, message string, severity Severity) (Item, error)
	Remove(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	UnreadCount() int
	Status() Status
	Close() error
}

const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Deps are the collaborators New picks from, depending on mode.
type Deps struct {
	Repo    storage.Repository
	Alerts  AlertClient
	Session TokenSource
	Logger  logging.Logger
}

// New builds the store for mode. An empty mode selects ModeRemote.
func New(ctx context.Context, mode string, d Deps) (Store, error) {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	switch mode {
	case "", ModeRemote:
		if d.Alerts == nil || d.Session == nil {
			return nil, fmt.Errorf("remote notifications need an alerts client and a session")
		}
		return NewRemoteStore(d.Alerts, d.Session, d.Logger), nil
	case ModeLocal:
		if d.Repo == nil {
			return nil, fmt.Errorf("local notifications need a storage repository")
		}
		return NewLocalStore(ctx, d.Repo, d.Logger), nil
	default:
		return nil, fmt.Errorf("unknown notification mode %q", mode)
	}
}

func normalizeSeverity(s Severity) Severity {
	if s == "" {
		return SeverityInfo
	}
	return s
}

func countUnread(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// sortNewestFirst orders by parsed timestamp, descending. Items whose
// timestamp does not parse sort last and keep their relative order.
func sortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return parseTime(items[i].Timestamp).After(parseTime(items[j].Timestamp))
	})
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
