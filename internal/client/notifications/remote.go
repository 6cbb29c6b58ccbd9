package notifications

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/common"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

// AlertClient is the part of the backend RemoteStore uses.
type AlertClient interface {
	ListAlerts(ctx context.Context, token string) ([]api.Alert, error)
	CreateAlert(ctx context.Context, token, message, alertType string) (api.Alert, error)
	MarkAlertRead(ctx context.Context, token, id string) (api.Alert, error)
	MarkAllAlertsRead(ctx context.Context, token string) ([]api.Alert, error)
	DeleteAlert(ctx context.Context, token, id string) error
}

// TokenSource is the part of the session RemoteStore follows.
type TokenSource interface {
	Token() string
	OnTokenChange(fn func(token string)) (unsubscribe func())
}

const (
	msgLoggedOut    = "Not authenticated. Please log in."
	msgNoToken      = "Not authenticated."
	msgFetchFailed  = "Failed to fetch notifications."
	msgAddFailed    = "Failed to add notification."
	msgRemoveFailed = "Failed to remove notification."
	msgReadFailed   = "Failed to mark notification as read."
	msgReadAllFail  = "Failed to mark all notifications as read."
)

// RemoteStore mirrors /api/alerts for the current token.
//
// Every token change starts a background fetch tagged with a new
// generation. A fetch whose generation is no longer current, or that
// completes after Close, is discarded.
type RemoteStore struct {
	client AlertClient
	tokens TokenSource
	logger logging.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()

	mu      sync.Mutex
	items   []Item
	loading bool
	errMsg  string
	gen     uint64
	closed  bool
}

// NewRemoteStore subscribes to token changes and starts the first fetch.
func NewRemoteStore(client AlertClient, tokens TokenSource, logger logging.Logger) *RemoteStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &RemoteStore{
		client: client,
		tokens: tokens,
		logger: logger.With("component", "notifications", "mode", ModeRemote),
		ctx:    ctx,
		cancel: cancel,
		items:  []Item{},
	}
	s.unsubscribe = tokens.OnTokenChange(s.tokenChanged)
	s.tokenChanged(tokens.Token())
	return s
}

func (s *RemoteStore) tokenChanged(token string) {
	gen, ok := s.begin(token, true)
	if !ok {
		return
	}

	go func() {
		defer s.wg.Done()
		s.fetch(s.ctx, token, gen)
	}()
}

// begin opens a new generation. It reports false when there is nothing to
// fetch: the store is closed or token is empty. A background fetch is
// registered with the wait group before the lock is released.
func (s *RemoteStore) begin(token string, background bool) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, false
	}
	s.gen++
	if token == "" {
		s.items = []Item{}
		s.loading = false
		s.errMsg = msgLoggedOut
		return 0, false
	}
	s.loading = true
	s.errMsg = ""
	if background {
		s.wg.Add(1)
	}
	return s.gen, true
}

func (s *RemoteStore) fetch(ctx context.Context, token string, gen uint64) error {
	alerts, err := s.client.ListAlerts(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen {
		s.logger.Debug(ctx, "discarding stale notification fetch", "generation", gen)
		return err
	}
	s.loading = false
	if err != nil {
		s.logger.Error(ctx, "error fetching notifications", "error", err)
		s.errMsg = failureMessage(err, msgFetchFailed)
		return err
	}
	s.items = fromAlerts(alerts)
	sortNewestFirst(s.items)
	return nil
}

// Refresh fetches the list for the current token and waits for the result.
func (s *RemoteStore) Refresh(ctx context.Context) error {
	token := s.tokens.Token()
	gen, ok := s.begin(token, false)
	if !ok {
		if s.isClosed() {
			return nil
		}
		return common.ErrNotAuthenticated
	}
	return s.fetch(ctx, token, gen)
}

func (s *RemoteStore) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *RemoteStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countUnread(s.items)
}

func (s *RemoteStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Loading: s.loading, Err: s.errMsg}
}

func (s *RemoteStore) Add(ctx context.Context, message string, severity Severity) (Item, error) {
	token, err := s.token()
	if err != nil {
		return Item{}, err
	}

	a, err := s.client.CreateAlert(ctx, token, message, string(normalizeSeverity(severity)))
	if err != nil {
		return Item{}, s.fail(ctx, err, msgAddFailed, "error adding notification")
	}
	it := fromAlert(a)

	s.apply(func() {
		s.items = append([]Item{it}, s.items...)
		sortNewestFirst(s.items)
	})
	return it, nil
}

func (s *RemoteStore) Remove(ctx context.Context, id string) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	if err := s.client.DeleteAlert(ctx, token, id); err != nil {
		return s.fail(ctx, err, msgRemoveFailed, "error removing notification")
	}

	s.apply(func() {
		kept := make([]Item, 0, len(s.items))
		for _, it := range s.items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		s.items = kept
	})
	return nil
}

func (s *RemoteStore) MarkRead(ctx context.Context, id string) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	a, err := s.client.MarkAlertRead(ctx, token, id)
	if err != nil {
		return s.fail(ctx, err, msgReadFailed, "error marking notification as read")
	}
	updated := fromAlert(a)
	if updated.ID == "" {
		updated.ID = id
	}

	s.apply(func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i] = updated
			}
		}
	})
	return nil
}

func (s *RemoteStore) MarkAllRead(ctx context.Context) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	alerts, err := s.client.MarkAllAlertsRead(ctx, token)
	if err != nil {
		return s.fail(ctx, err, msgReadAllFail, "error marking all notifications as read")
	}
	items := fromAlerts(alerts)
	sortNewestFirst(items)

	s.apply(func() { s.items = items })
	return nil
}

// Close stops following the session and waits for in-flight fetches.
// It is safe to call more than once.
func (s *RemoteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *RemoteStore) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		s.mu.Lock()
		if !s.closed {
			s.errMsg = msgNoToken
		}
		s.mu.Unlock()
		return "", common.ErrNotAuthenticated
	}
	return token, nil
}

// apply runs fn under the lock unless the store is closed.
func (s *RemoteStore) apply(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn()
}

func (s *RemoteStore) fail(ctx context.Context, err error, fallback, logMsg string) error {
	s.logger.Error(ctx, logMsg, "error", err)
	s.apply(func() { s.errMsg = failureMessage(err, fallback) })
	return err
}

func (s *RemoteStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func failureMessage(err error, fallback string) string {
	if msg, ok := api.MessageOf(err); ok {
		return msg
	}
	return fallback
}

func fromAlert(a api.Alert) Item {
	return Item{
		ID:        a.ID,
		Message:   a.Message,
		Timestamp: a.Timestamp,
		Read:      a.Read,
		Severity:  Severity(a.Type),
	}
}

func fromAlerts(alerts []api.Alert) []Item {
	items := make([]Item, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, fromAlert(a))
	}
	return items
}
