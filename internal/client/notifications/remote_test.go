package notifications

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/common"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

// ---- fakes ----

// fakeSession is a TokenSource whose token is changed by the test.
type fakeSession struct {
	mu        sync.Mutex
	token     string
	listeners map[int]func(string)
	next      int
}

func newFakeSession(token string) *fakeSession {
	return &fakeSession{token: token, listeners: map[int]func(string){}}
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) OnTokenChange(fn func(string)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeSession) set(token string) {
	f.mu.Lock()
	f.token = token
	fns := make([]func(string), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(token)
	}
}

func (f *fakeSession) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// fakeAlerts serves per-token lists. A gate registered for a token blocks
// ListAlerts for that token until the gate is closed or ctx ends.
type fakeAlerts struct {
	mu     sync.Mutex
	lists  map[string][]api.Alert
	gates  map[string]chan struct{}
	listed []string

	ListErr    error
	CreateErr  error
	DeleteErr  error
	MarkErr    error
	MarkAllErr error

	created api.Alert
	marked  api.Alert
	deleted []string
}

func newFakeAlerts() *fakeAlerts {
	return &fakeAlerts{lists: map[string][]api.Alert{}, gates: map[string]chan struct{}{}}
}

func (f *fakeAlerts) ListAlerts(ctx context.Context, token string) ([]api.Alert, error) {
	f.mu.Lock()
	f.listed = append(f.listed, token)
	gate := f.gates[token]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]api.Alert(nil), f.lists[token]...), nil
}

func (f *fakeAlerts) CreateAlert(_ context.Context, _, message, alertType string) (api.Alert, error) {
	if f.CreateErr != nil {
		return api.Alert{}, f.CreateErr
	}
	a := f.created
	a.Message = message
	a.Type = alertType
	return a, nil
}

func (f *fakeAlerts) MarkAlertRead(_ context.Context, _, _ string) (api.Alert, error) {
	return f.marked, f.MarkErr
}

func (f *fakeAlerts) MarkAllAlertsRead(_ context.Context, token string) ([]api.Alert, error) {
	if f.MarkAllErr != nil {
		return nil, f.MarkAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Alert, 0, len(f.lists[token]))
	for _, a := range f.lists[token] {
		a.Read = true
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlerts) DeleteAlert(_ context.Context, _, id string) error {
	f.deleted = append(f.deleted, id)
	return f.DeleteErr
}

func (f *fakeAlerts) listedTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listed...)
}

func sampleAlerts() []api.Alert {
	return []api.Alert{
		{ID: "old", Message: "old", Timestamp: "2025-01-01T10:00:00Z", Type: "info"},
		{ID: "new", Message: "new", Timestamp: "2025-01-03T10:00:00Z", Type: "danger"},
		{ID: "mid", Message: "mid", Timestamp: "2025-01-02T10:00:00Z", Read: true},
	}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func newRemote(t *testing.T, alerts *fakeAlerts, sess *fakeSession) *RemoteStore {
	t.Helper()
	s := NewRemoteStore(alerts, sess, logging.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func settled(s *RemoteStore) func() bool {
	return func() bool { return !s.Status().Loading }
}

// ---- TESTS ----

func TestRemote_InitialFetchSorted(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.lists["tok"] = sampleAlerts()

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.Eventually(t, settled(s), time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"new", "mid", "old"}, ids(s.List()))
	assert.Equal(t, 2, s.UnreadCount())
	assert.Equal(t, Status{}, s.Status())
}

func TestRemote_Unauthenticated(t *testing.T) {
	alerts := newFakeAlerts()
	s := newRemote(t, alerts, newFakeSession(""))

	assert.Empty(t, s.List())
	assert.Equal(t, Status{Err: "Not authenticated. Please log in."}, s.Status())
	assert.Empty(t, alerts.listedTokens())

	_, err := s.Add(context.Background(), "x", "")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Equal(t, "Not authenticated.", s.Status().Err)

	assert.ErrorIs(t, s.Remove(context.Background(), "x"), common.ErrNotAuthenticated)
	assert.ErrorIs(t, s.MarkRead(context.Background(), "x"), common.ErrNotAuthenticated)
	assert.ErrorIs(t, s.MarkAllRead(context.Background()), common.ErrNotAuthenticated)
	assert.ErrorIs(t, s.Refresh(context.Background()), common.ErrNotAuthenticated)
}

func TestRemote_RefetchOnTokenChange(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.lists["a"] = []api.Alert{{ID: "a1", Timestamp: "2025-01-01T00:00:00Z"}}
	alerts.lists["b"] = []api.Alert{{ID: "b1", Timestamp: "2025-01-01T00:00:00Z"}}
	sess := newFakeSession("a")

	s := newRemote(t, alerts, sess)
	require.Eventually(t, func() bool { return len(s.List()) == 1 && s.List()[0].ID == "a1" }, time.Second, 5*time.Millisecond)

	sess.set("b")
	require.Eventually(t, func() bool { return len(s.List()) == 1 && s.List()[0].ID == "b1" }, time.Second, 5*time.Millisecond)

	sess.set("")
	assert.Empty(t, s.List())
	assert.Equal(t, "Not authenticated. Please log in.", s.Status().Err)
	assert.Equal(t, []string{"a", "b"}, alerts.listedTokens())
}

func TestRemote_StaleFetchDiscarded(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.lists["slow"] = []api.Alert{{ID: "stale"}}
	alerts.lists["fast"] = []api.Alert{{ID: "fresh"}}
	gate := make(chan struct{})
	alerts.gates["slow"] = gate
	sess := newFakeSession("slow")

	s := newRemote(t, alerts, sess)
	require.Eventually(t, func() bool { return len(alerts.listedTokens()) == 1 }, time.Second, 5*time.Millisecond)

	sess.set("fast")
	require.Eventually(t, func() bool { return len(s.List()) == 1 }, time.Second, 5*time.Millisecond)

	close(gate)
	// give the slow fetch a chance to land; it must be dropped
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"fresh"}, ids(s.List()))
	assert.False(t, s.Status().Loading)
}

func TestRemote_CloseDropsInFlightAndStopsFollowing(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.lists["tok"] = []api.Alert{{ID: "late"}}
	alerts.gates["tok"] = make(chan struct{}) // never released; Close cancels it
	sess := newFakeSession("tok")

	s := NewRemoteStore(alerts, sess, logging.Nop())
	require.Eventually(t, func() bool { return len(alerts.listedTokens()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Empty(t, s.List())
	assert.Zero(t, sess.subscribers())

	sess.set("other")
	assert.Equal(t, []string{"tok"}, alerts.listedTokens())
}

func TestRemote_FetchError(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.ListErr = &api.Error{StatusCode: http.StatusInternalServerError, Message: "db down"}

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.Eventually(t, settled(s), time.Second, 5*time.Millisecond)
	assert.Equal(t, "db down", s.Status().Err)

	alerts.mu.Lock()
	alerts.ListErr = errors.New("dial tcp: refused")
	alerts.mu.Unlock()
	require.Error(t, s.Refresh(context.Background()))
	assert.Equal(t, "Failed to fetch notifications.", s.Status().Err)
}

func TestRemote_AddInsertsSorted(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.lists["tok"] = sampleAlerts()
	alerts.created = api.Alert{ID: "between", Timestamp: "2025-01-02T12:00:00Z"}

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.NoError(t, s.Refresh(context.Background()))

	it, err := s.Add(context.Background(), "Order shipped", "")
	require.NoError(t, err)
	assert.Equal(t, "Order shipped", it.Message)
	assert.Equal(t, SeverityInfo, it.Severity)
	assert.Equal(t, []string{"new", "between", "mid", "old"}, ids(s.List()))
}

func TestRemote_MutationFailureSetsError(t *testing.T) {
	alerts := newFakeAlerts()
	alerts.CreateErr = &api.Error{StatusCode: http.StatusBadRequest, Message: "Message is required"}
	alerts.DeleteErr = errors.New("boom")

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.NoError(t, s.Refresh(context.Background()))

	_, err := s.Add(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, "Message is required", s.Status().Err)

	require.Error(t, s.Remove(context.Background(), "x"))
	assert.Equal(t, "Failed to remove notification.", s.Status().Err)
}

func TestRemote_FailureWithoutServerMessageUsesFallback(t *testing.T) {
	ctx := context.Background()
	alerts := newFakeAlerts()
	alerts.CreateErr = &api.Error{StatusCode: http.StatusInternalServerError}
	alerts.DeleteErr = &api.Error{StatusCode: http.StatusInternalServerError}

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.NoError(t, s.Refresh(ctx))

	_, err := s.Add(ctx, "Order shipped", SeverityInfo)
	require.Error(t, err)
	assert.Equal(t, "Failed to add notification.", s.Status().Err)

	require.Error(t, s.Remove(ctx, "x"))
	assert.Equal(t, "Failed to remove notification.", s.Status().Err)
}

func TestRemote_RemoveMarkRead(t *testing.T) {
	ctx := context.Background()
	alerts := newFakeAlerts()
	alerts.lists["tok"] = sampleAlerts()
	alerts.marked = api.Alert{ID: "new", Message: "new", Timestamp: "2025-01-03T10:00:00Z", Read: true, Type: "danger"}

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.NoError(t, s.Refresh(ctx))

	require.NoError(t, s.MarkRead(ctx, "new"))
	assert.True(t, s.List()[0].Read)
	require.NoError(t, s.MarkRead(ctx, "new"))
	assert.Equal(t, 1, s.UnreadCount())

	require.NoError(t, s.Remove(ctx, "old"))
	assert.Equal(t, []string{"new", "mid"}, ids(s.List()))
	assert.Equal(t, []string{"old"}, alerts.deleted)
}

func TestRemote_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	alerts := newFakeAlerts()
	alerts.lists["tok"] = sampleAlerts()

	s := newRemote(t, alerts, newFakeSession("tok"))
	require.NoError(t, s.Refresh(ctx))
	require.NoError(t, s.MarkAllRead(ctx))

	assert.Equal(t, []string{"new", "mid", "old"}, ids(s.List()))
	for _, it := range s.List() {
		assert.True(t, it.Read)
	}
	assert.Zero(t, s.UnreadCount())
}

func TestNew_SelectsMode(t *testing.T) {
	ctx := context.Background()

	local, err := New(ctx, ModeLocal, Deps{Repo: setupRepo(t)})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, local)

	remote, err := New(ctx, "", Deps{Alerts: newFakeAlerts(), Session: newFakeSession("")})
	require.NoError(t, err)
	assert.IsType(t, &RemoteStore{}, remote)
	require.NoError(t, remote.Close())

	_, err = New(ctx, ModeLocal, Deps{})
	assert.Error(t, err)
	_, err = New(ctx, ModeRemote, Deps{})
	assert.Error(t, err)
	_, err = New(ctx, "carrier-pigeon", Deps{})
	assert.Error(t, err)
}
