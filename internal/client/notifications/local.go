package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/travelrisk/internal/client/storage"
	"github.com/dmitrijs2005/travelrisk/internal/common"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

// LocalStore keeps the list in local storage under common.NotificationStorageKey.
// The full list is written back after every mutation.
type LocalStore struct {
	repo   storage.Repository
	logger logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	items []Item
}

// NewLocalStore loads the persisted list. Missing or unreadable data
// yields an empty list; the problem is logged, never returned.
func NewLocalStore(ctx context.Context, repo storage.Repository, logger logging.Logger) *LocalStore {
	s := &LocalStore{
		repo:   repo,
		logger: logger.With("component", "notifications", "mode", ModeLocal),
		now:    time.Now,
		items:  []Item{},
	}

	raw, err := repo.Get(ctx, common.NotificationStorageKey)
	if err != nil {
		s.logger.Error(ctx, "failed to read notifications", "error", err)
		return s
	}
	if len(raw) == 0 {
		return s
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Error(ctx, "failed to parse notifications, starting empty", "error", err)
		return s
	}
	if items != nil {
		s.items = items
	}
	return s
}

func (s *LocalStore) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *LocalStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countUnread(s.items)
}

func (s *LocalStore) Status() Status { return Status{} }

func (s *LocalStore) Close() error { return nil }

// Add inserts a new unread item at the head of the list.
func (s *LocalStore) Add(ctx context.Context, message string, severity Severity) (Item, error) {
	now := s.now()
	it := Item{
		ID:        fmt.Sprintf("notif-%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Message:   message,
		Timestamp: now.Format("15:04"),
		Read:      false,
		Severity:  normalizeSeverity(severity),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item{it}, s.items...)
	return it, s.persist(ctx)
}

func (s *LocalStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

func (s *LocalStore) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
		}
	}
	return s.persist(ctx)
}

func (s *LocalStore) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Read = true
	}
	return s.persist(ctx)
}

// persist must be called with mu held. A failed write keeps the in-memory
// change.
func (s *LocalStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := s.repo.Set(ctx, common.NotificationStorageKey, raw); err != nil {
		s.logger.Error(ctx, "failed to save notifications", "error", err)
		return err
	}
	return nil
}
