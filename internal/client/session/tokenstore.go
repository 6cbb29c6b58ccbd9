package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/travelrisk/internal/client/storage"
	"github.com/dmitrijs2005/travelrisk/internal/common"
)

// TokenStore persists the single bearer token in durable local storage.
type TokenStore struct {
	repo storage.Repository
}

func NewTokenStore(repo storage.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(v), nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
