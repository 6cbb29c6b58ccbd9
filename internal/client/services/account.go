package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
)

type AccountClient interface {
	Me(ctx context.Context, token string) (api.Account, error)
}

type AccountService interface {
	Me(ctx context.Context) (api.Account, error)
}

type accountService struct {
	client AccountClient
	tokens TokenSource
}

func NewAccountService(client AccountClient, tokens TokenSource) AccountService {
	return &accountService{client: client, tokens: tokens}
}

// Me fetches the signed-in account.
func (s *accountService) Me(ctx context.Context) (api.Account, error) {
	token, err := requireToken(s.tokens)
	if err != nil {
		return api.Account{}, err
	}
	acc, err := s.client.Me(ctx, token)
	if err != nil {
		return api.Account{}, fmt.Errorf("fetch account: %w", err)
	}
	return acc, nil
}
