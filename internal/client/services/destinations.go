package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/common"
)

// TokenSource yields the current bearer token, "" when signed out.
type TokenSource interface {
	Token() string
}

// DestinationClient is the destinations part of the backend.
type DestinationClient interface {
	ListDestinations(ctx context.Context, token string) ([]api.Destination, error)
	CreateDestination(ctx context.Context, token string, d api.Destination) (api.Destination, error)
	UpdateDestination(ctx context.Context, token string, d api.Destination) (api.Destination, error)
	DeleteDestination(ctx context.Context, token, id string) error
}

type DestinationService interface {
	List(ctx context.Context) ([]api.Destination, error)
	Add(ctx context.Context, d api.Destination) (api.Destination, error)
	Update(ctx context.Context, d api.Destination) (api.Destination, error)
	Delete(ctx context.Context, id string) error
}

type destinationService struct {
	client DestinationClient
	tokens TokenSource
}

func NewDestinationService(client DestinationClient, tokens TokenSource) DestinationService {
	return &destinationService{client: client, tokens: tokens}
}

func (s *destinationService) List(ctx context.Context) ([]api.Destination, error) {
	token, err := requireToken(s.tokens)
	if err != nil {
		return nil, err
	}
	list, err := s.client.ListDestinations(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return list, nil
}

func (s *destinationService) Add(ctx context.Context, d api.Destination) (api.Destination, error) {
	token, err := requireToken(s.tokens)
	if err != nil {
		return api.Destination{}, err
	}
	d.ID = ""
	out, err := s.client.CreateDestination(ctx, token, d)
	if err != nil {
		return api.Destination{}, fmt.Errorf("add destination: %w", err)
	}
	return out, nil
}

func (s *destinationService) Update(ctx context.Context, d api.Destination) (api.Destination, error) {
	if d.ID == "" {
		return api.Destination{}, fmt.Errorf("update destination: missing id")
	}
	token, err := requireToken(s.tokens)
	if err != nil {
		return api.Destination{}, err
	}
	out, err := s.client.UpdateDestination(ctx, token, d)
	if err != nil {
		return api.Destination{}, fmt.Errorf("update destination %s: %w", d.ID, err)
	}
	return out, nil
}

func (s *destinationService) Delete(ctx context.Context, id string) error {
	token, err := requireToken(s.tokens)
	if err != nil {
		return err
	}
	if err := s.client.DeleteDestination(ctx, token, id); err != nil {
		return fmt.Errorf("delete destination %s: %w", id, err)
	}
	return nil
}

// Filter keeps destinations whose location contains query, ignoring case,
// and, when countries is non-empty, whose location is one of countries.
func Filter(list []api.Destination, query string, countries []string) []api.Destination {
	q := strings.ToLower(strings.TrimSpace(query))
	allowed := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		allowed[c] = struct{}{}
	}

	out := make([]api.Destination, 0, len(list))
	for _, d := range list {
		if q != "" && !strings.Contains(strings.ToLower(d.Location), q) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[d.Location]; !ok {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

type RiskSeverity string

const (
	RiskDanger  RiskSeverity = "danger"
	RiskWarning RiskSeverity = "warning"
	RiskInfo    RiskSeverity = "info"
	RiskSuccess RiskSeverity = "success"
)

func SeverityOf(level int) RiskSeverity {
	switch {
	case level >= 80:
		return RiskDanger
	case level >= 60:
		return RiskWarning
	case level >= 40:
		return RiskInfo
	default:
		return RiskSuccess
	}
}

func requireToken(tokens TokenSource) (string, error) {
	token := tokens.Token()
	if token == "" {
		return "", common.ErrNotAuthenticated
	}
	return token, nil
}
