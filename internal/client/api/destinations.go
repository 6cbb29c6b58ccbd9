package api

import (
	"context"
	"net/http"
	"net/url"
)

const destinationsPath = "/api/destinations"

func (c *Client) ListDestinations(ctx context.Context, token string) ([]Destination, error) {
	var out []Destination
	if _, err := c.do(ctx, http.MethodGet, destinationsPath, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDestination(ctx context.Context, token, id string) (Destination, error) {
	var out Destination
	if _, err := c.do(ctx, http.MethodGet, destinationsPath+"/"+url.PathEscape(id), token, nil, &out); err != nil {
		return Destination{}, err
	}
	return out, nil
}

func (c *Client) CreateDestination(ctx context.Context, token string, d Destination) (Destination, error) {
	var out Destination
	if _, err := c.do(ctx, http.MethodPost, destinationsPath, token, d, &out); err != nil {
		return Destination{}, err
	}
	return out, nil
}

func (c *Client) UpdateDestination(ctx context.Context, token string, d Destination) (Destination, error) {
	var out Destination
	if _, err := c.do(ctx, http.MethodPut, destinationsPath+"/"+url.PathEscape(d.ID), token, d, &out); err != nil {
		return Destination{}, err
	}
	return out, nil
}

func (c *Client) DeleteDestination(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, destinationsPath+"/"+url.PathEscape(id), token, nil, nil)
	return err
}
