package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const alertsPath = "/api/alerts"

func (c *Client) ListAlerts(ctx context.Context, token string) ([]Alert, error) {
	raw, err := c.do(ctx, http.MethodGet, alertsPath, token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeAlertList(raw)
}

func (c *Client) CreateAlert(ctx context.Context, token, message, alertType string) (Alert, error) {
	raw, err := c.do(ctx, http.MethodPost, alertsPath, token, CreateAlertRequest{Message: message, Type: alertType}, nil)
	if err != nil {
		return Alert{}, err
	}
	return decodeAlert(raw)
}

func (c *Client) MarkAlertRead(ctx context.Context, token, id string) (Alert, error) {
	raw, err := c.do(ctx, http.MethodPut, alertsPath+"/mark-read/"+url.PathEscape(id), token, struct{}{}, nil)
	if err != nil {
		return Alert{}, err
	}
	return decodeAlert(raw)
}

func (c *Client) MarkAllAlertsRead(ctx context.Context, token string) ([]Alert, error) {
	raw, err := c.do(ctx, http.MethodPut, alertsPath+"/mark-all-read", token, struct{}{}, nil)
	if err != nil {
		return nil, err
	}
	return decodeAlertList(raw)
}

func (c *Client) DeleteAlert(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, alertsPath+"/"+url.PathEscape(id), token, nil, nil)
	return err
}

// decodeAlertList accepts a bare array or the {"alerts": [...]} envelope.
func decodeAlertList(raw []byte) ([]Alert, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []Alert
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		return list, nil
	}
	var env struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if env.Alerts == nil {
		return []Alert{}, nil
	}
	return env.Alerts, nil
}

// decodeAlert accepts a bare object or the {"alert": {...}} envelope.
func decodeAlert(raw []byte) (Alert, error) {
	var env struct {
		Alert *Alert `json:"alert"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Alert{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if env.Alert != nil {
		return *env.Alert, nil
	}
	var a Alert
	if err := json.Unmarshal(raw, &a); err != nil {
		return Alert{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return a, nil
}
