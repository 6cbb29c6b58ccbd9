package api

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the login/register reply. Payload keeps the raw body so
// callers of Register can see whatever else the server returned.
type AuthResponse struct {
	Token   string          `json:"token"`
	Payload json.RawMessage `json:"-"`
}

type Account struct {
	ID                        string    `json:"_id"`
	Name                      string    `json:"name"`
	Email                     string    `json:"email"`
	Role                      string    `json:"role"`
	Location                  string    `json:"location"`
	ReceiveEmailNotifications bool      `json:"receiveEmailNotifications"`
	NotificationThreshold     int       `json:"notificationThreshold"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

type Destination struct {
	ID          string `json:"_id,omitempty"`
	Location    string `json:"location"`
	RiskLevel   int    `json:"riskLevel"`
	LastChecked string `json:"lastChecked,omitempty"`
}

// Alert is the wire form of a notification. The backend has served both
// "id" and Mongo's "_id"; either is accepted.
type Alert struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	Read      bool   `json:"read"`
	Timestamp string `json:"timestamp"`
}

func (a *Alert) UnmarshalJSON(b []byte) error {
	type alias Alert
	var wire struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*a = Alert(wire.alias)
	if a.ID == "" {
		a.ID = wire.MongoID
	}
	return nil
}

type CreateAlertRequest struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}
