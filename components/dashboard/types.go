package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// CampaignClient talks to the remote campaign store.
type CampaignClient interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	CreateCampaign(ctx context.Context, form CampaignForm) (Campaign, error)
}

// StateHook notifies transports (REST/WebSocket) about state changes.
type StateHook interface {
	StateChanged(ctx context.Context, event StateEvent) error
}

// CampaignStatus is the lifecycle flag reported by the campaign API.
type CampaignStatus string

const (
	StatusActive CampaignStatus = "Active"
	StatusPaused CampaignStatus = "Paused"
)

// ParseCampaignStatus accepts case-insensitive status names.
func ParseCampaignStatus(value string) (CampaignStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return StatusActive, nil
	case "paused":
		return StatusPaused, nil
	default:
		return "", fmt.Errorf("dashboard: unknown campaign status %q", value)
	}
}

// Valid reports whether the status is one of the known values.
func (s CampaignStatus) Valid() bool {
	return s == StatusActive || s == StatusPaused
}

// UnmarshalJSON normalizes status casing coming from the API.
func (s *CampaignStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseCampaignStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Campaign is one advertising campaign as returned by the API. Color is a display token.
type Campaign struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Status      CampaignStatus `json:"status"`
	Clicks      int64          `json:"clicks"`
	Cost        float64        `json:"cost"`
	Impressions int64          `json:"impressions"`
	Color       string         `json:"color"`
}

// CampaignForm is the create payload sent to POST /campaigns.
type CampaignForm struct {
	Name        string         `json:"name"`
	Status      CampaignStatus `json:"status"`
	Clicks      int64          `json:"clicks"`
	Cost        float64        `json:"cost"`
	Impressions int64          `json:"impressions"`
}

// EmptyCampaignForm returns the draft shown when the modal opens.
func EmptyCampaignForm() CampaignForm {
	return CampaignForm{Status: StatusActive}
}

// StateEvent describes changes that transports might care about.
type StateEvent struct {
	Reason string     `json:"reason"`
	Region string     `json:"region,omitempty"`
	Drag   *DragEvent `json:"drag,omitempty"`
	Notice *Notice    `json:"notice,omitempty"`
}

// Notice is a user-visible message produced by a failed or completed operation.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)
