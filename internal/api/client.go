// Package api is the HTTP client for the booking backend. It is the only
// wire-facing surface of the rescheduling engine: listing appointments for a
// date window and updating an appointment's start time.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/figaroapp/figaro/internal/appointment"
)

// Client talks to the booking backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a backend client. timeout of zero means no client-side
// timeout; a hung update then simply keeps the appointment flagged as
// updating until the request resolves.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type appointmentDTO struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	BarberID        string    `json:"barber_id"`
	ClientID        string    `json:"client_id"`
	ClientName      string    `json:"client_name"`
	Service         string    `json:"service"`
	Status          string    `json:"status"`
}

func (d appointmentDTO) toDomain() *appointment.Appointment {
	return &appointment.Appointment{
		ID:              d.ID,
		StartTime:       d.StartTime,
		DurationMinutes: d.DurationMinutes,
		BarberID:        d.BarberID,
		ClientID:        d.ClientID,
		ClientName:      d.ClientName,
		Service:         d.Service,
		Status:          appointment.ParseStatus(d.Status),
	}
}

// ListAppointments fetches the appointments starting within [from, to].
func (c *Client) ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments?%s", c.baseURL, url.Values{
		"from": {from.Format("2006-01-02")},
		"to":   {to.Format("2006-01-02")},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var dtos []appointmentDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decoding appointments: %w", err)
	}

	appts := make([]*appointment.Appointment, 0, len(dtos))
	for _, d := range dtos {
		appts = append(appts, d.toDomain())
	}
	return appts, nil
}

type updateRequest struct {
	StartTime  time.Time `json:"start_time"`
	IsDragDrop bool      `json:"is_drag_drop"`
}

// UpdateAppointment moves an appointment to a new start time. dragDrop tells
// the backend the change came from a drag gesture rather than a form edit;
// the contract is otherwise identical to any appointment edit.
func (c *Client) UpdateAppointment(ctx context.Context, id string, newStart time.Time, dragDrop bool) error {
	body, err := json.Marshal(updateRequest{StartTime: newStart, IsDragDrop: dragDrop})
	if err != nil {
		return fmt.Errorf("encoding update request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/appointments/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building update request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	// Lets the backend correlate retries of the same logical request.
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// decodeError turns a non-2xx response into an *APIError so callers can
// classify it. Unparseable bodies still carry the HTTP status.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		apiErr.Code = "http_error"
		apiErr.Message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return apiErr
}
