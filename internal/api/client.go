// Package api is the outbound client for the external booking API. All
// booking state lives behind that API; this client never caches.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westcutz/booking-web/internal/domain/booking"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the booking API at baseURL
// (e.g. "http://localhost:8001").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.Logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// TimeSlots fetches the slot list for a date, optionally filtered by barber.
// The order is whatever the server returned.
func (c *Client) TimeSlots(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
	endpoint := c.baseURL + "/api/time-slots/" + url.PathEscape(date)
	if barberID != "" {
		endpoint += "?barber_id=" + url.QueryEscape(barberID)
	}

	var slots []booking.TimeSlot
	if err := c.getJSON(ctx, endpoint, &slots); err != nil {
		return nil, fmt.Errorf("fetch time slots for %s: %w", date, err)
	}
	return slots, nil
}

// CreateBooking submits a validated draft and returns the confirmation
// record. Validation happens before this call; the server still has the
// final word (slot races, past dates).
func (c *Client) CreateBooking(ctx context.Context, draft booking.Draft) (*booking.Booking, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var confirmed booking.Booking
	if err := c.do(req, &confirmed); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("booking_id", confirmed.ID).
		Str("date", confirmed.Date).
		Str("time_slot", confirmed.TimeSlot).
		Msg("booking created")

	return &confirmed, nil
}

// ListBookings fetches bookings, all upcoming when date is empty.
func (c *Client) ListBookings(ctx context.Context, date string) ([]booking.Booking, error) {
	endpoint := c.baseURL + "/api/bookings"
	if date != "" {
		endpoint += "?date=" + url.QueryEscape(date)
	}

	var bookings []booking.Booking
	if err := c.getJSON(ctx, endpoint, &bookings); err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking requests deletion of a booking by id.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("create cancel request: %w", err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("cancel booking %s: %w", id, err)
	}

	c.logger.Info().Str("booking_id", id).Msg("booking cancelled")
	return nil
}

// AdminLogin checks the admin password against the external endpoint.
func (c *Client) AdminLogin(ctx context.Context, password string) (bool, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return false, fmt.Errorf("encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/login", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(req, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Detail != "" {
			apiErr.Detail = body.Detail
		} else {
			apiErr.Detail = body.Message
		}
	}

	c.logger.Warn().
		Int("status", resp.StatusCode).
		Str("path", resp.Request.URL.Path).
		Str("detail", apiErr.Detail).
		Msg("booking api error")

	return apiErr
}
