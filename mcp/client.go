// Package mcp exposes the booking API as MCP tools so an external agent
// can drive the booking flow. Every tool is a thin proxy over the HTTP
// surface; webhook validation is simulated client-side (dry run only).
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flupp/models"
)

// Client is a minimal HTTP client for the booking API.
type Client struct {
	BaseURL string
	http    *http.Client
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// apiError mirrors the API's uniform error envelope.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Health checks the API liveness probe.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBooking creates a booking.
func (c *Client) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBooking fetches a booking by id.
func (c *Client) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBookingStatus patches a booking's status.
func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	var out models.Booking
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePaymentIntent opens a payment intent for a booking.
func (c *Client) CreatePaymentIntent(ctx context.Context, bookingID string) (*models.CreateIntentResult, error) {
	var out models.CreateIntentResult
	body := models.CreateIntentInput{BookingID: bookingID}
	if err := c.do(ctx, http.MethodPost, "/api/payments/create-intent", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, apiErr.Error, apiErr.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}
