// Package client calls the tracker's JSON API. It backs the remote MCP mode
// and the aceestctl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/aceest/internal/models"
)

// APIError is a non-2xx response from the server. Message is the server's
// "error" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsRejected reports whether err is a 4xx answer, i.e. the server refused the
// input rather than failing.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

// Client talks to one tracker server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e models.ErrorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

// ListWorkouts fetches all workouts and the total duration.
func (c *Client) ListWorkouts(ctx context.Context) (models.WorkoutsResponse, error) {
	var resp models.WorkoutsResponse
	if err := c.do(ctx, http.MethodGet, "/api/workouts", nil, &resp); err != nil {
		return models.WorkoutsResponse{}, err
	}
	return resp, nil
}

// AddWorkout posts a workout and returns the server's confirmation message.
func (c *Client) AddWorkout(ctx context.Context, name, duration string) (string, error) {
	in := map[string]string{"workout_name": name, "duration": duration}
	var resp models.AddWorkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/workouts", in, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetWorkouts clears all workouts and returns the server's confirmation.
func (c *Client) ResetWorkouts(ctx context.Context) (string, error) {
	var resp models.AddWorkoutResponse
	if err := c.do(ctx, http.MethodDelete, "/api/workouts", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Health fetches the server's health payload.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return models.HealthResponse{}, err
	}
	return resp, nil
}
