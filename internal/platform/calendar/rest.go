package calendar

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
)

// RESTClient talks to a calendar bridge over HTTP. The bridge owns the
// provider credentials; this service only addresses calendars and events by
// identifier.
type RESTClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewRESTClient creates a calendar client for the given bridge base URL.
func NewRESTClient(baseURL string, logger zerolog.Logger) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *RESTClient) eventsURL(calendarID string) string {
	return fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(calendarID))
}

func (c *RESTClient) eventURL(calendarID, eventID string) string {
	return c.eventsURL(calendarID) + "/" + url.PathEscape(eventID)
}

func (c *RESTClient) do(ctx context.Context, method, u string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal event: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request: %w", err)
	}
	return resp, nil
}

// CreateEvent inserts an event and returns the bridge-assigned identifier.
func (c *RESTClient) CreateEvent(ctx context.Context, calendarID string, ev Event) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, c.eventsURL(calendarID), ev)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("create event: status %d: %s", resp.StatusCode, body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create event: bridge returned no event id")
	}

	c.logger.Debug().
		Str("calendar_id", calendarID).
		Str("event_id", created.ID).
		Msg("calendar event created")
	return created.ID, nil
}

// UpdateEvent patches an existing event's times.
func (c *RESTClient) UpdateEvent(ctx context.Context, calendarID, eventID string, ev Event) error {
	resp, err := c.do(ctx, http.MethodPatch, c.eventURL(calendarID, eventID), ev)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("update event %s: status %d: %s", eventID, resp.StatusCode, body)
	}
	return nil
}

// DeleteEvent removes an event.
func (c *RESTClient) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.eventURL(calendarID, eventID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("delete event %s: status %d: %s", eventID, resp.StatusCode, body)
	}
	return nil
}
