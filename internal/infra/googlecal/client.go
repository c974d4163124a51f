package googlecal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/holistia-mx/availability-engine/internal/bridge"
	"github.com/holistia-mx/availability-engine/internal/config"
	"github.com/holistia-mx/availability-engine/internal/models"
)

// Client talks to the Google Calendar REST API. Every request carries the
// configured timeout; the bridge interface keeps this swappable for other
// providers.
type Client struct {
	http *http.Client
	base string
}

func New(cfg *config.Config) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.CalendarTimeout},
		base: cfg.CalendarAPIBase,
	}
}

// --------------------------------------------------
// Wire Types
// --------------------------------------------------

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

type wireEvent struct {
	ID           string    `json:"id,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	Description  string    `json:"description,omitempty"`
	Transparency string    `json:"transparency,omitempty"`
	Status       string    `json:"status,omitempty"`
	Start        eventTime `json:"start"`
	End          eventTime `json:"end"`
}

type eventList struct {
	Items []wireEvent `json:"items"`
}

// --------------------------------------------------
// CalendarClient
// --------------------------------------------------

func (c *Client) Ping(ctx context.Context, conn *models.CalendarConnection) error {
	endpoint := fmt.Sprintf("%s/calendars/%s", c.base, url.PathEscape(conn.CalendarID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calendar ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) ListUpcomingEvents(
	ctx context.Context,
	conn *models.CalendarConnection,
	window time.Duration,
) ([]bridge.CalendarEvent, error) {

	now := time.Now().UTC()

	q := url.Values{}
	q.Set("timeMin", now.Format(time.RFC3339))
	q.Set("timeMax", now.Add(window).Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", "250")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.base, url.PathEscape(conn.CalendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar list: status %d", resp.StatusCode)
	}

	var list eventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}

	var events []bridge.CalendarEvent
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}
		ev, err := fromWire(item)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *Client) CreateEvent(
	ctx context.Context,
	conn *models.CalendarConnection,
	ev bridge.CalendarEvent,
) error {

	body, err := json.Marshal(toWire(ev))
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events",
		c.base, url.PathEscape(conn.CalendarID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("calendar create: status %d", resp.StatusCode)
	}
	return nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func fromWire(item wireEvent) (bridge.CalendarEvent, error) {
	ev := bridge.CalendarEvent{
		ID:          item.ID,
		Title:       item.Summary,
		Description: item.Description,
		Transparent: item.Transparency == "transparent",
	}

	var err error
	if item.Start.Date != "" {
		ev.AllDay = true
		ev.Start, err = time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return ev, err
		}
		ev.End, err = time.Parse("2006-01-02", item.End.Date)
		return ev, err
	}

	ev.Start, err = time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return ev, err
	}
	ev.End, err = time.Parse(time.RFC3339, item.End.DateTime)
	return ev, err
}

func toWire(ev bridge.CalendarEvent) wireEvent {
	out := wireEvent{
		ID:          ev.ID,
		Summary:     ev.Title,
		Description: ev.Description,
	}

	if ev.AllDay {
		out.Start = eventTime{Date: ev.Start.Format("2006-01-02")}
		out.End = eventTime{Date: ev.End.Format("2006-01-02")}
		return out
	}

	out.Start = eventTime{DateTime: ev.Start.Format(time.RFC3339)}
	out.End = eventTime{DateTime: ev.End.Format(time.RFC3339)}
	return out
}

var _ bridge.CalendarClient = (*Client)(nil)
