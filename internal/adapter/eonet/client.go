package eonet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

const dayFormat = "2006-01-02"

// Client fetches natural events and categories from the NASA EONET v3 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an EONET feed client. A zero timeout leaves the HTTP
// client without a deadline; callers bound requests through ctx instead.
func NewClient(baseURL string, timeout time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchEvents retrieves all events, open and closed, from the trailing
// window ending now.
func (c *Client) FetchEvents(ctx context.Context, windowDays int) ([]domain.Event, error) {
	end := c.clock.Now().UTC()
	start := end.AddDate(0, 0, -windowDays)

	params := url.Values{
		"start":  {start.Format(dayFormat)},
		"end":    {end.Format(dayFormat)},
		"status": {"all"},
	}

	var resp eventsResponse
	if err := c.get(ctx, c.baseURL+"/events?"+params.Encode(), "events", &resp); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(resp.Events))
	for _, we := range resp.Events {
		events = append(events, we.toDomain())
	}

	c.logger.Debug("fetched events",
		"count", len(events),
		"start", start.Format(dayFormat),
		"end", end.Format(dayFormat))
	return events, nil
}

// FetchCategories retrieves the category catalog.
func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, c.baseURL+"/categories", "categories", &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("fetched categories", "count", len(resp.Categories))
	return resp.Categories, nil
}

func (c *Client) get(ctx context.Context, fullURL, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.WithLabelValues(resource).Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(resource, "error").Inc()
		return fmt.Errorf("%s request: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues(resource, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("eonet API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.FetchRequests.WithLabelValues(resource, "error").Inc()
		return fmt.Errorf("decode %s response: %w", resource, err)
	}

	c.metrics.FetchRequests.WithLabelValues(resource, "success").Inc()
	return nil
}

// EONET API response types.

type eventsResponse struct {
	Events []wireEvent `json:"events"`
}

type categoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type wireEvent struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Link          string            `json:"link"`
	Closed        string            `json:"closed"`
	Magnitude     domain.Magnitude  `json:"magnitudeValue"`
	MagnitudeUnit string            `json:"magnitudeUnit"`
	Categories    []domain.Category `json:"categories"`
	Geometry      []wireGeometry    `json:"geometry"`
}

type wireGeometry struct {
	Date          string           `json:"date"`
	Type          string           `json:"type"`
	Coordinates   json.RawMessage  `json:"coordinates"`
	Magnitude     domain.Magnitude `json:"magnitudeValue"`
	MagnitudeUnit string           `json:"magnitudeUnit"`
}

func (w wireEvent) toDomain() domain.Event {
	geometry := make([]domain.Geometry, 0, len(w.Geometry))
	for _, g := range w.Geometry {
		geometry = append(geometry, domain.Geometry{
			Date:          g.Date,
			Coordinates:   decodeCoordinates(g.Type, g.Coordinates),
			Magnitude:     g.Magnitude,
			MagnitudeUnit: g.MagnitudeUnit,
		})
	}
	return domain.Event{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		Link:          w.Link,
		Closed:        w.Closed,
		Magnitude:     w.Magnitude,
		MagnitudeUnit: w.MagnitudeUnit,
		Categories:    w.Categories,
		Geometry:      geometry,
	}
}

// decodeCoordinates flattens a frame's coordinates to a single [lon, lat]
// point. Point frames carry the pair directly; Polygon frames are reduced to
// the first vertex of the outer ring. Frames with shapes that fit neither
// keep their date and magnitude but no location.
func decodeCoordinates(geomType string, raw json.RawMessage) *orb.Point {
	if len(raw) == 0 {
		return nil
	}

	if geomType == "Point" {
		var p orb.Point
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil
		}
		return &p
	}

	var rings [][]orb.Point
	if err := json.Unmarshal(raw, &rings); err != nil {
		return nil
	}
	if len(rings) == 0 || len(rings[0]) == 0 {
		return nil
	}
	p := rings[0][0]
	return &p
}
