package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"
	"activity-dashboard/internal/validation"

	"github.com/rs/zerolog"
)

// Backend endpoints
const (
	EndpointUsers              = "/users"
	EndpointDailyStats         = "/stats/daily"
	EndpointWeeklyStats        = "/stats/weekly"
	EndpointMonthlyStats       = "/stats/monthly"
	EndpointTimeline           = "/analytics/timeline"
	EndpointHeatmap            = "/analytics/activity-heatmap"
	EndpointTeamSummary        = "/analytics/team-summary"
	EndpointProductivityTrends = "/analytics/productivity-trends"
	EndpointBreakPatterns      = "/analytics/break-patterns"
	EndpointFocusScore         = "/analytics/focus-score"
)

// RequestIDHeader carries the correlation id to the backend
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 8 << 20

// PayloadValidator checks a raw response body against a named schema
type PayloadValidator interface {
	Validate(schema string, body []byte) error
}

// StatsAPIClient wraps an HTTP client for the statistics backend
type StatsAPIClient struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	validator  PayloadValidator
	log        zerolog.Logger
}

// NewStatsAPIClient creates a client for the backend at baseURL.
// A nil validator disables payload validation.
func NewStatsAPIClient(baseURL string, timeout time.Duration, validator PayloadValidator) (*StatsAPIClient, error) {
	hostURL := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if hostURL == "" {
		return nil, fmt.Errorf("stats API URL is required")
	}
	if _, err := url.ParseRequestURI(hostURL); err != nil {
		return nil, fmt.Errorf("invalid stats API URL: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("stats API timeout must be positive")
	}

	return &StatsAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    hostURL,
		timeout:    timeout,
		validator:  validator,
		log:        logger.WithComponent("stats-client"),
	}, nil
}

// BaseURL returns the backend root the client talks to
func (c *StatsAPIClient) BaseURL() string {
	return c.baseURL
}

// FetchUsers returns every known username
func (c *StatsAPIClient) FetchUsers(ctx context.Context) ([]string, error) {
	var resp models.UsersResponse
	if err := c.get(ctx, EndpointUsers, nil, validation.SchemaUsers, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []string{}
	}
	return resp.Users, nil
}

// FetchDailyStats returns one user's stats for date (YYYY-MM-DD)
func (c *StatsAPIClient) FetchDailyStats(ctx context.Context, user, date string) (*models.DailyStat, error) {
	var stat models.DailyStat
	if err := c.get(ctx, EndpointDailyStats, userQuery(user, "date", date), validation.SchemaDailyStat, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// FetchWeeklyStats returns one user's stats for week (YYYY-Www)
func (c *StatsAPIClient) FetchWeeklyStats(ctx context.Context, user, week string) (*models.WeeklyStat, error) {
	var stat models.WeeklyStat
	if err := c.get(ctx, EndpointWeeklyStats, userQuery(user, "week", week), validation.SchemaWeeklyStat, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// FetchMonthlyStats returns one user's stats for month (YYYY-MM)
func (c *StatsAPIClient) FetchMonthlyStats(ctx context.Context, user, month string) (*models.MonthlyStat, error) {
	var stat models.MonthlyStat
	if err := c.get(ctx, EndpointMonthlyStats, userQuery(user, "month", month), validation.SchemaMonthlyStat, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// FetchTimeline returns the ordered event list for a user-day
func (c *StatsAPIClient) FetchTimeline(ctx context.Context, user, date string) (*models.Timeline, error) {
	var timeline models.Timeline
	if err := c.get(ctx, EndpointTimeline, userQuery(user, "date", date), validation.SchemaTimeline, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// FetchHeatmap returns the hourly intensity map for a user-day
func (c *StatsAPIClient) FetchHeatmap(ctx context.Context, user, date string) (*models.HeatmapData, error) {
	var heatmap models.HeatmapData
	if err := c.get(ctx, EndpointHeatmap, userQuery(user, "date", date), validation.SchemaHeatmap, &heatmap); err != nil {
		return nil, err
	}
	return &heatmap, nil
}

// FetchTeamSummary returns the team stats for date; an empty date lets
// the backend pick its latest day
func (c *StatsAPIClient) FetchTeamSummary(ctx context.Context, date string) (*models.TeamSummary, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var summary models.TeamSummary
	if err := c.get(ctx, EndpointTeamSummary, query, validation.SchemaTeamSummary, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchProductivityTrends returns the last days of scores, oldest first
func (c *StatsAPIClient) FetchProductivityTrends(ctx context.Context, user string, days int) (*models.ProductivityTrends, error) {
	var trends models.ProductivityTrends
	if err := c.get(ctx, EndpointProductivityTrends, userQuery(user, "days", strconv.Itoa(days)), validation.SchemaProductivityTrends, &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}

// FetchBreakPatterns returns the break analysis for a user-day
func (c *StatsAPIClient) FetchBreakPatterns(ctx context.Context, user, date string) (*models.BreakPatterns, error) {
	var patterns models.BreakPatterns
	if err := c.get(ctx, EndpointBreakPatterns, userQuery(user, "date", date), validation.SchemaBreakPatterns, &patterns); err != nil {
		return nil, err
	}
	return &patterns, nil
}

// FetchFocusScore returns the focus metrics for a user-day
func (c *StatsAPIClient) FetchFocusScore(ctx context.Context, user, date string) (*models.FocusScore, error) {
	var score models.FocusScore
	if err := c.get(ctx, EndpointFocusScore, userQuery(user, "date", date), validation.SchemaFocusScore, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

func userQuery(user, key, value string) url.Values {
	query := url.Values{}
	query.Set("user", user)
	query.Set(key, value)
	return query
}

// get performs a GET against endpoint and decodes the body into out
func (c *StatsAPIClient) get(ctx context.Context, endpoint string, query url.Values, schema string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = utils.GenerateUUID()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("endpoint", endpoint).Str("request_id", requestID).Msg("Stats API request failed")
		return fmt.Errorf("failed to execute request to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Stats API response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &HTTPError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if c.validator != nil {
		if err := c.validator.Validate(schema, body); err != nil {
			c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("Stats API payload rejected")
			return fmt.Errorf("%s: %w: %v", endpoint, ErrInvalidPayload, err)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: %v", endpoint, ErrInvalidPayload, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from an error body, falling back
// to the trimmed raw text
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

type requestIDKey struct{}

// ContextWithRequestID attaches a correlation id forwarded on every backend request
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id, or "" if none is set
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
