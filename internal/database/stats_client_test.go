package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"activity-dashboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, validate bool) *StatsAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var v PayloadValidator
	if validate {
		compiled, err := validation.NewValidator()
		require.NoError(t, err)
		v = compiled
	}

	client, err := NewStatsAPIClient(srv.URL+"/", 2*time.Second, v)
	require.NoError(t, err)
	return client
}

func TestNewStatsAPIClient_Validation(t *testing.T) {
	_, err := NewStatsAPIClient("", time.Second, nil)
	assert.Error(t, err)

	_, err = NewStatsAPIClient("http://localhost:5001", 0, nil)
	assert.Error(t, err)

	c, err := NewStatsAPIClient(" http://localhost:5001/ ", time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5001", c.BaseURL())
}

func TestFetchDailyStats_EncodesQueryAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, EndpointDailyStats, r.URL.Path)
		assert.Equal(t, "john doe&co", r.URL.Query().Get("user"))
		assert.Equal(t, "2025-08-10", r.URL.Query().Get("date"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"date": "2025-08-10",
			"username": "john doe&co",
			"computer_name": "WS-01",
			"first_logon": "2025-08-10T08:02:11",
			"last_activity": null,
			"total_active_duration": 412.5,
			"total_idle_duration": 37,
			"total_session_duration": 449.5
		}`))
	}, true)

	stat, err := client.FetchDailyStats(context.Background(), "john doe&co", "2025-08-10")
	require.NoError(t, err)
	assert.Equal(t, 412.5, stat.TotalActiveDuration)
	require.NotNil(t, stat.FirstLogon)
	assert.Equal(t, 8, stat.FirstLogon.Hour())
	assert.Nil(t, stat.LastActivity)
}

func TestGet_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "No data found"}`))
	}, true)

	stat, err := client.FetchWeeklyStats(context.Background(), "alice", "2025-W33")
	assert.Nil(t, stat)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGet_HTTPErrorCarriesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database is locked"}`))
	}, true)

	_, err := client.FetchMonthlyStats(context.Background(), "alice", "2025-08")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, EndpointMonthlyStats, httpErr.Endpoint)
	assert.Equal(t, "database is locked", httpErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestGet_PlainTextErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}, false)

	_, err := client.FetchUsers(context.Background())
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "bad gateway", httpErr.Message)
}

func TestGet_SchemaViolation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"heatmap_data": {"25": 10}, "peak_hour": 3}`))
	}, true)

	_, err := client.FetchHeatmap(context.Background(), "alice", "2025-08-10")
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestGet_MalformedBodyWithoutValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, false)

	_, err := client.FetchTimeline(context.Background(), "alice", "2025-08-10")
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestFetchHeatmap_StringHourKeys(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username": "alice", "date": "2025-08-10", "heatmap_data": {"9": 80, "14": 20.5}, "peak_hour": 9}`))
	}, true)

	data, err := client.FetchHeatmap(context.Background(), "alice", "2025-08-10")
	require.NoError(t, err)
	assert.Equal(t, 80.0, data.Intensity(9))
	assert.Equal(t, 20.5, data.Intensity(14))
	assert.Equal(t, 0.0, data.Intensity(3))
}

func TestFetchTeamSummary_OptionalDate(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.RawQuery)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"date": "2025-08-10", "summary": {"total_users": 0, "team_productivity_score": 0}, "team_stats": []}`))
	}, true)

	_, err := client.FetchTeamSummary(context.Background(), "")
	require.NoError(t, err)
	_, err = client.FetchTeamSummary(context.Background(), "2025-08-10")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "date=2025-08-10"}, seen)
}

func TestFetchProductivityTrends_Days(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "14", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"username": "alice", "trends": [{"date": "2025-08-09", "productivity_score": 70}, {"date": "2025-08-10", "productivity_score": 80}]}`))
	}, true)

	trends, err := client.FetchProductivityTrends(context.Background(), "alice", 14)
	require.NoError(t, err)
	require.Len(t, trends.Trends, 2)
	assert.Equal(t, "2025-08-10", trends.Trends[1].Date)
}

func TestFetchUsers_EmptyListIsNonNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users": []}`))
	}, true)

	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestGet_ForwardsRequestID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`{"users": ["alice"]}`))
	}, false)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	users, err := client.FetchUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestGet_Timeout(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewStatsAPIClient(srv.URL, 50*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = client.FetchUsers(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
