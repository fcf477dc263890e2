package services

import (
	"context"
	"sync"

	"activity-dashboard/internal/database"
	"activity-dashboard/internal/models"
)

// fakeStats serves canned records; nil results default to ErrNotFound
type fakeStats struct {
	mu    sync.Mutex
	calls []string

	users    []string
	daily    *models.DailyStat
	weekly   *models.WeeklyStat
	monthly  *models.MonthlyStat
	timeline *models.Timeline
	heatmap  *models.HeatmapData
	team     *models.TeamSummary
	trends   *models.ProductivityTrends
	breaks   *models.BreakPatterns
	focus    *models.FocusScore

	errs map[string]error
}

func (f *fakeStats) record(endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, endpoint)
	return f.errs[endpoint]
}

func (f *fakeStats) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func orNotFound[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (f *fakeStats) FetchUsers(ctx context.Context) ([]string, error) {
	if err := f.record(database.EndpointUsers); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeStats) FetchDailyStats(ctx context.Context, user, date string) (*models.DailyStat, error) {
	return orNotFound(f.daily, f.record(database.EndpointDailyStats))
}

func (f *fakeStats) FetchWeeklyStats(ctx context.Context, user, week string) (*models.WeeklyStat, error) {
	return orNotFound(f.weekly, f.record(database.EndpointWeeklyStats))
}

func (f *fakeStats) FetchMonthlyStats(ctx context.Context, user, month string) (*models.MonthlyStat, error) {
	return orNotFound(f.monthly, f.record(database.EndpointMonthlyStats))
}

func (f *fakeStats) FetchTimeline(ctx context.Context, user, date string) (*models.Timeline, error) {
	return orNotFound(f.timeline, f.record(database.EndpointTimeline))
}

func (f *fakeStats) FetchHeatmap(ctx context.Context, user, date string) (*models.HeatmapData, error) {
	return orNotFound(f.heatmap, f.record(database.EndpointHeatmap))
}

func (f *fakeStats) FetchTeamSummary(ctx context.Context, date string) (*models.TeamSummary, error) {
	return orNotFound(f.team, f.record(database.EndpointTeamSummary))
}

func (f *fakeStats) FetchProductivityTrends(ctx context.Context, user string, days int) (*models.ProductivityTrends, error) {
	return orNotFound(f.trends, f.record(database.EndpointProductivityTrends))
}

func (f *fakeStats) FetchBreakPatterns(ctx context.Context, user, date string) (*models.BreakPatterns, error) {
	return orNotFound(f.breaks, f.record(database.EndpointBreakPatterns))
}

func (f *fakeStats) FetchFocusScore(ctx context.Context, user, date string) (*models.FocusScore, error) {
	return orNotFound(f.focus, f.record(database.EndpointFocusScore))
}

// recorderFunc adapts a function to BatchRecorder
type recorderFunc func(BatchResult)

func (f recorderFunc) RecordBatch(r BatchResult) { f(r) }
