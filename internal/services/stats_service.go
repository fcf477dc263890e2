package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"activity-dashboard/internal/database"
	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTrendDays is the insights trend window
const DefaultTrendDays = 14

// StatsFetcher is the subset of the backend client the services need
type StatsFetcher interface {
	FetchUsers(ctx context.Context) ([]string, error)
	FetchDailyStats(ctx context.Context, user, date string) (*models.DailyStat, error)
	FetchWeeklyStats(ctx context.Context, user, week string) (*models.WeeklyStat, error)
	FetchMonthlyStats(ctx context.Context, user, month string) (*models.MonthlyStat, error)
	FetchTimeline(ctx context.Context, user, date string) (*models.Timeline, error)
	FetchHeatmap(ctx context.Context, user, date string) (*models.HeatmapData, error)
	FetchTeamSummary(ctx context.Context, date string) (*models.TeamSummary, error)
	FetchProductivityTrends(ctx context.Context, user string, days int) (*models.ProductivityTrends, error)
	FetchBreakPatterns(ctx context.Context, user, date string) (*models.BreakPatterns, error)
	FetchFocusScore(ctx context.Context, user, date string) (*models.FocusScore, error)
}

// StatsService composes backend records into view models
type StatsService struct {
	client    StatsFetcher
	trendDays int
	log       zerolog.Logger
}

// NewStatsService creates a stats service; trendDays <= 0 uses DefaultTrendDays
func NewStatsService(client StatsFetcher, trendDays int) *StatsService {
	if trendDays <= 0 {
		trendDays = DefaultTrendDays
	}
	return &StatsService{
		client:    client,
		trendDays: trendDays,
		log:       logger.WithComponent("stats-service"),
	}
}

// ListUsers returns the selectable usernames
func (s *StatsService) ListUsers(ctx context.Context) ([]string, error) {
	return s.client.FetchUsers(ctx)
}

// FetchOverview loads the daily, weekly and monthly stats concurrently.
// A 404 leaves its card nil; any other failure fails the whole overview.
func (s *StatsService) FetchOverview(ctx context.Context, user string, date time.Time) (*models.OverviewView, error) {
	if err := requireSelection(user, date); err != nil {
		return nil, err
	}

	dateStr := utils.FormatDate(date)
	weekKey := utils.WeekKey(date)
	monthKey := utils.MonthKey(date)

	var (
		daily   *models.DailyStat
		weekly  *models.WeeklyStat
		monthly *models.MonthlyStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stat, err := s.client.FetchDailyStats(gctx, user, dateStr)
		daily = stat
		return allowNotFound(err)
	})
	g.Go(func() error {
		stat, err := s.client.FetchWeeklyStats(gctx, user, weekKey)
		weekly = stat
		return allowNotFound(err)
	})
	g.Go(func() error {
		stat, err := s.client.FetchMonthlyStats(gctx, user, monthKey)
		monthly = stat
		return allowNotFound(err)
	})

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Str("user", user).Str("date", dateStr).Msg("Overview fetch failed")
		return nil, err
	}

	return &models.OverviewView{
		User:     user,
		Date:     dateStr,
		WeekKey:  weekKey,
		MonthKey: monthKey,
		Daily:    BuildDailyCard(daily),
		Weekly:   BuildWeeklyCard(weekKey, weekly),
		Monthly:  BuildMonthlyCard(monthKey, monthly),
	}, nil
}

// FetchInsights loads focus score, break patterns and the trend window
// concurrently under the same policy as FetchOverview
func (s *StatsService) FetchInsights(ctx context.Context, user string, date time.Time) (*models.InsightsView, error) {
	if err := requireSelection(user, date); err != nil {
		return nil, err
	}

	dateStr := utils.FormatDate(date)

	var (
		focus  *models.FocusScore
		breaks *models.BreakPatterns
		trends *models.ProductivityTrends
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.client.FetchFocusScore(gctx, user, dateStr)
		focus = res
		return allowNotFound(err)
	})
	g.Go(func() error {
		res, err := s.client.FetchBreakPatterns(gctx, user, dateStr)
		breaks = res
		return allowNotFound(err)
	})
	g.Go(func() error {
		res, err := s.client.FetchProductivityTrends(gctx, user, s.trendDays)
		trends = res
		return allowNotFound(err)
	})

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Str("user", user).Str("date", dateStr).Msg("Insights fetch failed")
		return nil, err
	}

	return &models.InsightsView{
		User:   user,
		Date:   dateStr,
		Focus:  BuildFocusView(focus),
		Breaks: BuildBreakView(breaks),
		Trend:  BuildTrendView(s.trendDays, trends),
	}, nil
}

// FetchTimeline loads and buckets the event timeline for a user-day
func (s *StatsService) FetchTimeline(ctx context.Context, user string, date time.Time) (*models.TimelineView, error) {
	if err := requireSelection(user, date); err != nil {
		return nil, err
	}

	timeline, err := s.client.FetchTimeline(ctx, user, utils.FormatDate(date))
	if err != nil {
		return nil, err
	}

	view := BuildTimelineView(timeline)
	return &view, nil
}

// FetchHeatmap loads and classifies the hourly intensity grid for a user-day
func (s *StatsService) FetchHeatmap(ctx context.Context, user string, date time.Time) (*models.HeatmapView, error) {
	if err := requireSelection(user, date); err != nil {
		return nil, err
	}

	data, err := s.client.FetchHeatmap(ctx, user, utils.FormatDate(date))
	if err != nil {
		return nil, err
	}

	view := BuildHeatmapView(data)
	return &view, nil
}

// FetchTeam loads the team leaderboard; a zero date asks the backend for
// its latest day
func (s *StatsService) FetchTeam(ctx context.Context, date time.Time) (*models.TeamView, error) {
	dateStr := ""
	if !date.IsZero() {
		dateStr = utils.FormatDate(date)
	}

	summary, err := s.client.FetchTeamSummary(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	view := BuildTeamView(summary)
	return &view, nil
}

func requireSelection(user string, date time.Time) error {
	if strings.TrimSpace(user) == "" || date.IsZero() {
		return ErrSelectionRequired
	}
	return nil
}

// allowNotFound turns a 404 into an empty slot
func allowNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}

// BuildDailyCard renders a daily stat; nil stays nil
func BuildDailyCard(stat *models.DailyStat) *models.DailyCard {
	if stat == nil {
		return nil
	}
	return &models.DailyCard{
		Stat:         *stat,
		ActiveTime:   utils.FormatDuration(stat.TotalActiveDuration),
		IdleTime:     utils.FormatDuration(stat.TotalIdleDuration),
		SessionTime:  utils.FormatDuration(stat.TotalSessionDuration),
		FirstLogon:   formatTimestamp(stat.FirstLogon),
		LastActivity: formatTimestamp(stat.LastActivity),
	}
}

// BuildWeeklyCard renders a weekly stat; nil stays nil
func BuildWeeklyCard(key string, stat *models.WeeklyStat) *models.PeriodCard {
	if stat == nil {
		return nil
	}
	return periodCard(key, stat.TotalActiveDuration, stat.AvgDailyActiveDuration, stat.AvgSessionDuration, stat.ProductivityScore)
}

// BuildMonthlyCard renders a monthly stat; nil stays nil
func BuildMonthlyCard(key string, stat *models.MonthlyStat) *models.PeriodCard {
	if stat == nil {
		return nil
	}
	card := periodCard(key, stat.TotalActiveDuration, stat.AvgDailyActiveDuration, stat.AvgSessionDuration, stat.ProductivityScore)
	days := stat.TotalDaysActive
	card.DaysActive = &days
	return card
}

func periodCard(key string, total, avgDaily, avgSession, score float64) *models.PeriodCard {
	return &models.PeriodCard{
		Key:               key,
		TotalActiveTime:   utils.FormatDuration(total),
		AvgDailyActive:    utils.FormatDuration(avgDaily),
		AvgSession:        utils.FormatDuration(avgSession),
		ProductivityScore: score,
		Productivity:      utils.FormatPercentage(score),
		Level:             models.ClassifyProductivity(score).Style(),
	}
}

// BuildFocusView renders focus metrics; sessions without a quality are
// classified by length
func BuildFocusView(score *models.FocusScore) *models.FocusView {
	if score == nil {
		return nil
	}

	metrics := score.FocusMetrics
	view := &models.FocusView{
		FocusScore:     utils.RoundTo(metrics.FocusScore, 1),
		FocusTime:      utils.FormatDuration(metrics.TotalFocusTime),
		AvgSession:     utils.FormatDuration(metrics.AvgSessionLength),
		LongestSession: utils.FormatDuration(metrics.LongestSession),
		SessionsCount:  metrics.FocusSessionsCount,
		Interruptions:  metrics.Interruptions,
		Sessions:       make([]models.FocusSessionView, 0, len(score.FocusSessions)),
	}

	for _, session := range score.FocusSessions {
		view.Sessions = append(view.Sessions, models.FocusSessionView{
			Start:    session.Start,
			Duration: utils.FormatDuration(session.Duration),
			Quality:  sessionQuality(session),
		})
	}
	return view
}

func sessionQuality(session models.FocusSession) models.SessionQuality {
	switch q := models.SessionQuality(session.Quality); q {
	case models.QualityExcellent, models.QualityGood, models.QualityFair:
		return q
	default:
		return models.ClassifySession(session.Duration)
	}
}

// BuildBreakView renders the break analysis. Long and extended breaks are
// reported together as long breaks.
func BuildBreakView(patterns *models.BreakPatterns) *models.BreakView {
	if patterns == nil {
		return nil
	}

	analysis := patterns.BreakAnalysis
	dist := analysis.BreakDistribution
	view := &models.BreakView{
		TotalBreaks:      analysis.TotalBreaks,
		AvgBreakDuration: utils.FormatDuration(analysis.AvgBreakDuration),
		ShortBreaks:      dist.ShortBreaks,
		LongBreaks:       dist.LongBreaks + dist.ExtendedBreaks,
		Details:          make([]models.BreakDetailView, 0, len(patterns.BreakDetails)),
	}

	for _, detail := range patterns.BreakDetails {
		view.Details = append(view.Details, models.BreakDetailView{
			StartTime: detail.StartTime,
			EndTime:   detail.EndTime,
			Duration:  utils.FormatDuration(detail.DurationMinutes),
			Kind:      breakKind(detail),
		})
	}
	return view
}

func breakKind(detail models.BreakDetail) models.BreakKind {
	switch k := models.BreakKind(detail.Type); k {
	case models.BreakShort, models.BreakLong, models.BreakExtended:
		return k
	default:
		return models.ClassifyBreak(detail.DurationMinutes)
	}
}

// BuildTrendView turns the trend window into chart points plus the most
// recent day's active/idle split
func BuildTrendView(days int, trends *models.ProductivityTrends) *models.TrendView {
	if trends == nil {
		return nil
	}

	view := &models.TrendView{
		Days:   days,
		Points: make([]models.TrendPoint, 0, len(trends.Trends)),
	}
	if trends.DateRange.Days > 0 {
		view.Days = trends.DateRange.Days
	}

	sum := 0.0
	for _, trend := range trends.Trends {
		sum += trend.ProductivityScore
		view.Points = append(view.Points, models.TrendPoint{
			Date:              trend.Date,
			Label:             utils.ShortDateLabel(trend.Date),
			ProductivityScore: trend.ProductivityScore,
			ActiveHours:       utils.MinutesToHours(trend.ActiveDuration),
		})
	}

	if n := len(trends.Trends); n > 0 {
		view.AverageScore = utils.RoundTo(sum/float64(n), 1)
		latest := trends.Trends[n-1]
		view.Latest = &models.DayBreakdown{
			Date:           latest.Date,
			ActiveDuration: latest.ActiveDuration,
			IdleDuration:   latest.IdleDuration,
		}
	}
	return view
}
