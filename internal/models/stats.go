package models

// Raw records returned by the statistics backend. Durations are minutes.

// UsersResponse is the body of GET /users
type UsersResponse struct {
	Users []string `json:"users"`
}

// ActivityEvent is a single timeline event
type ActivityEvent struct {
	Timestamp    Timestamp `json:"timestamp"`
	EventType    string    `json:"event_type"`
	ComputerName string    `json:"computer_name"`
	Hour         int       `json:"hour"`   // 0-23, computed by the backend
	Minute       int       `json:"minute"` // 0-59
}

// Kind maps the raw event type onto its closed variant
func (e ActivityEvent) Kind() EventKind {
	return ParseEventKind(e.EventType)
}

// Timeline is the body of GET /analytics/timeline
type Timeline struct {
	Username   string          `json:"username"`
	Date       string          `json:"date"`
	EventCount int             `json:"event_count"`
	Events     []ActivityEvent `json:"timeline"`
}

// DailyStat is one user's activity for one calendar day
type DailyStat struct {
	Date                 string     `json:"date,omitempty"`
	Username             string     `json:"username"`
	ComputerName         string     `json:"computer_name"`
	FirstLogon           *Timestamp `json:"first_logon"`
	LastActivity         *Timestamp `json:"last_activity"`
	TotalActiveDuration  float64    `json:"total_active_duration"`
	TotalIdleDuration    float64    `json:"total_idle_duration"`
	TotalSessionDuration float64    `json:"total_session_duration"`
}

// WeeklyStat aggregates one ISO week
type WeeklyStat struct {
	Year                   int     `json:"year"`
	Week                   int     `json:"week"`
	Username               string  `json:"username"`
	ComputerName           string  `json:"computer_name"`
	TotalActiveDuration    float64 `json:"total_active_duration"`
	AvgDailyActiveDuration float64 `json:"avg_daily_active_duration"`
	AvgSessionDuration     float64 `json:"avg_session_duration"`
	ProductivityScore      float64 `json:"productivity_score"` // 0-100
}

// MonthlyStat aggregates one calendar month
type MonthlyStat struct {
	Year                   int     `json:"year"`
	Month                  int     `json:"month"`
	Username               string  `json:"username"`
	ComputerName           string  `json:"computer_name"`
	TotalActiveDuration    float64 `json:"total_active_duration"`
	AvgDailyActiveDuration float64 `json:"avg_daily_active_duration"`
	AvgSessionDuration     float64 `json:"avg_session_duration"`
	ProductivityScore      float64 `json:"productivity_score"`
	TotalDaysActive        int     `json:"total_days_active"`
}

// HeatmapData is the hourly intensity map for one user-day.
// Hours absent from the map have intensity 0.
type HeatmapData struct {
	Username    string          `json:"username"`
	Date        string          `json:"date"`
	HeatmapData map[int]float64 `json:"heatmap_data"`
	PeakHour    int             `json:"peak_hour"`
}

// Intensity returns the value for hour, 0 when missing
func (h HeatmapData) Intensity(hour int) float64 {
	return h.HeatmapData[hour]
}

// TeamMemberStat is a DailyStat plus the member's productivity score
type TeamMemberStat struct {
	Username             string     `json:"username"`
	ComputerName         string     `json:"computer_name"`
	FirstLogon           *Timestamp `json:"first_logon"`
	LastActivity         *Timestamp `json:"last_activity"`
	TotalActiveDuration  float64    `json:"total_active_duration"`
	TotalIdleDuration    float64    `json:"total_idle_duration"`
	TotalSessionDuration float64    `json:"total_session_duration"`
	ProductivityScore    float64    `json:"productivity_score"`
}

// TeamSummaryTotals holds the team-wide aggregates
type TeamSummaryTotals struct {
	TotalUsers            int     `json:"total_users"`
	TeamProductivityScore float64 `json:"team_productivity_score"`
	TotalActiveDuration   float64 `json:"total_active_duration"`
	AvgActiveDuration     float64 `json:"avg_active_duration"`
	AvgSessionDuration    float64 `json:"avg_session_duration"`
	TotalSessionDuration  float64 `json:"total_session_duration"`
}

// TeamSummary is the body of GET /analytics/team-summary
type TeamSummary struct {
	Date      string            `json:"date"`
	Summary   TeamSummaryTotals `json:"summary"`
	TeamStats []TeamMemberStat  `json:"team_stats"`
}

// ProductivityTrend is one day in a trend window
type ProductivityTrend struct {
	Date              string  `json:"date"`
	ProductivityScore float64 `json:"productivity_score"`
	ActiveDuration    float64 `json:"active_duration"`
	IdleDuration      float64 `json:"idle_duration"`
	SessionDuration   float64 `json:"session_duration"`
}

// DateRange bounds a trend window
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// ProductivityTrends is the body of GET /analytics/productivity-trends.
// Trends are ordered oldest first.
type ProductivityTrends struct {
	Username  string              `json:"username"`
	DateRange DateRange           `json:"date_range"`
	Trends    []ProductivityTrend `json:"trends"`
}

// FocusMetrics summarises uninterrupted work for a day
type FocusMetrics struct {
	FocusScore         float64 `json:"focus_score"`
	TotalFocusTime     float64 `json:"total_focus_time"`
	AvgSessionLength   float64 `json:"avg_session_length"`
	LongestSession     float64 `json:"longest_session"`
	FocusSessionsCount int     `json:"focus_sessions_count"`
	Interruptions      int     `json:"interruptions"`
}

// FocusSession is one focus period
type FocusSession struct {
	Start    string  `json:"start"` // HH:MM
	Duration float64 `json:"duration"`
	Quality  string  `json:"quality,omitempty"`
}

// FocusScore is the body of GET /analytics/focus-score
type FocusScore struct {
	Username      string         `json:"username"`
	Date          string         `json:"date"`
	FocusMetrics  FocusMetrics   `json:"focus_metrics"`
	FocusSessions []FocusSession `json:"focus_sessions"`
}

// BreakDistribution counts breaks per kind
type BreakDistribution struct {
	ShortBreaks    int `json:"short_breaks"`
	LongBreaks     int `json:"long_breaks"`
	ExtendedBreaks int `json:"extended_breaks"`
}

// BreakAnalysis summarises idle periods for a day
type BreakAnalysis struct {
	TotalBreaks       int               `json:"total_breaks"`
	AvgBreakDuration  float64           `json:"avg_break_duration"`
	BreakDistribution BreakDistribution `json:"break_distribution"`
}

// BreakDetail is one idle period
type BreakDetail struct {
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes float64 `json:"duration_minutes"`
	Type            string  `json:"type,omitempty"`
}

// BreakPatterns is the body of GET /analytics/break-patterns
type BreakPatterns struct {
	Username      string        `json:"username"`
	Date          string        `json:"date"`
	BreakAnalysis BreakAnalysis `json:"break_analysis"`
	BreakDetails  []BreakDetail `json:"break_details"`
}
