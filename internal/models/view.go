package models

// View models handed to the rendering layer. Pointer fields left nil mean
// "no data" (404 upstream or an empty candidate set), rendered as an empty
// state rather than an error.

// OverviewView combines the daily, weekly and monthly cards for a selection
type OverviewView struct {
	User     string      `json:"user"`
	Date     string      `json:"date"`
	WeekKey  string      `json:"weekKey"`
	MonthKey string      `json:"monthKey"`
	Daily    *DailyCard  `json:"daily"`
	Weekly   *PeriodCard `json:"weekly"`
	Monthly  *PeriodCard `json:"monthly"`
}

// DailyCard renders one DailyStat
type DailyCard struct {
	Stat         DailyStat `json:"stat"`
	ActiveTime   string    `json:"activeTime"`
	IdleTime     string    `json:"idleTime"`
	SessionTime  string    `json:"sessionTime"`
	FirstLogon   string    `json:"firstLogon"`
	LastActivity string    `json:"lastActivity"`
}

// PeriodCard renders a WeeklyStat or MonthlyStat
type PeriodCard struct {
	Key               string  `json:"key"`
	TotalActiveTime   string  `json:"totalActiveTime"`
	AvgDailyActive    string  `json:"avgDailyActive"`
	AvgSession        string  `json:"avgSession"`
	ProductivityScore float64 `json:"productivityScore"`
	Productivity      string  `json:"productivity"`
	Level             Style   `json:"level"`
	DaysActive        *int    `json:"daysActive,omitempty"` // Monthly only
}

// TimelineEntry is one event with its display hints
type TimelineEntry struct {
	Timestamp    Timestamp `json:"timestamp"`
	Time         string    `json:"time"` // 08:05 AM
	EventType    string    `json:"eventType"`
	Style        Style     `json:"style"`
	ComputerName string    `json:"computerName"`
}

// HourGroup holds the events of one hour, in backend order
type HourGroup struct {
	Hour   int             `json:"hour"`
	Range  string          `json:"range"` // 8:00 - 9:00
	Events []TimelineEntry `json:"events"`
}

// TimelineView is the hour-grouped timeline for one user-day
type TimelineView struct {
	Username   string      `json:"username"`
	Date       string      `json:"date"`
	EventCount int         `json:"eventCount"`
	Empty      bool        `json:"empty"`
	Hours      []HourGroup `json:"hours"`
}

// HeatmapCell is one hour of the heatmap grid
type HeatmapCell struct {
	Hour      int             `json:"hour"`
	HourLabel string          `json:"hourLabel"` // 12 AM
	Intensity float64         `json:"intensity"`
	Bucket    IntensityBucket `json:"bucket"`
	Style     Style           `json:"style"`
}

// HeatmapView is the classified 24-hour intensity grid for one user-day
type HeatmapView struct {
	Username         string        `json:"username"`
	Date             string        `json:"date"`
	Cells            []HeatmapCell `json:"cells"`
	PeakHour         int           `json:"peakHour"`
	PeakHourLabel    string        `json:"peakHourLabel"`
	PeakIntensity    float64       `json:"peakIntensity"`
	ActiveHourCount  int           `json:"activeHourCount"`
	AverageIntensity float64       `json:"averageIntensity"`
	WorkPattern      WorkPattern   `json:"workPattern"`
}

// RankedMember is one row of the team leaderboard
type RankedMember struct {
	Rank         int            `json:"rank"`
	Member       TeamMemberStat `json:"member"`
	ActiveTime   string         `json:"activeTime"`
	Productivity string         `json:"productivity"`
	Level        Style          `json:"level"`
	FirstLogon   string         `json:"firstLogon"`
	LastActivity string         `json:"lastActivity"`
}

// MemberHighlight names the member behind a team insight
type MemberHighlight struct {
	Username string `json:"username"`
	Detail   string `json:"detail"` // Formatted value that earned the highlight
}

// TeamInsights are derived independently of each other; nil means none
type TeamInsights struct {
	TopPerformer *MemberHighlight `json:"topPerformer"`
	MostActive   *MemberHighlight `json:"mostActive"`
	EarlyBird    *MemberHighlight `json:"earlyBird"`
}

// TeamSummaryCard renders the team-wide totals
type TeamSummaryCard struct {
	TotalUsers       int    `json:"totalUsers"`
	TeamProductivity string `json:"teamProductivity"`
	Level            Style  `json:"level"`
	TotalActiveTime  string `json:"totalActiveTime"`
	AvgActiveTime    string `json:"avgActiveTime"`
	AvgSessionTime   string `json:"avgSessionTime"`
}

// TeamView is the leaderboard and highlights for one date
type TeamView struct {
	Date     string          `json:"date"`
	Summary  TeamSummaryCard `json:"summary"`
	Rankings []RankedMember  `json:"rankings"`
	Insights TeamInsights    `json:"insights"`
}

// FocusView renders the focus metrics
type FocusView struct {
	FocusScore     float64            `json:"focusScore"`
	FocusTime      string             `json:"focusTime"`
	AvgSession     string             `json:"avgSession"`
	LongestSession string             `json:"longestSession"`
	SessionsCount  int                `json:"sessionsCount"`
	Interruptions  int                `json:"interruptions"`
	Sessions       []FocusSessionView `json:"sessions"`
}

// FocusSessionView is one focus session with a resolved quality
type FocusSessionView struct {
	Start    string         `json:"start"`
	Duration string         `json:"duration"`
	Quality  SessionQuality `json:"quality"`
}

// BreakView renders the break analysis
type BreakView struct {
	TotalBreaks      int               `json:"totalBreaks"`
	AvgBreakDuration string            `json:"avgBreakDuration"`
	ShortBreaks      int               `json:"shortBreaks"`
	LongBreaks       int               `json:"longBreaks"` // long + extended
	Details          []BreakDetailView `json:"details"`
}

// BreakDetailView is one break with a resolved kind
type BreakDetailView struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Duration  string    `json:"duration"`
	Kind      BreakKind `json:"kind"`
}

// TrendPoint is one chart point of the trend series
type TrendPoint struct {
	Date              string  `json:"date"`
	Label             string  `json:"label"` // Aug 10
	ProductivityScore float64 `json:"productivityScore"`
	ActiveHours       float64 `json:"activeHours"` // One decimal
}

// DayBreakdown is the active/idle split of a single day
type DayBreakdown struct {
	Date           string  `json:"date"`
	ActiveDuration float64 `json:"activeDuration"`
	IdleDuration   float64 `json:"idleDuration"`
}

// TrendView is the chart-ready trend window
type TrendView struct {
	Days         int           `json:"days"`
	Points       []TrendPoint  `json:"points"`
	AverageScore float64       `json:"averageScore"`
	Latest       *DayBreakdown `json:"latest"`
}

// InsightsView groups the advanced analytics panels
type InsightsView struct {
	User   string     `json:"user"`
	Date   string     `json:"date"`
	Focus  *FocusView `json:"focus"`
	Breaks *BreakView `json:"breaks"`
	Trend  *TrendView `json:"trend"`
}
