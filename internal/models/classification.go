package models

// Closed classifications used by the views. Every mapping below switches
// over all variants; adding a variant without extending the switches is
// caught by the exhaustiveness tests.

// Style is the presentation hint attached to a classified value
type Style struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// EventKind is the closed set of timeline event types
type EventKind int

const (
	EventOther EventKind = iota
	EventLogon
	EventLogoff
	EventActive
	EventIdleStarted
	EventLock
	EventUnlock
	EventServiceStarted
)

// EventKinds lists every variant, in display order
var EventKinds = []EventKind{
	EventLogon, EventLogoff, EventActive, EventIdleStarted,
	EventLock, EventUnlock, EventServiceStarted, EventOther,
}

// ParseEventKind maps a backend event_type string; unknown types are EventOther
func ParseEventKind(raw string) EventKind {
	switch raw {
	case "Logon":
		return EventLogon
	case "Logoff":
		return EventLogoff
	case "Active":
		return EventActive
	case "Idle Started":
		return EventIdleStarted
	case "Lock":
		return EventLock
	case "Unlock":
		return EventUnlock
	case "Service Started":
		return EventServiceStarted
	default:
		return EventOther
	}
}

func (k EventKind) String() string {
	switch k {
	case EventLogon:
		return "Logon"
	case EventLogoff:
		return "Logoff"
	case EventActive:
		return "Active"
	case EventIdleStarted:
		return "Idle Started"
	case EventLock:
		return "Lock"
	case EventUnlock:
		return "Unlock"
	case EventServiceStarted:
		return "Service Started"
	default:
		return "Other"
	}
}

// Style returns the color and icon for the event kind
func (k EventKind) Style() Style {
	switch k {
	case EventLogon:
		return Style{Label: k.String(), Color: "bg-green-500", Icon: "🟢"}
	case EventLogoff:
		return Style{Label: k.String(), Color: "bg-red-500", Icon: "🔴"}
	case EventActive:
		return Style{Label: k.String(), Color: "bg-blue-500", Icon: "⚡"}
	case EventIdleStarted:
		return Style{Label: k.String(), Color: "bg-yellow-500", Icon: "💤"}
	case EventLock:
		return Style{Label: k.String(), Color: "bg-orange-500", Icon: "🔒"}
	case EventUnlock:
		return Style{Label: k.String(), Color: "bg-green-400", Icon: "🔓"}
	case EventServiceStarted:
		return Style{Label: k.String(), Color: "bg-purple-500", Icon: "⚙️"}
	default:
		return Style{Label: k.String(), Color: "bg-gray-500", Icon: "📌"}
	}
}

// IntensityBucket is the discrete class of an hourly intensity
type IntensityBucket string

const (
	IntensityNone     IntensityBucket = "none"
	IntensityLow      IntensityBucket = "low"
	IntensityModerate IntensityBucket = "moderate"
	IntensityHigh     IntensityBucket = "high"
	IntensityPeak     IntensityBucket = "peak"
)

// IntensityBuckets lists every variant from lowest to highest
var IntensityBuckets = []IntensityBucket{
	IntensityNone, IntensityLow, IntensityModerate, IntensityHigh, IntensityPeak,
}

// Style returns the label and cell color for the bucket
func (b IntensityBucket) Style() Style {
	switch b {
	case IntensityLow:
		return Style{Label: "Low Activity", Color: "bg-green-200"}
	case IntensityModerate:
		return Style{Label: "Moderate Activity", Color: "bg-green-300"}
	case IntensityHigh:
		return Style{Label: "High Activity", Color: "bg-green-400"}
	case IntensityPeak:
		return Style{Label: "Peak Activity", Color: "bg-green-500"}
	default:
		return Style{Label: "No Activity", Color: "bg-gray-100"}
	}
}

// WorkPattern names the part of day a peak hour falls in
type WorkPattern string

const (
	PatternMorning   WorkPattern = "Morning"
	PatternAfternoon WorkPattern = "Afternoon"
	PatternEvening   WorkPattern = "Evening"
	PatternNight     WorkPattern = "Night"
)

// ProductivityLevel is the qualitative band of a productivity score
type ProductivityLevel string

const (
	LevelExcellent        ProductivityLevel = "excellent"
	LevelGood             ProductivityLevel = "good"
	LevelAverage          ProductivityLevel = "average"
	LevelNeedsImprovement ProductivityLevel = "needs_improvement"
)

// ProductivityLevels lists every variant from best to worst
var ProductivityLevels = []ProductivityLevel{
	LevelExcellent, LevelGood, LevelAverage, LevelNeedsImprovement,
}

// ClassifyProductivity bands a 0-100 score: >=85, >=70, >=50, below
func ClassifyProductivity(score float64) ProductivityLevel {
	switch {
	case score >= 85:
		return LevelExcellent
	case score >= 70:
		return LevelGood
	case score >= 50:
		return LevelAverage
	default:
		return LevelNeedsImprovement
	}
}

// Style returns the label and badge color for the level
func (l ProductivityLevel) Style() Style {
	switch l {
	case LevelExcellent:
		return Style{Label: "Excellent", Color: "text-green-600 bg-green-100"}
	case LevelGood:
		return Style{Label: "Good", Color: "text-blue-600 bg-blue-100"}
	case LevelAverage:
		return Style{Label: "Average", Color: "text-yellow-600 bg-yellow-100"}
	default:
		return Style{Label: "Needs Improvement", Color: "text-red-600 bg-red-100"}
	}
}

// BreakKind classifies an idle period by length
type BreakKind string

const (
	BreakShort    BreakKind = "short_break"
	BreakLong     BreakKind = "long_break"
	BreakExtended BreakKind = "extended_break"
)

// ClassifyBreak: up to 15 minutes is short, up to 60 long, otherwise extended
func ClassifyBreak(minutes float64) BreakKind {
	switch {
	case minutes <= 15:
		return BreakShort
	case minutes <= 60:
		return BreakLong
	default:
		return BreakExtended
	}
}

// SessionQuality classifies a focus session by length
type SessionQuality string

const (
	QualityExcellent SessionQuality = "excellent"
	QualityGood      SessionQuality = "good"
	QualityFair      SessionQuality = "fair"
)

// ClassifySession: 60 minutes or more is excellent, 30 or more good, otherwise fair
func ClassifySession(minutes float64) SessionQuality {
	switch {
	case minutes >= 60:
		return QualityExcellent
	case minutes >= 30:
		return QualityGood
	default:
		return QualityFair
	}
}
