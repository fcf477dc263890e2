package models

import "time"

// ViewName identifies one dashboard panel
type ViewName string

const (
	ViewOverview ViewName = "overview"
	ViewInsights ViewName = "insights"
	ViewTimeline ViewName = "timeline"
	ViewHeatmap  ViewName = "heatmap"
	ViewTeam     ViewName = "team"
)

// ViewNames lists every panel
var ViewNames = []ViewName{ViewOverview, ViewInsights, ViewTimeline, ViewHeatmap, ViewTeam}

// FetchState is the lifecycle of one view:
// idle -> loading -> loaded | not_found | failed
type FetchState string

const (
	StateIdle     FetchState = "idle"
	StateLoading  FetchState = "loading"
	StateLoaded   FetchState = "loaded"
	StateNotFound FetchState = "not_found"
	StateFailed   FetchState = "failed"
)

// Settled reports whether the state is terminal for its batch
func (s FetchState) Settled() bool {
	return s == StateLoaded || s == StateNotFound || s == StateFailed
}

// ViewError is the user-facing form of a failed batch
type ViewError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"` // Upstream HTTP status, 0 for network failures
	Retryable  bool   `json:"retryable"`
}

// ViewState is the displayed snapshot of one view
type ViewState struct {
	View       ViewName    `json:"view"`
	State      FetchState  `json:"state"`
	Generation uint64      `json:"generation"`
	BatchID    string      `json:"batchId,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ViewError  `json:"error,omitempty"`
	Prompt     string      `json:"prompt,omitempty"`
	Superseded bool        `json:"superseded,omitempty"` // The request's own batch was overtaken by a newer one
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// SnapshotEvent is pushed to stream subscribers when a view changes
type SnapshotEvent struct {
	SessionID string    `json:"sessionId"`
	View      ViewState `json:"view"`
}
