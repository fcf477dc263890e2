package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"activity-dashboard/internal/middleware"
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/services"
	"activity-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	statsService *services.StatsService
	viewService  *services.ViewService
	hub          *SnapshotHub
}

// NewHandlers creates a new handlers instance
func NewHandlers(statsService *services.StatsService, viewService *services.ViewService, hub *SnapshotHub) *Handlers {
	return &Handlers{
		statsService: statsService,
		viewService:  viewService,
		hub:          hub,
	}
}

// selectionFetch loads one per-user view for a selection
type selectionFetch func(ctx context.Context, user string, date time.Time) (interface{}, error)

// ListUsersHandler handles GET /api/users
func (h *Handlers) ListUsersHandler(c *gin.Context) {
	users, err := h.statsService.ListUsers(c.Request.Context())
	if err != nil {
		outcome := services.ClassifyError(err)
		msg := err.Error()
		if outcome.Error != nil {
			msg = outcome.Error.Message
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, models.UsersResponse{Users: users})
}

// OverviewHandler handles GET /api/dashboard/overview
func (h *Handlers) OverviewHandler(c *gin.Context) {
	h.runSelectionView(c, models.ViewOverview, func(ctx context.Context, user string, date time.Time) (interface{}, error) {
		return h.statsService.FetchOverview(ctx, user, date)
	})
}

// InsightsHandler handles GET /api/dashboard/insights
func (h *Handlers) InsightsHandler(c *gin.Context) {
	h.runSelectionView(c, models.ViewInsights, func(ctx context.Context, user string, date time.Time) (interface{}, error) {
		return h.statsService.FetchInsights(ctx, user, date)
	})
}

// TimelineHandler handles GET /api/dashboard/timeline
func (h *Handlers) TimelineHandler(c *gin.Context) {
	h.runSelectionView(c, models.ViewTimeline, func(ctx context.Context, user string, date time.Time) (interface{}, error) {
		return h.statsService.FetchTimeline(ctx, user, date)
	})
}

// HeatmapHandler handles GET /api/dashboard/heatmap
func (h *Handlers) HeatmapHandler(c *gin.Context) {
	h.runSelectionView(c, models.ViewHeatmap, func(ctx context.Context, user string, date time.Time) (interface{}, error) {
		return h.statsService.FetchHeatmap(ctx, user, date)
	})
}

// TeamHandler handles GET /api/dashboard/team
func (h *Handlers) TeamHandler(c *gin.Context) {
	var query models.TeamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, ok := parseDateParam(c, query.Date)
	if !ok {
		return
	}

	state := h.viewService.Run(c.Request.Context(), middleware.GetSessionID(c), models.ViewTeam, func(ctx context.Context) (interface{}, error) {
		return h.statsService.FetchTeam(ctx, date)
	})
	writeViewState(c, state)
}

// SessionViewsHandler handles GET /api/sessions/:sessionId/views
func (h *Handlers) SessionViewsHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"views":     h.viewService.Snapshot(sessionID),
	})
}

// DeleteSessionHandler handles DELETE /api/sessions/:sessionId
func (h *Handlers) DeleteSessionHandler(c *gin.Context) {
	h.viewService.DeleteSession(c.Param("sessionId"))
	c.Status(http.StatusNoContent)
}

// StreamHandler handles GET /api/sessions/:sessionId/stream (WebSocket)
func (h *Handlers) StreamHandler(c *gin.Context) {
	h.hub.Serve(c, c.Param("sessionId"), h.viewService)
}

// runSelectionView binds user/date and runs fetch as a new batch of view.
// A missing user or date resolves to the idle prompt without a fetch.
func (h *Handlers) runSelectionView(c *gin.Context, view models.ViewName, fetch selectionFetch) {
	var query models.SelectionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, ok := parseDateParam(c, query.Date)
	if !ok {
		return
	}
	user := strings.TrimSpace(query.User)

	state := h.viewService.Run(c.Request.Context(), middleware.GetSessionID(c), view, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx, user, date)
	})
	writeViewState(c, state)
}

// parseDateParam parses an optional YYYY-MM-DD value. An empty value is the
// zero time; a malformed one writes a 400 and returns false.
func parseDateParam(c *gin.Context, raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	date, err := utils.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// writeViewState maps the view state onto an HTTP status: failed views are
// 502, everything else 200
func writeViewState(c *gin.Context, state models.ViewState) {
	status := http.StatusOK
	if state.State == models.StateFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, state)
}
