package services

import (
	"context"
	"sync"
	"time"

	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"

	"github.com/rs/zerolog"
)

// Batch identifies one in-flight fetch for a session view
type Batch struct {
	SessionID  string
	View       models.ViewName
	ID         string
	Generation uint64
	Started    time.Time
}

// SnapshotListener is called whenever a view snapshot is replaced. It runs
// under the service lock and must not block or call back into the service.
type SnapshotListener func(event models.SnapshotEvent)

type viewSlot struct {
	generation uint64
	state      models.ViewState
}

type session struct {
	views    map[models.ViewName]*viewSlot
	lastSeen time.Time
}

// ViewService holds the displayed snapshot of every view per dashboard
// session and fences out stale batches with a generation counter
type ViewService struct {
	sessions  map[string]*session
	listeners []SnapshotListener
	recorder  BatchRecorder
	now       func() time.Time
	mutex     sync.RWMutex
	log       zerolog.Logger
}

// NewViewService creates a view service; a nil recorder disables telemetry
func NewViewService(recorder BatchRecorder) *ViewService {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ViewService{
		sessions: make(map[string]*session),
		recorder: recorder,
		now:      time.Now,
		log:      logger.WithComponent("view-service"),
	}
}

// OnSnapshot registers a listener for snapshot replacements
func (s *ViewService) OnSnapshot(listener SnapshotListener) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Begin opens a new batch for the view, superseding any batch in flight.
// The view moves to loading and keeps its previous data until the batch
// resolves.
func (s *ViewService) Begin(sessionID string, view models.ViewName) Batch {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	slot := s.slot(sessionID, view, now)
	slot.generation++

	batch := Batch{
		SessionID:  sessionID,
		View:       view,
		ID:         utils.GenerateUUID(),
		Generation: slot.generation,
		Started:    now,
	}

	slot.state = models.ViewState{
		View:       view,
		State:      models.StateLoading,
		Generation: batch.Generation,
		BatchID:    batch.ID,
		Data:       slot.state.Data,
		UpdatedAt:  now,
	}
	s.notify(sessionID, slot.state)

	return batch
}

// Complete resolves a batch. The result replaces the snapshot only if the
// batch is still the newest for its view; otherwise it is discarded and the
// current snapshot is returned flagged as superseded.
func (s *ViewService) Complete(batch Batch, data interface{}, err error) models.ViewState {
	outcome := ClassifyError(err)

	s.mutex.Lock()
	now := s.now()
	slot := s.slot(batch.SessionID, batch.View, now)

	result := BatchResult{
		SessionID:  batch.SessionID,
		View:       batch.View,
		BatchID:    batch.ID,
		Generation: batch.Generation,
		State:      outcome.State,
		Started:    batch.Started,
		Finished:   now,
	}
	if outcome.Error != nil {
		result.StatusCode = outcome.Error.StatusCode
	}

	var state models.ViewState
	if slot.generation != batch.Generation {
		state = slot.state
		state.Superseded = true
		result.Superseded = true
		s.log.Debug().
			Str("session", batch.SessionID).
			Str("view", string(batch.View)).
			Uint64("generation", batch.Generation).
			Uint64("current", slot.generation).
			Msg("Discarding stale batch")
	} else {
		slot.state = models.ViewState{
			View:       batch.View,
			State:      outcome.State,
			Generation: batch.Generation,
			BatchID:    batch.ID,
			Error:      outcome.Error,
			Prompt:     outcome.Prompt,
			UpdatedAt:  now,
		}
		if outcome.State == models.StateLoaded {
			slot.state.Data = data
		}
		state = slot.state
		s.notify(batch.SessionID, state)
	}
	s.mutex.Unlock()

	s.recorder.RecordBatch(result)
	return state
}

// Run executes fetch as a new batch of the view and returns the resulting
// snapshot
func (s *ViewService) Run(ctx context.Context, sessionID string, view models.ViewName, fetch func(ctx context.Context) (interface{}, error)) models.ViewState {
	batch := s.Begin(sessionID, view)
	data, err := fetch(ctx)
	return s.Complete(batch, data, err)
}

// Get returns the current snapshot of one view; unknown views are idle
func (s *ViewService) Get(sessionID string, view models.ViewName) models.ViewState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if sess, ok := s.sessions[sessionID]; ok {
		if slot, ok := sess.views[view]; ok {
			return slot.state
		}
	}
	return idleState(view)
}

// Snapshot returns every view of the session in a fixed order
func (s *ViewService) Snapshot(sessionID string) []models.ViewState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshotLocked(sessionID)
}

// Watch calls attach with the current snapshot while no replacement can be
// published, so a subscriber attached there sees every later change exactly
// once and in order. attach must not block or call back into the service.
func (s *ViewService) Watch(sessionID string, attach func(states []models.ViewState)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	attach(s.snapshotLocked(sessionID))
}

func (s *ViewService) snapshotLocked(sessionID string) []models.ViewState {
	states := make([]models.ViewState, 0, len(models.ViewNames))
	sess := s.sessions[sessionID]
	for _, view := range models.ViewNames {
		if sess != nil {
			if slot, ok := sess.views[view]; ok {
				states = append(states, slot.state)
				continue
			}
		}
		states = append(states, idleState(view))
	}
	return states
}

// HasSession reports whether the session has opened any batch
func (s *ViewService) HasSession(sessionID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// DeleteSession drops every snapshot of the session
func (s *ViewService) DeleteSession(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, sessionID)
}

// PruneSessions drops sessions idle for longer than maxIdle and returns
// how many were removed
func (s *ViewService) PruneSessions(maxIdle time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor prunes idle sessions every interval until ctx is done
func (s *ViewService) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.PruneSessions(maxIdle); n > 0 {
					s.log.Info().Int("removed", n).Msg("Pruned idle dashboard sessions")
				}
			}
		}
	}()
}

// slot returns the view slot, creating the session and view as needed.
// Caller must hold the write lock.
func (s *ViewService) slot(sessionID string, view models.ViewName, now time.Time) *viewSlot {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{views: make(map[models.ViewName]*viewSlot)}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = now

	slot, ok := sess.views[view]
	if !ok {
		slot = &viewSlot{state: idleState(view)}
		sess.views[view] = slot
	}
	return slot
}

// notify fans a snapshot out to listeners. Caller must hold the lock.
func (s *ViewService) notify(sessionID string, state models.ViewState) {
	if len(s.listeners) == 0 {
		return
	}
	event := models.SnapshotEvent{SessionID: sessionID, View: state}
	for _, listener := range s.listeners {
		listener(event)
	}
}

func idleState(view models.ViewName) models.ViewState {
	state := models.ViewState{View: view, State: models.StateIdle}
	if view != models.ViewTeam {
		state.Prompt = SelectionPrompt
	}
	return state
}
