package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"activity-dashboard/internal/database"
	"activity-dashboard/internal/models"

	"github.com/stretchr/testify/suite"
)

type ViewServiceSuite struct {
	suite.Suite
	svc     *ViewService
	mu      sync.Mutex
	events  []models.SnapshotEvent
	batches []BatchResult
	clock   time.Time
}

func (s *ViewServiceSuite) SetupTest() {
	s.events = nil
	s.batches = nil
	s.clock = time.Date(2025, time.August, 10, 9, 0, 0, 0, time.UTC)

	s.svc = NewViewService(recorderFunc(func(r BatchResult) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.batches = append(s.batches, r)
	}))
	s.svc.now = func() time.Time { return s.clock }
	s.svc.OnSnapshot(func(e models.SnapshotEvent) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = append(s.events, e)
	})
}

func (s *ViewServiceSuite) TestInitialStateIsIdle() {
	state := s.svc.Get("s1", models.ViewOverview)
	s.Equal(models.StateIdle, state.State)
	s.Equal(SelectionPrompt, state.Prompt)

	s.Empty(s.svc.Get("s1", models.ViewTeam).Prompt)
	s.False(s.svc.HasSession("s1"))
}

func (s *ViewServiceSuite) TestBeginMovesToLoading() {
	batch := s.svc.Begin("s1", models.ViewOverview)

	s.Equal(uint64(1), batch.Generation)
	s.NotEmpty(batch.ID)

	state := s.svc.Get("s1", models.ViewOverview)
	s.Equal(models.StateLoading, state.State)
	s.Equal(batch.ID, state.BatchID)
	s.Require().Len(s.events, 1)
	s.Equal("s1", s.events[0].SessionID)
}

func (s *ViewServiceSuite) TestCompleteLoaded() {
	batch := s.svc.Begin("s1", models.ViewOverview)
	s.clock = s.clock.Add(250 * time.Millisecond)
	state := s.svc.Complete(batch, "payload", nil)

	s.Equal(models.StateLoaded, state.State)
	s.Equal("payload", state.Data)
	s.False(state.Superseded)

	s.Require().Len(s.batches, 1)
	s.Equal(250*time.Millisecond, s.batches[0].Duration())
	s.Equal(models.StateLoaded, s.batches[0].State)
}

func (s *ViewServiceSuite) TestStaleBatchDoesNotOverwriteNewer() {
	first := s.svc.Begin("s1", models.ViewOverview)
	second := s.svc.Begin("s1", models.ViewOverview)

	fresh := s.svc.Complete(second, "batch 2", nil)
	s.Equal(models.StateLoaded, fresh.State)

	stale := s.svc.Complete(first, "batch 1", nil)
	s.True(stale.Superseded)
	s.Equal("batch 2", stale.Data)

	current := s.svc.Get("s1", models.ViewOverview)
	s.Equal("batch 2", current.Data)
	s.Equal(second.Generation, current.Generation)
	s.False(current.Superseded)

	s.Require().Len(s.batches, 2)
	s.True(s.batches[1].Superseded)
}

func (s *ViewServiceSuite) TestStaleFailureDoesNotOverwriteNewer() {
	first := s.svc.Begin("s1", models.ViewHeatmap)
	second := s.svc.Begin("s1", models.ViewHeatmap)

	s.svc.Complete(second, "fresh", nil)
	s.svc.Complete(first, nil, &database.HTTPError{StatusCode: http.StatusInternalServerError})

	current := s.svc.Get("s1", models.ViewHeatmap)
	s.Equal(models.StateLoaded, current.State)
	s.Nil(current.Error)
}

func (s *ViewServiceSuite) TestStaleResultBeforeNewerResolves() {
	first := s.svc.Begin("s1", models.ViewTimeline)
	second := s.svc.Begin("s1", models.ViewTimeline)

	stale := s.svc.Complete(first, "old", nil)
	s.True(stale.Superseded)
	s.Equal(models.StateLoading, stale.State)
	s.Equal(second.ID, stale.BatchID)
}

func (s *ViewServiceSuite) TestLoadingKeepsPreviousData() {
	batch := s.svc.Begin("s1", models.ViewOverview)
	s.svc.Complete(batch, "previous", nil)

	s.svc.Begin("s1", models.ViewOverview)
	state := s.svc.Get("s1", models.ViewOverview)
	s.Equal(models.StateLoading, state.State)
	s.Equal("previous", state.Data)
}

func (s *ViewServiceSuite) TestOutcomes() {
	notFound := s.svc.Run(context.Background(), "s1", models.ViewTimeline, func(context.Context) (interface{}, error) {
		return nil, database.ErrNotFound
	})
	s.Equal(models.StateNotFound, notFound.State)
	s.Nil(notFound.Error)

	failed := s.svc.Run(context.Background(), "s1", models.ViewHeatmap, func(context.Context) (interface{}, error) {
		return nil, &database.HTTPError{Endpoint: "/analytics/activity-heatmap", StatusCode: http.StatusServiceUnavailable}
	})
	s.Equal(models.StateFailed, failed.State)
	s.Require().NotNil(failed.Error)
	s.Equal(http.StatusServiceUnavailable, failed.Error.StatusCode)
	s.True(failed.Error.Retryable)

	idle := s.svc.Run(context.Background(), "s1", models.ViewOverview, func(context.Context) (interface{}, error) {
		return nil, ErrSelectionRequired
	})
	s.Equal(models.StateIdle, idle.State)
	s.Equal(SelectionPrompt, idle.Prompt)
}

func (s *ViewServiceSuite) TestFailureInOneViewDoesNotBlockOthers() {
	s.svc.Run(context.Background(), "s1", models.ViewHeatmap, func(context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	})
	loaded := s.svc.Run(context.Background(), "s1", models.ViewTimeline, func(context.Context) (interface{}, error) {
		return "events", nil
	})
	s.Equal(models.StateLoaded, loaded.State)
	s.Equal(models.StateFailed, s.svc.Get("s1", models.ViewHeatmap).State)
}

func (s *ViewServiceSuite) TestSessionsAreIsolated() {
	s.svc.Run(context.Background(), "s1", models.ViewOverview, func(context.Context) (interface{}, error) {
		return "mine", nil
	})
	s.Equal(models.StateIdle, s.svc.Get("s2", models.ViewOverview).State)
}

func (s *ViewServiceSuite) TestSnapshotOrder() {
	s.svc.Run(context.Background(), "s1", models.ViewTeam, func(context.Context) (interface{}, error) {
		return "team", nil
	})

	states := s.svc.Snapshot("s1")
	s.Require().Len(states, len(models.ViewNames))
	for i, view := range models.ViewNames {
		s.Equal(view, states[i].View)
	}
	s.Equal(models.StateLoaded, states[len(states)-1].State)
}

func (s *ViewServiceSuite) TestPruneSessions() {
	s.svc.Begin("old", models.ViewOverview)
	s.clock = s.clock.Add(time.Hour)
	s.svc.Begin("new", models.ViewOverview)

	s.Equal(1, s.svc.PruneSessions(30*time.Minute))
	s.False(s.svc.HasSession("old"))
	s.True(s.svc.HasSession("new"))

	s.svc.DeleteSession("new")
	s.False(s.svc.HasSession("new"))
}

func (s *ViewServiceSuite) TestConcurrentBatchesKeepNewest() {
	const n = 20
	batches := make([]Batch, n)
	for i := range batches {
		batches[i] = s.svc.Begin("s1", models.ViewOverview)
	}

	var wg sync.WaitGroup
	for i := range batches {
		wg.Add(1)
		go func(b Batch) {
			defer wg.Done()
			s.svc.Complete(b, b.Generation, nil)
		}(batches[i])
	}
	wg.Wait()

	current := s.svc.Get("s1", models.ViewOverview)
	s.Equal(uint64(n), current.Generation)
	s.Equal(uint64(n), current.Data)
}

func (s *ViewServiceSuite) TestWatchReturnsSnapshotUnderLock() {
	s.svc.Run(context.Background(), "s1", models.ViewHeatmap, func(context.Context) (interface{}, error) {
		return "grid", nil
	})

	var got []models.ViewState
	s.svc.Watch("s1", func(states []models.ViewState) {
		got = states
	})

	s.Require().Len(got, len(models.ViewNames))
	s.Equal(models.StateLoaded, got[3].State)
	s.Equal(models.ViewHeatmap, got[3].View)
}

func TestViewServiceSuite(t *testing.T) {
	suite.Run(t, new(ViewServiceSuite))
}
