package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"activity-dashboard/internal/models"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingWriter struct {
	mu     sync.Mutex
	points []*write.Point
}

func (w *capturingWriter) WritePoint(ctx context.Context, point ...*write.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.points = append(w.points, point...)
	return nil
}

func TestBatchPoint(t *testing.T) {
	started := time.Date(2025, time.August, 10, 9, 0, 0, 0, time.UTC)
	point := BatchPoint(BatchResult{
		SessionID:  "s1",
		View:       models.ViewOverview,
		BatchID:    "b1",
		Generation: 3,
		State:      models.StateFailed,
		StatusCode: 500,
		Started:    started,
		Finished:   started.Add(1500 * time.Millisecond),
	})

	assert.Equal(t, BatchMeasurement, point.Name())
	assert.Equal(t, started.Add(1500*time.Millisecond), point.Time())

	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"view": "overview", "state": "failed", "superseded": "false"}, tags)

	fields := map[string]interface{}{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, int64(3), fields["generation"])
	assert.Equal(t, 1500.0, fields["duration_ms"])
	assert.Equal(t, int64(500), fields["status_code"])
}

func TestTelemetryService_DrainsOnClose(t *testing.T) {
	writer := &capturingWriter{}
	svc := newTelemetryService(writer, 8)

	for i := 0; i < 3; i++ {
		svc.RecordBatch(BatchResult{View: models.ViewTimeline, State: models.StateLoaded})
	}
	svc.Close()
	svc.Close()
	svc.RecordBatch(BatchResult{View: models.ViewTimeline})

	writer.mu.Lock()
	defer writer.mu.Unlock()
	require.Len(t, writer.points, 3)
}

func TestViewService_RecordsToTelemetry(t *testing.T) {
	writer := &capturingWriter{}
	telemetry := newTelemetryService(writer, 8)
	views := NewViewService(telemetry)

	views.Run(context.Background(), "s1", models.ViewHeatmap, func(context.Context) (interface{}, error) {
		return "grid", nil
	})
	telemetry.Close()

	writer.mu.Lock()
	defer writer.mu.Unlock()
	require.Len(t, writer.points, 1)
	assert.Equal(t, BatchMeasurement, writer.points[0].Name())
}
