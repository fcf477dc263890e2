package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
)

// BatchMeasurement is the InfluxDB measurement written per finished batch
const BatchMeasurement = "dashboard_batch"

// BatchResult describes one finished fetch batch
type BatchResult struct {
	SessionID  string
	View       models.ViewName
	BatchID    string
	Generation uint64
	State      models.FetchState
	Superseded bool
	StatusCode int
	Started    time.Time
	Finished   time.Time
}

// Duration is how long the batch was in flight
func (r BatchResult) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// BatchRecorder receives every finished batch. Implementations must not block.
type BatchRecorder interface {
	RecordBatch(result BatchResult)
}

// NopRecorder discards batch results
type NopRecorder struct{}

// RecordBatch implements BatchRecorder
func (NopRecorder) RecordBatch(BatchResult) {}

// PointWriter is the blocking write side of the InfluxDB client
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// TelemetryService writes batch results to InfluxDB from a background worker
type TelemetryService struct {
	client       influxdb2.Client
	writer       PointWriter
	queue        chan BatchResult
	writeTimeout time.Duration
	done         chan struct{}
	mutex        sync.RWMutex
	closed       bool
	log          zerolog.Logger
}

// NewTelemetryService connects to InfluxDB and starts the writer
func NewTelemetryService(url, token, org, bucket string) (*TelemetryService, error) {
	log := logger.WithComponent("telemetry")
	log.Info().Str("url", url).Str("org", org).Str("bucket", bucket).Msg("Initializing InfluxDB client")

	client := influxdb2.NewClient(url, token)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		log.Warn().Str("status", string(health.Status)).Msg("InfluxDB health check did not pass")
	}

	s := newTelemetryService(client.WriteAPIBlocking(org, bucket), 256)
	s.client = client
	return s, nil
}

func newTelemetryService(writer PointWriter, buffer int) *TelemetryService {
	s := &TelemetryService{
		writer:       writer,
		queue:        make(chan BatchResult, buffer),
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
		log:          logger.WithComponent("telemetry"),
	}
	go s.run()
	return s
}

// RecordBatch queues a result; it is dropped when the queue is full or
// the service is closed
func (s *TelemetryService) RecordBatch(result BatchResult) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- result:
	default:
		s.log.Warn().Str("view", string(result.View)).Msg("Telemetry queue full, dropping batch result")
	}
}

// Close drains the queue and closes the client
func (s *TelemetryService) Close() {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mutex.Unlock()

	<-s.done
	if s.client != nil {
		s.client.Close()
	}
}

func (s *TelemetryService) run() {
	defer close(s.done)
	for result := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.writer.WritePoint(ctx, BatchPoint(result)); err != nil {
			s.log.Error().Err(err).Str("view", string(result.View)).Msg("Failed to write batch telemetry")
		}
		cancel()
	}
}

// BatchPoint renders a batch result as an InfluxDB point. Only low
// cardinality values are tags; ids are fields.
func BatchPoint(result BatchResult) *write.Point {
	tags := map[string]string{
		"view":       string(result.View),
		"state":      string(result.State),
		"superseded": strconv.FormatBool(result.Superseded),
	}
	fields := map[string]interface{}{
		"session_id":  result.SessionID,
		"batch_id":    result.BatchID,
		"generation":  int64(result.Generation),
		"duration_ms": float64(result.Duration().Microseconds()) / 1000,
		"status_code": int64(result.StatusCode),
	}
	return influxdb2.NewPoint(BatchMeasurement, tags, fields, result.Finished)
}
