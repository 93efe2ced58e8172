package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamjh4/airsense360/internal/metrics"
	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
	"github.com/Shubhamjh4/airsense360/internal/store"
)

// Scheduler periodically takes a current-conditions snapshot for each
// configured location and records it in the store, bracketed by a snapshot
// run for auditability.
type Scheduler struct {
	store     *store.Store
	predictor *predictor.Predictor
	logger    *zap.Logger
	locations []string
	interval  time.Duration
	mu        *sync.Mutex // shared with the HTTP server; the predictor is not goroutine-safe
}

func NewScheduler(st *store.Store, pred *predictor.Predictor, logger *zap.Logger, locations []string, interval time.Duration, mu *sync.Mutex) *Scheduler {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		store:     st,
		predictor: pred,
		logger:    logger,
		locations: locations,
		interval:  interval,
		mu:        mu,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.snapshotAll()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: shutting down")
			return
		case <-ticker.C:
			s.snapshotAll()
		}
	}
}

// SnapshotOnce runs a single snapshot pass over all configured locations.
func (s *Scheduler) SnapshotOnce() {
	s.snapshotAll()
}

func (s *Scheduler) snapshotAll() {
	for _, location := range s.locations {
		s.snapshot(location)
	}
}

func (s *Scheduler) snapshot(location string) {
	run, err := s.store.StartSnapshotRun(location)
	if err != nil {
		s.logger.Error("scheduler: start snapshot run", zap.String("location", location), zap.Error(err))
		metrics.SnapshotRunsTotal.WithLabelValues("error").Inc()
		return
	}

	s.mu.Lock()
	reading := s.predictor.Current(location)
	s.mu.Unlock()

	flags := ValidateReading(reading)
	payload, _ := json.Marshal(reading)

	p := models.Prediction{
		Action:   "snapshot",
		Location: location,
		AQI:      sql.NullInt64{Int64: int64(reading.AQI), Valid: true},
		Payload:  string(payload),
	}
	if flagsJSON := QualityFlagsToJSON(flags); flagsJSON != "" {
		p.QualityFlags = sql.NullString{String: flagsJSON, Valid: true}
	}

	if err := s.store.SavePrediction(p); err != nil {
		s.logger.Error("scheduler: save snapshot", zap.String("location", location), zap.Error(err))
		run.Success = false
		run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		if err := s.store.CompleteSnapshotRun(run); err != nil {
			s.logger.Error("scheduler: complete snapshot run", zap.Error(err))
		}
		metrics.SnapshotRunsTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.PredictionsTotal.WithLabelValues("snapshot").Inc()

	run.Success = true
	if err := s.store.CompleteSnapshotRun(run); err != nil {
		s.logger.Error("scheduler: complete snapshot run", zap.Error(err))
	}
	metrics.SnapshotRunsTotal.WithLabelValues("ok").Inc()

	if len(flags) > 0 {
		s.logger.Warn("scheduler: snapshot stored with quality flags",
			zap.String("location", location), zap.Int("aqi", reading.AQI), zap.Strings("flags", flags))
		return
	}
	s.logger.Info("scheduler: snapshot stored",
		zap.String("location", location), zap.Int("aqi", reading.AQI))
}
