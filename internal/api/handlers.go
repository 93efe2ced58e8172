package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamjh4/airsense360/internal/ingest"
	"github.com/Shubhamjh4/airsense360/internal/metrics"
	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
)

const (
	statsWindow = 24 * time.Hour

	// maxForecastDays caps the days query parameter; the forecast response
	// grows linearly with it.
	maxForecastDays = 366
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	checks := make(map[string]string)

	if err := s.store.Ping(); err != nil {
		checks["database"] = "unreachable"
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	model := s.predictor.Status()
	checks["model"] = model.State

	resp := HealthResponse{
		Status:    status,
		Service:   "airsense360",
		Model:     model,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if last, err := s.store.LastSnapshot(); err == nil && last != nil {
		resp.LastSnapshotAge = time.Since(last.StartedAt).Truncate(time.Second).String()
	}

	writeJSON(w, code, resp)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}

	s.predMu.Lock()
	reading := s.predictor.Current(location)
	s.predMu.Unlock()

	s.recordPrediction(r, "current", location, &reading, reading)

	category := predictor.CategoryFor(reading.AQI)
	writeJSON(w, http.StatusOK, CurrentResponse{
		Location: location,
		Reading:  reading,
		Category: string(category),
		Advisory: predictor.AdvisoryFor(category),
		Model:    s.predictor.Status(),
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}
	days, ok := intQuery(r, "days", predictor.DefaultForecastDays)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
		return
	}
	if days > maxForecastDays {
		writeError(w, r, http.StatusBadRequest, "INVALID_DAYS",
			fmt.Sprintf("days must be %d or fewer", maxForecastDays))
		return
	}

	s.predMu.Lock()
	points := s.predictor.Forecast(location, days)
	s.predMu.Unlock()

	s.recordPrediction(r, "forecast", location, nil, points)

	writeJSON(w, http.StatusOK, ForecastResponse{
		Location: location,
		Days:     days,
		Points:   points,
		Model:    s.predictor.Status(),
	})
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}
	radius, ok := intQuery(r, "radius", predictor.DefaultNearbyRadius)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "INVALID_RADIUS", "radius must be an integer")
		return
	}

	s.predMu.Lock()
	cities := s.predictor.Nearby(location, radius)
	s.predMu.Unlock()

	s.recordPrediction(r, "nearby", location, nil, cities)

	writeJSON(w, http.StatusOK, NearbyResponse{
		Location: location,
		RadiusKm: radius,
		Cities:   cities,
		Model:    s.predictor.Status(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}
	limit, ok := intQuery(r, "limit", 50)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		return
	}

	predictions, err := s.store.RecentPredictions(location, limit)
	if err != nil {
		requestLogger(r, s.logger).Error("read prediction history", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "could not read prediction history")
		return
	}

	entries := make([]HistoryEntry, 0, len(predictions))
	for _, p := range predictions {
		entries = append(entries, historyEntry(p))
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Location: location, Predictions: entries})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}

	stats, err := s.store.PredictionStats(location, statsWindow)
	if err != nil {
		requestLogger(r, s.logger).Error("read prediction stats", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "could not read prediction stats")
		return
	}

	resp := StatsResponse{
		Location:    location,
		WindowHours: int(statsWindow.Hours()),
		Count:       stats.Count,
	}
	if stats.AvgAQI.Valid {
		v := stats.AvgAQI.Float64
		resp.AvgAQI = &v
	}
	if stats.MinAQI.Valid {
		v := int(stats.MinAQI.Int64)
		resp.MinAQI = &v
	}
	if stats.MaxAQI.Valid {
		v := int(stats.MaxAQI.Int64)
		resp.MaxAQI = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireLocation(w http.ResponseWriter, r *http.Request) (string, bool) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", "location is required")
		return "", false
	}
	return location, true
}

func intQuery(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// recordPrediction stores an emitted prediction for history and stats.
// Storage failures are logged, never surfaced; serving the prediction wins.
func (s *Server) recordPrediction(r *http.Request, action, location string, reading *models.Reading, payload interface{}) {
	metrics.PredictionsTotal.WithLabelValues(action).Inc()

	body, _ := json.Marshal(payload)
	p := models.Prediction{
		Action:   action,
		Location: location,
		Payload:  string(body),
	}
	if reading != nil {
		p.AQI = sql.NullInt64{Int64: int64(reading.AQI), Valid: true}
		if flags := ingest.ValidateReading(*reading); len(flags) > 0 {
			p.QualityFlags = sql.NullString{String: ingest.QualityFlagsToJSON(flags), Valid: true}
		}
	}

	if err := s.store.SavePrediction(p); err != nil {
		requestLogger(r, s.logger).Warn("record prediction",
			zap.String("action", action), zap.Error(err))
	}
}

func requestLogger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	if logger, ok := r.Context().Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
