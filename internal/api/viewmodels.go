package api

import (
	"encoding/json"
	"time"

	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
)

// CurrentResponse is the /api/current document: the reading plus the derived
// category and health advisory.
type CurrentResponse struct {
	Location string             `json:"location"`
	Reading  models.Reading     `json:"reading"`
	Category string             `json:"category"`
	Advisory predictor.Advisory `json:"advisory"`
	Model    models.ModelStatus `json:"model"`
	Time     string             `json:"time"`
}

type ForecastResponse struct {
	Location string                 `json:"location"`
	Days     int                    `json:"days"`
	Points   []models.ForecastPoint `json:"points"`
	Model    models.ModelStatus     `json:"model"`
}

type NearbyResponse struct {
	Location string              `json:"location"`
	RadiusKm int                 `json:"radius_km"`
	Cities   []models.NearbyCity `json:"cities"`
	Model    models.ModelStatus  `json:"model"`
}

// HistoryEntry is a stored prediction prepared for JSON: nullable columns
// become optional fields and payloads pass through unparsed.
type HistoryEntry struct {
	CreatedAt    time.Time       `json:"created_at"`
	Action       string          `json:"action"`
	AQI          *int            `json:"aqi,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	QualityFlags json.RawMessage `json:"quality_flags,omitempty"`
}

type HistoryResponse struct {
	Location    string         `json:"location"`
	Predictions []HistoryEntry `json:"predictions"`
}

type StatsResponse struct {
	Location    string   `json:"location"`
	WindowHours int      `json:"window_hours"`
	Count       int      `json:"count"`
	AvgAQI      *float64 `json:"avg_aqi,omitempty"`
	MinAQI      *int     `json:"min_aqi,omitempty"`
	MaxAQI      *int     `json:"max_aqi,omitempty"`
}

type HealthResponse struct {
	Status          string             `json:"status"`
	Service         string             `json:"service"`
	Model           models.ModelStatus `json:"model"`
	Checks          map[string]string  `json:"checks"`
	LastSnapshotAge string             `json:"last_snapshot_age,omitempty"`
	Timestamp       string             `json:"timestamp"`
}

func historyEntry(p models.Prediction) HistoryEntry {
	e := HistoryEntry{
		CreatedAt: p.CreatedAt,
		Action:    p.Action,
		Payload:   json.RawMessage(p.Payload),
	}
	if p.AQI.Valid {
		aqi := int(p.AQI.Int64)
		e.AQI = &aqi
	}
	if p.QualityFlags.Valid {
		e.QualityFlags = json.RawMessage(p.QualityFlags.String)
	}
	return e
}
