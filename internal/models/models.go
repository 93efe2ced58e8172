package models

import (
	"database/sql"
	"time"
)

type LocationFeatures struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Elevation         float64 `json:"elevation"`
	PopulationDensity float64 `json:"population_density"`
	Temperature       float64 `json:"temperature"`
	Humidity          float64 `json:"humidity"`
	WindSpeed         float64 `json:"wind_speed"`
	Pressure          float64 `json:"pressure"`
}

type PollutantReadings struct {
	NO2          float64 `json:"no2"`
	SO2          float64 `json:"so2"`
	CO           float64 `json:"co"`
	AerosolIndex float64 `json:"aerosol_index"`
	Formaldehyde float64 `json:"formaldehyde"`
}

// Reading is a point-in-time air quality estimate. Field order is the order
// keys appear in the emitted JSON document.
type Reading struct {
	AQI  int     `json:"aqi"`
	PM25 int     `json:"pm25"`
	PM10 int     `json:"pm10"`
	NO2  int     `json:"no2"`
	SO2  int     `json:"so2"`
	CO   float64 `json:"co"`
}

type ForecastPoint struct {
	Time string `json:"time"` // "HH:00" for intraday points, "Day N" for daily
	AQI  int    `json:"aqi"`
}

type NearbyCity struct {
	Name     string `json:"name"`
	AQI      int    `json:"aqi"`
	Distance string `json:"distance"`
}

// Model states reported by ModelStatus.
const (
	ModelUntrained = "untrained"
	ModelTrained   = "trained"
)

// ModelStatus reports how the prediction model was initialized, so embedding
// contexts can decide whether and how to surface it.
type ModelStatus struct {
	State   string `json:"state"`
	Version string `json:"version"`
	Detail  string `json:"detail,omitempty"`
}

type Prediction struct {
	ID           int64
	CreatedAt    time.Time
	Action       string // "current", "forecast", "nearby", "snapshot"
	Location     string
	AQI          sql.NullInt64
	Payload      string
	QualityFlags sql.NullString
}

type SnapshotRun struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Location     string
	Success      bool
	ErrorMessage sql.NullString
}

type PredictionStats struct {
	Count  int
	AvgAQI sql.NullFloat64
	MinAQI sql.NullInt64
	MaxAQI sql.NullInt64
}
