package store

import (
	"database/sql"
	"time"

	"github.com/Shubhamjh4/airsense360/internal/models"
)

// Store keeps the prediction history and snapshot audit log. All timestamps
// are stored in UTC.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) SavePrediction(p models.Prediction) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO predictions (created_at, action, location, aqi, payload, quality_flags)
		VALUES (?, ?, ?, ?, ?, ?)
	`, createdAt, p.Action, p.Location, p.AQI, p.Payload, p.QualityFlags)
	return err
}

func (s *Store) RecentPredictions(location string, limit int) ([]models.Prediction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, action, location, aqi, payload, quality_flags
		FROM predictions
		WHERE location = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, location, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Action, &p.Location, &p.AQI, &p.Payload, &p.QualityFlags); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

// PredictionStats aggregates AQI over the window ending now. A non-positive
// window covers the whole history. Rows without an AQI are excluded.
func (s *Store) PredictionStats(location string, window time.Duration) (*models.PredictionStats, error) {
	since := time.Time{}
	if window > 0 {
		since = time.Now().UTC().Add(-window)
	}

	var stats models.PredictionStats
	err := s.db.QueryRow(`
		SELECT COUNT(*), AVG(aqi), MIN(aqi), MAX(aqi)
		FROM predictions
		WHERE location = ? AND aqi IS NOT NULL AND created_at >= ?
	`, location, since).Scan(&stats.Count, &stats.AvgAQI, &stats.MinAQI, &stats.MaxAQI)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// LatestReading returns the newest point-in-time prediction for a location.
// Forecast and nearby rows are skipped; their payloads are not single readings.
func (s *Store) LatestReading(location string) (*models.Prediction, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, action, location, aqi, payload, quality_flags
		FROM predictions
		WHERE location = ? AND action IN ('current', 'snapshot')
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, location)

	var p models.Prediction
	err := row.Scan(&p.ID, &p.CreatedAt, &p.Action, &p.Location, &p.AQI, &p.Payload, &p.QualityFlags)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CountByAction() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT action, COUNT(*) FROM predictions GROUP BY action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}
	return counts, rows.Err()
}

func (s *Store) StartSnapshotRun(location string) (*models.SnapshotRun, error) {
	run := &models.SnapshotRun{
		StartedAt: time.Now().UTC(),
		Location:  location,
	}

	result, err := s.db.Exec(`
		INSERT INTO snapshot_runs (started_at, location, success)
		VALUES (?, ?, FALSE)
	`, run.StartedAt, run.Location)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	run.ID = id
	return run, nil
}

func (s *Store) CompleteSnapshotRun(run *models.SnapshotRun) error {
	run.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}

	_, err := s.db.Exec(`
		UPDATE snapshot_runs
		SET finished_at = ?, success = ?, error_message = ?
		WHERE id = ?
	`, run.FinishedAt, run.Success, run.ErrorMessage, run.ID)
	return err
}

func (s *Store) LastSnapshot() (*models.SnapshotRun, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, location, success, error_message
		FROM snapshot_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`)

	var run models.SnapshotRun
	err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Location, &run.Success, &run.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
