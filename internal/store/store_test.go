package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Shubhamjh4/airsense360/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestSavePredictionAndRecent(t *testing.T) {
	store := setupTestStore(t)

	baseTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := models.Prediction{
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
			Action:    "current",
			Location:  "Gurugram",
			AQI:       sql.NullInt64{Int64: int64(100 + i), Valid: true},
			Payload:   `{"aqi":100}`,
		}
		if err := store.SavePrediction(p); err != nil {
			t.Fatalf("SavePrediction: %v", err)
		}
	}
	other := models.Prediction{
		CreatedAt: baseTime,
		Action:    "current",
		Location:  "Delhi",
		AQI:       sql.NullInt64{Int64: 90, Valid: true},
		Payload:   `{"aqi":90}`,
	}
	if err := store.SavePrediction(other); err != nil {
		t.Fatalf("SavePrediction other location: %v", err)
	}

	predictions, err := store.RecentPredictions("Gurugram", 10)
	if err != nil {
		t.Fatalf("RecentPredictions: %v", err)
	}
	if len(predictions) != 3 {
		t.Fatalf("len(predictions) = %d, want 3", len(predictions))
	}
	if predictions[0].AQI.Int64 != 102 {
		t.Errorf("newest AQI = %d, want 102 (most recent first)", predictions[0].AQI.Int64)
	}
	if predictions[0].Action != "current" {
		t.Errorf("Action = %q, want 'current'", predictions[0].Action)
	}
	if predictions[0].Payload != `{"aqi":100}` {
		t.Errorf("Payload = %q, want raw JSON round-tripped", predictions[0].Payload)
	}
}

func TestRecentPredictions_Limit(t *testing.T) {
	store := setupTestStore(t)

	baseTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := models.Prediction{
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
			Action:    "current",
			Location:  "Gurugram",
			AQI:       sql.NullInt64{Int64: int64(100 + i), Valid: true},
			Payload:   `{}`,
		}
		if err := store.SavePrediction(p); err != nil {
			t.Fatal(err)
		}
	}

	predictions, err := store.RecentPredictions("Gurugram", 2)
	if err != nil {
		t.Fatalf("RecentPredictions: %v", err)
	}
	if len(predictions) != 2 {
		t.Fatalf("len(predictions) = %d, want 2", len(predictions))
	}
	if predictions[0].AQI.Int64 != 104 || predictions[1].AQI.Int64 != 103 {
		t.Errorf("AQIs = %d, %d, want 104, 103", predictions[0].AQI.Int64, predictions[1].AQI.Int64)
	}
}

func TestRecentPredictions_Empty(t *testing.T) {
	store := setupTestStore(t)

	predictions, err := store.RecentPredictions("Nowhere", 10)
	if err != nil {
		t.Fatalf("RecentPredictions: %v", err)
	}
	if len(predictions) != 0 {
		t.Errorf("len(predictions) = %d, want 0", len(predictions))
	}
}

func TestLatestReading(t *testing.T) {
	store := setupTestStore(t)

	baseTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	current := models.Prediction{
		CreatedAt: baseTime,
		Action:    "current",
		Location:  "Gurugram",
		AQI:       sql.NullInt64{Int64: 120, Valid: true},
		Payload:   `{"aqi":120}`,
	}
	if err := store.SavePrediction(current); err != nil {
		t.Fatal(err)
	}

	// Newer, but not a point-in-time reading.
	forecast := models.Prediction{
		CreatedAt: baseTime.Add(1 * time.Hour),
		Action:    "forecast",
		Location:  "Gurugram",
		Payload:   `[{"time":"12:00","aqi":110}]`,
	}
	if err := store.SavePrediction(forecast); err != nil {
		t.Fatal(err)
	}

	latest, err := store.LatestReading("Gurugram")
	if err != nil {
		t.Fatalf("LatestReading: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestReading returned nil")
	}
	if latest.Action != "current" {
		t.Errorf("Action = %q, want 'current' (forecast rows skipped)", latest.Action)
	}
	if latest.AQI.Int64 != 120 {
		t.Errorf("AQI = %d, want 120", latest.AQI.Int64)
	}

	snapshot := models.Prediction{
		CreatedAt: baseTime.Add(2 * time.Hour),
		Action:    "snapshot",
		Location:  "Gurugram",
		AQI:       sql.NullInt64{Int64: 140, Valid: true},
		Payload:   `{"aqi":140}`,
	}
	if err := store.SavePrediction(snapshot); err != nil {
		t.Fatal(err)
	}

	latest, err = store.LatestReading("Gurugram")
	if err != nil {
		t.Fatalf("LatestReading after snapshot: %v", err)
	}
	if latest == nil || latest.AQI.Int64 != 140 {
		t.Errorf("latest = %+v, want snapshot row with AQI 140", latest)
	}
}

func TestLatestReading_NoData(t *testing.T) {
	store := setupTestStore(t)

	latest, err := store.LatestReading("Nowhere")
	if err != nil {
		t.Fatalf("LatestReading: %v", err)
	}
	if latest != nil {
		t.Error("Expected nil for location with no readings")
	}
}

func TestPredictionStats(t *testing.T) {
	store := setupTestStore(t)

	baseTime := time.Now().UTC().Add(-1 * time.Hour)
	for i, aqi := range []int64{100, 150, 200} {
		p := models.Prediction{
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
			Action:    "current",
			Location:  "Gurugram",
			AQI:       sql.NullInt64{Int64: aqi, Valid: true},
			Payload:   `{}`,
		}
		if err := store.SavePrediction(p); err != nil {
			t.Fatal(err)
		}
	}
	// No AQI recorded; excluded from aggregates.
	noAQI := models.Prediction{
		CreatedAt: baseTime,
		Action:    "nearby",
		Location:  "Gurugram",
		Payload:   `[]`,
	}
	if err := store.SavePrediction(noAQI); err != nil {
		t.Fatal(err)
	}

	stats, err := store.PredictionStats("Gurugram", 24*time.Hour)
	if err != nil {
		t.Fatalf("PredictionStats: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if !stats.AvgAQI.Valid || stats.AvgAQI.Float64 != 150.0 {
		t.Errorf("AvgAQI = %v, want 150", stats.AvgAQI)
	}
	if !stats.MinAQI.Valid || stats.MinAQI.Int64 != 100 {
		t.Errorf("MinAQI = %v, want 100", stats.MinAQI)
	}
	if !stats.MaxAQI.Valid || stats.MaxAQI.Int64 != 200 {
		t.Errorf("MaxAQI = %v, want 200", stats.MaxAQI)
	}
}

func TestPredictionStats_WindowExcludesOld(t *testing.T) {
	store := setupTestStore(t)

	old := models.Prediction{
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
		Action:    "current",
		Location:  "Gurugram",
		AQI:       sql.NullInt64{Int64: 500, Valid: true},
		Payload:   `{}`,
	}
	recent := models.Prediction{
		CreatedAt: time.Now().UTC().Add(-1 * time.Hour),
		Action:    "current",
		Location:  "Gurugram",
		AQI:       sql.NullInt64{Int64: 100, Valid: true},
		Payload:   `{}`,
	}
	if err := store.SavePrediction(old); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePrediction(recent); err != nil {
		t.Fatal(err)
	}

	stats, err := store.PredictionStats("Gurugram", 24*time.Hour)
	if err != nil {
		t.Fatalf("PredictionStats: %v", err)
	}
	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1 (48h-old row outside window)", stats.Count)
	}
	if stats.MaxAQI.Int64 != 100 {
		t.Errorf("MaxAQI = %d, want 100", stats.MaxAQI.Int64)
	}

	all, err := store.PredictionStats("Gurugram", 0)
	if err != nil {
		t.Fatalf("PredictionStats whole history: %v", err)
	}
	if all.Count != 2 {
		t.Errorf("Count = %d, want 2 (non-positive window covers everything)", all.Count)
	}
}

func TestPredictionStats_Empty(t *testing.T) {
	store := setupTestStore(t)

	stats, err := store.PredictionStats("Nowhere", 24*time.Hour)
	if err != nil {
		t.Fatalf("PredictionStats: %v", err)
	}
	if stats.Count != 0 {
		t.Errorf("Count = %d, want 0", stats.Count)
	}
	if stats.AvgAQI.Valid {
		t.Errorf("AvgAQI = %v, want invalid for empty history", stats.AvgAQI)
	}
}

func TestCountByAction(t *testing.T) {
	store := setupTestStore(t)

	for _, action := range []string{"current", "current", "nearby"} {
		p := models.Prediction{
			Action:   action,
			Location: "Gurugram",
			Payload:  `{}`,
		}
		if err := store.SavePrediction(p); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := store.CountByAction()
	if err != nil {
		t.Fatalf("CountByAction: %v", err)
	}
	if counts["current"] != 2 {
		t.Errorf("counts[current] = %d, want 2", counts["current"])
	}
	if counts["nearby"] != 1 {
		t.Errorf("counts[nearby] = %d, want 1", counts["nearby"])
	}
	if counts["forecast"] != 0 {
		t.Errorf("counts[forecast] = %d, want 0", counts["forecast"])
	}
}

func TestSnapshotRun_StartAndComplete(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.StartSnapshotRun("Gurugram")
	if err != nil {
		t.Fatalf("StartSnapshotRun: %v", err)
	}
	if run.ID == 0 {
		t.Error("run.ID should be set")
	}
	if run.Location != "Gurugram" {
		t.Errorf("run.Location = %q, want 'Gurugram'", run.Location)
	}

	run.Success = true
	if err := store.CompleteSnapshotRun(run); err != nil {
		t.Fatalf("CompleteSnapshotRun: %v", err)
	}

	last, err := store.LastSnapshot()
	if err != nil {
		t.Fatalf("LastSnapshot: %v", err)
	}
	if last == nil {
		t.Fatal("LastSnapshot returned nil")
	}
	if last.ID != run.ID {
		t.Errorf("last.ID = %d, want %d", last.ID, run.ID)
	}
	if !last.Success {
		t.Error("last.Success = false, want true")
	}
	if !last.FinishedAt.Valid {
		t.Error("last.FinishedAt should be set after completion")
	}
}

func TestSnapshotRun_Failure(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.StartSnapshotRun("Gurugram")
	if err != nil {
		t.Fatal(err)
	}

	run.Success = false
	run.ErrorMessage = sql.NullString{String: "feature fetch timed out", Valid: true}
	if err := store.CompleteSnapshotRun(run); err != nil {
		t.Fatalf("CompleteSnapshotRun: %v", err)
	}

	last, err := store.LastSnapshot()
	if err != nil {
		t.Fatalf("LastSnapshot: %v", err)
	}
	if last.Success {
		t.Error("last.Success = true, want false")
	}
	if last.ErrorMessage.String != "feature fetch timed out" {
		t.Errorf("ErrorMessage = %q, want 'feature fetch timed out'", last.ErrorMessage.String)
	}
}

func TestLastSnapshot_None(t *testing.T) {
	store := setupTestStore(t)

	last, err := store.LastSnapshot()
	if err != nil {
		t.Fatalf("LastSnapshot: %v", err)
	}
	if last != nil {
		t.Error("Expected nil when no snapshot has run")
	}
}

func TestMigrationVersion(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version < 1 {
		t.Errorf("MigrationVersion = %d, want >= 1", version)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
