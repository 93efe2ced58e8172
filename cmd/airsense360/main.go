package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/tidwall/gjson"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"github.com/Shubhamjh4/airsense360/internal/api"
	"github.com/Shubhamjh4/airsense360/internal/ingest"
	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/observability"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
	"github.com/Shubhamjh4/airsense360/internal/sharecard"
	"github.com/Shubhamjh4/airsense360/internal/store"
)

// snapshotLocations are the cities the serve-mode scheduler records each
// cycle: the reference city plus the nearby roster.
var snapshotLocations = []string{"Gurugram", "Faridabad", "Noida", "Ghaziabad", "Palwal"}

const (
	usageLine      = "Usage: airsense360 <action> <params_json>"
	defaultServeDB = "data/airsense360.db"
)

// CLI is the kong grammar: two legacy positional tokens for one-shot
// predictions, flags for everything the long-running mode needs. Flags never
// count toward the positional contract.
type CLI struct {
	Action string `arg:"" optional:"" help:"Prediction action: predict_current, predict_forecast or predict_nearby."`
	Params string `arg:"" optional:"" help:"JSON parameter object, e.g. '{\"location\":\"Gurugram\"}'."`

	Seed          *int64        `env:"AIRSENSE_SEED" help:"Seed the prediction randomness for reproducible output."`
	DB            string        `env:"AIRSENSE_DB" help:"SQLite database path. One-shot runs record their prediction when set; serve mode defaults to ${default_db}."`
	Serve         bool          `env:"AIRSENSE_SERVE" help:"Run the HTTP API and snapshot scheduler instead of a one-shot action."`
	Listen        string        `env:"AIRSENSE_LISTEN" default:":8080" help:"HTTP listen address for serve mode."`
	LiveFeatures  bool          `env:"AIRSENSE_LIVE_FEATURES" help:"Fetch live conditions from Open-Meteo instead of the reference constants."`
	SnapshotEvery time.Duration `env:"AIRSENSE_SNAPSHOT_EVERY" default:"15m" help:"Interval between stored snapshots in serve mode."`
	Rate          float64       `env:"AIRSENSE_RATE" default:"0" help:"Serve-mode requests per second; 0 disables rate limiting."`
	CardCacheDir  string        `env:"AIRSENSE_CARD_CACHE_DIR" default:"data/cards" help:"Directory for cached share card PNGs."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	helped := false
	parser, err := kong.New(&cli,
		kong.Name("airsense360"),
		kong.Description("Air quality predictions for Gurugram and nearby cities."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helped = true }),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
		kong.Vars{"default_db": defaultServeDB},
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, usageLine)
		return 1
	}
	if helped {
		return 0
	}

	if cli.Serve {
		return runServe(&cli, stderr)
	}
	if cli.Action == "" || cli.Params == "" {
		fmt.Fprintln(stderr, usageLine)
		return 1
	}
	return runOnce(&cli, stdout, stderr)
}

// outcome carries a dispatched prediction plus what the history store needs
// to record it.
type outcome struct {
	payload  interface{}
	reading  *models.Reading // set for predict_current only
	action   string          // short store action name
	location string
}

func runOnce(cli *CLI, stdout, stderr io.Writer) int {
	// Warn-level default keeps the JSON document the only stdout output.
	logger, err := observability.NewLogger(zap.WarnLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	var opts []predictor.Option
	if cli.Seed != nil {
		opts = append(opts, predictor.WithSeed(*cli.Seed))
	}
	pred := predictor.New(predictor.StaticProvider{}, opts...)

	oc, err := dispatch(pred, cli.Action, cli.Params)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := json.Marshal(oc.payload)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))

	if cli.DB != "" {
		recordPrediction(logger, cli.DB, oc, string(out))
	}
	return 0
}

// dispatch maps a legacy action token and its JSON params onto a predictor
// call. Any JSON value is accepted for location; only its presence is
// checked, and it is coerced to its string form.
func dispatch(pred *predictor.Predictor, action, params string) (*outcome, error) {
	if !gjson.Valid(params) {
		return nil, fmt.Errorf("parameters are not valid JSON")
	}
	parsed := gjson.Parse(params)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("parameters must be a JSON object")
	}
	loc := parsed.Get("location")
	if !loc.Exists() {
		return nil, fmt.Errorf("missing required parameter: location")
	}
	location := loc.String()

	switch action {
	case "predict_current":
		reading := pred.Current(location)
		return &outcome{payload: reading, reading: &reading, action: "current", location: location}, nil
	case "predict_forecast":
		days := predictor.DefaultForecastDays
		if d := parsed.Get("days"); d.Exists() {
			days = int(d.Int())
		}
		return &outcome{payload: pred.Forecast(location, days), action: "forecast", location: location}, nil
	case "predict_nearby":
		radius := predictor.DefaultNearbyRadius
		if rv := parsed.Get("radius"); rv.Exists() {
			radius = int(rv.Int())
		}
		return &outcome{payload: pred.Nearby(location, radius), action: "nearby", location: location}, nil
	default:
		return nil, fmt.Errorf("Unknown action: %s", action)
	}
}

// recordPrediction appends a one-shot result to the history database.
// Failures are logged, never surfaced; emitting the prediction wins.
func recordPrediction(logger *zap.Logger, dbPath string, oc *outcome, payload string) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		logger.Warn("history database unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		logger.Warn("history migration failed", zap.Error(err))
		return
	}

	p := models.Prediction{Action: oc.action, Location: oc.location, Payload: payload}
	if oc.reading != nil {
		p.AQI = sql.NullInt64{Int64: int64(oc.reading.AQI), Valid: true}
		if flags := ingest.QualityFlagsToJSON(ingest.ValidateReading(*oc.reading)); flags != "" {
			p.QualityFlags = sql.NullString{String: flags, Valid: true}
		}
	}
	if err := st.SavePrediction(p); err != nil {
		logger.Warn("could not record prediction", zap.Error(err))
	}
}

func runServe(cli *CLI, stderr io.Writer) int {
	logger, err := observability.NewLogger(zap.InfoLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultServeDB
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		logger.Error("open database", zap.String("path", dbPath), zap.Error(err))
		return 1
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		logger.Error("migrate", zap.Error(err))
		return 1
	}
	logger.Info("database migrated", zap.String("path", dbPath))

	var provider predictor.FeatureProvider = predictor.StaticProvider{}
	if cli.LiveFeatures {
		provider = ingest.NewLiveProvider(ingest.NewFetcher(""), logger)
		logger.Info("live feature provider enabled")
	}

	var opts []predictor.Option
	if cli.Seed != nil {
		opts = append(opts, predictor.WithSeed(*cli.Seed))
	}
	pred := predictor.New(provider, opts...)

	var limiter *rate.Limiter
	if cli.Rate > 0 {
		burst := int(cli.Rate)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cli.Rate), burst)
	}

	// The predictor is not goroutine-safe; the scheduler and the HTTP
	// handlers share one mutex around it.
	var predMu sync.Mutex
	scheduler := ingest.NewScheduler(st, pred, logger, snapshotLocations, cli.SnapshotEvery, &predMu)

	cards, err := sharecard.NewCache(cli.CardCacheDir)
	if err != nil {
		logger.Error("card cache", zap.String("dir", cli.CardCacheDir), zap.Error(err))
		return 1
	}
	server := api.NewServer(pred, st, cards, logger, cli.Listen, limiter, &predMu)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go scheduler.Run(ctx)

	if err := server.Run(ctx); err != nil {
		logger.Error("server", zap.Error(err))
		return 1
	}
	return 0
}
