package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Shubhamjh4/airsense360/internal/httputil"
	"github.com/Shubhamjh4/airsense360/internal/metrics"
)

const defaultBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// Conditions is the subset of model inputs the upstream API can supply.
// Anything it cannot (population density) keeps its reference value.
type Conditions struct {
	Elevation    float64
	Temperature  float64
	Humidity     float64
	WindSpeed    float64
	Pressure     float64
	NO2          float64
	SO2          float64
	CO           float64
	AerosolIndex float64
	Formaldehyde float64
}

// Fetcher retrieves live conditions from the Open-Meteo air-quality API.
type Fetcher struct {
	baseURL    string
	client     *http.Client
	maxElapsed time.Duration
}

// NewFetcher constructs a Fetcher. baseURL is optional and falls back to the
// Open-Meteo endpoint when empty.
func NewFetcher(baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Fetcher{
		baseURL:    baseURL,
		client:     httputil.NewClient(),
		maxElapsed: 2 * time.Minute,
	}
}

// Fetch returns the most recent conditions for the given coordinates.
// Transient upstream failures (429, 5xx) are retried with exponential
// backoff until the context is done; other HTTP errors fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, lat, lon float64) (*Conditions, error) {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&hourly=nitrogen_dioxide,sulphur_dioxide,carbon_monoxide,aerosol_optical_depth,formaldehyde,temperature_2m,relative_humidity_2m,wind_speed_10m,surface_pressure&timezone=UTC", f.baseURL, lat, lon)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch conditions: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("upstream unavailable: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch conditions: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = f.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		metrics.FeatureFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	cond, err := parseConditions(body)
	if err != nil {
		metrics.FeatureFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.FeatureFetchesTotal.WithLabelValues("ok").Inc()
	return cond, nil
}

func parseConditions(body []byte) (*Conditions, error) {
	var payload struct {
		Elevation float64 `json:"elevation"`
		Hourly    struct {
			NitrogenDioxide []float64 `json:"nitrogen_dioxide"`
			SulphurDioxide  []float64 `json:"sulphur_dioxide"`
			CarbonMonoxide  []float64 `json:"carbon_monoxide"`
			AerosolDepth    []float64 `json:"aerosol_optical_depth"`
			Formaldehyde    []float64 `json:"formaldehyde"`
			Temperature     []float64 `json:"temperature_2m"`
			Humidity        []float64 `json:"relative_humidity_2m"`
			WindSpeed       []float64 `json:"wind_speed_10m"`
			Pressure        []float64 `json:"surface_pressure"`
		} `json:"hourly"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal conditions: %w", err)
	}

	cond := &Conditions{Elevation: payload.Elevation}
	var ok bool

	if cond.NO2, ok = latestFloat(payload.Hourly.NitrogenDioxide); !ok {
		return nil, fmt.Errorf("conditions response missing nitrogen dioxide")
	}
	if cond.SO2, ok = latestFloat(payload.Hourly.SulphurDioxide); !ok {
		return nil, fmt.Errorf("conditions response missing sulphur dioxide")
	}
	if cond.CO, ok = latestFloat(payload.Hourly.CarbonMonoxide); !ok {
		return nil, fmt.Errorf("conditions response missing carbon monoxide")
	}
	if cond.AerosolIndex, ok = latestFloat(payload.Hourly.AerosolDepth); !ok {
		return nil, fmt.Errorf("conditions response missing aerosol optical depth")
	}
	if cond.Formaldehyde, ok = latestFloat(payload.Hourly.Formaldehyde); !ok {
		return nil, fmt.Errorf("conditions response missing formaldehyde")
	}
	if cond.Temperature, ok = latestFloat(payload.Hourly.Temperature); !ok {
		return nil, fmt.Errorf("conditions response missing temperature")
	}
	if cond.Humidity, ok = latestFloat(payload.Hourly.Humidity); !ok {
		return nil, fmt.Errorf("conditions response missing humidity")
	}
	if cond.WindSpeed, ok = latestFloat(payload.Hourly.WindSpeed); !ok {
		return nil, fmt.Errorf("conditions response missing wind speed")
	}
	if cond.Pressure, ok = latestFloat(payload.Hourly.Pressure); !ok {
		return nil, fmt.Errorf("conditions response missing pressure")
	}

	return cond, nil
}

func latestFloat(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}
