package ingest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
)

// cityCoords maps roster locations to coordinates for live lookups. Unknown
// locations use the Gurugram reference point, matching the static provider.
var cityCoords = map[string]struct{ Lat, Lon float64 }{
	"Gurugram":  {28.4595, 77.0266},
	"Faridabad": {28.4089, 77.3178},
	"Noida":     {28.5355, 77.3910},
	"Ghaziabad": {28.6692, 77.4538},
	"Palwal":    {28.1447, 77.3320},
}

var defaultCoords = cityCoords["Gurugram"]

// LiveProvider feeds the predictor with conditions fetched from Open-Meteo,
// falling back to the static reference values when the upstream is
// unavailable. Fetches are cached per location so a single prediction does
// not hit the API twice; failed fetches are cached the same way, and the
// last good conditions keep serving while the upstream is down.
type LiveProvider struct {
	fetcher  *Fetcher
	fallback predictor.StaticProvider
	logger   *zap.Logger

	mu      sync.Mutex
	cache   map[string]cachedConditions
	ttl     time.Duration
	failTTL time.Duration

	timeout time.Duration
}

type cachedConditions struct {
	cond      *Conditions // nil until a fetch has succeeded
	nextFetch time.Time
}

func NewLiveProvider(fetcher *Fetcher, logger *zap.Logger) *LiveProvider {
	return &LiveProvider{
		fetcher: fetcher,
		logger:  logger,
		cache:   make(map[string]cachedConditions),
		ttl:     10 * time.Minute,
		failTTL: time.Minute,
		timeout: 30 * time.Second,
	}
}

func (p *LiveProvider) Features(location string) models.LocationFeatures {
	feats := p.fallback.Features(location)

	coords, ok := cityCoords[location]
	if !ok {
		coords = defaultCoords
	}
	feats.Latitude = coords.Lat
	feats.Longitude = coords.Lon

	if cond := p.conditions(location); cond != nil {
		feats.Elevation = cond.Elevation
		feats.Temperature = cond.Temperature
		feats.Humidity = cond.Humidity
		feats.WindSpeed = cond.WindSpeed
		feats.Pressure = cond.Pressure
		// Population density is not observable upstream; the reference
		// value stands.
	}
	return feats
}

func (p *LiveProvider) Satellite(location string) models.PollutantReadings {
	sat := p.fallback.Satellite(location)

	if cond := p.conditions(location); cond != nil {
		sat.NO2 = cond.NO2
		sat.SO2 = cond.SO2
		sat.CO = cond.CO
		sat.AerosolIndex = cond.AerosolIndex
		sat.Formaldehyde = cond.Formaldehyde
	}
	return sat
}

func (p *LiveProvider) conditions(location string) *Conditions {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.cache[location]
	if time.Now().Before(prev.nextFetch) {
		return prev.cond
	}

	coords, ok := cityCoords[location]
	if !ok {
		coords = defaultCoords
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	cond, err := p.fetcher.Fetch(ctx, coords.Lat, coords.Lon)
	if err != nil {
		p.logger.Warn("live conditions unavailable, using last known or reference values",
			zap.String("location", location), zap.Error(err))
		// Hold whatever we had and wait failTTL before the next attempt:
		// an outage costs one fetch per window, not one per call.
		p.cache[location] = cachedConditions{cond: prev.cond, nextFetch: time.Now().Add(p.failTTL)}
		return prev.cond
	}

	p.cache[location] = cachedConditions{cond: cond, nextFetch: time.Now().Add(p.ttl)}
	return cond
}
