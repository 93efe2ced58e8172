package predictor

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Shubhamjh4/airsense360/internal/models"
)

// AQI sampling bounds. Current readings draw from [CurrentAQIMin,
// CurrentAQIMax); forecast points are clamped to [ForecastAQIMin,
// ForecastAQIMax] after noise is applied.
const (
	CurrentAQIMin  = 80
	CurrentAQIMax  = 180
	ForecastAQIMin = 50
	ForecastAQIMax = 200
)

// Noise half-widths for forecast perturbation around the anchor reading.
const (
	intradayNoise = 20
	dailyNoise    = 30
)

// Defaults applied by callers when the request doesn't specify them.
const (
	DefaultForecastDays = 3
	DefaultNearbyRadius = 50
)

// Intraday forecast points run at three-hour steps from 12:00 to 21:00.
const (
	firstIntradayHour = 12
	intradayStepHours = 3
	lastIntradayHour  = 21
)

const modelVersion = "0.1.0"

// nearbyRoster is the fixed set of neighbouring cities with their distances
// from the reference location. Nearby returns it in this order regardless of
// the requested location or radius.
var nearbyRoster = []models.NearbyCity{
	{Name: "Faridabad", Distance: "12 km"},
	{Name: "Noida", Distance: "28 km"},
	{Name: "Ghaziabad", Distance: "35 km"},
	{Name: "Palwal", Distance: "42 km"},
}

// Predictor produces air quality estimates for a location. Until a trained
// model is wired in, estimates are bounded random samples; the feature
// provider is still consulted on every call so substituting a real provider
// needs no changes here.
//
// A Predictor is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
type Predictor struct {
	provider FeatureProvider
	rng      *rand.Rand
	status   models.ModelStatus
}

type Option func(*Predictor)

// WithSeed seeds the internal random source so output is reproducible.
func WithSeed(seed int64) Option {
	return func(p *Predictor) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand replaces the random source entirely.
func WithRand(r *rand.Rand) Option {
	return func(p *Predictor) {
		p.rng = r
	}
}

func New(provider FeatureProvider, opts ...Option) *Predictor {
	p := &Predictor{
		provider: provider,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		status: models.ModelStatus{
			State:   models.ModelUntrained,
			Version: modelVersion,
			Detail:  "untrained model in use; estimates are randomized",
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status reports how the model was initialized. The predictor never writes
// this anywhere itself; embedding contexts decide how to surface it.
func (p *Predictor) Status() models.ModelStatus {
	return p.status
}

// Current produces an air quality reading for a location. It always
// succeeds; any location value is accepted.
func (p *Predictor) Current(location string) models.Reading {
	feats := p.provider.Features(location)
	sat := p.provider.Satellite(location)

	aqi := p.inferAQI(feats, sat)
	return models.Reading{
		AQI:  aqi,
		PM25: int(float64(aqi) * 0.6),
		PM10: int(float64(aqi) * 0.8),
		NO2:  int(sat.NO2),
		SO2:  int(sat.SO2),
		CO:   math.Round(sat.CO*10) / 10,
	}
}

// inferAQI stands in for model inference. The untrained model ignores the
// feature vector and draws uniformly from [CurrentAQIMin, CurrentAQIMax).
func (p *Predictor) inferAQI(_ models.LocationFeatures, _ models.PollutantReadings) int {
	return CurrentAQIMin + p.rng.Intn(CurrentAQIMax-CurrentAQIMin)
}

// Forecast projects AQI forward from one anchor reading: four intraday
// points at three-hour steps from 12:00, then `days` daily points labelled
// "Day 1".."Day N". The intraday block always precedes the daily block;
// days <= 0 yields the intraday points only.
func (p *Predictor) Forecast(location string, days int) []models.ForecastPoint {
	anchor := p.Current(location).AQI

	points := make([]models.ForecastPoint, 0, 4+max(days, 0))
	for hour := firstIntradayHour; hour <= lastIntradayHour; hour += intradayStepHours {
		points = append(points, models.ForecastPoint{
			Time: fmt.Sprintf("%02d:00", hour),
			AQI:  clampForecast(anchor + p.noise(intradayNoise)),
		})
	}
	for day := 1; day <= days; day++ {
		points = append(points, models.ForecastPoint{
			Time: fmt.Sprintf("Day %d", day),
			AQI:  clampForecast(anchor + p.noise(dailyNoise)),
		})
	}
	return points
}

// Nearby reports readings for the fixed neighbour roster. Each city gets an
// independent Current sample. The radius is accepted but does not filter the
// roster; that is the contract, not an oversight.
func (p *Predictor) Nearby(location string, radius int) []models.NearbyCity {
	results := make([]models.NearbyCity, 0, len(nearbyRoster))
	for _, city := range nearbyRoster {
		reading := p.Current(city.Name)
		results = append(results, models.NearbyCity{
			Name:     city.Name,
			AQI:      reading.AQI,
			Distance: city.Distance,
		})
	}
	return results
}

// noise returns a uniform sample from [-halfWidth, halfWidth).
func (p *Predictor) noise(halfWidth int) int {
	return p.rng.Intn(2*halfWidth) - halfWidth
}

func clampForecast(aqi int) int {
	if aqi < ForecastAQIMin {
		return ForecastAQIMin
	}
	if aqi > ForecastAQIMax {
		return ForecastAQIMax
	}
	return aqi
}
