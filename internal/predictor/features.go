package predictor

import "github.com/Shubhamjh4/airsense360/internal/models"

// FeatureProvider supplies the model inputs for a location: geographic and
// meteorological features plus satellite-derived pollutant readings.
// Implementations must not fail; a provider that can't resolve a location
// returns its best fallback values instead.
type FeatureProvider interface {
	Features(location string) models.LocationFeatures
	Satellite(location string) models.PollutantReadings
}

// StaticProvider returns fixed reference values (Gurgaon region) for every
// location. It stands in for real geocoding and satellite lookups until a
// trained model ships.
type StaticProvider struct{}

func (StaticProvider) Features(location string) models.LocationFeatures {
	return models.LocationFeatures{
		Latitude:          28.4595,
		Longitude:         77.0266,
		Elevation:         217,
		PopulationDensity: 1000,
		Temperature:       25.0,
		Humidity:          60.0,
		WindSpeed:         5.0,
		Pressure:          1013.25,
	}
}

func (StaticProvider) Satellite(location string) models.PollutantReadings {
	return models.PollutantReadings{
		NO2:          30.5,
		SO2:          12.3,
		CO:           1.1,
		AerosolIndex: 0.8,
		Formaldehyde: 0.15,
	}
}

// FeatureVector returns the ordered feature slice a trained model would
// consume: location features first, then pollutant readings.
func FeatureVector(feats models.LocationFeatures, sat models.PollutantReadings) []float64 {
	return []float64{
		feats.Latitude,
		feats.Longitude,
		feats.Elevation,
		feats.PopulationDensity,
		feats.Temperature,
		feats.Humidity,
		feats.WindSpeed,
		feats.Pressure,
		sat.NO2,
		sat.SO2,
		sat.CO,
		sat.AerosolIndex,
		sat.Formaldehyde,
	}
}
