package predictor

// Category represents an AQI severity band on the CPCB (Indian national)
// breakpoints.
type Category string

const (
	CategoryGood         Category = "good"
	CategorySatisfactory Category = "satisfactory"
	CategoryModerate     Category = "moderate"
	CategoryPoor         Category = "poor"
	CategoryVeryPoor     Category = "very_poor"
	CategorySevere       Category = "severe"
)

// CategoryFor buckets an AQI value. Untrained-model output only reaches the
// satisfactory and moderate bands, but the full scale is mapped so a trained
// model needs no changes here.
func CategoryFor(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategorySatisfactory
	case aqi <= 200:
		return CategoryModerate
	case aqi <= 300:
		return CategoryPoor
	case aqi <= 400:
		return CategoryVeryPoor
	default:
		return CategorySevere
	}
}

// Label returns the display name for a category.
func (c Category) Label() string {
	switch c {
	case CategoryGood:
		return "Good"
	case CategorySatisfactory:
		return "Satisfactory"
	case CategoryModerate:
		return "Moderate"
	case CategoryPoor:
		return "Poor"
	case CategoryVeryPoor:
		return "Very Poor"
	case CategorySevere:
		return "Severe"
	default:
		return "Unknown"
	}
}
