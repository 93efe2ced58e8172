package ingest

import (
	"encoding/json"

	"github.com/Shubhamjh4/airsense360/internal/models"
)

const (
	FlagAQIOutOfRange = "aqi_out_of_range"
	FlagPMRatioBroken = "pm_ratio_broken"
	FlagCONegative    = "co_negative"
)

// ValidateReading sanity-checks a reading before it is stored. Bounds are
// physical plausibility on the CPCB 0-500 scale, not model output ranges.
func ValidateReading(r models.Reading) []string {
	var flags []string

	if r.AQI < 0 || r.AQI > 500 {
		flags = append(flags, FlagAQIOutOfRange)
	}

	// PM2.5 is a subset of PM10 by definition.
	if r.PM25 > r.PM10 {
		flags = append(flags, FlagPMRatioBroken)
	}

	if r.CO < 0 {
		flags = append(flags, FlagCONegative)
	}

	return flags
}

func QualityFlagsToJSON(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	b, _ := json.Marshal(flags)
	return string(b)
}
