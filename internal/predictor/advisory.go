package predictor

// Advisory is a short health guidance message for an AQI band.
type Advisory struct {
	Headline string `json:"headline"`
	Guidance string `json:"guidance"`
}

// AdvisoryFor returns the health advisory for a category.
func AdvisoryFor(c Category) Advisory {
	switch c {
	case CategoryGood:
		return Advisory{
			Headline: "Air quality is good",
			Guidance: "Minimal impact; outdoor activity is fine for everyone.",
		}
	case CategorySatisfactory:
		return Advisory{
			Headline: "Air quality is satisfactory",
			Guidance: "Minor breathing discomfort possible for sensitive people.",
		}
	case CategoryModerate:
		return Advisory{
			Headline: "Air quality is moderate",
			Guidance: "People with lung disease, children and older adults should limit prolonged outdoor exertion.",
		}
	case CategoryPoor:
		return Advisory{
			Headline: "Air quality is poor",
			Guidance: "Breathing discomfort on prolonged exposure; consider moving exercise indoors.",
		}
	case CategoryVeryPoor:
		return Advisory{
			Headline: "Air quality is very poor",
			Guidance: "Respiratory illness likely on prolonged exposure; avoid outdoor exertion.",
		}
	case CategorySevere:
		return Advisory{
			Headline: "Air quality is severe",
			Guidance: "Affects healthy people and seriously impacts those with existing disease; stay indoors.",
		}
	default:
		return Advisory{
			Headline: "Air quality unknown",
			Guidance: "No guidance available.",
		}
	}
}
