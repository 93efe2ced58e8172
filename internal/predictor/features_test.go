package predictor

import "testing"

func TestStaticProviderIgnoresLocation(t *testing.T) {
	p := StaticProvider{}
	baseFeats := p.Features("Delhi")
	baseSat := p.Satellite("Delhi")

	for _, loc := range []string{"Gurgaon", "", "12345", "Palwal"} {
		if got := p.Features(loc); got != baseFeats {
			t.Errorf("Features(%q) = %+v, want %+v", loc, got, baseFeats)
		}
		if got := p.Satellite(loc); got != baseSat {
			t.Errorf("Satellite(%q) = %+v, want %+v", loc, got, baseSat)
		}
	}
}

func TestStaticProviderReferenceValues(t *testing.T) {
	feats := StaticProvider{}.Features("Delhi")

	if feats.Latitude != 28.4595 || feats.Longitude != 77.0266 {
		t.Errorf("Features() position = %v,%v, want 28.4595,77.0266", feats.Latitude, feats.Longitude)
	}
	if feats.Elevation != 217 {
		t.Errorf("Features() elevation = %v, want 217", feats.Elevation)
	}
	if feats.Pressure != 1013.25 {
		t.Errorf("Features() pressure = %v, want 1013.25", feats.Pressure)
	}

	sat := StaticProvider{}.Satellite("Delhi")
	if sat.NO2 != 30.5 || sat.SO2 != 12.3 || sat.CO != 1.1 {
		t.Errorf("Satellite() = %+v, want NO2 30.5, SO2 12.3, CO 1.1", sat)
	}
}

func TestFeatureVectorOrder(t *testing.T) {
	vec := FeatureVector(StaticProvider{}.Features("x"), StaticProvider{}.Satellite("x"))

	if len(vec) != 13 {
		t.Fatalf("FeatureVector() length = %d, want 13", len(vec))
	}
	if vec[0] != 28.4595 {
		t.Errorf("FeatureVector()[0] = %v, want latitude 28.4595", vec[0])
	}
	if vec[8] != 30.5 {
		t.Errorf("FeatureVector()[8] = %v, want NO2 30.5 (pollutants follow features)", vec[8])
	}
	if vec[12] != 0.15 {
		t.Errorf("FeatureVector()[12] = %v, want formaldehyde 0.15", vec[12])
	}
}
