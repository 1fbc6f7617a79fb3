package engine

import "testing"

func TestNewPathogenDefaults(t *testing.T) {
	for _, k := range ListPathogenKinds() {
		v := NewPathogen(k)
		if v.Kind != k || v.Strength != 1.5 || v.Transmissibility != 1.0 || v.Cleared() {
			t.Fatalf("unexpected default pathogen %+v", v)
		}
	}
}

func TestSamplePathogenRates(t *testing.T) {
	r := MustRunSeed("sample").Stream("pathogens")
	const n = 5000
	var flu, sars float64
	for i := 0; i < n; i++ {
		f := SamplePathogen(r, PathogenSeasonalFlu)
		s := SamplePathogen(r, PathogenSARSCoV2)
		if f.Strength < 0 || s.Strength < 0 {
			t.Fatalf("sampled strength must not be negative")
		}
		flu += f.Strength
		sars += s.Strength
	}
	// means are 1/10 and 1/2
	if flu/n > 0.15 || sars/n < 0.4 || sars/n > 0.6 {
		t.Fatalf("unexpected sample means flu=%.3f sars=%.3f", flu/n, sars/n)
	}
}

func TestInvalidPathogenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown pathogen kind")
		}
	}()
	NewPathogen("plague")
}
