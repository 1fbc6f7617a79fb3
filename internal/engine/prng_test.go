package engine

import "testing"

func TestRunSeedDeterminism(t *testing.T) {
	r1, _ := NewRunSeed("alpha-seed")
	r2, _ := NewRunSeed("alpha-seed")
	s1 := r1.Stream("x").Intn(1000000)
	s2 := r2.Stream("x").Intn(1000000)
	if s1 != s2 {
		t.Fatalf("streams differ: %d vs %d", s1, s2)
	}
	// child streams
	c1 := r1.Stream("x").Child("y").Intn(1000000)
	c2 := r2.Stream("x").Child("y").Intn(1000000)
	if c1 != c2 {
		t.Fatalf("child streams differ: %d vs %d", c1, c2)
	}
}

func TestEmptySeedRejected(t *testing.T) {
	if _, err := NewRunSeed(""); err == nil {
		t.Fatalf("expected error for empty seed text")
	}
}

func TestIntRangeInclusive(t *testing.T) {
	s := MustRunSeed("range").Stream("r")
	sawLo, sawHi := false, false
	for i := 0; i < 5000; i++ {
		v := s.IntRange(0, 3)
		if v < 0 || v > 3 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
		sawLo = sawLo || v == 0
		sawHi = sawHi || v == 3
	}
	if !sawLo || !sawHi {
		t.Fatalf("expected both bounds to be reachable (lo=%v hi=%v)", sawLo, sawHi)
	}
	if got := s.IntRange(5, 5); got != 5 {
		t.Fatalf("degenerate range should return lo, got %d", got)
	}
}

func TestExpFloat64Mean(t *testing.T) {
	s := MustRunSeed("exp").Stream("e")
	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := s.ExpFloat64(2.0)
		if v < 0 {
			t.Fatalf("negative exponential draw: %f", v)
		}
		sum += v
	}
	mean := sum / n
	if mean < 0.45 || mean > 0.55 {
		t.Fatalf("mean of Exp(2) should be near 0.5, got %f", mean)
	}
}
