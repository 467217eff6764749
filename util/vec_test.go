package util

import (
	"os"
	"path"
	"testing"
)

func TestZeroVector(t *testing.T) {
	v := ZeroVector(5)
	if len(v) != 5 {
		t.Fatalf("expected length 5, got %d", len(v))
	}
	for i, x := range v {
		if x != 0 {
			t.Errorf("expected zero at %d, got %f", i, x)
		}
	}
}

func TestPadVector(t *testing.T) {
	in := []float64{1, 2}
	out := PadVector(in, 4)
	if len(out) != 4 {
		t.Fatalf("expected length 4, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 0 || out[3] != 0 {
		t.Errorf("unexpected padding: %v", out)
	}

	// truncation
	out = PadVector([]float64{1, 2, 3}, 2)
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Errorf("unexpected truncation: %v", out)
	}

	// the input must stay untouched
	out = PadVector(in, 4)
	out[0] = 99
	if in[0] != 1 {
		t.Error("PadVector mutated its input")
	}
}

func TestOnesMask(t *testing.T) {
	mask := OnesMask(3)
	if len(mask) != 3 {
		t.Fatalf("expected length 3, got %d", len(mask))
	}
	for i, v := range mask {
		if v != 1 {
			t.Errorf("expected 1 at %d, got %d", i, v)
		}
	}
}

func TestDiscretizeKey(t *testing.T) {
	if got := DiscretizeKey([]float64{0.11, 0.19}, 1); got != "0.1,0.2" {
		t.Errorf("expected key 0.1,0.2, got %q", got)
	}
	if got := DiscretizeKey(nil, 1); got != "" {
		t.Errorf("expected empty key, got %q", got)
	}
	// nearby observations collapse to the same bucket
	a := DiscretizeKey([]float64{0.12, 0.34}, 1)
	b := DiscretizeKey([]float64{0.14, 0.31}, 1)
	if a != b {
		t.Errorf("expected %q and %q to collide", a, b)
	}
}

func TestSaveReturns(t *testing.T) {
	dir := path.Join(t.TempDir(), "results")
	if err := SaveReturns(dir, "Random", []float64{1.5, -0.5}); err != nil {
		t.Fatalf("SaveReturns failed: %v", err)
	}
	data, err := os.ReadFile(path.Join(dir, "Random_returns.txt"))
	if err != nil {
		t.Fatalf("reading returns file: %v", err)
	}
	if string(data) != "1.500000\n-0.500000\n" {
		t.Errorf("unexpected file contents: %q", string(data))
	}
}
