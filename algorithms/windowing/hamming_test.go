package windowing

import (
	"math"
	"testing"
)

func TestHammingCoefficients(t *testing.T) {
	h, err := NewHamming(5)
	if err != nil {
		t.Fatalf("NewHamming error: %v", err)
	}

	want := []float64{0.08, 0.54, 1.0, 0.54, 0.08}
	got := h.Coefficients()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v want=%v", i, got[i], want[i])
		}
	}

	wantPower := 0.08*0.08*2 + 0.54*0.54*2 + 1
	if math.Abs(h.Power()-wantPower) > 1e-12 {
		t.Fatalf("Power=%v want=%v", h.Power(), wantPower)
	}
}

func TestHammingSymmetric(t *testing.T) {
	h, err := NewHamming(768)
	if err != nil {
		t.Fatalf("NewHamming error: %v", err)
	}
	w := h.Coefficients()
	for i := 0; i < len(w)/2; i++ {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v != %v", i, w[i], w[len(w)-1-i])
		}
	}
}

func TestHammingSizeOne(t *testing.T) {
	h, err := NewHamming(1)
	if err != nil {
		t.Fatalf("NewHamming error: %v", err)
	}
	if c := h.Coefficients(); c[0] != 1 || h.Power() != 1 {
		t.Fatalf("size-1 window=%v power=%v", c, h.Power())
	}
}

func TestHammingRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewHamming(0); err == nil {
		t.Fatal("expected error for size 0")
	}
}

func TestHammingApply(t *testing.T) {
	h, _ := NewHamming(5)
	dst := make([]float64, 5)
	if err := h.Apply(dst, []float64{2, 2, 2, 2, 2}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if math.Abs(dst[2]-2) > 1e-12 || math.Abs(dst[0]-0.16) > 1e-12 {
		t.Fatalf("dst=%v", dst)
	}

	if err := h.Apply(dst, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
