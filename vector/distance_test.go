package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	c := []float64{1, 0}

	// Orthogonal vectors -> similarity 0
	if sim, err := CosineSimilarity(a, b); err != nil || sim != 0 {
		t.Fatalf("CosineSimilarity(a,b) = %v, %v; want 0, nil", sim, err)
	}

	// Identical vectors -> similarity 1
	if sim, err := CosineSimilarity(a, c); err != nil || sim != 1 {
		t.Fatalf("CosineSimilarity(a,c) = %v, %v; want 1, nil", sim, err)
	}

	// Opposite vectors -> similarity -1
	if sim, err := CosineSimilarity([]float64{2, 2}, []float64{-1, -1}); err != nil || math.Abs(sim+1) > 1e-12 {
		t.Fatalf("CosineSimilarity(opposite) = %v, %v; want -1, nil", sim, err)
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	v := []float64{0.3, -1.7, 2.9, 0.0001}
	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("CosineSimilarity(v,v) failed: %v", err)
	}
	if math.Abs(sim-1) > 1e-12 {
		t.Fatalf("CosineSimilarity(v,v) = %v, want 1", sim)
	}
}

func TestCosineSimilarity_ZeroMagnitude(t *testing.T) {
	_, err := CosineSimilarity([]float64{0, 0}, []float64{1, 2})
	var degenerate *DegenerateVectorError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateVectorError, got %v", err)
	}
	if degenerate.Side != "a" {
		t.Errorf("Side = %q, want a", degenerate.Side)
	}

	_, err = CosineSimilarity([]float64{1, 2}, []float64{0, 0})
	if !errors.As(err, &degenerate) || degenerate.Side != "b" {
		t.Fatalf("expected DegenerateVectorError on b, got %v", err)
	}
}

func TestCosineSimilarity_Mismatch(t *testing.T) {
	if _, err := CosineSimilarity([]float64{1}, []float64{1, 0}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if _, err := CosineSimilarity(nil, nil); err == nil {
		t.Fatalf("expected error for empty vectors")
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([][]float64{{1, 0, 2}, {3, 4, 0}})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	want := []float64{2, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Mean[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := Mean(nil); err == nil {
		t.Fatalf("expected error for mean of zero vectors")
	}
	if _, err := Mean([][]float64{{1}, {1, 2}}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestMean_DoesNotAliasInput(t *testing.T) {
	in := []float64{1, 2}
	out, err := Mean([][]float64{in})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	out[0] = 99
	if in[0] != 1 {
		t.Fatalf("Mean aliased its input")
	}
}
