package rng

import (
	"math"
	"testing"
)

func TestUniformRange(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		u := s.Uniform()
		if u < 0 || u >= 1 {
			t.Fatalf("Uniform() = %v, want [0,1)", u)
		}
	}
}

func TestBernoulliExtremes(t *testing.T) {
	s := NewSeeded(2)
	for i := 0; i < 100; i++ {
		if s.Bernoulli(0) {
			t.Fatal("Bernoulli(0) returned true")
		}
		if !s.Bernoulli(1) {
			t.Fatal("Bernoulli(1) returned false")
		}
	}
}

func TestGammaMeanApproximatelyShape(t *testing.T) {
	s := NewSeeded(3)
	const n = 20000
	shape := 2.5
	var sum float64
	for i := 0; i < n; i++ {
		sum += s.Gamma(shape)
	}
	mean := sum / n
	if math.Abs(mean-shape) > 0.15 {
		t.Fatalf("Gamma(%v) empirical mean = %v, want close to %v", shape, mean, shape)
	}
}

func TestDirichletSumsToOne(t *testing.T) {
	s := NewSeeded(4)
	alpha := []float64{0.3, 0.3, 0.3, 0.3}
	for trial := 0; trial < 50; trial++ {
		d := s.Dirichlet(alpha)
		var sum float64
		for _, v := range d {
			if v < 0 {
				t.Fatalf("Dirichlet produced negative weight %v", v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("Dirichlet weights sum to %v, want 1", sum)
		}
	}
}
