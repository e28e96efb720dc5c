package rng

// Dirichlet draws one sample from a symmetric Dirichlet(alpha) distribution
// over len(alpha) categories, by drawing independent Gamma(alpha_i, 1)
// deviates and normalizing — the standard construction, and the one the
// mcts package's root-noise injector relies on (spec §4.9/§9).
func (s *Source) Dirichlet(alpha []float64) []float64 {
	out := make([]float64, len(alpha))
	var sum float64
	for i, a := range alpha {
		out[i] = s.Gamma(a)
		sum += out[i]
	}
	if sum <= 0 {
		// Degenerate: fall back to uniform rather than dividing by zero.
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
