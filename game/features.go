package game

// NumFeatures is the feature vector length: six scalars plus one entry per
// buff kind (spec §4.7).
const NumFeatures = 6 + int(NumBuffs)

// Features encodes the state into the network's input vector:
// [cp, progress, quality, durability, inner_quiet, condition-as-int,
// buff[0..NumBuffs)]. Grounded on executor/convert/convert.go's explicit,
// index-by-index channel encoding (no reflection, no pooling — the network
// input is small and long-lived, unlike the teacher's per-request ONNX
// tensors).
func (s *State) Features() [NumFeatures]float64 {
	var f [NumFeatures]float64
	f[0] = float64(s.CP)
	f[1] = float64(s.Progress)
	f[2] = float64(s.Quality)
	f[3] = float64(s.Durability)
	f[4] = float64(s.InnerQuiet)
	f[5] = float64(s.Condition)
	for i, b := range s.Buff {
		f[6+i] = float64(b)
	}
	return f
}

// FromFeatures reconstructs the six scalar fields of a state from a
// feature vector (the buff slots round-trip too, but are not exercised by
// the round-trip property in spec §8 — only the six scalars are). Params
// must be supplied by the caller since it is not encoded in the vector.
func FromFeatures(f [NumFeatures]float64, params *CraftParams) *State {
	s := &State{
		Params:     params,
		CP:         int16(f[0]),
		Progress:   int16(f[1]),
		Quality:    int16(f[2]),
		Durability: int16(f[3]),
		InnerQuiet: uint8(f[4]),
		Condition:  Condition(f[5]),
	}
	for i := range s.Buff {
		s.Buff[i] = uint8(f[6+i])
	}
	return s
}
