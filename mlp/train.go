package mlp

import "math"

// valueLossEpsilon keeps the value-loss log-ratio finite when either the
// predicted value or the target sits at the boundary of [0,1] (a terminal
// score of exactly 0 on a failed craft, or a freshly initialized network
// predicting a value of exactly 0).
const valueLossEpsilon = 1e-6

// Train runs one forward/backward/update cycle against a single training
// example: features is the network input, targetPolicy is the (already
// floored and renormalized, per the policy-target floor in spec §9) MCTS
// visit distribution, and targetValue is the backed-up terminal score.
// stepSize is the learning rate (spec §4.10's StepSize constant lives in
// the selfplay package, not here — mlp stays oblivious to training
// schedule).
//
// The policy loss is maximum-likelihood cross-entropy against
// targetPolicy; its gradient with respect to the pre-softmax logits is
// the textbook (prediction - target).
//
// The value loss is the squared log-ratio (ln(v/targetValue))^2 spec §4.8
// calls for, not a plain sigmoid BCE: its gradient with respect to v is
// 2*ln(v/targetValue)/v, which — chained through the sigmoid's own
// v*(1-v) derivative — gives the closed-form pre-sigmoid-logit gradient
// 2*(1-v)*ln(v/targetValue) applied directly below. This loss is
// deliberately steeper than BCE near v=0 so the near-zero value-head
// init (see ValueSigmoidBias) gets a large corrective push on its first
// few training examples; do not swap it back for the BCE shortcut.
func (net *Network) Train(features, targetPolicy []float64, targetValue, stepSize float64) {
	policy, value := net.Predict(features)

	net.zeroGradients()

	headGrad := net.head.In.Grad
	for i, p := range policy {
		headGrad[i] += p - targetPolicy[i]
	}

	v := clampUnit(value)
	target := clampUnit(targetValue)
	headGrad[net.head.NumActions] += 2 * (1 - v) * math.Log(v/target)

	for i := len(net.layers) - 1; i >= 0; i-- {
		net.layers[i].Backward()
	}

	net.applyGradients(stepSize)
}

func clampUnit(v float64) float64 {
	if v < valueLossEpsilon {
		return valueLossEpsilon
	}
	if v > 1-valueLossEpsilon {
		return 1 - valueLossEpsilon
	}
	return v
}
