package recurrent

import (
	"gonum.org/v1/gonum/mat"
)

// The accumulators below never change Params. They add the negative loss gradient
// (target minus prediction) into Deltas so a training loop can sum several sequences
// before taking a step. Every input is validated before Deltas is touched.

// outputError is the softmax/cross-entropy error at one step, onehot(target) - y.
func (rnn *RNN) outputError(target int, y mat.Vector) *mat.VecDense {
	out := OneHot(target, rnn.OutVocabSize)
	out.SubVec(out, y)
	return out
}

// hiddenError carries err back through m and the sigmoid that produced s:
// (mᵀ·err) ⊙ s ⊙ (1-s).
func (rnn *RNN) hiddenError(m mat.Matrix, err mat.Vector, s mat.Vector) *mat.VecDense {
	back := mat.NewVecDense(rnn.HiddenDims, nil)
	back.MulVec(m.T(), err)
	back.MulElemVec(back, sigmoidPrime(s))
	return back
}

// accOneStep adds the contributions of the output error at time t without looking
// further back than the recurrent input of step t itself.
func (rnn *RNN) accOneStep(x []int, tr *Trajectory, t int, deltaOut *mat.VecDense) {
	deltaIn := rnn.hiddenError(rnn.Params.W, deltaOut, tr.State(t))

	outerAdd(rnn.Deltas.W, deltaOut, tr.State(t))
	outerAdd(rnn.Deltas.V, deltaIn, OneHot(x[t], rnn.VocabSize))
	outerAdd(rnn.Deltas.U, deltaIn, tr.State(t-1))
}

// accThroughTime adds the contributions of the output error at time t and follows
// the hidden error back through at most steps earlier time steps.
func (rnn *RNN) accThroughTime(x []int, tr *Trajectory, t int, deltaOut *mat.VecDense, steps int) {
	// W only sees the direct error at its own step
	outerAdd(rnn.Deltas.W, deltaOut, tr.State(t))

	deltaIn := rnn.hiddenError(rnn.Params.W, deltaOut, tr.State(t))
	for tau := 0; tau <= steps && t-tau >= 0; tau++ {
		tt := t - tau
		outerAdd(rnn.Deltas.V, deltaIn, OneHot(x[tt], rnn.VocabSize))
		outerAdd(rnn.Deltas.U, deltaIn, tr.State(tt-1))
		if tau == steps {
			break
		}
		deltaIn = rnn.hiddenError(rnn.Params.U, deltaIn, tr.State(tt-1))
	}
}

/*
AccDeltas accumulates updates for U, V and W with standard back propagation.

x and d are the input and target token sequences and tr must come from
Predict(x). Each step's error is pushed back a single step only.
*/
func (rnn *RNN) AccDeltas(x []int, d []int, tr *Trajectory) error {
	if err := rnn.checkSequence(x, d, tr); err != nil {
		return err
	}
	for t := len(x) - 1; t >= 0; t-- {
		rnn.accOneStep(x, tr, t, rnn.outputError(d[t], tr.Output(t)))
	}
	return nil
}

/*
AccDeltasNP is AccDeltas for number prediction: d holds a single class label
that is compared with the output at the last time step only.
*/
func (rnn *RNN) AccDeltasNP(x []int, d []int, tr *Trajectory) error {
	if err := rnn.checkNumber(x, d, tr); err != nil {
		return err
	}
	last := len(x) - 1
	rnn.accOneStep(x, tr, last, rnn.outputError(d[0], tr.Output(last)))
	return nil
}

/*
AccDeltasBPTT accumulates updates for U, V and W with back propagation through time.

steps is how many earlier time steps each error is carried back through. With
steps == 0 it gives exactly the result of AccDeltas. Sequences shorter than steps
stop at their first token.
*/
func (rnn *RNN) AccDeltasBPTT(x []int, d []int, tr *Trajectory, steps int) error {
	if err := checkSteps(steps); err != nil {
		return err
	}
	if err := rnn.checkSequence(x, d, tr); err != nil {
		return err
	}
	for t := len(x) - 1; t >= 0; t-- {
		rnn.accThroughTime(x, tr, t, rnn.outputError(d[t], tr.Output(t)), steps)
	}
	return nil
}

/*
AccDeltasBPTTNP is AccDeltasBPTT for number prediction: the only error signal is the
one at the last time step, carried back through steps earlier steps.
*/
func (rnn *RNN) AccDeltasBPTTNP(x []int, d []int, tr *Trajectory, steps int) error {
	if err := checkSteps(steps); err != nil {
		return err
	}
	if err := rnn.checkNumber(x, d, tr); err != nil {
		return err
	}
	last := len(x) - 1
	rnn.accThroughTime(x, tr, last, rnn.outputError(d[0], tr.Output(last)), steps)
	return nil
}
