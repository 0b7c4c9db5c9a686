package recurrent

import (
	"gonum.org/v1/gonum/mat"
)

/*
Trajectory is the result of one forward pass over a sequence of length T.

Y holds one probability vector over the output vocabulary per input token.
S holds T+1 hidden states: S[0] is the all-zero state before the first token
and S[t+1] is the state after consuming token t. Use State and Output rather
than indexing directly.
*/
type Trajectory struct {
	Y []*mat.VecDense
	S []*mat.VecDense
}

/*
Len is the number of time steps.
*/
func (tr *Trajectory) Len() int {
	return len(tr.Y)
}

/*
State returns the hidden state after token t. State(-1) is the zero boundary state.
*/
func (tr *Trajectory) State(t int) *mat.VecDense {
	return tr.S[t+1]
}

/*
Output returns the output distribution at time t.
*/
func (tr *Trajectory) Output(t int) *mat.VecDense {
	return tr.Y[t]
}

/*
Predict runs the network over x, a sequence of token indices, and returns the
hidden states and output distributions at every step. It doesn't touch the deltas.
*/
func (rnn *RNN) Predict(x []int) (*Trajectory, error) {
	if err := rnn.checkInputs(x); err != nil {
		return nil, err
	}
	n := len(x)
	tr := &Trajectory{
		Y: make([]*mat.VecDense, n),
		S: make([]*mat.VecDense, n+1),
	}
	// no prior context before the first token
	tr.S[0] = mat.NewVecDense(rnn.HiddenDims, nil)

	for t := 0; t < n; t++ {
		xt := OneHot(x[t], rnn.VocabSize)

		netIn := mat.NewVecDense(rnn.HiddenDims, nil)
		netIn.MulVec(rnn.Params.V, xt)
		recur := mat.NewVecDense(rnn.HiddenDims, nil)
		recur.MulVec(rnn.Params.U, tr.State(t-1))
		netIn.AddVec(netIn, recur)
		Sigmoid(netIn)
		tr.S[t+1] = netIn

		netOut := mat.NewVecDense(rnn.OutVocabSize, nil)
		netOut.MulVec(rnn.Params.W, netIn)
		Softmax(netOut)
		tr.Y[t] = netOut
	}

	return tr, nil
}
