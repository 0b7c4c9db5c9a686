package recurrent

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func newTestRNN(t *testing.T, vocab, hidden, out int, seed int64) *RNN {
	t.Helper()
	rnn, err := NewRNNWithRand(vocab, hidden, out, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewRNNWithRand(%d, %d, %d): %v", vocab, hidden, out, err)
	}
	return rnn
}

// copyRNN returns a network with the same weights as rnn and its own zero deltas.
func copyRNN(t *testing.T, rnn *RNN) *RNN {
	t.Helper()
	c, err := NewRNNFromParams(Parameters{
		U: mat.DenseCopyOf(rnn.Params.U),
		V: mat.DenseCopyOf(rnn.Params.V),
		W: mat.DenseCopyOf(rnn.Params.W),
	})
	if err != nil {
		t.Fatalf("NewRNNFromParams: %v", err)
	}
	return c
}

func mustPredict(t *testing.T, rnn *RNN, x []int) *Trajectory {
	t.Helper()
	tr, err := rnn.Predict(x)
	if err != nil {
		t.Fatalf("Predict(%v): %v", x, err)
	}
	return tr
}

func isZero(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

func sameDeltas(a, b Gradients) bool {
	return mat.Equal(a.U, b.U) && mat.Equal(a.V, b.V) && mat.Equal(a.W, b.W)
}
