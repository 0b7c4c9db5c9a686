package recurrent

import (
	"math/rand"

	"github.com/getlantern/errors"
	"gonum.org/v1/gonum/mat"
)

/*
Parameters are the weight matrices of the network.
V maps input to hidden and is stored hidden x vocab, W maps hidden to output,
U maps the previous hidden state to the current one.
*/
type Parameters struct {
	U *mat.Dense
	V *mat.Dense
	W *mat.Dense
}

/*
Gradients accumulate updates for the matrices in Parameters, with the same shapes.
They hold the sum over every sequence seen since the last Reset.
*/
type Gradients struct {
	U *mat.Dense
	V *mat.Dense
	W *mat.Dense
}

func newGradients(p Parameters) Gradients {
	return Gradients{
		U: zerosLike(p.U),
		V: zerosLike(p.V),
		W: zerosLike(p.W),
	}
}

func zerosLike(m *mat.Dense) *mat.Dense {
	n, d := m.Dims()
	return mat.NewDense(n, d, nil)
}

/*
Reset zeroes all accumulated updates.
*/
func (g Gradients) Reset() {
	g.U.Zero()
	g.V.Zero()
	g.W.Zero()
}

/*
Add sums the updates of other into g. Use it to merge buffers that were filled
by independent workers.
*/
func (g Gradients) Add(other Gradients) error {
	if !sameShape(g.U, other.U) || !sameShape(g.V, other.V) || !sameShape(g.W, other.W) {
		return errors.New("cannot add gradients of different shapes")
	}
	g.U.Add(g.U, other.U)
	g.V.Add(g.V, other.V)
	g.W.Add(g.W, other.W)
	return nil
}

/*
Clone returns a deep copy of g.
*/
func (g Gradients) Clone() Gradients {
	return Gradients{
		U: mat.DenseCopyOf(g.U),
		V: mat.DenseCopyOf(g.V),
		W: mat.DenseCopyOf(g.W),
	}
}

func sameShape(a, b *mat.Dense) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}

/*
RNN is a recurrent network with a single sigmoid hidden layer and a softmax output.
An RNN is not safe for concurrent use: the accumulators all write to Deltas.
*/
type RNN struct {
	VocabSize    int
	HiddenDims   int
	OutVocabSize int

	Params Parameters
	Deltas Gradients
}

/*
NewRNN makes a network with randomly initialised weights and zeroed deltas.
*/
func NewRNN(vocabSize int, hiddenDims int, outVocabSize int) (*RNN, error) {
	return NewRNNWithRand(vocabSize, hiddenDims, outVocabSize, r)
}

/*
NewRNNWithRand is NewRNN drawing initial weights from rng.
*/
func NewRNNWithRand(vocabSize int, hiddenDims int, outVocabSize int, rng *rand.Rand) (*RNN, error) {
	if vocabSize <= 0 || hiddenDims <= 0 || outVocabSize <= 0 {
		return nil, errors.New("network sizes must be positive, got vocab=%d hidden=%d out=%d",
			vocabSize, hiddenDims, outVocabSize)
	}
	p := Parameters{
		U: RandMat(rng, hiddenDims, hiddenDims, initScale),
		V: RandMat(rng, hiddenDims, vocabSize, initScale),
		W: RandMat(rng, outVocabSize, hiddenDims, initScale),
	}
	return &RNN{
		VocabSize:    vocabSize,
		HiddenDims:   hiddenDims,
		OutVocabSize: outVocabSize,
		Params:       p,
		Deltas:       newGradients(p),
	}, nil
}

/*
NewRNNFromParams wraps existing weights, for example ones loaded from disk.
The matrices are used as is, not copied.
*/
func NewRNNFromParams(p Parameters) (*RNN, error) {
	if p.U == nil || p.V == nil || p.W == nil {
		return nil, errors.New("missing weight matrix")
	}
	hu, hu2 := p.U.Dims()
	hv, vocab := p.V.Dims()
	out, hw := p.W.Dims()
	if hu != hu2 || hv != hu || hw != hu {
		return nil, errors.New("inconsistent weight shapes: U %dx%d, V %dx%d, W %dx%d",
			hu, hu2, hv, vocab, out, hw)
	}
	return &RNN{
		VocabSize:    vocab,
		HiddenDims:   hu,
		OutVocabSize: out,
		Params:       p,
		Deltas:       newGradients(p),
	}, nil
}
