package recurrent

import (
	"math"

	"github.com/getlantern/errors"
)

/*
Loss is the cross-entropy of the targets d under the network's predictions for x,
summed over all time steps.
*/
func (rnn *RNN) Loss(x []int, d []int) (float64, error) {
	tr, err := rnn.Predict(x)
	if err != nil {
		return 0, err
	}
	if err := rnn.checkSequence(x, d, tr); err != nil {
		return 0, err
	}
	var cost float64
	for t := range x {
		cost += -math.Log(tr.Output(t).AtVec(d[t]))
	}
	return cost, nil
}

/*
LossNP is the cross-entropy of the single label d[0] under the prediction made
after the last token of x.
*/
func (rnn *RNN) LossNP(x []int, d []int) (float64, error) {
	tr, err := rnn.Predict(x)
	if err != nil {
		return 0, err
	}
	if err := rnn.checkNumber(x, d, tr); err != nil {
		return 0, err
	}
	return -math.Log(tr.Output(len(x) - 1).AtVec(d[0])), nil
}

/*
MeanLoss is the total Loss over a set of sequences divided by the number of tokens.
*/
func (rnn *RNN) MeanLoss(xs [][]int, ds [][]int) (float64, error) {
	if len(xs) != len(ds) {
		return 0, errors.New("got %d target sequences for %d inputs", len(ds), len(xs))
	}
	var cost float64
	var n int
	for i := range xs {
		c, err := rnn.Loss(xs[i], ds[i])
		if err != nil {
			return 0, errors.Wrap(err).With("sequence", i)
		}
		cost += c
		n += len(ds[i])
	}
	if n == 0 {
		return 0, errors.New("no tokens to compute a loss over")
	}
	return cost / float64(n), nil
}

/*
Perplexity is exp(MeanLoss).
*/
func (rnn *RNN) Perplexity(xs [][]int, ds [][]int) (float64, error) {
	loss, err := rnn.MeanLoss(xs, ds)
	if err != nil {
		return 0, err
	}
	return math.Exp(loss), nil
}

/*
PredictNP returns the most likely class after reading all of x.
*/
func (rnn *RNN) PredictNP(x []int) (int, error) {
	if len(x) == 0 {
		return 0, errors.New("number prediction needs at least one input token")
	}
	tr, err := rnn.Predict(x)
	if err != nil {
		return 0, err
	}
	return Argmax(tr.Output(len(x) - 1)), nil
}

/*
AccuracyNP is the fraction of sequences whose PredictNP matches the label.
*/
func (rnn *RNN) AccuracyNP(xs [][]int, ds [][]int) (float64, error) {
	if len(xs) != len(ds) {
		return 0, errors.New("got %d labels for %d inputs", len(ds), len(xs))
	}
	if len(xs) == 0 {
		return 0, errors.New("no sequences to score")
	}
	correct := 0
	for i := range xs {
		if len(ds[i]) != 1 {
			return 0, errors.New("sequence %d has %d labels, want 1", i, len(ds[i]))
		}
		p, err := rnn.PredictNP(xs[i])
		if err != nil {
			return 0, errors.Wrap(err).With("sequence", i)
		}
		if p == ds[i][0] {
			correct++
		}
	}
	return float64(correct) / float64(len(xs)), nil
}
