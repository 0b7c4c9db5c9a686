package recurrent

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

/*
GradCheck compares the deltas from AccDeltasBPTT against a central finite difference
estimate of the negative loss gradient, for every weight in U, V and W.
It returns the largest absolute disagreement. Params and Deltas are left as they were.
*/
func GradCheck(rnn *RNN, x []int, d []int, steps int, step float64) (float64, error) {
	saved := rnn.Deltas.Clone()
	defer func() {
		rnn.Deltas.U.Copy(saved.U)
		rnn.Deltas.V.Copy(saved.V)
		rnn.Deltas.W.Copy(saved.W)
	}()
	rnn.Deltas.Reset()

	tr, err := rnn.Predict(x)
	if err != nil {
		return 0, err
	}
	if err := rnn.AccDeltasBPTT(x, d, tr, steps); err != nil {
		return 0, err
	}

	settings := &fd.Settings{Formula: fd.Central, Step: step}
	var worst float64
	var lossErr error
	pairs := []struct{ w, dw *mat.Dense }{
		{rnn.Params.U, rnn.Deltas.U},
		{rnn.Params.V, rnn.Deltas.V},
		{rnn.Params.W, rnn.Deltas.W},
	}
	for _, p := range pairs {
		rows, cols := p.w.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				orig := p.w.At(i, j)
				numeric := fd.Derivative(func(v float64) float64 {
					p.w.Set(i, j, v)
					loss, err := rnn.Loss(x, d)
					if err != nil {
						lossErr = err
					}
					return loss
				}, orig, settings)
				p.w.Set(i, j, orig)
				if lossErr != nil {
					return 0, lossErr
				}
				// deltas point downhill
				worst = math.Max(worst, math.Abs(-numeric-p.dw.At(i, j)))
			}
		}
	}
	return worst, nil
}
