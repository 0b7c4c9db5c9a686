package recurrent

import (
	"github.com/getlantern/errors"
	"gonum.org/v1/gonum/mat"
)

/*
Solver applies accumulated deltas to the weights with plain gradient steps.
*/
type Solver struct {
	LearningRate float64
	// ClipValue caps the magnitude of each averaged delta. Zero disables clipping.
	ClipValue float64
}

/*
SolverStats is the result of running the solver.
*/
type SolverStats map[string]float64

/*
NewSolver instantiates a Solver
*/
func NewSolver(learningRate float64, clipValue float64) *Solver {
	return &Solver{
		LearningRate: learningRate,
		ClipValue:    clipValue,
	}
}

/*
Step adds LearningRate * delta / batchSize to every weight, then resets the deltas
for the next batch. batchSize is the number of sequences accumulated since the last step.
*/
func (solver *Solver) Step(rnn *RNN, batchSize int) (SolverStats, error) {
	if batchSize <= 0 {
		return nil, errors.New("batch size must be positive, got %d", batchSize)
	}
	numClipped := 0.0
	numTot := 0.0

	pairs := []struct{ w, dw *mat.Dense }{
		{rnn.Params.U, rnn.Deltas.U},
		{rnn.Params.V, rnn.Deltas.V},
		{rnn.Params.W, rnn.Deltas.W},
	}
	for _, p := range pairs {
		w := p.w.RawMatrix()
		dw := p.dw.RawMatrix()
		for i := 0; i < w.Rows; i++ {
			for j := 0; j < w.Cols; j++ {
				mdwi := dw.Data[i*dw.Stride+j] / float64(batchSize)
				// gradient clip
				if solver.ClipValue > 0 {
					if mdwi > solver.ClipValue {
						mdwi = solver.ClipValue
						numClipped++
					}
					if mdwi < -solver.ClipValue {
						mdwi = -solver.ClipValue
						numClipped++
					}
				}
				numTot++
				w.Data[i*w.Stride+j] += solver.LearningRate * mdwi
			}
		}
	}
	rnn.Deltas.Reset()

	return SolverStats{"ratio_clipped": numClipped / numTot}, nil
}
