package recurrent

import (
	"encoding/json"

	"github.com/getlantern/errors"
	"gonum.org/v1/gonum/mat"
)

/*
Mat is the on-disk form of a weight matrix, row major.
*/
type Mat struct {
	RowCount    int
	ColumnCount int
	W           []float64
}

/*
MatFromDense copies m into a Mat.
*/
func MatFromDense(m *mat.Dense) Mat {
	n, d := m.Dims()
	out := Mat{RowCount: n, ColumnCount: d, W: make([]float64, 0, n*d)}
	for i := 0; i < n; i++ {
		out.W = append(out.W, m.RawRowView(i)...)
	}
	return out
}

/*
Dense turns m back into a gonum matrix.
*/
func (m Mat) Dense() (*mat.Dense, error) {
	if m.RowCount <= 0 || m.ColumnCount <= 0 || len(m.W) != m.RowCount*m.ColumnCount {
		return nil, errors.New("bad matrix: %dx%d with %d values", m.RowCount, m.ColumnCount, len(m.W))
	}
	data := make([]float64, len(m.W))
	copy(data, m.W)
	return mat.NewDense(m.RowCount, m.ColumnCount, data), nil
}

type savedRNN struct {
	U Mat
	V Mat
	W Mat
}

/*
MarshalJSON stores the weights. Deltas are not saved.
*/
func (rnn *RNN) MarshalJSON() ([]byte, error) {
	return json.Marshal(savedRNN{
		U: MatFromDense(rnn.Params.U),
		V: MatFromDense(rnn.Params.V),
		W: MatFromDense(rnn.Params.W),
	})
}

/*
UnmarshalJSON restores weights written by MarshalJSON, with fresh zero deltas.
*/
func (rnn *RNN) UnmarshalJSON(b []byte) error {
	var saved savedRNN
	if err := json.Unmarshal(b, &saved); err != nil {
		return errors.Wrap(err)
	}
	var p Parameters
	var err error
	if p.U, err = saved.U.Dense(); err != nil {
		return errors.Wrap(err).With("matrix", "U")
	}
	if p.V, err = saved.V.Dense(); err != nil {
		return errors.Wrap(err).With("matrix", "V")
	}
	if p.W, err = saved.W.Dense(); err != nil {
		return errors.Wrap(err).With("matrix", "W")
	}
	loaded, err := NewRNNFromParams(p)
	if err != nil {
		return err
	}
	*rnn = *loaded
	return nil
}
