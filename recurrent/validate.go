package recurrent

import (
	"github.com/getlantern/errors"
)

func checkIndices(what string, seq []int, size int) error {
	for t, ix := range seq {
		if ix < 0 || ix >= size {
			return errors.New("%s[%d] = %d is out of range [0, %d)", what, t, ix, size)
		}
	}
	return nil
}

func (rnn *RNN) checkInputs(x []int) error {
	return checkIndices("x", x, rnn.VocabSize)
}

func (rnn *RNN) checkTrajectory(x []int, tr *Trajectory) error {
	if tr == nil {
		return errors.New("missing trajectory")
	}
	if len(tr.Y) != len(x) || len(tr.S) != len(x)+1 {
		return errors.New("trajectory has %d outputs and %d states, want %d and %d",
			len(tr.Y), len(tr.S), len(x), len(x)+1)
	}
	for _, s := range tr.S {
		if s == nil || s.Len() != rnn.HiddenDims {
			return errors.New("trajectory hidden states must have length %d", rnn.HiddenDims)
		}
	}
	for _, y := range tr.Y {
		if y == nil || y.Len() != rnn.OutVocabSize {
			return errors.New("trajectory outputs must have length %d", rnn.OutVocabSize)
		}
	}
	return nil
}

// checkSequence validates a sequence-labelling call: one target per input token.
func (rnn *RNN) checkSequence(x []int, d []int, tr *Trajectory) error {
	if err := rnn.checkInputs(x); err != nil {
		return err
	}
	if len(d) != len(x) {
		return errors.New("got %d targets for %d inputs", len(d), len(x))
	}
	if err := checkIndices("d", d, rnn.OutVocabSize); err != nil {
		return err
	}
	return rnn.checkTrajectory(x, tr)
}

// checkNumber validates a number prediction call: a single label for the whole sequence.
func (rnn *RNN) checkNumber(x []int, d []int, tr *Trajectory) error {
	if err := rnn.checkInputs(x); err != nil {
		return err
	}
	if len(x) == 0 {
		return errors.New("number prediction needs at least one input token")
	}
	if len(d) != 1 {
		return errors.New("number prediction takes exactly one target, got %d", len(d))
	}
	if err := checkIndices("d", d, rnn.OutVocabSize); err != nil {
		return err
	}
	return rnn.checkTrajectory(x, tr)
}

func checkSteps(steps int) error {
	if steps < 0 {
		return errors.New("bptt steps must not be negative, got %d", steps)
	}
	return nil
}
