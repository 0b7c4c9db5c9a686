package recurrent

import (
	"encoding/json"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSerialize(t *testing.T) {
	t.Run("weights survive a JSON round trip", func(t *testing.T) {
		rnn := newTestRNN(t, 6, 4, 2, 51)
		b, err := json.Marshal(rnn)
		if err != nil {
			t.Fatal(err)
		}
		var loaded RNN
		if err := json.Unmarshal(b, &loaded); err != nil {
			t.Fatal(err)
		}
		if loaded.VocabSize != 6 || loaded.HiddenDims != 4 || loaded.OutVocabSize != 2 {
			t.Fatalf("sizes %d/%d/%d", loaded.VocabSize, loaded.HiddenDims, loaded.OutVocabSize)
		}
		if !mat.Equal(rnn.Params.V, loaded.Params.V) || !mat.Equal(rnn.Params.U, loaded.Params.U) {
			t.Fatal("weights changed")
		}
		if !isZero(loaded.Deltas.V) {
			t.Fatal("loaded deltas should be zero")
		}
	})

	t.Run("truncated matrices are rejected", func(t *testing.T) {
		var loaded RNN
		blob := `{"U":{"RowCount":2,"ColumnCount":2,"W":[1,2,3]},"V":{},"W":{}}`
		if err := json.Unmarshal([]byte(blob), &loaded); err == nil {
			t.Fail()
		}
	})
}
