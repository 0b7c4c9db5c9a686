package recurrent

import (
	"math"
	"testing"
)

func TestCostFunction(t *testing.T) {
	rnn := newTestRNN(t, 5, 4, 5, 31)

	t.Run("Loss sums the negative log probabilities", func(t *testing.T) {
		x := []int{0, 1, 2}
		d := []int{1, 2, 3}
		tr := mustPredict(t, rnn, x)
		want := 0.0
		for i := range x {
			want -= math.Log(tr.Output(i).AtVec(d[i]))
		}
		got, err := rnn.Loss(x, d)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("Loss = %v, want %v", got, want)
		}
	})

	t.Run("an untrained model is close to uniform", func(t *testing.T) {
		ppl, err := rnn.Perplexity([][]int{{0, 1, 2}, {4, 4}}, [][]int{{1, 2, 3}, {0, 1}})
		if err != nil {
			t.Fatal(err)
		}
		if ppl < 3 || ppl > 8 {
			t.Fatalf("perplexity %v is far from the vocabulary size", ppl)
		}
	})

	t.Run("MeanLoss rejects mismatched sets", func(t *testing.T) {
		if _, err := rnn.MeanLoss([][]int{{1}}, nil); err == nil {
			t.Fail()
		}
		if _, err := rnn.MeanLoss([][]int{{1}}, [][]int{{7}}); err == nil {
			t.Fail()
		}
	})
}

func TestNumberPrediction(t *testing.T) {
	rnn := newTestRNN(t, 4, 3, 2, 32)
	x := []int{3, 1, 2}

	t.Run("LossNP only looks at the last step", func(t *testing.T) {
		tr := mustPredict(t, rnn, x)
		got, err := rnn.LossNP(x, []int{1})
		if err != nil {
			t.Fatal(err)
		}
		if want := -math.Log(tr.Output(2).AtVec(1)); math.Abs(got-want) > 1e-12 {
			t.Fatalf("LossNP = %v, want %v", got, want)
		}
	})

	t.Run("AccuracyNP agrees with PredictNP", func(t *testing.T) {
		p, err := rnn.PredictNP(x)
		if err != nil {
			t.Fatal(err)
		}
		acc, err := rnn.AccuracyNP([][]int{x, x}, [][]int{{p}, {1 - p}})
		if err != nil {
			t.Fatal(err)
		}
		if acc != 0.5 {
			t.Fatalf("AccuracyNP = %v, want 0.5", acc)
		}
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		if _, err := rnn.PredictNP(nil); err == nil {
			t.Fail()
		}
		if _, err := rnn.LossNP(nil, []int{0}); err == nil {
			t.Fail()
		}
	})
}
