package main

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/getlantern/errors"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"

	"github.com/in5omnia/RNN-vs-GRU-BPTT-Study/recurrent"
)

/*
Config holds the training options that come from the command line.
*/
type Config struct {
	Mode         string
	HiddenDims   int
	LearningRate float64
	ClipValue    float64
	Steps        int
	Epochs       int
	BatchSize    int
	Anneal       float64
	VocabSize    int
	MaxLen       int
	Seed         int64
}

/*
TrainingState is the representation of the training data which gets saved or loaded
to disk between sessions.
*/
type TrainingState struct {
	Config Config
	Vocab  []string
	Model  *recurrent.RNN
	Epoch  int

	vocab  *Vocab
	rng    *rand.Rand
	logger *logrus.Logger
}

/*
NewTrainingState builds a fresh vocabulary and model for corpus.
*/
func NewTrainingState(cfg Config, corpus *Corpus, logger *logrus.Logger) (*TrainingState, error) {
	vocab := NewVocab(corpus.Sentences, 1, cfg.VocabSize)
	outSize := vocab.Size()
	if cfg.Mode == modeNumber {
		outSize = 2
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	model, err := recurrent.NewRNNWithRand(vocab.Size(), cfg.HiddenDims, outSize, rng)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"vocab":  vocab.Size(),
		"hidden": cfg.HiddenDims,
		"out":    outSize,
		"mode":   cfg.Mode,
	}).Info("Created new network")

	return &TrainingState{
		Config: cfg,
		Vocab:  vocab.Words,
		Model:  model,
		vocab:  vocab,
		rng:    rng,
		logger: logger,
	}, nil
}

// restore rebuilds the unexported fields after the state was decoded from disk.
func (state *TrainingState) restore(logger *logrus.Logger) error {
	if state.Model == nil || len(state.Vocab) == 0 {
		return errors.New("saved state has no model or vocabulary")
	}
	if state.Model.VocabSize != len(state.Vocab) {
		return errors.New("model expects %d words but the vocabulary has %d",
			state.Model.VocabSize, len(state.Vocab))
	}
	state.vocab = vocabFromWords(state.Vocab)
	state.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	state.logger = logger
	return nil
}

func (state *TrainingState) learningRate(epoch int) float64 {
	if state.Config.Anneal <= 0 {
		return state.Config.LearningRate
	}
	return state.Config.LearningRate / (1 + float64(epoch)/state.Config.Anneal)
}

// accumulate runs one sample forward and adds its deltas.
func (state *TrainingState) accumulate(s Sample) error {
	tr, err := state.Model.Predict(s.X)
	if err != nil {
		return err
	}
	if state.Config.Mode == modeNumber {
		return state.Model.AccDeltasBPTTNP(s.X, s.D, tr, state.Config.Steps)
	}
	return state.Model.AccDeltasBPTT(s.X, s.D, tr, state.Config.Steps)
}

/*
Evaluate reports the mean per-token loss and perplexity for the language model,
or the mean loss and accuracy for number prediction.
*/
func (state *TrainingState) Evaluate(samples []Sample) (logrus.Fields, error) {
	xs, ds := splitSamples(samples)
	if state.Config.Mode == modeNumber {
		var loss float64
		for i := range xs {
			l, err := state.Model.LossNP(xs[i], ds[i])
			if err != nil {
				return nil, err
			}
			loss += l
		}
		acc, err := state.Model.AccuracyNP(xs, ds)
		if err != nil {
			return nil, err
		}
		return logrus.Fields{"loss": loss / float64(len(xs)), "accuracy": acc}, nil
	}
	loss, err := state.Model.MeanLoss(xs, ds)
	if err != nil {
		return nil, err
	}
	return logrus.Fields{"loss": loss, "perplexity": math.Exp(loss)}, nil
}

/*
Train runs Config.Epochs passes over train, one solver step every BatchSize samples.
afterEpoch is called at the end of every epoch, for example to save progress.
*/
func (state *TrainingState) Train(train []Sample, dev []Sample, afterEpoch func(*TrainingState) error) error {
	if len(train) == 0 {
		return errors.New("nothing to train on")
	}
	batch := essentials.MaxInt(1, state.Config.BatchSize)
	reportEvery := essentials.MaxInt(1, len(train)/10)
	if len(dev) == 0 {
		dev = train
	}

	if fields, err := state.Evaluate(dev); err == nil {
		state.logger.WithFields(fields).Info("Initial")
	}

	for e := 0; e < state.Config.Epochs; e++ {
		t0 := time.Now()
		solver := recurrent.NewSolver(state.learningRate(state.Epoch), state.Config.ClipValue)
		var clipped float64
		var stepsTaken int

		pending := 0
		for i, ix := range state.rng.Perm(len(train)) {
			if err := state.accumulate(train[ix]); err != nil {
				return errors.Wrap(err).With("sample", ix)
			}
			pending++
			if pending == batch || i == len(train)-1 {
				stats, err := solver.Step(state.Model, pending)
				if err != nil {
					return err
				}
				clipped += stats["ratio_clipped"]
				stepsTaken++
				pending = 0
			}
			if (i+1)%reportEvery == 0 {
				state.logger.WithFields(logrus.Fields{
					"epoch": state.Epoch,
					"seen":  i + 1,
					"of":    len(train),
				}).Debug("Progress")
			}
		}
		state.Epoch++

		fields, err := state.Evaluate(dev)
		if err != nil {
			return err
		}
		fields["epoch"] = state.Epoch
		fields["learn"] = solver.LearningRate
		fields["ratio_clipped"] = clipped / float64(stepsTaken)
		fields["ticktime"] = time.Since(t0).String()
		state.logger.WithFields(fields).Info("Epoch done")

		if afterEpoch != nil {
			if err := afterEpoch(state); err != nil {
				return err
			}
		}
	}
	return nil
}

/*
PredictSentence extends seed one word at a time until the boundary token comes out
or maxWords words were produced. With samplei false the most likely word is taken.
*/
func (state *TrainingState) PredictSentence(samplei bool, maxWords int, seed string) (string, error) {
	if state.Config.Mode == modeNumber {
		return "", errors.New("a number prediction model cannot generate text")
	}
	boundary := state.vocab.Index(boundaryToken)
	x := append([]int{boundary}, state.vocab.Indices(tokenize(seed))...)

	var out []string
	for len(out) < maxWords {
		tr, err := state.Model.Predict(x)
		if err != nil {
			return "", err
		}
		probs := tr.Output(tr.Len() - 1)
		var next int
		if samplei {
			next = recurrent.SampleIndex(probs.RawVector().Data)
		} else {
			next = recurrent.Argmax(probs)
		}
		if next == boundary {
			break
		}
		word, err := state.vocab.Word(next)
		if err != nil {
			return "", err
		}
		out = append(out, word)
		x = append(x, next)
	}
	return strings.Join(out, " "), nil
}

/*
Classify returns the number prediction label for a sentence.
*/
func (state *TrainingState) Classify(sentence string) (int, error) {
	if state.Config.Mode != modeNumber {
		return 0, errors.New("model was trained in %q mode, not %q", state.Config.Mode, modeNumber)
	}
	words := tokenize(sentence)
	if len(words) == 0 {
		return 0, errors.New("cannot classify an empty sentence")
	}
	return state.Model.PredictNP(state.vocab.Indices(words))
}
