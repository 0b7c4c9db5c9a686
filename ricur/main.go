package main

import (
	"os"
	"strings"

	"github.com/getlantern/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/in5omnia/RNN-vs-GRU-BPTT-Study/recurrent"
)

// max length of generated sentences
const maxWordsGenerate = 50

var logger = logrus.New()

func main() {
	app := cli.NewApp()
	app.Name = "ricur"
	app.Usage = "train a recurrent network with back propagation through time"
	app.Version = "0.2.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log training progress inside each epoch",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "train",
			Usage: "Train a network on a text corpus",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "in",
					Usage: "Path to the training corpus `file`, one sentence per line",
				},
				cli.StringFlag{
					Name:  "dev",
					Usage: "(optional) Path to a held out corpus `file` used for evaluation",
				},
				cli.StringFlag{
					Name:  "load",
					Usage: "Optional `file` path to load an existing model",
				},
				cli.StringFlag{
					Name:  "save",
					Value: "models/model.json",
					Usage: "`file` path to save the model after every epoch",
				},
				cli.StringFlag{
					Name:  "mode",
					Value: modeLanguageModel,
					Usage: "lm to predict the next word, np to predict a 0/1 label per line (`label<TAB>sentence`)",
				},
				cli.IntFlag{
					Name:  "hidden",
					Value: 50,
					Usage: "number of hidden units",
				},
				cli.Float64Flag{
					Name:  "learn",
					Value: 0.5,
					Usage: "learning rate",
				},
				cli.Float64Flag{
					Name:  "anneal",
					Value: 5,
					Usage: "divide the learning rate by 1+epoch/anneal, 0 keeps it fixed",
				},
				cli.Float64Flag{
					Name:  "gradmax",
					Value: 5.0,
					Usage: "Gradient Clip: max magnitude of an averaged delta, 0 disables clipping",
				},
				cli.IntFlag{
					Name:  "steps",
					Value: 2,
					Usage: "how many earlier time steps to back propagate through",
				},
				cli.IntFlag{
					Name:  "epochs",
					Value: 10,
					Usage: "passes over the corpus",
				},
				cli.IntFlag{
					Name:  "batch",
					Value: 100,
					Usage: "sequences to accumulate before each update",
				},
				cli.IntFlag{
					Name:  "vocab",
					Value: 2000,
					Usage: "largest vocabulary to keep, boundary and unknown tokens included",
				},
				cli.IntFlag{
					Name:  "maxlen",
					Value: 25,
					Usage: "cut sentences to this many words, 0 keeps them whole",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 2018,
					Usage: "random seed for weights and shuffling",
				},
			},
			Action: train,
		},
		{
			Name:  "sample",
			Usage: "Generate text from an existing language model",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "load",
					Usage: "`file` path to load an existing model",
				},
				cli.StringFlag{
					Name:  "seed",
					Usage: "Text to start each prediction with, one per line",
				},
				cli.BoolFlag{
					Name:  "argmax",
					Usage: "always take the most likely word instead of sampling",
				},
			},
			Action: sample,
		},
		{
			Name:  "classify",
			Usage: "Run a number prediction model over sentences",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "load",
					Usage: "`file` path to load an existing model",
				},
				cli.StringFlag{
					Name:  "seed",
					Usage: "Sentences to classify, one per line",
				},
			},
			Action: classify,
		},
		{
			Name:  "gradcheck",
			Usage: "Compare BPTT deltas with finite differences on a small random network",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "vocab",
					Value: 5,
				},
				cli.IntFlag{
					Name:  "hidden",
					Value: 3,
				},
				cli.IntFlag{
					Name:  "len",
					Value: 6,
					Usage: "sequence length",
				},
				cli.Float64Flag{
					Name:  "tolerance",
					Value: 1e-4,
				},
			},
			Action: gradcheck,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("ricur failed")
	}
}

func configFromFlags(c *cli.Context) Config {
	return Config{
		Mode:         c.String("mode"),
		HiddenDims:   c.Int("hidden"),
		LearningRate: c.Float64("learn"),
		ClipValue:    c.Float64("gradmax"),
		Steps:        c.Int("steps"),
		Epochs:       c.Int("epochs"),
		BatchSize:    c.Int("batch"),
		Anneal:       c.Float64("anneal"),
		VocabSize:    c.Int("vocab"),
		MaxLen:       c.Int("maxlen"),
		Seed:         c.Int64("seed"),
	}
}

func train(c *cli.Context) error {
	// cpu profiling via PERF environment flag
	if profileWhich := os.Getenv("PERF"); profileWhich != "" {
		if profileWhich == "mem" {
			defer profile.Start(profile.MemProfile).Stop()
		} else if profileWhich == "cpu" {
			defer profile.Start(profile.CPUProfile).Stop()
		}
	}

	cfg := configFromFlags(c)
	if cfg.Mode != modeLanguageModel && cfg.Mode != modeNumber {
		return errors.New("unknown mode %q, want %q or %q", cfg.Mode, modeLanguageModel, modeNumber)
	}
	if c.String("in") == "" {
		return errors.New("Missing required corpus: --in")
	}
	input, err := readFileContents(c.String("in"))
	if err != nil {
		return err
	}
	corpus, err := ParseCorpus(input, cfg.Mode, cfg.MaxLen)
	if err != nil {
		return err
	}

	var state *TrainingState
	if load := c.String("load"); load != "" {
		state, err = loadState(load, logger)
		if err != nil {
			return err
		}
		if state.Config.Mode != cfg.Mode {
			return errors.New("loaded a %q model but --mode is %q", state.Config.Mode, cfg.Mode)
		}
		// the vocabulary and shape come from the saved model, the rest from the flags
		cfg.HiddenDims = state.Config.HiddenDims
		cfg.VocabSize = state.Config.VocabSize
		state.Config = cfg
	} else {
		state, err = NewTrainingState(cfg, corpus, logger)
		if err != nil {
			return err
		}
	}

	var dev []Sample
	if devFile := c.String("dev"); devFile != "" {
		devInput, err := readFileContents(devFile)
		if err != nil {
			return err
		}
		devCorpus, err := ParseCorpus(devInput, cfg.Mode, cfg.MaxLen)
		if err != nil {
			return err
		}
		dev = devCorpus.Samples(state.vocab, cfg.Mode)
	}

	logger.WithFields(logrus.Fields{
		"learn":   cfg.LearningRate,
		"anneal":  cfg.Anneal,
		"gradmax": cfg.ClipValue,
		"steps":   cfg.Steps,
		"batch":   cfg.BatchSize,
		"epochs":  cfg.Epochs,
	}).Info("Optimization params")

	saveFilepath := c.String("save")
	return state.Train(corpus.Samples(state.vocab, cfg.Mode), dev, func(s *TrainingState) error {
		return saveState(s, saveFilepath)
	})
}

func sample(c *cli.Context) error {
	loadFilepath := c.String("load")
	if loadFilepath == "" {
		return errors.New("Missing required filepath to model: --load")
	}
	state, err := loadState(loadFilepath, logger)
	if err != nil {
		return err
	}
	for _, seed := range strings.Split(c.String("seed"), "\n") {
		pred, err := state.PredictSentence(!c.Bool("argmax"), maxWordsGenerate, seed)
		if err != nil {
			return err
		}
		logger.WithField("seed", seed).Info(strings.TrimSpace(seed + " " + pred))
	}
	return nil
}

func classify(c *cli.Context) error {
	loadFilepath := c.String("load")
	if loadFilepath == "" {
		return errors.New("Missing required filepath to model: --load")
	}
	state, err := loadState(loadFilepath, logger)
	if err != nil {
		return err
	}
	for _, sentence := range strings.Split(c.String("seed"), "\n") {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		label, err := state.Classify(sentence)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"sentence": sentence, "label": label}).Info("Classified")
	}
	return nil
}

func gradcheck(c *cli.Context) error {
	vocab := c.Int("vocab")
	rnn, err := recurrent.NewRNN(vocab, c.Int("hidden"), vocab)
	if err != nil {
		return err
	}
	n := c.Int("len")
	if n <= 0 {
		return errors.New("sequence length must be positive, got %d", n)
	}
	x := make([]int, n)
	d := make([]int, n)
	for i := range x {
		x[i] = recurrent.Randi(0, vocab)
		d[i] = recurrent.Randi(0, vocab)
	}

	worst, err := recurrent.GradCheck(rnn, x, d, n, 1e-5)
	if err != nil {
		return err
	}
	fields := logrus.Fields{"x": x, "d": d, "max_abs_diff": worst}
	if worst > c.Float64("tolerance") {
		logger.WithFields(fields).Error("Gradient check failed")
		return errors.New("gradient check failed: %v > %v", worst, c.Float64("tolerance"))
	}
	logger.WithFields(fields).Info("Gradient check passed")
	return nil
}
