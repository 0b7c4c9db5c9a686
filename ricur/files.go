package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/getlantern/errors"
	"github.com/sirupsen/logrus"
)

func readFileContents(filename string) (string, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrap(err).With("file", filename)
	}
	return string(buf), nil
}

func writeFileContents(filename string, contents []byte) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err).With("dir", dir)
		}
	}
	return os.WriteFile(filename, contents, 0644)
}

func loadState(filename string, logger *logrus.Logger) (*TrainingState, error) {
	s, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err).With("file", filename)
	}
	state := &TrainingState{}
	if err := json.Unmarshal(s, state); err != nil {
		return nil, errors.Wrap(err).With("file", filename)
	}
	if err := state.restore(logger); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"file":   filename,
		"vocab":  state.Model.VocabSize,
		"hidden": state.Model.HiddenDims,
		"mode":   state.Config.Mode,
		"epoch":  state.Epoch,
	}).Info("Loaded network")
	return state, nil
}

func saveState(state *TrainingState, filename string) error {
	jsonState, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err)
	}
	if err := writeFileContents(filename, jsonState); err != nil {
		return err
	}
	state.logger.WithField("file", filename).Info("Saved progress")
	return nil
}
