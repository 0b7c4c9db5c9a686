package main

import (
	"strconv"
	"strings"

	"github.com/getlantern/errors"
	"github.com/unixpickle/essentials"
)

const (
	modeLanguageModel = "lm"
	modeNumber        = "np"
)

/*
Sample is one training pair: input indices and targets.
For the language model d is x shifted by one, for number prediction it is the label.
*/
type Sample struct {
	X []int
	D []int
}

/*
Corpus is tokenised text before it is mapped onto a vocabulary.
Labels is only filled for number prediction.
*/
type Corpus struct {
	Sentences [][]string
	Labels    []int
}

/*
ParseCorpus splits text into one sentence per non-blank line.
In number prediction mode each line is `label<TAB>sentence` with a 0 or 1 label.
Sentences longer than maxLen words are cut; maxLen <= 0 keeps them whole.
*/
func ParseCorpus(text string, mode string, maxLen int) (*Corpus, error) {
	c := &Corpus{}
	for n, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sentence := line
		if mode == modeNumber {
			parts := strings.SplitN(line, "\t", 2)
			if len(parts) != 2 {
				return nil, errors.New("line %d: expected label<TAB>sentence", n+1)
			}
			label, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil || (label != 0 && label != 1) {
				return nil, errors.New("line %d: label must be 0 or 1, got %q", n+1, parts[0])
			}
			c.Labels = append(c.Labels, label)
			sentence = parts[1]
		}
		words := tokenize(sentence)
		if len(words) == 0 {
			if mode == modeNumber {
				return nil, errors.New("line %d: empty sentence", n+1)
			}
			continue
		}
		if maxLen > 0 {
			words = words[:essentials.MinInt(len(words), maxLen)]
		}
		c.Sentences = append(c.Sentences, words)
	}
	if len(c.Sentences) == 0 {
		return nil, errors.New("corpus is empty")
	}
	return c, nil
}

/*
Samples maps the corpus onto vocab.
*/
func (c *Corpus) Samples(vocab *Vocab, mode string) []Sample {
	out := make([]Sample, 0, len(c.Sentences))
	boundary := vocab.Index(boundaryToken)
	for i, sent := range c.Sentences {
		ix := vocab.Indices(sent)
		switch mode {
		case modeNumber:
			out = append(out, Sample{X: ix, D: []int{c.Labels[i]}})
		default:
			x := append([]int{boundary}, ix...)
			d := append(append([]int{}, ix...), boundary)
			out = append(out, Sample{X: x, D: d})
		}
	}
	return out
}

func splitSamples(samples []Sample) (xs [][]int, ds [][]int) {
	for _, s := range samples {
		xs = append(xs, s.X)
		ds = append(ds, s.D)
	}
	return xs, ds
}
