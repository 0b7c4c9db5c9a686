package main

import (
	"sort"
	"strings"

	"github.com/getlantern/errors"
)

const (
	// boundaryToken starts every input and ends every target sentence.
	boundaryToken = "<s>"
	unknownToken  = "UNKNOWN"
)

/*
Vocab maps words to the indices the network sees.
Index 0 is the sentence boundary and index 1 stands in for rare words.
*/
type Vocab struct {
	Words       []string
	wordToIndex map[string]int
}

/*
NewVocab keeps every word seen at least countThreshold times, most frequent first,
up to maxSize entries in total. maxSize below 2 means no limit.
*/
func NewVocab(sents [][]string, countThreshold int, maxSize int) *Vocab {
	counts := make(map[string]int)
	for _, sent := range sents {
		for _, w := range sent {
			counts[w]++
		}
	}

	kept := make([]string, 0, len(counts))
	for w, c := range counts {
		if c >= countThreshold && w != boundaryToken && w != unknownToken {
			kept = append(kept, w)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if counts[kept[i]] != counts[kept[j]] {
			return counts[kept[i]] > counts[kept[j]]
		}
		return kept[i] < kept[j]
	})

	words := append([]string{boundaryToken, unknownToken}, kept...)
	if maxSize >= 2 && len(words) > maxSize {
		words = words[:maxSize]
	}
	return vocabFromWords(words)
}

func vocabFromWords(words []string) *Vocab {
	v := &Vocab{Words: words, wordToIndex: make(map[string]int, len(words))}
	for i, w := range words {
		v.wordToIndex[w] = i
	}
	return v
}

/*
Size is the number of entries, the boundary and unknown tokens included.
*/
func (v *Vocab) Size() int {
	return len(v.Words)
}

/*
Index returns the index of w, or the unknown token's index.
*/
func (v *Vocab) Index(w string) int {
	if ix, ok := v.wordToIndex[w]; ok {
		return ix
	}
	return v.wordToIndex[unknownToken]
}

/*
Indices maps a tokenised sentence to indices.
*/
func (v *Vocab) Indices(words []string) []int {
	out := make([]int, len(words))
	for i, w := range words {
		out[i] = v.Index(w)
	}
	return out
}

/*
Word returns the word for index ix.
*/
func (v *Vocab) Word(ix int) (string, error) {
	if ix < 0 || ix >= len(v.Words) {
		return "", errors.New("no word at index %d", ix)
	}
	return v.Words[ix], nil
}

func tokenize(sent string) []string {
	return strings.Fields(strings.ToLower(sent))
}
