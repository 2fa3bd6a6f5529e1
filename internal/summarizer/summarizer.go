// Package summarizer builds extractive summaries by word-frequency scoring:
// every qualifying word gets a normalized frequency, every sentence the sum
// of its words' frequencies, and the best sentences are returned verbatim.
//
// A Summarizer holds no per-document state and is safe for concurrent use.
package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// FrequencyTable maps a lowercased word to its normalized frequency.
type FrequencyTable map[string]float64

// SentenceScores maps a sentence position to its score. Sentences without
// a single qualifying word are absent.
type SentenceScores map[int]float64

// Analysis exposes the intermediate tables of one summarization.
type Analysis struct {
	Sentences   []Sentence
	Counts      map[string]int
	Frequencies FrequencyTable
	Scores      SentenceScores
	Selected    []Sentence
	Summary     string
}

type Summarizer struct {
	opts      Options
	segmenter Segmenter
}

type Option func(*Summarizer)

// WithSegmenter replaces the default prose-backed segmenter.
func WithSegmenter(seg Segmenter) Option {
	return func(s *Summarizer) {
		s.segmenter = seg
	}
}

// New builds a Summarizer for the given language and output order.
func New(lang string, order Order, options ...Option) (*Summarizer, error) {
	opts, err := NewOptions(lang, order)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{opts: opts, segmenter: ProseSegmenter{}}
	for _, o := range options {
		o(s)
	}
	return s, nil
}

func (s *Summarizer) Options() Options {
	return s.opts
}

// Summarize returns the n best sentences of text joined by a single space.
// Blank text or n <= 0 yield "".
func (s *Summarizer) Summarize(text string, n int) (string, error) {
	a, err := s.Analyze(text, n)
	if err != nil {
		return "", err
	}
	return a.Summary, nil
}

// Analyze runs the full pipeline and keeps every intermediate table.
func (s *Summarizer) Analyze(text string, n int) (*Analysis, error) {
	a := &Analysis{}
	if strings.TrimSpace(text) == "" {
		return a, nil
	}

	sentences, err := s.segmenter.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	var words []string
	for _, sent := range sentences {
		words = append(words, sent.Words...)
	}

	a.Sentences = sentences
	a.Counts = CountWords(words, s.opts)
	a.Frequencies = Normalize(a.Counts)
	a.Scores = ScoreSentences(sentences, a.Frequencies, s.opts)
	a.Selected = SelectTop(sentences, a.Scores, n, s.opts.Order)
	a.Summary = Join(a.Selected)
	return a, nil
}

// CountWords counts lowercased words, skipping stop words and single
// punctuation characters.
func CountWords(words []string, opts Options) map[string]int {
	lower := cases.Lower(opts.tag)
	counts := make(map[string]int)
	for _, w := range words {
		key := lower.String(w)
		if opts.IsStopword(key) || IsPunctuation(key) {
			continue
		}
		counts[key]++
	}
	return counts
}

// Normalize divides every count by the largest one, so the most frequent
// word maps to exactly 1.0.
func Normalize(counts map[string]int) FrequencyTable {
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	table := make(FrequencyTable, len(counts))
	for w, c := range counts {
		table[w] = float64(c) / float64(maxCount)
	}
	return table
}

// ScoreSentences sums the frequencies of each sentence's words. Words
// missing from the table add nothing.
func ScoreSentences(sentences []Sentence, table FrequencyTable, opts Options) SentenceScores {
	lower := cases.Lower(opts.tag)
	scores := make(SentenceScores)
	for _, sent := range sentences {
		for _, w := range sent.Words {
			freq, ok := table[lower.String(w)]
			if !ok {
				continue
			}
			scores[sent.Position] += freq
		}
	}
	return scores
}

// SelectTop picks the n highest-scoring sentences. Equal scores go to the
// earlier sentence. Unscored sentences are never selected, so fewer than n
// may come back.
func SelectTop(sentences []Sentence, scores SentenceScores, n int, order Order) []Sentence {
	if n <= 0 {
		return nil
	}

	var scored []Sentence
	for _, sent := range sentences {
		if _, ok := scores[sent.Position]; ok {
			scored = append(scored, sent)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		si, sj := scores[scored[i].Position], scores[scored[j].Position]
		if si != sj {
			return si > sj
		}
		return scored[i].Position < scored[j].Position
	})

	if len(scored) > n {
		scored = scored[:n]
	}

	if order == OrderDocument {
		sort.Slice(scored, func(i, j int) bool {
			return scored[i].Position < scored[j].Position
		})
	}
	return scored
}

// Join concatenates sentence texts with a single space and trims the result.
func Join(sentences []Sentence) string {
	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		parts = append(parts, s.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
