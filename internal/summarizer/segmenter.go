package summarizer

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Sentence is one span produced by a Segmenter. Position is its 0-based
// order in the document and doubles as its identity, since the same text
// may appear more than once.
type Sentence struct {
	Position int
	Text     string
	Words    []string
}

// Segmenter splits a document into ordered, non-overlapping sentences,
// each carrying its word tokens in surface form.
type Segmenter interface {
	Segment(text string) ([]Sentence, error)
}

// ProseSegmenter segments with prose's punkt model and tokenizes each
// sentence with its Treebank-style tokenizer.
type ProseSegmenter struct{}

func (ProseSegmenter) Segment(text string) ([]Sentence, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to segment document: %w", err)
	}

	var sentences []Sentence
	for _, s := range doc.Sentences() {
		words, err := tokenize(s.Text)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, Sentence{
			Position: len(sentences),
			Text:     s.Text,
			Words:    words,
		})
	}
	return sentences, nil
}

func tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize sentence: %w", err)
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	return words, nil
}
