// Package entities finds named entities in summaries and renders them as
// highlighted HTML.
package entities

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Entity is one named-entity mention. Start and End are byte offsets into
// the text it was extracted from.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Extractor interface {
	Extract(text string) ([]Entity, error)
}

// ProseExtractor uses prose's averaged-perceptron NER model.
type ProseExtractor struct{}

func (ProseExtractor) Extract(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to extract entities: %w", err)
	}

	mentions := make([]Entity, 0, len(doc.Entities()))
	for _, e := range doc.Entities() {
		mentions = append(mentions, Entity{Text: e.Text, Label: e.Label})
	}
	return Locate(text, mentions), nil
}

// Locate fills in offsets by scanning text left to right, so repeated
// mentions map to successive occurrences. Mentions that cannot be found
// after the previous one are dropped.
func Locate(text string, mentions []Entity) []Entity {
	located := make([]Entity, 0, len(mentions))
	cursor := 0
	for _, m := range mentions {
		if m.Text == "" {
			continue
		}
		idx := strings.Index(text[cursor:], m.Text)
		if idx < 0 {
			continue
		}
		m.Start = cursor + idx
		m.End = m.Start + len(m.Text)
		located = append(located, m)
		cursor = m.End
	}
	return located
}

// Labels returns the distinct labels in first-seen order.
func Labels(ents []Entity) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, e := range ents {
		if seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		labels = append(labels, e.Label)
	}
	return labels
}
