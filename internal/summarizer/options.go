package summarizer

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported summary language")

//go:embed stopwords_en.txt
var stopwordsEN []byte

//go:embed stopwords_da.txt
var stopwordsDA []byte

// Punctuation lists the single-character tokens that never count as words.
// The newline is included because paragraph breaks survive tokenization.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~\n"

// Order controls how the selected sentences are arranged in the summary.
type Order string

const (
	// OrderScore keeps the selection order: highest score first.
	OrderScore Order = "score"
	// OrderDocument re-sorts the selected sentences by their position.
	OrderDocument Order = "document"
)

// ParseOrder accepts "score" or "document" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderScore, "":
		return OrderScore, nil
	case OrderDocument:
		return OrderDocument, nil
	}
	return "", fmt.Errorf("unknown summary order %q", s)
}

// Options configures word counting and sentence scoring.
type Options struct {
	Language string // "en" or "da"
	Order    Order

	tag       language.Tag
	stopwords map[string]struct{}
}

// NewOptions resolves the stop-word set and casing rules for lang.
func NewOptions(lang string, order Order) (Options, error) {
	if lang == "" {
		lang = "en"
	}
	if order == "" {
		order = OrderScore
	}

	var raw []byte
	var tag language.Tag
	switch strings.ToLower(lang) {
	case "en":
		raw, tag = stopwordsEN, language.English
	case "da":
		raw, tag = stopwordsDA, language.Danish
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	return Options{
		Language:  strings.ToLower(lang),
		Order:     order,
		tag:       tag,
		stopwords: parseWordList(raw),
	}, nil
}

// IsStopword reports whether the lowercased word is in the language's list.
func (o Options) IsStopword(lower string) bool {
	_, ok := o.stopwords[lower]
	return ok
}

// IsPunctuation reports whether s is exactly one punctuation character.
func IsPunctuation(s string) bool {
	return len(s) == 1 && strings.Contains(Punctuation, s)
}

func parseWordList(raw []byte) map[string]struct{} {
	words := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}
