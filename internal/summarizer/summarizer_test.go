package summarizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitSegmenter splits on ". " and whitespace, emitting the final period
// as its own token like a real tokenizer would.
type splitSegmenter struct {
	calls int
	err   error
}

func (s *splitSegmenter) Segment(text string) ([]Sentence, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	var out []Sentence
	for _, raw := range strings.SplitAfter(text, ". ") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var words []string
		for _, f := range strings.Fields(raw) {
			if strings.HasSuffix(f, ".") && len(f) > 1 {
				words = append(words, strings.TrimSuffix(f, "."), ".")
				continue
			}
			words = append(words, f)
		}
		out = append(out, Sentence{Position: len(out), Text: raw, Words: words})
	}
	return out, nil
}

func newTestSummarizer(t *testing.T, order Order) (*Summarizer, *splitSegmenter) {
	t.Helper()
	seg := &splitSegmenter{}
	s, err := New("en", order, WithSegmenter(seg))
	require.NoError(t, err)
	return s, seg
}

const catDoc = "The cat sat. The cat sat on the mat. Cats are lovely animals."

func TestSummarize_CatScenario(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderScore)

	a, err := s.Analyze(catDoc, 1)
	require.NoError(t, err)

	// no stemming: "cat" and "cats" are separate keys
	assert.Equal(t, 2, a.Counts["cat"])
	assert.Equal(t, 1, a.Counts["cats"])
	assert.NotContains(t, a.Counts, "the")
	assert.NotContains(t, a.Counts, ".")

	assert.InDelta(t, 2.0, a.Scores[0], 1e-9)
	assert.InDelta(t, 2.5, a.Scores[1], 1e-9)
	assert.InDelta(t, 1.5, a.Scores[2], 1e-9)
	assert.Equal(t, "The cat sat on the mat.", a.Summary)
}

func TestSummarize_EmptyDocument(t *testing.T) {
	s, seg := newTestSummarizer(t, OrderScore)

	out, err := s.Summarize("", 5)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = s.Summarize("  \n\t ", 5)
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Zero(t, seg.calls)
}

func TestSummarize_FewerSentencesThanRequested(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderDocument)

	out, err := s.Summarize(catDoc, 10)
	require.NoError(t, err)
	assert.Equal(t, catDoc, out)
}

func TestSummarize_ScoreOrder(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderScore)

	out, err := s.Summarize(catDoc, 3)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat. The cat sat. Cats are lovely animals.", out)
}

func TestSummarize_NonPositiveLength(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderScore)

	for _, n := range []int{0, -3} {
		out, err := s.Summarize(catDoc, n)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	}
}

func TestSummarize_OnlyStopwordsAndPunctuation(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderScore)

	a, err := s.Analyze("It is what it is. And so on.", 3)
	require.NoError(t, err)
	assert.Empty(t, a.Counts)
	assert.Empty(t, a.Frequencies)
	assert.Empty(t, a.Scores)
	assert.Equal(t, "", a.Summary)
}

func TestSummarize_Idempotent(t *testing.T) {
	s, _ := newTestSummarizer(t, OrderScore)

	first, err := s.Summarize(catDoc, 2)
	require.NoError(t, err)
	second, err := s.Summarize(catDoc, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_SegmenterErrorPropagates(t *testing.T) {
	boom := errors.New("bad encoding")
	s, err := New("en", OrderScore, WithSegmenter(&splitSegmenter{err: boom}))
	require.NoError(t, err)

	_, err = s.Summarize(catDoc, 1)
	assert.ErrorIs(t, err, boom)
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	_, err := New("fr", OrderScore)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestCountWords_Danish(t *testing.T) {
	opts, err := NewOptions("da", OrderScore)
	require.NoError(t, err)

	counts := CountWords([]string{"Og", "Ærø", "ÆRØ", "og", "færge", ",", "\n"}, opts)
	assert.Equal(t, map[string]int{"ærø": 2, "færge": 1}, counts)
}

func TestCountWords_PunctuationIsExactMatch(t *testing.T) {
	opts, err := NewOptions("en", OrderScore)
	require.NoError(t, err)

	counts := CountWords([]string{"-", "--", "!", "?!", "\n"}, opts)
	assert.Equal(t, map[string]int{"--": 1, "?!": 1}, counts)
}

func TestNormalize(t *testing.T) {
	table := Normalize(map[string]int{"cat": 4, "mat": 2, "sat": 1})

	maxFreq := 0.0
	for _, f := range table {
		maxFreq = max(maxFreq, f)
	}
	assert.Equal(t, 1.0, maxFreq)
	assert.Equal(t, 0.5, table["mat"])
	assert.Equal(t, 0.25, table["sat"])

	assert.Empty(t, Normalize(map[string]int{}))
}

func TestScoreSentences_UnscoredSentenceAbsent(t *testing.T) {
	opts, err := NewOptions("en", OrderScore)
	require.NoError(t, err)

	sentences := []Sentence{
		{Position: 0, Words: []string{"Cat", "naps"}},
		{Position: 1, Words: []string{"the", "end"}},
		{Position: 2, Words: []string{"Cat", "naps"}},
	}
	scores := ScoreSentences(sentences, FrequencyTable{"cat": 1, "naps": 0.5}, opts)

	assert.Equal(t, SentenceScores{0: 1.5, 2: 1.5}, scores)
}

func TestSelectTop_TieGoesToEarlierSentence(t *testing.T) {
	sentences := []Sentence{
		{Position: 0, Text: "a"},
		{Position: 1, Text: "b"},
		{Position: 2, Text: "c"},
		{Position: 3, Text: "d"},
	}
	scores := SentenceScores{0: 1, 1: 3, 2: 3, 3: 2}

	top := SelectTop(sentences, scores, 2, OrderScore)
	assert.Equal(t, "b c", Join(top))

	top = SelectTop(sentences, scores, 3, OrderDocument)
	assert.Equal(t, "b c d", Join(top))

	assert.Nil(t, SelectTop(sentences, scores, 0, OrderScore))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("Document")
	require.NoError(t, err)
	assert.Equal(t, OrderDocument, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderScore, o)

	_, err = ParseOrder("random")
	assert.Error(t, err)
}

func TestProseSegmenter_CatScenario(t *testing.T) {
	s, err := New("en", OrderScore)
	require.NoError(t, err)

	out, err := s.Summarize(catDoc, 1)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.", out)
}
