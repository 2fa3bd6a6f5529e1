package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("Climate talks resume in Bonn", "climate"))
	assert.True(t, MatchesQuery("New AI rules", "ai"))
	assert.False(t, MatchesQuery("The minister said no", "ai"))
	assert.True(t, MatchesQuery("Talks on climate change stall", "Climate Change"))
	assert.True(t, MatchesQuery("anything", "  "))
}

func TestDedupe_KeepsFirst(t *testing.T) {
	in := []Article{
		{Title: "a", URL: "https://x.test/1"},
		{Title: "b", URL: "HTTPS://x.test/1 "},
		{Title: "c", URL: "https://x.test/2"},
	}
	out := Dedupe(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "c", out[1].Title)
}

func TestLimit(t *testing.T) {
	in := []Article{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	assert.Len(t, Limit(in, 2), 2)
	assert.Len(t, Limit(in, 10), 3)
	assert.Empty(t, Limit(in, 0))
}
