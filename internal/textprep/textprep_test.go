package textprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \t\n ", []string{}},
		{"lowercases", "Graphics CARD", []string{"graphics", "card"}},
		{"strips punctuation and digits", "GPU's 4K-resolution, (ray-tracing)!", []string{"gpus", "kresolution", "raytracing"}},
		{"drops short tokens", "an ox is go big", []string{"big"}},
		{"drops stopwords", "the new graphics card delivers amazing performance for gaming", []string{"new", "graphics", "card", "delivers", "amazing", "performance", "gaming"}},
		{"stopword after stripping", "The... THEIR; whose?", []string{}},
		{"non ascii letters removed", "café naïve élan", []string{"caf", "nave", "lan"}},
		{"keeps duplicates and order", "game Game GAME", []string{"game", "game", "game"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preprocess(tt.in))
		})
	}
}

func TestPreprocessProperties(t *testing.T) {
	inputs := []string{
		"Scientists discovered a new exoplanet orbiting a distant star in the habitable zone.",
		"Congress passed a new bill regarding healthcare reform!!! 2024 #policy",
		"I love cooking Italian food at home. Pasta carbonara & margherita pizza...",
		"x y z aa bbb CCCC d3e4f5g",
	}

	for _, in := range inputs {
		got := Preprocess(in)
		assert.Equal(t, got, Preprocess(in), "deterministic")
		for _, tok := range got {
			assert.GreaterOrEqual(t, len(tok), MinTokenLength, tok)
			assert.False(t, IsStopword(tok), tok)
			assert.Equal(t, strings.ToLower(tok), tok)
			for _, c := range tok {
				assert.True(t, c >= 'a' && c <= 'z', "%q in %q", c, tok)
			}
		}
	}
}

func TestPreprocessAll(t *testing.T) {
	got := PreprocessAll([]string{"space rocket launch", "", "hockey"})
	assert.Equal(t, [][]string{{"space", "rocket", "launch"}, {}, {"hockey"}}, got)
}

func TestStopwords(t *testing.T) {
	words := Stopwords()
	assert.Contains(t, words, "the")
	assert.Contains(t, words, "yourselves")
	assert.NotContains(t, words, "graphics")
	assert.IsIncreasing(t, words)
	assert.True(t, IsStopword("computer"))
	assert.False(t, IsStopword("gpu"))
}
