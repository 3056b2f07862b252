package topicmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topiclab/internal/domain"
	"topiclab/internal/vocab"
)

func handVocab() *vocab.Vocabulary {
	return vocab.Build([][]string{{"space", "orbit", "rocket", "hockey", "team", "game"}})
}

func TestTopWords(t *testing.T) {
	m, v := handModel(t), handVocab()

	words := m.TopWords(v, 0, 2)
	require.Len(t, words, 2)
	first, _ := v.Token(0)
	second, _ := v.Token(1)
	assert.Equal(t, first, words[0].Word)
	assert.Equal(t, second, words[1].Word)
	assert.InDelta(t, 0.4, words[0].Prob, 1e-12)

	assert.Empty(t, m.TopWords(v, 5, 2))
}

func TestSummaries(t *testing.T) {
	m, v := handModel(t), handVocab()

	sums := m.Summaries(v, domain.LabelMap{"1": "Sport"}, 3)
	require.Len(t, sums, 2)
	assert.Equal(t, 0, sums[0].ID)
	assert.Equal(t, "Topic_0", sums[0].Label)
	assert.Equal(t, "Sport", sums[1].Label)
	assert.Len(t, sums[1].Words, 3)

	last, _ := v.Token(5)
	assert.Equal(t, last, sums[1].Words[0].Word)
}
