package topicmodel

import (
	"topiclab/internal/domain"
	"topiclab/internal/vocab"
)

// TopWords resolves TopTerms against v. Ids v does not know are skipped.
func (m *Model) TopWords(v *vocab.Vocabulary, topic, n int) []domain.WordProb {
	terms := m.TopTerms(topic, n)
	out := make([]domain.WordProb, 0, len(terms))
	for _, t := range terms {
		w, ok := v.Token(t.ID)
		if !ok {
			continue
		}
		out = append(out, domain.WordProb{Word: w, Prob: t.Weight})
	}
	return out
}

// Summaries lists every topic with its label and n top words, in id order.
func (m *Model) Summaries(v *vocab.Vocabulary, labels domain.LabelMap, n int) []domain.TopicWords {
	out := make([]domain.TopicWords, m.NumTopics)
	for k := range out {
		out[k] = domain.TopicWords{
			ID:    k,
			Label: labels.Label(k),
			Words: m.TopWords(v, k, n),
		}
	}
	return out
}
