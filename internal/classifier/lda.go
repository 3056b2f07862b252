package classifier

import (
	"sort"

	"topiclab/internal/config"
	"topiclab/internal/domain"
	"topiclab/internal/storage"
	"topiclab/internal/textprep"
	"topiclab/internal/topicmodel"
	"topiclab/internal/vocab"
)

// LDA ranks a document's topics under a trained model. It is read-only once
// built and safe for concurrent use.
type LDA struct {
	model  *topicmodel.Model
	vocab  *vocab.Vocabulary
	labels domain.LabelMap
	cfg    config.ClassifyConfig
	topics []domain.TopicWords
}

func New(m *topicmodel.Model, v *vocab.Vocabulary, labels domain.LabelMap, cfg config.ClassifyConfig) *LDA {
	return &LDA{
		model:  m,
		vocab:  v,
		labels: labels,
		cfg:    cfg,
		topics: m.Summaries(v, labels, cfg.TopWords),
	}
}

// Open loads the saved model and whatever labels exist at labelsPath.
func Open(store storage.ArtifactRepository, labelsPath string, cfg config.ClassifyConfig) (*LDA, error) {
	m, v, err := store.Load()
	if err != nil {
		return nil, err
	}
	labels, err := storage.LoadLabels(labelsPath)
	if err != nil {
		return nil, err
	}
	return New(m, v, labels, cfg), nil
}

// Labeled reports whether any label was loaded.
func (c *LDA) Labeled() bool {
	return len(c.labels) > 0
}

func (c *LDA) NumTopics() int {
	return c.model.NumTopics
}

func (c *LDA) Topics() []domain.TopicWords {
	return c.topics
}

// Classify returns the most probable topics of text, highest first with ties
// broken by topic id. Words the model has never seen are ignored.
func (c *LDA) Classify(text string) domain.Result {
	bow := c.vocab.DocToBow(textprep.Preprocess(text))
	dist := c.model.TopicDistribution(bow, 0)
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Prob > dist[j].Prob
	})

	n := c.cfg.TopTopics
	if n > len(dist) {
		n = len(dist)
	}

	res := make(domain.Result, n)
	for i, tp := range dist[:n] {
		res[i] = domain.Classification{
			TopicID:     tp.Topic,
			Label:       c.labels.Label(tp.Topic),
			Probability: tp.Prob,
			Words:       c.topics[tp.Topic].WordList(),
		}
	}
	return res
}

func (c *LDA) ClassifyBatch(docs []domain.Document) []domain.Result {
	out := make([]domain.Result, len(docs))
	for i, d := range docs {
		out[i] = c.Classify(d.Text)
	}
	return out
}
