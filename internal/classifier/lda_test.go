package classifier

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"topiclab/internal/config"
	"topiclab/internal/domain"
	"topiclab/internal/storage"
	"topiclab/internal/topicmodel"
	"topiclab/internal/vocab"
)

// four topics, each concentrated on two of eight terms
func fourTopics(t *testing.T) (*topicmodel.Model, *vocab.Vocabulary) {
	t.Helper()
	v := vocab.Build([][]string{{"rocket", "orbit"}, {"hockey", "goalie"}, {"senate", "bill"}, {"pasta", "pizza"}})
	data := make([]float64, 4*8)
	for k := 0; k < 4; k++ {
		for w := 0; w < 8; w++ {
			data[k*8+w] = 0.01
		}
	}
	for _, pair := range [][2]string{{"rocket", "orbit"}, {"hockey", "goalie"}, {"senate", "bill"}, {"pasta", "pizza"}} {
		a, _ := v.ID(pair[0])
		b, _ := v.ID(pair[1])
		k := a / 2
		data[k*8+a] = 1
		data[k*8+b] = 1
	}
	m, err := topicmodel.New(mat.NewDense(4, 8, data), []float64{0.25, 0.25, 0.25, 0.25}, 0.25)
	require.NoError(t, err)
	return m, v
}

func topicOf(v *vocab.Vocabulary, word string) int {
	id, _ := v.ID(word)
	return id / 2
}

func TestClassify(t *testing.T) {
	m, v := fourTopics(t)
	c := New(m, v, domain.LabelMap{"1": "Hockey"}, config.Default().Classify)

	res := c.Classify("The goalie blocked every hockey shot; hockey fans cheered the goalie.")
	require.Len(t, res, 3)
	assert.Equal(t, topicOf(v, "hockey"), res[0].TopicID)
	assert.Equal(t, c.labels.Label(res[0].TopicID), res[0].Label)

	for i, r := range res {
		assert.GreaterOrEqual(t, r.Probability, 0.0)
		assert.LessOrEqual(t, r.Probability, 1.0)
		assert.LessOrEqual(t, len(r.Words), 5)
		if i > 0 {
			assert.GreaterOrEqual(t, res[i-1].Probability, r.Probability)
		}
	}
}

func TestClassifyLabels(t *testing.T) {
	m, v := fourTopics(t)
	hockey := topicOf(v, "hockey")
	labels := domain.LabelMap{strconv.Itoa(hockey): "Hockey"}
	c := New(m, v, labels, config.Default().Classify)

	res := c.Classify("hockey goalie hockey")
	assert.Equal(t, "Hockey", res[0].Label)
	for _, r := range res[1:] {
		assert.Equal(t, domain.DefaultLabel(r.TopicID), r.Label)
	}
	assert.True(t, c.Labeled())
	assert.False(t, New(m, v, nil, config.Default().Classify).Labeled())
}

func TestClassifyUnknownWordsActLikeEmptyText(t *testing.T) {
	m, v := fourTopics(t)
	c := New(m, v, nil, config.Default().Classify)

	empty := c.Classify("")
	unknown := c.Classify("zebra quantum xylophone")
	assert.Equal(t, empty, unknown)

	require.Len(t, empty, 3)
	// equal prior: ties resolve by topic id
	for i, r := range empty {
		assert.Equal(t, i, r.TopicID)
		assert.InDelta(t, 0.25, r.Probability, 1e-12)
	}
}

func TestClassifyFewerTopicsThanRequested(t *testing.T) {
	v := vocab.Build([][]string{{"alpha", "beta"}})
	m, err := topicmodel.New(mat.NewDense(2, 2, []float64{0.9, 0.1, 0.1, 0.9}), []float64{0.5, 0.5}, 0.5)
	require.NoError(t, err)

	res := New(m, v, nil, config.Default().Classify).Classify("alpha alpha")
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].TopicID)
	assert.InDelta(t, 1.0, res[0].Probability+res[1].Probability, 1e-9)
}

func TestClassifyBatchSamples(t *testing.T) {
	m, v := fourTopics(t)
	c := New(m, v, nil, config.Default().Classify)

	results := c.ClassifyBatch(SampleDocuments)
	require.Len(t, results, len(SampleDocuments))
	for _, res := range results {
		assert.Len(t, res, 3)
	}
	pasta := results[4]
	assert.Equal(t, topicOf(v, "pasta"), pasta[0].TopicID)
}

func TestTopics(t *testing.T) {
	m, v := fourTopics(t)
	topics := New(m, v, domain.LabelMap{"0": "First"}, config.Default().Classify).Topics()
	require.Len(t, topics, 4)
	assert.Equal(t, "First", topics[0].Label)
	assert.Len(t, topics[0].Words, 5)
}

func TestOpen(t *testing.T) {
	cfg := config.Default().Models
	cfg.Dir = filepath.Join(t.TempDir(), "models")
	dir := storage.NewDir(cfg)

	_, err := Open(dir, cfg.LabelsPath(), config.Default().Classify)
	assert.ErrorIs(t, err, storage.ErrModelNotFound)

	m, v := fourTopics(t)
	require.NoError(t, dir.Save(m, v))

	c, err := Open(dir, cfg.LabelsPath(), config.Default().Classify)
	require.NoError(t, err)
	assert.False(t, c.Labeled())
	assert.Equal(t, 4, c.NumTopics())

	require.NoError(t, storage.SaveLabels(domain.LabelMap{"2": "Politics"}, cfg.LabelsPath()))
	c, err = Open(dir, cfg.LabelsPath(), config.Default().Classify)
	require.NoError(t, err)
	assert.True(t, c.Labeled())
	assert.Equal(t, "Politics", c.Topics()[2].Label)
}
