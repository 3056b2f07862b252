// Package topicmodel fits an LDA topic model with github.com/e-gun/nlp and keeps
// the fitted topic-word distributions in a form that can be saved, reloaded and
// scored against new documents.
package topicmodel

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/e-gun/nlp"
	"github.com/e-gun/sparse"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"topiclab/internal/vocab"
)

var (
	ErrEmptyCorpus     = errors.New("empty corpus")
	ErrEmptyVocabulary = errors.New("empty vocabulary")
	ErrInvalidTopics   = errors.New("topic count must be positive")
	ErrCorruptModel    = errors.New("corrupt model")
)

type Prior string

const (
	// PriorAuto starts both priors at 1/K and then re-estimates an asymmetric
	// document-topic prior from the fitted corpus.
	PriorAuto Prior = "auto"
	// PriorSymmetric keeps alpha = eta = 1/K.
	PriorSymmetric Prior = "symmetric"
)

type Options struct {
	Topics    int
	Passes    int
	Seed      uint64
	Prior     Prior
	Processes int
}

// TopicProb is one entry of a document's topic distribution.
type TopicProb struct {
	Topic int
	Prob  float64
}

// TermWeight is one vocabulary id with its probability under a topic.
type TermWeight struct {
	ID     int
	Weight float64
}

type Model struct {
	NumTopics int
	Alpha     []float64
	Eta       float64

	// topics is K x W; each row is a probability distribution over the vocabulary.
	topics *mat.Dense
}

// Fit trains a model over corpus, whose ids must lie in [0, vocabSize).
// Empty bags carry no signal and are left out of the term-document matrix.
func Fit(corpus []vocab.Bow, vocabSize int, opts Options) (*Model, error) {
	if opts.Topics < 1 {
		return nil, ErrInvalidTopics
	}
	if vocabSize < 1 {
		return nil, ErrEmptyVocabulary
	}
	if opts.Passes < 1 {
		opts.Passes = 1
	}
	if opts.Processes < 1 {
		opts.Processes = 1
	}

	docs := make([]vocab.Bow, 0, len(corpus))
	for _, bow := range corpus {
		if len(bow) > 0 {
			docs = append(docs, bow)
		}
	}
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	// nlp wants features in rows and documents in columns
	tdm := sparse.NewDOK(vocabSize, len(docs))
	for d, bow := range docs {
		for _, tc := range bow {
			if tc.ID < 0 || tc.ID >= vocabSize {
				return nil, fmt.Errorf("term id %d outside vocabulary of %d", tc.ID, vocabSize)
			}
			tdm.Set(tc.ID, d, float64(tc.Count))
		}
	}

	prior := 1 / float64(opts.Topics)

	lda := nlp.NewLatentDirichletAllocation(opts.Topics)
	lda.Iterations = opts.Passes
	lda.Processes = opts.Processes
	lda.Alpha = prior
	lda.Eta = prior
	lda.Rnd = rand.New(rand.NewSource(opts.Seed))

	if _, err := lda.FitTransform(tdm.ToCSR()); err != nil {
		return nil, fmt.Errorf("fit lda: %w", err)
	}

	topics := mat.DenseCopyOf(lda.Components())
	if r, c := topics.Dims(); r != opts.Topics || c != vocabSize {
		return nil, fmt.Errorf("%w: components are %dx%d, want %dx%d", ErrCorruptModel, r, c, opts.Topics, vocabSize)
	}
	normaliseRows(topics)

	alpha := make([]float64, opts.Topics)
	for k := range alpha {
		alpha[k] = prior
	}

	m := &Model{
		NumTopics: opts.Topics,
		Alpha:     alpha,
		Eta:       prior,
		topics:    topics,
	}

	if opts.Prior == PriorAuto {
		m.UpdateAlpha(docs, opts.Passes)
	}

	return m, nil
}

// New wraps an existing K x W topic-word matrix; rows are normalised in place.
func New(topics *mat.Dense, alpha []float64, eta float64) (*Model, error) {
	k, w := topics.Dims()
	if k < 1 || w < 1 {
		return nil, fmt.Errorf("%w: %dx%d topic matrix", ErrCorruptModel, k, w)
	}
	if len(alpha) != k {
		return nil, fmt.Errorf("%w: %d alphas for %d topics", ErrCorruptModel, len(alpha), k)
	}
	normaliseRows(topics)
	return &Model{NumTopics: k, Alpha: alpha, Eta: eta, topics: topics}, nil
}

// VocabSize is the number of terms each topic is distributed over.
func (m *Model) VocabSize() int {
	_, w := m.topics.Dims()
	return w
}

// TermProb is P(term | topic).
func (m *Model) TermProb(topic, term int) float64 {
	return m.topics.At(topic, term)
}

// TopTerms returns the n most probable terms of topic, highest first.
func (m *Model) TopTerms(topic, n int) []TermWeight {
	if topic < 0 || topic >= m.NumTopics || n <= 0 {
		return nil
	}

	row := m.topics.RawRowView(topic)
	terms := make([]TermWeight, len(row))
	for id, p := range row {
		terms[id] = TermWeight{ID: id, Weight: p}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Weight > terms[j].Weight
	})

	if n > len(terms) {
		n = len(terms)
	}
	return terms[:n]
}

// TopicDistribution scores bow against the model. Topics whose probability is
// below minProbability are left out; 0 returns every topic. The result is
// ordered by topic id and the full distribution sums to 1.
func (m *Model) TopicDistribution(bow vocab.Bow, minProbability float64) []TopicProb {
	gamma := m.inferGamma(bow)
	total := floats.Sum(gamma)

	out := make([]TopicProb, 0, m.NumTopics)
	for k, g := range gamma {
		p := g / total
		if p >= minProbability {
			out = append(out, TopicProb{Topic: k, Prob: p})
		}
	}
	return out
}

func normaliseRows(d *mat.Dense) {
	r, _ := d.Dims()
	for i := 0; i < r; i++ {
		row := d.RawRowView(i)
		for j, v := range row {
			if v < 0 || math.IsNaN(v) {
				row[j] = 0
			}
		}
		if s := floats.Sum(row); s > 0 {
			floats.Scale(1/s, row)
		}
	}
}
