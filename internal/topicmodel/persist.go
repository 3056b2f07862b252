package topicmodel

import (
	"compress/gzip"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/mat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type modelFile struct {
	NumTopics int         `json:"num_topics"`
	VocabSize int         `json:"vocab_size"`
	Alpha     []float64   `json:"alpha"`
	Eta       float64     `json:"eta"`
	Topics    [][]float64 `json:"topics"`
}

// Save writes the model as gzipped JSON, replacing path.
func (m *Model) Save(path string) error {
	mf := modelFile{
		NumTopics: m.NumTopics,
		VocabSize: m.VocabSize(),
		Alpha:     m.Alpha,
		Eta:       m.Eta,
		Topics:    make([][]float64, m.NumTopics),
	}
	for k := range mf.Topics {
		mf.Topics[k] = m.topics.RawRowView(k)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(mf); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Load reads a model written by Save.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	defer zr.Close()

	var mf modelFile
	if err := json.NewDecoder(zr).Decode(&mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	if mf.NumTopics < 1 || mf.VocabSize < 1 || len(mf.Topics) != mf.NumTopics {
		return nil, fmt.Errorf("%w: %d topics over %d terms", ErrCorruptModel, len(mf.Topics), mf.VocabSize)
	}

	data := make([]float64, 0, mf.NumTopics*mf.VocabSize)
	for k, row := range mf.Topics {
		if len(row) != mf.VocabSize {
			return nil, fmt.Errorf("%w: topic %d has %d terms, want %d", ErrCorruptModel, k, len(row), mf.VocabSize)
		}
		data = append(data, row...)
	}

	return New(mat.NewDense(mf.NumTopics, mf.VocabSize, data), mf.Alpha, mf.Eta)
}
