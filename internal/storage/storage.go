package storage

import (
	"errors"

	"topiclab/internal/topicmodel"
	"topiclab/internal/vocab"
)

var (
	ErrModelNotFound      = errors.New("model not found")
	ErrVocabularyNotFound = errors.New("dictionary not found")
	ErrArtifactMismatch   = errors.New("model and dictionary do not match")
	ErrMalformedLabels    = errors.New("malformed label file")
)

// ArtifactRepository persists the trained model together with the vocabulary
// it was trained over.
type ArtifactRepository interface {
	Save(m *topicmodel.Model, v *vocab.Vocabulary) error
	Load() (*topicmodel.Model, *vocab.Vocabulary, error)
}
