package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"topiclab/internal/config"
	"topiclab/internal/domain"
	"topiclab/internal/topicmodel"
	"topiclab/internal/vocab"
)

const (
	DirPerms  = 0755
	FilePerms = 0644
)

// Dir keeps the artifacts as fixed file names inside one directory.
type Dir struct {
	Path      string
	ModelFile string
	VocabFile string
}

func NewDir(cfg config.ModelsConfig) *Dir {
	return &Dir{
		Path:      cfg.Dir,
		ModelFile: cfg.ModelFile,
		VocabFile: cfg.VocabFile,
	}
}

func (d *Dir) ModelPath() string { return filepath.Join(d.Path, d.ModelFile) }
func (d *Dir) VocabPath() string { return filepath.Join(d.Path, d.VocabFile) }

// Save writes both artifacts, creating the directory and replacing any
// previous model without asking.
func (d *Dir) Save(m *topicmodel.Model, v *vocab.Vocabulary) error {
	if m.VocabSize() != v.Len() {
		return fmt.Errorf("%w: model over %d terms, dictionary of %d", ErrArtifactMismatch, m.VocabSize(), v.Len())
	}
	if err := os.MkdirAll(d.Path, DirPerms); err != nil {
		return err
	}
	if err := m.Save(d.ModelPath()); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := v.Save(d.VocabPath()); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}
	return nil
}

// Load reads both artifacts. A missing model is reported as ErrModelNotFound
// with a hint to train first.
func (d *Dir) Load() (*topicmodel.Model, *vocab.Vocabulary, error) {
	if _, err := os.Stat(d.ModelPath()); errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w at '%s': run train first", ErrModelNotFound, d.ModelPath())
	}
	if _, err := os.Stat(d.VocabPath()); errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w at '%s': run train first", ErrVocabularyNotFound, d.VocabPath())
	}

	m, err := topicmodel.Load(d.ModelPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	v, err := vocab.Load(d.VocabPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load dictionary: %w", err)
	}
	if m.VocabSize() != v.Len() {
		return nil, nil, fmt.Errorf("%w: model over %d terms, dictionary of %d", ErrArtifactMismatch, m.VocabSize(), v.Len())
	}

	return m, v, nil
}

// SaveLabels writes labels as 2-space indented UTF-8 JSON, creating parent
// directories. Non-ASCII text is written as is.
func SaveLabels(labels domain.LabelMap, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerms); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePerms)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(labels); err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	return f.Close()
}

// LoadLabels returns the labels at path, or an empty map when the file does not
// exist so callers fall back to default names.
func LoadLabels(path string) (domain.LabelMap, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.LabelMap{}, nil
	}
	if err != nil {
		return nil, err
	}

	labels := domain.LabelMap{}
	if err := json.Unmarshal(b, &labels); err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrMalformedLabels, path, err)
	}
	if labels == nil {
		labels = domain.LabelMap{}
	}
	return labels, nil
}
