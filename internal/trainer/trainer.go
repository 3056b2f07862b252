// Package trainer runs the training pipeline: fetch a corpus, build the
// vocabulary, fit the topic model and save both artifacts.
package trainer

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"topiclab/internal/config"
	"topiclab/internal/corpus"
	"topiclab/internal/domain"
	"topiclab/internal/logging"
	"topiclab/internal/report"
	"topiclab/internal/storage"
	"topiclab/internal/textprep"
	"topiclab/internal/topicmodel"
	"topiclab/internal/vocab"
)

type Trainer struct {
	source corpus.Source
	store  storage.ArtifactRepository
	cfg    config.TrainingConfig
	logger *zap.Logger
	out    io.Writer
}

type Summary struct {
	Documents int
	VocabSize int
	Topics    []domain.TopicWords
	Elapsed   time.Duration
}

func New(src corpus.Source, store storage.ArtifactRepository, cfg config.TrainingConfig, logger *zap.Logger, out io.Writer) *Trainer {
	if out == nil {
		out = io.Discard
	}
	return &Trainer{
		source: src,
		store:  store,
		cfg:    cfg,
		logger: logging.OrNop(logger),
		out:    out,
	}
}

// Run trains a fresh model, replacing any saved one, and prints the discovered
// topics.
func (t *Trainer) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	t.logger.Info("fetching corpus")
	docs, err := t.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}
	t.logger.Info("corpus loaded", zap.Int("documents", len(docs)))

	tokenized := textprep.PreprocessAll(docs)

	v := vocab.Build(tokenized)
	before := v.Len()
	v.FilterExtremes(t.cfg.NoBelow, t.cfg.NoAbove, t.cfg.KeepN)
	t.logger.Info("dictionary built",
		zap.Int("tokens", before),
		zap.Int("kept", v.Len()),
		zap.Int("no_below", t.cfg.NoBelow),
		zap.Float64("no_above", t.cfg.NoAbove))

	bows := make([]vocab.Bow, len(tokenized))
	empty := 0
	for i, tokens := range tokenized {
		bows[i] = v.DocToBow(tokens)
		if len(bows[i]) == 0 {
			empty++
		}
	}
	if empty > 0 {
		t.logger.Debug("documents with no known tokens", zap.Int("count", empty))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.logger.Info("training model",
		zap.Int("topics", t.cfg.Topics),
		zap.Int("passes", t.cfg.Passes),
		zap.String("prior", t.cfg.Prior),
		zap.Uint64("seed", t.cfg.Seed))
	fitStart := time.Now()
	m, err := topicmodel.Fit(bows, v.Len(), topicmodel.Options{
		Topics:    t.cfg.Topics,
		Passes:    t.cfg.Passes,
		Seed:      t.cfg.Seed,
		Prior:     topicmodel.Prior(t.cfg.Prior),
		Processes: t.cfg.Processes,
	})
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	t.logger.Info("training complete", zap.Duration("took", time.Since(fitStart)))

	if err := t.store.Save(m, v); err != nil {
		return nil, fmt.Errorf("save artifacts: %w", err)
	}

	topics := m.Summaries(v, nil, t.cfg.TopWords)
	report.DiscoveredTopics(t.out, topics, t.cfg.TopWords)

	s := &Summary{
		Documents: len(docs),
		VocabSize: v.Len(),
		Topics:    topics,
		Elapsed:   time.Since(start),
	}
	t.logger.Info("done", zap.Duration("elapsed", s.Elapsed))
	return s, nil
}
