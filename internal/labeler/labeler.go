// Package labeler lets a person name the topics of a trained model.
package labeler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"topiclab/internal/config"
	"topiclab/internal/domain"
	"topiclab/internal/logging"
	"topiclab/internal/report"
	"topiclab/internal/storage"
)

type Labeler struct {
	store      storage.ArtifactRepository
	labelsPath string
	cfg        config.LabelingConfig
	in         io.Reader
	out        io.Writer
	logger     *zap.Logger
}

func New(store storage.ArtifactRepository, labelsPath string, cfg config.LabelingConfig, in io.Reader, out io.Writer, logger *zap.Logger) *Labeler {
	return &Labeler{
		store:      store,
		labelsPath: labelsPath,
		cfg:        cfg,
		in:         in,
		out:        out,
		logger:     logging.OrNop(logger),
	}
}

// Run asks for a name per topic and saves the result, replacing any earlier
// labels. Nothing is written unless every topic got an answer; a blank answer
// or end of input keeps the default name.
func (l *Labeler) Run(ctx context.Context) (domain.LabelMap, error) {
	m, v, err := l.store.Load()
	if err != nil {
		return nil, err
	}
	l.logger.Info("model loaded", zap.Int("topics", m.NumTopics), zap.Int("vocabulary", v.Len()))
	fmt.Fprintf(l.out, "Loaded model with %d topics.\n\n", m.NumTopics)

	report.WordProbabilities(l.out, m.Summaries(v, nil, l.cfg.ListWords), l.cfg.ListWords)

	fmt.Fprintln(l.out)
	report.Banner(l.out, "TOPIC LABELING\nEnter a meaningful name for each topic (press Enter to skip).")
	fmt.Fprintln(l.out)

	prompts := m.Summaries(v, nil, l.cfg.PromptWords)
	labels := make(domain.LabelMap, m.NumTopics)
	r := bufio.NewReader(l.in)
	for _, t := range prompts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		def := domain.DefaultLabel(t.ID)
		fmt.Fprintf(l.out, "Topic %2d [%s]\n  Name (default: '%s'): ", t.ID, strings.Join(t.WordList(), ", "), def)

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read label for topic %d: %w", t.ID, err)
		}
		name := strings.TrimSpace(line)
		if name == "" {
			name = def
		}
		labels[strconv.Itoa(t.ID)] = name
		fmt.Fprintln(l.out)
	}

	if err := storage.SaveLabels(labels, l.labelsPath); err != nil {
		return nil, fmt.Errorf("save labels: %w", err)
	}
	l.logger.Info("labels saved", zap.String("path", l.labelsPath))
	fmt.Fprintf(l.out, "Topic labels saved to '%s'\n\n", l.labelsPath)

	report.LabelTable(l.out, "FINAL TOPIC SUMMARY", m.Summaries(v, labels, l.cfg.PromptWords))
	return labels, nil
}
