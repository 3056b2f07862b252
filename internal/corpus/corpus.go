// Package corpus fetches the raw documents a topic model is trained on.
package corpus

import (
	"context"
	"errors"
	"fmt"

	"topiclab/internal/config"
	"topiclab/internal/domain"
)

var (
	ErrNoDocuments   = errors.New("corpus has no documents")
	ErrUnknownSource = errors.New("unknown corpus source")
	ErrUnknownSubset = errors.New("unknown newsgroups subset")
	ErrUnknownStrip  = errors.New("unknown newsgroups part to remove")
)

type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

// New builds the source named by cfg.Source.
func New(cfg config.CorpusConfig) (Source, error) {
	switch domain.Source(cfg.Source) {
	case domain.SourceNewsgroups:
		return NewNewsgroups(cfg)
	case domain.SourceFeeds:
		return NewFeeds(cfg.Feeds), nil
	case domain.SourceFiles:
		return NewFiles(cfg.Files), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}
