package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultFile = "config.yaml"
	EnvPrefix   = "TOPICLAB_"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Models   ModelsConfig   `koanf:"models"`
	Corpus   CorpusConfig   `koanf:"corpus"`
	Training TrainingConfig `koanf:"training"`
	Labeling LabelingConfig `koanf:"labeling"`
	Classify ClassifyConfig `koanf:"classify"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

type ModelsConfig struct {
	Dir        string `koanf:"dir"`
	ModelFile  string `koanf:"model_file"`
	VocabFile  string `koanf:"vocab_file"`
	LabelsFile string `koanf:"labels_file"`
}

// LabelsPath is the label file location; a relative LabelsFile lives inside Dir.
func (m ModelsConfig) LabelsPath() string {
	if filepath.IsAbs(m.LabelsFile) {
		return m.LabelsFile
	}
	return filepath.Join(m.Dir, m.LabelsFile)
}

type CorpusConfig struct {
	Source      string   `koanf:"source"`
	URL         string   `koanf:"url"`
	CacheDir    string   `koanf:"cache_dir"`
	Subset      string   `koanf:"subset"`
	Remove      []string `koanf:"remove"`
	Limit       int      `koanf:"limit"`
	ShuffleSeed uint64   `koanf:"shuffle_seed"`
	Feeds       []string `koanf:"feeds"`
	Files       string   `koanf:"files"`
}

type TrainingConfig struct {
	Topics    int     `koanf:"topics"`
	Passes    int     `koanf:"passes"`
	Seed      uint64  `koanf:"seed"`
	Prior     string  `koanf:"prior"`
	NoBelow   int     `koanf:"no_below"`
	NoAbove   float64 `koanf:"no_above"`
	KeepN     int     `koanf:"keep_n"`
	Processes int     `koanf:"processes"`
	TopWords  int     `koanf:"top_words"`
}

type LabelingConfig struct {
	ListWords   int `koanf:"list_words"`
	PromptWords int `koanf:"prompt_words"`
}

type ClassifyConfig struct {
	TopTopics     int `koanf:"top_topics"`
	TopWords      int `koanf:"top_words"`
	PreviewLength int `koanf:"preview_length"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Dir:        "models",
			ModelFile:  "lda_model.json.gz",
			VocabFile:  "dictionary.json.gz",
			LabelsFile: "topic_labels.json",
		},
		Corpus: CorpusConfig{
			Source:      "newsgroups",
			URL:         "https://ndownloader.figshare.com/files/5975967",
			CacheDir:    defaultCacheDir(),
			Subset:      "train",
			Remove:      []string{"headers", "footers", "quotes"},
			Limit:       1000,
			ShuffleSeed: 42,
		},
		Training: TrainingConfig{
			Topics:    10,
			Passes:    15,
			Seed:      42,
			Prior:     "auto",
			NoBelow:   5,
			NoAbove:   0.5,
			KeepN:     100000,
			Processes: 1,
			TopWords:  15,
		},
		Labeling: LabelingConfig{
			ListWords:   20,
			PromptWords: 5,
		},
		Classify: ClassifyConfig{
			TopTopics:     3,
			TopWords:      5,
			PreviewLength: 120,
		},
		Server: ServerConfig{Port: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path (if present) and then TOPICLAB_* environment variables over
// the defaults. An empty path means DefaultFile.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TOPICLAB_TRAINING__NO_BELOW -> training.no_below
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	switch {
	case c.Models.Dir == "":
		return fmt.Errorf("%w: models.dir is empty", ErrInvalid)
	case c.Training.Topics < 1:
		return fmt.Errorf("%w: training.topics must be positive", ErrInvalid)
	case c.Training.Passes < 1:
		return fmt.Errorf("%w: training.passes must be positive", ErrInvalid)
	case c.Training.NoBelow < 0:
		return fmt.Errorf("%w: training.no_below must not be negative", ErrInvalid)
	case c.Training.NoAbove <= 0 || c.Training.NoAbove > 1:
		return fmt.Errorf("%w: training.no_above must be in (0, 1]", ErrInvalid)
	case c.Training.KeepN < 1:
		return fmt.Errorf("%w: training.keep_n must be positive", ErrInvalid)
	case c.Training.Processes < 1:
		return fmt.Errorf("%w: training.processes must be positive", ErrInvalid)
	case c.Training.Prior != "auto" && c.Training.Prior != "symmetric":
		return fmt.Errorf("%w: training.prior must be auto or symmetric", ErrInvalid)
	case c.Corpus.Limit < 1:
		return fmt.Errorf("%w: corpus.limit must be positive", ErrInvalid)
	case c.Classify.TopTopics < 1 || c.Classify.TopWords < 1:
		return fmt.Errorf("%w: classify counts must be positive", ErrInvalid)
	case c.Labeling.ListWords < 1 || c.Labeling.PromptWords < 1:
		return fmt.Errorf("%w: labeling counts must be positive", ErrInvalid)
	}
	return nil
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "topiclab")
	}
	return filepath.Join(os.TempDir(), "topiclab")
}
