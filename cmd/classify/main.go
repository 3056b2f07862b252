package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"topiclab/internal/classifier"
	"topiclab/internal/cli"
	"topiclab/internal/domain"
	"topiclab/internal/report"
	"topiclab/internal/storage"
)

var (
	opts cli.Options
	text string
)

var rootCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify documents against the trained, labeled model",
	Long: `Classify prints the loaded topics and the top topics of each document.
Without --text it classifies a fixed set of sample documents.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func main() {
	opts.Register(rootCmd)
	rootCmd.Flags().StringVarP(&text, "text", "t", "", "classify this text instead of the samples")
	cli.Execute(rootCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := opts.Load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()
	labelsPath := cfg.Models.LabelsPath()

	c, err := classifier.Open(storage.NewDir(cfg.Models), labelsPath, cfg.Classify)
	if err != nil {
		return err
	}
	if c.Labeled() {
		fmt.Fprintf(out, "Topic labels loaded from '%s'\n", labelsPath)
	} else {
		logger.Debug("no labels", zap.String("path", labelsPath))
		fmt.Fprintln(out, "No label file found – using default topic names.")
	}
	fmt.Fprintf(out, "Model ready (%d topics).\n\n", c.NumTopics())

	report.LabelTable(out, "LOADED TOPICS SUMMARY", c.Topics())

	docs := classifier.SampleDocuments
	if text != "" {
		docs = []domain.Document{{Title: "Command line", Text: text}}
	}

	fmt.Fprint(out, "\n\n")
	report.Banner(out, "EXAMPLE CLASSIFICATIONS")
	for i, res := range c.ClassifyBatch(docs) {
		report.Classification(out, docs[i], res, cfg.Classify.TopTopics, cfg.Classify.PreviewLength)
	}

	fmt.Fprintln(out, "\nInference complete.")
	return nil
}
