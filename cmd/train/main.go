package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"topiclab/internal/cli"
	"topiclab/internal/corpus"
	"topiclab/internal/storage"
	"topiclab/internal/trainer"
)

var (
	opts   cli.Options
	source string
)

var rootCmd = &cobra.Command{
	Use:   "train",
	Short: "Train an LDA topic model and save it to the model directory",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func main() {
	opts.Register(rootCmd)
	rootCmd.Flags().StringVarP(&source, "source", "s", "", "corpus source: newsgroups, feeds or files (overrides config)")
	cli.Execute(rootCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := opts.Load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if source != "" {
		cfg.Corpus.Source = source
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := corpus.New(cfg.Corpus)
	if err != nil {
		return err
	}
	dir := storage.NewDir(cfg.Models)
	out := cmd.OutOrStdout()

	if _, err := trainer.New(src, dir, cfg.Training, logger, out).Run(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nModel saved to '%s'\n", dir.ModelPath())
	fmt.Fprintf(out, "Dictionary saved to '%s'\n", dir.VocabPath())
	fmt.Fprintln(out, "Done. Run 'label' to assign meaningful names to topics.")
	return nil
}
