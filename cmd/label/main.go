package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"topiclab/internal/cli"
	"topiclab/internal/labeler"
	"topiclab/internal/storage"
)

var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "label",
	Short: "Name the topics of the trained model interactively",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func main() {
	opts.Register(rootCmd)
	cli.Execute(rootCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := opts.Load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	l := labeler.New(storage.NewDir(cfg.Models), cfg.Models.LabelsPath(), cfg.Labeling, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if _, err := l.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nDone. Run 'classify' to classify new documents.")
	return nil
}
