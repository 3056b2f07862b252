package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"topiclab/internal/api"
	"topiclab/internal/classifier"
	"topiclab/internal/cli"
	"topiclab/internal/storage"
)

var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve topic classification over HTTP",
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

	c, err := classifier.Open(storage.NewDir(cfg.Models), cfg.Models.LabelsPath(), cfg.Classify)
	if err != nil {
		return err
	}
	logger.Info("model loaded", zap.Int("topics", c.NumTopics()), zap.Bool("labeled", c.Labeled()))

	server := api.NewServer(c, logger)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := server.Start(cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errc:
		return err
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
