// Command furrowd runs the plot annotation HTTP service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"furrow/internal/assignment"
	"furrow/internal/catalog"
	"furrow/internal/config"
	"furrow/internal/identity"
	"furrow/internal/logging"
	"furrow/internal/notify"
	"furrow/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, resolved, exists, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if !exists {
		logger.Warn("no config file found, using defaults", logging.String("path", resolved))
	}
	if len(cfg.Annotators) == 0 {
		logger.Warn("annotator roster is empty, all requests will be rejected")
	}

	store, err := assignment.Open(cfg)
	if err != nil {
		logger.Error("open assignment store", logging.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg,
		store,
		catalog.NewFS(cfg.Paths.DatasetDir),
		identity.FromConfig(cfg),
		notify.NewService(cfg),
		logger,
	)
	if err := srv.Start(ctx); err != nil {
		logger.Error("start server", logging.Error(err))
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("furrowd shutting down")
	srv.Stop()
}
