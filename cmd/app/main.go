package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"libraryapi/internal/app"
	"libraryapi/internal/database/psql"
	"libraryapi/pkg/config"
	"libraryapi/pkg/lib/logger"
	"libraryapi/pkg/lib/logger/sl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage := psql.New(log, cfg.ConnectionString(), cfg.MigrationsPath)

	application := app.New(
		log,
		cfg.HTTP.Port,
		storage,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
		<-done
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		log.Error("Application stopped with error", sl.Err(err))
	}

	log.Info("Closing database")
	storage.Close()
}
