package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruitflow/internal/api"
	"recruitflow/internal/config"
	"recruitflow/internal/gemini"
	"recruitflow/internal/pipeline"
	"recruitflow/internal/postgresdb"
	"recruitflow/internal/progress"
	"recruitflow/internal/s3"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	conf := config.Load()
	ctx := context.Background()

	postgresDB, err := postgresdb.New(ctx, conf.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize postgres: %v", err)
	}
	defer postgresDB.Close()

	if err := postgresDB.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	s3Conf := s3.S3Config{
		EndpointURL: conf.S3EndpointURL,
		Region:      conf.S3Region,
		AccessKey:   conf.S3AccessKey,
		SecretKey:   conf.S3SecretKey,
		Bucket:      conf.S3Bucket,
	}

	if s3Conf.Bucket == "" {
		log.Fatal("S3_BUCKET_NAME is not set")
	}

	s3Store, err := s3.NewFileStore(ctx, s3Conf)
	if err != nil {
		log.Fatalf("Could not create S3 filestore: %v", err)
	}

	log.Println("S3 FileStore initialized")

	var tracker progress.Tracker
	if conf.ValkeyAddress != "" {
		valkeyTracker, err := progress.NewValkeyTracker(ctx, conf.ValkeyAddress, conf.ValkeyPassword)
		if err != nil {
			log.Fatalf("Failed to initialize valkey progress tracker: %v", err)
		}
		defer valkeyTracker.Close()
		tracker = valkeyTracker
	} else {
		tracker = progress.NewMemoryTracker()
	}

	analyzer, err := gemini.New(ctx, conf.GeminiAPIKey, conf.GeminiModel, s3Store)
	if err != nil {
		log.Fatalf("Failed to initialize gemini client: %v", err)
	}

	orchestrator := pipeline.New(analyzer, postgresDB, tracker)
	orchestrator.ItemDelay = conf.ItemDelay
	orchestrator.BatchDelay = conf.BatchDelay

	apiHandler := api.NewAPIHandler(orchestrator, tracker, postgresDB, postgresDB, s3Store)
	router := api.NewRouter(apiHandler)

	server := &http.Server{
		Addr:    conf.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("Listening on %s", conf.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
