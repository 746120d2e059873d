package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	openaiadapter "medicine-reminder/internal/adapters/ai/openai"
	pg "medicine-reminder/internal/adapters/storage/postgres"
	"medicine-reminder/internal/config"
	"medicine-reminder/internal/platform/logger"
	"medicine-reminder/internal/ports/ai"
	"medicine-reminder/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
		log.Info("storage: postgres", nil)
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Error("data dir unavailable", map[string]any{"dir": cfg.DataDir, "err": err.Error()})
			os.Exit(1)
		}
		log.Info("storage: json files", map[string]any{"dir": cfg.DataDir})
	}

	var gen ai.TextGenerator
	if cfg.AIAPIKey != "" {
		gen = openaiadapter.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Info("coach: ai client ready", map[string]any{"model": cfg.AIModel})
	} else {
		log.Info("coach: ai not configured, plan generation disabled", nil)
	}

	r := router.New(router.Options{
		Logger:    log,
		DB:        db,
		DataDir:   cfg.DataDir,
		Generator: gen,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // el coach espera al modelo, puede tardar
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
