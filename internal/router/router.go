package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	jf "medicine-reminder/internal/adapters/storage/jsonfile"
	mem "medicine-reminder/internal/adapters/storage/memory"
	pg "medicine-reminder/internal/adapters/storage/postgres"
	"medicine-reminder/internal/domain/coach"
	"medicine-reminder/internal/domain/medicines"
	"medicine-reminder/internal/domain/reminders"
	"medicine-reminder/internal/domain/users"
	"medicine-reminder/internal/platform/logger"
	"medicine-reminder/internal/ports/ai"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Logger *logger.Logger // puede ser nil (tests)

	// Selección de storage: DB > DataDir > in-memory.
	DB      *sql.DB
	DataDir string

	// Generator puede ser nil: el coach responde con el mensaje fijo
	// de no-disponible.
	Generator ai.TextGenerator
}

func New(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo users.Repository
		medsRepo  medicines.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	switch {
	case db != nil:
		usersRepo = pg.NewUsersRepo(db)
		medsRepo = pg.NewMedicinesRepo(db)
	case opts.DataDir != "":
		usersRepo = jf.NewUsersRepo(opts.DataDir)
		medsRepo = jf.NewMedicinesRepo(opts.DataDir)
	default:
		usersRepo = mem.NewUsersRepo()
		medsRepo = mem.NewMedicinesRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo)
	medsSvc := medicines.NewService(medsRepo)
	remindersSvc := reminders.NewService(usersSvc, medsSvc)
	coachSvc := coach.NewService(opts.Generator)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, medsSvc)
	medicines.RegisterRoutes(r, medsSvc, usersSvc)
	reminders.RegisterRoutes(r, remindersSvc)
	coach.RegisterRoutes(r, coachSvc)

	return r
}

func requestLogger(l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			l.Info("request", map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": ww.Status(),
				"ms":     time.Since(start).Milliseconds(),
			})
		})
	}
}
