package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"triage-assistant/internal/assistant"
	"triage-assistant/internal/config"
	"triage-assistant/internal/httpapi"
	"triage-assistant/internal/llm"
	"triage-assistant/internal/patient"
	"triage-assistant/internal/platform/telegram"
	"triage-assistant/internal/report"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	// 1. Infrastructure
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		slog.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	m, err := migrate.New("file://migrations", cfg.DatabaseURL)
	if err != nil {
		slog.Error("migration init failed", "error", err)
		os.Exit(1)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		slog.Error("migration up failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// 2. Clients
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.RemoteTimeout)
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; replies will use local fallbacks only")
	}

	var notifier *report.Notifier
	if cfg.TelegramToken != "" && cfg.ClinicianChatID != 0 {
		notifier = report.NewNotifier(telegram.NewClient(cfg.TelegramToken), cfg.ClinicianChatID)
	} else {
		slog.Warn("clinician delivery disabled; TELEGRAM_BOT_TOKEN or CLINICIAN_CHAT_ID missing")
	}

	// 3. Services
	patientRepo := patient.NewRepository(db)
	reportRepo := report.NewRepository(db)
	generator := assistant.NewGenerator(llmClient, cfg.Generation)
	synthesizer := report.NewSynthesizer(llmClient, cfg.Generation)
	handler := httpapi.NewHandler(patientRepo, reportRepo, generator, synthesizer, notifier)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		httpapi.RegisterRoutes(r, handler)
	})

	addr := ":" + cfg.Port
	slog.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
