package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"example.com/mynotes/internal/auth"
	"example.com/mynotes/internal/config"
	"example.com/mynotes/internal/db"
	"example.com/mynotes/internal/notes"
	"example.com/mynotes/internal/respond"
)

func main() {
	cfg := config.Load()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.MaxConns, cfg.MinConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("parse REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	sessions := auth.NewSessions(rdb, cfg.SessionTTL)
	users := auth.NewUserService(auth.NewRepository(pool))
	notesSvc := notes.NewService(notes.NewRepository(pool))

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.Data(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Mount("/auth", auth.NewHandlers(users, sessions).Routes())
	r.Route("/notes", func(r chi.Router) {
		r.Use(auth.RequireSession(sessions))
		r.Mount("/", notes.NewHandlers(notesSvc).Routes())
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("mynotes API listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
