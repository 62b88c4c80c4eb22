package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MKovacik/Simulator2/internal/config"
	"github.com/MKovacik/Simulator2/internal/handler"
	"github.com/MKovacik/Simulator2/internal/model/persona"
	"github.com/MKovacik/Simulator2/internal/service/ai"
	"github.com/MKovacik/Simulator2/internal/service/session"
	"github.com/MKovacik/Simulator2/internal/service/simulator"
	"github.com/MKovacik/Simulator2/internal/service/tariff"
	"github.com/MKovacik/Simulator2/internal/service/transcript"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	sessionStore := session.NewService()

	transcripts, err := transcript.NewStore(cfg.Simulator.HistoryDir)
	if err != nil {
		log.Fatalf("failed to prepare transcript store: %v", err)
	}

	client := ai.NewClient(cfg.AI)
	log.Printf("model client targeting %s (model %s)", cfg.AI.BaseURL, cfg.AI.Model)

	controller := simulator.New(
		sessionStore,
		personaStore,
		tariff.NewSource(cfg.Simulator.TariffsFile),
		transcripts,
		client,
		simulator.Config{
			MaxTurns:    cfg.Simulator.MaxTurns,
			MaxRetries:  cfg.AI.MaxRetries,
			TaskTimeout: cfg.AI.TaskTimeout,
		},
		nil,
	)

	go runEvictionLoop(ctx, sessionStore, cfg.Simulator.SessionMaxAge)

	router := handler.NewRouter(personaStore, controller)
	startServer(ctx, cfg.Server, router)
}

// runEvictionLoop periodically drops idle sessions. It is the external caller
// the session store leaves out of scope; it never runs concurrently with an
// active turn for a session that is still being touched.
func runEvictionLoop(ctx context.Context, sessions *session.Service, maxAge time.Duration) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := sessions.EvictStale(maxAge); evicted > 0 {
				log.Printf("[session] evicted %d stale session(s)", evicted)
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("tariff simulator listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
