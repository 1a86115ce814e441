package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/infra/memory"
	"trivia-game-service/internal/infra/postgres"
	redisinfra "trivia-game-service/internal/infra/redis"
	"trivia-game-service/internal/metrics"
	transport "trivia-game-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openBackends(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer b.Close()
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var loader memory.QuestionLoader = memory.NewQuestionBank(memory.SampleQuestions())
	if b.pool != nil {
		loader = postgres.NewQuestionLoader(b.pool)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionSource
	if b.redis != nil {
		questions = redisinfra.NewQuestionRepository(b.redis, loader, questionTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, questionTTL)
	}

	var sessions app.SessionRepository
	if b.redis != nil {
		sessions = redisinfra.NewSessionStore(b.redis, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	collector := metrics.NewCollector()
	service := app.NewGameService(sessions, questions, b.highScores(),
		app.WithObserver(collector),
		app.WithEngineOptions(app.WithInitialLives(cfg.Game.Lives)),
	)

	logger := slog.Default()
	wsHandler := transport.NewWSHandler(service,
		transport.WithLogger(logger),
		transport.WithTickInterval(config.TTLDuration(cfg.Game.Tick, time.Second)),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.Handle("/highscores", transport.NewHighScoreHandler(service))
	mux.Handle("/metrics", collector.Handler())

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting trivia game service", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
