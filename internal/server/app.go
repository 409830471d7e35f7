// Package server initializes and runs the board server: it wires the
// database, the note service, the token verifier and the websocket protocol
// together, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/auth"
	"github.com/dmitrijs2005/corkboard/internal/server/board"
	"github.com/dmitrijs2005/corkboard/internal/server/config"
	"github.com/dmitrijs2005/corkboard/internal/server/httpapi"
	"github.com/dmitrijs2005/corkboard/internal/server/notes"
	"github.com/dmitrijs2005/corkboard/internal/server/shared/db"
	"github.com/dmitrijs2005/corkboard/internal/server/ws"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	noteService := notes.NewService(rm.Notes())
	verifier := auth.NewJWTVerifier([]byte(c.SecretKey))

	hub := ws.NewHub()
	session := board.NewSession(hub, verifier, noteService, logger, c.DemoWait)
	relay := board.NewRelay(hub, verifier, noteService, logger, c.EchoNoteCreates)
	wsHandler := ws.NewHandler(hub, session, relay, logger, c.CORSAllowedOrigin, c.SendBufferSize)

	handler := httpapi.NewRouter(noteService, wsHandler, logger, c.CORSAllowedOrigin)

	return &App{config: c, logger: logger, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info(ctx, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	return nil
}
