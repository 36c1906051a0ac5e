package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mazes/internal/config"
	"github.com/vancomm/mazes/internal/database"
	"github.com/vancomm/mazes/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *mux.Router
	db         *pgxpool.Pool
	limits     *config.Limits
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     mux.NewRouter(),
		migrations: migrations,
	}
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

func (a *App) Start(ctx context.Context) error {
	limits, err := config.NewLimits()
	if err != nil {
		return err
	}
	a.limits = limits

	db, migrator, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.db = db

	if version, dirty, err := migrator.Version(); err == nil {
		a.logger.Info(
			"database ready",
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
	}

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Info("server listening", slog.String("addr", addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
