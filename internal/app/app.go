package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	bookhandler "libraryapi/internal/handlers/book"
	carthandler "libraryapi/internal/handlers/cart"
	reviewhandler "libraryapi/internal/handlers/review"
	userhandler "libraryapi/internal/handlers/user"
	"libraryapi/internal/middleware"
	"libraryapi/internal/routes"
	catalogservice "libraryapi/internal/service/catalog"
	cartservice "libraryapi/internal/service/cart"
	reviewservice "libraryapi/internal/service/review"
	userservice "libraryapi/internal/service/user"
)

type Storage interface {
	catalogservice.BookStorage
	cartservice.CartStorage
	userservice.UserStorage
	reviewservice.ReviewStorage
}

type App struct {
	log     *slog.Logger
	port    int
	storage Storage
}

func New(log *slog.Logger, port int, storage Storage) *App {
	return &App{
		log:     log,
		port:    port,
		storage: storage,
	}
}

func (a *App) MustRun(ctx context.Context) {
	if err := a.Run(ctx); err != nil {
		panic(err)
	}
}

func (a *App) Run(ctx context.Context) error {
	const op = "app.Run"

	catalogService := catalogservice.New(a.log, a.storage)
	cartService := cartservice.New(a.log, a.storage)
	userService := userservice.New(a.log, a.storage)
	reviewService := reviewservice.New(a.log, a.storage)

	router := routes.New(
		bookhandler.New(a.log, catalogService),
		carthandler.New(a.log, cartService),
		userhandler.New(a.log, userService),
		reviewhandler.New(a.log, reviewService),
		middleware.NewRoleChecker(a.log, a.storage),
	)

	mux := http.NewServeMux()
	router.Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: mux,
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.log.Info("Server started", slog.Int("port", a.port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
