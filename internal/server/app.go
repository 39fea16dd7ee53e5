// Package server initializes and runs pokedexd: it opens the database,
// runs migrations, optionally imports the seed catalog, and serves the
// HTTP API until interrupted.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/server/config"
	"github.com/dmitrijs2005/pokedex/internal/server/httpapi"
	"github.com/dmitrijs2005/pokedex/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pokedex/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// readPassword is a seam so the registration prompt can be tested.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(syscall.Stdin))
}

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	catalogService *services.CatalogService
	userService    *services.UserService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	cs := services.NewCatalogService(db, m, c)
	us := services.NewUserService(db, m, c)

	return &App{config: c, logger: logger, db: db, catalogService: cs, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// registerAdmin prompts for a password and creates the admin account
// named by the -register flag.
func (app *App) registerAdmin(ctx context.Context) error {
	fmt.Printf("Password for %s: ", app.config.RegisterLogin)
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	user, err := app.userService.Register(ctx, app.config.RegisterLogin, string(password))
	if err != nil {
		return err
	}

	app.logger.Info(ctx, "admin account created", "login", user.Login)
	return nil
}

func (app *App) importSeedIfConfigured(ctx context.Context) {
	if app.config.SeedFile == "" {
		return
	}

	n, err := app.catalogService.ImportSeed(ctx, app.config.SeedFile)
	if err != nil {
		app.logger.Error(ctx, "seed import failed", "file", app.config.SeedFile, "error", err)
		return
	}
	if n > 0 {
		app.logger.Info(ctx, "seed imported", "file", app.config.SeedFile, "records", n)
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(httpapi.Deps{
		Catalog:   app.catalogService,
		Users:     app.userService,
		SecretKey: []byte(app.config.SecretKey),
		Logger:    app.logger,
	})

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	if app.config.RegisterLogin != "" {
		if err := app.registerAdmin(ctx); err != nil {
			app.logger.Error(ctx, "registration failed", "error", err)
		}
		return
	}

	app.logger.Info(ctx, "Starting app...")

	app.importSeedIfConfigured(ctx)
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
