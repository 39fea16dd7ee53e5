// Package cli is the thin presentation layer driving the catalog engine,
// the favorites manager and the image resolver from a terminal REPL.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/client/blob"
	"github.com/dmitrijs2005/pokedex/internal/client/catalog"
	"github.com/dmitrijs2005/pokedex/internal/client/config"
	"github.com/dmitrijs2005/pokedex/internal/client/favorites"
	"github.com/dmitrijs2005/pokedex/internal/client/images"
	"github.com/dmitrijs2005/pokedex/internal/client/remote"
	"github.com/dmitrijs2005/pokedex/internal/client/storage"
	"github.com/dmitrijs2005/pokedex/internal/filex"
	"github.com/dmitrijs2005/pokedex/internal/logging"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	engine    *catalog.Engine
	favorites *favorites.Manager
	resolver  *images.Resolver
	scanner   *bufio.Scanner
	page      int
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	kv := storage.NewSQLiteKV(db)

	imageDir, err := filex.EnsureSubDir(c.DataDir, "images")
	if err != nil {
		return nil, err
	}

	resolver := images.NewResolver(blob.NewDirStore(imageDir), imageDir, logger)
	source := remote.NewCatalog(c.ServerEndpointAddr)
	engine := catalog.NewEngine(kv, source, resolver, logger)

	favs := favorites.NewManager(kv, logger)
	if err := favs.Load(ctx); err != nil {
		// malformed favorites degrade to an empty set
		logger.Warn(ctx, "failed to load favorites", "error", err)
	}

	return &App{
		config:    c,
		logger:    logger,
		engine:    engine,
		favorites: favs,
		resolver:  resolver,
		// one scanner over stdin, shared by the REPL and the interactive
		// prompts so neither buffers lines away from the other
		scanner: bufio.NewScanner(os.Stdin),
		page:    0,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.scanner)
}
