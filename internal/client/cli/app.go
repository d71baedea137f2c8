package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/pasteflow/pasteflow/internal/client/config"
	"github.com/pasteflow/pasteflow/internal/client/gateway"
	"github.com/pasteflow/pasteflow/internal/client/identity"
	"github.com/pasteflow/pasteflow/internal/client/repositories/secrets"
	"github.com/pasteflow/pasteflow/internal/client/services"
	"github.com/pasteflow/pasteflow/internal/client/session"
	"github.com/pasteflow/pasteflow/internal/client/store"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// App wires the PasteFlow client together and drives the REPL.
type App struct {
	config   *config.Config
	sessions *session.Manager
	pastes   services.PasteService
	notify   gateway.Notifier
	log      logging.Logger

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := newLogger(cfg)

	db, err := store.InitDatabase(ctx, cfg.SecretsDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	var provider identity.Provider
	if cfg.AuthBaseURL != "" {
		provider = identity.NewHTTPProvider(cfg.AuthBaseURL, cfg.RequestTimeout)
	}

	sessions := session.NewManager(provider, log)
	notify := NewConsoleNotifier(os.Stdout)
	gw := gateway.New(cfg.APIBaseURL, sessions, notify, log, cfg.RequestTimeout)
	pastes := services.NewPasteService(gw, secrets.NewSQLiteRepository(db), log)

	return &App{
		config:   cfg,
		sessions: sessions,
		pastes:   pastes,
		notify:   notify,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	if cfg.LogFormat == "json" {
		return logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	}
	return logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)
}

// Run bootstraps the session and enters the REPL. The provider
// subscription and the local database are released on every exit path.
func (a *App) Run(ctx context.Context) {
	a.sessions.Bootstrap(ctx)
	defer a.sessions.Close()
	defer a.db.Close()

	a.Root(ctx)
}
