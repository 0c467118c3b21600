// Package cli wires configuration, storage and use cases for the command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/cli/styles"
	"github.com/bnema/instapreview/internal/domain/build"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
	"github.com/bnema/instapreview/internal/domain/repository"
	"github.com/bnema/instapreview/internal/infrastructure/config"
	"github.com/bnema/instapreview/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/instapreview/internal/logging"
	"github.com/bnema/instapreview/internal/ui/instant"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	db        *sql.DB
	History   repository.HistoryRepository

	// Top is sealed by Seed.
	Top *preview.TopDestinations

	SeedTopUC     *usecase.SeedTopDestinationsUseCase
	RecordVisitUC *usecase.RecordVisitUseCase

	ctx context.Context
}

// NewApp loads the configuration, opens the history database and builds the
// use cases.
func NewApp() (*App, error) {
	mgr, cfg := loadConfig()

	// The logger passes everything; the global level filters, so a reload can
	// raise or lower verbosity.
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	logger := newLogger(cfg, nil)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug().Str("db_path", cfg.Database.Path).Msg("database connected")

	historyRepo := sqlite.NewHistoryRepository(db)
	top := preview.NewTopDestinations()

	return &App{
		Config:        cfg,
		ConfigMgr:     mgr,
		Theme:         styles.NewTheme(),
		db:            db,
		History:       historyRepo,
		Top:           top,
		SeedTopUC:     usecase.NewSeedTopDestinationsUseCase(historyRepo, top, cfg.Preview.TopDestinationsLimit),
		RecordVisitUC: usecase.NewRecordVisitUseCase(historyRepo),
		ctx:           ctx,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return sqlite.Close(a.db)
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// RedirectLogs sends further log output to w, keeping level and format.
func (a *App) RedirectLogs(w io.Writer) {
	a.ctx = logging.WithContext(a.ctx, newLogger(a.Config, w))
}

// PreviewConfig converts the preview settings for the per-window controller.
func (a *App) PreviewConfig() instant.Config {
	return PreviewConfig(a.Config)
}

// PreviewConfig converts cfg's preview settings for the per-window controller.
func PreviewConfig(cfg *config.Config) instant.Config {
	return instant.Config{
		Enabled:         cfg.Preview.Enabled,
		PollInterval:    cfg.Preview.PollInterval(),
		DebounceDelay:   cfg.Preview.DebounceDelay(),
		EligibleSchemes: cfg.Preview.EligibleSchemes,
		MaxRows:         cfg.Preview.MaxRows,
	}
}

// Seed seals the top-destinations cache and loads the suggestion corpus
// concurrently. A failed ranking query leaves the cache empty, which only
// makes previews more conservative, so it is logged rather than returned.
func (a *App) Seed(ctx context.Context, corpusSize int) ([]*entity.RankedDestination, error) {
	var corpus []*entity.RankedDestination

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.SeedTopUC.Execute(gctx); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("top destinations unavailable")
		}
		return nil
	})
	g.Go(func() error {
		ranked, err := a.History.GetTopByFrecency(gctx, corpusSize)
		if err != nil {
			return fmt.Errorf("load suggestion corpus: %w", err)
		}
		corpus = ranked
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return corpus, nil
}

// WatchConfig reloads the config file on change. The log level applies at
// once; preview settings apply to windows attached afterwards.
func (a *App) WatchConfig() error {
	if a.ConfigMgr == nil {
		return nil
	}
	log := a.Logger()
	a.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
		zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
		log.Info().
			Str("level", cfg.Logging.Level).
			Int("debounce_ms", cfg.Preview.DebounceMs).
			Msg("configuration reloaded")
	})
	return a.ConfigMgr.Watch()
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	return logging.New(logging.Config{
		Level:      zerolog.TraceLevel,
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     w,
	})
}

func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, withDatabasePath(config.DefaultConfig())
	}
	if err := mgr.Load(); err != nil {
		logger := logging.NewFromEnv()
		logger.Warn().Err(err).Msg("using default configuration")
		return mgr, withDatabasePath(config.DefaultConfig())
	}
	return mgr, mgr.Get()
}

func withDatabasePath(cfg *config.Config) *config.Config {
	if cfg.Database.Path == "" {
		if p, err := config.GetDatabaseFile(); err == nil {
			cfg.Database.Path = p
		}
	}
	return cfg
}
