package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sandevgo/aitalk/configs"
	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/index"
	"github.com/sandevgo/aitalk/internal/providers/embedding"
	"github.com/sandevgo/aitalk/internal/providers/llm"
	"github.com/sandevgo/aitalk/internal/service/demo"
	"github.com/sandevgo/aitalk/internal/storage/sqlite"
	"github.com/sandevgo/aitalk/pkg/log"
)

// App is the wiring shared by the demo commands. Providers are built on first
// use so steps that make no calls need no credentials.
type App struct {
	cfg     *config.AppConfig
	embCfg  *config.EmbeddingConfig
	demos   *configs.Demos
	printer *demo.Printer

	completer func() (core.Completer, error)
	embedder  func() (core.Embedder, error)
}

func NewApp(ctx context.Context, out io.Writer) (*App, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	cfg, err := config.NewAppConfig()
	if err != nil {
		return nil, err
	}
	embCfg, err := config.NewEmbeddingConfig()
	if err != nil {
		return nil, err
	}
	demos, err := configs.LoadDemos(cfg.DemoPath)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		embCfg:  embCfg,
		demos:   demos,
		printer: demo.NewPrinter(out, cfg.RenderMarkdown),
		completer: sync.OnceValues(func() (core.Completer, error) {
			return llm.NewProvider(ctx, cfg)
		}),
		embedder: sync.OnceValues(func() (core.Embedder, error) {
			return embedding.NewEmbedder(ctx, embCfg)
		}),
	}, nil
}

func (a *App) Completer(context.Context) (core.Completer, error) {
	return a.completer()
}

func (a *App) Embedder(context.Context) (core.Embedder, error) {
	return a.embedder()
}

func (a *App) StatelessSuite() *demo.Suite {
	return demo.NewStatelessSuite(a.demos.Stateless, a.Completer, a.printer)
}

func (a *App) MemorySuite() *demo.Suite {
	deps := demo.MemoryDeps{
		Embedder:  a.Embedder,
		Completer: a.Completer,
		Workers:   a.embCfg.Workers,
	}
	if a.embCfg.IndexBackend == config.IndexBackendSQLite {
		deps.NewStore = newSQLiteStore
	}
	return demo.NewMemorySuite(a.demos.Memory, deps, a.printer)
}

// newSQLiteStore opens a private in-memory database per index.
func newSQLiteStore(ctx context.Context) (index.Store, func() error, error) {
	db, err := sqlite.NewDB(ctx, sqlite.MemoryDSN)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewItemStore(db), db.Close, nil
}

// initEnv loads ./.env, then the runtime .env. Variables already set win.
func initEnv(ctx context.Context, runtimePath string) error {
	for _, envFile := range []string{".env", filepath.Join(runtimePath, ".env")} {
		if err := loadEnvFile(ctx, envFile); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
