package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cvscore-api/internal/analyses"
	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/services/health"
	"cvscore-api/internal/shared/config"
	"cvscore-api/internal/shared/server"
	"cvscore-api/internal/shared/server/middleware"
	"cvscore-api/internal/shared/storage/db"
	"cvscore-api/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Engine          *cvscore.Engine
	AnalysesRepo    analyses.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

// Build wires configuration, storage and the scoring engine into a ready router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Engine:  engine,
		Limiter: middleware.NewRateLimiter(nil),
	}

	if cfg.RecordAnalyses {
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.DB = sqlDB
		if sqlDB != nil {
			app.AnalysesRepo = &analyses.PGRepo{DB: sqlDB}
		} else {
			app.AnalysesRepo = analyses.NewMemoryRepo()
		}
	}

	app.AnalysesService = analyses.NewService(engine, app.AnalysesRepo, cfg.CacheTTL)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService, cfg.MaxUploadBytes)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Health = health.NewService(pinger, engine.Catalog().Version)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
		Limiter:         app.Limiter,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"catalog_version": engine.Catalog().Version,
		"skill_match":     string(engine.Catalog().SkillMatch),
		"recording":       app.AnalysesRepo != nil,
		"database":        app.DB != nil,
	})
	return app, nil
}

// BuildEngine constructs the scoring engine from the default catalog with
// the configured skill matching mode.
func BuildEngine(cfg config.Config) (*cvscore.Engine, error) {
	catalog := cvscore.DefaultCatalog()
	if mode := strings.TrimSpace(cfg.SkillMatch); mode != "" {
		catalog.SkillMatch = cvscore.SkillMatch(mode)
	}
	engine, err := cvscore.New(catalog)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return engine, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_missing", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_connect_failed", map[string]any{"fallback": "memory", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
