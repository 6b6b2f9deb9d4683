package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"triagem/internal/bootstrap/config"
	"triagem/internal/bootstrap/database"
	"triagem/internal/bootstrap/logging"
	cacheinfra "triagem/internal/infrastructure/cache"
	exportinfra "triagem/internal/infrastructure/export"
	sqliterepo "triagem/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "triagem/internal/infrastructure/persistence/sqlite/uow"
	"triagem/internal/ports"
	"triagem/internal/usecase/triage"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewCategoryRepository,
			fx.As(new(ports.CategoryRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewVocabularyRepository,
			fx.As(new(ports.VocabularyRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewLedgerRepository,
			fx.As(new(ports.LedgerRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(
		fx.Annotate(
			exportinfra.NewXLSXWriter,
			fx.As(new(ports.ReportWriter)),
		),
	),
	fx.Provide(triage.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}
