package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"triagem/internal/bootstrap/config"
	"triagem/internal/bootstrap/database"
	"triagem/internal/bootstrap/logging"
	"triagem/internal/domain/triage"
	"triagem/internal/errs"
	"triagem/internal/infrastructure/persistence/sqlite/model"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
}

func New(ctx context.Context, configFile string) (*App, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "loading application config", slog.String("config_file", configFile))

	cfg, err := config.Load(logCtx, configFile)
	if err != nil {
		return nil, errs.Wrap(err, "load config")
	}

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, errs.Wrap(err, "open database")
	}

	logging.Info(logCtx, "application bootstrap completed", slog.String("database_driver", cfg.Database.Driver))

	return &App{
		Config: cfg,
		DB:     db,
	}, nil
}

// InitSchema migrates the durable structures and, only when the store has
// never held a category, seeds the configured example category. Safe to run
// on every process start.
func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(
		&model.Category{},
		&model.Defect{},
		&model.TriageEvent{},
		&model.CacheKV{},
	); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	if err := a.seedExampleCategory(ctx); err != nil {
		return errs.Wrap(err, "seed example category")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}

func (a *App) seedExampleCategory(ctx context.Context) error {
	var count int64
	if err := a.DB.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return errs.Wrap(err, "count categories")
	}
	if count > 0 {
		return nil
	}

	seed := a.Config.Triage.Seed
	if strings.TrimSpace(seed.Name) == "" {
		return nil
	}

	err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category := model.Category{
			Name: strings.TrimSpace(seed.Name),
			Icon: triage.NormalizeIcon(seed.Icon),
		}
		if err := tx.Create(&category).Error; err != nil {
			return errs.Wrap(err, "insert seed category")
		}

		for _, label := range seed.Defects {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			defect := model.Defect{
				CategoryID: category.CategoryID,
				Label:      label,
			}
			if err := tx.Create(&defect).Error; err != nil {
				return errs.Wrap(err, "insert seed defect")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "bootstrap.app")),
		"seeded example category",
		slog.String("name", seed.Name),
	)
	return nil
}

func (a *App) Close(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	sqlDB, err := a.DB.DB()
	if err != nil {
		return errs.Wrap(err, "get sql db")
	}

	if err := sqlDB.Close(); err != nil {
		return errs.Wrap(err, "close sql db")
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "bootstrap.app")), "database connection closed")
	return nil
}
