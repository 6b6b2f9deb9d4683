package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"triagem/internal/bootstrap/logging"
	"triagem/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Triage   TriageConfig   `mapstructure:"triage"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// TriageConfig selects the deployment variant. MultiCategory=false hides
// category management and pins every operation to the default category.
type TriageConfig struct {
	MultiCategory bool       `mapstructure:"multi_category"`
	HistoryLimit  int        `mapstructure:"history_limit"`
	Seed          SeedConfig `mapstructure:"seed"`
}

// SeedConfig is the example category created the first time the store has
// no categories at all.
type SeedConfig struct {
	Name    string   `mapstructure:"name"`
	Icon    string   `mapstructure:"icon"`
	Defects []string `mapstructure:"defects"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TRIAGEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("multi_category", cfg.Triage.MultiCategory),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "triagem")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/triagem.sqlite")
	v.SetDefault("triage.multi_category", true)
	v.SetDefault("triage.history_limit", 50)
	v.SetDefault("triage.seed.name", "Celular Samsung")
	v.SetDefault("triage.seed.icon", "📱 Smartphone")
	v.SetDefault("triage.seed.defects", []string{"Tela Quebrada", "Bateria", "OK"})
}
