package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"medshop/m/internal/config"
	"medshop/m/internal/console"
	"medshop/m/internal/database"
	"medshop/m/internal/logger"
	"medshop/m/internal/migrations"
	"medshop/m/internal/seed"
	"medshop/m/internal/shell"
	"medshop/m/internal/store"
)

const serviceName = "medshop"

func main() {
	logg := bootstrapLogger(os.Stderr)

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})

	if err := run(context.Background(), cfg, logg, os.Stdin, os.Stdout); err != nil {
		logg.Error(context.Background(), "medshop stopped", err)
		os.Exit(1)
	}
}

// bootstrapLogger is used until the configured level and format are known.
func bootstrapLogger(w io.Writer) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       zerolog.InfoLevel,
		Format:      "console",
		Output:      w,
	})
}

// run connects to the store, prepares the schema and drives the menu loop
// over in/out until the operator exits.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, in io.Reader, out io.Writer) error {
	ctx = logg.WithField(ctx, "driver", cfg.DB.Driver)

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()
	logg.Debug(ctx, "database connection established")

	if cfg.DB.AutoMigrate {
		if err := migrations.Run(ctx, db, cfg.DB.Driver, logg); err != nil {
			return err
		}
	}

	if cfg.App.SeedCSV != "" {
		if _, err := seed.LoadMedicines(ctx, db, cfg.App.SeedCSV, logg); err != nil {
			return err
		}
	}

	sh, err := shell.New(shell.Params{
		Records:          store.New(db, cfg.DB.Driver, logg),
		Port:             console.New(in, out),
		Logger:           logg,
		Clock:            time.Now,
		ExpiryWindowDays: cfg.App.ExpiryWindowDays,
	})
	if err != nil {
		return err
	}
	return sh.Run(ctx)
}
