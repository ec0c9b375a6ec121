package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"medshop/m/internal/config"
	"medshop/m/internal/logger"
)

//go:embed sql
var embedded embed.FS

var dialects = map[string]string{
	config.DriverSQLite:   "sqlite3",
	config.DriverPostgres: "postgres",
	config.DriverMySQL:    "mysql",
}

// Files returns the embedded migrations for a driver.
func Files(driver string) (fs.FS, error) {
	if _, ok := dialects[driver]; !ok {
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	return fs.Sub(embedded, "sql/"+driver)
}

// Run applies every pending migration for the driver's dialect.
func Run(ctx context.Context, db *sqlx.DB, driver string, logg *logger.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dialect, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	fsys, err := Files(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if logg != nil {
		goose.SetLogger(gooseLogger{logg: logg})
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	if logg != nil {
		ctx = logg.WithField(ctx, "schema_version", version)
		logg.Debug(ctx, "migrations applied")
	}
	return nil
}

type gooseLogger struct {
	logg *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logg.Printf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logg.Error(context.Background(), fmt.Sprintf(format, v...), nil)
	os.Exit(1)
}
