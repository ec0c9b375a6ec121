package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds application configuration values.
type Config struct {
	App AppConfig
	DB  DBConfig
}

type AppConfig struct {
	LogLevel         string `envconfig:"MEDSHOP_LOG_LEVEL" default:"warn"`
	LogFormat        string `envconfig:"MEDSHOP_LOG_FORMAT" default:"console"`
	ExpiryWindowDays int    `envconfig:"MEDSHOP_EXPIRY_WINDOW_DAYS" default:"30"`
	SeedCSV          string `envconfig:"MEDSHOP_SEED_CSV"`
}

type DBConfig struct {
	Driver      string `envconfig:"MEDSHOP_DB_DRIVER" default:"sqlite"`
	DSN         string `envconfig:"MEDSHOP_DB_DSN"`
	Host        string `envconfig:"MEDSHOP_DB_HOST" default:"localhost"`
	Port        int    `envconfig:"MEDSHOP_DB_PORT"`
	User        string `envconfig:"MEDSHOP_DB_USER" default:"root"`
	Password    string `envconfig:"MEDSHOP_DB_PASSWORD"`
	Name        string `envconfig:"MEDSHOP_DB_NAME" default:"medical_store"`
	SSLMode     string `envconfig:"MEDSHOP_DB_SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"MEDSHOP_AUTO_MIGRATE" default:"true"`
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.App.ExpiryWindowDays < 1 {
		return nil, fmt.Errorf("MEDSHOP_EXPIRY_WINDOW_DAYS must be at least 1, got %d", cfg.App.ExpiryWindowDays)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	case "mysql", "mariadb":
		return DriverMySQL, nil
	default:
		return "", fmt.Errorf("unsupported MEDSHOP_DB_DRIVER %q (want sqlite, postgres or mysql)", driver)
	}
}

// ensureDSN normalizes the driver and, when no DSN was supplied, assembles
// one from the individual connection parameters.
func (db *DBConfig) ensureDSN() error {
	driver, err := normalizeDriver(db.Driver)
	if err != nil {
		return err
	}
	db.Driver = driver

	if db.DSN != "" {
		return nil
	}

	switch db.Driver {
	case DriverSQLite:
		name := db.Name
		if name != ":memory:" && !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		db.DSN = name
	case DriverPostgres:
		port := db.Port
		if port == 0 {
			port = 5432
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.User, db.Password),
			Host:     net.JoinHostPort(db.Host, strconv.Itoa(port)),
			Path:     "/" + db.Name,
			RawQuery: "sslmode=" + url.QueryEscape(db.SSLMode),
		}
		db.DSN = dsn.String()
	case DriverMySQL:
		port := db.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(port))
		mc.DBName = db.Name
		db.DSN = mc.FormatDSN()
	}
	return nil
}
