package model

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// ServerConfig holds settings for the Task API process.
type ServerConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// AllowOrigins lists the origins permitted by the CORS middleware.
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
}

// DatabaseConfig selects and configures the task table backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file (":memory:" for a throwaway store).
	Path string `mapstructure:"path" yaml:"path"`

	// MySQL connection settings. Password may be left empty and
	// resolved from the OS keyring at startup.
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name" yaml:"name"`
}

// ClientConfig holds settings for the UI's HTTP client.
type ClientConfig struct {
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Client   ClientConfig   `mapstructure:"client" yaml:"client"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// MySQLDSN builds the go-sql-driver DSN for the configured database.
// clientFoundRows makes UPDATE report matched rather than changed rows,
// so replacing a task with identical values is not mistaken for a miss.
func (c DatabaseConfig) MySQLDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Host, c.Port)
	dsn.DBName = c.Name
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	return dsn.FormatDSN()
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasktracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasktracker", "config.yaml")
}

// defaultDatabasePath returns ~/.local/share/tasktracker/tasks.db.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tasks.db"
	}
	return filepath.Join(home, ".local", "share", "tasktracker", "tasks.db")
}

// setDefaults registers default values so missing keys resolve sensibly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", defaultDatabasePath())
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "tasktracker")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout_sec", 0)
	v.SetDefault("display.theme", "auto")
}

// bindEnv maps environment variables onto config keys. TASKTRACKER_*
// variables cover every key; the DB_* names match common container setups.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("TASKTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.host", "TASKTRACKER_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "TASKTRACKER_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "TASKTRACKER_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "TASKTRACKER_DATABASE_PASSWORD", "DB_PASS")
	_ = v.BindEnv("database.name", "TASKTRACKER_DATABASE_NAME", "DB_NAME")
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects configurations the store or client cannot act on.
func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path must be set for the sqlite driver")
		}
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database.host and database.name must be set for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Display.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("unsupported display.theme %q", c.Display.Theme)
	}

	if c.Client.TimeoutSec < 0 {
		return errors.New("client.timeout_sec must not be negative")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("database", cfg.Database)
	v.Set("client", cfg.Client)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
