package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, 0, cfg.Client.TimeoutSec, "no client timeout unless configured")
	assert.Equal(t, "auto", cfg.Display.Theme)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
database:
  driver: mysql
  host: db
  name: tasks
client:
  base_url: "http://tasks.internal:9090"
display:
  theme: light
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "tasks", cfg.Database.Name)
	assert.Equal(t, "http://tasks.internal:9090", cfg.Client.BaseURL)
	assert.Equal(t, "light", cfg.Display.Theme)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "mysql.example")
	t.Setenv("DB_USER", "tracker")
	t.Setenv("DB_PASS", "s3cret")
	t.Setenv("TASKTRACKER_SERVER_ADDR", ":7000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mysql.example", cfg.Database.Host)
	assert.Equal(t, "tracker", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestSaveConfig_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Server.Addr = ":8181"
	cfg.Display.Theme = "dark"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8181", loaded.Server.Addr)
	assert.Equal(t, "dark", loaded.Display.Theme)
}

func TestMySQLDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "3306", Name: "n"}
	assert.Equal(t, "u:p@tcp(h:3306)/n?clientFoundRows=true&parseTime=true", c.MySQLDSN())
}

func TestMySQLDSN_PasswordWithSeparators(t *testing.T) {
	c := DatabaseConfig{User: "app", Password: "s3/cr?et@x", Host: "db", Port: "3306", Name: "tasks"}

	parsed, err := mysql.ParseDSN(c.MySQLDSN())
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "s3/cr?et@x", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "tasks", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}
