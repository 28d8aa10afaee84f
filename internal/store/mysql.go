package store

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/tasktracker/internal/model"
)

// NewMySQLStore connects to a MySQL server with the given DSN, verifies the
// connection, and runs any pending schema migrations. The DSN must set
// parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLStore(dsn string) (*SQLStore, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging mysql db: %w", err)
	}

	s := &SQLStore{db: db, driver: model.DriverMySQL, migrations: mysqlMigrations}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}
