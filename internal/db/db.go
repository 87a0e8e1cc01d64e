package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/quickbite/ordering/internal/config"
)

// TimeLayout is how created_at values are written and read back, on both
// backends. MySQL DATETIME and SQLite TEXT both accept it verbatim.
const TimeLayout = "2006-01-02 15:04:05"

// Open returns an open and verified database handle for the configured
// backend, with the pool size applied.
func Open(cfg config.Config) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		database, err = sql.Open("mysql", dsn)
	case "sqlite":
		database, err = sql.Open("sqlite", cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	poolSize := cfg.DBPoolSize
	if cfg.DBDriver == "sqlite" {
		// A single writer; sqlite does its own locking and an in-memory
		// database is per-connection.
		poolSize = 1
	}
	database.SetMaxOpenConns(poolSize)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return database, nil
}

// IsDuplicate reports whether err is a unique-constraint violation on
// either backend (MySQL 1062, SQLite 2067/1555).
func IsDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	if err != nil {
		// modernc.org/sqlite reports constraint violations through the
		// message; result codes 2067 (unique) and 1555 (pk) both count.
		msg := err.Error()
		return strings.Contains(msg, "(2067)") || strings.Contains(msg, "(1555)") ||
			strings.Contains(msg, "UNIQUE constraint failed")
	}
	return false
}
