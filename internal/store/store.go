package store

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"banks-etl/lib/telemetry"

	"github.com/jmoiron/sqlx"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var tracer = telemetry.Tracer("banks-etl.internal.store")
var meter = telemetry.Meter("banks-etl.internal.store")
var rowsLoaded = telemetry.Int64Counter(meter, "rows_loaded")

var ErrRowTooLong = errors.New("row has more cells than the table has columns")

type Config struct {
	// sqlite database file, created if it does not exist
	File      string `json:"file"`
	// libsql server url, takes priority over File when set
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// Store is a handle to the relational store. It must be closed by the
// caller.
type Store struct {
	db *sqlx.DB
}

func Open(config Config) (*Store, error) {
	if config.Url != "" {
		dsn, err := url.Parse(config.Url)
		if err != nil {
			return nil, err
		}
		if config.AuthToken != "" {
			query := dsn.Query()
			query.Set("authToken", config.AuthToken)
			dsn.RawQuery = query.Encode()
		}
		db, err := sqlx.Open("libsql", dsn.String())
		if err != nil {
			return nil, err
		}
		return &Store{db: db}, nil
	}

	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if config.File != ":memory:" {
		dir := filepath.Dir(config.File)
		_, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases alive across calls
	// and serializes writers to the file
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
