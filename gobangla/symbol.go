package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"context"
	sql "database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Mapping a row in a scheme file
type Mapping struct {
	Identifier int
	Pattern    string
	Value      string
	Tag        string
	CreatedOn  int
}

const sqliteDriverName = "sqlite3_gobangla"

var registerDriverOnce sync.Once

func openDB(path string) (*sql.DB, error) {
	registerDriverOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				// Patterns are case sensitive, LIKE searches have to be too
				_, err := conn.Exec("PRAGMA case_sensitive_like=ON;", nil)
				return err
			},
		})
	})

	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Read a scheme file into memory. The connection is closed before
// returning, the scheme doesn't depend on the file after this.
func loadScheme(schemePath string) (*Scheme, error) {
	if !fileExists(schemePath) {
		return nil, fmt.Errorf("%s: %w", schemePath, ErrSchemeNotFound)
	}

	conn, err := openDB("file:" + schemePath + "?mode=ro")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	ctx, cancelFunc := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFunc()

	details, err := readSchemeDetails(ctx, conn)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, "SELECT pattern, value FROM mappings")
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings from %s: %w", schemePath, err)
	}
	defer rows.Close()

	mappings := make(map[string]string)

	for rows.Next() {
		var pattern, value string
		if err := rows.Scan(&pattern, &value); err != nil {
			return nil, err
		}
		mappings[pattern] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(mappings) == 0 {
		return nil, fmt.Errorf("%s has no mappings: %w", schemePath, ErrInvalidMapping)
	}

	return NewScheme(details, mappings)
}

func readSchemeDetails(ctx context.Context, conn *sql.DB) (SchemeDetails, error) {
	var sd SchemeDetails

	rows, err := conn.QueryContext(ctx, "SELECT key, value FROM metadata")
	if err != nil {
		return sd, fmt.Errorf("failed to read scheme metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			value string
		)
		if err := rows.Scan(&key, &value); err != nil {
			return sd, err
		}

		switch key {
		case GOBANGLA_METADATA_SCHEME_IDENTIFIER:
			sd.Identifier = value
		case GOBANGLA_METADATA_SCHEME_LANGUAGE_CODE:
			sd.LangCode = value
		case GOBANGLA_METADATA_SCHEME_DISPLAY_NAME:
			sd.DisplayName = value
		case GOBANGLA_METADATA_SCHEME_AUTHOR:
			sd.Author = value
		case GOBANGLA_METADATA_SCHEME_COMPILED_DATE:
			sd.CompiledDate = value
		case GOBANGLA_METADATA_SCHEME_STABLE:
			sd.IsStable = value == "1"
		}
	}

	return sd, rows.Err()
}
