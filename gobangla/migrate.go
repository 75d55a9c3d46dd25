package gobangla

import (
	sql "database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed migrations/*.sql
var embedFS embed.FS

type migrate struct {
	db *sql.DB
	fs fs.FS
}

type migrationStatus struct {
	lastRun       string
	lastMigration string
}

func migrationName(fileName string) string {
	return strings.Split(fileName, ".")[0]
}

// InitMigrate prepare running the .sql files of fsys, in name order, on db
func InitMigrate(db *sql.DB, fsys fs.FS) (*migrate, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name VARCHAR(200)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &migrate{db, fsys}, nil
}

func schemeMigrations() (fs.FS, error) {
	return fs.Sub(embedFS, "migrations")
}

func (mg *migrate) ranMigrationNames() (map[string]bool, error) {
	rows, err := mg.db.Query("SELECT name FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ran := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		ran[name] = true
	}
	return ran, rows.Err()
}

func (mg *migrate) Status() (*migrationStatus, error) {
	var lastRun string
	// No rows means nothing ran yet
	mg.db.QueryRow("SELECT name FROM migrations ORDER BY id DESC LIMIT 1").Scan(&lastRun)

	files, err := fs.ReadDir(mg.fs, ".")
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return &migrationStatus{lastRun, lastRun}, nil
	}

	lastMigration := migrationName(files[len(files)-1].Name())

	return &migrationStatus{lastRun, lastMigration}, nil
}

// Run pending migrations. Returns how many ran.
func (mg *migrate) Run() (int, error) {
	status, err := mg.Status()
	if err != nil {
		return 0, err
	}

	if status.lastRun == status.lastMigration {
		return 0, nil
	}

	return mg.runMigrations()
}

// Runs every migration file not recorded in the migrations table, in name order
func (mg *migrate) runMigrations() (int, error) {
	files, err := fs.ReadDir(mg.fs, ".")
	if err != nil {
		return 0, err
	}

	ran, err := mg.ranMigrationNames()
	if err != nil {
		return 0, err
	}

	ranMigrations := 0

	for _, file := range files {
		name := migrationName(file.Name())
		if ran[name] {
			continue
		}

		fileContents, err := fs.ReadFile(mg.fs, file.Name())
		if err != nil {
			return ranMigrations, err
		}

		tx, err := mg.db.Begin()
		if err != nil {
			return ranMigrations, err
		}

		if _, err = tx.Exec(string(fileContents)); err != nil {
			tx.Rollback()
			return ranMigrations, fmt.Errorf("migration %s failed: %w", name, err)
		}

		if _, err = tx.Exec("INSERT INTO migrations (name) VALUES(?)", name); err != nil {
			tx.Rollback()
			return ranMigrations, err
		}

		if err = tx.Commit(); err != nil {
			return ranMigrations, err
		}

		ranMigrations++
	}

	return ranMigrations, nil
}
