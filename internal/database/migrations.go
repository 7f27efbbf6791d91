package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in order, once each, tracked in the migrations table
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_species",
		SQL: `
			CREATE TABLE IF NOT EXISTS species (
				id TEXT PRIMARY KEY,
				common_name TEXT NOT NULL,
				scientific_name TEXT NOT NULL,
				image TEXT,
				type TEXT NOT NULL,
				conservation_status TEXT NOT NULL,
				estimated_population TEXT,
				geographic_range TEXT,
				timeline_to_extinction TEXT,
				reasons TEXT,
				learn_more_url TEXT,
				lng REAL,
				lat REAL,
				last_seen TEXT
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_observations",
		SQL: `
			CREATE TABLE IF NOT EXISTS observations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				species_id TEXT NOT NULL REFERENCES species(id) ON DELETE CASCADE,
				lng REAL NOT NULL,
				lat REAL NOT NULL,
				month INTEGER NOT NULL,
				year INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_observations_species_time
				ON observations(species_id, year, month)
		`,
	},
}

// InitMigrationsTable creates the migrations tracking table
func InitMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if err := InitMigrationsTable(db); err != nil {
		return err
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}
