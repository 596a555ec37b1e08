package migrations

import (
	"database/sql"
	"fmt"
	"strings"
)

const versionTable = "schema_migrations"

// Migration is one step of the schema chain. Every step names exactly one
// parent (empty for the root), so the registry forms a singly linked chain
// with a single head. Lossy marks steps whose Downgrade cannot restore the
// data Upgrade discarded; the downgrade is best-effort only.
type Migration struct {
	ID        string
	Parent    string
	Label     string
	Lossy     bool
	Upgrade   func(tx *sql.Tx) error
	Downgrade func(tx *sql.Tx) error
}

// StatusEntry describes one chain step for reporting.
type StatusEntry struct {
	ID        string
	Label     string
	Lossy     bool
	Applied   bool
	AppliedAt string
}

// Chain returns the registered migrations ordered root-first, validating
// that the registry forms a single unbroken chain.
func Chain() ([]*Migration, error) {
	byParent := make(map[string]*Migration, len(registry))
	ids := make(map[string]bool, len(registry))
	for _, m := range registry {
		if m.ID == "" {
			return nil, fmt.Errorf("migration with empty id")
		}
		if ids[m.ID] {
			return nil, fmt.Errorf("duplicate migration id %q", m.ID)
		}
		ids[m.ID] = true
		if _, ok := byParent[m.Parent]; ok {
			return nil, fmt.Errorf("migrations %q and %q share parent %q", byParent[m.Parent].ID, m.ID, m.Parent)
		}
		byParent[m.Parent] = m
	}

	for _, m := range registry {
		if m.Parent != "" && !ids[m.Parent] {
			return nil, fmt.Errorf("migration %q references unknown parent %q", m.ID, m.Parent)
		}
	}

	root, ok := byParent[""]
	if !ok {
		return nil, fmt.Errorf("migration chain has no root")
	}

	chain := make([]*Migration, 0, len(registry))
	for m := root; m != nil; m = byParent[m.ID] {
		chain = append(chain, m)
	}
	if len(chain) != len(registry) {
		return nil, fmt.Errorf("migration chain is broken: %d of %d steps reachable from root", len(chain), len(registry))
	}
	return chain, nil
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
		version TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to ensure %s table: %w", versionTable, err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT version, applied_at FROM ` + versionTable)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied versions: %w", err)
	}
	defer rows.Close()

	applied := map[string]string{}
	for rows.Next() {
		var version, appliedAt string
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		applied[version] = appliedAt
	}
	return applied, rows.Err()
}

// Up applies every pending migration in chain order, one transaction per
// step. A failing step is rolled back and halts the run, leaving the
// schema in its pre-step state.
func Up(db *sql.DB) (int, error) {
	chain, err := Chain()
	if err != nil {
		return 0, err
	}
	if err := ensureVersionTable(db); err != nil {
		return 0, err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range chain {
		if _, ok := applied[m.ID]; ok {
			continue
		}
		if err := runStep(db, m.ID, m.Upgrade, `INSERT INTO `+versionTable+` (version) VALUES (?)`); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Down rolls back at most steps migrations, newest applied first.
func Down(db *sql.DB, steps int) (int, error) {
	if steps < 1 {
		return 0, fmt.Errorf("steps must be at least 1")
	}
	chain, err := Chain()
	if err != nil {
		return 0, err
	}
	if err := ensureVersionTable(db); err != nil {
		return 0, err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(chain) - 1; i >= 0 && count < steps; i-- {
		m := chain[i]
		if _, ok := applied[m.ID]; !ok {
			continue
		}
		if err := runStep(db, m.ID, m.Downgrade, `DELETE FROM `+versionTable+` WHERE version = ?`); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// runStep executes one upgrade or downgrade inside a transaction together
// with its version bookkeeping. SQLite DDL is transactional, so a failed
// step leaves neither a half-renamed table nor a stray version row.
func runStep(db *sql.DB, id string, op func(tx *sql.Tx) error, recordSQL string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", id, err)
	}
	if err := op(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %s failed: %w", id, err)
	}
	if _, err := tx.Exec(recordSQL, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", id, err)
	}
	return nil
}

// Status reports every chain step in order with its applied state.
func Status(db *sql.DB) ([]StatusEntry, error) {
	chain, err := Chain()
	if err != nil {
		return nil, err
	}
	if err := ensureVersionTable(db); err != nil {
		return nil, err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	entries := make([]StatusEntry, 0, len(chain))
	for _, m := range chain {
		appliedAt, ok := applied[m.ID]
		entries = append(entries, StatusEntry{
			ID:        m.ID,
			Label:     m.Label,
			Lossy:     m.Lossy,
			Applied:   ok,
			AppliedAt: appliedAt,
		})
	}
	return entries, nil
}

// execAll runs statements in order, stopping at the first failure.
func execAll(tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
