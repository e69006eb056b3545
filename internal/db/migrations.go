package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/nutrisnap/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

// migrationScript is one embedded .sql file, keyed by its numeric prefix.
type migrationScript struct {
	version string
	order   int
	name    string
	sql     string
}

// applyEmbeddedMigrations runs every embedded script not yet recorded in
// schema_migrations, each inside its own transaction.
func applyEmbeddedMigrations(database *gorm.DB) error {
	ledgerSQL := `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	scripts, err := readMigrationScripts()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, done := applied[script.version]; done {
			continue
		}
		if err := runMigrationScript(database, script); err != nil {
			return err
		}
	}
	return nil
}

func readMigrationScripts() ([]migrationScript, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		match := migrationNamePattern.FindStringSubmatch(name)
		if entry.IsDir() || match == nil {
			continue
		}

		version := match[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", name, err)
		}
		if other, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, other, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		scripts = append(scripts, migrationScript{version: version, order: order, name: name, sql: string(body)})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].order < scripts[j].order })
	return scripts, nil
}

func appliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	set := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		set[version] = struct{}{}
	}
	return set, nil
}

func runMigrationScript(database *gorm.DB, script migrationScript) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(script.sql)
		if len(statements) == 0 {
			return errors.New("migration " + script.name + " has no statements")
		}

		for _, statement := range statements {
			skip, err := shouldSkipStatement(tx, statement)
			if err != nil {
				return fmt.Errorf("migration %s: %w", script.name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %q: %w", script.name, statement, err)
			}
		}

		err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, script.version, script.name).Error
		if err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}

func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := parts[:0]
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// shouldSkipStatement makes ADD COLUMN scripts safe against databases that
// already carry the column; SQLite has no ADD COLUMN IF NOT EXISTS.
func shouldSkipStatement(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if match == nil {
		return false, nil
	}
	return tableColumnExists(database, trimIdentifier(match[1]), trimIdentifier(match[2]))
}

type tableColumn struct {
	Name string `gorm:"column:name"`
}

func tableColumnExists(database *gorm.DB, tableName, columnName string) (bool, error) {
	escaped := strings.ReplaceAll(tableName, `"`, `""`)

	columns := make([]tableColumn, 0)
	err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escaped)).Scan(&columns).Error
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func trimIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
