package repositories

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"tour-route-service/internal/domain"

	"gopkg.in/yaml.v3"
)

type PointSeed struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type seedFile struct {
	Points []PointSeed `yaml:"points"`
}

// Replace the stored points with the contents of a YAML seed file.
// File order becomes point order.
func SeedFromYAML(db *sql.DB, d Dialect, yamlPath string) error {
	bytes, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("seed points: read %q: %w", yamlPath, err)
	}

	var data seedFile
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed points: parse yaml: %w", err)
	}

	return SeedPoints(db, d, data.Points)
}

// SeedPoints validates seeds and writes them in order inside one transaction.
func SeedPoints(db *sql.DB, d Dialect, seeds []PointSeed) error {
	if db == nil {
		return fmt.Errorf("seed points: DB is nil")
	}

	// Reuse point set validation so the table never holds a set that cannot be loaded.
	ps := domain.NewPointSet()
	for i, item := range seeds {
		if err := ps.Add(strings.TrimSpace(item.Name), item.Lat, item.Lon); err != nil {
			return fmt.Errorf("seed points: item at index %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed points: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM points;`); err != nil {
		return fmt.Errorf("seed points: clear points: %w", err)
	}

	query := d.Rebind(`
	INSERT INTO points (
		position,
		name,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?);
	`)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range ps.Points() {
		if _, err := stmt.Exec(i, p.Name, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("seed points: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed points: commit tx: %w", err)
	}

	return nil
}
