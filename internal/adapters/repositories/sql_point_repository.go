package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
)

// SQL-backed implementation of the PointSource port.
type SQLPointRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLPointRepository(db *sql.DB, d Dialect) *SQLPointRepository {
	return &SQLPointRepository{DB: db, Dialect: d}
}

// Return all stored points in seed order.
func (s *SQLPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.repository.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	query := `
	SELECT
		name,
		lat,
		lon
	FROM points
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points: query points table: %w", err)
	}
	defer rows.Close()

	points := make([]domain.Point, 0, 64)
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(&p.Name, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("list points: scan row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: row iteration: %w", err)
	}

	return points, nil
}

// GetPoint looks up a point by name and returns it with its list position.
func (s *SQLPointRepository) GetPoint(ctx context.Context, name string) (int, domain.Point, error) {
	if s.DB == nil {
		return 0, domain.Point{}, errors.New("sql point repository: DB is nil")
	}

	var (
		pos int
		p   domain.Point
	)
	q := s.Dialect.Rebind(`SELECT position, name, lat, lon FROM points WHERE name = ?;`)
	err := s.DB.QueryRowContext(ctx, q, name).Scan(&pos, &p.Name, &p.Lat, &p.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.Point{}, fmt.Errorf("get point %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return 0, domain.Point{}, fmt.Errorf("get point %q: %w", name, err)
	}
	return pos, p, nil
}
