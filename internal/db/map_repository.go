package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MapRow represents a row from the maps table.
type MapRow struct {
	Fingerprint string
	Name        string
	Width       int
	Height      int
	CellSize    float64
	CreatedAt   time.Time
}

// ReportRow represents a row from connectivity_reports.
type ReportRow struct {
	ID             int64
	MapFingerprint string
	ValidSpawns    int
	InvalidSpawns  int
	Warnings       []string
	Errors         []string
	CheckedAt      time.Time
}

// MapRepository provides CRUD for analyzed maps and their reports.
type MapRepository struct {
	pool *pgxpool.Pool
}

// NewMapRepository creates a new MapRepository.
func NewMapRepository(pool *pgxpool.Pool) *MapRepository {
	return &MapRepository{pool: pool}
}

// SaveMap inserts a map record, updating the name if the fingerprint
// already exists.
func (r *MapRepository) SaveMap(ctx context.Context, row MapRow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO maps (fingerprint, name, width, height, cell_size)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (fingerprint) DO UPDATE SET name = EXCLUDED.name`,
		row.Fingerprint, row.Name, row.Width, row.Height, row.CellSize)
	if err != nil {
		return fmt.Errorf("saving map %q: %w", row.Name, err)
	}
	return nil
}

// GetMapByFingerprint retrieves a map record.
// Returns nil, nil if the map does not exist.
func (r *MapRepository) GetMapByFingerprint(ctx context.Context, fingerprint string) (*MapRow, error) {
	var row MapRow
	err := r.pool.QueryRow(ctx,
		`SELECT fingerprint, name, width, height, cell_size, created_at
		 FROM maps WHERE fingerprint = $1`, fingerprint,
	).Scan(&row.Fingerprint, &row.Name, &row.Width, &row.Height, &row.CellSize, &row.CreatedAt)
	if err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying map %q: %w", fingerprint, err)
	}
	return &row, nil
}

// absent reports whether a query error means the row does not exist.
func absent(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// SaveReport inserts a connectivity report for a map and returns its id.
func (r *MapRepository) SaveReport(ctx context.Context, row ReportRow) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO connectivity_reports (map_fingerprint, valid_spawns, invalid_spawns, warnings, errors)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		row.MapFingerprint, row.ValidSpawns, row.InvalidSpawns, row.Warnings, row.Errors,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving report for map %q: %w", row.MapFingerprint, err)
	}
	return id, nil
}

// ListReports loads all reports for a map, newest first.
func (r *MapRepository) ListReports(ctx context.Context, fingerprint string) ([]ReportRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, map_fingerprint, valid_spawns, invalid_spawns, warnings, errors, checked_at
		 FROM connectivity_reports WHERE map_fingerprint = $1
		 ORDER BY checked_at DESC`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("query connectivity_reports: %w", err)
	}
	defer rows.Close()

	var result []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ID, &row.MapFingerprint, &row.ValidSpawns, &row.InvalidSpawns,
			&row.Warnings, &row.Errors, &row.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan connectivity_reports: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
