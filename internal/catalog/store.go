package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the narrow query surface the store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads admin-managed catalog content. Empty tables mean the site runs
// on the built-in defaults.
type Store struct {
	db DB
}

// NewStore initializes a store backed by pgxpool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// NewStoreWithDB accepts any DB implementation, used by tests.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

// Services returns the catalog entries ordered by id.
func (s *Store) Services(ctx context.Context) ([]Service, error) {
	query := `
		SELECT id, title, description, price, features, category, popular
		FROM catalog_services ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: select services failed: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Price,
			&svc.Features, &svc.Category, &svc.Popular); err != nil {
			return nil, fmt.Errorf("catalog: scan service failed: %w", err)
		}
		out = append(out, svc)
	}
	return out, rows.Err()
}

// Testimonials returns verified testimonials newest-first.
func (s *Store) Testimonials(ctx context.Context) ([]Testimonial, error) {
	query := `
		SELECT id, name, role, rating, text, location, verified
		FROM catalog_testimonials WHERE verified ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: select testimonials failed: %w", err)
	}
	defer rows.Close()

	var out []Testimonial
	for rows.Next() {
		var tm Testimonial
		if err := rows.Scan(&tm.ID, &tm.Name, &tm.Role, &tm.Rating, &tm.Text,
			&tm.Location, &tm.Verified); err != nil {
			return nil, fmt.Errorf("catalog: scan testimonial failed: %w", err)
		}
		out = append(out, tm)
	}
	return out, rows.Err()
}

// Areas returns active service areas.
func (s *Store) Areas(ctx context.Context) ([]ServiceArea, error) {
	query := `SELECT id, name, active FROM catalog_service_areas WHERE active ORDER BY name`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: select areas failed: %w", err)
	}
	defer rows.Close()

	var out []ServiceArea
	for rows.Next() {
		var area ServiceArea
		if err := rows.Scan(&area.ID, &area.Name, &area.Active); err != nil {
			return nil, fmt.Errorf("catalog: scan area failed: %w", err)
		}
		out = append(out, area)
	}
	return out, rows.Err()
}

// Stats returns the single company stats row, or nil when none is stored.
func (s *Store) Stats(ctx context.Context) (*CompanyStats, error) {
	query := `
		SELECT happy_clients, average_rating, years_experience, completed_moves
		FROM company_stats LIMIT 1`
	var stats CompanyStats
	err := s.db.QueryRow(ctx, query).Scan(&stats.HappyClients, &stats.AverageRating,
		&stats.YearsExperience, &stats.CompletedMoves)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: select stats failed: %w", err)
	}
	return &stats, nil
}
