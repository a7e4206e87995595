package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftmoveclean/ops-backend/internal/money"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const quoteColumns = `id, name, email, phone, service_type, COALESCE(move_size, ''),
	from_address, COALESCE(to_address, ''), additional_services,
	estimated_price_cents, status, created_at, updated_at`

// Repository stores quote requests.
type Repository struct {
	db DB
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("quotes: pgx pool required")
	}
	return &Repository{db: pool}
}

func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a quote request with its computed estimate.
func (r *Repository) Create(ctx context.Context, req *CreateQuoteRequest) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	services := req.AdditionalServices
	if services == nil {
		services = []string{}
	}
	estimate := Estimate(req.ServiceType, req.MoveSize, services)

	query := `
		INSERT INTO quotes (id, name, email, phone, service_type, move_size,
			from_address, to_address, additional_services, estimated_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, $11)
		RETURNING ` + quoteColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), req.Name, req.Email, req.Phone, req.ServiceType, req.MoveSize,
		req.FromAddress, req.ToAddress, services, int64(estimate), StatusPending)
	q, err := scanQuote(row)
	if err != nil {
		return nil, fmt.Errorf("quotes: insert failed: %w", err)
	}
	return q, nil
}

// GetByID fetches a single quote request.
func (r *Repository) GetByID(ctx context.Context, id string) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quotes: select failed: %w", err)
	}
	return q, nil
}

// List returns quote requests newest-first.
func (r *Repository) List(ctx context.Context) ([]*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quotes: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("quotes: scan failed: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Update applies an admin price or status change. Omitted fields keep their
// stored values.
func (r *Repository) Update(ctx context.Context, id string, req *UpdateQuoteRequest) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var price *int64
	if req.EstimatedPrice != nil {
		v := int64(*req.EstimatedPrice)
		price = &v
	}

	query := `
		UPDATE quotes SET
			estimated_price_cents = COALESCE($2, estimated_price_cents),
			status                = COALESCE($3, status),
			updated_at            = now()
		WHERE id = $1
		RETURNING ` + quoteColumns
	q, err := scanQuote(r.db.QueryRow(ctx, query, id, price, req.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quotes: update failed: %w", err)
	}
	return q, nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q     Quote
		price *int64
	)
	if err := row.Scan(
		&q.ID, &q.Name, &q.Email, &q.Phone, &q.ServiceType, &q.MoveSize,
		&q.FromAddress, &q.ToAddress, &q.AdditionalServices,
		&price, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if price != nil {
		c := money.Cents(*price)
		q.EstimatedPrice = &c
	}
	if q.AdditionalServices == nil {
		q.AdditionalServices = []string{}
	}
	return &q, nil
}
