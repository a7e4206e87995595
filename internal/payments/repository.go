package payments

import (
	"context"
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

const paymentColumns = `id, booking_id, amount_cents, payment_type, payment_method,
	COALESCE(notes, ''), created_at`

// Repository stores the payment ledger.
type Repository struct {
	db DB
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("payments: pgx pool required")
	}
	return &Repository{db: pool}
}

func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

// Insert appends one ledger entry.
func (r *Repository) Insert(ctx context.Context, req *RecordPaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (id, booking_id, amount_cents, payment_type, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING ` + paymentColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), req.BookingID, int64(req.Amount), req.PaymentType,
		req.PaymentMethod, req.Notes)
	p, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("payments: insert failed: %w", err)
	}
	return p, nil
}

// Delete removes a ledger entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("payments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// ListAll returns every payment newest-first. Revenue aggregation re-scans
// this full set on each request; fine at this data volume.
func (r *Repository) ListAll(ctx context.Context) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	return r.queryPayments(ctx, query)
}

// ListByBooking returns a booking's ledger newest-first.
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`
	return r.queryPayments(ctx, query, bookingID)
}

func (r *Repository) queryPayments(ctx context.Context, query string, args ...any) ([]*Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("payments: query failed: %w", err)
	}
	defer rows.Close()

	out := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("payments: scan failed: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var (
		p      Payment
		amount int64
	)
	if err := row.Scan(
		&p.ID, &p.BookingID, &amount, &p.PaymentType, &p.PaymentMethod,
		&p.Notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Amount = money.Cents(amount)
	return &p, nil
}
