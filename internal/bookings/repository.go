package bookings

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

const bookingColumns = `id, name, email, phone, service_type, COALESCE(move_size, ''),
	current_address, COALESCE(new_address, ''), preferred_date, COALESCE(preferred_time, ''),
	COALESCE(special_requests, ''), status, total_cost_cents, contractor_cost_cents,
	hours_needed, COALESCE(converted_from_chatbot, ''), created_at, updated_at`

// Repository stores bookings in the relational database.
type Repository struct {
	db DB
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &Repository{db: pool}
}

func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pending booking.
func (r *Repository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (id, name, email, phone, service_type, move_size,
			current_address, new_address, preferred_date, preferred_time,
			special_requests, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9,
			NULLIF($10, ''), NULLIF($11, ''), $12)
		RETURNING ` + bookingColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), req.Name, req.Email, req.Phone, req.ServiceType, req.MoveSize,
		req.CurrentAddress, req.NewAddress, req.PreferredDate, req.PreferredTime,
		req.SpecialRequests, StatusPending)
	b, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}
	return b, nil
}

// CreateConverted inserts a booking produced by converting a chatbot lead.
// The unique index on converted_from_chatbot makes a second conversion of
// the same lead fail here with ErrAlreadyConverted. Run inside the
// conversion transaction via NewRepositoryWithDB(tx).
func (r *Repository) CreateConverted(ctx context.Context, b *Booking) (*Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query := `
		INSERT INTO bookings (id, name, email, phone, service_type, move_size,
			current_address, new_address, preferred_date, preferred_time,
			special_requests, status, hours_needed, converted_from_chatbot)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9,
			NULLIF($10, ''), NULLIF($11, ''), $12, $13, $14)
		RETURNING ` + bookingColumns
	row := r.db.QueryRow(ctx, query,
		b.ID, b.Name, b.Email, b.Phone, b.ServiceType, b.MoveSize,
		b.CurrentAddress, b.NewAddress, b.PreferredDate, b.PreferredTime,
		b.SpecialRequests, StatusPending, b.HoursNeeded, b.ConvertedFromChatbot)
	created, err := scanBooking(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyConverted
		}
		return nil, fmt.Errorf("bookings: converted insert failed: %w", err)
	}
	return created, nil
}

// GetByID fetches a single booking.
func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return b, nil
}

// List returns bookings newest-first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan failed: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking to a new lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	query := `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	b, err := scanBooking(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: status update failed: %w", err)
	}
	return b, nil
}

// UpdateCost prices a booking. Negative amounts are rejected before the
// write; omitted fields keep their stored values.
func (r *Repository) UpdateCost(ctx context.Context, id string, req *UpdateCostRequest) (*Booking, error) {
	if (req.TotalCost != nil && *req.TotalCost < 0) ||
		(req.ContractorCost != nil && *req.ContractorCost < 0) ||
		(req.HoursNeeded != nil && *req.HoursNeeded < 0) {
		return nil, ErrNegativeCost
	}

	query := `
		UPDATE bookings SET
			total_cost_cents      = COALESCE($2, total_cost_cents),
			contractor_cost_cents = COALESCE($3, contractor_cost_cents),
			hours_needed          = COALESCE($4, hours_needed),
			updated_at            = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	b, err := scanBooking(r.db.QueryRow(ctx, query, id,
		centsArg(req.TotalCost), centsArg(req.ContractorCost), req.HoursNeeded))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: cost update failed: %w", err)
	}
	return b, nil
}

func centsArg(c *money.Cents) *int64 {
	if c == nil {
		return nil
	}
	v := int64(*c)
	return &v
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b              Booking
		totalCost      *int64
		contractorCost *int64
	)
	if err := row.Scan(
		&b.ID, &b.Name, &b.Email, &b.Phone, &b.ServiceType, &b.MoveSize,
		&b.CurrentAddress, &b.NewAddress, &b.PreferredDate, &b.PreferredTime,
		&b.SpecialRequests, &b.Status, &totalCost, &contractorCost,
		&b.HoursNeeded, &b.ConvertedFromChatbot, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if totalCost != nil {
		c := money.Cents(*totalCost)
		b.TotalCost = &c
	}
	if contractorCost != nil {
		c := money.Cents(*contractorCost)
		b.ContractorCost = &c
	}
	return &b, nil
}
