package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs. Narrowed so tests
// can inject pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const leadColumns = `id, name, email, phone, subject, message, source, status,
	COALESCE(session_id, ''), COALESCE(converted_to_booking, ''), created_at, updated_at`

// Repository stores leads in the relational database.
type Repository struct {
	db DB
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact-form lead with status new.
func (r *Repository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO leads (id, name, email, phone, subject, message, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leadColumns
	row := r.db.QueryRow(ctx, query,
		id, req.Name, req.Email, req.Phone, req.Subject, req.Message,
		SourceContactForm, StatusNew)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return lead, nil
}

// UpsertBySession inserts or merges a chatbot lead keyed by session. The
// partial unique index on (session_id) WHERE source = 'chatbot' makes this a
// single atomic write, so concurrent messages for one session cannot produce
// duplicate leads.
func (r *Repository) UpsertBySession(ctx context.Context, sl *SessionLead) (*Lead, error) {
	if sl.SessionID == "" {
		return nil, errors.New("leads: session id required")
	}

	query := `
		INSERT INTO leads (id, name, email, phone, subject, message, source, status, session_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id) WHERE source = 'chatbot' DO UPDATE SET
			name    = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			email   = COALESCE(NULLIF(EXCLUDED.email, ''), leads.email),
			phone   = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			message = COALESCE(NULLIF(EXCLUDED.message, ''), leads.message),
			updated_at = now()
		RETURNING ` + leadColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(), sl.Name, sl.Email, sl.Phone, sl.Subject, sl.Message,
		SourceChatbot, StatusNew, sl.SessionID)
	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("leads: session upsert failed: %w", err)
	}
	return lead, nil
}

// GetByID fetches a single lead.
func (r *Repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads newest-first, optionally filtered.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any
	idx := 1
	if filter.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", idx)
		args = append(args, filter.Source)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.ExcludeChatbot {
		// IS DISTINCT FROM keeps legacy rows with a NULL source.
		query += " AND source IS DISTINCT FROM 'chatbot'"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// UpdateStatus moves a lead through its lifecycle. Rejects unknown statuses
// before touching the store.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*Lead, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	query := `
		UPDATE leads SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns
	lead, err := scanLead(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: status update failed: %w", err)
	}
	return lead, nil
}

// MarkConverted records that a lead became a booking: status moves to
// contacted and the booking id is stamped on the row. Run inside the
// conversion transaction via NewRepositoryWithDB(tx).
func (r *Repository) MarkConverted(ctx context.Context, id, bookingID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads SET status = $2, converted_to_booking = $3, updated_at = now()
		WHERE id = $1`, id, StatusContacted, bookingID)
	if err != nil {
		return fmt.Errorf("leads: mark converted failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead
	if err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Subject, &l.Message,
		&l.Source, &l.Status, &l.SessionID, &l.ConvertedToBooking,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}
