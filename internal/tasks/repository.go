package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs. pgx.Tx satisfies it
// too, which lets the conversion flow insert tasks inside its transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const taskColumns = `id, title, COALESCE(description, ''), task_type, priority, status,
	COALESCE(booking_id, ''), COALESCE(contact_id, ''), COALESCE(customer_name, ''),
	COALESCE(customer_email, ''), COALESCE(service_type, ''), due_date, auto_generated,
	started_at, completed_at, created_at, updated_at`

// Repository stores workflow tasks.
type Repository struct {
	db DB
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("tasks: pgx pool required")
	}
	return &Repository{db: pool}
}

func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a task using the repository's own handle.
func (r *Repository) Create(ctx context.Context, t *Task) (*Task, error) {
	return r.CreateIn(ctx, r.db, t)
}

// CreateIn inserts a task through the given executor, typically a pgx.Tx when
// the task must commit atomically with other writes.
func (r *Repository) CreateIn(ctx context.Context, db DB, t *Task) (*Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	query := `
		INSERT INTO tasks (id, title, description, task_type, priority, status,
			booking_id, contact_id, customer_name, customer_email, service_type,
			due_date, auto_generated)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''),
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12, $13)
		RETURNING ` + taskColumns
	row := db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.TaskType, t.Priority, t.Status,
		t.BookingID, t.ContactID, t.CustomerName, t.CustomerEmail, t.ServiceType,
		t.DueDate, t.AutoGenerated)
	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("tasks: insert failed: %w", err)
	}
	return created, nil
}

// GetByID fetches a single task.
func (r *Repository) GetByID(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("tasks: select failed: %w", err)
	}
	return t, nil
}

// List returns tasks newest-first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tasks: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("tasks: scan failed: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByBooking returns a booking's tasks newest-first.
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE booking_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("tasks: list by booking failed: %w", err)
	}
	defer rows.Close()

	out := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("tasks: scan failed: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update persists the mutable fields of a task.
func (r *Repository) Update(ctx context.Context, t *Task) (*Task, error) {
	query := `
		UPDATE tasks SET
			title = $2, description = NULLIF($3, ''), priority = $4, status = $5,
			due_date = $6, started_at = $7, completed_at = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns
	updated, err := scanTask(r.db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.Priority, t.Status,
		t.DueDate, t.StartedAt, t.CompletedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("tasks: update failed: %w", err)
	}
	return updated, nil
}

// Delete removes a task permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("tasks: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.TaskType, &t.Priority, &t.Status,
		&t.BookingID, &t.ContactID, &t.CustomerName, &t.CustomerEmail, &t.ServiceType,
		&t.DueDate, &t.AutoGenerated, &t.StartedAt, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
