package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists chat messages and session activity.
type Store struct {
	db DB
}

func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("chat: pgx pool required")
	}
	return &Store{db: pool}
}

func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

// InsertMessage appends one transcript entry.
func (s *Store) InsertMessage(ctx context.Context, sessionID, sender, text string) (*Message, error) {
	if sessionID == "" {
		return nil, errors.New("chat: session id required")
	}

	msg := &Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   text,
		Sender:    sender,
	}
	query := `
		INSERT INTO chat_messages (id, session_id, message, sender)
		VALUES ($1, $2, $3, $4)
		RETURNING timestamp`
	if err := s.db.QueryRow(ctx, query, msg.ID, msg.SessionID, msg.Message, msg.Sender).
		Scan(&msg.Timestamp); err != nil {
		return nil, fmt.Errorf("chat: insert message failed: %w", err)
	}
	return msg, nil
}

// ListMessages returns a session's transcript oldest-first.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]*Message, error) {
	query := `
		SELECT id, session_id, message, sender, timestamp
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY timestamp ASC`
	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chat: list messages failed: %w", err)
	}
	defer rows.Close()

	out := []*Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Message, &m.Sender, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("chat: scan message failed: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// RecentMessages returns the newest limit entries in chronological order, for
// prompt context.
func (s *Store) RecentMessages(ctx context.Context, sessionID string, limit int) ([]*Message, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, session_id, message, sender, timestamp FROM (
			SELECT id, session_id, message, sender, timestamp
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY timestamp DESC
			LIMIT $2
		) recent ORDER BY timestamp ASC`
	rows, err := s.db.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("chat: recent messages failed: %w", err)
	}
	defer rows.Close()

	out := []*Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Message, &m.Sender, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("chat: scan message failed: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// UserMessages returns only user-authored text oldest-first, the aggregator's
// input.
func (s *Store) UserMessages(ctx context.Context, sessionID string) ([]string, error) {
	query := `
		SELECT message FROM chat_messages
		WHERE session_id = $1 AND sender = 'user'
		ORDER BY timestamp ASC`
	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chat: user messages failed: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("chat: scan message failed: %w", err)
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// TouchSession upserts the session row and bumps its activity timestamp.
func (s *Store) TouchSession(ctx context.Context, sessionID string) error {
	query := `
		INSERT INTO chat_sessions (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET last_activity = now()`
	if _, err := s.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("chat: touch session failed: %w", err)
	}
	return nil
}

// ClearSession removes a session and its transcript, returning how many
// messages were deleted.
func (s *Store) ClearSession(ctx context.Context, sessionID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM chat_messages WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("chat: clear messages failed: %w", err)
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, sessionID); err != nil {
		return 0, fmt.Errorf("chat: clear session failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
