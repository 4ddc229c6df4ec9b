// Package sqlite provides file-backed persistence for single-node
// deployments that need state to survive restarts without external services.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Na1awut/NDLP/internal/domain"
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS states (
	user_id    TEXT PRIMARY KEY,
	state_json TEXT NOT NULL,
	turn       INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	author     TEXT NOT NULL,
	text       TEXT NOT NULL,
	e          REAL NOT NULL DEFAULT 0.0,
	zone       TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	seq        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user_seq ON messages(user_id, seq);
`

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path with recommended pragmas
// and runs the schema migration.
func NewStore(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL allows concurrent reads but a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ─────────────────────────────────────────
// StateStore implementation
// ─────────────────────────────────────────

func (s *Store) GetState(userID domain.UserID) (*domain.State, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT state_json FROM states WHERE user_id = ?`, string(userID),
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite GetState: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("sqlite GetState decode: %w", err)
	}
	return &state, nil
}

func (s *Store) SaveState(userID domain.UserID, state *domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sqlite SaveState encode: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO states (user_id, state_json, turn, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			state_json = excluded.state_json,
			turn       = excluded.turn,
			updated_at = excluded.updated_at`,
		string(userID), string(raw), state.Turn, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite SaveState: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.ChatMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite AppendMessage begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE user_id = ?`,
		string(msg.UserID),
	).Scan(&seq); err != nil {
		return fmt.Errorf("sqlite AppendMessage seq: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO messages (id, user_id, author, text, e, zone, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(msg.ID), string(msg.UserID), string(msg.Author), msg.Text,
		msg.E, string(msg.Zone), msg.CreatedAt.Unix(), seq,
	); err != nil {
		return fmt.Errorf("sqlite AppendMessage insert: %w", err)
	}

	// Drop everything beyond the newest MaxStoredMessages.
	if _, err := tx.Exec(`
		DELETE FROM messages
		WHERE user_id = ? AND seq <= ? - ?`,
		string(msg.UserID), seq, domain.MaxStoredMessages,
	); err != nil {
		return fmt.Errorf("sqlite AppendMessage prune: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetRecentMessages(userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, author, text, e, zone, created_at
		FROM messages WHERE user_id = ? ORDER BY seq DESC`
	args := []any{string(userID)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite GetRecentMessages: %w", err)
	}
	defer rows.Close()

	var newestFirst []*domain.ChatMessage
	for rows.Next() {
		var (
			msg       domain.ChatMessage
			id        string
			author    string
			zone      string
			createdAt int64
		)
		if err := rows.Scan(&id, &author, &msg.Text, &msg.E, &zone, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite GetRecentMessages scan: %w", err)
		}
		msg.ID = domain.MessageID(id)
		msg.UserID = userID
		msg.Author = domain.Role(author)
		msg.Zone = domain.Zone(zone)
		msg.CreatedAt = time.Unix(createdAt, 0).UTC()
		newestFirst = append(newestFirst, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite GetRecentMessages rows: %w", err)
	}

	// Callers expect oldest first.
	out := make([]*domain.ChatMessage, len(newestFirst))
	for i, m := range newestFirst {
		out[len(out)-1-i] = m
	}
	return out, nil
}
