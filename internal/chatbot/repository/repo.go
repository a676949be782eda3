package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
)

// ChatLogRepository persists chat exchanges. The table is append-only;
// there are no update or delete operations.
type ChatLogRepository struct {
	db *sql.DB
}

// NewChatLogRepository creates a new chat log repository.
func NewChatLogRepository(db *sql.DB) *ChatLogRepository {
	return &ChatLogRepository{db: db}
}

// Insert writes one exchange. Missing id/timestamp are assigned here so the
// worker can insert jobs produced before either was known.
func (r *ChatLogRepository) Insert(ctx context.Context, entry *domain.ChatLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = domain.StatusSuccess
	}

	const q = `
INSERT INTO chat_logs (id, session_id, query, response, language, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID, entry.SessionID, entry.Query, entry.Response,
		entry.Language, entry.Status, entry.Timestamp,
	)
	return err
}

// ListBySession returns a session's exchanges, oldest first.
func (r *ChatLogRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	const q = `
SELECT id, session_id, query, response, language, status, created_at
FROM chat_logs
WHERE session_id = $1
ORDER BY created_at ASC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ChatLog, 0, 16)
	for rows.Next() {
		var e domain.ChatLog
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Query, &e.Response, &e.Language, &e.Status, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
