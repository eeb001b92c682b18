package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-host/internal/domain"
)

// SnapshotWriter upserts quiz documents into quiz_snapshots.
type SnapshotWriter struct {
	db *bun.DB
}

func NewSnapshotWriter(db *bun.DB) *SnapshotWriter {
	return &SnapshotWriter{db: db}
}

func (w *SnapshotWriter) Save(ctx context.Context, id string, data domain.QuizData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal quiz snapshot: %w", err)
	}
	_, err = w.db.ExecContext(ctx,
		`INSERT INTO quiz_snapshots (id, data, updated_at) VALUES (?, ?::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		id, string(raw))
	if err != nil {
		return fmt.Errorf("save quiz snapshot %q: %w", id, err)
	}
	return nil
}
