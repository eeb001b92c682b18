package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-host/internal/domain"
)

// QuizLoader reads a quiz document ({rounds, teams}) stored as JSONB in
// quiz_snapshots. It stands in for GET /api/questions.
type QuizLoader struct {
	pool       *pgxpool.Pool
	snapshotID string
}

func NewQuizLoader(pool *pgxpool.Pool, snapshotID string) *QuizLoader {
	return &QuizLoader{pool: pool, snapshotID: snapshotID}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context) (domain.QuizData, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quiz_snapshots WHERE id=$1`, l.snapshotID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizData{}, fmt.Errorf("snapshot %q: %w", l.snapshotID, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("load quiz snapshot: %w", err)
	}
	var data domain.QuizData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.QuizData{}, fmt.Errorf("unmarshal quiz snapshot: %w", err)
	}
	return data, nil
}

// Rounds serves the round menu from the same snapshot.
func (l *QuizLoader) Rounds(ctx context.Context) ([]domain.Round, error) {
	data, err := l.LoadQuiz(ctx)
	if err != nil {
		return nil, err
	}
	return data.Rounds, nil
}
