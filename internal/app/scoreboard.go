package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"quiz-host/internal/domain"
)

// ScoreReader fetches the current totals for all teams.
type ScoreReader interface {
	Scores(ctx context.Context) (map[string]int, error)
}

// Scoreboard renders team totals on demand and on a polling interval.
type Scoreboard struct {
	scores ScoreReader
	out    Renderer
	log    *zap.Logger

	mu        sync.Mutex
	teams     []string
	issued    uint64
	published uint64
	last      domain.Scoreboard
}

func NewScoreboard(scores ScoreReader, out Renderer, logger *zap.Logger) *Scoreboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scoreboard{
		scores: scores,
		out:    out,
		log:    logger,
		teams:  domain.DefaultTeams(),
	}
}

// SetTeams replaces the roster shown on the board.
func (b *Scoreboard) SetTeams(teams []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.teams = append([]string(nil), teams...)
}

// Last returns the most recently published board.
func (b *Scoreboard) Last() domain.Scoreboard {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneBoard(b.last)
}

// Refresh fetches totals and publishes them. A response that arrives after a
// newer refresh was already published is dropped and the newer board returned.
func (b *Scoreboard) Refresh(ctx context.Context) domain.Scoreboard {
	b.mu.Lock()
	b.issued++
	seq := b.issued
	teams := append([]string(nil), b.teams...)
	b.mu.Unlock()

	totals, err := b.scores.Scores(ctx)
	board := domain.Scoreboard{Entries: make([]domain.ScoreEntry, 0, len(teams))}
	if err != nil {
		b.log.Warn("fetch scores failed, showing zero", zap.Error(err))
		board.Degraded = true
		totals = nil
	}
	for _, team := range teams {
		board.Entries = append(board.Entries, domain.ScoreEntry{Team: team, Score: totals[team]})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.published {
		b.log.Debug("dropping stale scoreboard response", zap.Uint64("seq", seq), zap.Uint64("published", b.published))
		return cloneBoard(b.last)
	}
	b.published = seq
	b.last = board
	b.out.RenderScoreboard(cloneBoard(board))
	return cloneBoard(board)
}

// Run refreshes the board every interval until ctx is done.
func (b *Scoreboard) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Refresh(ctx)
		}
	}
}

func cloneBoard(b domain.Scoreboard) domain.Scoreboard {
	b.Entries = append([]domain.ScoreEntry(nil), b.Entries...)
	return b
}
