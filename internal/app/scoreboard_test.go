package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-host/internal/app"
)

func TestScoreboardFallsBackToZero(t *testing.T) {
	ctx := context.Background()
	scores := &fakeScores{totals: map[string]int{"Alpha": 100, "Charlie": 30}}
	out := &recorder{}
	board := app.NewScoreboard(scores, out, nil)

	got := board.Refresh(ctx)
	want := map[string]int{"Alpha": 100, "Bravo": 0, "Charlie": 30, "Delta": 0}
	if len(got.Entries) != 4 || got.Degraded {
		t.Fatalf("unexpected board %+v", got)
	}
	for _, e := range got.Entries {
		if e.Score != want[e.Team] {
			t.Fatalf("team %s: expected %d, got %d", e.Team, want[e.Team], e.Score)
		}
	}

	scores.setErr(errors.New("timeout"))
	got = board.Refresh(ctx)
	if !got.Degraded {
		t.Fatalf("expected degraded board")
	}
	for _, e := range got.Entries {
		if e.Score != 0 {
			t.Fatalf("expected zero for %s after failed fetch, got %d", e.Team, e.Score)
		}
	}
}

func TestScoreboardDropsStaleResponses(t *testing.T) {
	ctx := context.Background()
	reader := &gatedReader{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	out := &recorder{}
	board := app.NewScoreboard(reader, out, nil)
	board.SetTeams([]string{"Alpha"})

	slow := make(chan struct{})
	go func() {
		defer close(slow)
		board.Refresh(ctx) // first call blocks in the reader
	}()
	<-reader.entered

	fresh := board.Refresh(ctx)
	if fresh.Entries[0].Score != 2 {
		t.Fatalf("expected fresh total 2, got %+v", fresh)
	}

	close(reader.release)
	select {
	case <-slow:
	case <-time.After(2 * time.Second):
		t.Fatalf("slow refresh did not finish")
	}

	if last := board.Last(); last.Entries[0].Score != 2 {
		t.Fatalf("stale response overwrote board: %+v", last)
	}
	out.mu.Lock()
	published := len(out.boards)
	out.mu.Unlock()
	if published != 1 {
		t.Fatalf("expected only the fresh board published, got %d", published)
	}
}

func TestScoreboardRunPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &recorder{}
	board := app.NewScoreboard(&fakeScores{}, out, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		board.Run(ctx, 5*time.Millisecond)
	}()

	eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		return len(out.boards) >= 2
	})
	cancel()
	<-done
}

// gatedReader blocks its first call until released and answers later calls
// immediately.
type gatedReader struct {
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *gatedReader) Scores(context.Context) (map[string]int, error) {
	g.calls++
	if g.calls == 1 {
		close(g.entered)
		<-g.release
		return map[string]int{"Alpha": 1}, nil
	}
	return map[string]int{"Alpha": 2}, nil
}
