package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quiz-host/internal/domain"
)

// QuizSource loads the full quiz document (rounds and team roster).
type QuizSource interface {
	LoadQuiz(ctx context.Context) (domain.QuizData, error)
}

// RoundSource lists rounds for the selection menu.
type RoundSource interface {
	Rounds(ctx context.Context) ([]domain.Round, error)
}

// LoadResult distinguishes real data from fallback defaults.
type LoadResult struct {
	Data     domain.QuizData
	Degraded bool
	Err      error
}

// MenuData is what the selection dropdowns are built from.
type MenuData struct {
	Teams  []string
	Rounds []domain.Round
	// Degraded is set if either read fell back to defaults.
	Degraded bool
}

// Loader reads quiz content and absorbs transport failures into defaults.
type Loader struct {
	quizzes QuizSource
	rounds  RoundSource
	log     *zap.Logger
}

func NewLoader(quizzes QuizSource, rounds RoundSource, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{quizzes: quizzes, rounds: rounds, log: logger}
}

// Load fetches rounds and teams. It never fails: on error the result carries
// no rounds, the default roster and Degraded=true.
func (l *Loader) Load(ctx context.Context) LoadResult {
	data, err := l.quizzes.LoadQuiz(ctx)
	if err != nil {
		l.log.Warn("load quiz data failed, using defaults", zap.Error(err))
		return LoadResult{
			Data:     domain.QuizData{Rounds: []domain.Round{}, Teams: domain.DefaultTeams()},
			Degraded: true,
			Err:      err,
		}
	}
	if data.Rounds == nil {
		data.Rounds = []domain.Round{}
	}
	if len(data.Teams) == 0 {
		data.Teams = domain.DefaultTeams()
	}
	return LoadResult{Data: data}
}

// Menu reads the roster and the round list concurrently.
func (l *Loader) Menu(ctx context.Context) MenuData {
	var (
		quiz   LoadResult
		rounds []domain.Round
		failed bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quiz = l.Load(gctx)
		return nil
	})
	g.Go(func() error {
		var err error
		rounds, err = l.rounds.Rounds(gctx)
		if err != nil {
			l.log.Warn("load rounds failed", zap.Error(err))
			rounds = nil
			failed = true
		}
		return nil
	})
	_ = g.Wait()

	return MenuData{
		Teams:    quiz.Data.Teams,
		Rounds:   rounds,
		Degraded: quiz.Degraded || failed,
	}
}
