package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-host/internal/app"
	"quiz-host/internal/domain"
)

const quizKey = "quiz"

// QuizRepository coalesces concurrent reads of the quiz document and, when a
// TTL is set, caches the result. A zero TTL always reads through.
type QuizRepository struct {
	source app.QuizSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu     sync.RWMutex
	cached *cachedQuiz
}

type cachedQuiz struct {
	data      domain.QuizData
	expiresAt time.Time
}

func NewQuizRepository(source app.QuizSource, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuizRepository) LoadQuiz(ctx context.Context) (domain.QuizData, error) {
	if data, ok := r.fresh(r.clock()); ok {
		return data, nil
	}

	result, err, _ := r.sf.Do(quizKey, func() (interface{}, error) {
		now := r.clock()
		if data, ok := r.fresh(now); ok {
			return data, nil
		}

		data, err := r.source.LoadQuiz(ctx)
		if err != nil {
			return domain.QuizData{}, err
		}

		if ttl := r.ttlWithJitter(); ttl > 0 {
			r.mu.Lock()
			r.cached = &cachedQuiz{data: data, expiresAt: now.Add(ttl)}
			r.mu.Unlock()
		}
		return data, nil
	})
	if err != nil {
		return domain.QuizData{}, err
	}
	return result.(domain.QuizData), nil
}

func (r *QuizRepository) fresh(now time.Time) (domain.QuizData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached != nil && r.cached.expiresAt.After(now) {
		return r.cached.data, true
	}
	return domain.QuizData{}, false
}

// StaticQuizSource serves a fixed quiz document (useful for tests/demos).
type StaticQuizSource struct {
	data domain.QuizData
}

func NewStaticQuizSource(data domain.QuizData) *StaticQuizSource {
	return &StaticQuizSource{data: data}
}

func (s *StaticQuizSource) LoadQuiz(context.Context) (domain.QuizData, error) {
	return s.data, nil
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
