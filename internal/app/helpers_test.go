package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"quiz-host/internal/app"
	"quiz-host/internal/domain"
)

type staticSource struct {
	data domain.QuizData
	err  error
}

func (s *staticSource) LoadQuiz(context.Context) (domain.QuizData, error) {
	return s.data, s.err
}

func (s *staticSource) Rounds(context.Context) ([]domain.Round, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data.Rounds, nil
}

type submission struct {
	Team   string
	Points int
}

type fakeScores struct {
	mu          sync.Mutex
	totals      map[string]int
	err         error
	resetErr    error
	submissions []submission
	resets      int
}

func (f *fakeScores) Scores(context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]int, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out, nil
}

func (f *fakeScores) SubmitScore(_ context.Context, team string, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, submission{Team: team, Points: points})
	if f.totals == nil {
		f.totals = map[string]int{}
	}
	f.totals[team] += points
	return nil
}

func (f *fakeScores) ResetScores(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if f.resetErr != nil {
		return f.resetErr
	}
	f.totals = map[string]int{}
	return nil
}

func (f *fakeScores) Submissions() []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submission(nil), f.submissions...)
}

func (f *fakeScores) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type recorder struct {
	mu      sync.Mutex
	views   []domain.View
	boards  []domain.Scoreboard
	menus   []domain.Menu
	resets  []domain.ResetButton
	notices []string
}

func (r *recorder) RenderView(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) RenderScoreboard(b domain.Scoreboard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = append(r.boards, b)
}

func (r *recorder) RenderMenu(m domain.Menu) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus = append(r.menus, m)
}

func (r *recorder) RenderReset(b domain.ResetButton) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, b)
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

func (r *recorder) Views() []domain.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.View(nil), r.views...)
}

func (r *recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}

func (r *recorder) Resets() []domain.ResetButton {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ResetButton(nil), r.resets...)
}

func (r *recorder) LastBoard() domain.Scoreboard {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.boards) == 0 {
		return domain.Scoreboard{}
	}
	return r.boards[len(r.boards)-1]
}

// manualTicker hands out tickers that only fire when the test says so.
type manualTicker struct {
	mu      sync.Mutex
	chans   []chan time.Time
	stopped []bool
}

func (m *manualTicker) New(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time)
	idx := len(m.chans)
	m.chans = append(m.chans, ch)
	m.stopped = append(m.stopped, false)
	return ch, func() {
		m.mu.Lock()
		m.stopped[idx] = true
		m.mu.Unlock()
	}
}

// Live reports how many tickers have been started and not stopped.
func (m *manualTicker) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := 0
	for _, s := range m.stopped {
		if !s {
			live++
		}
	}
	return live
}

func (m *manualTicker) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chans)
}

// Tick fires the most recent ticker once.
func (m *manualTicker) Tick(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	if len(m.chans) == 0 {
		m.mu.Unlock()
		t.Fatalf("no ticker started")
	}
	ch := m.chans[len(m.chans)-1]
	m.mu.Unlock()

	select {
	case ch <- time.Now():
	case <-time.After(2 * time.Second):
		t.Fatalf("countdown did not receive tick")
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

type harness struct {
	ctrl   *app.Controller
	source *staticSource
	scores *fakeScores
	out    *recorder
	ticker *manualTicker
}

func newHarness(t *testing.T, data domain.QuizData) *harness {
	t.Helper()
	h := &harness{
		source: &staticSource{data: data},
		scores: &fakeScores{totals: map[string]int{}},
		out:    &recorder{},
		ticker: &manualTicker{},
	}
	h.ctrl = app.NewControllerWithTicker(app.Deps{
		Quizzes:  h.source,
		Rounds:   h.source,
		Scores:   h.scores,
		Renderer: h.out,
	}, h.ticker.New)
	t.Cleanup(h.ctrl.Stop)
	if err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return h
}

func historyQuiz() domain.QuizData {
	return domain.QuizData{
		Teams: []string{"Alpha", "Bravo"},
		Rounds: []domain.Round{
			{
				Name: "Round 1",
				Type: domain.RoundTopic,
				Topics: []domain.Topic{
					{
						Name: "History",
						Questions: []domain.Question{
							{Question: "Q1", Options: []string{"A", "B"}, Answer: domain.IndexAnswer(1)},
							{Question: "Q2", Options: []string{"C", "D"}, Answer: domain.IndexAnswer(0), Timer: 2},
							{Question: "Q3"},
						},
					},
				},
			},
			{
				Name: "Round 2",
				Type: domain.RoundMultimedia,
				Questions: []domain.Question{
					{Question: "Name the tune", Audio: "audio/tune.mp3"},
					{Question: "Whose face?", Image: "img/face.png", Timer: 45},
				},
			},
			{
				Name: "Round 3",
				Type: domain.RoundCommon,
				Questions: []domain.Question{
					{Question: "Capital of France?", Answer: domain.TextAnswer("Paris")},
				},
			},
		},
	}
}
