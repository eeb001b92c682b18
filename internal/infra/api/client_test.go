package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"quiz-host/internal/domain"
)

const questionsJSON = `{
  "teams": ["Red", "Blue"],
  "rounds": [
    {"name": "Round 1", "type": "topic", "topics": [
      {"name": "History", "questions": [{"question": "Q1", "options": ["A", "B"], "answer": 1}],
       "teamQuestions": {"Red": [{"question": "Red Q", "answer": "Rome"}]}}
    ]},
    {"name": "Round 2", "type": "multimedia", "questions": [{"question": "Tune?", "audio": "a/t.mp3", "timer": 20}]}
  ]
}`

const roundsJSON = `[
  {"name": "Round 1", "type": "topic", "topics": ["History", "Science"]},
  {"name": "Round 2", "type": "multimedia"},
  {"name": "Round 3"}
]`

type fakeBackend struct {
	mu          sync.Mutex
	posted      []scorePayload
	resetStatus int
	resetBody   string
	scoreStatus int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/questions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(questionsJSON))
	})
	mux.HandleFunc("/api/rounds", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(roundsJSON))
	})
	mux.HandleFunc("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"Red": 70, "Blue": -20}`))
			return
		}
		var p scorePayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		b.posted = append(b.posted, p)
		status := b.scoreStatus
		b.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/reset_scores", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if b.resetStatus != 0 {
			w.WriteHeader(b.resetStatus)
		}
		_, _ = w.Write([]byte(b.resetBody))
	})
	return mux
}

func newTestClient(t *testing.T, b *fakeBackend) *Client {
	t.Helper()
	server := httptest.NewServer(b.handler())
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", time.Second)
}

func TestLoadQuizDecodesRoundsAndAnswers(t *testing.T) {
	client := newTestClient(t, &fakeBackend{})

	data, err := client.LoadQuiz(context.Background())
	if err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if len(data.Teams) != 2 || len(data.Rounds) != 2 {
		t.Fatalf("unexpected data %+v", data)
	}
	topic := data.Rounds[0].Topics[0]
	if topic.Name != "History" || !topic.Questions[0].Answer.Matches(1) {
		t.Fatalf("unexpected topic %+v", topic)
	}
	red := topic.TeamQuestions["Red"][0]
	if red.Answer.Display(nil) != "Rome" {
		t.Fatalf("expected literal answer Rome, got %q", red.Answer.Display(nil))
	}
	if q := data.Rounds[1].Questions[0]; q.Audio != "a/t.mp3" || q.TimerSeconds() != 20 {
		t.Fatalf("unexpected multimedia question %+v", q)
	}
}

func TestRoundsAcceptsTopicNames(t *testing.T) {
	client := newTestClient(t, &fakeBackend{})

	rounds, err := client.Rounds(context.Background())
	if err != nil {
		t.Fatalf("rounds: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	if names := rounds[0].TopicNames(); len(names) != 2 || names[1] != "Science" {
		t.Fatalf("unexpected topics %v", names)
	}
	if names := rounds[1].TopicNames(); len(names) != 2 || names[0] != domain.TopicAudio {
		t.Fatalf("expected Audio/Image for multimedia, got %v", names)
	}
	if names := rounds[2].TopicNames(); len(names) != 0 {
		t.Fatalf("expected no topics, got %v", names)
	}
}

func TestScoresAndSubmit(t *testing.T) {
	backend := &fakeBackend{}
	client := newTestClient(t, backend)
	ctx := context.Background()

	scores, err := client.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if scores["Red"] != 70 || scores["Blue"] != -20 {
		t.Fatalf("unexpected scores %v", scores)
	}

	if err := client.SubmitScore(ctx, "Red", -20); err != nil {
		t.Fatalf("submit: %v", err)
	}
	backend.mu.Lock()
	posted := append([]scorePayload(nil), backend.posted...)
	backend.scoreStatus = http.StatusInternalServerError
	backend.mu.Unlock()
	if len(posted) != 1 || posted[0] != (scorePayload{Team: "Red", Points: -20}) {
		t.Fatalf("unexpected posted payloads %+v", posted)
	}

	if err := client.SubmitScore(ctx, "Red", 50); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestResetScores(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "success", body: `{"status":"success"}`},
		{name: "status fail", body: `{"status":"fail"}`, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"status":"success"}`, wantErr: true},
		{name: "malformed body", body: `oops`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, &fakeBackend{resetStatus: tc.status, resetBody: tc.body})
			err := client.ResetScores(context.Background())
			if tc.wantErr && !errors.Is(err, domain.ErrResetFailed) {
				t.Fatalf("expected reset failure, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, 200*time.Millisecond)
	if _, err := client.LoadQuiz(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
	if _, err := client.Scores(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
}
