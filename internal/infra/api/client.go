package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quiz-host/internal/domain"
)

// Client talks to the quiz backend over its REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type scorePayload struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

type resetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// LoadQuiz reads GET /api/questions.
func (c *Client) LoadQuiz(ctx context.Context) (domain.QuizData, error) {
	var data domain.QuizData
	if err := c.getJSON(ctx, "/api/questions", &data); err != nil {
		return domain.QuizData{}, err
	}
	return data, nil
}

// Rounds reads GET /api/rounds.
func (c *Client) Rounds(ctx context.Context) ([]domain.Round, error) {
	var rounds []domain.Round
	if err := c.getJSON(ctx, "/api/rounds", &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// Scores reads GET /api/scores.
func (c *Client) Scores(ctx context.Context) (map[string]int, error) {
	scores := map[string]int{}
	if err := c.getJSON(ctx, "/api/scores", &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// SubmitScore posts a point delta for a team.
func (c *Client) SubmitScore(ctx context.Context, team string, points int) error {
	body, err := json.Marshal(scorePayload{Team: team, Points: points})
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/scores", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("post /api/scores: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// ResetScores posts /api/reset_scores. Anything other than an OK response
// with status "success" is reported as domain.ErrResetFailed.
func (c *Client) ResetScores(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/reset_scores", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result resetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrResetFailed, err)
	}
	if resp.StatusCode/100 != 2 || result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = "Server responded with an error."
		}
		return fmt.Errorf("%w: %s", domain.ErrResetFailed, msg)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	return resp, nil
}
