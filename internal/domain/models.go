package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RoundType selects how a round resolves and renders its questions.
type RoundType string

const (
	RoundTopic      RoundType = "topic"
	RoundMultimedia RoundType = "multimedia"
	RoundCommon     RoundType = "common"
)

// Scoring deltas used by every judged widget.
const (
	PointsRight = 50
	PointsWrong = -20
)

// DefaultTimerSeconds applies when a question carries no timer of its own.
const DefaultTimerSeconds = 30

// Multimedia topic filters.
const (
	TopicAudio = "Audio"
	TopicImage = "Image"
)

// DefaultTeams is the roster used whenever the backend does not supply one.
func DefaultTeams() []string {
	return []string{"Alpha", "Bravo", "Charlie", "Delta"}
}

// Answer is either an index into a question's options or literal answer text.
type Answer struct {
	Index *int
	Text  string
}

// IndexAnswer builds an option-index answer.
func IndexAnswer(i int) *Answer {
	return &Answer{Index: &i}
}

// TextAnswer builds a literal answer.
func TextAnswer(s string) *Answer {
	return &Answer{Text: s}
}

// UnmarshalJSON accepts an option index or literal text. Any other value
// decodes as no answer so one malformed question does not sink the document.
func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		a.Text = text
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	if i := int(f); float64(i) == f {
		a.Index = &i
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Index != nil {
		return json.Marshal(*a.Index)
	}
	return json.Marshal(a.Text)
}

// Display returns the human-readable canonical answer for a question.
func (a *Answer) Display(options []string) string {
	if a == nil {
		return "No answer provided"
	}
	if a.Index != nil {
		if len(options) > 0 && *a.Index >= 0 && *a.Index < len(options) {
			return options[*a.Index]
		}
		return strconv.Itoa(*a.Index)
	}
	if a.Text == "" {
		return "No answer provided"
	}
	return a.Text
}

// Matches reports whether the option at idx is the stored answer.
// A literal text answer never matches an option.
func (a *Answer) Matches(idx int) bool {
	return a != nil && a.Index != nil && *a.Index == idx
}

// Question is a single quiz item.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   *Answer  `json:"answer,omitempty"`
	Image    string   `json:"image,omitempty"`
	Audio    string   `json:"audio,omitempty"`
	Timer    Seconds  `json:"timer,omitempty"` // DefaultTimerSeconds if zero
}

// TimerSeconds returns the countdown length for the question.
func (q Question) TimerSeconds() int {
	if q.Timer > 0 {
		return int(q.Timer)
	}
	return DefaultTimerSeconds
}

// HasMedia reports whether the question carries an image or audio asset.
func (q Question) HasMedia() bool {
	return q.Image != "" || q.Audio != ""
}

// Seconds is a question timer. Numeric strings are accepted; anything else
// decodes as 0, which means the default.
type Seconds int

func (s *Seconds) UnmarshalJSON(data []byte) error {
	*s = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Seconds(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			*s = Seconds(n)
		}
	}
	return nil
}

// Topic is a named sub-category of a round.
type Topic struct {
	Name          string                `json:"name"`
	Questions     []Question            `json:"questions,omitempty"`
	TeamQuestions map[string][]Question `json:"teamQuestions,omitempty"`
}

// UnmarshalJSON accepts both the bare topic name served by /api/rounds and
// the full topic object served by /api/questions.
func (t *Topic) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = Topic{Name: name}
		return nil
	}
	type plain Topic
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Topic(p)
	return nil
}

// Round is a named stage of the quiz.
type Round struct {
	Name          string                `json:"name"`
	Type          RoundType             `json:"type,omitempty"`
	Topics        []Topic               `json:"topics,omitempty"`
	Questions     []Question            `json:"questions,omitempty"`
	TeamQuestions map[string][]Question `json:"teamQuestions,omitempty"`
}

// TopicNames lists the selectable topics for the round. Multimedia rounds
// without explicit topics offer the Audio/Image filters.
func (r Round) TopicNames() []string {
	if len(r.Topics) > 0 {
		names := make([]string, 0, len(r.Topics))
		for _, t := range r.Topics {
			names = append(names, t.Name)
		}
		return names
	}
	if r.Type == RoundMultimedia {
		return []string{TopicAudio, TopicImage}
	}
	return nil
}

// QuizData is the payload of /api/questions.
type QuizData struct {
	Rounds []Round  `json:"rounds"`
	Teams  []string `json:"teams"`
}

// Selection is the operator's current position in the quiz.
type Selection struct {
	RoundIndex    int    `json:"roundIndex"`
	Topic         string `json:"topic"`
	Team          string `json:"team"`
	QuestionIndex int    `json:"questionIndex"`
}

// ScoreEntry is one team's total on the scoreboard.
type ScoreEntry struct {
	Team  string `json:"team"`
	Score int    `json:"score"`
}

// Scoreboard is the rendered team totals in roster order.
type Scoreboard struct {
	Entries []ScoreEntry `json:"entries"`
	// Degraded is set when the totals could not be fetched and every team shows 0.
	Degraded bool `json:"degraded"`
}

// RoundOption is one entry of the round dropdown.
type RoundOption struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Menu holds the values offered by the selection dropdowns.
type Menu struct {
	Rounds []RoundOption `json:"rounds"`
	Topics []string      `json:"topics"`
	Teams  []string      `json:"teams"`
}
