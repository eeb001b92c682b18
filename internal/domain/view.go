package domain

// QuestionState is the lifecycle stage of the question on screen.
type QuestionState string

const (
	StateLoading  QuestionState = "loading"
	StateRendered QuestionState = "rendered"
	StateAnswered QuestionState = "answered"
	StateTimedOut QuestionState = "timed_out"
	StateEmpty    QuestionState = "empty"
	StateEnd      QuestionState = "end"
)

// WidgetKind is the interaction offered for a question.
type WidgetKind string

const (
	WidgetNone     WidgetKind = ""
	WidgetTeams    WidgetKind = "teams"    // per-team award/deduct pairs
	WidgetJudgment WidgetKind = "judgment" // Right/Wrong for the selected team
	WidgetChoice   WidgetKind = "choice"   // one button per option
	WidgetFreeText WidgetKind = "free_text"
)

// OptionMark is the highlight applied to an option after an answer.
type OptionMark string

const (
	MarkNone    OptionMark = ""
	MarkCorrect OptionMark = "correct"
	MarkWrong   OptionMark = "wrong"
)

// OptionButton is one multiple-choice button.
type OptionButton struct {
	Index    int        `json:"index"`
	Label    string     `json:"label"`
	Disabled bool       `json:"disabled"`
	Mark     OptionMark `json:"mark,omitempty"`
}

// TeamPair is the award/deduct pair shown for one team in a common round.
type TeamPair struct {
	Team     string `json:"team"`
	Award    int    `json:"award"`
	Deduct   int    `json:"deduct"`
	Disabled bool   `json:"disabled"`
}

// JudgmentPair is the Right/Wrong pair for the selected team.
type JudgmentPair struct {
	Team     string `json:"team"`
	Disabled bool   `json:"disabled"`
}

// AnswerReveal is the operator-only toggle for a common round's answer.
type AnswerReveal struct {
	Answer   string `json:"answer"`
	Visible  bool   `json:"visible"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// View is a complete snapshot of the question area.
type View struct {
	State    QuestionState `json:"state"`
	Number   int           `json:"number,omitempty"` // 1-based
	Total    int           `json:"total,omitempty"`
	Question string        `json:"question,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
	AudioURL string        `json:"audioUrl,omitempty"`
	Widget   WidgetKind    `json:"widget,omitempty"`

	Options  []OptionButton `json:"options,omitempty"`
	Choices  []string       `json:"choices,omitempty"` // plain option text in common rounds
	Teams    []TeamPair     `json:"teams,omitempty"`
	Judgment *JudgmentPair  `json:"judgment,omitempty"`
	Reveal   *AnswerReveal  `json:"reveal,omitempty"`

	Feedback string `json:"feedback,omitempty"`
	Timer    string `json:"timer"`
	Message  string `json:"message,omitempty"`
}

// Clone returns a deep copy safe to hand to renderers.
func (v View) Clone() View {
	out := v
	out.Options = append([]OptionButton(nil), v.Options...)
	out.Choices = append([]string(nil), v.Choices...)
	out.Teams = append([]TeamPair(nil), v.Teams...)
	if v.Judgment != nil {
		j := *v.Judgment
		out.Judgment = &j
	}
	if v.Reveal != nil {
		r := *v.Reveal
		out.Reveal = &r
	}
	return out
}

// ResetButton is the state of the reset-scores control.
type ResetButton struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Labels of the reset-scores control.
const (
	ResetLabel     = "Reset Scores"
	ResettingLabel = "Resetting..."
)

// Operator-facing texts.
const (
	MessageNoQuestions  = "No questions available."
	MessageEndQuestions = "End of questions."
	NoticeEndOfRound    = "End of questions for this round/topic."
	NoticeFirstQuestion = "This is the first question."
	NoticeResetFailed   = "An error occurred while resetting scores. Please check the console and try again."
	TimerExpired        = "Time Up!"
)
