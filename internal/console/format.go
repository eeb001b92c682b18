package console

import (
	"fmt"
	"strings"

	"quiz-host/internal/display"
	"quiz-host/internal/domain"
)

// Format renders a frame as plain text.
func Format(f display.Frame) string {
	switch p := f.Payload.(type) {
	case domain.View:
		return formatView(p)
	case domain.Scoreboard:
		return formatScoreboard(p)
	case domain.Menu:
		return formatMenu(p)
	case domain.ResetButton:
		if p.Disabled {
			return "[" + p.Label + "]"
		}
		return "reset: " + p.Label
	case display.NoticePayload:
		return "! " + p.Message
	default:
		return fmt.Sprintf("%s: %v", f.Type, f.Payload)
	}
}

func formatView(v domain.View) string {
	var b strings.Builder
	switch v.State {
	case domain.StateLoading:
		return "loading..."
	case domain.StateEmpty, domain.StateEnd:
		return v.Message
	}

	fmt.Fprintf(&b, "Question %d/%d: %s\n", v.Number, v.Total, v.Question)
	if v.ImageURL != "" {
		fmt.Fprintf(&b, "  image: %s\n", v.ImageURL)
	}
	if v.AudioURL != "" {
		fmt.Fprintf(&b, "  audio: %s\n", v.AudioURL)
	}
	for _, o := range v.Options {
		fmt.Fprintf(&b, "  [%d] %s%s\n", o.Index, o.Label, markSuffix(o))
	}
	for i, c := range v.Choices {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
	}
	if v.Reveal != nil {
		if v.Reveal.Visible {
			fmt.Fprintf(&b, "  answer: %s\n", v.Reveal.Answer)
		} else {
			fmt.Fprintf(&b, "  answer hidden (reveal)\n")
		}
	}
	for _, t := range v.Teams {
		fmt.Fprintf(&b, "  %s: award %+d / deduct %+d%s\n", t.Team, t.Award, t.Deduct, disabledSuffix(t.Disabled))
	}
	if v.Judgment != nil {
		fmt.Fprintf(&b, "  judge %s: right / wrong%s\n", v.Judgment.Team, disabledSuffix(v.Judgment.Disabled))
	}
	if v.Widget == domain.WidgetFreeText {
		b.WriteString("  (answer aloud)\n")
	}
	if v.Feedback != "" {
		fmt.Fprintf(&b, "  %s\n", v.Feedback)
	}
	if v.Timer != "" {
		fmt.Fprintf(&b, "  timer %s", v.Timer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func markSuffix(o domain.OptionButton) string {
	switch o.Mark {
	case domain.MarkCorrect:
		return " (correct)"
	case domain.MarkWrong:
		return " (wrong)"
	}
	return ""
}

func disabledSuffix(disabled bool) string {
	if disabled {
		return " (done)"
	}
	return ""
}

func formatScoreboard(s domain.Scoreboard) string {
	parts := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		parts = append(parts, fmt.Sprintf("%s %d", e.Team, e.Score))
	}
	line := "scores: " + strings.Join(parts, " | ")
	if s.Degraded {
		line += " (offline)"
	}
	return line
}

func formatMenu(m domain.Menu) string {
	rounds := make([]string, 0, len(m.Rounds))
	for _, r := range m.Rounds {
		rounds = append(rounds, fmt.Sprintf("[%d] %s", r.Index, r.Name))
	}
	return fmt.Sprintf("rounds: %s\ntopics: %s\nteams: %s",
		strings.Join(rounds, ", "),
		strings.Join(m.Topics, ", "),
		strings.Join(m.Teams, ", "))
}
