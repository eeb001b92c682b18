package app

import (
	"fmt"
	"strings"

	"quiz-host/internal/domain"
)

// buildView lays out the question at sel.QuestionIndex. The returned question
// is nil for the logical-empty states.
func buildView(rounds []domain.Round, sel domain.Selection, teams []string) (domain.View, *domain.Question) {
	questions := ResolveQuestions(rounds, sel.RoundIndex, sel.Topic, sel.Team)
	if len(questions) == 0 {
		return domain.View{State: domain.StateEmpty, Message: domain.MessageNoQuestions}, nil
	}
	if sel.QuestionIndex < 0 || sel.QuestionIndex >= len(questions) {
		return domain.View{State: domain.StateEnd, Message: domain.MessageEndQuestions}, nil
	}

	q := questions[sel.QuestionIndex]
	view := domain.View{
		State:    domain.StateRendered,
		Number:   sel.QuestionIndex + 1,
		Total:    len(questions),
		Question: q.Question,
		ImageURL: assetURL(q.Image),
		AudioURL: assetURL(q.Audio),
		Timer:    FormatClock(q.TimerSeconds()),
	}

	var roundType domain.RoundType
	if sel.RoundIndex >= 0 && sel.RoundIndex < len(rounds) {
		roundType = rounds[sel.RoundIndex].Type
	}

	switch {
	case roundType == domain.RoundCommon:
		view.Widget = domain.WidgetTeams
		view.Reveal = &domain.AnswerReveal{
			Answer: q.Answer.Display(q.Options),
			Label:  "Show Answer",
		}
		view.Choices = append([]string(nil), q.Options...)
		view.Teams = make([]domain.TeamPair, 0, len(teams))
		for _, team := range teams {
			view.Teams = append(view.Teams, domain.TeamPair{
				Team:   team,
				Award:  domain.PointsRight,
				Deduct: domain.PointsWrong,
			})
		}
	case roundType == domain.RoundMultimedia && q.HasMedia():
		view.Widget = domain.WidgetJudgment
		view.Judgment = &domain.JudgmentPair{Team: sel.Team}
	case len(q.Options) > 0:
		view.Widget = domain.WidgetChoice
		view.Options = make([]domain.OptionButton, 0, len(q.Options))
		for i, opt := range q.Options {
			view.Options = append(view.Options, domain.OptionButton{Index: i, Label: opt})
		}
	default:
		view.Widget = domain.WidgetFreeText
	}

	return view, &q
}

func assetURL(path string) string {
	if path == "" {
		return ""
	}
	return "/" + strings.TrimPrefix(path, "/")
}

// disableAll turns off every button in the question area.
func disableAll(v *domain.View) {
	for i := range v.Options {
		v.Options[i].Disabled = true
	}
	for i := range v.Teams {
		v.Teams[i].Disabled = true
	}
	if v.Judgment != nil {
		v.Judgment.Disabled = true
	}
	if v.Reveal != nil {
		v.Reveal.Disabled = true
	}
}

func choiceFeedback(correct bool, answer string) string {
	if correct {
		return fmt.Sprintf("Correct! (+%d points)", domain.PointsRight)
	}
	return fmt.Sprintf("Incorrect. (%d points). Correct answer: %s", domain.PointsWrong, answer)
}

func judgmentFeedback(right bool) string {
	if right {
		return fmt.Sprintf("Correct! (+%d points)", domain.PointsRight)
	}
	return fmt.Sprintf("Incorrect. (%d points)", domain.PointsWrong)
}

func awardFeedback(team string, points int) string {
	return fmt.Sprintf("%+d points awarded to %s", points, team)
}
