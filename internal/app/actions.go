package app

import (
	"context"
	"fmt"
)

// ActionType names an operator control.
type ActionType string

const (
	ActSelectRound      ActionType = "select_round"
	ActSelectTopic      ActionType = "select_topic"
	ActSelectTeam       ActionType = "select_team"
	ActShowQuestion     ActionType = "show_question"
	ActNextQuestion     ActionType = "next_question"
	ActPreviousQuestion ActionType = "previous_question"
	ActToggleAnswer     ActionType = "toggle_answer"
	ActChooseOption     ActionType = "choose_option"
	ActJudge            ActionType = "judge"
	ActAwardTeam        ActionType = "award_team"
	ActResetScores      ActionType = "reset_scores"
)

// Action is one operator input, decoded from any surface.
type Action struct {
	Type   ActionType `json:"type"`
	Index  int        `json:"index,omitempty"`
	Topic  string     `json:"topic,omitempty"`
	Team   string     `json:"team,omitempty"`
	Points int        `json:"points,omitempty"`
	Right  bool       `json:"right,omitempty"`
}

// Dispatch runs the action against the controller.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a.Type {
	case ActSelectRound:
		return c.SelectRound(ctx, a.Index)
	case ActSelectTopic:
		return c.SelectTopic(ctx, a.Topic)
	case ActSelectTeam:
		return c.SelectTeam(ctx, a.Team)
	case ActShowQuestion:
		return c.ShowQuestion(ctx)
	case ActNextQuestion:
		return c.NextQuestion(ctx)
	case ActPreviousQuestion:
		return c.PreviousQuestion(ctx)
	case ActToggleAnswer:
		return c.ToggleAnswer()
	case ActChooseOption:
		return c.ChooseOption(ctx, a.Index)
	case ActJudge:
		return c.Judge(ctx, a.Right)
	case ActAwardTeam:
		return c.AwardTeam(ctx, a.Team, a.Points)
	case ActResetScores:
		return c.ResetScores(ctx)
	default:
		return fmt.Errorf("unsupported action %q", a.Type)
	}
}
