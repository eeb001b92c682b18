package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quiz-host/internal/app"
)

// ErrQuit is returned by Parse for the quit command.
var ErrQuit = errors.New("quit")

const usage = `commands:
  round N          select round N
  topic NAME       select a topic
  team NAME        select the answering team
  show             show the first question
  next | prev      move between questions
  reveal           toggle the common-round answer
  pick N           choose option N
  right | wrong    judge a multimedia answer
  award TEAM PTS   award (or deduct) points in a common round
  reset            reset all scores
  help | quit`

// Parse turns one console line into an action.
func Parse(line string) (app.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return app.Action{}, errors.New("empty command")
	}
	cmd := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "round":
		n, err := intArg(cmd, rest)
		if err != nil {
			return app.Action{}, err
		}
		return app.Action{Type: app.ActSelectRound, Index: n}, nil
	case "topic":
		if rest == "" {
			return app.Action{}, errors.New("topic: name required")
		}
		return app.Action{Type: app.ActSelectTopic, Topic: rest}, nil
	case "team":
		if rest == "" {
			return app.Action{}, errors.New("team: name required")
		}
		return app.Action{Type: app.ActSelectTeam, Team: rest}, nil
	case "show":
		return app.Action{Type: app.ActShowQuestion}, nil
	case "next", "n":
		return app.Action{Type: app.ActNextQuestion}, nil
	case "prev", "previous", "p":
		return app.Action{Type: app.ActPreviousQuestion}, nil
	case "reveal", "answer":
		return app.Action{Type: app.ActToggleAnswer}, nil
	case "pick":
		n, err := intArg(cmd, rest)
		if err != nil {
			return app.Action{}, err
		}
		return app.Action{Type: app.ActChooseOption, Index: n}, nil
	case "right":
		return app.Action{Type: app.ActJudge, Right: true}, nil
	case "wrong":
		return app.Action{Type: app.ActJudge, Right: false}, nil
	case "award":
		// team names may contain spaces, points are always last
		if len(fields) < 3 {
			return app.Action{}, errors.New("award: usage award TEAM POINTS")
		}
		points, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return app.Action{}, fmt.Errorf("award: points %q: %w", fields[len(fields)-1], err)
		}
		team := strings.Join(fields[1:len(fields)-1], " ")
		return app.Action{Type: app.ActAwardTeam, Team: team, Points: points}, nil
	case "reset":
		return app.Action{Type: app.ActResetScores}, nil
	case "quit", "exit", "q":
		return app.Action{}, ErrQuit
	default:
		return app.Action{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func intArg(cmd, raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s: number required", cmd)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", cmd, raw)
	}
	return n, nil
}
