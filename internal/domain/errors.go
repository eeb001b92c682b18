package domain

import "errors"

var (
	// ErrNoQuestions is returned when the current selection resolves to nothing.
	ErrNoQuestions = errors.New("no questions available")
	// ErrEndOfQuestions is returned when navigating past the last question.
	ErrEndOfQuestions = errors.New("end of questions for this round/topic")
	// ErrFirstQuestion is returned when navigating before the first question.
	ErrFirstQuestion = errors.New("already at the first question")
	// ErrNoQuestionShown indicates an answer action with no interactive question on screen.
	ErrNoQuestionShown = errors.New("no question is being shown")
	// ErrWrongWidget indicates an action that the current question does not offer.
	ErrWrongWidget = errors.New("action not available for this question")
	// ErrWidgetDisabled indicates a press on a disabled button.
	ErrWidgetDisabled = errors.New("control is disabled")
	// ErrRoundNotFound indicates a round index outside the loaded rounds.
	ErrRoundNotFound = errors.New("round not found")
	// ErrUnknownTopic indicates a topic the current round does not offer.
	ErrUnknownTopic = errors.New("topic not offered by round")
	// ErrUnknownTeam indicates a team name that is not on the roster.
	ErrUnknownTeam = errors.New("team not on roster")
	// ErrResetFailed is returned when the backend refuses to reset scores.
	ErrResetFailed = errors.New("reset scores failed")
	// ErrSnapshotNotFound indicates the configured quiz snapshot row is missing.
	ErrSnapshotNotFound = errors.New("quiz snapshot not found")
)
