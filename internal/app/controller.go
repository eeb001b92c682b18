package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"quiz-host/internal/domain"
)

// Renderer receives every frame the controller produces. Implementations are
// called with the controller lock held and must not block or call back into
// the controller.
type Renderer interface {
	RenderView(domain.View)
	RenderScoreboard(domain.Scoreboard)
	RenderMenu(domain.Menu)
	RenderReset(domain.ResetButton)
	Notify(message string)
}

// ScoreService is the scoring backend.
type ScoreService interface {
	ScoreReader
	SubmitScore(ctx context.Context, team string, points int) error
	ResetScores(ctx context.Context) error
}

// SelectionStore checkpoints the operator's selection (in-memory, Redis, etc).
type SelectionStore interface {
	Load(ctx context.Context) (domain.Selection, bool, error)
	Save(ctx context.Context, sel domain.Selection) error
}

// Deps wires a Controller.
type Deps struct {
	Quizzes    QuizSource
	Rounds     RoundSource
	Scores     ScoreService
	Selections SelectionStore // optional
	Renderer   Renderer
	Logger     *zap.Logger
}

// Controller drives the presentation. It owns the single session.
type Controller struct {
	loader    *Loader
	scores    ScoreService
	store     SelectionStore
	board     *Scoreboard
	out       Renderer
	log       *zap.Logger
	newTicker TickerFunc

	mu sync.Mutex
	s  session
}

// session is all mutable presentation state.
type session struct {
	sel        domain.Selection
	data       domain.QuizData
	menuRounds []domain.Round
	menu       domain.Menu
	view       domain.View
	question   *domain.Question
	reset      domain.ResetButton

	timer    *countdown
	timerGen uint64
}

// cancelCountdown stops the owned countdown, if any.
func (s *session) cancelCountdown() {
	if s.timer == nil {
		return
	}
	s.timer.cancel()
	s.timer = nil
}

func NewController(d Deps) *Controller {
	return NewControllerWithTicker(d, systemTicker)
}

// NewControllerWithTicker is test-only for driving the countdown by hand.
func NewControllerWithTicker(d Deps, ticker TickerFunc) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		loader:    NewLoader(d.Quizzes, d.Rounds, logger),
		scores:    d.Scores,
		store:     d.Selections,
		board:     NewScoreboard(d.Scores, d.Renderer, logger),
		out:       d.Renderer,
		log:       logger,
		newTicker: ticker,
		s: session{
			data:  domain.QuizData{Teams: domain.DefaultTeams()},
			view:  domain.View{State: domain.StateLoading},
			reset: domain.ResetButton{Label: domain.ResetLabel},
		},
	}
}

// Scoreboard exposes the board for polling.
func (c *Controller) Scoreboard() *Scoreboard {
	return c.board
}

// Start populates the menu, restores a checkpointed selection if one exists
// and publishes the initial frames.
func (c *Controller) Start(ctx context.Context) error {
	menu := c.loader.Menu(ctx)

	var (
		restored domain.Selection
		found    bool
	)
	if c.store != nil {
		var err error
		restored, found, err = c.store.Load(ctx)
		if err != nil {
			c.log.Warn("load selection checkpoint failed", zap.Error(err))
			found = false
		}
	}

	var data LoadResult
	if found {
		data = c.loader.Load(ctx)
	}

	c.mu.Lock()
	c.s.menuRounds = menu.Rounds
	c.s.data.Teams = menu.Teams
	c.s.menu = domain.Menu{
		Rounds: roundOptions(menu.Rounds),
		Teams:  append([]string(nil), menu.Teams...),
	}
	if found {
		c.s.sel = restored
		c.s.data = data.Data
		c.s.menu.Topics = c.topicsLocked(restored.RoundIndex)
		c.log.Info("resuming from checkpoint",
			zap.Int("round", restored.RoundIndex),
			zap.String("topic", restored.Topic),
			zap.String("team", restored.Team),
			zap.Int("question", restored.QuestionIndex))
		c.renderLocked()
	} else {
		c.s.menu.Topics = c.topicsLocked(0)
		c.s.sel = domain.Selection{Topic: first(c.s.menu.Topics), Team: first(menu.Teams)}
		c.publishViewLocked()
	}
	c.board.SetTeams(c.s.data.Teams)
	c.out.RenderMenu(cloneMenu(c.s.menu))
	c.out.RenderReset(c.s.reset)
	c.mu.Unlock()

	c.board.Refresh(ctx)
	return nil
}

// Stop cancels the running countdown.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.cancelCountdown()
}

// Selection returns the current selection.
func (c *Controller) Selection() domain.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.sel
}

// View returns a copy of the question area.
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.view.Clone()
}

// Menu returns a copy of the dropdown contents.
func (c *Controller) Menu() domain.Menu {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMenu(c.s.menu)
}

// ResetButton returns the reset control state.
func (c *Controller) ResetButton() domain.ResetButton {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.reset
}

// TimerRunning reports whether a countdown is active.
func (c *Controller) TimerRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.timer != nil
}

// SelectRound switches round, offers its topics and selects the first one.
func (c *Controller) SelectRound(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.s.menuRounds) {
		c.mu.Unlock()
		return fmt.Errorf("round %d: %w", index, domain.ErrRoundNotFound)
	}
	c.s.sel.RoundIndex = index
	c.s.menu.Topics = c.topicsLocked(index)
	c.s.sel.Topic = first(c.s.menu.Topics)
	c.s.sel.QuestionIndex = 0
	c.out.RenderMenu(cloneMenu(c.s.menu))
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	return nil
}

// SelectTopic picks a topic of the current round.
func (c *Controller) SelectTopic(ctx context.Context, topic string) error {
	c.mu.Lock()
	if !contains(c.s.menu.Topics, topic) {
		c.mu.Unlock()
		return fmt.Errorf("topic %q: %w", topic, domain.ErrUnknownTopic)
	}
	c.s.sel.Topic = topic
	c.s.sel.QuestionIndex = 0
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	return nil
}

// SelectTeam picks the team judged by single-team widgets.
func (c *Controller) SelectTeam(ctx context.Context, team string) error {
	c.mu.Lock()
	if !contains(c.s.menu.Teams, team) {
		c.mu.Unlock()
		return fmt.Errorf("team %q: %w", team, domain.ErrUnknownTeam)
	}
	c.s.sel.Team = team
	c.s.sel.QuestionIndex = 0
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	c.board.Refresh(ctx)
	return nil
}

// ShowQuestion refetches quiz content and shows the first question of the
// current selection.
func (c *Controller) ShowQuestion(ctx context.Context) error {
	c.mu.Lock()
	c.s.cancelCountdown()
	c.s.question = nil
	c.s.view = domain.View{State: domain.StateLoading}
	c.publishViewLocked()
	c.mu.Unlock()

	res := c.loader.Load(ctx)

	c.mu.Lock()
	c.s.data = res.Data
	c.s.sel.QuestionIndex = 0
	c.board.SetTeams(res.Data.Teams)
	c.renderLocked()
	state := c.s.view.State
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	c.board.Refresh(ctx)
	if state == domain.StateEmpty {
		return domain.ErrNoQuestions
	}
	return nil
}

// NextQuestion advances within the current question set.
func (c *Controller) NextQuestion(ctx context.Context) error {
	c.mu.Lock()
	questions := c.questionsLocked()
	if c.s.sel.QuestionIndex >= len(questions)-1 {
		c.out.Notify(domain.NoticeEndOfRound)
		c.mu.Unlock()
		return domain.ErrEndOfQuestions
	}
	c.s.sel.QuestionIndex++
	c.renderLocked()
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	return nil
}

// PreviousQuestion steps back within the current question set.
func (c *Controller) PreviousQuestion(ctx context.Context) error {
	c.mu.Lock()
	if c.s.sel.QuestionIndex <= 0 {
		c.out.Notify(domain.NoticeFirstQuestion)
		c.mu.Unlock()
		return domain.ErrFirstQuestion
	}
	c.s.sel.QuestionIndex--
	c.renderLocked()
	sel := c.s.sel
	c.mu.Unlock()

	c.checkpoint(ctx, sel)
	return nil
}

// ToggleAnswer shows or hides the canonical answer of a common-round question.
func (c *Controller) ToggleAnswer() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reveal := c.s.view.Reveal
	if err := c.requireWidgetLocked(domain.WidgetTeams); err != nil {
		return err
	}
	if reveal.Disabled {
		return domain.ErrWidgetDisabled
	}
	reveal.Visible = !reveal.Visible
	if reveal.Visible {
		reveal.Label = "Hide Answer"
	} else {
		reveal.Label = "Show Answer"
	}
	c.publishViewLocked()
	return nil
}

// ChooseOption answers a multiple-choice question for the selected team.
func (c *Controller) ChooseOption(ctx context.Context, index int) error {
	c.mu.Lock()
	if err := c.requireWidgetLocked(domain.WidgetChoice); err != nil {
		c.mu.Unlock()
		return err
	}
	v := &c.s.view
	if index < 0 || index >= len(v.Options) {
		c.mu.Unlock()
		return fmt.Errorf("option %d: %w", index, domain.ErrWrongWidget)
	}
	if v.Options[index].Disabled {
		c.mu.Unlock()
		return domain.ErrWidgetDisabled
	}

	c.s.cancelCountdown()
	q := c.s.question
	correct := q.Answer.Matches(index)
	disableAll(v)
	if correct {
		v.Options[index].Mark = domain.MarkCorrect
	} else {
		v.Options[index].Mark = domain.MarkWrong
		if q.Answer != nil && q.Answer.Index != nil && *q.Answer.Index >= 0 && *q.Answer.Index < len(v.Options) {
			v.Options[*q.Answer.Index].Mark = domain.MarkCorrect
		}
	}
	v.Feedback = choiceFeedback(correct, q.Answer.Display(q.Options))
	v.State = domain.StateAnswered
	c.publishViewLocked()
	team := c.s.sel.Team
	c.mu.Unlock()

	points := domain.PointsWrong
	if correct {
		points = domain.PointsRight
	}
	c.submit(ctx, team, points)
	return nil
}

// Judge records a Right/Wrong verdict for the team shown on a multimedia question.
func (c *Controller) Judge(ctx context.Context, right bool) error {
	c.mu.Lock()
	if err := c.requireWidgetLocked(domain.WidgetJudgment); err != nil {
		c.mu.Unlock()
		return err
	}
	v := &c.s.view
	if v.Judgment.Disabled {
		c.mu.Unlock()
		return domain.ErrWidgetDisabled
	}

	c.s.cancelCountdown()
	v.Judgment.Disabled = true
	v.Feedback = judgmentFeedback(right)
	v.State = domain.StateAnswered
	c.publishViewLocked()
	team := v.Judgment.Team
	c.mu.Unlock()

	points := domain.PointsWrong
	if right {
		points = domain.PointsRight
	}
	c.submit(ctx, team, points)
	return nil
}

// AwardTeam scores one team on a common-round question. Other teams stay
// open and the countdown keeps running.
func (c *Controller) AwardTeam(ctx context.Context, team string, points int) error {
	c.mu.Lock()
	if err := c.requireWidgetLocked(domain.WidgetTeams); err != nil {
		c.mu.Unlock()
		return err
	}
	v := &c.s.view
	idx := -1
	for i := range v.Teams {
		if v.Teams[i].Team == team {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("team %q: %w", team, domain.ErrUnknownTeam)
	}
	pair := &v.Teams[idx]
	if points != pair.Award && points != pair.Deduct {
		c.mu.Unlock()
		return fmt.Errorf("points %d: %w", points, domain.ErrWrongWidget)
	}
	if pair.Disabled {
		c.mu.Unlock()
		return domain.ErrWidgetDisabled
	}

	pair.Disabled = true
	v.Feedback = awardFeedback(team, points)
	if allTeamsScored(v.Teams) && v.State == domain.StateRendered {
		v.State = domain.StateAnswered
	}
	c.publishViewLocked()
	c.mu.Unlock()

	c.submit(ctx, team, points)
	return nil
}

// ResetScores asks the backend to zero every total. The control is disabled
// while the request runs and always re-enabled afterwards.
func (c *Controller) ResetScores(ctx context.Context) error {
	c.mu.Lock()
	if c.s.reset.Disabled {
		c.mu.Unlock()
		return domain.ErrWidgetDisabled
	}
	c.s.reset = domain.ResetButton{Label: domain.ResettingLabel, Disabled: true}
	c.out.RenderReset(c.s.reset)
	c.mu.Unlock()

	err := c.scores.ResetScores(ctx)
	if err != nil {
		c.log.Error("reset scores failed", zap.Error(err))
	} else {
		c.log.Info("scores reset")
		c.board.Refresh(ctx)
	}

	c.mu.Lock()
	if err != nil {
		c.out.Notify(domain.NoticeResetFailed)
	}
	c.s.reset = domain.ResetButton{Label: domain.ResetLabel}
	c.out.RenderReset(c.s.reset)
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrResetFailed, err)
	}
	return nil
}

// renderLocked re-enters the question state machine for the current selection.
func (c *Controller) renderLocked() {
	c.s.cancelCountdown()

	view, q := buildView(c.s.data.Rounds, c.s.sel, c.s.data.Teams)
	c.s.view = view
	c.s.question = q
	if q != nil {
		c.startCountdownLocked(q.TimerSeconds())
	}
	c.publishViewLocked()
}

func (c *Controller) publishViewLocked() {
	c.out.RenderView(c.s.view.Clone())
}

func (c *Controller) questionsLocked() []domain.Question {
	return ResolveQuestions(c.s.data.Rounds, c.s.sel.RoundIndex, c.s.sel.Topic, c.s.sel.Team)
}

func (c *Controller) requireWidgetLocked(kind domain.WidgetKind) error {
	if c.s.question == nil {
		return domain.ErrNoQuestionShown
	}
	if c.s.view.Widget != kind {
		return domain.ErrWrongWidget
	}
	return nil
}

func (c *Controller) topicsLocked(roundIndex int) []string {
	if roundIndex < 0 || roundIndex >= len(c.s.menuRounds) {
		return nil
	}
	return c.s.menuRounds[roundIndex].TopicNames()
}

// submit posts a score delta and refreshes the board. Failures are logged
// only; the view has already moved on.
func (c *Controller) submit(ctx context.Context, team string, points int) {
	if team == "" {
		c.log.Warn("no team selected, score not submitted", zap.Int("points", points))
		return
	}
	if err := c.scores.SubmitScore(ctx, team, points); err != nil {
		c.log.Warn("submit score failed", zap.String("team", team), zap.Int("points", points), zap.Error(err))
	}
	c.board.Refresh(ctx)
}

func (c *Controller) checkpoint(ctx context.Context, sel domain.Selection) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, sel); err != nil {
		c.log.Warn("save selection checkpoint failed", zap.Error(err))
	}
}

func roundOptions(rounds []domain.Round) []domain.RoundOption {
	out := make([]domain.RoundOption, 0, len(rounds))
	for i, r := range rounds {
		out = append(out, domain.RoundOption{Index: i, Name: r.Name})
	}
	return out
}

func cloneMenu(m domain.Menu) domain.Menu {
	return domain.Menu{
		Rounds: append([]domain.RoundOption(nil), m.Rounds...),
		Topics: append([]string(nil), m.Topics...),
		Teams:  append([]string(nil), m.Teams...),
	}
}

func allTeamsScored(pairs []domain.TeamPair) bool {
	for _, p := range pairs {
		if !p.Disabled {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
