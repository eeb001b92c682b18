package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"quiz-host/internal/app"
	"quiz-host/internal/display"
	"quiz-host/internal/domain"
)

// Dispatcher runs operator actions.
type Dispatcher interface {
	Dispatch(ctx context.Context, a app.Action) error
}

// Console drives the controller from line-oriented input and prints every
// frame it receives.
type Console struct {
	ctrl Dispatcher
	in   io.Reader
	out  io.Writer
	log  *zap.Logger

	lastView *domain.View
}

func New(ctrl Dispatcher, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{ctrl: ctrl, in: in, out: out, log: logger}
}

// Run reads commands until quit, end of input or ctx cancellation.
func (c *Console) Run(ctx context.Context, frames <-chan display.Frame) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(c.out, `type "help" for commands`)
	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			c.printFrame(f)
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if done := c.handle(ctx, line); done {
				return nil
			}
		}
	}
}

func (c *Console) handle(ctx context.Context, line string) bool {
	if strings.EqualFold(strings.TrimSpace(line), "help") {
		fmt.Fprintln(c.out, usage)
		return false
	}
	action, err := Parse(line)
	if errors.Is(err, ErrQuit) {
		return true
	}
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return false
	}
	if err := c.ctrl.Dispatch(ctx, action); err != nil {
		c.log.Debug("action rejected", zap.String("action", string(action.Type)), zap.Error(err))
		fmt.Fprintln(c.out, "error:", err)
	}
	return false
}

// printFrame prints a frame, shortening countdown ticks to the timer line.
func (c *Console) printFrame(f display.Frame) {
	if v, ok := f.Payload.(domain.View); ok {
		prev := c.lastView
		c.lastView = &v
		if prev != nil && onlyTimerChanged(*prev, v) {
			fmt.Fprintln(c.out, "  timer", v.Timer)
			return
		}
	}
	fmt.Fprintln(c.out, Format(f))
}

func onlyTimerChanged(a, b domain.View) bool {
	if a.Timer == b.Timer {
		return false
	}
	a.Timer, b.Timer = "", ""
	return reflect.DeepEqual(a, b)
}
