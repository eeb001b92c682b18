package app

import (
	"fmt"
	"time"

	"quiz-host/internal/domain"
)

// TickerFunc starts a ticker and returns its channel and a stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// countdown is the per-question timer. A session owns at most one.
type countdown struct {
	gen       uint64
	remaining int
	done      chan struct{}
	stop      func()
}

func (c *countdown) cancel() {
	c.stop()
	close(c.done)
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// startCountdownLocked replaces any running countdown with a new one.
func (c *Controller) startCountdownLocked(seconds int) {
	c.s.cancelCountdown()

	c.s.timerGen++
	ticks, stop := c.newTicker(time.Second)
	cd := &countdown{
		gen:       c.s.timerGen,
		remaining: seconds,
		done:      make(chan struct{}),
		stop:      stop,
	}
	c.s.timer = cd
	c.s.view.Timer = FormatClock(seconds)

	go c.runCountdown(cd.gen, ticks, cd.done)
}

func (c *Controller) runCountdown(gen uint64, ticks <-chan time.Time, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticks:
			if !c.tick(gen) {
				return
			}
		}
	}
}

// tick advances the countdown identified by gen. It reports whether the
// countdown is still running.
func (c *Controller) tick(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cd := c.s.timer
	if cd == nil || cd.gen != gen {
		return false
	}
	cd.remaining--
	if cd.remaining > 0 {
		c.s.view.Timer = FormatClock(cd.remaining)
		c.publishViewLocked()
		return true
	}

	c.s.cancelCountdown()
	c.s.view.Timer = domain.TimerExpired
	c.s.view.State = domain.StateTimedOut
	disableAll(&c.s.view)
	c.publishViewLocked()
	return false
}
