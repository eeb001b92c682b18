package display

import (
	"sync"

	"quiz-host/internal/domain"
)

// Frame types pushed to subscribers.
const (
	FrameView       = "view"
	FrameScoreboard = "scoreboard"
	FrameMenu       = "menu"
	FrameReset      = "reset"
	FrameNotice     = "notice"
)

// Frame is one message for a display or operator screen.
type Frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// NoticePayload carries an operator-facing alert.
type NoticePayload struct {
	Message string `json:"message"`
}

// Hub fans controller output out to any number of subscribers. It keeps the
// latest frame of each stateful type so late joiners see the current screen.
// Audience subscribers get a redacted stream: no operator notices and no
// unrevealed answers.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Frame]audience
	latest      map[string]Frame
}

// audience marks a subscription as an audience screen.
type audience bool

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Frame]audience),
		latest:      make(map[string]Frame),
	}
}

func (h *Hub) RenderView(v domain.View) {
	h.publish(Frame{Type: FrameView, Payload: v}, true)
}

func (h *Hub) RenderScoreboard(b domain.Scoreboard) {
	h.publish(Frame{Type: FrameScoreboard, Payload: b}, true)
}

func (h *Hub) RenderMenu(m domain.Menu) {
	h.publish(Frame{Type: FrameMenu, Payload: m}, true)
}

func (h *Hub) RenderReset(b domain.ResetButton) {
	h.publish(Frame{Type: FrameReset, Payload: b}, true)
}

func (h *Hub) Notify(message string) {
	h.publish(Frame{Type: FrameNotice, Payload: NoticePayload{Message: message}}, false)
}

// Subscribe returns a channel that receives every frame, starting with the
// current screen. The caller must invoke the returned cancel function to
// avoid leaks.
func (h *Hub) Subscribe() (<-chan Frame, func()) {
	return h.subscribe(false)
}

// SubscribeAudience is Subscribe for audience screens. Notices are withheld
// and a common-round answer is only sent once it is revealed.
func (h *Hub) SubscribeAudience() (<-chan Frame, func()) {
	return h.subscribe(true)
}

func (h *Hub) subscribe(aud audience) (<-chan Frame, func()) {
	ch := make(chan Frame, 16)

	h.mu.Lock()
	h.subscribers[ch] = aud
	for _, typ := range []string{FrameMenu, FrameReset, FrameScoreboard, FrameView} {
		if f, ok := h.latest[typ]; ok {
			if aud {
				f, ok = redact(f)
				if !ok {
					continue
				}
			}
			ch <- f
		}
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) publish(f Frame, keep bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if keep {
		h.latest[f.Type] = f
	}
	redacted, forAudience := redact(f)
	for ch, aud := range h.subscribers {
		out := f
		if aud {
			if !forAudience {
				continue
			}
			out = redacted
		}
		select {
		case ch <- out:
		default:
			// slow subscriber: drop its oldest frame to make room
			select {
			case <-ch:
			default:
			}
			ch <- out
		}
	}
}

// redact returns the audience version of f, or false if the audience must not
// see it at all.
func redact(f Frame) (Frame, bool) {
	switch p := f.Payload.(type) {
	case NoticePayload:
		return Frame{}, false
	case domain.View:
		if p.Reveal != nil && !p.Reveal.Visible {
			v := p.Clone()
			v.Reveal = nil
			f.Payload = v
		}
	}
	return f, true
}
