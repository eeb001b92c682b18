package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"quiz-host/internal/app"
	"quiz-host/internal/display"
)

// Dispatcher runs operator actions.
type Dispatcher interface {
	Dispatch(ctx context.Context, a app.Action) error
}

const (
	roleOperator = "operator"
	roleDisplay  = "display"
)

type WSHandler struct {
	ctrl     Dispatcher
	hub      *display.Hub
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(ctrl Dispatcher, hub *display.Hub, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		ctrl: ctrl,
		hub:  hub,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    app.ActionType  `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type actionPayload struct {
	Index  int    `json:"index"`
	Topic  string `json:"topic"`
	Team   string `json:"team"`
	Points int    `json:"points"`
	Right  bool   `json:"right"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and streams frames. Operators may also send actions;
// displays are read-only.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = roleDisplay
	}
	if role != roleOperator && role != roleDisplay {
		http.Error(w, "role must be operator or display", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("role", role), zap.String("remote", r.RemoteAddr))
	log.Info("ws connected")
	defer log.Info("ws disconnected")

	subscribe := h.hub.Subscribe
	if role == roleDisplay {
		subscribe = h.hub.SubscribeAudience
	}
	frames, cancel := subscribe()
	defer cancel()

	send := make(chan display.Frame, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	framesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				// unblocks ReadJSON so the read loop can wind down
				_ = conn.Close()
				return
			}
		}
	}()

	go func() {
		defer close(framesDone)
		for {
			select {
			case f, ok := <-frames:
				if !ok {
					return
				}
				select {
				case send <- f:
				case <-closeSignals:
					return
				case <-writerDone:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if role != roleOperator {
			h.reply(send, writerDone, "display connections are read-only")
			continue
		}

		var payload actionPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.reply(send, writerDone, "invalid action payload")
				continue
			}
		}
		action := app.Action{
			Type:   inbound.Type,
			Index:  payload.Index,
			Topic:  payload.Topic,
			Team:   payload.Team,
			Points: payload.Points,
			Right:  payload.Right,
		}
		if err := h.ctrl.Dispatch(r.Context(), action); err != nil {
			log.Debug("action rejected", zap.String("action", string(action.Type)), zap.Error(err))
			h.reply(send, writerDone, err.Error())
		}
	}

	close(closeSignals)
	<-framesDone
	close(send)
	<-writerDone
}

// reply queues an error frame unless the writer has already quit.
func (h *WSHandler) reply(send chan<- display.Frame, writerDone <-chan struct{}, msg string) {
	select {
	case send <- display.Frame{Type: "error", Payload: errorPayload{Message: msg}}:
	case <-writerDone:
	}
}
