package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// RouterConfig holds what the routes need beyond the websocket handler.
type RouterConfig struct {
	Version   string
	PublicURL string // base URL displays connect to; derived from the request when empty
}

// NewRouter registers the host's HTTP surface.
func NewRouter(cfg RouterConfig, ws *WSHandler, logger *zap.Logger) *httprouter.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := httprouter.New()

	mux.GET("/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	mux.GET("/version", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "quiz-host v"+cfg.Version+"\n")
	})

	mux.GET("/qr", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := qrcode.Encode(DisplayURL(cfg.PublicURL, r), qrcode.Medium, 256)
		if err != nil {
			logger.Error("encode qr code", zap.Error(err))
			http.Error(w, "could not generate qr code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(png)
	})

	mux.GET("/ws", ws.ServeWS)

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		logger.Error("handler panic", zap.Any("panic", v), zap.String("path", r.URL.Path))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}

	return mux
}

// DisplayURL is the websocket address an audience screen connects to.
func DisplayURL(publicURL string, r *http.Request) string {
	base := strings.TrimSuffix(publicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws?role=display"
}
