package httpapi

import (
	"net/http"
	"time"

	"github.com/DoyleJ11/autochess-backend/internal/hub"
	"github.com/DoyleJ11/autochess-backend/internal/store"
	"github.com/DoyleJ11/autochess-backend/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Deps struct {
	Hub     *hub.Hub
	Results store.Results
	Logger  *zap.Logger
	WS      ws.Options
}

func SetupRoutes(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Recoverer(log))

	// Websocket upgrades skip the access log and timeout.
	r.Get("/ws", ws.Handler(d.Hub, log.Named("ws"), d.WS))

	r.Group(func(r chi.Router) {
		r.Use(AccessLog(log.Named("http")))
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/healthz", Healthz)
		r.Post("/sessions", CreateSession(d.Hub, log))
		r.Get("/results", Results(d.Results, log))
	})
	return r
}
