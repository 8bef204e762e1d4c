package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/DoyleJ11/autochess-backend/internal/hub"
	"github.com/DoyleJ11/autochess-backend/internal/session"
	"github.com/DoyleJ11/autochess-backend/internal/types"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// outboxSize covers a full battle replay so a healthy client is never
	// dropped mid-battle.
	outboxSize   = 1024
	readLimit    = 8 << 10
	idleTimeout  = 5 * time.Minute
	writeTimeout = 3 * time.Second
)

type Options struct {
	// OriginPatterns is passed to websocket.Accept. Empty means same origin only.
	OriginPatterns []string
}

func Handler(h *hub.Hub, log *zap.Logger, opts Options) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		s := h.Get(code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Warn("websocket accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		conn.SetReadLimit(readLimit)

		clientID := uuid.NewString()
		log := log.With(zap.String("session", code), zap.String("client", clientID))

		out := make(chan session.Event, outboxSize)
		if err := s.Send(r.Context(), session.Connect{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}
		log.Debug("client connected")
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = s.Send(ctx, session.Disconnect{ClientID: clientID})
			log.Debug("client disconnected")
		}()

		// Writer goroutine. It drains out until the session closes it, even
		// after a failed write, so the session never blocks on this client.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := wsjson.Write(ctx, conn, Encode(ev))
				cancel()
				if err != nil && writeCtx.Err() == nil {
					log.Debug("write failed", zap.Error(err))
				}
			}
			conn.Close(websocket.StatusNormalClosure, "session closed")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), idleTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			msg, err := Decode(data, clientID)
			if err != nil {
				ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
				_ = wsjson.Write(ctx, conn, types.ServerMessage{Type: types.TypeError, Error: err.Error()})
				cancel()
				continue
			}

			if err := s.Send(r.Context(), msg); err != nil {
				return
			}
		}
	}
}
