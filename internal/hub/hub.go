package hub

import (
	"context"

	"github.com/DoyleJ11/autochess-backend/internal/session"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

// CreateSession returns the existing session when the code is taken.
type CreateSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

// PinSession creates the session if needed and keeps it when idle.
type PinSession struct {
	Code  string
	Reply chan *session.Session
}

// IdleSession is sent by a session whose game ended and whose last
// connection left. Unpinned sessions are removed.
type IdleSession struct {
	Code string
}

type ListSessions struct {
	Reply chan []string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (PinSession) isHubMsg()    {}
func (IdleSession) isHubMsg()   {}
func (ListSessions) isHubMsg()  {}
func (ShutdownHub) isHubMsg()   {}

// OptionsFunc builds the options for a new session.
type OptionsFunc func(code string) session.Options

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	pinned   map[string]bool
	options  OptionsFunc
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, options OptionsFunc, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		pinned:   make(map[string]bool),
		options:  options,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Get is a request/reply round trip on GetSession. It returns nil once
// the hub has stopped.
func (h *Hub) Get(code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(GetSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) Ensure(code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(EnsureSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) Pin(code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(PinSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) ask(m HubMsg, reply <-chan *session.Session) *session.Session {
	select {
	case h.inbox <- m:
	case <-h.ctx.Done():
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-h.ctx.Done():
		return nil
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				msg.Reply <- h.ensure(msg.Code)

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case EnsureSession:
				msg.Reply <- h.ensure(msg.Code)

			case PinSession:
				h.pinned[msg.Code] = true
				msg.Reply <- h.ensure(msg.Code)

			case RemoveSession:
				h.remove(msg.Code)

			case IdleSession:
				if !h.pinned[msg.Code] {
					h.remove(msg.Code)
				}

			case ListSessions:
				codes := make([]string, 0, len(h.sessions))
				for code := range h.sessions {
					codes = append(codes, code)
				}
				msg.Reply <- codes

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) ensure(code string) *session.Session {
	if s := h.sessions[code]; s != nil {
		return s
	}
	opts := h.options(code)
	opts.Code = code
	opts.OnIdle = func(code string) {
		select {
		case h.inbox <- IdleSession{Code: code}:
		case <-h.ctx.Done():
		}
	}
	s := session.New(h.ctx, opts)
	h.sessions[code] = s
	h.log.Info("session created", zap.String("session", code))
	return s
}

func (h *Hub) remove(code string) {
	s := h.sessions[code]
	if s == nil {
		return
	}
	stop(s)
	delete(h.sessions, code)
	delete(h.pinned, code)
	h.log.Info("session removed", zap.String("session", code))
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		stop(s)
	}
	clear(h.sessions)
	h.cancel()
}

func stop(s *session.Session) {
	select {
	case s.Inbox() <- session.Shutdown{}:
	case <-s.Done():
	}
}
