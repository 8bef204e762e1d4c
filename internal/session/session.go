package session

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrClosed           = errors.New("session closed")
	ErrWrongPhase       = errors.New("not allowed in this phase")
	ErrGameStarted      = errors.New("game already started")
	ErrNotJoined        = errors.New("join first")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrAlreadyReady     = errors.New("already ready")
)

type DisconnectPolicy string

const (
	// RemovePlayer drops only the player whose connection went away.
	RemovePlayer DisconnectPolicy = "remove"
	// ResetSession clears every player and tells every connection to reload.
	ResetSession DisconnectPolicy = "reset"
)

// Simulator plays one pairing. engine.Simulator is the implementation.
type Simulator interface {
	Run(ctx context.Context, p engine.Pairing, r engine.Rand, obs engine.Observer) (engine.Result, error)
}

type Options struct {
	Code           string
	StartingHealth int
	StartingGold   int
	StartingTier   int
	StartingRoster engine.Roster
	Pools          engine.PoolConfig
	MinPlayers     int
	Simulator      Simulator
	OnDisconnect   DisconnectPolicy
	Rand           engine.Rand
	// Results is optional; finished games are not recorded without it.
	Results store.Results
	Logger  *zap.Logger
	// OnIdle is called on its own goroutine when a finished game has lost
	// its last connection.
	OnIdle func(code string)
}

// DefaultOptions starts every player with 30 health, 3 gold, tier 1 and a
// king on slot 0.
func DefaultOptions() Options {
	o := Options{}
	o.StartingRoster[0] = engine.Of(engine.King)
	o.applyDefaults()
	return o
}

func (o *Options) applyDefaults() {
	if o.StartingHealth <= 0 {
		o.StartingHealth = 30
	}
	if o.StartingGold <= 0 {
		o.StartingGold = 3
	}
	if o.StartingTier <= 0 {
		o.StartingTier = 1
	}
	if o.Pools.Sizes == ([engine.Tiers]int{}) {
		o.Pools = engine.DefaultPoolConfig()
	}
	if o.MinPlayers <= 0 {
		o.MinPlayers = 1
	}
	if o.Simulator == nil {
		o.Simulator = engine.Simulator{}
	}
	if o.OnDisconnect == "" {
		o.OnDisconnect = RemovePlayer
	}
	if o.Rand == nil {
		o.Rand = engine.NewRandomRand()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Session is one game. Everything it owns is touched only by its loop
// goroutine; the outside talks to it through the inbox.
type Session struct {
	code  string
	opts  Options
	log   *zap.Logger
	rng   engine.Rand
	pools *engine.Pools
	inbox chan Msg

	phase      Phase
	round      int
	clients    map[string]chan Event
	players    []*Player // active players in join order
	byClient   map[string]*Player
	placements []store.Placement
	slow       []string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func New(parent context.Context, opts Options) *Session {
	opts.applyDefaults()
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		code:     opts.Code,
		opts:     opts,
		log:      opts.Logger.With(zap.String("session", opts.Code)),
		rng:      opts.Rand,
		pools:    engine.NewPools(opts.Pools, opts.Rand),
		inbox:    make(chan Msg, 64),
		phase:    PhaseLobby,
		clients:  make(map[string]chan Event),
		byClient: make(map[string]*Player),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go s.loop()
	return s
}

func (s *Session) Code() string { return s.code }

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Send delivers m unless the session has stopped or ctx ends first.
func (s *Session) Send(ctx context.Context, m Msg) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.inbox <- m:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			if !s.handle(m) {
				return
			}
			s.dropSlow()
		}
	}
}

func (s *Session) handle(m Msg) bool {
	switch msg := m.(type) {
	case Connect:
		s.clients[msg.ClientID] = msg.Outbox

	case Disconnect:
		s.disconnect(msg.ClientID)

	case Join:
		s.join(msg)

	case Start:
		s.start(msg.ClientID)

	case Buy:
		s.buy(msg)

	case Place:
		s.place(msg)

	case Ready:
		s.ready(msg)

	case GetState:
		msg.Reply <- s.view()

	case Shutdown:
		s.shutdown()
		return false
	}
	return true
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) send(clientID string, ev Event) {
	ch, ok := s.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		s.slow = append(s.slow, clientID)
	}
}

func (s *Session) broadcast(ev Event) {
	for id := range s.clients {
		s.send(id, ev)
	}
}

func (s *Session) reject(clientID string, err error) {
	s.send(clientID, Rejected{Reason: err.Error()})
}

// dropSlow disconnects clients whose outbox was full.
func (s *Session) dropSlow() {
	for len(s.slow) > 0 {
		id := s.slow[0]
		s.slow = s.slow[1:]
		if _, ok := s.clients[id]; !ok {
			continue
		}
		s.log.Warn("dropping slow client", zap.String("client", id))
		s.disconnect(id)
	}
}

func (s *Session) disconnect(clientID string) {
	if ch, ok := s.clients[clientID]; ok {
		close(ch)
		delete(s.clients, clientID)
	}

	if p := s.byClient[clientID]; p != nil {
		if s.opts.OnDisconnect == ResetSession {
			s.log.Info("player left, resetting", zap.String("player", p.ID))
			s.broadcast(Reload{})
			s.reset()
			return
		}
		s.removePlayer(p)
	}

	if len(s.clients) == 0 && s.phase == PhaseEnded {
		s.reset()
		if s.opts.OnIdle != nil {
			go s.opts.OnIdle(s.code)
		}
	}
}

func (s *Session) removePlayer(p *Player) {
	s.players = slices.DeleteFunc(s.players, func(q *Player) bool { return q == p })
	delete(s.byClient, p.ClientID)
	s.log.Info("player left", zap.String("player", p.ID), zap.String("phase", string(s.phase)))

	switch s.phase {
	case PhaseLobby:
		s.broadcast(s.lobbyUpdate())

	case PhaseShop:
		s.placements = append(s.placements, store.Placement{
			Name:   p.Name,
			Rank:   len(s.players) + 1,
			Health: p.Health,
		})
		switch len(s.players) {
		case 0:
			s.finish()
		case 1:
			s.crown(s.players[0])
			s.finish()
		default:
			if s.allReady() {
				s.battle()
			}
		}
	}
}

func (s *Session) reset() {
	s.phase = PhaseLobby
	s.round = 0
	s.players = nil
	clear(s.byClient)
	s.placements = nil
}

func (s *Session) join(m Join) {
	if _, ok := s.clients[m.ClientID]; !ok {
		s.log.Warn("join from unknown client", zap.String("client", m.ClientID))
		return
	}
	if s.phase == PhaseEnded {
		s.reset()
	}
	if s.phase != PhaseLobby {
		s.reject(m.ClientID, ErrGameStarted)
		return
	}
	if s.byClient[m.ClientID] != nil {
		return
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = "player"
	}
	p := &Player{
		ID:       uuid.NewString(),
		Name:     name,
		ClientID: m.ClientID,
		Roster:   s.opts.StartingRoster,
		Tier:     s.opts.StartingTier,
		MaxGold:  s.opts.StartingGold,
		Gold:     s.opts.StartingGold,
		Health:   s.opts.StartingHealth,
	}
	s.players = append(s.players, p)
	s.byClient[m.ClientID] = p
	s.log.Info("player joined", zap.String("player", p.ID), zap.String("name", name))
	s.broadcast(s.lobbyUpdate())
}

func (s *Session) lobbyUpdate() LobbyUpdate {
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	return LobbyUpdate{Players: names}
}

func (s *Session) start(clientID string) {
	if s.byClient[clientID] == nil {
		s.reject(clientID, ErrNotJoined)
		return
	}
	if s.phase != PhaseLobby {
		s.reject(clientID, ErrWrongPhase)
		return
	}
	if len(s.players) < s.opts.MinPlayers {
		s.reject(clientID, ErrNotEnoughPlayers)
		return
	}
	s.log.Info("game started", zap.Int("players", len(s.players)))
	s.shop()
}

// shopper resolves the player behind an intent that is only valid while
// shopping. Unknown clients are told to reload.
func (s *Session) shopper(clientID string) (*Player, bool) {
	p := s.byClient[clientID]
	switch {
	case p == nil:
		s.send(clientID, Reload{})
		return nil, false
	case s.phase != PhaseShop:
		s.reject(clientID, ErrWrongPhase)
		return nil, false
	case p.Ready:
		s.reject(clientID, ErrAlreadyReady)
		return nil, false
	}
	return p, true
}

func (s *Session) buy(m Buy) {
	p, ok := s.shopper(m.ClientID)
	if !ok {
		return
	}
	next, err := engine.Buy(engine.Purchase{Roster: p.Roster, Offers: p.Pool, Gold: p.Gold}, m.Index)
	if err != nil {
		s.reject(m.ClientID, err)
		return
	}
	p.Roster, p.Pool, p.Gold = next.Roster, next.Offers, next.Gold
	s.send(p.ClientID, p.shopView())
}

func (s *Session) place(m Place) {
	p, ok := s.shopper(m.ClientID)
	if !ok {
		return
	}
	r, err := engine.Place(p.Roster, m.From, m.To)
	if err != nil {
		s.reject(m.ClientID, err)
		return
	}
	p.Roster = r
	s.send(p.ClientID, p.shopView())
}

func (s *Session) ready(m Ready) {
	p := s.byClient[m.ClientID]
	if p == nil {
		s.send(m.ClientID, Reload{})
		return
	}
	if s.phase != PhaseShop {
		s.reject(m.ClientID, ErrWrongPhase)
		return
	}
	if p.Ready {
		s.log.Debug("duplicate ready ignored", zap.String("player", p.ID))
		return
	}

	if m.Pieces != nil {
		cost, err := engine.ValidatePurchase(p.shopRoster, *m.Pieces, p.shopPool, p.MaxGold)
		if err != nil {
			s.reject(m.ClientID, err)
			return
		}
		p.Roster = *m.Pieces
		p.Gold = p.MaxGold - cost
	}
	p.Ready = true

	if s.allReady() {
		s.battle()
	}
}

func (s *Session) allReady() bool {
	for _, p := range s.players {
		if !p.Ready {
			return false
		}
	}
	return len(s.players) > 0
}

// shop refreshes every offer before anyone hears about the new phase.
func (s *Session) shop() {
	s.phase = PhaseShop
	shoppers := make([]engine.Shopper, len(s.players))
	for i, p := range s.players {
		p.Ready = false
		p.Gold = p.MaxGold
		shoppers[i] = p
	}
	s.pools.Refresh(shoppers, s.rng)

	for _, p := range s.players {
		p.shopRoster = p.Roster
		p.shopPool = slices.Clone(p.Pool)
		s.send(p.ClientID, p.shopView())
	}
}

func (s *Session) playerByID(id string) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) view() View {
	v := View{
		Code:       s.code,
		Phase:      s.phase,
		Round:      s.round,
		NumClients: len(s.clients),
		Players:    make([]PlayerView, len(s.players)),
	}
	for i, p := range s.players {
		v.Players[i] = p.view()
	}
	return v
}
