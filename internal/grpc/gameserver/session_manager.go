package gameserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/monitoring"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrServerAtCapacity = errors.New("server at capacity")
	ErrMissingSessionID = errors.New("session_id is required")
)

const defaultCleanupInterval = time.Minute

// session is one hosted engine. mu serialises every engine access, both the
// tick loop and request handlers.
type session struct {
	id     string
	engine *game.Engine
	mu     sync.Mutex

	createdAt    time.Time
	lastActivity time.Time
	lastTick     time.Time

	streams     *StreamManager
	idempotency *IdempotencyManager

	cancel context.CancelFunc
	done   chan struct{}
}

func (s *session) touch() {
	s.lastActivity = time.Now()
}

// SessionOptions overrides the base game configuration for one session.
// Zero values keep the base.
type SessionOptions struct {
	Difficulty string
	Seed       int64
	Width      int
	Height     int
}

// SessionManagerConfig configures a SessionManager.
type SessionManagerConfig struct {
	MaxSessions int
	// TTL is how long a session may go without a request before it is
	// removed. Finished sessions are removed after half of it.
	TTL time.Duration
	// TickInterval paces the per-session simulation loop. Zero disables the
	// loop; the session then only advances through Advance.
	TickInterval    time.Duration
	CleanupInterval time.Duration
	Base            game.GameConfig
	Monitor         *monitoring.TickMonitor
	Logger          zerolog.Logger
}

// SessionManager owns all hosted sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	base     game.GameConfig

	maxSessions     int
	ttl             time.Duration
	tickInterval    time.Duration
	cleanupInterval time.Duration
	monitor         *monitoring.TickMonitor
	logger          zerolog.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewSessionManager creates a manager and starts its cleanup loop.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaultCleanupInterval
	}
	sm := &SessionManager{
		sessions:        make(map[string]*session),
		base:            cfg.Base,
		maxSessions:     cfg.MaxSessions,
		ttl:             cfg.TTL,
		tickInterval:    cfg.TickInterval,
		cleanupInterval: cfg.CleanupInterval,
		monitor:         cfg.Monitor,
		logger:          cfg.Logger.With().Str("component", "SessionManager").Logger(),
		stopChan:        make(chan struct{}),
	}
	go sm.runCleanup()
	return sm
}

// UpdateBaseConfig replaces the configuration used for new sessions.
// Running sessions keep theirs.
func (sm *SessionManager) UpdateBaseConfig(base game.GameConfig) {
	sm.mu.Lock()
	sm.base = base
	sm.mu.Unlock()
	sm.logger.Info().Msg("Base game configuration updated")
}

// CreateSession builds a new engine and, when a tick interval is set, starts
// its simulation loop.
func (sm *SessionManager) CreateSession(ctx context.Context, opts SessionOptions) (*session, error) {
	sm.mu.RLock()
	current := len(sm.sessions)
	cfg := sm.base
	sm.mu.RUnlock()

	if sm.maxSessions > 0 && current >= sm.maxSessions {
		sm.logger.Warn().
			Int("current_sessions", current).
			Int("max_sessions", sm.maxSessions).
			Msg("Rejecting session creation - server at capacity")
		return nil, fmt.Errorf("%w: %d/%d sessions active", ErrServerAtCapacity, current, sm.maxSessions)
	}

	id := uuid.New().String()
	if opts.Difficulty != "" {
		cfg.Difficulty = opts.Difficulty
	}
	if opts.Width > 0 && opts.Height > 0 {
		cfg.Map.Width, cfg.Map.Height = opts.Width, opts.Height
	}
	cfg.Seed = opts.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Rng = rand.New(rand.NewSource(cfg.Seed))
	cfg.GameID = id
	cfg.Logger = sm.logger.With().Str("session_id", id).Logger()
	cfg.EventBus = events.NewEventBus()

	now := time.Now()
	s := &session{
		id:           id,
		createdAt:    now,
		lastActivity: now,
		lastTick:     now,
		streams:      NewStreamManager(sm.logger),
		idempotency:  NewIdempotencyManager(),
		done:         make(chan struct{}),
	}

	cfg.EventBus.SubscribeFunc(events.AllEvents, func(ev events.Event) {
		if s.streams.GetClientCount() == 0 {
			return
		}
		msg, err := eventToStruct(ev)
		if err != nil {
			sm.logger.Error().Err(err).Str("event_type", ev.Type()).Msg("Failed to convert event")
			return
		}
		s.streams.BroadcastToAll(ev.Type(), msg)
	})

	engine, err := game.NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.engine = engine

	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, fmt.Errorf("%w: %d/%d sessions active", ErrServerAtCapacity, len(sm.sessions), sm.maxSessions)
	}
	sm.sessions[id] = s
	count := len(sm.sessions)
	sm.mu.Unlock()

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	if sm.tickInterval > 0 {
		go sm.runSession(loopCtx, s)
	} else {
		close(s.done)
	}

	sm.logger.Info().
		Str("session_id", id).
		Str("difficulty", engine.Difficulty()).
		Int("width", engine.Grid().W).
		Int("height", engine.Grid().H).
		Int("current_sessions", count).
		Msg("Session created")
	return s, nil
}

// GetSession returns the session with id.
func (sm *SessionManager) GetSession(id string) (*session, error) {
	if id == "" {
		return nil, ErrMissingSessionID
	}
	sm.mu.RLock()
	s, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// GetActiveSessions returns the number of hosted sessions.
func (sm *SessionManager) GetActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CloseSession stops the session loop, closes its streams and forgets it.
func (sm *SessionManager) CloseSession(id string) error {
	if id == "" {
		return ErrMissingSessionID
	}
	sm.mu.Lock()
	s, ok := sm.sessions[id]
	delete(sm.sessions, id)
	remaining := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sm.shutdown(s)
	sm.logger.Info().Str("session_id", id).Int("remaining", remaining).Msg("Session closed")
	return nil
}

func (sm *SessionManager) shutdown(s *session) {
	s.cancel()
	<-s.done
	s.streams.CloseAll()
	if sm.monitor != nil {
		sm.monitor.Forget(s.id)
	}
}

// Advance runs the simulation of one session forward by elapsed wall time.
func (sm *SessionManager) Advance(ctx context.Context, id string, elapsed time.Duration) error {
	s, err := sm.GetSession(id)
	if err != nil {
		return err
	}
	return sm.advance(ctx, s, elapsed)
}

func (sm *SessionManager) advance(ctx context.Context, s *session, elapsed time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.AdvanceClock(elapsed)
	if s.engine.IsGameOver() {
		return nil
	}
	start := time.Now()
	err := s.engine.Step(ctx)
	if sm.monitor != nil {
		sm.monitor.ObserveTick(s.id, time.Since(start))
	}
	return err
}

// runSession drives one session until it is closed or its game ends.
func (sm *SessionManager) runSession(ctx context.Context, s *session) {
	defer close(s.done)
	defer func() {
		if r := recover(); r != nil {
			sm.logger.Error().
				Interface("panic", r).
				Str("session_id", s.id).
				Msg("Session loop panicked")
		}
	}()

	ticker := time.NewTicker(sm.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(s.lastTick)
			s.lastTick = now
			if err := sm.advance(ctx, s, elapsed); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				sm.logger.Error().Err(err).Str("session_id", s.id).Msg("Session tick failed")
			}
		}
	}
}

// runCleanup periodically removes finished and abandoned sessions.
func (sm *SessionManager) runCleanup() {
	ticker := time.NewTicker(sm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sm.stopChan:
			return
		case <-ticker.C:
			sm.cleanupSessions(time.Now())
		}
	}
}

// cleanupSessions removes sessions idle for longer than the TTL, and
// finished ones after half of it. An open event stream keeps a running
// session alive.
func (sm *SessionManager) cleanupSessions(now time.Time) int {
	if sm.ttl <= 0 {
		return 0
	}

	// Phase 1: collect references without holding session locks
	sm.mu.RLock()
	refs := make([]*session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		refs = append(refs, s)
	}
	sm.mu.RUnlock()

	// Phase 2: inspect each session on its own lock
	var expired []*session
	for _, s := range refs {
		s.mu.Lock()
		idle := now.Sub(s.lastActivity)
		over := s.engine.IsGameOver()
		s.mu.Unlock()
		streaming := s.streams.GetClientCount() > 0

		reason := ""
		switch {
		case over && idle > sm.ttl/2:
			reason = "finished session TTL expired"
		case idle > sm.ttl && !streaming:
			reason = "session abandoned (no activity)"
		default:
			continue
		}
		expired = append(expired, s)
		sm.logger.Info().
			Str("session_id", s.id).
			Str("reason", reason).
			Dur("age", now.Sub(s.createdAt)).
			Dur("inactive", idle).
			Msg("Cleaning up session")
	}
	if len(expired) == 0 {
		return 0
	}

	// Phase 3: drop from the map, then shut down outside the manager lock
	sm.mu.Lock()
	for _, s := range expired {
		delete(sm.sessions, s.id)
	}
	remaining := len(sm.sessions)
	sm.mu.Unlock()

	for _, s := range expired {
		sm.shutdown(s)
	}

	sm.logger.Info().
		Int("cleaned", len(expired)).
		Int("remaining", remaining).
		Msg("Session cleanup completed")
	return len(expired)
}

// Stop closes every session and ends the cleanup loop.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopChan)

		sm.mu.Lock()
		all := make([]*session, 0, len(sm.sessions))
		for id, s := range sm.sessions {
			all = append(all, s)
			delete(sm.sessions, id)
		}
		sm.mu.Unlock()

		for _, s := range all {
			sm.shutdown(s)
		}
		sm.logger.Info().Int("closed", len(all)).Msg("Session manager stopped")
	})
}
