package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/engine"
)

// ErrNilAction indicates a caller dispatched without an action.
var ErrNilAction = errors.New("nil action")

const defaultRecordTimeout = 30 * time.Second

// Ticker drives the periodic Tick action. StartTicking must not schedule a second job
// while one is active.
type Ticker interface {
	StartTicking(job func()) bool
	StopTicking()
}

// ResultRecorder stores the outcome of finished games.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result models.SessionResult) error
}

// Listener receives every applied transition in order. Listeners run synchronously
// and must not call back into the Service.
type Listener func(update models.Update)

// Service owns the game state and is the single entry point for transitions.
type Service struct {
	engine        *engine.Engine
	ticker        Ticker
	recorder      ResultRecorder
	logger        *zap.Logger
	now           func() time.Time
	recordTimeout time.Duration

	mu         sync.Mutex
	state      models.GameState
	generation uint64
	ticking    bool
	closed     bool
	listeners  map[int]Listener
	nextID     int

	notifyMu  sync.Mutex
	recording sync.WaitGroup
}

// NewService wires a game driver. ticker and recorder are optional.
func NewService(eng *engine.Engine, ticker Ticker, recorder ResultRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New()
	}
	return &Service{
		engine:        eng,
		ticker:        ticker,
		recorder:      recorder,
		logger:        logger,
		now:           time.Now,
		recordTimeout: defaultRecordTimeout,
		state:         models.NewGameState(),
		listeners:     make(map[int]Listener),
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Summary derives the profit/loss outcome of the current state.
func (s *Service) Summary() models.SessionResult {
	return models.Summarize(s.Snapshot(), s.now().UTC())
}

// Subscribe registers a listener and returns the function that removes it.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies a player action and returns the resulting state.
func (s *Service) Dispatch(ctx context.Context, action models.Action) (models.GameState, error) {
	if action == nil {
		return models.GameState{}, ErrNilAction
	}
	if err := ctx.Err(); err != nil {
		return models.GameState{}, err
	}

	s.mu.Lock()
	return s.commit(action), nil
}

// Resolve builds an action from the current state and applies it in the same critical
// section, so no tick or other action lands in between. It returns the states on both
// sides of the transition. Errors from build are returned unchanged and nothing is applied.
func (s *Service) Resolve(ctx context.Context, build func(models.GameState) (models.Action, error)) (prev, next models.GameState, err error) {
	if err := ctx.Err(); err != nil {
		return models.GameState{}, models.GameState{}, err
	}

	s.mu.Lock()
	prev = s.state.Clone()
	action, err := build(prev.Clone())
	if err != nil {
		s.mu.Unlock()
		return prev, prev, err
	}
	if action == nil {
		s.mu.Unlock()
		return prev, prev, ErrNilAction
	}
	return prev, s.commit(action), nil
}

// Close stops ticking and waits for pending result recordings. Transitions after Close
// are still applied but neither tick nor record results.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	if s.ticking {
		s.ticker.StopTicking()
		s.ticking = false
		s.generation++
	}
	s.mu.Unlock()

	s.recording.Wait()
}

func (s *Service) tickFrom(generation uint64) {
	s.mu.Lock()
	if generation != s.generation || !s.state.Active() {
		s.mu.Unlock()
		return
	}
	s.commit(models.Tick{})
}

// commit must be called with s.mu held; it releases it.
func (s *Service) commit(action models.Action) models.GameState {
	prev := s.state
	next := s.engine.Apply(prev, action)
	s.state = next
	s.reconcileTicker(next)

	ended := !prev.GameEnded && next.GameEnded
	record := ended && s.recorder != nil && !s.closed
	if record {
		// Registered under mu so Close never waits concurrently with a first Add.
		s.recording.Add(1)
	}

	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}

	s.notifyMu.Lock()
	s.mu.Unlock()

	if len(listeners) > 0 {
		update := models.Update{
			Action:  action.Type(),
			State:   next.Clone(),
			Effects: deriveEffects(action, prev, next),
		}
		for _, fn := range listeners {
			fn(update)
		}
	}
	s.notifyMu.Unlock()

	if ended {
		s.logger.Info("game ended",
			zap.String("player", next.PlayerName),
			zap.Bool("game_over", next.GameOver),
			zap.Int("money", next.Money),
			zap.Int("time_remaining", next.TimeRemaining))
	}
	if record {
		s.recordResult(next)
	}

	return next.Clone()
}

// reconcileTicker keeps exactly one tick job alive while the game is active.
func (s *Service) reconcileTicker(state models.GameState) {
	if s.ticker == nil {
		return
	}

	switch {
	case state.Active() && !s.ticking && !s.closed:
		s.generation++
		generation := s.generation
		if !s.ticker.StartTicking(func() { s.tickFrom(generation) }) {
			s.logger.Warn("ticker already running, replacing job")
			s.ticker.StopTicking()
			s.ticker.StartTicking(func() { s.tickFrom(generation) })
		}
		s.ticking = true
		s.logger.Debug("ticking started", zap.Uint64("generation", generation))
	case !state.Active() && s.ticking:
		s.ticker.StopTicking()
		s.ticking = false
		s.generation++
		s.logger.Debug("ticking stopped", zap.Uint64("generation", s.generation))
	}
}

// recordResult expects the caller to have added one to s.recording.
func (s *Service) recordResult(state models.GameState) {
	result := models.Summarize(state, s.now().UTC())
	go func() {
		defer s.recording.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.recordTimeout)
		defer cancel()

		if err := s.recorder.RecordResult(ctx, result); err != nil {
			s.logger.Error("failed to record session result", zap.Error(err), zap.String("player", result.PlayerName))
			return
		}
		s.logger.Info("session result recorded", zap.String("player", result.PlayerName), zap.Int("profit", result.Profit))
	}()
}
