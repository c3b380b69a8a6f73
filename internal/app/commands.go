package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/domain"
)

// Control models a UI control that is disabled while its own request is outstanding.
type Control struct{ busy atomic.Bool }

// Acquire disables the control; false means a request is already in flight.
func (c *Control) Acquire() bool { return c.busy.CompareAndSwap(false, true) }

func (c *Control) Release() { c.busy.Store(false) }

func (c *Control) Busy() bool { return c.busy.Load() }

// State is a mutex-guarded value owned by one view.
type State[S any] struct {
	mu sync.RWMutex
	v  S
}

func NewState[S any](v S) *State[S] { return &State[S]{v: v} }

func (s *State[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *State[S]) Set(v S) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

// Update applies a pure patch under the lock.
func (s *State[S]) Update(patch func(S) S) {
	s.mu.Lock()
	s.v = patch(s.v)
	s.mu.Unlock()
}

// Command is a backend request followed by a pure patch of local state.
// Apply runs only when Issue succeeded; nothing is re-fetched.
type Command[S any] struct {
	Name    string
	Issue   func(ctx context.Context) error
	Apply   func(S) S
	Success string // toast on success; empty for none
	Failure string // toast fallback when the backend gives no usable message
}

// Execute runs cmd against st. ctl (optional) guards double submission; n
// (optional) receives the success or error toast. A result that arrives after
// ctx was cancelled is discarded with domain.ErrUnmounted.
func Execute[S any](ctx context.Context, ctl *Control, n domain.Notifier, st *State[S], cmd Command[S]) error {
	if ctl != nil {
		if !ctl.Acquire() {
			return domain.ErrInFlight
		}
		defer ctl.Release()
	}

	err := cmd.Issue(ctx)
	if ctx.Err() != nil {
		log.Debug().Str("command", cmd.Name).Msg("late result discarded")
		return domain.ErrUnmounted
	}
	if err != nil {
		log.Warn().Err(err).Str("command", cmd.Name).Msg("command failed")
		if n != nil {
			n.Add(domain.KindError, domain.UserMessage(err, cmd.Failure))
		}
		return err
	}

	if cmd.Apply != nil {
		st.Update(cmd.Apply)
	}
	if n != nil && cmd.Success != "" {
		n.Add(domain.KindSuccess, cmd.Success)
	}
	return nil
}

// ControlSet holds one Control per row, for lists where each row has its own button.
type ControlSet struct {
	mu sync.Mutex
	m  map[int64]*Control
}

func (s *ControlSet) For(id int64) *Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[int64]*Control{}
	}
	c, ok := s.m[id]
	if !ok {
		c = &Control{}
		s.m[id] = c
	}
	return c
}
