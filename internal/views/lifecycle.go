package views

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Lifecycle is a view's mount scope. Every request the view issues runs on
// Context(); Unmount cancels it, which aborts in-flight requests and makes
// late results discardable.
type Lifecycle struct {
	ID   string
	Name string

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func Mount(parent context.Context, name string) *Lifecycle {
	ctx, cancel := context.WithCancel(parent)
	l := &Lifecycle{ID: uuid.NewString(), Name: name, ctx: ctx, cancel: cancel}
	log.Debug().Str("view", name).Str("view_id", l.ID).Msg("mounted")
	return l
}

func (l *Lifecycle) Context() context.Context { return l.ctx }

// Alive reports whether results may still be applied.
func (l *Lifecycle) Alive() bool { return l.ctx.Err() == nil }

func (l *Lifecycle) Unmount() {
	l.once.Do(func() {
		l.cancel()
		log.Debug().Str("view", l.Name).Str("view_id", l.ID).Msg("unmounted")
	})
}
