package provider

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dimchat/gsp/internal/log"
)

// LoadFunc produces a fresh record, typically by calling Open.
type LoadFunc func(ctx context.Context) (*Provider, error)

// Holder keeps the current Provider for the life of a process. Readers
// call Current; Reload replaces the whole record at once.
type Holder struct {
	load  LoadFunc
	cur   atomic.Pointer[Provider]
	group singleflight.Group
}

// NewHolder returns a Holder serving initial until the next Reload.
func NewHolder(initial *Provider, load LoadFunc) *Holder {
	h := &Holder{load: load}
	h.cur.Store(initial)
	return h
}

// LoadHolder performs the initial load and fails if it does.
func LoadHolder(ctx context.Context, load LoadFunc) (*Holder, error) {
	p, err := load(ctx)
	if err != nil {
		return nil, err
	}
	return NewHolder(p, load), nil
}

// Current returns the record in effect. It never returns a partially
// updated value.
func (h *Holder) Current() *Provider {
	return h.cur.Load()
}

// Reload loads a new record and swaps it in. Concurrent calls share one
// load. On failure the previous record stays current and is returned with
// the error.
func (h *Holder) Reload(ctx context.Context) (*Provider, error) {
	v, err, shared := h.group.Do("reload", func() (any, error) {
		p, err := h.load(ctx)
		if err != nil {
			return nil, err
		}
		prev := h.cur.Swap(p)
		if !prev.Equal(p) {
			log.Info("provider record replaced", "id", p.ID(), "stations", len(p.stations))
		}
		return p, nil
	})
	if err != nil {
		log.Warn("provider reload failed, keeping previous record", "error", err, "shared", shared)
		return h.Current(), err
	}
	return v.(*Provider), nil
}

// Watch reloads every interval until ctx is done, calling onChange when
// the record differs from the one it replaced. Reload errors are logged
// and the loop continues.
func (h *Holder) Watch(ctx context.Context, interval time.Duration, onChange func(prev, next *Provider)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		prev := h.Current()
		next, err := h.Reload(ctx)
		if err != nil {
			continue
		}
		if onChange != nil && !prev.Equal(next) {
			onChange(prev, next)
		}
	}
}
