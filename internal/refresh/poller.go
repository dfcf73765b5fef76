// Package refresh recomputes the dashboard on a timer. Each tick fetches a
// fresh snapshot and rebuilds everything from scratch.
package refresh

import (
	"context"
	"sync"
	"time"

	"hydromap/internal/dataset"
	"hydromap/internal/logger"
	"hydromap/internal/viewmodel"
)

// State is what the live endpoint serves. Loading is true until the first
// snapshot arrives; Error holds the most recent failure, if any.
type State struct {
	Loading    bool                 `json:"loading"`
	Dashboard  *viewmodel.Dashboard `json:"dashboard,omitempty"`
	ComputedAt time.Time            `json:"computedAt"`
	Error      string               `json:"error,omitempty"`
	Ticks      int                  `json:"ticks"`
}

type Poller struct {
	src       dataset.Source
	assembler *viewmodel.Assembler
	interval  time.Duration
	timeout   time.Duration
	log       *logger.Logger

	mu    sync.RWMutex
	state State
}

func NewPoller(src dataset.Source, assembler *viewmodel.Assembler, interval, timeout time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		src:       src,
		assembler: assembler,
		interval:  interval,
		timeout:   timeout,
		log:       log.Component("refresh"),
		state:     State{Loading: true},
	}
}

// Run refreshes immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopped")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs one refresh. A failed fetch keeps the last good dashboard
// and records the error.
func (p *Poller) Tick(ctx context.Context) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	start := time.Now()
	snap, err := dataset.FetchSnapshot(ctx, p.src)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Ticks++
	if err != nil {
		p.state.Error = err.Error()
		p.log.WithError(err).Warn("refresh failed")
		return
	}
	dash := p.assembler.Dashboard(snap)
	p.state = State{
		Dashboard:  &dash,
		ComputedAt: time.Now().UTC(),
		Ticks:      p.state.Ticks,
	}
	p.log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("dashboard refreshed")
}

func (p *Poller) Latest() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}
