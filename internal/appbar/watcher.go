package appbar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Norgate-AV/dockbar/internal/display"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// Watcher polls the display configuration and re-negotiates every bar on
// the scheduler when monitors are added, removed or rearranged
type Watcher struct {
	engine    *Engine
	scheduler interfaces.Scheduler
	log       logger.LoggerInterface

	mu   sync.Mutex
	last []geometry.Screen
}

// NewWatcher creates a watcher using the current configuration as baseline
func NewWatcher(engine *Engine, scheduler interfaces.Scheduler, log logger.LoggerInterface) *Watcher {
	return &Watcher{
		engine:    engine,
		scheduler: scheduler,
		log:       log,
		last:      engine.Display().Screens(),
	}
}

// Changed reports whether the attached displays differ from the baseline
func (w *Watcher) Changed() bool {
	screens := w.engine.Display().Screens()
	if screens == nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return !display.SameLayout(w.last, screens)
}

// Poll compares the attached displays with the baseline. On a change the
// baseline is replaced and a re-negotiation is posted to the scheduler.
func (w *Watcher) Poll() bool {
	screens := w.engine.Display().Screens()

	// Enumeration failed; keep the old baseline
	if screens == nil {
		return false
	}

	w.mu.Lock()
	if display.SameLayout(w.last, screens) {
		w.mu.Unlock()
		return false
	}

	previous := len(w.last)
	w.last = screens
	w.mu.Unlock()

	w.log.Info("Display configuration changed",
		slog.Int("previous", previous),
		slog.Int("screens", len(screens)),
	)

	w.scheduler.Post(false, func() {
		for _, res := range w.engine.Renegotiate(screens) {
			if res.Status == StatusFatal {
				w.log.Warn("Could not reposition app bar", slog.Any("error", res.Err))
			}
		}
	})

	return true
}

// Start launches a background goroutine that polls every interval until ctx
// is canceled. After a change is seen it waits settle before re-reading the
// displays, giving the shell time to rebuild its own taskbars.
func (w *Watcher) Start(ctx context.Context, interval, settle time.Duration) {
	go func() {
		w.log.Debug("Display watcher started", slog.Duration("interval", interval))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.log.Debug("Display watcher stopped")
				return
			case <-ticker.C:
			}

			if !w.Changed() {
				continue
			}

			select {
			case <-ctx.Done():
				w.log.Debug("Display watcher stopped")
				return
			case <-time.After(settle):
			}

			w.Poll()
		}
	}()
}
