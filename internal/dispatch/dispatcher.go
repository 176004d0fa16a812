// Package dispatch runs deferred UI work on a single goroutine.
//
// Jobs are posted at normal or idle priority. Idle jobs only run once the
// normal queue is empty and has stayed empty for the settle delay, so a
// window move scheduled during a negotiation always observes the rectangle
// the shell finally committed.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Norgate-AV/dockbar/internal/logger"
)

// Dispatcher is a cooperative two-level job queue
type Dispatcher struct {
	log    logger.LoggerInterface
	settle time.Duration

	mu     sync.Mutex
	normal []func()
	idle   []func()
	wake   chan struct{}
}

// New creates a dispatcher. settle is the quiet period required before idle
// jobs run from Run; RunPending ignores it.
func New(log logger.LoggerInterface, settle time.Duration) *Dispatcher {
	return &Dispatcher{
		log:    log,
		settle: settle,
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn. It never blocks and may be called from any goroutine,
// including from inside a running job.
func (d *Dispatcher) Post(idle bool, fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	if idle {
		d.idle = append(d.idle, fn)
	} else {
		d.normal = append(d.normal, fn)
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued jobs
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.normal) + len(d.idle)
}

// RunPending runs queued jobs on the calling goroutine until both queues are
// empty, always preferring normal jobs. It returns the number of jobs run.
func (d *Dispatcher) RunPending() int {
	count := 0

	for {
		if fn := d.next(false); fn != nil {
			d.run(fn)
			count++
			continue
		}

		if fn := d.next(true); fn != nil {
			d.run(fn)
			count++
			continue
		}

		return count
	}
}

// Run processes jobs until ctx is canceled. Remaining jobs are drained
// before it returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Debug("Dispatcher started")

	timer := time.NewTimer(d.settle)
	if !timer.Stop() {
		<-timer.C
	}

	defer timer.Stop()

	for {
		for fn := d.next(false); fn != nil; fn = d.next(false) {
			d.run(fn)
		}

		if d.hasIdle() {
			timer.Reset(d.settle)

			select {
			case <-ctx.Done():
				return d.stop(ctx)
			case <-d.wake:
				if !timer.Stop() {
					<-timer.C
				}
			case <-timer.C:
				if fn := d.next(true); fn != nil {
					d.run(fn)
				}
			}

			continue
		}

		select {
		case <-ctx.Done():
			return d.stop(ctx)
		case <-d.wake:
		}
	}
}

func (d *Dispatcher) stop(ctx context.Context) error {
	if n := d.RunPending(); n > 0 {
		d.log.Debug("Dispatcher drained pending jobs", slog.Int("count", n))
	}

	d.log.Debug("Dispatcher stopped")
	return ctx.Err()
}

func (d *Dispatcher) hasIdle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.idle) > 0
}

func (d *Dispatcher) next(idle bool) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	queue := &d.normal
	if idle {
		queue = &d.idle
	}

	if len(*queue) == 0 {
		return nil
	}

	fn := (*queue)[0]
	(*queue)[0] = nil
	*queue = (*queue)[1:]

	return fn
}

// run executes one job; a panicking job must not take the loop down with it
func (d *Dispatcher) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Dispatched job panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
