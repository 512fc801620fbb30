package mainloop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

const defaultQueueSize = 64

// Loop runs posted tasks one at a time on a single goroutine, in the order they
// were posted. Callers that must observe state on "the main thread" post onto it.
type Loop struct {
	queue   chan func()
	done    chan struct{}
	drained chan struct{}
	stop    sync.Once
	running atomic.Bool
	logger  *slog.Logger

	// mu guards sealed; Post holds it shared while enqueueing.
	mu     sync.RWMutex
	sealed bool
}

func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Loop{
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		logger:  slog.Default().WithGroup("authbridge").WithGroup("mainloop"),
	}
}

// Run executes queued tasks until ctx ends or Stop is called. Every task whose
// Post succeeded runs before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	l.logger.Info("main loop started")
	defer l.logger.Info("main loop stopped")

	for {
		select {
		case <-ctx.Done():
			l.shutdown(ctx)
			return nil
		case <-l.done:
			l.shutdown(ctx)
			return nil
		case task := <-l.queue:
			l.execute(task)
		}
	}
}

func (l *Loop) shutdown(ctx context.Context) {
	l.Stop()
	defer close(l.drained)

	var n int
	for {
		select {
		case task := <-l.queue:
			l.execute(task)
			n++
		default:
			if n > 0 {
				l.logger.InfoContext(ctx, "ran tasks queued before stop", slog.Int("count", n))
			}

			return
		}
	}
}

func (l *Loop) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked",
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	task()
}

// Post enqueues task without waiting for it to run. A nil error means the task
// will run, either on the loop or while Run drains the queue after Stop.
func (l *Loop) Post(ctx context.Context, task func()) error {
	if task == nil {
		return ErrTaskNil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.sealed {
		return ErrStopped
	}

	select {
	case <-l.done:
		return ErrStopped
	default:
	}

	select {
	case l.queue <- task:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do enqueues task and waits until it has run.
func (l *Loop) Do(ctx context.Context, task func()) error {
	if task == nil {
		return ErrTaskNil
	}

	finished := make(chan struct{})
	if err := l.Post(ctx, func() {
		defer close(finished)
		task()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.drained:
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		select {
		case <-finished:
			return nil
		default:
			return ctx.Err()
		}
	}
}

// Stop ends Run and rejects further posts. Posts blocked on a full queue
// return ErrStopped.
func (l *Loop) Stop() {
	l.stop.Do(func() {
		close(l.done)
	})

	l.mu.Lock()
	l.sealed = true
	l.mu.Unlock()
}
