// Package debounce delays delivery of scheduled items so that bursts of
// near-simultaneous notifications settle before consumers see them. It does
// not deduplicate: every scheduled item is delivered once.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"

	"scm-event-dispatcher/pkg/log"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 256
)

var ErrStopped = errors.New("debounce: scheduler stopped")

// Handler processes one delivered item on a worker goroutine.
type Handler[T any] func(ctx context.Context, item T)

// Config tunes the worker pool.
type Config struct {
	Workers int
	// QueueSize bounds items that are due but not yet picked up by a worker.
	// When it is full, firing timers block until a worker frees a slot, so
	// overload slows delivery down instead of dropping items.
	QueueSize int
}

// Scheduler fires items after a delay and hands them to a worker pool. Timer
// callbacks only enqueue; a slow handler holds up timers only once the queue
// is full.
type Scheduler[T any] struct {
	clock   Clock
	handler Handler[T]
	l       log.Logger
	workers int
	queue   chan T

	// ctx stops the dequeue loop. Handlers get handlerCtx, which Stop never
	// cancels, so in-flight deliveries run to completion.
	ctx        context.Context
	handlerCtx context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu      sync.Mutex
	timers  map[uint64]Timer
	nextID  uint64
	started bool
	stopped bool
}

// New creates a Scheduler. Call Start before scheduling.
func New[T any](clock Clock, handler Handler[T], l log.Logger, cfg Config) *Scheduler[T] {
	if clock == nil {
		clock = RealClock()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler[T]{
		clock:      clock,
		handler:    handler,
		l:          l,
		workers:    cfg.Workers,
		queue:      make(chan T, cfg.QueueSize),
		ctx:        ctx,
		handlerCtx: context.WithoutCancel(ctx),
		cancel:     cancel,
		timers:     make(map[uint64]Timer),
	}
}

// Start launches the worker pool. It is a no-op when already started.
func (s *Scheduler[T]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.work()
	}
}

// Schedule delivers item no earlier than delay from now. Safe for concurrent use.
func (s *Scheduler[T]) Schedule(item T, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}

	s.nextID++
	id := s.nextID
	s.timers[id] = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.enqueue(item)
	})
	return nil
}

// Pending returns the number of items waiting for their delay to elapse.
func (s *Scheduler[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels pending timers and waits for in-flight handlers, or until ctx
// is done. Items not yet handed to a worker are dropped. Handlers already
// running keep an uncancelled context; ctx is the only bound on them.
func (s *Scheduler[T]) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue blocks while the queue is full, which also holds up the timer
// goroutine that fired (or ManualClock.Advance). Stop releases it.
func (s *Scheduler[T]) enqueue(item T) {
	select {
	case s.queue <- item:
	case <-s.ctx.Done():
	}
}

func (s *Scheduler[T]) work() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case item := <-s.queue:
			s.run(item)
		}
	}
}

func (s *Scheduler[T]) run(item T) {
	defer func() {
		if r := recover(); r != nil && s.l != nil {
			s.l.Errorf(s.handlerCtx, "debounce: handler panicked: %v", r)
		}
	}()
	s.handler(s.handlerCtx, item)
}
