package debounce_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"scm-event-dispatcher/pkg/debounce"
	"scm-event-dispatcher/pkg/log"
)

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return ""
	}
}

func assertNothing(t *testing.T, ch <-chan string) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected delivery %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedulerDelay(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	got := make(chan string, 10)
	s := debounce.New[string](clock, func(_ context.Context, item string) { got <- item }, log.NewNop(), debounce.Config{Workers: 2})
	s.Start()
	defer s.Stop(context.Background())

	if err := s.Schedule("push", 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("not delivered early", func(t *testing.T) {
		clock.Advance(4999 * time.Millisecond)
		assertNothing(t, got)
		if s.Pending() != 1 {
			t.Errorf("expected 1 pending, got %d", s.Pending())
		}
	})

	t.Run("delivered once delay elapsed", func(t *testing.T) {
		clock.Advance(time.Millisecond)
		if v := waitFor(t, got); v != "push" {
			t.Errorf("expected push, got %q", v)
		}
		if s.Pending() != 0 {
			t.Errorf("expected 0 pending, got %d", s.Pending())
		}
	})
}

func TestSchedulerDoesNotDeduplicate(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	got := make(chan string, 10)
	s := debounce.New[string](clock, func(_ context.Context, item string) { got <- item }, log.NewNop(), debounce.Config{Workers: 1})
	s.Start()
	defer s.Stop(context.Background())

	_ = s.Schedule("same", time.Second)
	_ = s.Schedule("same", time.Second)
	clock.Advance(time.Second)

	waitFor(t, got)
	waitFor(t, got)
}

func TestSchedulerTimerNeverBlocksOnHandler(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	gate := make(chan struct{})
	var mu sync.Mutex
	handled := 0
	s := debounce.New[int](clock, func(_ context.Context, _ int) {
		<-gate
		mu.Lock()
		handled++
		mu.Unlock()
	}, log.NewNop(), debounce.Config{Workers: 1, QueueSize: 16})
	s.Start()

	for i := 0; i < 5; i++ {
		_ = s.Schedule(i, time.Second)
	}

	advanced := make(chan struct{})
	go func() {
		clock.Advance(time.Second)
		close(advanced)
	}()

	select {
	case <-advanced:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callbacks blocked on a slow handler")
	}

	close(gate)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}

func TestSchedulerRecoversHandlerPanic(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	got := make(chan string, 10)
	s := debounce.New[string](clock, func(_ context.Context, item string) {
		if item == "boom" {
			panic("bad notification")
		}
		got <- item
	}, log.NewNop(), debounce.Config{Workers: 1})
	s.Start()
	defer s.Stop(context.Background())

	_ = s.Schedule("boom", time.Second)
	_ = s.Schedule("ok", 2*time.Second)
	clock.Advance(2 * time.Second)

	if v := waitFor(t, got); v != "ok" {
		t.Errorf("expected ok, got %q", v)
	}
}

func TestSchedulerStop(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	got := make(chan string, 10)
	s := debounce.New[string](clock, func(_ context.Context, item string) { got <- item }, log.NewNop(), debounce.Config{})
	s.Start()

	_ = s.Schedule("pending", time.Minute)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clock.Pending() != 0 {
		t.Errorf("expected timers to be stopped, %d left", clock.Pending())
	}
	if err := s.Schedule("late", time.Second); !errors.Is(err, debounce.ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}

	clock.Advance(time.Hour)
	assertNothing(t, got)
}

func TestSchedulerStopKeepsHandlerContextAlive(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	started := make(chan struct{})
	gate := make(chan struct{})
	ctxErr := make(chan error, 1)
	s := debounce.New[string](clock, func(ctx context.Context, _ string) {
		close(started)
		<-gate
		ctxErr <- ctx.Err()
	}, log.NewNop(), debounce.Config{Workers: 1})
	s.Start()

	_ = s.Schedule("in-flight", time.Second)
	clock.Advance(time.Second)
	<-started

	stopped := make(chan error, 1)
	go func() { stopped <- s.Stop(context.Background()) }()

	// Wait until Stop has taken effect before releasing the handler.
	for !errors.Is(s.Schedule("late", time.Second), debounce.ErrStopped) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)

	select {
	case err := <-ctxErr:
		if err != nil {
			t.Errorf("handler context cancelled during shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never finished")
	}
	if err := <-stopped; err != nil {
		t.Errorf("unexpected stop error: %v", err)
	}
}

func TestSchedulerStopDeadlineBoundsSlowHandler(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	started := make(chan struct{})
	gate := make(chan struct{})
	defer close(gate)
	s := debounce.New[string](clock, func(_ context.Context, _ string) {
		close(started)
		<-gate
	}, log.NewNop(), debounce.Config{Workers: 1})
	s.Start()

	_ = s.Schedule("slow", time.Second)
	clock.Advance(time.Second)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestSchedulerFullQueueAppliesBackPressure(t *testing.T) {
	clock := debounce.NewManualClock(time.Unix(0, 0))
	gate := make(chan struct{})
	got := make(chan string, 10)
	s := debounce.New[string](clock, func(_ context.Context, item string) {
		<-gate
		got <- item
	}, log.NewNop(), debounce.Config{Workers: 1, QueueSize: 1})
	s.Start()
	defer s.Stop(context.Background())

	for _, item := range []string{"a", "b", "c"} {
		_ = s.Schedule(item, time.Second)
	}

	advanced := make(chan struct{})
	go func() {
		clock.Advance(time.Second)
		close(advanced)
	}()

	// One item with the worker, one queued, the third waits for a slot.
	select {
	case <-advanced:
		t.Fatal("expected the full queue to hold up the firing timer")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case <-advanced:
	case <-time.After(2 * time.Second):
		t.Fatal("timer stayed blocked after the queue drained")
	}

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		seen[waitFor(t, got)] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected every item delivered, got %v", seen)
	}
}
