package mainloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func startLoop(t *testing.T) (*Loop, func()) {
	t.Helper()

	loop := New(8)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := loop.Run(ctx); err != nil {
			t.Errorf("Run() unexpected error: %v", err)
		}
	}()

	return loop, func() {
		cancel()
		wg.Wait()
	}
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	t.Parallel()

	loop, stop := startLoop(t)
	defer stop()

	var got []int
	for i := range 5 {
		if err := loop.Post(context.Background(), func() { got = append(got, i) }); err != nil {
			t.Fatalf("Post() unexpected error: %v", err)
		}
	}

	if err := loop.Do(context.Background(), func() {}); err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, got); diff != "" {
		t.Fatalf("task order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopSurvivesPanickingTask(t *testing.T) {
	t.Parallel()

	loop, stop := startLoop(t)
	defer stop()

	if err := loop.Do(context.Background(), func() { panic("boom") }); err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}

	ran := false
	if err := loop.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}

	if !ran {
		t.Fatalf("expected loop to keep running after a panic")
	}
}

func TestLoopPostAfterStop(t *testing.T) {
	t.Parallel()

	loop, stop := startLoop(t)
	stop()

	err := loop.Post(context.Background(), func() {})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestLoopRejectsNilTask(t *testing.T) {
	t.Parallel()

	loop := New(1)

	if err := loop.Post(context.Background(), nil); !errors.Is(err, ErrTaskNil) {
		t.Fatalf("expected ErrTaskNil, got %v", err)
	}
}

func TestLoopRunTwice(t *testing.T) {
	t.Parallel()

	loop, stop := startLoop(t)
	defer stop()

	// wait until the first Run has claimed the loop
	if err := loop.Do(context.Background(), func() {}); err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}

	if err := loop.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestLoopDoHonoursContext(t *testing.T) {
	t.Parallel()

	loop := New(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Do(ctx, func() {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLoopRunsQueuedTasksWhenStoppedWhileBusy(t *testing.T) {
	t.Parallel()

	loop := New(4)
	ctx, cancel := context.WithCancel(context.Background())

	runDone := make(chan error, 1)
	go func() { runDone <- loop.Run(ctx) }()

	busy := make(chan struct{})
	release := make(chan struct{})
	if err := loop.Post(context.Background(), func() {
		close(busy)
		<-release
	}); err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}
	<-busy

	queued := make(chan struct{})
	if err := loop.Post(context.Background(), func() { close(queued) }); err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}

	cancel()
	close(release)

	select {
	case err := <-runDone:
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run() did not return after stop")
	}

	select {
	case <-queued:
	default:
		t.Fatalf("task accepted before stop was never run")
	}

	if err := loop.Post(context.Background(), func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped after Run returned, got %v", err)
	}
}

func TestLoopPostBlockedOnFullQueueFailsOnStop(t *testing.T) {
	t.Parallel()

	loop := New(1)

	if err := loop.Post(context.Background(), func() {}); err != nil {
		t.Fatalf("Post() unexpected error: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Post(context.Background(), func() {}) }()

	time.Sleep(10 * time.Millisecond)
	loop.Stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrStopped) {
			t.Fatalf("expected ErrStopped, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked Post() did not return after Stop")
	}
}

func TestLoopDoReportsTaskThatStopsLoop(t *testing.T) {
	t.Parallel()

	loop := New(1)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = loop.Run(context.Background())
	}()

	ran := false
	if err := loop.Do(context.Background(), func() {
		ran = true
		loop.Stop()
	}); err != nil {
		t.Fatalf("Do() unexpected error for a task that ran: %v", err)
	}

	<-runDone

	if !ran {
		t.Fatalf("expected task to run")
	}
}
