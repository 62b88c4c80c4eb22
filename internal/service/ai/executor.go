package ai

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Task is one prompt-production step bound to the model client.
type Task func(ctx context.Context) (string, error)

// Executor runs a Task with a per-attempt timeout and a bounded retry budget.
// There is deliberately no fallback answer: after the budget is exhausted the
// last failure is propagated to the caller. A timed-out attempt counts as a
// failure toward the budget; cancelling the attempt context also aborts the
// in-flight HTTP request, so no call keeps running in the background.
type Executor struct {
	MaxRetries int
	Timeout    time.Duration
	Backoff    time.Duration
	// OnStatus receives operator-visible progress lines. It carries no
	// control-flow meaning and may be nil.
	OnStatus func(string)
}

// NewExecutor returns an Executor with the standard 1s retry backoff.
func NewExecutor(maxRetries int, timeout time.Duration) *Executor {
	return &Executor{
		MaxRetries: maxRetries,
		Timeout:    timeout,
		Backoff:    time.Second,
	}
}

// Run executes the task, retrying up to MaxRetries additional times.
func (e *Executor) Run(ctx context.Context, name string, task Task) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= e.MaxRetries; attempt++ {
		if attempt > 0 {
			e.status(fmt.Sprintf("%s failed, retrying... (%d/%d)", name, attempt, e.MaxRetries))
			select {
			case <-time.After(e.backoff()):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		result, err := e.runOnce(ctx, name, attempt, task)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Printf("[executor] %s attempt %d failed: %v", name, attempt+1, err)
	}

	return "", fmt.Errorf("%s failed after %d retries: %w", name, e.MaxRetries, lastErr)
}

// runOnce runs the task on a worker goroutine and waits for completion or the
// attempt deadline, whichever comes first.
func (e *Executor) runOnce(ctx context.Context, name string, attempt int, task Task) (string, error) {
	attemptCtx := ctx
	cancel := context.CancelFunc(func() {})
	if e.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, e.Timeout)
	}
	defer cancel()

	type outcome struct {
		result string
		err    error
	}

	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		result, err := task(attemptCtx)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return "", out.err
		}
		e.status(fmt.Sprintf("%s completed in %.1f seconds", name, time.Since(start).Seconds()))
		return out.result, nil
	case <-attemptCtx.Done():
		elapsed := time.Since(start).Seconds()
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		e.status(fmt.Sprintf("%s timed out after %.1f seconds (attempt %d)", name, elapsed, attempt+1))
		return "", fmt.Errorf("%s timed out after %.1fs: %w", name, elapsed, attemptCtx.Err())
	}
}

func (e *Executor) backoff() time.Duration {
	if e.Backoff > 0 {
		return e.Backoff
	}
	return time.Second
}

func (e *Executor) status(msg string) {
	if e.OnStatus != nil {
		e.OnStatus(msg)
	}
}
