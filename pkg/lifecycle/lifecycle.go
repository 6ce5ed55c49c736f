// Package lifecycle coordinates process startup, readiness, and graceful
// shutdown across the subsystems of a long-running service.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when shutdown hooks outlive the allotted timeout.
var ErrShutdownTimeout = errors.New("shutdown timed out")

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// CheckFunc adapts a plain function to a ReadinessChecker.
type CheckFunc func() bool

func (f CheckFunc) Ready() bool { return f() }

// Coordinator runs startup hooks, gates readiness on named checks, and drains
// shutdown hooks once its context is cancelled.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	starting sync.WaitGroup
	stopping sync.WaitGroup

	mu      sync.RWMutex
	started bool
	checks  map[string]ReadinessChecker
}

func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		checks: make(map[string]ReadinessChecker),
	}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn in its own goroutine. WaitForStartup blocks until every
// startup hook returns.
func (c *Coordinator) OnStartup(fn func()) {
	c.starting.Go(fn)
}

// OnShutdown runs fn in its own goroutine. Hooks are expected to block on
// Context().Done() before releasing resources.
func (c *Coordinator) OnShutdown(fn func()) {
	c.stopping.Go(fn)
}

// AddCheck registers or replaces the named readiness check.
func (c *Coordinator) AddCheck(name string, check ReadinessChecker) {
	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

// Ready reports whether startup has completed and every check passes.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	started := c.started
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	if !started {
		return false
	}
	for _, check := range checks {
		if !check.Ready() {
			return false
		}
	}
	return true
}

// Status evaluates each check and reports the result by name.
func (c *Coordinator) Status() map[string]bool {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	status := make(map[string]bool, len(checks))
	for name, check := range checks {
		status[name] = check.Ready()
	}
	return status
}

func (c *Coordinator) WaitForStartup() {
	c.starting.Wait()

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
}

// Shutdown cancels the coordinator context and waits up to timeout for the
// shutdown hooks to return. Calling it more than once is safe.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.stopping.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
	}
}
