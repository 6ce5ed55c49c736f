package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/superclaims/pkg/lifecycle"
)

func TestReady(t *testing.T) {
	tests := []struct {
		name    string
		startup bool
		checks  map[string]bool
		want    bool
	}{
		{"before startup", false, nil, false},
		{"after startup", true, nil, true},
		{"passing checks", true, map[string]bool{"oracle": true, "rasterizer": true}, true},
		{"failing check", true, map[string]bool{"oracle": true, "rasterizer": false}, false},
		{"checks without startup", false, map[string]bool{"oracle": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := lifecycle.New()
			for name, ok := range tt.checks {
				lc.AddCheck(name, lifecycle.CheckFunc(func() bool { return ok }))
			}
			if tt.startup {
				lc.WaitForStartup()
			}

			if got := lc.Ready(); got != tt.want {
				t.Errorf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusTracksChecks(t *testing.T) {
	lc := lifecycle.New()

	var rendering atomic.Bool
	lc.AddCheck("rasterizer", lifecycle.CheckFunc(rendering.Load))
	lc.AddCheck("oracle", lifecycle.CheckFunc(func() bool { return true }))
	lc.WaitForStartup()

	status := lc.Status()
	if len(status) != 2 || status["rasterizer"] || !status["oracle"] {
		t.Fatalf("status = %v", status)
	}

	rendering.Store(true)
	if !lc.Status()["rasterizer"] {
		t.Error("rasterizer check should report the updated state")
	}
	if !lc.Ready() {
		t.Error("coordinator should be ready once every check passes")
	}
}

func TestWaitForStartupRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Int32
	for range 4 {
		lc.OnStartup(func() {
			time.Sleep(5 * time.Millisecond)
			ran.Add(1)
		})
	}
	lc.WaitForStartup()

	if got := ran.Load(); got != 4 {
		t.Errorf("startup hooks run = %d, want 4", got)
	}
}

func TestShutdown(t *testing.T) {
	tests := []struct {
		name    string
		hold    time.Duration
		timeout time.Duration
		wantErr bool
	}{
		{"no hooks", 0, time.Second, false},
		{"hooks finish", 10 * time.Millisecond, 5 * time.Second, false},
		{"hooks outlive timeout", 500 * time.Millisecond, 20 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := lifecycle.New()

			var released atomic.Bool
			if tt.hold > 0 {
				lc.OnShutdown(func() {
					<-lc.Context().Done()
					time.Sleep(tt.hold)
					released.Store(true)
				})
			}
			lc.WaitForStartup()

			err := lc.Shutdown(tt.timeout)

			select {
			case <-lc.Context().Done():
			default:
				t.Error("context should be cancelled by Shutdown")
			}

			if tt.wantErr {
				if !errors.Is(err, lifecycle.ErrShutdownTimeout) {
					t.Fatalf("err = %v, want ErrShutdownTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Shutdown: %v", err)
			}
			if tt.hold > 0 && !released.Load() {
				t.Error("shutdown hook did not finish")
			}
		})
	}
}

func TestShutdownTwice(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	for i := range 2 {
		if err := lc.Shutdown(time.Second); err != nil {
			t.Fatalf("Shutdown #%d: %v", i+1, err)
		}
	}
}
