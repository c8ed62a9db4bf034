package leaktest

import (
	"testing"
	"time"
)

// recordingTB captures failures without failing the real test
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WaitsForShutdown(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() {
			time.Sleep(20 * time.Millisecond)
			close(done)
		}()
	})
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	block := make(chan struct{})
	defer close(block)
	go func() { <-block }()

	checker.Check(0)
	if !rec.failed {
		t.Fatal("expected the blocked goroutine to be reported")
	}
}
