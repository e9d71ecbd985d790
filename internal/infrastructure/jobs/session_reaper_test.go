package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type prunerStub struct {
	calls int32
}

func (p *prunerStub) ReapIdle(time.Duration) int {
	atomic.AddInt32(&p.calls, 1)
	return 1
}

func TestSessionReaperJob_RunsAndStops(t *testing.T) {
	pruner := &prunerStub{}
	job := NewSessionReaperJob(pruner, time.Hour)
	job.interval = 5 * time.Millisecond

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&pruner.calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("pruner never invoked")
		case <-time.After(time.Millisecond):
		}
	}

	job.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}

func TestSessionReaperJob_StopsOnContextCancel(t *testing.T) {
	job := NewSessionReaperJob(&prunerStub{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop on context cancel")
	}
}
