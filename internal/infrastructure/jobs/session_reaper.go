package jobs

import (
	"context"
	"log"
	"time"
)

// SessionPruner removes idle sessions. Satisfied by
// *usecases.SessionManager.
type SessionPruner interface {
	ReapIdle(maxIdle time.Duration) int
}

// SessionReaperJob periodically drops sessions no request has touched
// in a while, so abandoned tabs do not pin orchestrators forever.
type SessionReaperJob struct {
	pruner   SessionPruner
	interval time.Duration
	maxIdle  time.Duration
	stop     chan struct{}
}

func NewSessionReaperJob(pruner SessionPruner, maxIdle time.Duration) *SessionReaperJob {
	if maxIdle <= 0 {
		maxIdle = time.Hour
	}
	return &SessionReaperJob{
		pruner:   pruner,
		interval: time.Minute,
		maxIdle:  maxIdle,
		stop:     make(chan struct{}),
	}
}

func (j *SessionReaperJob) Start(ctx context.Context) {
	log.Println("🕐 Starting session reaper job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Session reaper job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Session reaper job stopped")
			return
		case <-ticker.C:
			if reaped := j.pruner.ReapIdle(j.maxIdle); reaped > 0 {
				log.Printf("🔄 Reaped %d idle sessions", reaped)
			}
		}
	}
}

func (j *SessionReaperJob) Stop() {
	close(j.stop)
}
