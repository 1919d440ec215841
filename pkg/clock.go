package pkg

import (
	"context"
	"sync"
	"time"
)

// Clock emits a gravity tick every Interval while it is not paused.
type Clock struct {
	Interval time.Duration
	C        chan struct{}

	paused bool
	mu     sync.Mutex
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{
		Interval: interval,
		C:        make(chan struct{}, 1),
		paused:   true,
	}
}

func (cl *Clock) Run(ctx context.Context) {
	tick := time.NewTicker(cl.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if cl.Paused() {
				continue
			}
			// Drop the tick if the last one has not been taken yet
			select {
			case cl.C <- struct{}{}:
			default:
			}
		}
	}
}

func (cl *Clock) Paused() bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.paused
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.paused = true
}

func (cl *Clock) Resume() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.paused = false
}
