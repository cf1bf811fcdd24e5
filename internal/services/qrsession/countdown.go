package qrsession

import (
	"fmt"
	"sync"
	"time"
)

// Countdown ticks the remaining validity down once per second, floored at 0.
// The network is never consulted for time; Stop cancels the ticker when the
// screen unmounts.
type Countdown struct {
	mu      sync.Mutex
	remain  int
	onTick  func(remain int)
	stop    chan struct{}
	stopped bool
	started bool
}

// NewCountdown creates a countdown from remainSec, clamped to >= 0. onTick
// is called after every decrement with the new value; it may be nil.
func NewCountdown(remainSec int, onTick func(int)) *Countdown {
	if remainSec < 0 {
		remainSec = 0
	}
	return &Countdown{
		remain: remainSec,
		onTick: onTick,
		stop:   make(chan struct{}),
	}
}

// Start launches the 1-second ticker. Starting an exhausted or already
// started countdown is a no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.started || c.stopped || c.remain <= 0 {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				remain := c.step()
				if c.onTick != nil {
					c.onTick(remain)
				}
				if remain == 0 {
					return
				}
			}
		}
	}()
}

// Stop cancels the ticker. Safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stop)
}

// Remain returns the current remaining seconds.
func (c *Countdown) Remain() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remain
}

func (c *Countdown) step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remain > 0 {
		c.remain--
	}
	return c.remain
}

// FormatMMSS renders seconds as mm:ss, showing exactly "00:00" at zero.
func FormatMMSS(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
