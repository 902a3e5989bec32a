package playback

import (
	"context"
	"math"
	"sync"
	"time"
)

// Speeds lists the playback rates offered by the transport controls.
var Speeds = []float64{0.5, 1, 2, 3}

// NearestSpeed snaps v to the closest supported rate.
func NearestSpeed(v float64) float64 {
	best := Speeds[0]
	for _, s := range Speeds[1:] {
		if math.Abs(v-s) < math.Abs(v-best) {
			best = s
		}
	}
	return best
}

// Sleeper suspends the caller for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Clock converts base choreography durations into wall-clock delays at the
// current playback speed. The speed is read on every call so a change made
// mid-round applies from the next suspension point.
type Clock struct {
	mu    sync.Mutex
	speed float64
	sleep Sleeper
}

func NewClock(speed float64, sleep Sleeper) *Clock {
	if sleep == nil {
		sleep = Sleep
	}
	return &Clock{speed: NearestSpeed(speed), sleep: sleep}
}

func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Clock) SetSpeed(v float64) {
	c.mu.Lock()
	c.speed = NearestSpeed(v)
	c.mu.Unlock()
}

// Scale returns base divided by the current speed.
func (c *Clock) Scale(base time.Duration) time.Duration {
	return scale(base, c.Speed())
}

func scale(base time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(base) / speed)
}

// Delay suspends for base/speed. A non-nil error means the sequence was
// cancelled while waiting.
func (c *Clock) Delay(ctx context.Context, base time.Duration) error {
	return c.sleep(ctx, c.Scale(base))
}
