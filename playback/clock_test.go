package playback

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNearestSpeed(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{0.8, 1},
		{1.4, 1},
		{2, 2},
		{2.6, 3},
		{10, 3},
	}
	for _, tt := range cases {
		if got := NearestSpeed(tt.in); got != tt.want {
			t.Errorf("NearestSpeed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockScale(t *testing.T) {
	c := NewClock(1, nil)
	if got := c.Scale(650 * time.Millisecond); got != 650*time.Millisecond {
		t.Fatalf("1x scale got %v", got)
	}
	c.SetSpeed(2)
	if got := c.Scale(650 * time.Millisecond); got != 325*time.Millisecond {
		t.Fatalf("2x scale got %v", got)
	}
	c.SetSpeed(0.5)
	if got := c.Scale(160 * time.Millisecond); got != 320*time.Millisecond {
		t.Fatalf("0.5x scale got %v", got)
	}
}

func TestDoublingSpeedNeverLengthensDelays(t *testing.T) {
	bases := []time.Duration{0, time.Nanosecond, 160 * time.Millisecond, 190 * time.Millisecond, 750 * time.Millisecond}
	for _, s := range []float64{0.5, 1, 1.5} {
		for _, b := range bases {
			slow, fast := scale(b, s), scale(b, 2*s)
			if fast > slow {
				t.Errorf("speed %v base %v: doubled delay %v longer than %v", s, b, fast, slow)
			}
			if b >= time.Millisecond && fast >= slow {
				t.Errorf("speed %v base %v: doubled delay %v not shorter than %v", s, b, fast, slow)
			}
		}
	}
}

func TestClockDelayReadsSpeedPerCall(t *testing.T) {
	var got []time.Duration
	c := NewClock(1, func(ctx context.Context, d time.Duration) error {
		got = append(got, d)
		return nil
	})
	ctx := context.Background()
	if err := c.Delay(ctx, 300*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	c.SetSpeed(3)
	if err := c.Delay(ctx, 300*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 300*time.Millisecond || got[1] != 100*time.Millisecond {
		t.Fatalf("got delays %v", got)
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Sleep(ctx, time.Hour) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Sleep ignored cancellation")
	}
}

func TestSleepElapses(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Fatalf("Sleep returned early")
	}
}
