package main

import (
	"math"
	"testing"

	"arenareplay/battlelog"
	"arenareplay/playback"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestChargeKeyframes(t *testing.T) {
	cases := []struct {
		name      string
		t         float64
		dx, scale float64
	}{
		{playback.AnimChargeRight, 0, 0, 1},
		{playback.AnimChargeRight, 0.42, 150, 1.08},
		{playback.AnimChargeRight, 0.68, 135, 1.03},
		{playback.AnimChargeRight, 1, 0, 1},
		{playback.AnimChargeLeft, 0.42, -150, 1.08},
		{playback.AnimChargeRight, 0.21, 75, 1.04},
	}
	for _, tt := range cases {
		p := fighterPose(tt.name, tt.t, battlelog.Attacker)
		if !near(p.dx, tt.dx) || !near(p.scale, tt.scale) {
			t.Errorf("%s at %v: got dx=%v scale=%v", tt.name, tt.t, p.dx, p.scale)
		}
	}
}

func TestShakeReturnsHome(t *testing.T) {
	for _, at := range []float64{0.2, 0.4, 0.6, 0.8} {
		if p := fighterPose(playback.AnimShake, at, battlelog.Defender); p.dx == 0 {
			t.Fatalf("no shake offset at %v", at)
		}
	}
	if p := fighterPose(playback.AnimShake, 1, battlelog.Defender); p != restPose {
		t.Fatalf("shake did not settle: %#v", p)
	}
}

func TestEliminateEndsFaded(t *testing.T) {
	p := fighterPose(playback.AnimEliminate, 1, battlelog.Attacker)
	if !near(p.alpha, 0.35) || !near(p.scale, 0.88) || p.gray != 1 {
		t.Fatalf("got %#v", p)
	}
	if p := fighterPose(playback.AnimEliminate, 2, battlelog.Attacker); !near(p.alpha, 0.35) {
		t.Fatalf("progress past the end should clamp, got %#v", p)
	}
}

func TestEnterMirrorsForDefender(t *testing.T) {
	l := fighterPose(playback.AnimEnter, 0, battlelog.Attacker)
	r := fighterPose(playback.AnimEnter, 0, battlelog.Defender)
	if l.dx >= 0 || r.dx <= 0 || l.alpha != 0 {
		t.Fatalf("left %#v right %#v", l, r)
	}
}

func TestUnknownAndHidden(t *testing.T) {
	if p := fighterPose("dance", 0.5, battlelog.Attacker); p != restPose {
		t.Fatalf("unknown animation should rest, got %#v", p)
	}
	if p := fighterPose(playback.AnimIdle, 0.5, battlelog.Attacker); p != restPose {
		t.Fatalf("idle should rest, got %#v", p)
	}
	if p := fighterPose(playback.AnimHidden, 0, battlelog.Attacker); p.alpha != 0 {
		t.Fatalf("hidden fighter visible: %#v", p)
	}
}

func TestFloatAndBurst(t *testing.T) {
	if p := sample(floatFrames, 0.28); !near(p.dy, -28) || !near(p.scale, 1.2) {
		t.Fatalf("float at peak %#v", p)
	}
	if p := sample(floatFrames, 1); p.alpha != 0 || !near(p.dy, -90) {
		t.Fatalf("float end %#v", p)
	}
	if p := sample(burstFrames, 0.38); !near(p.scale, 1.7) || !near(p.alpha, 0.9) {
		t.Fatalf("burst at 38%% %#v", p)
	}
}
