package main

import (
	"arenareplay/battlelog"
	"arenareplay/playback"
)

// pose is the transform applied to a fighter portrait for one frame.
type pose struct {
	dx, dy float64
	scale  float64
	alpha  float64
	bright float64 // additive white, 0..1
	gray   float64 // desaturation, 0..1
	glow   float64 // winner halo strength, 0..1
}

var restPose = pose{scale: 1, alpha: 1}

type keyframe struct {
	at float64
	p  pose
}

func kf(at float64, fn func(p *pose)) keyframe {
	p := restPose
	if fn != nil {
		fn(&p)
	}
	return keyframe{at: at, p: p}
}

// chargeFrames rush toward the opponent with dx measured toward the right.
var chargeFrames = []keyframe{
	kf(0, nil),
	kf(0.42, func(p *pose) { p.dx, p.scale = 150, 1.08 }),
	kf(0.68, func(p *pose) { p.dx, p.scale = 135, 1.03 }),
	kf(1, nil),
}

var animFrames = map[string][]keyframe{
	playback.AnimEnter: {
		kf(0, func(p *pose) { p.dx, p.alpha, p.scale = -120, 0, 0.9 }),
		kf(0.7, func(p *pose) { p.dx, p.scale = 8, 1.02 }),
		kf(1, nil),
	},
	playback.AnimHit: {
		kf(0, nil),
		kf(0.18, func(p *pose) { p.bright = 0.85 }),
		kf(1, nil),
	},
	playback.AnimShake: {
		kf(0, nil),
		kf(0.2, func(p *pose) { p.dx = -13 }),
		kf(0.4, func(p *pose) { p.dx = 13 }),
		kf(0.6, func(p *pose) { p.dx = -9 }),
		kf(0.8, func(p *pose) { p.dx = 9 }),
		kf(1, nil),
	},
	playback.AnimGlow: {
		kf(0, nil),
		kf(0.35, func(p *pose) { p.glow, p.scale = 1, 1.04 }),
		kf(1, func(p *pose) { p.glow = 0.4 }),
	},
	playback.AnimEliminate: {
		kf(0, nil),
		kf(0.28, func(p *pose) { p.bright, p.scale = 0.6, 1.06 }),
		kf(1, func(p *pose) { p.alpha, p.scale, p.gray = 0.35, 0.88, 1 }),
	},
}

var floatFrames = []keyframe{
	kf(0, func(p *pose) { p.scale = 1.7 }),
	kf(0.28, func(p *pose) { p.dy, p.scale = -28, 1.2 }),
	kf(1, func(p *pose) { p.dy, p.scale, p.alpha = -90, 0.7, 0 }),
}

var burstFrames = []keyframe{
	kf(0, func(p *pose) { p.scale = 0.08 }),
	kf(0.38, func(p *pose) { p.scale, p.alpha = 1.7, 0.9 }),
	kf(0.7, func(p *pose) { p.scale, p.alpha = 1.4, 0.4 }),
	kf(1, func(p *pose) { p.scale, p.alpha = 2, 0 }),
}

// fighterPose samples the named animation at progress t in [0,1] for the
// fighter standing on side. Offsets are mirrored for the right column.
func fighterPose(name string, t float64, side battlelog.SideKey) pose {
	var p pose
	switch name {
	case playback.AnimHidden:
		p = restPose
		p.alpha = 0
		return p
	case playback.AnimChargeRight:
		return sample(chargeFrames, t)
	case playback.AnimChargeLeft:
		p = sample(chargeFrames, t)
		p.dx = -p.dx
		return p
	}
	frames, ok := animFrames[name]
	if !ok {
		return restPose
	}
	p = sample(frames, t)
	if side == battlelog.Defender && name == playback.AnimEnter {
		p.dx = -p.dx
	}
	return p
}

func sample(frames []keyframe, t float64) pose {
	if t <= frames[0].at {
		return frames[0].p
	}
	for i := 1; i < len(frames); i++ {
		b := frames[i]
		if t > b.at {
			continue
		}
		a := frames[i-1]
		f := (t - a.at) / (b.at - a.at)
		return lerpPose(a.p, b.p, f)
	}
	return frames[len(frames)-1].p
}

func lerpPose(a, b pose, f float64) pose {
	l := func(x, y float64) float64 { return x + (y-x)*f }
	return pose{
		dx:     l(a.dx, b.dx),
		dy:     l(a.dy, b.dy),
		scale:  l(a.scale, b.scale),
		alpha:  l(a.alpha, b.alpha),
		bright: l(a.bright, b.bright),
		gray:   l(a.gray, b.gray),
		glow:   l(a.glow, b.glow),
	}
}
