package main

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"

	"arenareplay/playback"
)

type action int

const (
	actNone action = iota
	actSeekStart
	actStepBack
	actPlayPause
	actStepForward
	actSeekEnd
	actSkip
	actSpeed
	actRewatch
	actStats
	actOpen
	actCopy
	actExport
	actTheme
	actMute
)

type button struct {
	act     action
	label   string
	tooltip string
	rect    image.Rectangle
}

const (
	transportHeight = 56
	buttonHeight    = 32
	progressHeight  = 8
)

var transportButtons = []struct {
	act     action
	label   string
	tooltip string
	width   int
}{
	{actSeekStart, "|<", "First round (Home)", 40},
	{actStepBack, "<", "Previous round (Left)", 40},
	{actPlayPause, "Play", "Play or pause (Space)", 84},
	{actStepForward, ">", "Next round (Right)", 40},
	{actSeekEnd, ">|", "Last round (End)", 40},
	{actSkip, "Skip", "Skip to result (S)", 60},
	{actSpeed, "1x", "Change speed (1-4)", 52},
	{actRewatch, "Rewatch", "Watch again (R)", 84},
}

// layoutControls centers the transport buttons along the bottom of a w by h
// screen. The progress bar sits above them.
func layoutControls(w, h int) (buttons []button, progress image.Rectangle) {
	const gap = 8
	total := -gap
	for _, b := range transportButtons {
		total += b.width + gap
	}
	x := (w - total) / 2
	y := h - transportHeight + (transportHeight-buttonHeight)/2 + progressHeight/2
	for _, b := range transportButtons {
		buttons = append(buttons, button{
			act:     b.act,
			label:   b.label,
			tooltip: b.tooltip,
			rect:    image.Rect(x, y, x+b.width, y+buttonHeight),
		})
		x += b.width + gap
	}
	progress = image.Rect(24, h-transportHeight-progressHeight/2, w-24, h-transportHeight+progressHeight/2)
	return buttons, progress
}

func hitTest(buttons []button, p image.Point) action {
	for _, b := range buttons {
		if p.In(b.rect) {
			return b.act
		}
	}
	return actNone
}

// progressIndex maps a click on the progress bar to a round index.
func progressIndex(bar image.Rectangle, x, rounds int) int {
	if rounds <= 0 || bar.Dx() <= 0 {
		return 0
	}
	i := (x - bar.Min.X) * rounds / bar.Dx()
	if i < 0 {
		return 0
	}
	if i >= rounds {
		return rounds - 1
	}
	return i
}

var keyActions = map[ebiten.Key]action{
	ebiten.KeySpace:      actPlayPause,
	ebiten.KeyArrowLeft:  actStepBack,
	ebiten.KeyArrowRight: actStepForward,
	ebiten.KeyHome:       actSeekStart,
	ebiten.KeyEnd:        actSeekEnd,
	ebiten.KeyS:          actSkip,
	ebiten.KeyR:          actRewatch,
	ebiten.KeyTab:        actStats,
	ebiten.KeyO:          actOpen,
	ebiten.KeyC:          actCopy,
	ebiten.KeyP:          actExport,
	ebiten.KeyT:          actTheme,
	ebiten.KeyM:          actMute,
}

var speedKeys = map[ebiten.Key]float64{
	ebiten.Key1: 0.5,
	ebiten.Key2: 1,
	ebiten.Key3: 2,
	ebiten.Key4: 3,
}

// wheelLimiter keeps a trackpad fling from skipping through the whole battle.
var wheelLimiter = rate.NewLimiter(rate.Every(125*time.Millisecond), 1)

func wheelAction(dy float64) action {
	switch {
	case dy > 0:
		return actStepBack
	case dy < 0:
		return actStepForward
	}
	return actNone
}

func nextSpeed(cur float64) float64 {
	for i, s := range playback.Speeds {
		if s == cur {
			return playback.Speeds[(i+1)%len(playback.Speeds)]
		}
	}
	return playback.NearestSpeed(cur)
}

// transport is the part of the controller the buttons drive.
type transport interface {
	Play()
	Pause()
	StepForward()
	StepBackward()
	SeekToStart()
	SeekToEnd()
	SkipToEnd()
	SetSpeed(float64)
	Speed() float64
	Rewatch()
	Snapshot() playback.Snapshot
}

// applyTransport runs a transport action. It reports false for actions the
// viewer handles itself.
func applyTransport(t transport, a action) bool {
	switch a {
	case actSeekStart:
		t.SeekToStart()
	case actStepBack:
		t.StepBackward()
	case actPlayPause:
		if t.Snapshot().Playing {
			t.Pause()
		} else {
			t.Play()
		}
	case actStepForward:
		t.StepForward()
	case actSeekEnd:
		t.SeekToEnd()
	case actSkip:
		t.SkipToEnd()
	case actSpeed:
		t.SetSpeed(nextSpeed(t.Speed()))
	case actRewatch:
		t.Rewatch()
	default:
		return false
	}
	return true
}

// buttonLabel reflects the current state on the toggling buttons.
func buttonLabel(b button, s playback.Snapshot) string {
	switch b.act {
	case actPlayPause:
		if s.Playing {
			return "Pause"
		}
		if s.Finished {
			return "Replay"
		}
		return "Play"
	case actSpeed:
		return speedLabel(s.Speed)
	}
	return b.label
}

// buttonEnabled greys out moves that would do nothing.
func buttonEnabled(b button, s playback.Snapshot) bool {
	if s.Total == 0 {
		return false
	}
	switch b.act {
	case actSeekStart, actStepBack:
		return s.Index > 0
	case actStepForward, actSeekEnd:
		return s.Index < s.Total-1
	case actRewatch:
		return s.Finished
	case actSkip:
		return !s.Finished
	}
	return true
}
