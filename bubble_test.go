package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"arenareplay/battlelog"
	"arenareplay/playback"
)

func TestAdjustBubbleRectClampLeft(t *testing.T) {
	sw, sh := 200, 200
	width, height := 100, 50
	tailHeight := 10
	x, y := 10, 100
	left, _, right, bottom, ax, ay := adjustBubbleRect(x, y, width, height, tailHeight, sw, sh, false)

	if left != 0 {
		t.Fatalf("expected left to be clamped to 0, got %d", left)
	}
	if right-left != width {
		t.Fatalf("expected width %d, got %d", width, right-left)
	}
	if ax != left+width/2 {
		t.Fatalf("tail x not shifted correctly: %d != %d", ax, left+width/2)
	}
	if ay != bottom+tailHeight {
		t.Fatalf("tail y not shifted correctly: %d != %d", ay, bottom+tailHeight)
	}
}

func TestAdjustBubbleRectClampTop(t *testing.T) {
	sw, sh := 200, 200
	width, height := 100, 50
	tailHeight := 10
	x, y := 100, 20
	left, top, _, bottom, ax, ay := adjustBubbleRect(x, y, width, height, tailHeight, sw, sh, false)

	if top != 0 {
		t.Fatalf("expected top to be clamped to 0, got %d", top)
	}
	if bottom-top != height {
		t.Fatalf("expected height %d, got %d", height, bottom-top)
	}
	if ax != left+width/2 {
		t.Fatalf("tail x not shifted correctly: %d != %d", ax, left+width/2)
	}
	if ay != bottom+tailHeight {
		t.Fatalf("tail y not shifted correctly: %d != %d", ay, bottom+tailHeight)
	}
}

func TestAdjustBubbleRectClampRightWithoutTail(t *testing.T) {
	left, top, right, bottom, ax, _ := adjustBubbleRect(190, 100, 60, 20, 10, 200, 200, true)
	if right != 200 || left != 140 {
		t.Fatalf("got left %d right %d", left, right)
	}
	if bottom != 100 || top != 80 {
		t.Fatalf("far bubble should sit on y: top %d bottom %d", top, bottom)
	}
	if ax != 170 {
		t.Fatalf("anchor not shifted: %d", ax)
	}
}

func TestBannerText(t *testing.T) {
	cases := []struct {
		b    playback.Banner
		want string
	}{
		{playback.Banner{Hero: "Pyra", Spell: "Ember", ManaCost: 60}, "Pyra casts Ember (60 mana)"},
		{playback.Banner{Hero: "Pyra", Spell: "Ember", ManaCost: 12.5}, "Pyra casts Ember (12.5 mana)"},
		{playback.Banner{Hero: "Rook", Spell: "Ward"}, "Rook casts Ward"},
	}
	for _, tt := range cases {
		if got := bannerText(tt.b); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}

func TestDrawBubbleStacksUpward(t *testing.T) {
	initFont()
	theme = themeFor(true)
	screen := ebiten.NewImage(screenWidth, screenHeight)
	border, bg, fg := bannerColors(battlelog.Attacker)
	top := drawBubble(screen, "Pyra casts Ember", 200, 300, false, border, bg, fg)
	if top >= 300-tailHeight {
		t.Fatalf("bubble top %d should be above the tail", top)
	}
	next := drawBubble(screen, "Pyra casts Blaze", 200, top-4, true, border, bg, fg)
	if next >= top {
		t.Fatalf("stacked bubble %d not above %d", next, top)
	}
	if got := drawBubble(screen, "", 10, 10, true, border, bg, fg); got != 10 {
		t.Fatalf("empty bubble should not move the anchor, got %d", got)
	}
}
