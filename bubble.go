package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"arenareplay/battlelog"
	"arenareplay/playback"
)

var whiteImage = ebiten.NewImage(1, 1)

func init() {
	whiteImage.Fill(color.White)
}

const (
	bubblePad  = 6
	tailHeight = 10
	tailHalf   = 6
)

// adjustBubbleRect calculates the on-screen rectangle for a bubble and shifts
// the tail tip (x, y) if clamping is required. It returns the clamped
// rectangle along with the adjusted tail coordinates.
func adjustBubbleRect(x, y, width, height, tailHeight, sw, sh int, far bool) (left, top, right, bottom, ax, ay int) {
	bottom = y
	if !far {
		bottom = y - tailHeight
	}
	left = x - width/2
	top = bottom - height

	origLeft, origTop := left, top

	if left < 0 {
		left = 0
	}
	if left+width > sw {
		left = sw - width
	}
	if top < 0 {
		top = 0
	}
	if top+height > sh {
		top = sh - height
	}

	ax = x + left - origLeft
	ay = y + top - origTop

	right = left + width
	bottom = top + height
	return
}

// bannerText is the caption of a spell banner.
func bannerText(b playback.Banner) string {
	s := b.Hero + " casts " + b.Spell
	if b.ManaCost > 0 {
		s += " (" + formatMana(b.ManaCost) + " mana)"
	}
	return s
}

func bannerColors(side battlelog.SideKey) (border, bg, txt color.Color) {
	accent := theme.attacker
	if side == battlelog.Defender {
		accent = theme.defender
	}
	return accent, color.NRGBA{theme.panel.R, theme.panel.G, theme.panel.B, 0xe6}, theme.text
}

// fillPath draws p in a single color using whiteImage as the source.
func fillPath(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 0
		vs[i].SrcY = 0
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	screen.DrawTriangles(vs, is, whiteImage, op)
}

func roundedRect(p *vector.Path, left, top, right, bottom, radius float32) {
	p.MoveTo(left+radius, top)
	p.LineTo(right-radius, top)
	p.Arc(right-radius, top+radius, radius, -math.Pi/2, 0, vector.Clockwise)
	p.LineTo(right, bottom-radius)
	p.Arc(right-radius, bottom-radius, radius, 0, math.Pi/2, vector.Clockwise)
	p.LineTo(left+radius, bottom)
	p.Arc(left+radius, bottom-radius, radius, math.Pi/2, math.Pi, vector.Clockwise)
	p.LineTo(left, top+radius)
	p.Arc(left+radius, top+radius, radius, math.Pi, 3*math.Pi/2, vector.Clockwise)
	p.Close()
}

// drawBubble renders a text bubble anchored so that (x, y) is the tip of its
// tail. When noArrow is set the tail is omitted and (x, y) is the bottom
// center of the bubble itself. It returns the top edge of the drawn bubble so
// callers can stack several.
func drawBubble(screen *ebiten.Image, txt string, x, y int, noArrow bool, borderCol, bgCol, textCol color.Color) int {
	if txt == "" {
		return y
	}
	sw, sh := screenWidth, screenHeight

	maxLineWidth := sw/3 - 2*bubblePad
	lines := wrapText(txt, bubbleFont, float64(maxLineWidth))
	width := 0
	for _, l := range lines {
		if w, _ := text.Measure(l, bubbleFont, 0); int(math.Ceil(w)) > width {
			width = int(math.Ceil(w))
		}
	}
	metrics := bubbleFont.Metrics()
	lineHeight := int(math.Ceil(metrics.HAscent) + math.Ceil(metrics.HDescent) + math.Ceil(metrics.HLineGap))
	width += 2 * bubblePad
	height := lineHeight*len(lines) + 2*bubblePad

	left, top, right, bottom, x, y := adjustBubbleRect(x, y, width, height, tailHeight, sw, sh, noArrow)

	var body vector.Path
	roundedRect(&body, float32(left), float32(top), float32(right), float32(bottom), 4)
	if !noArrow {
		body.MoveTo(float32(x-tailHalf), float32(bottom))
		body.LineTo(float32(x), float32(y))
		body.LineTo(float32(x+tailHalf), float32(bottom))
		body.Close()
	}
	vs, is := body.AppendVerticesAndIndicesForFilling(nil, nil)
	fillPath(screen, vs, is, bgCol)

	var outline vector.Path
	roundedRect(&outline, float32(left), float32(top), float32(right), float32(bottom), 4)
	vs, is = outline.AppendVerticesAndIndicesForStroke(vs[:0], is[:0], &vector.StrokeOptions{Width: 1})
	fillPath(screen, vs, is, borderCol)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(left+bubblePad), float64(top+bubblePad+i*lineHeight))
		op.ColorScale.ScaleWithColor(textCol)
		text.Draw(screen, line, bubbleFont, op)
	}
	return top
}
