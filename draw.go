package main

import (
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"arenareplay/battlelog"
	"arenareplay/card"
	"arenareplay/playback"
	"arenareplay/portraits"
)

const (
	headerHeight = 48
	portraitSize = 150
	rosterTile   = 40
	rosterY      = 440
	statsWidth   = 210
)

func fighterCenter(side battlelog.SideKey) (float64, float64) {
	if side == battlelog.Defender {
		return 660, 250
	}
	return 300, 250
}

func sideColor(side battlelog.SideKey) color.RGBA {
	if side == battlelog.Defender {
		return theme.defender
	}
	return theme.attacker
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

type align int

const (
	alignStart align = iota
	alignCenter
	alignEnd
)

func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, a align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	switch a {
	case alignCenter:
		op.PrimaryAlign = text.AlignCenter
	case alignEnd:
		op.PrimaryAlign = text.AlignEnd
	}
	text.Draw(screen, s, face, op)
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, true)
}

var (
	tileMu sync.Mutex
	tiles  = make(map[string]*ebiten.Image)
)

// fallbackTile is drawn for participants without a loadable portrait.
func fallbackTile(name string) *ebiten.Image {
	tileMu.Lock()
	defer tileMu.Unlock()
	if img, ok := tiles[name]; ok {
		return img
	}
	img := ebiten.NewImage(portraitSize, portraitSize)
	img.Fill(portraits.TileColor(name))
	op := &text.DrawOptions{}
	op.GeoM.Translate(portraitSize/2, portraitSize/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	face := titleFace
	if gf, ok := titleFace.(*text.GoTextFace); ok {
		big := *gf
		big.Size = 56
		face = &big
	}
	text.Draw(img, portraits.Initials(name), face, op)
	tiles[name] = img
	return img
}

func clearTiles() {
	tileMu.Lock()
	defer tileMu.Unlock()
	for k, img := range tiles {
		img.Deallocate()
		delete(tiles, k)
	}
}

func (g *Game) portrait(p battlelog.Participant) *ebiten.Image {
	if g.store != nil && p.ImagePath != "" {
		if img := g.store.Get(p.ImagePath); img != nil {
			return img
		}
	}
	return fallbackTile(p.Name)
}

// drawPortrait draws img scaled to size and centered on (cx, cy) under pose.
func drawPortrait(screen, img *ebiten.Image, cx, cy, size float64, ps pose) {
	if ps.alpha <= 0 {
		return
	}
	b := img.Bounds()
	s := size * ps.scale / float64(b.Dx())
	op := &colorm.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx+ps.dx, cy+ps.dy)

	var cm colorm.ColorM
	if ps.gray > 0 {
		cm.ChangeHSV(0, 1-ps.gray, 1)
	}
	if ps.bright > 0 {
		cm.Translate(ps.bright, ps.bright, ps.bright, 0)
	}
	cm.Scale(1, 1, 1, ps.alpha)
	colorm.DrawImage(screen, img, cm, op)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(theme.bg)
	if g.view == nil {
		drawSplash(screen)
		drawNotices(screen)
		return
	}
	v := g.view
	s := v.snapshot()

	g.drawHeader(screen, s)
	if s.Total > 0 {
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			g.drawFighter(screen, s, side)
		}
		g.drawImpact(screen, s)
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			g.drawDamage(screen, s, side)
		}
		drawBanners(screen, s)
		if gs.ShowStats {
			drawStats(screen, v.log, s)
		}
	}
	g.drawRoster(screen, s.LeftRoster, battlelog.Attacker)
	g.drawRoster(screen, s.RightRoster, battlelog.Defender)
	if s.Terminal.Show {
		drawTerminal(screen, v, s)
	}
	g.drawTransport(screen, v, s)
	drawNotices(screen)
}

func (g *Game) drawHeader(screen *ebiten.Image, s playback.Snapshot) {
	fillRect(screen, 0, 0, screenWidth, headerHeight, theme.panel)
	l := g.view.log
	drawText(screen, l.Challenger.Username, bodyFace, 20, 15, theme.attacker, alignStart)
	drawText(screen, l.Defender.Username, bodyFace, screenWidth-20, 15, theme.defender, alignEnd)
	drawText(screen, roundLabel(s.Round, s.Total), bodyFace, screenWidth/2, 8, theme.text, alignCenter)
	left := "done"
	if !s.Finished {
		left = durationLabel(g.view.ctrl.Remaining()) + " left"
	}
	drawText(screen, speedLabel(s.Speed)+"  "+left, smallFace, screenWidth/2, 28, theme.muted, alignCenter)
}

func (g *Game) drawFighter(screen *ebiten.Image, s playback.Snapshot, side battlelog.SideKey) {
	f := s.Fighter(side)
	if f.Name == "" {
		return
	}
	cx, cy := fighterCenter(side)
	t := g.view.stage.progress(f.Anim.Key, f.Anim.Duration)
	ps := fighterPose(f.Anim.Name, t, side)

	if ps.glow > 0 && ps.alpha > 0 {
		vector.DrawFilledCircle(screen, float32(cx+ps.dx), float32(cy+ps.dy), float32(portraitSize*0.72), withAlpha(theme.gold, ps.glow*0.45), true)
	}
	if s.Resolved && s.RoundWinner == side && ps.alpha > 0 {
		vector.StrokeRect(screen, float32(cx-portraitSize/2-4), float32(cy-portraitSize/2-4), portraitSize+8, portraitSize+8, 3, theme.gold, true)
	}
	drawPortrait(screen, g.portrait(f.Participant), cx, cy, portraitSize, ps)
	if f.Anim.Name == playback.AnimHidden {
		return
	}

	y := cy + portraitSize/2 + 12
	drawText(screen, heroLabel(f.Participant), bodyFace, cx, y, theme.text, alignCenter)
	if f.Element != "" {
		drawText(screen, elementLabel(f.Element), smallFace, cx, y+20, elementColor(f.Element), alignCenter)
	}
	if f.Mana.Visible {
		g.drawMana(screen, f, side, cx, y+40)
	}
}

func elementColor(e string) color.RGBA {
	if c, ok := elementColors[e]; ok {
		return c
	}
	return theme.muted
}

func (g *Game) drawMana(screen *ebiten.Image, f *playback.Fighter, side battlelog.SideKey, cx, y float64) {
	const w, h = portraitSize, 8
	x := cx - w/2
	fillRect(screen, x, y, w, h, theme.track)
	cur := g.view.stage.manaValue(side)
	if f.Mana.Max > 0 && cur > 0 {
		fw := w * math.Min(cur/f.Mana.Max, 1)
		fillRect(screen, x, y, fw, h, theme.mana)
	}
	vector.StrokeRect(screen, float32(x), float32(y), w, h, 1, theme.muted, false)
	drawText(screen, fmt.Sprintf("%.0f / %.0f mana", math.Round(cur), f.Mana.Max), smallFace, cx, y+h+2, theme.muted, alignCenter)
}

func impactColor(t battlelog.ImpactType) color.RGBA {
	switch t {
	case battlelog.ImpactMagic:
		return theme.mana
	case battlelog.ImpactDexterity:
		return color.RGBA{0x34, 0xd3, 0x99, 0xff}
	}
	return theme.loss
}

func (g *Game) drawImpact(screen *ebiten.Image, s playback.Snapshot) {
	if !s.Impact.Visible {
		return
	}
	cx, cy := fighterCenter(s.Impact.Target)
	// the burst runs longer than the impact window, so sample against the
	// damage float it accompanies
	d := 400 * time.Millisecond
	if dmg := s.Fighter(s.Impact.Target).Damage; dmg != nil {
		d = dmg.Duration / 2
	}
	ps := sample(burstFrames, g.view.stage.progress(s.Impact.Key, d))
	r := 40 * ps.scale
	clr := impactColor(s.Impact.Type)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), withAlpha(clr, ps.alpha*0.5), true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 3, withAlpha(clr, ps.alpha), true)
}

func (g *Game) drawDamage(screen *ebiten.Image, s playback.Snapshot, side battlelog.SideKey) {
	dmg := s.Fighter(side).Damage
	if dmg == nil {
		return
	}
	ps := sample(floatFrames, g.view.stage.progress(dmg.Key, dmg.Duration))
	if ps.alpha <= 0 {
		return
	}
	cx, cy := fighterCenter(side)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Scale(ps.scale, ps.scale)
	op.GeoM.Translate(cx, cy-portraitSize/2+ps.dy)
	op.ColorScale.ScaleWithColor(impactColor(dmg.Impact))
	op.ColorScale.ScaleAlpha(float32(ps.alpha))
	text.Draw(screen, fmt.Sprintf("-%.1f", dmg.Value), damageFace, op)
	if dmg.ElementBonus > 0 {
		drawText(screen, fmt.Sprintf("+%.2f elem", dmg.ElementBonus), smallFace, cx, cy-portraitSize/2+ps.dy+26, withAlpha(theme.gold, ps.alpha), alignCenter)
	}
}

func drawBanners(screen *ebiten.Image, s playback.Snapshot) {
	tops := map[battlelog.SideKey]int{}
	for _, b := range s.Banners {
		cx, cy := fighterCenter(b.Side)
		border, bg, fg := bannerColors(b.Side)
		y, stacked := tops[b.Side]
		if !stacked {
			y = int(cy - portraitSize/2 - 8)
		}
		tops[b.Side] = drawBubble(screen, bannerText(b), int(cx), y, stacked, border, bg, fg) - 4
	}
}

func (g *Game) drawRoster(screen *ebiten.Image, roster []playback.RosterEntry, side battlelog.SideKey) {
	const gap = 6
	n := float64(len(roster))
	x := 24.0
	if side == battlelog.Defender {
		x = screenWidth - 24 - n*(rosterTile+gap) + gap
	}
	for _, e := range roster {
		ps := restPose
		if e.Defeated {
			ps.gray, ps.alpha = 1, 0.4
		}
		img := g.portrait(e.Participant)
		drawPortrait(screen, img, x+rosterTile/2, rosterY+rosterTile/2, rosterTile, ps)
		switch {
		case e.Active:
			vector.StrokeRect(screen, float32(x-2), rosterY-2, rosterTile+4, rosterTile+4, 2, sideColor(side), true)
		case e.Summon:
			vector.StrokeRect(screen, float32(x-1), rosterY-1, rosterTile+2, rosterTile+2, 1, theme.mana, true)
		}
		x += rosterTile + gap
	}
}

func drawStats(screen *ebiten.Image, l *battlelog.Log, s playback.Snapshot) {
	if s.Index < 0 || s.Index >= len(l.Rounds) {
		return
	}
	r := &l.Rounds[s.Index]
	for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
		lines := statsLines(r, side)
		x := 8.0
		if side == battlelog.Defender {
			x = screenWidth - statsWidth - 8
		}
		y := float64(headerHeight + 8)
		h := float64(len(lines))*16 + 12
		fillRect(screen, x, y, statsWidth, h, withAlpha(theme.panel, 0.92))
		if r.Advantage(side) {
			vector.StrokeRect(screen, float32(x), float32(y), statsWidth, float32(h), 1, theme.gold, true)
		}
		for i, line := range lines {
			clr := theme.text
			if i == 0 {
				clr = sideColor(side)
			}
			drawText(screen, line, smallFace, x+8, y+6+float64(i)*16, clr, alignStart)
		}
	}
}

func drawTerminal(screen *ebiten.Image, v *battleView, s playback.Snapshot) {
	top := float64(headerHeight)
	bottom := float64(rosterY - 12)
	fillRect(screen, 0, top, screenWidth, bottom-top, withAlpha(theme.bg, 0.78))

	clr := theme.gold
	if s.Terminal.Result == playback.ResultLoss {
		clr = theme.loss
	}
	drawText(screen, card.Headline(v.log, v.outcome), titleFace, screenWidth/2, top+40, clr, alignCenter)
	y := top + 90
	if s.Terminal.Gold > 0 {
		drawText(screen, goldLabel(s.Terminal.Gold), bodyFace, screenWidth/2, y, theme.gold, alignCenter)
		y += 28
	}
	for _, x := range s.Terminal.XP {
		if x.XP <= 0 {
			continue
		}
		line := fmt.Sprintf("%s  +%d xp", x.Hero, x.XP)
		drawText(screen, line, smallFace, screenWidth/2, y, sideColor(x.Side), alignCenter)
		y += 16
		if y > bottom-40 {
			break
		}
	}
	if s.Finished {
		drawText(screen, "R rewatch   C copy summary   P save card", smallFace, screenWidth/2, bottom-24, theme.muted, alignCenter)
	}
}

func (g *Game) drawTransport(screen *ebiten.Image, v *battleView, s playback.Snapshot) {
	bar := g.progress
	fillRect(screen, 0, float64(bar.Min.Y)-8, screenWidth, screenHeight-float64(bar.Min.Y)+8, theme.panel)
	fillRect(screen, float64(bar.Min.X), float64(bar.Min.Y), float64(bar.Dx()), float64(bar.Dy()), theme.track)
	if n := len(v.log.Rounds); n > 0 {
		seg := float64(bar.Dx()) / float64(n)
		for i := range v.log.Rounds {
			if i > s.Index || (i == s.Index && !s.Finished) {
				break
			}
			fillRect(screen, float64(bar.Min.X)+float64(i)*seg, float64(bar.Min.Y), seg-1, float64(bar.Dy()), sideColor(v.log.Rounds[i].WinnerSide()))
		}
		mx := float64(bar.Min.X) + (float64(s.Index)+0.5)*seg
		vector.DrawFilledCircle(screen, float32(mx), float32(bar.Min.Y+bar.Dy()/2), 6, theme.text, true)
	}

	for _, b := range g.buttons {
		enabled := buttonEnabled(b, s)
		bg := theme.track
		if b.act == g.hover && enabled {
			bg = theme.muted
		}
		r := b.rect
		fillRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), bg)
		fg := theme.text
		if !enabled {
			fg = theme.muted
		}
		drawText(screen, buttonLabel(b, s), bodyFace, float64(r.Min.X+r.Dx()/2), float64(r.Min.Y+7), fg, alignCenter)
		if b.act == g.hover {
			border, bgc, txt := theme.muted, withAlpha(theme.panel, 0.95), theme.text
			drawBubble(screen, b.tooltip, r.Min.X+r.Dx()/2, r.Min.Y-6, false, border, bgc, txt)
		}
	}
}

func drawNotices(screen *ebiten.Image) {
	y := float64(rosterY - 24)
	for _, n := range currentNotices() {
		a := 1 - float64(time.Since(n.at))/float64(noticeLife)
		drawText(screen, n.text, smallFace, 24, y, withAlpha(theme.text, a), alignStart)
		y -= 16
	}
}
