// Package card renders a shareable summary of a finished battle, either as
// a PNG result card or as plain text for the clipboard.
package card

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"arenareplay/battlelog"
	"arenareplay/playback"
	"arenareplay/portraits"
)

const (
	Width    = 1024
	Height   = 540
	tileSize = 72
)

var (
	bgColor     = color.RGBA{0x1b, 0x1e, 0x26, 0xff}
	panelColor  = color.RGBA{0x26, 0x2a, 0x35, 0xff}
	textColor   = color.RGBA{0xec, 0xf0, 0xf1, 0xff}
	mutedColor  = color.RGBA{0x95, 0xa5, 0xa6, 0xff}
	winColor    = color.RGBA{0xf3, 0x9c, 0x12, 0xff}
	lossColor   = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
	attackColor = color.RGBA{0x34, 0x98, 0xdb, 0xff}
	defendColor = color.RGBA{0xe6, 0x7e, 0x22, 0xff}
)

// Portraits resolves a participant image path to a decoded picture. On error
// a colored tile with the hero's initials is drawn instead.
type Portraits interface {
	Decode(ref string) (*image.RGBA, error)
}

var (
	faceOnce sync.Once
	faceErr  error
	faces    map[string]*opentype.Font
)

func loadFonts() error {
	faceOnce.Do(func() {
		faces = make(map[string]*opentype.Font)
		for name, data := range map[string][]byte{"regular": goregular.TTF, "bold": gobold.TTF} {
			f, err := opentype.Parse(data)
			if err != nil {
				faceErr = fmt.Errorf("parse %s font: %w", name, err)
				return
			}
			faces[name] = f
		}
	})
	return faceErr
}

func face(name string, size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return opentype.NewFace(faces[name], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Headline is the winner line printed on the card. The trophy glyph used on
// screen is not in the card font, so it is spelled out instead.
func Headline(l *battlelog.Log, o playback.Outcome) string {
	switch o.Result {
	case playback.ResultWin, playback.ResultLoss:
		return playback.WinnerLabel(l, o)
	}
	if name := l.WinnerName(); name != "" {
		return name + " wins"
	}
	return "Battle over"
}

// Render draws the result card. p may be nil.
func Render(l *battlelog.Log, o playback.Outcome, p Portraits) (image.Image, error) {
	title, err := face("bold", 40)
	if err != nil {
		return nil, err
	}
	body, err := face("regular", 20)
	if err != nil {
		return nil, err
	}
	small, err := face("regular", 15)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetFontFace(title)
	dc.SetColor(headlineColor(o))
	dc.DrawStringAnchored(Headline(l, o), Width/2, 48, 0.5, 0.5)

	dc.SetFontFace(body)
	dc.SetColor(mutedColor)
	dc.DrawStringAnchored(fmt.Sprintf("%s vs %s  ·  %d rounds", l.Challenger.Username, l.Defender.Username, len(l.Rounds)), Width/2, 92, 0.5, 0.5)

	defeated := [2]map[string]bool{
		battlelog.Defeated(l.Rounds, len(l.Rounds), battlelog.Attacker),
		battlelog.Defeated(l.Rounds, len(l.Rounds), battlelog.Defender),
	}
	for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
		x := 24.0
		accent := attackColor
		if side == battlelog.Defender {
			x = Width/2 + 12
			accent = defendColor
		}
		drawSide(dc, l, side, x, 120, accent, defeated[side], p, body, small)
	}

	dc.SetFontFace(small)
	y := 340.0
	dc.SetColor(panelColor)
	dc.DrawRoundedRectangle(24, y-20, Width-48, Height-y-4, 10)
	dc.Fill()
	for i, line := range RoundLines(l) {
		if i >= 8 {
			dc.SetColor(mutedColor)
			dc.DrawString(fmt.Sprintf("… %d more", len(l.Rounds)-i), 40, y+float64(i)*20)
			break
		}
		dc.SetColor(textColor)
		dc.DrawString(line, 40, y+float64(i)*20)
	}
	if o.Gold > 0 {
		dc.SetFontFace(body)
		dc.SetColor(winColor)
		dc.DrawStringAnchored("+"+humanize.Comma(int64(o.Gold))+" gold", Width-40, y, 1, 0)
	}
	return dc.Image(), nil
}

func headlineColor(o playback.Outcome) color.Color {
	if o.Result == playback.ResultLoss {
		return lossColor
	}
	return winColor
}

func drawSide(dc *gg.Context, l *battlelog.Log, side battlelog.SideKey, x, y float64, accent color.Color, defeated map[string]bool, p Portraits, body, small font.Face) {
	s := l.Side(side)
	dc.SetColor(panelColor)
	dc.DrawRoundedRectangle(x, y, Width/2-36, 196, 10)
	dc.Fill()

	dc.SetFontFace(body)
	dc.SetColor(accent)
	dc.DrawString(s.Username, x+16, y+30)

	roster := battlelog.BuildRoster(s, l.Rounds, side)
	xp := xpFor(l, side)
	for i, part := range roster {
		if i >= 6 {
			break
		}
		tx := x + 16 + float64(i)*(tileSize+8)
		ty := y + 48
		img := tile(part, p)
		if defeated[part.Name] && !part.Summon {
			img = imaging.AdjustBrightness(imaging.Grayscale(img), -30)
		}
		dc.DrawImage(img, int(tx), int(ty))
		dc.SetFontFace(small)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(truncate(part.Name, 9), tx+tileSize/2, ty+tileSize+16, 0.5, 0)
		if v, ok := xp[part.Name]; ok && v > 0 {
			dc.SetColor(winColor)
			dc.DrawStringAnchored(fmt.Sprintf("+%d xp", v), tx+tileSize/2, ty+tileSize+34, 0.5, 0)
		}
	}
}

func tile(part battlelog.Participant, p Portraits) image.Image {
	if p != nil && part.ImagePath != "" {
		if img, err := p.Decode(part.ImagePath); err == nil {
			return imaging.Fill(img, tileSize, tileSize, imaging.Center, imaging.Lanczos)
		}
	}
	dc := gg.NewContext(tileSize, tileSize)
	dc.SetColor(portraits.TileColor(part.Name))
	dc.DrawRoundedRectangle(0, 0, tileSize, tileSize, 8)
	dc.Fill()
	if f, err := face("bold", 26); err == nil {
		dc.SetFontFace(f)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(portraits.Initials(part.Name), tileSize/2, tileSize/2, 0.5, 0.35)
	}
	return dc.Image()
}

func xpFor(l *battlelog.Log, side battlelog.SideKey) map[string]int {
	out := make(map[string]int)
	for _, x := range playback.XPLines(l) {
		if x.Side == side {
			out[x.Hero] = x.XP
		}
	}
	return out
}

// RoundLines describes every round on a single line.
func RoundLines(l *battlelog.Log) []string {
	out := make([]string, 0, len(l.Rounds))
	for i := range l.Rounds {
		r := &l.Rounds[i]
		a, d := r.Strike(battlelog.Attacker), r.Strike(battlelog.Defender)
		out = append(out, fmt.Sprintf("Round %d: %s %.2f vs %s %.2f, %s wins",
			i+1, r.AttackerHero, a.Value, r.DefenderHero, d.Value, r.Hero(r.WinnerSide())))
	}
	return out
}

// Summary is the plain-text form of the card.
func Summary(l *battlelog.Log, o playback.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s: %s\n", l.Challenger.Username, l.Defender.Username, Headline(l, o))
	for _, line := range RoundLines(l) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if o.Gold > 0 {
		fmt.Fprintf(&b, "+%s gold\n", humanize.Comma(int64(o.Gold)))
	}
	var xp []string
	for _, x := range playback.XPLines(l) {
		if x.XP > 0 {
			xp = append(xp, fmt.Sprintf("%s +%d", x.Hero, x.XP))
		}
	}
	if len(xp) > 0 {
		b.WriteString("XP: " + strings.Join(xp, ", ") + "\n")
	}
	return b.String()
}

// CopySummary places the text summary on the system clipboard.
func CopySummary(l *battlelog.Log, o playback.Outcome) error {
	if err := clipboard.WriteAll(Summary(l, o)); err != nil {
		return fmt.Errorf("copy summary: %w", err)
	}
	return nil
}

// Save renders the card and writes it as a PNG.
func Save(path string, l *battlelog.Log, o playback.Outcome, p Portraits) error {
	img, err := Render(l, o, p)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save card %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
