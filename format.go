package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"arenareplay/battlelog"
)

var (
	shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")
	TitleCaser    = cases.Title(language.AmericanEnglish)
)

var elementColors = map[string]color.RGBA{
	"FIRE":      {0xf9, 0x73, 0x16, 0xff},
	"WATER":     {0x38, 0xbd, 0xf8, 0xff},
	"WIND":      {0xa3, 0xe6, 0x35, 0xff},
	"EARTH":     {0xb4, 0x83, 0x4d, 0xff},
	"LIGHTNING": {0xfa, 0xcc, 0x15, 0xff},
}

// durationLabel renders a remaining-time estimate such as "12s" or "1m 5s".
func durationLabel(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		d = d.Round(100 * time.Millisecond)
	} else {
		d = d.Round(time.Second)
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

func goldLabel(n int) string {
	return "+" + humanize.Comma(int64(n)) + " gold"
}

func speedLabel(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64) + "x"
}

func roundLabel(round, total int) string {
	if total == 0 {
		return "No rounds"
	}
	return fmt.Sprintf("Round %d/%d", round, total)
}

func elementLabel(e string) string {
	return TitleCaser.String(strings.ToLower(e))
}

func heroLabel(p battlelog.Participant) string {
	if p.Level > 0 {
		return fmt.Sprintf("%s Lv.%d", p.Name, p.Level)
	}
	return p.Name
}

func lastWatchedLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "watched " + humanize.Time(t)
}

// statsLines is the breakdown panel for one side of a round.
func statsLines(r *battlelog.Round, s battlelog.SideKey) []string {
	st := r.Stats(s)
	k := r.Strike(s)
	lines := []string{
		fmt.Sprintf("%s Lv.%d", r.Hero(s), r.Level(s)),
		fmt.Sprintf("PA %.1f  MP %.1f  Dex %.1f", st.Pa, st.Mp, st.Dex),
		fmt.Sprintf("Elem %.1f  Mana %.1f  Stam %.1f", st.Elem, st.Mana, st.Stam),
		fmt.Sprintf("PA contrib %.2f", k.Physical),
		fmt.Sprintf("MP contrib %.2f", k.Magic),
		fmt.Sprintf("Dex contrib %.2f", k.Dexterity),
		fmt.Sprintf("Raw %.2f", k.Raw),
	}
	if k.StaminaLost > 0 {
		lines = append(lines, fmt.Sprintf("Stamina -%.0f%%  -%.2f", (1-k.StaminaMod)*100, k.StaminaLost))
	}
	if k.ElementBonus > 0 {
		lines = append(lines, fmt.Sprintf("%s bonus +%.2f", elementLabel(r.Element(s)), k.ElementBonus))
	}
	lines = append(lines, fmt.Sprintf("Attack %.2f", k.Value))
	return lines
}

func formatMana(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
