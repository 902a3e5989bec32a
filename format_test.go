package main

import (
	"strings"
	"testing"
	"time"

	"arenareplay/battlelog"
)

func TestLabels(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{speedLabel(0.5), "0.5x"},
		{speedLabel(2), "2x"},
		{goldLabel(12500), "+12,500 gold"},
		{roundLabel(2, 5), "Round 2/5"},
		{roundLabel(0, 0), "No rounds"},
		{elementLabel("LIGHTNING"), "Lightning"},
		{heroLabel(battlelog.Participant{Name: "Pyra", Level: 3}), "Pyra Lv.3"},
		{heroLabel(battlelog.Participant{Name: "Wisp", Summon: true}), "Wisp"},
		{durationLabel(0), "0s"},
		{lastWatchedLabel(time.Time{}), ""},
	}
	for i, tt := range cases {
		if tt.got != tt.want {
			t.Errorf("case %d: got %q want %q", i, tt.got, tt.want)
		}
	}
}

func TestDurationLabelKeepsTwoUnits(t *testing.T) {
	got := durationLabel(time.Hour + 2*time.Minute + 3*time.Second)
	if !strings.Contains(got, "h") || !strings.Contains(got, "m") || strings.Contains(got, "s") {
		t.Fatalf("got %q", got)
	}
}

func TestStatsLines(t *testing.T) {
	red, mod, bonus, pa := 1.5, 0.8, 2.25, 4.0
	r := &battlelog.Round{
		AttackerHero: "Pyra", AttackerLevel: 4, AttackerElement: "FIRE",
		AttackerAttackValue: 11.75,
		AttackerStaminaRed:  &red, AttackerStaminaMod: &mod,
		AttackerElemBonus: &bonus, AttackerStatPa: &pa,
	}
	lines := statsLines(r, battlelog.Attacker)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Pyra Lv.4", "PA 4.0", "Stamina -20%  -1.50", "Fire bonus +2.25", "Attack 11.75"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in\n%s", want, joined)
		}
	}

	plain := statsLines(&battlelog.Round{DefenderHero: "Rook", DefenderAttackValue: 3}, battlelog.Defender)
	for _, l := range plain {
		if strings.HasPrefix(l, "Stamina") || strings.Contains(l, "bonus") {
			t.Fatalf("unexpected line %q", l)
		}
	}
}
