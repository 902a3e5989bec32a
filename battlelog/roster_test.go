package battlelog

import "testing"

func mana(v float64) *float64 { return &v }

func threeRounds() []Round {
	return []Round{
		{RoundNumber: 1, AttackerHero: "A1", DefenderHero: "D1", Winner: RoundDefender},
		{RoundNumber: 2, AttackerHero: "A2", DefenderHero: "D1", Winner: RoundAttacker},
		{RoundNumber: 3, AttackerHero: "A2", DefenderHero: "D2", Winner: RoundAttacker},
	}
}

func TestBuildRosterLegacyFallback(t *testing.T) {
	l, err := Parse([]byte(sampleLog))
	if err != nil {
		t.Fatal(err)
	}
	roster := BuildRoster(l.Challenger, l.Rounds, Attacker)
	if len(roster) != 3 {
		t.Fatalf("expected 2 heroes + summon, got %#v", roster)
	}
	if roster[0].ImagePath != "/heroes/pyra.png" || roster[0].Level != 4 {
		t.Fatalf("object hero altered: %#v", roster[0])
	}
	if g := roster[1]; g.Name != "Gale" || g.ImagePath != "/heroes/gale.png" || g.Level != 3 || g.Element != "WIND" {
		t.Fatalf("legacy hero not recovered from rounds: %#v", g)
	}
	if s := roster[2]; !s.Summon || s.Name != "Imp" {
		t.Fatalf("summon should be last: %#v", s)
	}

	def := BuildRoster(l.Defender, l.Rounds, Defender)
	if len(def) != 1 || def[0].Level != 7 || def[0].Element != "EARTH" {
		t.Fatalf("unexpected defender roster %#v", def)
	}
}

func TestBuildRosterUnknownLegacyName(t *testing.T) {
	side := Side{Heroes: []Hero{{Name: "Ghost", Legacy: true}}}
	roster := BuildRoster(side, threeRounds(), Attacker)
	if len(roster) != 1 || roster[0].ImagePath != "" || roster[0].Level != 0 {
		t.Fatalf("expected empty fallback, got %#v", roster)
	}
}

func TestBuildRosterFromRounds(t *testing.T) {
	roster := BuildRoster(Side{}, threeRounds(), Defender)
	if len(roster) != 2 || roster[0].Name != "D1" || roster[1].Name != "D2" {
		t.Fatalf("got %#v", roster)
	}
}

func TestEliminated(t *testing.T) {
	rounds := threeRounds()
	cases := []struct {
		idx  int
		side SideKey
		want bool
	}{
		{0, Attacker, true},  // lost and replaced by A2
		{0, Defender, false}, // won
		{1, Defender, true},  // lost and replaced by D2
		{1, Attacker, false},
		{2, Defender, true}, // lost the last round
		{2, Attacker, false},
	}
	for _, tt := range cases {
		if got := Eliminated(rounds, tt.idx, tt.side); got != tt.want {
			t.Errorf("round %d %v: got %v want %v", tt.idx, tt.side, got, tt.want)
		}
	}
}

func TestEliminatedStaysWhenSameHeroReturns(t *testing.T) {
	rounds := []Round{
		{AttackerHero: "A", DefenderHero: "D", Winner: RoundDefender},
		{AttackerHero: "A", DefenderHero: "D", Winner: RoundAttacker},
	}
	if Eliminated(rounds, 0, Attacker) {
		t.Fatalf("attacker fought on, should not be eliminated")
	}
}

func TestDefeated(t *testing.T) {
	rounds := threeRounds()
	if d := Defeated(rounds, 0, Attacker); len(d) != 0 {
		t.Fatalf("nothing defeated before round 0, got %v", d)
	}
	if d := Defeated(rounds, 1, Attacker); !d["A1"] || len(d) != 1 {
		t.Fatalf("expected A1 defeated, got %v", d)
	}
	if d := Defeated(rounds, 2, Defender); !d["D1"] || len(d) != 1 {
		t.Fatalf("expected D1 defeated, got %v", d)
	}
	if d := Defeated(rounds, 99, Defender); !d["D1"] || !d["D2"] {
		t.Fatalf("expected both defenders defeated, got %v", d)
	}
}

func TestEnteredAndFirstStriker(t *testing.T) {
	rounds := threeRounds()
	if Entered(rounds, 0, Attacker) || Entered(rounds, 0, Defender) {
		t.Fatalf("round 0 never has an entrance")
	}
	if !Entered(rounds, 1, Attacker) || Entered(rounds, 1, Defender) {
		t.Fatalf("round 1: only attacker enters")
	}
	if Entered(rounds, 2, Attacker) || !Entered(rounds, 2, Defender) {
		t.Fatalf("round 2: only defender enters")
	}
	if FirstStriker(rounds, 0) != Attacker {
		t.Fatalf("attacker opens the battle")
	}
	if FirstStriker(rounds, 1) != Defender {
		t.Fatalf("defender won round 0 and should strike first")
	}
	if FirstStriker(rounds, 2) != Attacker {
		t.Fatalf("attacker won round 1 and should strike first")
	}
}

func TestManaAt(t *testing.T) {
	l := &Log{
		ChallengerManaTotal: 100,
		Rounds: []Round{
			{ChallengerManaAfter: mana(70)},
			{},
			{ChallengerManaAfter: mana(-5)},
		},
	}
	cases := []struct {
		shown int
		want  float64
	}{
		{-1, 100},
		{0, 70},
		{1, 70},
		{2, 0},
		{7, 0},
	}
	for _, tt := range cases {
		cur, max, ok := l.ManaAt(tt.shown, Attacker)
		if !ok || max != 100 || cur != tt.want {
			t.Errorf("shown %d: got cur=%v max=%v ok=%v", tt.shown, cur, max, ok)
		}
	}
	if _, _, ok := l.ManaAt(0, Defender); ok {
		t.Fatalf("zero pool should hide the bar")
	}
}
