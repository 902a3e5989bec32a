package battlelog

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleLog = `{
  "challenger": {"username": "ana", "heroes": [
    {"name": "Pyra", "imagePath": "/heroes/pyra.png", "level": 4, "element": "FIRE"},
    "Gale"
  ], "summon": {"name": "Imp", "imagePath": "/summons/imp.png"}},
  "defender": {"username": "bo", "heroes": ["Rook"]},
  "rounds": [
    {"roundNumber": 1, "attackerHero": "Pyra", "defenderHero": "Rook", "winner": "defender",
     "attackerAttackValue": 10.5, "defenderAttackValue": 12,
     "attackerPaContrib": 3, "attackerMpContrib": 5, "defenderLevel": 7, "defenderElement": "EARTH",
     "defenderImagePath": "/heroes/rook.png",
     "challengerSpells": [{"spellName": "Ember", "manaCost": 20, "heroName": "Pyra", "trigger": "ATTACK"}],
     "challengerManaAfter": 80},
    {"roundNumber": 2, "attackerHero": "Gale", "defenderHero": "Rook", "winner": "attacker",
     "attackerAttackValue": 9, "defenderAttackValue": 4, "attackerLevel": 3, "attackerElement": "WIND",
     "attackerImagePath": "/heroes/gale.png"}
  ],
  "winner": "challenger",
  "xpGained": {"challenger": {"Pyra": 5, "Gale": 8}, "defender": {"Rook": 3}},
  "summonXp": {"challenger": 1, "defender": 0},
  "challengerManaTotal": 100
}`

func TestParseLegacyHeroes(t *testing.T) {
	l, err := Parse([]byte(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Challenger.Heroes) != 2 {
		t.Fatalf("got %d challenger heroes", len(l.Challenger.Heroes))
	}
	if h := l.Challenger.Heroes[0]; h.Legacy || h.Name != "Pyra" || h.Level != 4 {
		t.Fatalf("unexpected first hero %#v", h)
	}
	if h := l.Challenger.Heroes[1]; !h.Legacy || h.Name != "Gale" {
		t.Fatalf("unexpected legacy hero %#v", h)
	}
	if l.WinnerName() != "ana" {
		t.Fatalf("winner name %q", l.WinnerName())
	}
	if l.DefenderManaTotal != 0 {
		t.Fatalf("missing defender mana should be 0, got %v", l.DefenderManaTotal)
	}
	if l.XPGained.Challenger["Gale"] != 8 || l.SummonXP.Challenger != 1 {
		t.Fatalf("unexpected rewards %#v %#v", l.XPGained, l.SummonXP)
	}
}

func TestWinnerName(t *testing.T) {
	l := &Log{Challenger: Side{Username: "ana"}, Defender: Side{Username: "bo"}}
	cases := []struct {
		winner, want string
	}{
		{BattleChallenger, "ana"},
		{BattleDefender, "bo"},
		{"", ""},
		{"draw", ""},
	}
	for _, tt := range cases {
		l.Winner = tt.winner
		if got := l.WinnerName(); got != tt.want {
			t.Errorf("WinnerName() with winner %q = %q, want %q", tt.winner, got, tt.want)
		}
	}
}

func TestHeroStatBlock(t *testing.T) {
	l, err := Parse([]byte(`{
  "challenger": {"username": "ana", "heroes": [
    {"name": "Pyra", "imagePath": "/heroes/pyra.png", "level": 4,
     "stats": {"physicalAttack": 12, "magicPower": 30, "dexterity": 7, "element": 4, "mana": 50, "stamina": 90}},
    {"name": "Gale", "imagePath": "/heroes/gale.png", "level": 2}
  ]},
  "defender": {"username": "bo", "heroes": ["Rook"]},
  "rounds": [],
  "winner": "defender"
}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Stats{Pa: 12, Mp: 30, Dex: 7, Elem: 4, Mana: 50, Stam: 90}
	if st := l.Challenger.Heroes[0].Stats; st == nil || *st != want {
		t.Fatalf("stat block %#v", st)
	}
	if st := l.Challenger.Heroes[1].Stats; st != nil {
		t.Fatalf("hero without stats decoded %#v", st)
	}
	roster := BuildRoster(l.Challenger, l.Rounds, Attacker)
	if roster[0].Stats == nil || roster[0].Stats.Mp != 30 || roster[1].Stats != nil {
		t.Fatalf("roster stats %#v %#v", roster[0].Stats, roster[1].Stats)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{rounds:")); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.json")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(l.Rounds) != 2 || l.Rounds[1].RoundNumber != 2 {
		t.Fatalf("got rounds %#v", l.Rounds)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStrikeMissingFieldsAreZero(t *testing.T) {
	r := Round{AttackerAttackValue: 7}
	s := r.Strike(Attacker)
	if s.Physical != 0 || s.Magic != 0 || s.Dexterity != 0 || s.Raw != 0 {
		t.Fatalf("expected zeroed stats, got %#v", s)
	}
	if s.StaminaMod != 1 {
		t.Fatalf("missing stamina modifier should read as 1, got %v", s.StaminaMod)
	}
	if s.Value != 7 {
		t.Fatalf("value %v", s.Value)
	}
	if s.Impact() != ImpactPhysical {
		t.Fatalf("all-zero strike should be physical, got %v", s.Impact())
	}
}

func TestStrikeImpactPriority(t *testing.T) {
	cases := []struct {
		name        string
		pa, mp, dex float64
		want        ImpactType
	}{
		{"PhysicalWins", 5, 1, 1, ImpactPhysical},
		{"MagicWins", 1, 5, 1, ImpactMagic},
		{"DexWins", 1, 1, 5, ImpactDexterity},
		{"PhysicalMagicTie", 4, 4, 1, ImpactPhysical},
		{"MagicDexTie", 1, 4, 4, ImpactMagic},
		{"PhysicalDexTie", 4, 1, 4, ImpactPhysical},
		{"AllTie", 2, 2, 2, ImpactPhysical},
	}
	for _, tt := range cases {
		s := Strike{Physical: tt.pa, Magic: tt.mp, Dexterity: tt.dex}
		if got := s.Impact(); got != tt.want {
			t.Errorf("%v: got %v want %v", tt.name, got, tt.want)
		}
	}
}

func TestAdvantage(t *testing.T) {
	r := Round{AttackerElement: "WATER", DefenderElement: "FIRE"}
	if !r.Advantage(Attacker) || r.Advantage(Defender) {
		t.Fatalf("water should beat fire")
	}
	r = Round{AttackerElement: "WATER"}
	if r.Advantage(Attacker) {
		t.Fatalf("no advantage without an opposing element")
	}
}
