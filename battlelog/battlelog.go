// Package battlelog holds the finished battle trace produced by the arena
// server: the sides, the ordered rounds and the post-battle rewards.
package battlelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SideKey identifies a column of the arena. The challenger always attacks
// from the left, the defender holds the right.
type SideKey int

const (
	Attacker SideKey = iota
	Defender
)

func (s SideKey) String() string {
	if s == Defender {
		return "defender"
	}
	return "attacker"
}

// Other returns the opposing side.
func (s SideKey) Other() SideKey {
	if s == Attacker {
		return Defender
	}
	return Attacker
}

// Winner values as sent by the server for rounds and battles.
const (
	RoundAttacker    = "attacker"
	RoundDefender    = "defender"
	BattleChallenger = "challenger"
	BattleDefender   = "defender"
)

type Hero struct {
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
	Level     int    `json:"level"`
	Element   string `json:"element,omitempty"`
	Stats     *Stats `json:"stats,omitempty"`

	// Legacy is set when the server sent only the hero's name.
	Legacy bool `json:"-"`
}

// UnmarshalJSON accepts both the object form and the legacy bare string.
func (h *Hero) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*h = Hero{Name: name, Legacy: true}
		return nil
	}
	type plain Hero
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = Hero(p)
	return nil
}

type Summon struct {
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}

type Side struct {
	Username         string  `json:"username"`
	ProfileImagePath string  `json:"profileImagePath,omitempty"`
	Heroes           []Hero  `json:"heroes"`
	Summon           *Summon `json:"summon,omitempty"`
}

type SpellEvent struct {
	SpellName string  `json:"spellName"`
	ManaCost  float64 `json:"manaCost"`
	HeroName  string  `json:"heroName"`
	Trigger   string  `json:"trigger"`
}

// Round is one resolved attacker-vs-defender exchange. Optional numbers are
// pointers so a missing field can be told apart from zero.
type Round struct {
	RoundNumber int    `json:"roundNumber"`
	Winner      string `json:"winner"`

	AttackerHero        string   `json:"attackerHero"`
	AttackerLevel       int      `json:"attackerLevel"`
	AttackerElement     string   `json:"attackerElement,omitempty"`
	AttackerImagePath   string   `json:"attackerImagePath,omitempty"`
	AttackerAttackValue float64  `json:"attackerAttackValue"`
	AttackerPaContrib   *float64 `json:"attackerPaContrib,omitempty"`
	AttackerMpContrib   *float64 `json:"attackerMpContrib,omitempty"`
	AttackerDexContrib  *float64 `json:"attackerDexContrib,omitempty"`
	AttackerRawAttack   *float64 `json:"attackerRawAttack,omitempty"`
	AttackerStaminaRed  *float64 `json:"attackerStaminaReduction,omitempty"`
	AttackerStaminaMod  *float64 `json:"attackerStaminaModifier,omitempty"`
	AttackerElemBonus   *float64 `json:"attackerElementBonus,omitempty"`
	AttackerStatPa      *float64 `json:"attackerStatPa,omitempty"`
	AttackerStatMp      *float64 `json:"attackerStatMp,omitempty"`
	AttackerStatDex     *float64 `json:"attackerStatDex,omitempty"`
	AttackerStatElem    *float64 `json:"attackerStatElem,omitempty"`
	AttackerStatMana    *float64 `json:"attackerStatMana,omitempty"`
	AttackerStatStam    *float64 `json:"attackerStatStam,omitempty"`

	DefenderHero        string   `json:"defenderHero"`
	DefenderLevel       int      `json:"defenderLevel"`
	DefenderElement     string   `json:"defenderElement,omitempty"`
	DefenderImagePath   string   `json:"defenderImagePath,omitempty"`
	DefenderAttackValue float64  `json:"defenderAttackValue"`
	DefenderPaContrib   *float64 `json:"defenderPaContrib,omitempty"`
	DefenderMpContrib   *float64 `json:"defenderMpContrib,omitempty"`
	DefenderDexContrib  *float64 `json:"defenderDexContrib,omitempty"`
	DefenderRawAttack   *float64 `json:"defenderRawAttack,omitempty"`
	DefenderStaminaRed  *float64 `json:"defenderStaminaReduction,omitempty"`
	DefenderStaminaMod  *float64 `json:"defenderStaminaModifier,omitempty"`
	DefenderElemBonus   *float64 `json:"defenderElementBonus,omitempty"`
	DefenderStatPa      *float64 `json:"defenderStatPa,omitempty"`
	DefenderStatMp      *float64 `json:"defenderStatMp,omitempty"`
	DefenderStatDex     *float64 `json:"defenderStatDex,omitempty"`
	DefenderStatElem    *float64 `json:"defenderStatElem,omitempty"`
	DefenderStatMana    *float64 `json:"defenderStatMana,omitempty"`
	DefenderStatStam    *float64 `json:"defenderStatStam,omitempty"`

	ChallengerSpells    []SpellEvent `json:"challengerSpells,omitempty"`
	DefenderSpells      []SpellEvent `json:"defenderSpells,omitempty"`
	ChallengerManaAfter *float64     `json:"challengerManaAfter,omitempty"`
	DefenderManaAfter   *float64     `json:"defenderManaAfter,omitempty"`
}

// XPBySide maps hero name to experience gained, per side.
type XPBySide struct {
	Challenger map[string]int `json:"challenger"`
	Defender   map[string]int `json:"defender"`
}

type SummonXP struct {
	Challenger int `json:"challenger"`
	Defender   int `json:"defender"`
}

// Log is the whole battle trace. It is never modified during playback.
type Log struct {
	Challenger          Side     `json:"challenger"`
	Defender            Side     `json:"defender"`
	Rounds              []Round  `json:"rounds"`
	Winner              string   `json:"winner"`
	XPGained            XPBySide `json:"xpGained"`
	SummonXP            SummonXP `json:"summonXp"`
	ChallengerManaTotal float64  `json:"challengerManaTotal,omitempty"`
	DefenderManaTotal   float64  `json:"defenderManaTotal,omitempty"`
}

// Parse decodes a battle log from its JSON form.
func Parse(data []byte) (*Log, error) {
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode battle log: %w", err)
	}
	return &l, nil
}

// LoadFile reads and decodes the battle log stored at path.
func LoadFile(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read battle log %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Side returns the descriptor for the given column.
func (l *Log) Side(s SideKey) Side {
	if s == Defender {
		return l.Defender
	}
	return l.Challenger
}

// ManaTotal returns the starting mana pool of a side.
func (l *Log) ManaTotal(s SideKey) float64 {
	if s == Defender {
		return l.DefenderManaTotal
	}
	return l.ChallengerManaTotal
}

// WinnerName returns the username of the side that won the battle, or ""
// when the log names no known winner.
func (l *Log) WinnerName() string {
	switch l.Winner {
	case BattleChallenger:
		return l.Challenger.Username
	case BattleDefender:
		return l.Defender.Username
	}
	return ""
}
