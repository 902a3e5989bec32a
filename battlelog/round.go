package battlelog

// ImpactType names the visual used for a landed blow.
type ImpactType string

const (
	ImpactPhysical  ImpactType = "physical"
	ImpactMagic     ImpactType = "magic"
	ImpactDexterity ImpactType = "dexterity"
)

// Strike is one side's contribution to a round with missing values read as
// zero.
type Strike struct {
	Physical     float64
	Magic        float64
	Dexterity    float64
	Raw          float64
	StaminaLost  float64
	StaminaMod   float64
	ElementBonus float64
	Value        float64
}

// Impact picks the strike's dominant stat. Ties go to physical, then magic.
func (s Strike) Impact() ImpactType {
	switch {
	case s.Physical >= s.Magic && s.Physical >= s.Dexterity:
		return ImpactPhysical
	case s.Magic >= s.Dexterity:
		return ImpactMagic
	default:
		return ImpactDexterity
	}
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// WinnerSide reports which column won the round.
func (r *Round) WinnerSide() SideKey {
	if r.Winner == RoundDefender {
		return Defender
	}
	return Attacker
}

// Hero returns the participant fighting for s in this round.
func (r *Round) Hero(s SideKey) string {
	if s == Defender {
		return r.DefenderHero
	}
	return r.AttackerHero
}

func (r *Round) Level(s SideKey) int {
	if s == Defender {
		return r.DefenderLevel
	}
	return r.AttackerLevel
}

func (r *Round) Element(s SideKey) string {
	if s == Defender {
		return r.DefenderElement
	}
	return r.AttackerElement
}

func (r *Round) ImagePath(s SideKey) string {
	if s == Defender {
		return r.DefenderImagePath
	}
	return r.AttackerImagePath
}

// Spells returns the spells triggered by s this round.
func (r *Round) Spells(s SideKey) []SpellEvent {
	if s == Defender {
		return r.DefenderSpells
	}
	return r.ChallengerSpells
}

// ManaAfter returns the post-spell mana snapshot for s, if the round has one.
func (r *Round) ManaAfter(s SideKey) (float64, bool) {
	p := r.ChallengerManaAfter
	if s == Defender {
		p = r.DefenderManaAfter
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Strike collects the stat contributions of s for this round.
func (r *Round) Strike(s SideKey) Strike {
	if s == Defender {
		return Strike{
			Physical:     num(r.DefenderPaContrib),
			Magic:        num(r.DefenderMpContrib),
			Dexterity:    num(r.DefenderDexContrib),
			Raw:          num(r.DefenderRawAttack),
			StaminaLost:  num(r.DefenderStaminaRed),
			StaminaMod:   staminaMod(r.DefenderStaminaMod),
			ElementBonus: num(r.DefenderElemBonus),
			Value:        r.DefenderAttackValue,
		}
	}
	return Strike{
		Physical:     num(r.AttackerPaContrib),
		Magic:        num(r.AttackerMpContrib),
		Dexterity:    num(r.AttackerDexContrib),
		Raw:          num(r.AttackerRawAttack),
		StaminaLost:  num(r.AttackerStaminaRed),
		StaminaMod:   staminaMod(r.AttackerStaminaMod),
		ElementBonus: num(r.AttackerElemBonus),
		Value:        r.AttackerAttackValue,
	}
}

func staminaMod(p *float64) float64 {
	if p == nil {
		return 1
	}
	return *p
}

// Stats is the raw stat block shown in the round breakdown panel.
type Stats struct {
	Pa   float64 `json:"physicalAttack"`
	Mp   float64 `json:"magicPower"`
	Dex  float64 `json:"dexterity"`
	Elem float64 `json:"element"`
	Mana float64 `json:"mana"`
	Stam float64 `json:"stamina"`
}

func (r *Round) Stats(s SideKey) Stats {
	if s == Defender {
		return Stats{
			Pa:   num(r.DefenderStatPa),
			Mp:   num(r.DefenderStatMp),
			Dex:  num(r.DefenderStatDex),
			Elem: num(r.DefenderStatElem),
			Mana: num(r.DefenderStatMana),
			Stam: num(r.DefenderStatStam),
		}
	}
	return Stats{
		Pa:   num(r.AttackerStatPa),
		Mp:   num(r.AttackerStatMp),
		Dex:  num(r.AttackerStatDex),
		Elem: num(r.AttackerStatElem),
		Mana: num(r.AttackerStatMana),
		Stam: num(r.AttackerStatStam),
	}
}

// ElementBeats maps each element to the one it has the advantage over.
var ElementBeats = map[string]string{
	"FIRE":      "WIND",
	"WATER":     "FIRE",
	"LIGHTNING": "EARTH",
	"WIND":      "LIGHTNING",
	"EARTH":     "WATER",
}

// Advantage reports whether s holds the elemental advantage this round.
func (r *Round) Advantage(s SideKey) bool {
	mine, theirs := r.Element(s), r.Element(s.Other())
	return mine != "" && theirs != "" && ElementBeats[mine] == theirs
}
