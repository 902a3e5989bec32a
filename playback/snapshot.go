package playback

import (
	"time"

	"arenareplay/battlelog"
)

// Animation names understood by the renderer.
const (
	AnimIdle        = "idle"
	AnimEnter       = "enter"
	AnimChargeRight = "charge-right" // left fighter rushing right
	AnimChargeLeft  = "charge-left"  // right fighter rushing left
	AnimHit         = "hit"
	AnimGlow        = "glow"
	AnimShake       = "shake"
	AnimEliminate   = "eliminate"
	AnimHidden      = "hidden"
)

// Anim is a running animation. A renderer seeing a new Key must restart the
// animation from its first frame even when Name did not change.
type Anim struct {
	Name     string
	Duration time.Duration
	Key      uint64
}

var idle = Anim{Name: AnimIdle}

// Damage is the floating number shown over a fighter that was just hit.
type Damage struct {
	Value        float64
	ElementBonus float64
	Raw          float64
	StaminaLost  float64
	Impact       battlelog.ImpactType
	Duration     time.Duration
	Key          uint64
}

// Mana is a side's resource bar. Visible is false when the side has no pool.
type Mana struct {
	Current float64
	Max     float64
	Visible bool
}

// Percent returns the filled fraction in [0,1].
func (m Mana) Percent() float64 {
	if !m.Visible || m.Max <= 0 {
		return 0
	}
	p := m.Current / m.Max
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

type Banner struct {
	Side     battlelog.SideKey
	Hero     string
	Spell    string
	ManaCost float64
	Trigger  string
}

// Impact is the flash drawn between the fighters when a blow lands.
type Impact struct {
	Visible bool
	Type    battlelog.ImpactType
	Target  battlelog.SideKey
	Key     uint64
}

type Fighter struct {
	battlelog.Participant
	Anim       Anim
	Damage     *Damage
	Mana       Mana
	Eliminated bool
}

type RosterEntry struct {
	battlelog.Participant
	Active   bool
	Defeated bool
}

type XPLine struct {
	Side   battlelog.SideKey
	Owner  string
	Hero   string
	XP     int
	Summon bool
}

const (
	ResultWin  = "WIN"
	ResultLoss = "LOSS"
)

// Outcome is the externally known result of the battle for the viewer.
// Result is ResultWin, ResultLoss or empty.
type Outcome struct {
	Result string
	Gold   int
}

type Terminal struct {
	// Show is true whenever the final banner should be on screen.
	Show        bool
	Finished    bool
	Winner      string
	WinnerLabel string
	Result      string
	Gold        int
	XP          []XPLine
}

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	Left, Right Fighter
	Impact      Impact
	Banners     []Banner
	Resolved    bool
	RoundWinner battlelog.SideKey
	Phase       Phase

	Index     int
	Round     int
	Total     int
	ManaIndex int

	Playing  bool
	Busy     bool
	Finished bool
	Speed    float64

	LeftRoster  []RosterEntry
	RightRoster []RosterEntry
	Terminal    Terminal

	// Seq counts emissions since the controller was created.
	Seq uint64
}

// Fighter returns the fighter on side s.
func (s *Snapshot) Fighter(side battlelog.SideKey) *Fighter {
	if side == battlelog.Defender {
		return &s.Right
	}
	return &s.Left
}

// Transient reports whether any per-round effect is still on screen.
func (s Snapshot) Transient() bool {
	return s.Left.Damage != nil || s.Right.Damage != nil || len(s.Banners) > 0 ||
		s.Impact.Visible || s.Resolved
}

// Sink receives every snapshot the controller emits, in order. It is called
// with the controller locked and must not call back into it.
type Sink interface {
	Present(Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Snapshot)

func (f SinkFunc) Present(s Snapshot) { f(s) }

// visual is the mutable per-round state written by the live sequence.
type visual struct {
	anim     [2]Anim
	damage   [2]*Damage
	hidden   [2]bool
	impact   Impact
	banners  []Banner
	resolved bool
	winner   battlelog.SideKey
	phase    Phase
}

func (v *visual) reset() {
	*v = visual{}
	v.anim[0], v.anim[1] = idle, idle
}
