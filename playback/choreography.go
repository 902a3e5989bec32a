package playback

import (
	"context"
	"time"

	"arenareplay/battlelog"
)

// Phase is a step of the per-round choreography.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEntrance
	PhaseAnnounce
	PhaseFirstStrike
	PhaseSecondStrike
	PhaseResolution
	PhaseElimination
	PhaseSettle
)

var phaseNames = [...]string{"idle", "entrance", "announce", "first-strike", "second-strike", "resolution", "elimination", "settle"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Timing holds the base (1x) durations of the choreography.
type Timing struct {
	Entrance    time.Duration
	Charge      time.Duration
	Peak        time.Duration // charge start until contact
	Impact      time.Duration
	HitFlash    time.Duration
	DamageFloat time.Duration
	Resolution  time.Duration
	Glow        time.Duration
	Shake       time.Duration
	Elimination time.Duration
	EliminateFx time.Duration
	Settle      time.Duration
}

var DefaultTiming = Timing{
	Entrance:    450 * time.Millisecond,
	Charge:      650 * time.Millisecond,
	Peak:        270 * time.Millisecond,
	Impact:      190 * time.Millisecond,
	HitFlash:    500 * time.Millisecond,
	DamageFloat: 900 * time.Millisecond,
	Resolution:  750 * time.Millisecond,
	Glow:        800 * time.Millisecond,
	Shake:       600 * time.Millisecond,
	Elimination: 500 * time.Millisecond,
	EliminateFx: 600 * time.Millisecond,
	Settle:      160 * time.Millisecond,
}

// Retract is the time the striker needs to return home after the impact.
func (t Timing) Retract() time.Duration {
	r := t.Charge - t.Peak - t.Impact
	if r < 0 {
		return 0
	}
	return r
}

// RoundLength returns the total base suspension time of round i.
func (t Timing) RoundLength(rounds []battlelog.Round, i int) time.Duration {
	d := 2*(t.Peak+t.Impact+t.Retract()) + t.Resolution + t.Settle
	if battlelog.Entered(rounds, i, battlelog.Attacker) || battlelog.Entered(rounds, i, battlelog.Defender) {
		d += t.Entrance
	}
	if battlelog.Eliminated(rounds, i, battlelog.Attacker) || battlelog.Eliminated(rounds, i, battlelog.Defender) {
		d += t.Elimination
	}
	return d
}

// sequence is one choreography run for a single round. It captures the
// controller token at start; once the token moves on, every emission and
// every resumed delay becomes a no-op and the run unwinds.
type sequence struct {
	c     *Controller
	ctx   context.Context
	token uint64
	idx   int
	round *battlelog.Round
}

// wait suspends on the clock and reports whether the sequence is still live.
func (s *sequence) wait(base time.Duration) bool {
	if err := s.c.clock.Delay(s.ctx, base); err != nil {
		return false
	}
	return s.c.live(s.token)
}

func (s *sequence) emit(fn func(v *visual)) bool {
	return s.c.emit(s.token, fn)
}

func (s *sequence) anim(name string, base time.Duration) Anim {
	return Anim{Name: name, Duration: s.c.clock.Scale(base), Key: s.c.nextKey()}
}

// run steps through every phase. It returns false when the sequence was
// abandoned.
func (s *sequence) run() bool {
	for p := PhaseEntrance; p <= PhaseSettle; p++ {
		if !s.step(p) {
			return false
		}
	}
	return true
}

func (s *sequence) step(p Phase) bool {
	rounds := s.c.log.Rounds
	t := s.c.timing
	switch p {
	case PhaseEntrance:
		var sides []battlelog.SideKey
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			if battlelog.Entered(rounds, s.idx, side) || s.c.hidden(s.token, side) {
				sides = append(sides, side)
			}
		}
		if len(sides) == 0 {
			return true
		}
		ok := s.emit(func(v *visual) {
			v.phase = p
			for _, side := range sides {
				v.hidden[side] = false
				v.anim[side] = s.anim(AnimEnter, t.Entrance)
			}
		})
		return ok && s.wait(t.Entrance)

	case PhaseAnnounce:
		var banners []Banner
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			for _, sp := range s.round.Spells(side) {
				banners = append(banners, Banner{Side: side, Hero: sp.HeroName, Spell: sp.SpellName, ManaCost: sp.ManaCost, Trigger: sp.Trigger})
			}
		}
		if len(banners) == 0 {
			return true
		}
		return s.emit(func(v *visual) {
			v.phase = p
			v.banners = append(v.banners, banners...)
			s.c.manaIndex = s.idx
		})

	case PhaseFirstStrike:
		return s.strike(p, battlelog.FirstStriker(rounds, s.idx))

	case PhaseSecondStrike:
		return s.strike(p, battlelog.FirstStriker(rounds, s.idx).Other())

	case PhaseResolution:
		w := s.round.WinnerSide()
		ok := s.emit(func(v *visual) {
			v.phase = p
			v.resolved = true
			v.winner = w
			v.anim[w] = s.anim(AnimGlow, t.Glow)
			v.anim[w.Other()] = s.anim(AnimShake, t.Shake)
		})
		return ok && s.wait(t.Resolution)

	case PhaseElimination:
		var out []battlelog.SideKey
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			if battlelog.Eliminated(rounds, s.idx, side) {
				out = append(out, side)
			}
		}
		if len(out) == 0 {
			return true
		}
		ok := s.emit(func(v *visual) {
			v.phase = p
			for _, side := range out {
				v.anim[side] = s.anim(AnimEliminate, t.EliminateFx)
				v.hidden[side] = true
			}
		})
		return ok && s.wait(t.Elimination)

	case PhaseSettle:
		ok := s.emit(func(v *visual) {
			v.phase = p
			v.damage = [2]*Damage{}
			v.banners = nil
			v.impact = Impact{}
			v.resolved = false
			for side := range v.anim {
				if v.hidden[side] {
					v.anim[side] = Anim{Name: AnimHidden, Key: s.c.nextKey()}
				} else {
					v.anim[side] = idle
				}
			}
			s.c.manaIndex = s.idx
		})
		return ok && s.wait(t.Settle)
	}
	return true
}

// strike plays one charge and impact for striker, landing on the opponent.
func (s *sequence) strike(p Phase, striker battlelog.SideKey) bool {
	t := s.c.timing
	target := striker.Other()
	st := s.round.Strike(striker)
	charge := AnimChargeRight
	if striker == battlelog.Defender {
		charge = AnimChargeLeft
	}

	if !s.emit(func(v *visual) {
		v.phase = p
		v.anim[striker] = s.anim(charge, t.Charge)
	}) || !s.wait(t.Peak) {
		return false
	}

	if !s.emit(func(v *visual) {
		v.impact = Impact{Visible: true, Type: st.Impact(), Target: target, Key: s.c.nextKey()}
		v.damage[target] = &Damage{
			Value:        st.Value,
			ElementBonus: st.ElementBonus,
			Raw:          st.Raw,
			StaminaLost:  st.StaminaLost,
			Impact:       st.Impact(),
			Duration:     s.c.clock.Scale(t.DamageFloat),
			Key:          s.c.nextKey(),
		}
		v.anim[target] = s.anim(AnimHit, t.HitFlash)
	}) || !s.wait(t.Impact) {
		return false
	}

	if !s.emit(func(v *visual) {
		v.impact.Visible = false
	}) {
		return false
	}
	return s.wait(t.Retract())
}
