package battlelog

// Participant is one portrait in a side's roster strip.
type Participant struct {
	Name      string
	ImagePath string
	Level     int
	Element   string
	Summon    bool

	// Stats is the hero's stat block when the side listed one.
	Stats *Stats
}

// BuildRoster lists the participants of a side in lineup order with the
// summon, if any, last. Legacy name-only heroes are filled in from the first
// round that mentions them. When the side lists no heroes the roster is
// recovered from the rounds in order of first appearance.
func BuildRoster(side Side, rounds []Round, s SideKey) []Participant {
	var list []Participant
	if len(side.Heroes) == 0 {
		seen := make(map[string]bool)
		for i := range rounds {
			name := rounds[i].Hero(s)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			list = append(list, fromRound(&rounds[i], s))
		}
	} else {
		list = make([]Participant, 0, len(side.Heroes)+1)
		for _, h := range side.Heroes {
			p := Participant{Name: h.Name, ImagePath: h.ImagePath, Level: h.Level, Element: h.Element, Stats: h.Stats}
			if h.Legacy || p.ImagePath == "" {
				if r := firstRoundOf(rounds, h.Name, s); r != nil {
					rp := fromRound(r, s)
					if p.ImagePath == "" {
						p.ImagePath = rp.ImagePath
					}
					if p.Level == 0 {
						p.Level = rp.Level
					}
					if p.Element == "" {
						p.Element = rp.Element
					}
				}
			}
			list = append(list, p)
		}
	}
	if side.Summon != nil && side.Summon.Name != "" {
		list = append(list, Participant{Name: side.Summon.Name, ImagePath: side.Summon.ImagePath, Summon: true})
	}
	return list
}

func fromRound(r *Round, s SideKey) Participant {
	return Participant{
		Name:      r.Hero(s),
		ImagePath: r.ImagePath(s),
		Level:     r.Level(s),
		Element:   r.Element(s),
	}
}

func firstRoundOf(rounds []Round, name string, s SideKey) *Round {
	for i := range rounds {
		if rounds[i].Hero(s) == name {
			return &rounds[i]
		}
	}
	return nil
}

// Eliminated reports whether the participant of side s was knocked out in
// round i: s lost the round and the next round, if any, fields someone else.
func Eliminated(rounds []Round, i int, s SideKey) bool {
	r := &rounds[i]
	if r.WinnerSide() == s {
		return false
	}
	if i+1 >= len(rounds) {
		return true
	}
	return rounds[i+1].Hero(s) != r.Hero(s)
}

// Defeated returns the participants of side s eliminated strictly before
// round index before.
func Defeated(rounds []Round, before int, s SideKey) map[string]bool {
	out := make(map[string]bool)
	if before > len(rounds) {
		before = len(rounds)
	}
	for i := 0; i < before; i++ {
		if Eliminated(rounds, i, s) {
			out[rounds[i].Hero(s)] = true
		}
	}
	return out
}

// Entered reports whether side s fields a new participant in round i
// compared with round i-1. The first round never counts as an entrance.
func Entered(rounds []Round, i int, s SideKey) bool {
	if i <= 0 {
		return false
	}
	return rounds[i].Hero(s) != rounds[i-1].Hero(s)
}

// FirstStriker returns the side acting first in round i. The first round
// opens with the attacker; afterwards the previous round's winner presses on.
func FirstStriker(rounds []Round, i int) SideKey {
	if i <= 0 {
		return Attacker
	}
	return rounds[i-1].WinnerSide()
}

// ManaAt returns the mana shown for side s when the snapshot of round index
// shown is displayed. shown < 0 means the starting pool. Rounds without a
// snapshot carry the previous value forward. visible is false when the side
// has no mana pool at all.
func (l *Log) ManaAt(shown int, s SideKey) (cur, max float64, visible bool) {
	max = l.ManaTotal(s)
	if max <= 0 {
		return 0, 0, false
	}
	cur = max
	if shown >= len(l.Rounds) {
		shown = len(l.Rounds) - 1
	}
	for i := shown; i >= 0; i-- {
		if v, ok := l.Rounds[i].ManaAfter(s); ok {
			cur = v
			break
		}
	}
	if cur < 0 {
		cur = 0
	}
	return cur, max, true
}
