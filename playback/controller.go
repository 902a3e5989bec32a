package playback

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"arenareplay/battlelog"
)

// Options configures a Controller. The zero value plays at 1x on the wall
// clock with the default timing and no sink.
type Options struct {
	Speed   float64
	Sleeper Sleeper
	Timing  *Timing
	Sink    Sink
	Outcome Outcome
	// Context bounds every sequence the controller starts.
	Context context.Context
	// Logf, when set, receives debug lines about the transport.
	Logf func(format string, args ...any)
}

// Controller is the replay transport. It owns the current round index and
// the visual state, and runs at most one live choreography sequence at a
// time. Superseded sequences are recognised by their stale token and never
// touch the visual state again.
type Controller struct {
	mu sync.Mutex

	log     *battlelog.Log
	clock   *Clock
	timing  Timing
	sink    Sink
	outcome Outcome
	base    context.Context
	logf    func(format string, args ...any)

	roster [2][]battlelog.Participant

	index     int
	manaIndex int
	playing   bool
	busy      bool
	finished  bool
	closed    bool
	vis       visual

	token    uint64
	cancel   context.CancelFunc
	driver   uint64 // run id of the active driver, 0 when none
	runs     uint64
	inflight map[uint64]int
	seq      uint64
	keys     atomic.Uint64

	wg sync.WaitGroup
}

// New returns a paused controller positioned on the first round. A log
// without rounds is finished from the start.
func New(l *battlelog.Log, opts Options) *Controller {
	if l == nil {
		l = &battlelog.Log{}
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	timing := DefaultTiming
	if opts.Timing != nil {
		timing = *opts.Timing
	}
	base := opts.Context
	if base == nil {
		base = context.Background()
	}
	c := &Controller{
		log:       l,
		clock:     NewClock(speed, opts.Sleeper),
		timing:    timing,
		sink:      opts.Sink,
		outcome:   opts.Outcome,
		base:      base,
		logf:      opts.Logf,
		manaIndex: -1,
		inflight:  make(map[uint64]int),
		finished:  len(l.Rounds) == 0,
	}
	c.roster[battlelog.Attacker] = battlelog.BuildRoster(l.Challenger, l.Rounds, battlelog.Attacker)
	c.roster[battlelog.Defender] = battlelog.BuildRoster(l.Defender, l.Rounds, battlelog.Defender)
	c.vis.reset()
	return c
}

func (c *Controller) debugf(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}

func (c *Controller) nextKey() uint64 {
	return c.keys.Add(1)
}

// Play toggles between playing and paused. A finished battle restarts from
// the first round.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.log.Rounds) == 0 {
		return
	}
	if c.finished {
		c.restartLocked()
		return
	}
	if c.playing {
		c.playing = false
		c.publishLocked()
		return
	}
	c.playing = true
	// A paused driver still finishing its round picks the flag up when it
	// completes.
	if c.driver == 0 {
		c.startLocked()
	}
	c.publishLocked()
}

// Pause stops playback after the round in progress. The running sequence is
// not cancelled.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.playing = false
	c.publishLocked()
}

func (c *Controller) StepForward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index >= len(c.log.Rounds)-1 {
		return
	}
	c.seekLocked(c.index + 1)
}

func (c *Controller) StepBackward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index <= 0 {
		return
	}
	c.seekLocked(c.index - 1)
}

func (c *Controller) SeekToStart() { c.SeekTo(0) }

func (c *Controller) SeekToEnd() { c.SeekTo(len(c.log.Rounds) - 1) }

// SkipToEnd is the dedicated "skip" control. It behaves as SeekToEnd.
func (c *Controller) SkipToEnd() { c.SeekToEnd() }

// SeekTo cancels any running sequence, clears the stage and parks on round
// i, clamped to the battle. Playback does not resume.
func (c *Controller) SeekTo(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(i)
}

// SetSpeed changes the playback rate. Delays already in progress keep their
// old length.
func (c *Controller) SetSpeed(v float64) {
	c.clock.SetSpeed(v)
	c.mu.Lock()
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller) Speed() float64 { return c.clock.Speed() }

// Rewatch replays a finished battle from the first round.
func (c *Controller) Rewatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.finished || len(c.log.Rounds) == 0 {
		return
	}
	c.restartLocked()
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Token returns the current cancellation generation.
func (c *Controller) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Live returns the number of sequences running under the current token.
func (c *Controller) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[c.token]
}

// Remaining estimates the wall-clock time left until the battle ends at the
// current speed.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finished {
		return 0
	}
	var d time.Duration
	for i := c.index; i < len(c.log.Rounds); i++ {
		d += c.timing.RoundLength(c.log.Rounds, i)
	}
	return c.clock.Scale(d)
}

// Total returns the wall-clock length of the whole battle at the current
// speed.
func (c *Controller) Total() time.Duration {
	var d time.Duration
	for i := range c.log.Rounds {
		d += c.timing.RoundLength(c.log.Rounds, i)
	}
	return c.clock.Scale(d)
}

// Close cancels playback and waits for running sequences to unwind.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.playing = false
	c.cancelLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

// Wait blocks until every started sequence has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// cancelLocked retires the current token. It must run before the visual
// state is reset so a stale sequence cannot write over the fresh view.
func (c *Controller) cancelLocked() {
	c.token++
	c.driver = 0
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) resetLocked() {
	c.vis.reset()
	c.playing = false
	c.busy = false
	c.finished = false
}

func (c *Controller) seekLocked(i int) {
	if c.closed || len(c.log.Rounds) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.log.Rounds)-1 {
		i = len(c.log.Rounds) - 1
	}
	c.cancelLocked()
	c.resetLocked()
	c.index = i
	c.manaIndex = i - 1
	c.debugf("seek to round %d (token %d)", i+1, c.token)
	c.publishLocked()
}

func (c *Controller) restartLocked() {
	c.cancelLocked()
	c.resetLocked()
	c.index = 0
	c.manaIndex = -1
	c.playing = true
	c.startLocked()
	c.debugf("replay from round 1 (token %d)", c.token)
	c.publishLocked()
}

// startLocked launches the driver for the current token.
func (c *Controller) startLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.runs++
	c.driver = c.runs
	c.wg.Add(1)
	go c.drive(ctx, c.token, c.runs)
}

// drive plays rounds back to back while the controller keeps playing and
// the token stays current.
func (c *Controller) drive(ctx context.Context, token, run uint64) {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		if token != c.token || run != c.driver || !c.playing || c.finished {
			if run == c.driver {
				c.driver = 0
			}
			c.mu.Unlock()
			return
		}
		idx := c.index
		c.busy = true
		c.inflight[token]++
		c.publishLocked()
		c.mu.Unlock()

		s := &sequence{c: c, ctx: ctx, token: token, idx: idx, round: &c.log.Rounds[idx]}
		ok := s.run()

		c.mu.Lock()
		if c.inflight[token]--; c.inflight[token] <= 0 {
			delete(c.inflight, token)
		}
		if token != c.token {
			c.mu.Unlock()
			return
		}
		if !ok {
			// The base context ended under a live token.
			c.busy = false
			c.playing = false
			c.driver = 0
			c.publishLocked()
			c.mu.Unlock()
			return
		}
		c.busy = false
		c.vis.phase = PhaseIdle
		c.advanceLocked()
		c.publishLocked()
		c.mu.Unlock()
	}
}

func (c *Controller) advanceLocked() {
	if c.index < len(c.log.Rounds)-1 {
		c.index++
		return
	}
	c.finished = true
	c.playing = false
	c.debugf("battle finished after %d rounds", len(c.log.Rounds))
}

// live reports whether token is still current.
func (c *Controller) live(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.token
}

func (c *Controller) hidden(token uint64, s battlelog.SideKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.token && c.vis.hidden[s]
}

// emit applies fn to the visual state and publishes the result, unless
// token has been superseded.
func (c *Controller) emit(token uint64, fn func(v *visual)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.token {
		return false
	}
	fn(&c.vis)
	c.publishLocked()
	return true
}

func (c *Controller) publishLocked() {
	c.seq++
	if c.sink != nil {
		c.sink.Present(c.snapshotLocked())
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	rounds := c.log.Rounds
	s := Snapshot{
		Impact:      c.vis.impact,
		Banners:     append([]Banner(nil), c.vis.banners...),
		Resolved:    c.vis.resolved,
		RoundWinner: c.vis.winner,
		Phase:       c.vis.phase,
		Index:       c.index,
		Total:       len(rounds),
		ManaIndex:   c.manaIndex,
		Playing:     c.playing,
		Busy:        c.busy,
		Finished:    c.finished,
		Speed:       c.clock.Speed(),
		Seq:         c.seq,
	}
	if len(rounds) > 0 {
		s.Round = c.index + 1
		for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
			f := s.Fighter(side)
			f.Participant = c.fighterLocked(side)
			f.Anim = c.vis.anim[side]
			if d := c.vis.damage[side]; d != nil {
				dc := *d
				f.Damage = &dc
			}
			f.Eliminated = c.vis.hidden[side]
			cur, max, ok := c.log.ManaAt(c.manaIndex, side)
			f.Mana = Mana{Current: cur, Max: max, Visible: ok}
		}
	}
	s.LeftRoster = c.rosterLocked(battlelog.Attacker)
	s.RightRoster = c.rosterLocked(battlelog.Defender)
	s.Terminal = c.terminalLocked()
	return s
}

// fighterLocked returns the participant on stage for side s in the current
// round, preferring the roster entry of the same name.
func (c *Controller) fighterLocked(s battlelog.SideKey) battlelog.Participant {
	r := &c.log.Rounds[c.index]
	name := r.Hero(s)
	for _, p := range c.roster[s] {
		if !p.Summon && p.Name == name {
			return p
		}
	}
	return battlelog.Participant{Name: name, ImagePath: r.ImagePath(s), Level: r.Level(s), Element: r.Element(s)}
}

func (c *Controller) rosterLocked(s battlelog.SideKey) []RosterEntry {
	rounds := c.log.Rounds
	before := c.index
	if c.finished {
		before = len(rounds)
	}
	defeated := battlelog.Defeated(rounds, before, s)
	current := ""
	if len(rounds) > 0 {
		current = rounds[c.index].Hero(s)
		if c.vis.hidden[s] {
			defeated[current] = true
		}
	}
	out := make([]RosterEntry, 0, len(c.roster[s]))
	for _, p := range c.roster[s] {
		e := RosterEntry{Participant: p, Defeated: !p.Summon && defeated[p.Name]}
		e.Active = !p.Summon && !e.Defeated && p.Name == current
		out = append(out, e)
	}
	return out
}

func (c *Controller) terminalLocked() Terminal {
	last := len(c.log.Rounds) - 1
	return Terminal{
		Show:        c.finished || (c.index == last && !c.playing && !c.busy),
		Finished:    c.finished,
		Winner:      c.log.WinnerName(),
		WinnerLabel: WinnerLabel(c.log, c.outcome),
		Result:      c.outcome.Result,
		Gold:        c.outcome.Gold,
		XP:          XPLines(c.log),
	}
}

// WinnerLabel is the headline of the final frame: the viewer's own result
// when known, otherwise the winning username.
func WinnerLabel(l *battlelog.Log, o Outcome) string {
	switch o.Result {
	case ResultWin:
		return "Victory!"
	case ResultLoss:
		return "Defeat"
	}
	if name := l.WinnerName(); name != "" {
		return "🏆 " + name
	}
	return ""
}

// XPLines flattens the experience awards, heroes sorted by name within each
// side and summons last.
func XPLines(l *battlelog.Log) []XPLine {
	var out []XPLine
	add := func(s battlelog.SideKey, m map[string]int, summonXP int) {
		side := l.Side(s)
		names := make([]string, 0, len(m))
		for n := range m {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, XPLine{Side: s, Owner: side.Username, Hero: n, XP: m[n]})
		}
		if summonXP > 0 && side.Summon != nil {
			out = append(out, XPLine{Side: s, Owner: side.Username, Hero: side.Summon.Name, XP: summonXP, Summon: true})
		}
	}
	add(battlelog.Attacker, l.XPGained.Challenger, l.SummonXP.Challenger)
	add(battlelog.Defender, l.XPGained.Defender, l.SummonXP.Defender)
	return out
}
