package main

import (
	"sync"
	"time"

	"arenareplay/battlelog"
	"arenareplay/playback"
)

const manaTweenTime = 600 * time.Millisecond

type manaTween struct {
	from, to float64
	at       time.Time
}

// stage receives snapshots from the controller and keeps what the renderer
// needs between frames: when each animation key started, the mana bar tween
// and the sounds still to be played.
type stage struct {
	mu      sync.Mutex
	now     func() time.Time
	snap    playback.Snapshot
	have    bool
	started map[uint64]time.Time
	mana    [2]manaTween
	sounds  []string
	victory bool
}

func newStage(now func() time.Time) *stage {
	if now == nil {
		now = time.Now
	}
	return &stage{now: now, started: make(map[uint64]time.Time)}
}

func snapshotKeys(s *playback.Snapshot) []uint64 {
	keys := []uint64{s.Left.Anim.Key, s.Right.Anim.Key, s.Impact.Key}
	for _, f := range []*playback.Fighter{&s.Left, &s.Right} {
		if f.Damage != nil {
			keys = append(keys, f.Damage.Key)
		}
	}
	return keys
}

// Present is called with the controller locked; it only records state.
func (st *stage) Present(s playback.Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()

	live := make(map[uint64]bool)
	for _, k := range snapshotKeys(&s) {
		if k == 0 {
			continue
		}
		live[k] = true
		if _, ok := st.started[k]; ok {
			continue
		}
		st.started[k] = now
		switch {
		case k == s.Impact.Key && s.Impact.Visible:
			st.sounds = append(st.sounds, impactSound(s.Impact.Type))
		case k == s.Left.Anim.Key && s.Left.Anim.Name == playback.AnimEliminate,
			k == s.Right.Anim.Key && s.Right.Anim.Name == playback.AnimEliminate:
			st.sounds = append(st.sounds, soundEliminate)
		}
	}
	for k := range st.started {
		if !live[k] {
			delete(st.started, k)
		}
	}

	for i, f := range []*playback.Fighter{&s.Left, &s.Right} {
		cur := f.Mana.Current
		if !st.have {
			st.mana[i] = manaTween{from: cur, to: cur, at: now}
			continue
		}
		if cur != st.mana[i].to {
			st.mana[i] = manaTween{from: st.manaAt(i, now), to: cur, at: now}
		}
	}

	won := s.Terminal.Show && s.Finished
	if won && !st.victory {
		st.sounds = append(st.sounds, soundVictory)
	}
	st.victory = won

	st.snap = s
	st.have = true
}

func (st *stage) current() (playback.Snapshot, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snap, st.have
}

// progress returns how far into its run the animation with key is, in [0,1].
func (st *stage) progress(key uint64, d time.Duration) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	start, ok := st.started[key]
	if !ok || d <= 0 {
		return 1
	}
	p := float64(st.now().Sub(start)) / float64(d)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func (st *stage) manaValue(side battlelog.SideKey) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.manaAt(int(side), st.now())
}

func (st *stage) manaAt(i int, now time.Time) float64 {
	t := st.mana[i]
	alpha := float64(now.Sub(t.at)) / float64(manaTweenTime)
	if alpha > 1 {
		alpha = 1
	}
	return lerpBar(t.from, t.to, alpha)
}

func (st *stage) drainSounds() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := st.sounds
	st.sounds = nil
	return out
}

// lerpBar eases a bar from prev toward cur.
func lerpBar(prev, cur, alpha float64) float64 {
	if alpha >= 1 {
		return cur
	}
	if alpha <= 0 {
		return prev
	}
	return prev + alpha*(cur-prev)
}
