package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"arenareplay/battlelog"
)

const (
	maxSounds  = 16
	sampleRate = 44100
)

// Sound names looked up as data/sounds/<name>.wav.
const (
	soundPhysical  = "physical"
	soundMagic     = "magic"
	soundDexterity = "dexterity"
	soundEliminate = "eliminate"
	soundVictory   = "victory"
)

var (
	soundMu  sync.Mutex
	pcmCache = make(map[string][]byte)

	audioContext *audio.Context
	soundPlayers = make(map[*audio.Player]struct{})
)

func initSoundContext() {
	if audioContext = audio.CurrentContext(); audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}
}

func impactSound(t battlelog.ImpactType) string {
	switch t {
	case battlelog.ImpactMagic:
		return soundMagic
	case battlelog.ImpactDexterity:
		return soundDexterity
	}
	return soundPhysical
}

func playSound(name string) {
	if gs.Mute || audioContext == nil {
		return
	}
	pcm := loadSound(name)
	if pcm == nil {
		return
	}
	p := audioContext.NewPlayerFromBytes(pcm)
	p.SetVolume(gs.Volume)

	soundMu.Lock()
	for sp := range soundPlayers {
		if !sp.IsPlaying() {
			sp.Close()
			delete(soundPlayers, sp)
		}
	}
	if len(soundPlayers) >= maxSounds {
		soundMu.Unlock()
		p.Close()
		return
	}
	soundPlayers[p] = struct{}{}
	soundMu.Unlock()

	p.Play()
}

func stopAllSounds() {
	soundMu.Lock()
	defer soundMu.Unlock()
	for sp := range soundPlayers {
		sp.Close()
		delete(soundPlayers, sp)
	}
}

// loadSound returns 16-bit stereo PCM for name, decoding the wav file on
// first use. A missing file falls back to a synthesized effect.
func loadSound(name string) []byte {
	soundMu.Lock()
	if pcm, ok := pcmCache[name]; ok {
		soundMu.Unlock()
		return pcm
	}
	soundMu.Unlock()

	pcm, err := decodeWav(filepath.Join(dataDir, "sounds", name+".wav"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logError("sound %s: %v", name, err)
		}
		pcm = synthSound(name)
	}

	soundMu.Lock()
	pcmCache[name] = pcm
	soundMu.Unlock()
	return pcm
}

func decodeWav(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := wav.DecodeWithSampleRate(sampleRate, f)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(s)
}

type synthSpec struct {
	freq, sweep float64 // start frequency and change per second
	dur         float64
	noise       float64
	decay       float64
}

var synthSpecs = map[string]synthSpec{
	soundPhysical:  {freq: 110, sweep: -60, dur: 0.18, noise: 0.6, decay: 18},
	soundMagic:     {freq: 660, sweep: 900, dur: 0.28, noise: 0.1, decay: 9},
	soundDexterity: {freq: 1400, sweep: -2400, dur: 0.12, noise: 0.8, decay: 30},
	soundEliminate: {freq: 220, sweep: -160, dur: 0.5, noise: 0.2, decay: 5},
	soundVictory:   {freq: 523, sweep: 260, dur: 0.6, decay: 3},
}

// synthSound renders a short decaying tone with optional noise.
func synthSound(name string) []byte {
	spec, ok := synthSpecs[name]
	if !ok {
		return nil
	}
	n := int(spec.dur * sampleRate)
	buf := bytes.NewBuffer(make([]byte, 0, n*4))
	rng := rand.New(rand.NewSource(int64(len(name))))
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		phase += 2 * math.Pi * (spec.freq + spec.sweep*t) / sampleRate
		v := math.Sin(phase)*(1-spec.noise) + (rng.Float64()*2-1)*spec.noise
		v *= math.Exp(-spec.decay*t) * 0.5
		s := int16(v * math.MaxInt16)
		binary.Write(buf, binary.LittleEndian, s)
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}
