package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"arenareplay/playback"
)

type Settings struct {
	Scale           float64   `json:"scale"`
	Fullscreen      bool      `json:"fullscreen"`
	Vsync           bool      `json:"vsync"`
	Speed           float64   `json:"speed"`
	Volume          float64   `json:"volume"`
	Mute            bool      `json:"mute"`
	Theme           string    `json:"theme"`
	ShowStats       bool      `json:"showStats"`
	SmoothPortraits bool      `json:"smoothPortraits"`
	Discord         bool      `json:"discord"`
	LastBattle      string    `json:"lastBattle"`
	LastWatched     time.Time `json:"lastWatched"`
}

var defaultSettings = Settings{
	Scale:  1,
	Vsync:  true,
	Speed:  1,
	Volume: 0.4,
}

var (
	gs            = defaultSettings
	settingsDirty bool
)

func settingsPath() string {
	return filepath.Join(baseDir, "settings.json")
}

// loadSettings reads settings.json over the defaults. Values out of range
// fall back to their defaults.
func loadSettings() bool {
	gs = defaultSettings
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, &gs); err != nil {
		log.Printf("load settings: %v", err)
		gs = defaultSettings
		return false
	}
	if gs.Scale < 0.5 || gs.Scale > 4 {
		gs.Scale = defaultSettings.Scale
	}
	if gs.Speed <= 0 {
		gs.Speed = defaultSettings.Speed
	}
	gs.Speed = playback.NearestSpeed(gs.Speed)
	if gs.Volume < 0 || gs.Volume > 1 {
		gs.Volume = defaultSettings.Volume
	}
	return true
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	if err := os.WriteFile(settingsPath(), data, 0644); err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	settingsDirty = false
}
