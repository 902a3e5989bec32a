package main

import (
	"testing"

	"arenareplay/playback"
)

func TestPresenceText(t *testing.T) {
	cases := []struct {
		s     playback.Snapshot
		state string
	}{
		{playback.Snapshot{}, "Idle"},
		{playback.Snapshot{Total: 5, Round: 2, Playing: true}, "Round 2/5"},
		{playback.Snapshot{Total: 5, Round: 2}, "Round 2/5 (paused)"},
		{playback.Snapshot{Total: 5, Round: 5, Finished: true, Terminal: playback.Terminal{WinnerLabel: "Victory!"}}, "Result: Victory!"},
	}
	for _, tt := range cases {
		details, state := presenceText("ana vs bo", tt.s)
		if details != "ana vs bo" || state != tt.state {
			t.Errorf("got %q/%q want %q", details, state, tt.state)
		}
	}
}
