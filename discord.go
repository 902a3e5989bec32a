package main

import (
	"context"
	"sync"
	"time"

	client "github.com/hugolgst/rich-go/client"

	"arenareplay/playback"
)

var (
	discordMu      sync.Mutex
	discordOn      bool
	discordStarted time.Time
	discordLast    string
)

func initDiscordRPC(ctx context.Context, appID string) {
	if err := client.Login(appID); err != nil {
		logError("discord rpc login: %v", err)
		return
	}
	discordMu.Lock()
	discordOn = true
	discordStarted = time.Now()
	discordLast = ""
	discordMu.Unlock()
	go func() {
		<-ctx.Done()
		discordMu.Lock()
		discordOn = false
		discordMu.Unlock()
		client.Logout()
	}()
}

// presenceText describes what the viewer is watching.
func presenceText(title string, s playback.Snapshot) (details, state string) {
	details = title
	switch {
	case s.Total == 0:
		state = "Idle"
	case s.Finished:
		state = "Result: " + s.Terminal.WinnerLabel
	case s.Playing:
		state = roundLabel(s.Round, s.Total)
	default:
		state = roundLabel(s.Round, s.Total) + " (paused)"
	}
	return details, state
}

// updatePresence pushes the activity when it changed since the last call.
func updatePresence(title string, s playback.Snapshot) {
	details, state := presenceText(title, s)
	discordMu.Lock()
	if !discordOn || details+"\n"+state == discordLast {
		discordMu.Unlock()
		return
	}
	discordLast = details + "\n" + state
	start := discordStarted
	discordMu.Unlock()

	go func() {
		if err := client.SetActivity(client.Activity{
			State:      state,
			Details:    details,
			Timestamps: &client.Timestamps{Start: &start},
		}); err != nil {
			logDebug("discord rpc activity: %v", err)
		}
	}()
}
