package main

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawSplash is shown until a battle is opened.
func drawSplash(screen *ebiten.Image) {
	cx := float64(screenWidth) / 2
	drawText(screen, "Arena Replay", titleFace, cx, 200, theme.text, alignCenter)
	drawText(screen, "Press O to open a battle log", bodyFace, cx, 260, theme.muted, alignCenter)
	if gs.LastBattle != "" {
		line := "Last: " + filepath.Base(gs.LastBattle)
		if w := lastWatchedLabel(gs.LastWatched); w != "" {
			line += ", " + w
		}
		drawText(screen, line, smallFace, cx, 290, theme.muted, alignCenter)
	}
	drawText(screen, "T theme   M mute", smallFace, cx, screenHeight-40, theme.muted, alignCenter)
}
