package main

import (
	"image/color"

	dark "github.com/thiagokokada/dark-mode-go"
)

type palette struct {
	name     string
	bg       color.RGBA
	panel    color.RGBA
	text     color.RGBA
	muted    color.RGBA
	attacker color.RGBA
	defender color.RGBA
	gold     color.RGBA
	loss     color.RGBA
	mana     color.RGBA
	track    color.RGBA
}

var darkPalette = palette{
	name:     "dark",
	bg:       color.RGBA{0x12, 0x14, 0x1c, 0xff},
	panel:    color.RGBA{0x22, 0x26, 0x33, 0xff},
	text:     color.RGBA{0xec, 0xf0, 0xf1, 0xff},
	muted:    color.RGBA{0x8a, 0x94, 0xa6, 0xff},
	attacker: color.RGBA{0x3b, 0x82, 0xf6, 0xff},
	defender: color.RGBA{0xf9, 0x73, 0x16, 0xff},
	gold:     color.RGBA{0xfb, 0xbf, 0x24, 0xff},
	loss:     color.RGBA{0xef, 0x44, 0x44, 0xff},
	mana:     color.RGBA{0x81, 0x8c, 0xf8, 0xff},
	track:    color.RGBA{0x33, 0x38, 0x48, 0xff},
}

var lightPalette = palette{
	name:     "light",
	bg:       color.RGBA{0xf1, 0xf3, 0xf7, 0xff},
	panel:    color.RGBA{0xff, 0xff, 0xff, 0xff},
	text:     color.RGBA{0x1f, 0x29, 0x37, 0xff},
	muted:    color.RGBA{0x6b, 0x72, 0x80, 0xff},
	attacker: color.RGBA{0x25, 0x63, 0xeb, 0xff},
	defender: color.RGBA{0xea, 0x58, 0x0c, 0xff},
	gold:     color.RGBA{0xd9, 0x77, 0x06, 0xff},
	loss:     color.RGBA{0xdc, 0x26, 0x26, 0xff},
	mana:     color.RGBA{0x63, 0x66, 0xf1, 0xff},
	track:    color.RGBA{0xd1, 0xd5, 0xdb, 0xff},
}

var theme = darkPalette

func themeFor(darkMode bool) palette {
	if darkMode {
		return darkPalette
	}
	return lightPalette
}

// loadTheme applies the named theme. An empty name follows the desktop.
func loadTheme(name string) {
	switch name {
	case "dark":
		theme = darkPalette
	case "light":
		theme = lightPalette
	default:
		darkMode, err := dark.IsDarkMode()
		if err != nil {
			logDebug("dark mode detection: %v", err)
			darkMode = true
		}
		theme = themeFor(darkMode)
	}
}

// nextTheme cycles follow-desktop, dark and light.
func nextTheme(name string) string {
	switch name {
	case "":
		return "dark"
	case "dark":
		return "light"
	}
	return ""
}
