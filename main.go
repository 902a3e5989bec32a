package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"arenareplay/battlelog"
	"arenareplay/card"
	"arenareplay/playback"
	"arenareplay/portraits"
)

var (
	baseDir string
	dataDir string
)

func main() {
	battlePath := flag.String("battle", "", "battle log (JSON) to replay")
	result := flag.String("result", "", "the viewer's own result: WIN or LOSS")
	gold := flag.Int("gold", 0, "gold awarded to the viewer")
	speed := flag.Float64("speed", 0, "playback speed (0.5, 1, 2 or 3)")
	debugFlag := flag.Bool("debug", false, "verbose/debug logging")
	dataFlag := flag.String("data", "", "data directory holding portraits and sounds")
	discordFlag := flag.Bool("discord", false, "publish Discord rich presence")
	cardOut := flag.String("card", "", "write the result card PNG for -battle and exit")
	summary := flag.Bool("summary", false, "print the text summary for -battle and exit")
	flag.Parse()

	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}

	cfg, err := loadEnvConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	loadSettings()

	if *dataFlag == "" {
		*dataFlag = cfg.DataDir
	}
	dataDir = *dataFlag
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(baseDir, dataDir)
	}
	if *battlePath == "" {
		*battlePath = cfg.Battle
	}
	if *speed == 0 {
		*speed = cfg.Speed
	}
	if *speed > 0 {
		gs.Speed = playback.NearestSpeed(*speed)
	}
	if *discordFlag {
		gs.Discord = true
	}
	outcome := playback.Outcome{Result: strings.ToUpper(*result), Gold: *gold}

	store := portraits.New(filepath.Join(dataDir, "heroes"))
	store.Size = image.Pt(portraitSize, portraitSize)
	store.Smooth = gs.SmoothPortraits

	if *cardOut != "" || *summary {
		if err := export(*battlePath, outcome, *cardOut, *summary, store); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	setupLogging(*debugFlag || cfg.Debug)
	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	initFont()
	initSoundContext()
	if gs.Discord {
		initDiscordRPC(ctx, cfg.DiscordAppID)
	}

	g := newGame(ctx, store, cfg.Workers)
	if *battlePath != "" {
		if err := g.open(*battlePath, outcome); err != nil {
			logError("open battle: %v", err)
		}
	}
	runGame(ctx, g)
}

// export writes the result card and/or the summary without opening a window.
func export(path string, o playback.Outcome, cardPath string, summary bool, store *portraits.Store) error {
	if path == "" {
		return fmt.Errorf("-battle is required")
	}
	l, err := battlelog.LoadFile(path)
	if err != nil {
		return err
	}
	if summary {
		fmt.Print(card.Summary(l, o))
	}
	if cardPath != "" {
		if err := card.Save(cardPath, l, o, store); err != nil {
			return err
		}
	}
	return nil
}
