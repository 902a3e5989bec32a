package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sqweek/dialog"

	"arenareplay/battlelog"
	"arenareplay/card"
	"arenareplay/playback"
	"arenareplay/portraits"
)

const screenWidth, screenHeight = 960, 600

const settingsFlushInterval = 5 * time.Second

// battleView is one loaded battle and the controller playing it.
type battleView struct {
	path    string
	log     *battlelog.Log
	outcome playback.Outcome
	ctrl    *playback.Controller
	stage   *stage
	title   string
}

func (v *battleView) snapshot() playback.Snapshot {
	if s, ok := v.stage.current(); ok {
		return s
	}
	return v.ctrl.Snapshot()
}

type Game struct {
	ctx      context.Context
	store    *portraits.Store
	workers  int
	view     *battleView
	buttons  []button
	progress image.Rectangle
	hover    action

	// results of file dialogs, delivered back to Update
	opened   chan string
	exported chan string

	lastFlush time.Time
}

var once sync.Once

func newGame(ctx context.Context, store *portraits.Store, workers int) *Game {
	g := &Game{
		ctx:      ctx,
		store:    store,
		workers:  workers,
		opened:   make(chan string, 1),
		exported: make(chan string, 1),
	}
	g.buttons, g.progress = layoutControls(screenWidth, screenHeight)
	return g
}

// open loads the battle at path and starts playing it.
func (g *Game) open(path string, outcome playback.Outcome) error {
	l, err := battlelog.LoadFile(path)
	if err != nil {
		return err
	}
	if g.view != nil {
		g.view.ctrl.Close()
	}
	stopAllSounds()

	st := newStage(nil)
	ctrl := playback.New(l, playback.Options{
		Speed:   gs.Speed,
		Sink:    st,
		Outcome: outcome,
		Context: g.ctx,
		Logf:    logDebug,
	})
	g.view = &battleView{
		path:    path,
		log:     l,
		outcome: outcome,
		ctrl:    ctrl,
		stage:   st,
		title:   fmt.Sprintf("%s vs %s", l.Challenger.Username, l.Defender.Username),
	}
	if g.store != nil {
		// portraits of the previous battle are not kept around
		g.store.ClearCache()
		refs := portraitRefs(l)
		go func() {
			n := g.store.Preload(refs, g.workers)
			logDebug("preloaded %d/%d portraits", n, len(refs))
		}()
	}

	gs.LastBattle = path
	gs.LastWatched = time.Now()
	settingsDirty = true
	logDebug("opened %s: %d rounds, %s", path, len(l.Rounds), durationLabel(ctrl.Total()))
	ctrl.Play()
	return nil
}

// portraitRefs lists every image the battle may draw, without repeats.
func portraitRefs(l *battlelog.Log) []string {
	seen := make(map[string]bool)
	var refs []string
	add := func(ref string) {
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	for _, side := range []battlelog.SideKey{battlelog.Attacker, battlelog.Defender} {
		for _, p := range battlelog.BuildRoster(l.Side(side), l.Rounds, side) {
			add(p.ImagePath)
		}
		for i := range l.Rounds {
			add(l.Rounds[i].ImagePath(side))
		}
	}
	return refs
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	once.Do(initGame)

	g.collectDialogs()
	g.handleInput()

	if g.view != nil {
		for _, name := range g.view.stage.drainSounds() {
			playSound(name)
		}
		if gs.Discord {
			updatePresence(g.view.title, g.view.snapshot())
		}
	}
	pruneNotices(time.Now())

	if settingsDirty && time.Since(g.lastFlush) >= settingsFlushInterval {
		saveSettings()
		g.lastFlush = time.Now()
	}
	return nil
}

func (g *Game) collectDialogs() {
	select {
	case path := <-g.opened:
		if err := g.open(path, playback.Outcome{}); err != nil {
			logError("open battle: %v", err)
		}
	case path := <-g.exported:
		if g.view == nil {
			break
		}
		if err := card.Save(path, g.view.log, g.view.outcome, g.cardPortraits()); err != nil {
			logError("%v", err)
			break
		}
		addNotice("Saved " + filepath.Base(path))
	default:
	}
}

func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)
	g.hover = hitTest(g.buttons, cursor)

	var acts []action
	for k, a := range keyActions {
		if inpututil.IsKeyJustPressed(k) {
			acts = append(acts, a)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 && wheelLimiter.Allow() {
		acts = append(acts, wheelAction(dy))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if a := hitTest(g.buttons, cursor); a != actNone {
			acts = append(acts, a)
		} else if g.view != nil && cursor.In(g.progress.Inset(-6)) {
			g.view.ctrl.SeekTo(progressIndex(g.progress, mx, len(g.view.log.Rounds)))
		}
	}
	for k, v := range speedKeys {
		if inpututil.IsKeyJustPressed(k) && g.view != nil {
			g.view.ctrl.SetSpeed(v)
			gs.Speed = v
			settingsDirty = true
		}
	}
	for _, a := range acts {
		g.do(a)
	}
}

func (g *Game) do(a action) {
	switch a {
	case actOpen:
		go g.openDialog()
		return
	case actStats:
		gs.ShowStats = !gs.ShowStats
		settingsDirty = true
		return
	case actTheme:
		gs.Theme = nextTheme(gs.Theme)
		loadTheme(gs.Theme)
		clearTiles()
		settingsDirty = true
		return
	case actMute:
		gs.Mute = !gs.Mute
		if gs.Mute {
			stopAllSounds()
		}
		settingsDirty = true
		return
	}
	if g.view == nil {
		return
	}
	switch a {
	case actCopy:
		if err := card.CopySummary(g.view.log, g.view.outcome); err != nil {
			logError("%v", err)
			return
		}
		addNotice("Summary copied")
	case actExport:
		go g.exportDialog()
	default:
		if applyTransport(g.view.ctrl, a) && a == actSpeed {
			gs.Speed = g.view.ctrl.Speed()
			settingsDirty = true
		}
	}
}

func (g *Game) cardPortraits() card.Portraits {
	if g.store == nil {
		return nil
	}
	return g.store
}

func (g *Game) openDialog() {
	d := dialog.File().Filter("Battle logs", "json").Title("Open Battle")
	if gs.LastBattle != "" {
		d = d.SetStartDir(filepath.Dir(gs.LastBattle))
	}
	path, err := d.Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			logError("open dialog: %v", err)
		}
		return
	}
	g.opened <- path
}

func (g *Game) exportDialog() {
	path, err := dialog.File().Filter("PNG image", "png").SetStartFile("battle.png").Title("Save Result Card").Save()
	if err != nil {
		if err != dialog.ErrCancelled {
			logError("save dialog: %v", err)
		}
		return
	}
	g.exported <- path
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func runGame(ctx context.Context, g *Game) {
	ebiten.SetWindowSize(int(screenWidth*gs.Scale), int(screenHeight*gs.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Arena Replay")
	if gs.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	if err := ebiten.RunGame(g); err != nil {
		logError("ebiten: %v", err)
	}
	if g.view != nil {
		g.view.ctrl.Close()
	}
	stopAllSounds()
	saveSettings()
}

func initGame() {
	ebiten.SetVsyncEnabled(gs.Vsync)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	loadTheme(gs.Theme)
}

type notice struct {
	text string
	at   time.Time
}

const noticeLife = 4 * time.Second

var (
	noticeMu sync.Mutex
	notices  []notice
)

func addNotice(msg string) {
	noticeMu.Lock()
	notices = append(notices, notice{text: msg, at: time.Now()})
	if len(notices) > 4 {
		notices = notices[len(notices)-4:]
	}
	noticeMu.Unlock()
}

func pruneNotices(now time.Time) {
	noticeMu.Lock()
	defer noticeMu.Unlock()
	keep := notices[:0]
	for _, n := range notices {
		if now.Sub(n.at) < noticeLife {
			keep = append(keep, n)
		}
	}
	notices = keep
}

func currentNotices() []notice {
	noticeMu.Lock()
	defer noticeMu.Unlock()
	return append([]notice(nil), notices...)
}
