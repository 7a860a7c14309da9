package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/placement"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/tracking/sim"
	"github.com/milk9111/anchorview/viewer"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	messageTicks = 180
)

var background = color.NRGBA{R: 0x18, G: 0x1c, B: 0x22, A: 0xff}

type Game struct {
	frames int
	debug  bool

	input    *Input
	rt       *viewer.Runtime
	platform *sim.Platform
	floorY   float64
	ui       *ebitenui.UI
	watcher  *prefabs.Watcher
	logger   *slog.Logger

	clipboardOK bool
	message     string
	messageLeft int
	quit        bool
}

type gameOptions struct {
	Platform *sim.Platform
	FloorY   float64
	Config   viewer.Config
	Watcher  *prefabs.Watcher
	Debug    bool
	Logger   *slog.Logger
}

func NewGame(opts gameOptions) (*Game, error) {
	rt, err := viewer.New(opts.Config)
	if err != nil {
		return nil, err
	}
	g := &Game{
		debug:    opts.Debug,
		input:    NewInput(),
		rt:       rt,
		platform: opts.Platform,
		floorY:   opts.FloorY,
		watcher:  opts.Watcher,
		logger:   opts.Logger,
	}
	if err := clipboard.Init(); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	g.ui = NewToolbarUI([]toolbarAction{
		{Label: "Top", Do: func() { g.rt.Preset("top") }},
		{Label: "Front", Do: func() { g.rt.Preset("front") }},
		{Label: "Fit", Do: func() { g.rt.Fit() }},
		{Label: "Reset", Do: func() { g.rt.Reset() }},
		{Label: "AR", Do: g.toggleSession},
		{Label: "Place", Do: g.rt.Commit},
		{Label: "Focus", Do: g.focusInspected},
	})
	rt.Fit()
	return g, nil
}

func (g *Game) toggleSession() {
	if g.rt.Machine().State() == placement.StateIdle {
		g.rt.StartSession()
		return
	}
	g.rt.EndSession()
}

func (g *Game) sessionActive() bool {
	return g.rt.Machine().State() != placement.StateIdle
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.reload()
	g.ui.Update()
	g.input.Update()
	g.handleInput()

	g.rt.Tick(g.platform.Frame(g.rt.ViewerPose()), 1/float64(ebiten.TPS()))

	if g.messageLeft > 0 {
		g.messageLeft--
	}
	return nil
}

func (g *Game) handleInput() {
	in := g.input
	if in.QuitPressed {
		g.quit = true
	}
	if in.DebugToggled {
		g.debug = !g.debug
	}
	if in.ToggleSession {
		g.toggleSession()
	}
	if in.CommitPressed {
		g.rt.Commit()
	}

	if g.sessionActive() {
		// During a session the arrows turn the simulated device.
		g.rt.Look(-in.Yaw, in.Pitch)
	} else {
		g.rt.Orbit(in.Yaw, in.Pitch)
		g.rt.Zoom(in.Zoom)
	}

	if in.FitPressed {
		g.rt.Fit()
	}
	if in.ResetPressed {
		g.rt.Reset()
	}
	if in.FocusPressed {
		g.focusInspected()
	}
	if in.PresetPressed != "" {
		g.rt.Preset(in.PresetPressed)
	}
	if in.CopyPose {
		g.copyPose()
	}
}

func (g *Game) focusInspected() {
	if !g.rt.FocusInspected() {
		g.flash("nothing inspected to focus")
	}
}

func (g *Game) copyPose() {
	if !g.clipboardOK {
		g.flash("clipboard unavailable")
		return
	}
	bounds, _ := g.rt.Bounds()
	snippet, err := viewer.PresetSnippet("custom", g.rt.Camera().Pose(), bounds)
	if err != nil {
		g.logger.Error("copy camera pose", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, snippet)
	g.flash("camera preset copied to clipboard")
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageLeft = messageTicks
}

// reload applies spec files edited on disk since the last frame.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applySpec(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefabs watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) applySpec(name string) {
	switch name {
	case prefabs.CameraFile:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			g.logger.Warn("reload camera spec", "err", err)
			return
		}
		g.rt.ApplyCamera(spec)
	case prefabs.PlacementFile:
		spec, err := prefabs.LoadPlacementSpec()
		if err != nil {
			g.logger.Warn("reload placement spec", "err", err)
			return
		}
		g.rt.ApplyPlacement(spec)
	default:
		return
	}
	g.logger.Info("reloaded spec", "file", name)
	g.flash("reloaded " + name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	viewerPose := g.rt.ViewerPose()
	p := newProjector(viewerPose, g.rt.Camera().FOV(), w, h)

	if g.sessionActive() {
		p.drawFloor(screen, g.floorY, common.Position(viewerPose))
	}

	highlight := ""
	if ins := g.rt.Inspected(); ins.Found {
		highlight = ins.Hit.Part.Name
	}
	for _, n := range g.rt.Graph().Nodes() {
		p.drawNode(screen, n, highlight)
	}
	if r := g.rt.Reticle(); r.Visible {
		p.drawReticle(screen, r.Pose)
	}

	ebitenutil.DebugPrint(screen, g.statusText())
	g.ui.Draw(screen)
}

func (g *Game) statusText() string {
	var b strings.Builder
	b.WriteString(g.rt.Status().String())
	if ins := g.rt.Inspected(); ins.Found {
		fmt.Fprintf(&b, "\n%s: %s", ins.Hit.Part.Name, ins.Hit.Part.Info)
	}
	if g.messageLeft > 0 {
		b.WriteString("\n" + g.message)
	}
	if g.debug {
		s := g.rt.Session()
		fmt.Fprintf(&b, "\nFrames: %d    FPS: %.2f    tracking: %s", g.frames, ebiten.ActualFPS(), s.State)
		if s.Err != nil {
			fmt.Fprintf(&b, " (%v)", s.Err)
		}
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
