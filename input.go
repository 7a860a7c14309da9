package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orbitStep = 0.03
	zoomStep  = 0.1
)

// Input holds this frame's viewer controls.
type Input struct {
	// Yaw and Pitch are orbit (or look) steps in radians.
	Yaw   float64
	Pitch float64
	// Zoom scales the camera distance; 1 means no change.
	Zoom float64

	CommitPressed bool
	ToggleSession bool
	CopyPose      bool
	FitPressed    bool
	ResetPressed  bool
	QuitPressed   bool
	FocusPressed  bool
	PresetPressed string
	DebugToggled  bool
}

func NewInput() *Input {
	return &Input{Zoom: 1}
}

// Update polls the keyboard and mouse wheel.
func (i *Input) Update() {
	*i = Input{Zoom: 1}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		i.Yaw -= orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		i.Yaw += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		i.Pitch += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		i.Pitch -= orbitStep
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		i.Zoom = 1 - wy*zoomStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		i.Zoom *= 1 - zoomStep/4
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		i.Zoom *= 1 + zoomStep/4
	}

	i.CommitPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	i.ToggleSession = inpututil.IsKeyJustPressed(ebiten.KeyX)
	i.CopyPose = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.FitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF)
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.FocusPressed = inpututil.IsKeyJustPressed(ebiten.KeyG)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.DebugToggled = inpututil.IsKeyJustPressed(ebiten.KeyF3)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		i.PresetPressed = "top"
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		i.PresetPressed = "front"
	}
}
