// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gunship/pkg/engine"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// System priorities, highest runs first
const (
	inputPriority      = 30
	simulationPriority = 20
	cameraPriority     = 10
	hudPriority        = 0
)

// Button names registered with engo.Input
const (
	buttonForward   = "forward"
	buttonBack      = "back"
	buttonTurnLeft  = "turnLeft"
	buttonTurnRight = "turnRight"
	buttonBoost     = "boost"
	buttonFire      = "fire"
	buttonAim       = "aim"
	buttonZoomIn    = "zoomIn"
	buttonZoomOut   = "zoomOut"
	buttonResetZoom = "resetZoom"
)

// ButtonReader reports whether a named button is held
type ButtonReader func(name string) bool

// InputSystem samples keyboard and mouse once per frame into an
// engine.Input. The left mouse button fires and the right one shows the
// aim line.
type InputSystem struct {
	camera *CameraSystem
	held   map[engo.MouseButton]bool
	state  engine.Input
}

// NewInputSystem creates an input system converting the cursor through camera
func NewInputSystem(camera *CameraSystem) *InputSystem {
	return &InputSystem{
		camera: camera,
		held:   make(map[engo.MouseButton]bool),
	}
}

// Priority samples input before the simulation steps
func (is *InputSystem) Priority() int { return inputPriority }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the current device state
func (is *InputSystem) Update(dt float32) {
	mouse := engo.Input.Mouse
	is.TrackMouse(mouse.Button, mouse.Action)

	cursor := physics.Vector2D{X: float64(mouse.X), Y: float64(mouse.Y)}
	is.state = is.sample(func(name string) bool {
		return engo.Input.Button(name).Down()
	}, cursor)
}

// TrackMouse records a mouse button press or release. engo only reports
// the latest mouse event, so holds are tracked here.
func (is *InputSystem) TrackMouse(button engo.MouseButton, action engo.Action) {
	switch action {
	case engo.Press:
		is.held[button] = true
	case engo.Release:
		is.held[button] = false
	}
}

// sample builds the frame's input from the button state and a cursor in
// screen pixels
func (is *InputSystem) sample(down ButtonReader, cursor physics.Vector2D) engine.Input {
	return engine.Input{
		Forward:   down(buttonForward),
		Back:      down(buttonBack),
		TurnLeft:  down(buttonTurnLeft),
		TurnRight: down(buttonTurnRight),
		Boost:     down(buttonBoost),
		Fire:      down(buttonFire) || is.held[engo.MouseButtonLeft],
		Aim:       down(buttonAim) || is.held[engo.MouseButtonRight],
		Pointer:   is.camera.ScreenToWorld(cursor),
	}
}

// Input returns the input sampled on the last Update
func (is *InputSystem) Input() engine.Input {
	return is.state
}

// SetupInputBindings registers the game's key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonForward, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonBack, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonTurnLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonTurnRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonBoost, engo.KeyLeftShift, engo.KeyRightShift)
	engo.Input.RegisterButton(buttonFire, engo.KeySpace)
	engo.Input.RegisterButton(buttonAim, engo.KeyE)

	engo.Input.RegisterButton(buttonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyR)
}
