// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// CameraSystem follows the player's ship and maps world units to pixels.
// Screen Y grows downward while world Y grows upward.
type CameraSystem struct {
	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	zoom          float32
	minZoom       float32
	maxZoom       float32
	pixelsPerUnit float64
	viewport      engo.Point

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos physics.Vector2D
}

// NewCameraSystem creates a camera for a viewport of width x height pixels
func NewCameraSystem(pixelsPerUnit float64, width, height float32) *CameraSystem {
	return &CameraSystem{
		zoom:          1.0,
		minZoom:       0.25,
		maxZoom:       4.0,
		pixelsPerUnit: pixelsPerUnit,
		viewport:      engo.Point{X: width, Y: height},
		followSpeed:   4.0,
		smoothing:     true,
	}
}

// Priority runs the camera after the simulation has moved the ship
func (cs *CameraSystem) Priority() int { return cameraPriority }

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update applies zoom input and moves the camera toward its target
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if engo.Input.Button(buttonZoomIn).Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button(buttonZoomOut).Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button(buttonResetZoom).JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition smoothly moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	t := physics.Clamp01(float64(cs.followSpeed) * float64(dt))
	cs.currentPos.X = physics.Lerp(cs.currentPos.X, cs.target.X, t)
	cs.currentPos.Y = physics.Lerp(cs.currentPos.Y, cs.target.Y, t)
}

// SetTarget sets the position the camera follows. The first target is
// taken immediately.
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	if !cs.targetSet || !cs.smoothing {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// SetFollowSpeed sets how quickly the camera catches up, per second
func (cs *CameraSystem) SetFollowSpeed(speed float32) {
	cs.followSpeed = speed
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// SetViewport resizes the area the camera maps onto
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.viewport = engo.Point{X: width, Y: height}
}

// GetCurrentPosition returns the world point at the center of the screen
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}

// Scale returns the number of pixels per world unit at the current zoom
func (cs *CameraSystem) Scale() float64 {
	return cs.pixelsPerUnit * float64(cs.zoom)
}

// WorldToScreen converts world coordinates to pixel coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	scale := cs.Scale()
	return physics.Vector2D{
		X: (worldPos.X-cs.currentPos.X)*scale + float64(cs.viewport.X)/2,
		Y: float64(cs.viewport.Y)/2 - (worldPos.Y-cs.currentPos.Y)*scale,
	}
}

// ScreenToWorld converts pixel coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	scale := cs.Scale()
	return physics.Vector2D{
		X: (screenPos.X-float64(cs.viewport.X)/2)/scale + cs.currentPos.X,
		Y: (float64(cs.viewport.Y)/2-screenPos.Y)/scale + cs.currentPos.Y,
	}
}

// ScreenRotation converts a heading (0 up, counter-clockwise) into the
// clockwise degrees engo rotates sprites by
func ScreenRotation(heading float64) float32 {
	return float32(physics.WrapDegrees(-heading))
}
