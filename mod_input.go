package jyu

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt

	keyCount
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle

	mouseButtonCount
)

type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorHidden
	CursorDisabled
)

// InputSource is the part of a GLFW window the input module reads.
// *glfw.Window implements it.
type InputSource interface {
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
	GetCursorPos() (x, y float64)
	SetInputMode(mode glfw.InputMode, value int)
}

// Input is the keyboard and mouse state sampled once per frame, right after
// events are polled.
type Input struct {
	source InputSource

	pressed      [keyCount]bool
	justPressed  [keyCount]bool
	justReleased [keyCount]bool

	buttons             [mouseButtonCount]bool
	buttonsJustPressed  [mouseButtonCount]bool
	buttonsJustReleased [mouseButtonCount]bool

	mouseX, mouseY           float64
	mouseDeltaX, mouseDeltaY float64
	cursorMode               CursorMode
}

func NewInput(source InputSource) *Input {
	return &Input{source: source}
}

func (in *Input) IsKeyDown(key Key) bool {
	return key >= 0 && key < keyCount && in.pressed[key]
}

func (in *Input) JustPressed(key Key) bool {
	return key >= 0 && key < keyCount && in.justPressed[key]
}

func (in *Input) JustReleased(key Key) bool {
	return key >= 0 && key < keyCount && in.justReleased[key]
}

func (in *Input) IsMouseButtonDown(button MouseButton) bool {
	return button >= 0 && button < mouseButtonCount && in.buttons[button]
}

func (in *Input) MouseButtonJustPressed(button MouseButton) bool {
	return button >= 0 && button < mouseButtonCount && in.buttonsJustPressed[button]
}

func (in *Input) MouseButtonJustReleased(button MouseButton) bool {
	return button >= 0 && button < mouseButtonCount && in.buttonsJustReleased[button]
}

// MousePosition is the cursor position in window coordinates.
func (in *Input) MousePosition() mgl32.Vec2 {
	return mgl32.Vec2{float32(in.mouseX), float32(in.mouseY)}
}

// MouseDelta is the cursor movement since the last frame. It is only
// tracked while the cursor is disabled.
func (in *Input) MouseDelta() mgl32.Vec2 {
	return mgl32.Vec2{float32(in.mouseDeltaX), float32(in.mouseDeltaY)}
}

func (in *Input) CursorMode() CursorMode {
	return in.cursorMode
}

func (in *Input) SetCursorMode(mode CursorMode) {
	in.cursorMode = mode
	in.source.SetInputMode(glfw.CursorMode, cursorModeToGlfw[mode])
}

// Update samples the source. It is called by the input system each frame.
func (in *Input) Update() {
	for key, glfwKey := range keyToGlfw {
		updateButton(in.source.GetKey(glfwKey), &in.pressed[key], &in.justPressed[key], &in.justReleased[key])
	}
	for btn, glfwBtn := range mouseButtonToGlfw {
		updateButton(in.source.GetMouseButton(glfwBtn), &in.buttons[btn], &in.buttonsJustPressed[btn], &in.buttonsJustReleased[btn])
	}

	mx, my := in.source.GetCursorPos()
	if in.cursorMode == CursorDisabled {
		in.mouseDeltaX = mx - in.mouseX
		in.mouseDeltaY = my - in.mouseY
	} else {
		in.mouseDeltaX = 0
		in.mouseDeltaY = 0
	}
	in.mouseX = mx
	in.mouseY = my
}

func updateButton(action glfw.Action, pressed, justPressed, justReleased *bool) {
	*justPressed = false
	*justReleased = false

	switch action {
	case glfw.Press, glfw.Repeat:
		if !*pressed {
			*justPressed = true
		}
		*pressed = true
	case glfw.Release:
		if *pressed {
			*justReleased = true
		}
		*pressed = false
	}
}

// InputModule provides the Input resource. Source defaults to the App's
// window, so PlatformWindowModule must be installed first.
type InputModule struct {
	Source InputSource
}

func (mod InputModule) Install(app *App, cmd *Commands) error {
	source := mod.Source
	if source == nil {
		ws, ok := Resource[WindowState](app)
		if !ok {
			return errors.New("input module needs a window or an explicit source")
		}
		source = ws.Handle()
	}

	cmd.AddResources(NewInput(source))
	app.UseSystem(System(inputSystem).InStage(Prelude))
	return nil
}

func inputSystem(input *Input) {
	input.Update()
}

var cursorModeToGlfw = map[CursorMode]int{
	CursorNormal:   glfw.CursorNormal,
	CursorHidden:   glfw.CursorHidden,
	CursorDisabled: glfw.CursorDisabled,
}

var mouseButtonToGlfw = map[MouseButton]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[Key]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyTab:       glfw.KeyTab,
	KeyBackspace: glfw.KeyBackspace,
	KeyInsert:    glfw.KeyInsert,
	KeyDelete:    glfw.KeyDelete,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyF1:        glfw.KeyF1,
	KeyF2:        glfw.KeyF2,
	KeyF3:        glfw.KeyF3,
	KeyF4:        glfw.KeyF4,
	KeyF5:        glfw.KeyF5,
	KeyF6:        glfw.KeyF6,
	KeyF7:        glfw.KeyF7,
	KeyF8:        glfw.KeyF8,
	KeyF9:        glfw.KeyF9,
	KeyF10:       glfw.KeyF10,
	KeyF11:       glfw.KeyF11,
	KeyF12:       glfw.KeyF12,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyLeftAlt:   glfw.KeyLeftAlt,
}
