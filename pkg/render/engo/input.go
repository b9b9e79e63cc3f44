// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbiter/pkg/engine"
)

// Button names registered with engo.Input.
const (
	ButtonRotateLeft  = "rotateLeft"
	ButtonRotateRight = "rotateRight"
	ButtonThrust      = "thrust"
	ButtonGear        = "gear"
	ButtonQuit        = "quit"
)

// binding maps a named button to the intent it drives.
type binding struct {
	button string
	intent engine.Intent
	keys   []engo.Key
}

var bindings = []binding{
	{ButtonRotateLeft, engine.RotateLeft, []engo.Key{engo.KeyArrowLeft, engo.KeyA}},
	{ButtonRotateRight, engine.RotateRight, []engo.Key{engo.KeyArrowRight, engo.KeyD}},
	{ButtonThrust, engine.Thrust, []engo.Key{engo.KeyArrowUp, engo.KeyW}},
	{ButtonGear, engine.CycleGear, []engo.Key{engo.KeyG}},
}

// SetupInputBindings registers the flight keys with engo.
func SetupInputBindings() {
	for _, b := range bindings {
		engo.Input.RegisterButton(b.button, b.keys...)
	}
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}

// buttonState reports edge transitions of a named button.
type buttonState interface {
	JustPressed(name string) bool
	JustReleased(name string) bool
}

// engoButtons reads engo.Input.
type engoButtons struct{}

func (engoButtons) JustPressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

func (engoButtons) JustReleased(name string) bool {
	return engo.Input.Button(name).JustReleased()
}

// controller is the part of the game the input layer drives.
type controller interface {
	Press(engine.Intent)
	Release(engine.Intent)
}

// pollInput forwards button edges to the game and reports whether quit
// was pressed.
func pollInput(buttons buttonState, game controller) bool {
	for _, b := range bindings {
		if buttons.JustPressed(b.button) {
			game.Press(b.intent)
		}
		if buttons.JustReleased(b.button) {
			game.Release(b.intent)
		}
	}
	return buttons.JustPressed(ButtonQuit)
}
