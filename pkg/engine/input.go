// pkg/engine/input.go
package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-orbiter/pkg/entity"
	"github.com/opd-ai/go-orbiter/pkg/event"
)

// Intent is a player command decoupled from any key binding.
type Intent int

const (
	RotateLeft Intent = iota
	RotateRight
	Thrust
	CycleGear
)

func (i Intent) String() string {
	switch i {
	case RotateLeft:
		return "rotate-left"
	case RotateRight:
		return "rotate-right"
	case Thrust:
		return "thrust"
	case CycleGear:
		return "cycle-gear"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// flag maps held intents to the ship flag they drive.
func (i Intent) flag() (entity.ShipFlags, bool) {
	switch i {
	case RotateLeft:
		return entity.RotatingLeft, true
	case RotateRight:
		return entity.RotatingRight, true
	case Thrust:
		return entity.ThrustOn, true
	default:
		return 0, false
	}
}

// Press starts an intent. Rotation and thrust stay on until released;
// CycleGear acts once per press.
func (g *Game) Press(i Intent) {
	if f, ok := i.flag(); ok {
		g.Ship.Flags |= f
		return
	}
	if i == CycleGear {
		g.Ship.CycleGear()
		g.logger.Debug(context.Background(), "gear cycled", "gear", g.Ship.Gear.String(), "tick", g.CurrentTick)
		g.EventBus.Publish(event.NewGearEvent(event.GearCycled, g, g.CurrentTick,
			g.Ship.Gear.String(), g.Ship.Flags.Has(entity.Landed)))
	}
}

// Release ends an intent. Releasing one rotate direction leaves the other
// untouched.
func (g *Game) Release(i Intent) {
	if f, ok := i.flag(); ok {
		g.Ship.Flags &^= f
	}
}
