// pkg/render/engo/hud_test.go
package engo

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/event"
)

func stubTitle(t *testing.T) *[]string {
	t.Helper()
	var titles []string
	old := setTitle
	setTitle = func(s string) { titles = append(titles, s) }
	t.Cleanup(func() { setTitle = old })
	return &titles
}

func TestHUD_RecordsFlightEvents(t *testing.T) {
	bus := event.NewEventBus()
	hud := NewHUD("Orbiter", 1, bus)

	bus.Publish(event.NewShipEvent(event.ShipLanded, nil, 42, 0, 1000, 0.125, 0))
	bus.Publish(event.NewGearEvent(event.GearRetracted, nil, 50, "up", false))
	bus.Publish(event.NewGearEvent(event.GearCycled, nil, 51, "opening(0)", false))

	msgs := hud.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %v, want 2", msgs)
	}
	if msgs[0].Tick != 42 || msgs[0].Text != "ship landed at 0.125" {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[1].Text != "gear retracted" {
		t.Errorf("second message = %+v", msgs[1])
	}

	hud.Close()
	bus.Publish(event.NewGearEvent(event.GearDeployed, nil, 60, "down", false))
	if len(hud.Messages()) != 2 {
		t.Error("HUD still subscribed after Close")
	}
}

func TestHUD_DropsOldMessages(t *testing.T) {
	hud := NewHUD("Orbiter", 1, nil)
	for i := 0; i < 25; i++ {
		hud.AddMessage(FlightMessage{Tick: uint64(i)})
	}
	msgs := hud.Messages()
	if len(msgs) != 10 || msgs[0].Tick != 15 {
		t.Errorf("messages = %v", msgs)
	}
}

func TestHUD_UpdateRefreshesTitle(t *testing.T) {
	titles := stubTitle(t)
	hud := NewHUD("Orbiter", 3, nil)
	state := engine.ShipState{Gear: "down", Landed: true}

	for i := 0; i < 7; i++ {
		hud.Update(state)
	}
	if len(*titles) != 3 {
		t.Fatalf("title set %d times, want 3", len(*titles))
	}
	if !strings.HasPrefix((*titles)[0], "Orbiter | tick 0") {
		t.Errorf("title = %q", (*titles)[0])
	}

	hud.AddMessage(FlightMessage{Text: "ship launched at 0.002"})
	if got := hud.Title(state); !strings.HasSuffix(got, "| ship launched at 0.002") {
		t.Errorf("Title() = %q", got)
	}
}
