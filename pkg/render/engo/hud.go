// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/event"
)

// setTitle is replaced in tests.
var setTitle = engo.SetTitle

// FlightMessage is one entry of the HUD's flight log.
type FlightMessage struct {
	Tick uint64
	Text string
}

// HUD shows the ship readout and the latest flight event in the window
// title. It refreshes every interval frames.
type HUD struct {
	base     string
	interval int
	frames   int

	mu          sync.Mutex
	messages    []FlightMessage
	maxMessages int
	subs        []*event.Subscription
}

// NewHUD creates a HUD titled base that listens on bus.
func NewHUD(base string, interval int, bus *event.Bus) *HUD {
	hud := &HUD{
		base:        base,
		interval:    max(interval, 1),
		maxMessages: 10,
	}
	if bus != nil {
		for _, t := range []event.Type{
			event.ShipLanded, event.ShipLaunched,
			event.GearDeployed, event.GearRetracted,
		} {
			hud.subs = append(hud.subs, bus.Subscribe(t, hud.onEvent))
		}
	}
	return hud
}

func (hud *HUD) onEvent(e event.Event) {
	var msg FlightMessage
	switch ev := e.(type) {
	case *event.ShipEvent:
		msg = FlightMessage{Tick: ev.Tick, Text: fmt.Sprintf("%s at %.3f", describe(ev.GetType()), ev.Speed)}
	case *event.GearEvent:
		msg = FlightMessage{Tick: ev.Tick, Text: describe(ev.GetType())}
	default:
		return
	}
	hud.AddMessage(msg)
}

func describe(t event.Type) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// AddMessage appends to the flight log, dropping the oldest entries.
func (hud *HUD) AddMessage(msg FlightMessage) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	hud.messages = append(hud.messages, msg)
	if n := len(hud.messages) - hud.maxMessages; n > 0 {
		hud.messages = hud.messages[n:]
	}
}

// Messages returns a copy of the flight log.
func (hud *HUD) Messages() []FlightMessage {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	return append([]FlightMessage(nil), hud.messages...)
}

// Title formats the window title for state.
func (hud *HUD) Title(state engine.ShipState) string {
	title := hud.base + " | " + state.Status()
	if msgs := hud.Messages(); len(msgs) > 0 {
		title += " | " + msgs[len(msgs)-1].Text
	}
	return title
}

// Update refreshes the title on every interval-th frame.
func (hud *HUD) Update(state engine.ShipState) {
	if hud.frames%hud.interval == 0 {
		setTitle(hud.Title(state))
	}
	hud.frames++
}

// Close unsubscribes from the event bus.
func (hud *HUD) Close() {
	for _, s := range hud.subs {
		s.Cancel()
	}
	hud.subs = nil
}
