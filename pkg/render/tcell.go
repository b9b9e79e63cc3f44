package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
)

// TcellPresenter copies terminal frames to a tcell screen. Status, when
// set, is written over the top row.
type TcellPresenter struct {
	Screen tcell.Screen
	Status string
}

// Present implements Presenter.
func (p *TcellPresenter) Present(frame *TerminalBackend) error {
	w, h := frame.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := frame.Cell(x, y)
			style := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
			p.Screen.SetContent(x, y, c.Rune, nil, style)
		}
	}

	status := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range p.Status {
		if x >= w {
			break
		}
		p.Screen.SetContent(x, 0, r, nil, status)
		x++
	}

	p.Screen.Show()
	return nil
}

func tcellColor(c gfx.Color) tcell.Color {
	channel := func(v float32) int32 {
		return int32(min(max(v, 0), 1) * 255)
	}
	return tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2]))
}
