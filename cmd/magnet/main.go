// Command magnet is an interactive playground for the alignment engine.
// It shows a small canvas of boxes; move the highlighted box with the
// arrow keys and watch it snap to its neighbors' edges and centers.
//
//	arrows        move the box (hold shift for fine steps)
//	g             toggle dynamic guides
//	c             cycle the magnetic falloff curve
//	s             analyze the spacing of the current scene
//	q, Esc        quit
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"magnet/alignment"
	"magnet/geometry"
	"magnet/spacing"
)

type playground struct {
	screen  tcell.Screen
	engine  *alignment.Engine
	static  []geometry.Element
	moving  geometry.Element
	pos     geometry.Point // proposed (unsnapped) position of the moving box
	curve   alignment.Curve
	guides  bool
	status  string
	result  alignment.Result
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "magnet: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	p := &playground{
		screen: screen,
		static: []geometry.Element{
			{ID: "a", X: 6, Y: 3, Width: 14, Height: 5},
			{ID: "b", X: 26, Y: 3, Width: 14, Height: 5},
			{ID: "c", X: 46, Y: 3, Width: 14, Height: 5},
			{ID: "d", X: 6, Y: 12, Width: 14, Height: 5},
			{ID: "e", X: 26, Y: 12, Width: 14, Height: 5},
		},
		moving: geometry.Element{ID: "drag", Width: 14, Height: 5},
		pos:    geometry.Point{X: 48, Y: 13},
		guides: true,
		status: "arrows move · g guides · c curve · s spacing · q quit",
	}
	p.rebuild()

	for {
		p.check()
		p.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !p.handleKey(ev) {
				return nil
			}
		}
	}
}

// rebuild re-syncs the engine's index with the static scene. The moving
// box stays out of the index so it cannot snap to itself.
func (p *playground) rebuild() {
	cfg := alignment.DefaultConfig()
	cfg.Threshold = 3 // terminal cells are coarse
	cfg.Curve = p.curve
	p.engine = alignment.NewEngineWithConfig(cfg)
	p.engine.UpdateElementIndex(p.static)
}

func (p *playground) handleKey(ev *tcell.EventKey) bool {
	step := 2.0
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = 1
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		p.pos.X -= step
	case tcell.KeyRight:
		p.pos.X += step
	case tcell.KeyUp:
		p.pos.Y -= step
	case tcell.KeyDown:
		p.pos.Y += step
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'g':
			p.guides = !p.guides
		case 'c':
			p.curve = alignment.Curves[(int(p.curve)+1)%len(alignment.Curves)]
			p.rebuild()
			p.status = fmt.Sprintf("falloff curve: %s", p.curve)
		case 's':
			p.status = p.describeSpacing()
		}
	}
	return true
}

func (p *playground) viewport() geometry.Rect {
	w, h := p.screen.Size()
	return geometry.NewRect(0, 0, float64(w), float64(h))
}

func (p *playground) check() {
	var guides []alignment.GuideLine
	if p.guides {
		guides = p.engine.GenerateDynamicGuides(p.moving.ID, p.viewport())
	}
	p.result = p.engine.CheckMagneticAlignment(p.moving, p.pos, guides)
}

func (p *playground) describeSpacing() string {
	boxes := make([]geometry.Box, 0, len(p.static)+1)
	for _, el := range p.static {
		boxes = append(boxes, el.Box())
	}
	moved := p.moving
	moved.X, moved.Y = p.result.Smooth.X, p.result.Smooth.Y
	boxes = append(boxes, moved.Box())

	a := spacing.NewDetector().AnalyzeSpacing(boxes)
	if len(a.Suggestions) == 0 {
		return "no spacing patterns detected"
	}
	return a.Suggestions[0].Label
}

func (p *playground) draw() {
	s := p.screen
	s.Clear()

	boxStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dragStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	guideStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	if p.result.Aligned {
		dragStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}

	w, h := s.Size()
	if p.result.VerticalGuide != nil {
		x := int(p.result.VerticalGuide.Position)
		for y := 0; y < h-1; y++ {
			s.SetContent(x, y, '│', nil, guideStyle)
		}
	}
	if p.result.HorizontalGuide != nil {
		y := int(p.result.HorizontalGuide.Position)
		for x := 0; x < w; x++ {
			s.SetContent(x, y, '─', nil, guideStyle)
		}
	}

	for _, el := range p.static {
		drawBox(s, el.Bounds(), el.ID, boxStyle)
	}
	moved := p.moving
	moved.X, moved.Y = p.result.Smooth.X, p.result.Smooth.Y
	drawBox(s, moved.Bounds(), p.moving.ID, dragStyle)

	line := fmt.Sprintf("%s · %s", p.status, p.engine)
	drawText(s, 0, h-1, line, tcell.StyleDefault.Reverse(true))
	s.Show()
}

func drawBox(s tcell.Screen, r geometry.Rect, label string, style tcell.Style) {
	left, top := int(r.Left), int(r.Top)
	right, bottom := int(r.Right), int(r.Bottom)

	for x := left; x <= right; x++ {
		s.SetContent(x, top, '─', nil, style)
		s.SetContent(x, bottom, '─', nil, style)
	}
	for y := top; y <= bottom; y++ {
		s.SetContent(left, y, '│', nil, style)
		s.SetContent(right, y, '│', nil, style)
	}
	s.SetContent(left, top, '┌', nil, style)
	s.SetContent(right, top, '┐', nil, style)
	s.SetContent(left, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
	drawText(s, left+2, top+1, label, style)
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
