package model

import (
	"github.com/gdamore/tcell/v2"
)

// cellColumns is how many terminal columns one cell occupies.
const cellColumns = 2

// TerminalRenderer draws a world onto a tcell screen, one status line on top
// and two columns per cell below it. Worlds larger than the screen are shown
// through a viewport whose top-left cell is originX, originY.
type TerminalRenderer struct {
	screen           tcell.Screen
	pixels           []uint32
	originX, originY int
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Pan moves the viewport by dx columns and dy rows of cells. The origin is
// clamped against the world and screen size on the next Display.
func (r *TerminalRenderer) Pan(dx, dy int) {
	r.originX = max(0, r.originX+dx)
	r.originY = max(0, r.originY+dy)
}

// ResetView moves the viewport back to the top-left corner
func (r *TerminalRenderer) ResetView() {
	r.originX, r.originY = 0, 0
}

// Origin returns the world cell shown in the top-left corner of the grid area
func (r *TerminalRenderer) Origin() (x, y int) {
	return r.originX, r.originY
}

// VisibleCells returns how many cells fit on the screen below the status line
func (r *TerminalRenderer) VisibleCells() (cols, rows int) {
	screenWidth, screenHeight := r.screen.Size()
	return max(0, screenWidth/cellColumns), max(0, screenHeight-1)
}

// Display renders w and the status line through the viewport
func (r *TerminalRenderer) Display(w *World, highlight bool, status string) error {
	r.screen.Clear()
	r.drawStatus(status)

	width, height := w.Size()
	if need := width * height; cap(r.pixels) < need {
		r.pixels = make([]uint32, need)
	} else {
		r.pixels = r.pixels[:need]
	}
	if err := w.RenderToBuffer(r.pixels, highlight); err != nil {
		r.screen.Show()
		return err
	}

	visibleCols, visibleRows := r.VisibleCells()
	cols, rows := min(width, visibleCols), min(height, visibleRows)
	r.originX = min(r.originX, width-cols)
	r.originY = min(r.originY, height-rows)

	for y := range rows {
		for x := range cols {
			px := r.pixels[(r.originY+y)*width+r.originX+x]
			red, green, blue, _ := Color(px).Channels()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(red), int32(green), int32(blue)))
			for c := range cellColumns {
				r.screen.SetContent(x*cellColumns+c, y+1, ' ', nil, style)
			}
		}
	}

	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawStatus(status string) {
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, c := range status {
		r.screen.SetContent(x, 0, c, nil, style)
		x++
	}
}
