package model

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

func newSimulationScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestTerminalRendererDisplay(t *testing.T) {
	screen := newSimulationScreen(t, 20, 6)
	w := blinkerWorld(t)

	r := NewTerminalRenderer(screen)
	if err := r.Display(w, true, "gen"); err != nil {
		t.Fatalf("Display: %v", err)
	}

	if c, _, _, _ := screen.GetContent(0, 0); c != 'g' {
		t.Errorf("status line starts with %q, want 'g'", c)
	}

	tests := []struct {
		name string
		x, y int
		want tcell.Color
	}{
		// cell (2,1) born, drawn at columns 4-5 of screen row 2
		{"born", 4, 2, tcell.NewRGBColor(0, 0x88, 0)},
		{"born second column", 5, 2, tcell.NewRGBColor(0, 0x88, 0)},
		{"alive", 4, 3, tcell.NewRGBColor(0, 0xFF, 0)},
		{"died", 2, 3, tcell.NewRGBColor(0x88, 0x88, 0x88)},
		{"dead", 0, 1, tcell.NewRGBColor(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := background(screen, tt.x, tt.y); got != tt.want {
				t.Errorf("background at (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTerminalRendererClipsAndReportsMissingWorld(t *testing.T) {
	screen := newSimulationScreen(t, 4, 2)
	w := blinkerWorld(t)

	r := NewTerminalRenderer(screen)
	if err := r.Display(w, false, ""); err != nil {
		t.Fatalf("Display on a small screen: %v", err)
	}

	w.Destroy()
	if err := r.Display(w, false, "empty"); !errors.Is(err, ErrNotCreated) {
		t.Fatalf("expected ErrNotCreated, got %v", err)
	}
}

func TestTerminalRendererPansToFarCorner(t *testing.T) {
	screen := newSimulationScreen(t, 80, 24)
	w := newEmptyWorld(t, 200, 100)
	for _, i := range []int{0, 200*100 - 1} {
		if err := w.SetAlive(i, true); err != nil {
			t.Fatalf("SetAlive(%d): %v", i, err)
		}
	}

	r := NewTerminalRenderer(screen)
	if cols, rows := r.VisibleCells(); cols != 40 || rows != 23 {
		t.Fatalf("visible cells = %dx%d, want 40x23", cols, rows)
	}

	alive := tcell.NewRGBColor(0, 0xFF, 0)
	if err := r.Display(w, false, ""); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if got := background(screen, 0, 1); got != alive {
		t.Errorf("top-left cell background = %v, want alive", got)
	}

	// Panning past the edge stops with the last cell in the bottom-right corner.
	r.Pan(1000, 1000)
	if err := r.Display(w, false, ""); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if x, y := r.Origin(); x != 160 || y != 77 {
		t.Errorf("origin = (%d,%d), want (160,77)", x, y)
	}
	for _, col := range []int{78, 79} {
		if got := background(screen, col, 23); got != alive {
			t.Errorf("bottom-right cell background at column %d = %v, want alive", col, got)
		}
	}
	if got := background(screen, 0, 1); got == alive {
		t.Error("top-left cell should have scrolled out of view")
	}

	r.Pan(-40, 0)
	r.Display(w, false, "")
	if x, y := r.Origin(); x != 120 || y != 77 {
		t.Errorf("origin after panning back = (%d,%d), want (120,77)", x, y)
	}

	r.ResetView()
	r.Display(w, false, "")
	if got := background(screen, 0, 1); got != alive {
		t.Errorf("top-left cell background after reset = %v, want alive", got)
	}
}

func TestTerminalRendererKeepsSmallWorldAtOrigin(t *testing.T) {
	screen := newSimulationScreen(t, 20, 6)
	w := blinkerWorld(t)

	r := NewTerminalRenderer(screen)
	r.Pan(5, 5)
	if err := r.Display(w, false, ""); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if x, y := r.Origin(); x != 0 || y != 0 {
		t.Errorf("origin = (%d,%d), want (0,0) for a world that fits", x, y)
	}
}
