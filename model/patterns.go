package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a small arrangement of cells; 'O' marks a living cell
type Pattern struct {
	Name string
	Rows []string
}

var patterns = map[string]Pattern{
	"glider": {Name: "glider", Rows: []string{
		".O.",
		"..O",
		"OOO",
	}},
	"blinker": {Name: "blinker", Rows: []string{
		"OOO",
	}},
	"block": {Name: "block", Rows: []string{
		"OO",
		"OO",
	}},
	"beehive": {Name: "beehive", Rows: []string{
		".OO.",
		"O..O",
		".OO.",
	}},
	"lwss": {Name: "lwss", Rows: []string{
		".O..O",
		"O....",
		"O...O",
		"OOOO.",
	}},
}

// LookupPattern returns the named pattern
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists the known patterns in name order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the bounding box of the pattern
func (p Pattern) Size() (width, height int) {
	for _, row := range p.Rows {
		width = max(width, len(row))
	}
	return width, len(p.Rows)
}

// Place stamps p onto the committed generation with its top-left corner at
// (col, row). Both living and dead pattern cells are written; cells falling
// outside the world are dropped rather than wrapped.
func (w *World) Place(p Pattern, col, row int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		w.logger.Warn("place before create", "pattern", p.Name)
		return errors.Wrapf(ErrNotCreated, "[Place] %s", p.Name)
	}

	for dy, line := range p.Rows {
		y := row + dy
		if y < 0 || y >= w.height {
			continue
		}
		for dx, c := range line {
			x := col + dx
			if x < 0 || x >= w.width {
				continue
			}
			w.current.SetAlive(y*w.width+x, c == 'O')
		}
	}
	return nil
}

// PlaceCentered stamps p in the middle of the world.
func (w *World) PlaceCentered(p Pattern) error {
	width, height := w.Size()
	pw, ph := p.Size()
	return w.Place(p, (width-pw)/2, (height-ph)/2)
}
