package model

import "testing"

// newEmptyWorld returns a created, all-dead world.
func newEmptyWorld(t *testing.T, width, height int, opts ...Option) *World {
	t.Helper()
	w := NewWorld(append([]Option{WithDensity(0), WithSeed(1)}, opts...)...)
	if err := w.Create(width, height); err != nil {
		t.Fatalf("Create(%d, %d): %v", width, height, err)
	}
	return w
}

// cells returns the committed generation as a [row][col] matrix.
func cells(w *World) [][]bool {
	width, height := w.Size()
	out := make([][]bool, height)
	for y := range height {
		out[y] = make([]bool, width)
		for x := range width {
			out[y][x] = w.IsAlive(y*width + x)
		}
	}
	return out
}

// referenceNext is a direct, unoptimised statement of the rule on a bounded grid.
func referenceNext(in [][]bool) [][]bool {
	height := len(in)
	width := len(in[0])
	out := make([][]bool, height)
	for y := range height {
		out[y] = make([]bool, width)
		for x := range width {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					ny, nx := y+dy, x+dx
					if ny < 0 || ny >= height || nx < 0 || nx >= width {
						continue
					}
					if in[ny][nx] {
						n++
					}
				}
			}
			switch {
			case n < 2 || n > 3:
				out[y][x] = false
			case n == 3:
				out[y][x] = true
			default:
				out[y][x] = in[y][x]
			}
		}
	}
	return out
}
