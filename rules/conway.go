package rules

// CellReader exposes the alive/dead state of a row-major grid by linear index.
type CellReader interface {
	IsAlive(index int) bool
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
Fewer than 2 or more than 3 neighbors is always dead.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// CountNeighbors counts the living neighbors of the cell at (row, col) on a
// bounded width x height grid. Edge and corner cells have fewer than eight
// neighbors; nothing is read from the opposite edge.
func CountNeighbors(g CellReader, width, height, row, col int) (count int) {
	var (
		i     = row*width + col
		left  = col > 0
		right = col < width-1
		up    = row > 0
		down  = row < height-1
	)

	if left && g.IsAlive(i-1) {
		count++
	}
	if right && g.IsAlive(i+1) {
		count++
	}
	if up {
		if g.IsAlive(i - width) {
			count++
		}
		if left && g.IsAlive(i-width-1) {
			count++
		}
		if right && g.IsAlive(i-width+1) {
			count++
		}
	}
	if down {
		if g.IsAlive(i + width) {
			count++
		}
		if left && g.IsAlive(i+width-1) {
			count++
		}
		if right && g.IsAlive(i+width+1) {
			count++
		}
	}

	return
}
