package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// step computes successor and transitions for the cells in [start, end).
// Only current is read, so any number of steps over disjoint ranges can run
// at once as long as no two ranges share a word.
func step(current, successor, transitions *BitGrid, width, height, start, end int) (births, deaths int) {
	for i := start; i < end; i++ {
		var (
			row   = i / width
			col   = i % width
			alive = current.IsAlive(i)
			next  = rules.ApplyConwayRules(rules.CountNeighbors(current, width, height, row, col), alive)
		)

		successor.SetAlive(i, next)
		transitions.SetAlive(i, next != alive)

		switch {
		case next && !alive:
			births++
		case alive && !next:
			deaths++
		}
	}
	return
}

// advance computes one full generation into successor and transitions.
// Work is split into word-aligned index ranges, one per worker, and joined
// before returning; current is never written.
func advance(current, successor, transitions *BitGrid, width, height, workers int) (births, deaths int, err error) {
	var (
		cells = current.Len()
		words = wordsFor(cells)
	)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, words)
	if workers <= 1 {
		births, deaths = step(current, successor, transitions, width, height, 0, cells)
		return births, deaths, nil
	}

	var (
		eg             errgroup.Group
		wordsPerWorker = (words + workers - 1) / workers // Ceiling division
		birthCounts    = make([]int, workers)
		deathCounts    = make([]int, workers)
	)

	for i := range workers {
		var (
			start = i * wordsPerWorker * bitsPerWord
			end   = min(start+wordsPerWorker*bitsPerWord, cells)
		)
		if start >= cells {
			break
		}

		eg.Go(func() error {
			birthCounts[i], deathCounts[i] = step(current, successor, transitions, width, height, start, end)
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return 0, 0, err
	}

	for i := range workers {
		births += birthCounts[i]
		deaths += deathCounts[i]
	}
	return births, deaths, nil
}
