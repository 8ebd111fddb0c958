package model

import (
	"fmt"
	"math/bits"
	"runtime"

	"github.com/pkg/errors"
)

const bitsPerWord = 64

// AllocFunc allocates the backing words for a BitGrid.
type AllocFunc func(words int) ([]uint64, error)

// BitGrid is a packed boolean array, one bit per cell, row-major
type BitGrid struct {
	words []uint64
	size  int
}

func wordsFor(cells int) int {
	return (cells + bitsPerWord - 1) / bitsPerWord
}

// defaultAlloc turns allocation panics from make into ErrOutOfMemory.
func defaultAlloc(words int) (w []uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			w, err = nil, errors.Wrapf(ErrOutOfMemory, "[alloc] %d words: %v", words, r)
		}
	}()
	return make([]uint64, words), nil
}

// NewBitGrid allocates a cleared grid holding size cells
func NewBitGrid(size int, alloc AllocFunc) (*BitGrid, error) {
	if alloc == nil {
		alloc = defaultAlloc
	}
	n := wordsFor(size)
	words, err := alloc(n)
	if err != nil {
		return nil, err
	}
	if len(words) < n {
		return nil, errors.Wrapf(ErrOutOfMemory, "[NewBitGrid] allocator returned %d of %d words", len(words), n)
	}
	return &BitGrid{words: words[:n], size: size}, nil
}

// Len returns the number of cells
func (g *BitGrid) Len() int {
	return g.size
}

// IsAlive returns the state of a cell; out of range reads are dead
func (g *BitGrid) IsAlive(index int) bool {
	if index < 0 || index >= g.size {
		return false
	}
	return g.words[index/bitsPerWord]&(1<<(uint(index)%bitsPerWord)) != 0
}

// SetAlive sets a cell; out of range writes are ignored
func (g *BitGrid) SetAlive(index int, alive bool) {
	if index < 0 || index >= g.size {
		return
	}
	mask := uint64(1) << (uint(index) % bitsPerWord)
	if alive {
		g.words[index/bitsPerWord] |= mask
	} else {
		g.words[index/bitsPerWord] &^= mask
	}
}

// Clear marks every cell dead
func (g *BitGrid) Clear() {
	clear(g.words)
}

// Count returns the number of living cells
func (g *BitGrid) Count() (count int) {
	for _, w := range g.words {
		count += bits.OnesCount64(w)
	}
	return
}

// reset resizes the grid in place, reusing the backing words when they fit.
func (g *BitGrid) reset(size int) bool {
	n := wordsFor(size)
	if cap(g.words) < n {
		return false
	}
	g.words = g.words[:n]
	g.size = size
	g.Clear()
	return true
}

func (g *BitGrid) String() string {
	return fmt.Sprintf("BitGrid{size: %d, alive: %d}", g.size, g.Count())
}
