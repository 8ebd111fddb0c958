package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultDensity is the probability that a seeded cell starts alive.
const DefaultDensity = 0.2

// World owns the simulation state of one Create/Destroy cycle. All methods
// are safe for concurrent use; every operation holds a single lock for its
// full duration, so readers always see a whole generation.
type World struct {
	mu sync.Mutex

	width     int
	height    int
	cellCount int

	current     *BitGrid
	successor   *BitGrid
	transitions *BitGrid

	generation uint64
	births     int
	deaths     int

	rng      *rand.Rand
	density  float64
	workers  int
	maxCells int
	alloc    AllocFunc
	pool     *BitGridPool
	logger   *slog.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for lifecycle and misuse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSeed seeds the random source used by Create.
func WithSeed(seed int64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the random source used by Create.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// WithDensity sets the probability that a seeded cell starts alive.
func WithDensity(density float64) Option {
	return func(w *World) { w.density = density }
}

// WithWorkers sets how many goroutines compute a generation. Zero means one
// per CPU, one means sequential.
func WithWorkers(workers int) Option {
	return func(w *World) { w.workers = workers }
}

// WithMaxCells caps width*height; larger requests fail with ErrOutOfMemory.
func WithMaxCells(maxCells int) Option {
	return func(w *World) { w.maxCells = maxCells }
}

// WithAllocator replaces the grid allocator.
func WithAllocator(alloc AllocFunc) Option {
	return func(w *World) { w.alloc = alloc }
}

// WithPool recycles grid storage through pool.
func WithPool(pool *BitGridPool) Option {
	return func(w *World) { w.pool = pool }
}

// NewWorld returns an uninitialized world; call Create before iterating.
func NewWorld(opts ...Option) *World {
	w := &World{
		density: DefaultDensity,
		alloc:   defaultAlloc,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return w
}

// Create allocates a width x height world and seeds it randomly. Calling it
// on an existing world replaces that world only once the new grids exist;
// on error the previous state is left untouched.
func (w *World) Create(width, height int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if width <= 0 || height <= 0 {
		w.logger.Warn("create rejected", "width", width, "height", height)
		return errors.Wrapf(ErrInvalidSize, "[Create] %dx%d", width, height)
	}
	if height > math.MaxInt/width || (w.maxCells > 0 && width*height > w.maxCells) {
		w.logger.Warn("create exceeds cell limit", "width", width, "height", height, "max_cells", w.maxCells)
		return errors.Wrapf(ErrOutOfMemory, "[Create] %dx%d exceeds cell limit", width, height)
	}

	cells := width * height
	grids, err := w.allocGrids(cells)
	if err != nil {
		w.logger.Error("create failed", "width", width, "height", height, "error", err)
		return errors.Wrapf(err, "[Create] %dx%d", width, height)
	}

	w.release()
	w.width, w.height, w.cellCount = width, height, cells
	w.current, w.successor, w.transitions = grids[0], grids[1], grids[2]
	w.generation, w.births, w.deaths = 0, 0, 0

	w.transitions.Clear()
	for i := range cells {
		w.current.SetAlive(i, w.rng.Float64() < w.density)
	}

	w.logger.Info("world created",
		"width", width, "height", height, "population", w.current.Count())
	return nil
}

// allocGrids allocates current, successor and transitions together, giving
// back whatever was allocated if any one of them fails.
func (w *World) allocGrids(cells int) ([3]*BitGrid, error) {
	var grids [3]*BitGrid
	for i := range grids {
		g, err := w.pool.Get(cells, w.alloc)
		if err != nil {
			for _, done := range grids[:i] {
				w.pool.Put(done)
			}
			return [3]*BitGrid{}, outOfMemory(err)
		}
		grids[i] = g
	}
	return grids, nil
}

func (w *World) release() {
	for _, g := range []*BitGrid{w.current, w.successor, w.transitions} {
		w.pool.Put(g)
	}
	w.current, w.successor, w.transitions = nil, nil, nil
	w.width, w.height, w.cellCount = 0, 0, 0
}

// Destroy releases the world. Destroying an uninitialized world is a no-op.
func (w *World) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		w.logger.Debug("destroy on empty world")
		return
	}
	w.release()
	w.generation, w.births, w.deaths = 0, 0, 0
	w.logger.Info("world destroyed")
}

// Iterate advances the world by one generation.
func (w *World) Iterate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		w.logger.Warn("iterate before create")
		return errors.Wrap(ErrNotCreated, "[Iterate]")
	}

	start := time.Now()
	births, deaths, err := advance(w.current, w.successor, w.transitions, w.width, w.height, w.workers)
	if err != nil {
		// current is untouched, so the world stays on its committed generation
		w.logger.Error("iterate failed", "generation", w.generation, "error", err)
		return errors.Wrap(err, "[Iterate]")
	}

	w.current, w.successor = w.successor, w.current
	w.generation++
	w.births, w.deaths = births, deaths

	w.logger.Debug("generation computed",
		"generation", w.generation, "births", births, "deaths", deaths, "took", time.Since(start))
	return nil
}

// Created reports whether the world currently exists.
func (w *World) Created() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current != nil
}

// Size returns the world dimensions, or zeros when no world exists.
func (w *World) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Generation returns how many generations have been computed since Create.
func (w *World) Generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation
}

// IsAlive reports whether the cell at index is alive in the committed generation.
func (w *World) IsAlive(index int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return false
	}
	return w.current.IsAlive(index)
}

// Changed reports whether the cell at index was born or died in the last generation.
func (w *World) Changed(index int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.transitions == nil {
		return false
	}
	return w.transitions.IsAlive(index)
}

// SetAlive edits a cell of the committed generation. Out of range indices are ignored.
func (w *World) SetAlive(index int, alive bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		w.logger.Warn("set cell before create", "index", index)
		return errors.Wrap(ErrNotCreated, "[SetAlive]")
	}
	w.current.SetAlive(index, alive)
	return nil
}

// Snapshot summarises a world at one generation
type Snapshot struct {
	Created    bool
	Generation uint64
	Width      int
	Height     int
	Population int
	Births     int
	Deaths     int
}

// Stats returns a consistent summary of the committed generation.
func (w *World) Stats() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return Snapshot{}
	}
	return Snapshot{
		Created:    true,
		Generation: w.generation,
		Width:      w.width,
		Height:     w.height,
		Population: w.current.Count(),
		Births:     w.births,
		Deaths:     w.deaths,
	}
}

// Fingerprint returns an MD5 hash of the committed generation, or "" when no
// world exists.
func (w *World) Fingerprint() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return ""
	}

	h := md5.New()
	var buf [8]byte
	for _, word := range w.current.words {
		binary.LittleEndian.PutUint64(buf[:], word)
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
