package model

import "sync"

// BitGridPool recycles grid storage across Destroy/Create cycles
type BitGridPool struct {
	pool sync.Pool
}

func NewBitGridPool() *BitGridPool {
	return &BitGridPool{}
}

// Get returns a cleared grid of size cells, reusing pooled storage when it is
// large enough and allocating through alloc otherwise
func (p *BitGridPool) Get(size int, alloc AllocFunc) (*BitGrid, error) {
	if p != nil {
		if g, ok := p.pool.Get().(*BitGrid); ok {
			if g.reset(size) {
				return g, nil
			}
		}
	}
	return NewBitGrid(size, alloc)
}

// Put returns a grid to the pool
func (p *BitGridPool) Put(g *BitGrid) {
	if p == nil || g == nil {
		return
	}
	p.pool.Put(g)
}
