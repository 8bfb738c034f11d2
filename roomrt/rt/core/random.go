package core

import (
	"math/rand/v2"
)

const DefaultPoolSize = 1000

// Pool index offsets. Each instance reads pool.At(instance+offset) per axis so
// position and spin rate of one instance come from unrelated pool slots.
const (
	OffsetPositionX = 637
	OffsetPositionZ = 137
	OffsetSpinRate  = 563
	OffsetPositionY = 911
)

// RandomPool is a fixed table of floats in [0,1). The same seed always yields
// the same table.
type RandomPool struct {
	values []float32
}

func NewRandomPool(seed uint64, size int) *RandomPool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	values := make([]float32, size)
	for i := range values {
		values[i] = rng.Float32()
	}
	return &RandomPool{values: values}
}

func (p *RandomPool) Len() int {
	return len(p.values)
}

// At wraps i into the pool, so any non-negative index is valid.
func (p *RandomPool) At(i int) float32 {
	n := len(p.values)
	return p.values[((i%n)+n)%n]
}
