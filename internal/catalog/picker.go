package catalog

import (
	"math/rand/v2"
	"time"

	"github.com/frippertronics/record-roll/internal/model"
)

// Source is where a Picker gets its catalog from. *Catalog and *Store
// both satisfy it.
type Source interface {
	Snapshot() *Catalog
}

// Snapshot returns c itself.
func (c *Catalog) Snapshot() *Catalog {
	return c
}

// Picker chooses records uniformly at random.
//
// Each Pick draws a fresh index over every usable record currently in the
// source, so a reloaded catalog takes effect on the next pick. Picker is
// not safe for concurrent use because rand.Rand is not.
type Picker struct {
	source Source
	rng    *rand.Rand
}

// NewPicker creates a Picker. A nil rng is seeded from the clock.
func NewPicker(source Source, rng *rand.Rand) *Picker {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return &Picker{source: source, rng: rng}
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns one record chosen uniformly over [0, Len()).
func (p *Picker) Pick() (model.Record, error) {
	cat := p.source.Snapshot()
	if cat == nil || cat.Len() == 0 {
		return model.Record{}, ErrEmptyCatalog
	}
	return cat.Records[p.rng.IntN(cat.Len())], nil
}
