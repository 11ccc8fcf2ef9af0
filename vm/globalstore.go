package vm

import "github.com/riftvm/hcbvm/variant"

// GlobalStore is the process-wide indexed variable store, split into two
// dense partitions: non-volatile (persisted across save/load in the
// original engine) and volatile (reset on scene change). Both are sized
// from the image's system descriptor and initialized to Nil.
type GlobalStore struct {
	nonVolatile []variant.Variant
	volatile    []variant.Variant
}

// NewGlobalStore allocates a store sized for nvol non-volatile and vol
// volatile slots, all initialized to Nil.
func NewGlobalStore(nvol, vol int) *GlobalStore {
	g := &GlobalStore{}
	g.InitWith(nvol, vol)
	return g
}

// InitWith resets both partitions to fresh Nil-filled slices of the given
// sizes.
func (g *GlobalStore) InitWith(nvol, vol int) {
	g.nonVolatile = make([]variant.Variant, nvol)
	g.volatile = make([]variant.Variant, vol)
	for i := range g.nonVolatile {
		g.nonVolatile[i] = variant.Nil()
	}
	for i := range g.volatile {
		g.volatile[i] = variant.Nil()
	}
}

// Get reads global slot k. Keys below len(nonVolatile) address the
// non-volatile partition; the remainder addresses the volatile partition.
// Out-of-range keys return Nil rather than erroring (scripts routinely
// probe slots beyond what a given image declares).
func (g *GlobalStore) Get(k uint16) variant.Variant {
	idx := int(k)
	if idx < len(g.nonVolatile) {
		return g.nonVolatile[idx]
	}
	idx -= len(g.nonVolatile)
	if idx < len(g.volatile) {
		return g.volatile[idx]
	}
	return variant.Nil()
}

// Set writes global slot k; out-of-range keys are silently ignored.
func (g *GlobalStore) Set(k uint16, v variant.Variant) {
	idx := int(k)
	if idx < len(g.nonVolatile) {
		g.nonVolatile[idx] = v
		return
	}
	idx -= len(g.nonVolatile)
	if idx < len(g.volatile) {
		g.volatile[idx] = v
	}
}

// Len returns the total addressable slot count (non-volatile + volatile),
// for diagnostics that need to iterate every global (debugconsole).
func (g *GlobalStore) Len() int { return len(g.nonVolatile) + len(g.volatile) }

// NonVolatileLen returns the size of the non-volatile partition.
func (g *GlobalStore) NonVolatileLen() int { return len(g.nonVolatile) }

// GetMut exposes a pointer into the backing partition for in-place table
// mutation, mirroring spec.md §4.C's `get_mut`.
func (g *GlobalStore) GetMut(k uint16) *variant.Variant {
	idx := int(k)
	if idx < len(g.nonVolatile) {
		return &g.nonVolatile[idx]
	}
	idx -= len(g.nonVolatile)
	if idx < len(g.volatile) {
		return &g.volatile[idx]
	}
	return nil
}
