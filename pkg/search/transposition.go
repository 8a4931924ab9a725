package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/seekerror/logw"

	"github.com/riftchess/rift/pkg/board"
)

// Bound represents the bound of a -- possibly inexact -- search score stored in the
// TranspositionTable.
type Bound uint8

const (
	NoBound    Bound = 0
	LowerBound Bound = 1
	UpperBound Bound = 2
	Exact      Bound = LowerBound | UpperBound
)

func (b Bound) String() string {
	switch b {
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	case Exact:
		return "Exact"
	default:
		return "None"
	}
}

const evalAbsent int16 = -32768

// Entry is a single transposition-table slot, fixed at 16 bytes: key(4) + move(2) + score(2)
// + eval(2) + depth(1) + bound(1) + generation(1) + valid(1), with 2 bytes of padding. Bound
// alone cannot signal occupancy since step C of the search stores eval-cache-only entries
// with Bound=NoBound, so occupancy is tracked explicitly.
type Entry struct {
	key   uint32
	Move  board.Move
	Score int16
	Eval  int16
	Depth uint8
	Bound Bound
	Gen   uint8
	valid bool
}

func (e *Entry) isEmpty() bool {
	return !e.valid
}

// value ranks an entry for replacement purposes: higher survives. Each generation of age costs
// 4 plies of depth, so a stale entry ranks below a fresh one unless it is at least 4 plies
// deeper per generation of age.
func (e *Entry) value(gen uint8) uint16 {
	if e.isEmpty() {
		return 0
	}
	age := int(gen - e.Gen) // wraps; fine, generation cycles every 256 searches
	v := int(e.Depth) + 1 - age*4
	if v < 1 {
		return 1 // still ranks above an empty slot
	}
	return uint16(v)
}

const bucketWidth = 3

type bucket [bucketWidth]Entry

// TranspositionTable is a lock-free, fixed-size hash table of search results, shared by every
// worker in the pool. Writes are whole-entry stores via atomic.CompareAndSwapPointer over a
// boxed bucket pointer, grounded directly on the teacher's unsafe.Pointer + sync/atomic
// table implementation; races between concurrent writers are tolerated because entries
// self-validate by key.
type TranspositionTable struct {
	buckets []unsafe.Pointer // *bucket
	mask    uint64
	gen     uint8
}

// NewTranspositionTable allocates a power-of-two bucket count such that the total size does
// not exceed sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	bytes := uint64(sizeMB) << 20
	perBucket := uint64(bucketWidth) * 16
	n := uint64(1) << (63 - bits.LeadingZeros64(bytes/perBucket+1))
	if n == 0 {
		n = 1
	}

	return &TranspositionTable{
		buckets: make([]unsafe.Pointer, n),
		mask:    n - 1,
	}
}

// Probe returns (true, entry) on a key match, or (false, victim) where victim is the slot a
// caller should overwrite. The returned Entry is a copy: changing it does not change the
// table, and it takes effect only when passed to Store.
func (t *TranspositionTable) Probe(zob board.ZobristHash) (bool, Entry) {
	key := uint32(uint64(zob) >> 32)
	idx := uint64(zob) & t.mask

	b := (*bucket)(atomic.LoadPointer(&t.buckets[idx]))
	if b == nil {
		return false, Entry{key: key}
	}
	for i := range b {
		if b[i].key == key && !b[i].isEmpty() {
			return true, b[i]
		}
	}

	victim := b[0]
	for i := 1; i < bucketWidth; i++ {
		if b[i].value(t.gen) < victim.value(t.gen) {
			victim = b[i]
		}
	}
	victim.key = key
	return false, victim
}

// Store writes e into the bucket for zob, replacing the lowest-value slot (preferring an
// empty slot, then the entry with lowest depth-minus-age; ties prefer Exact bounds).
func (t *TranspositionTable) Store(zob board.ZobristHash, e Entry) {
	e.key = uint32(uint64(zob) >> 32)
	e.Gen = t.gen
	e.valid = true
	idx := uint64(zob) & t.mask

	for {
		old := (*bucket)(atomic.LoadPointer(&t.buckets[idx]))

		fresh := &bucket{}
		if old != nil {
			*fresh = *old
		}

		slot, victim := 0, fresh[0].value(t.gen)
		replaced := false
		for i := range fresh {
			if fresh[i].key == e.key && !fresh[i].isEmpty() {
				slot, replaced = i, true
				break
			}
		}
		if !replaced {
			for i := 1; i < bucketWidth; i++ {
				if fresh[i].value(t.gen) < victim || (fresh[i].value(t.gen) == victim && fresh[i].Bound != Exact) {
					slot, victim = i, fresh[i].value(t.gen)
				}
			}
		}
		fresh[slot] = e

		if atomic.CompareAndSwapPointer(&t.buckets[idx], unsafe.Pointer(old), unsafe.Pointer(fresh)) {
			return
		}
	}
}

// Prefetch is a non-blocking hint; Go has no portable explicit prefetch instruction, so this
// is a no-op, kept as an explicit method so call sites read the same as the original design.
func (t *TranspositionTable) Prefetch(zob board.ZobristHash) {}

// Clear resets every entry.
func (t *TranspositionTable) Clear() {
	for i := range t.buckets {
		atomic.StorePointer(&t.buckets[i], nil)
	}
	t.gen = 0
}

// NewSearch bumps the generation counter, ageing out entries from prior searches without
// clearing the table.
func (t *TranspositionTable) NewSearch() {
	t.gen++
}

// Size returns the table size in bytes.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.buckets)) * bucketWidth * 16
}

// Used returns the fraction of buckets holding at least one live entry, sampled cheaply.
func (t *TranspositionTable) Used() float64 {
	const sample = 10000
	n := len(t.buckets)
	if n == 0 {
		return 0
	}
	step := n/sample + 1
	checked, used := 0, 0
	for i := 0; i < n; i += step {
		checked++
		b := (*bucket)(atomic.LoadPointer(&t.buckets[i]))
		if b != nil {
			for j := range b {
				if !b[j].isEmpty() {
					used++
					break
				}
			}
		}
	}
	if checked == 0 {
		return 0
	}
	return float64(used) / float64(checked)
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[%vMB @ %v%%]", t.Size()>>20, int(100*t.Used()))
}

// NewTranspositionTableLogged allocates a table and logs its size, matching the teacher's
// allocation-time Infof call in pkg/search/transposition.go.
func NewTranspositionTableLogged(ctx context.Context, sizeMB int) *TranspositionTable {
	tt := NewTranspositionTable(sizeMB)
	logw.Infof(ctx, "Allocating %vMB TT with %v buckets", sizeMB, len(tt.buckets))
	return tt
}
