package geoloc

import (
	"fmt"
	"sort"

	"github.com/loadzero/geoloc/internal/errs"
)

// notFound is the sentinel row index returned by a failed block query.
const notFound = ^uint32(0)

// Block is a contiguous IPv4 range tied to a row index into a sibling
// table (locations or ASNs). A sorted, non-overlapping vector of Block
// must satisfy: StartIP[i] > EndIP[i-1] (strictly increasing starts) and
// EndIP[i] >= StartIP[i].
type Block struct {
	StartIP uint32
	EndIP   uint32
	Loc     uint32
}

// validateSortedBlocks enforces the strict, non-overlapping invariant
// spec.md §3/§4.5 require before a block vector is written to disk: each
// block's start must be strictly greater than the previous block's end
// ("start > prev_end"), so adjacent ranges (start == prev_end + 1) are
// accepted and any start at or below the previous end is rejected.
func validateSortedBlocks(blocks []Block) error {
	var last uint32
	for i, b := range blocks {
		if i > 0 && b.StartIP <= last {
			return fmt.Errorf("%w: block %d start_ip %d <= previous end_ip %d", errs.ErrUnsortedBlocks, i, b.StartIP, last)
		}
		if b.EndIP < b.StartIP {
			return fmt.Errorf("%w: block %d end_ip %d < start_ip %d", errs.ErrOverlapping, i, b.EndIP, b.StartIP)
		}
		last = b.EndIP
	}
	return nil
}

func (w *writer) saveBlocks(blocks []Block) error {
	if err := validateSortedBlocks(blocks); err != nil {
		return err
	}

	startIP := make([]uint32, len(blocks))
	endIP := make([]uint32, len(blocks))
	loc := make([]uint32, len(blocks))

	for i, b := range blocks {
		startIP[i] = b.StartIP
		endIP[i] = b.EndIP
		loc[i] = b.Loc
	}

	if err := w.saveUint32Vector(startIP); err != nil {
		return err
	}
	if err := w.saveUint32Vector(endIP); err != nil {
		return err
	}
	return w.saveUint32Vector(loc)
}

// blockTable is a read-only, column-oriented view over a mapped block
// vector, queried by predecessor binary search.
type blockTable struct {
	startIP uint32View
	endIP   uint32View
	loc     uint32View
}

func (r *reader) loadBlockTable() (blockTable, error) {
	startIP, err := r.loadUint32View()
	if err != nil {
		return blockTable{}, err
	}
	endIP, err := r.loadUint32View()
	if err != nil {
		return blockTable{}, err
	}
	loc, err := r.loadUint32View()
	if err != nil {
		return blockTable{}, err
	}
	return blockTable{startIP: startIP, endIP: endIP, loc: loc}, nil
}

// query performs the two-step predecessor search of spec.md §4.6:
// binary search start_ip for the first index whose start exceeds quad,
// then test whether the preceding block actually contains quad.
func (t blockTable) query(quad uint32) uint32 {
	n := t.startIP.Len()

	idx := sort.Search(n, func(i int) bool {
		return t.startIP.At(i) > quad
	})

	if idx == 0 {
		return notFound
	}

	ri := idx - 1
	if quad >= t.startIP.At(ri) && quad <= t.endIP.At(ri) {
		return uint32(ri)
	}

	return notFound
}
