package geoloc

import (
	"golang.org/x/text/unicode/norm"
)

// sentinelIndex is returned by StringTable.IndexOf for a string that was
// never inserted.
const sentinelIndex = ^uint32(0)

// StringTable interns strings during a build, assigning each distinct
// value a stable, insertion-ordered index. It is serialized as two PODV
// vectors: indices (byte offset of each string) and bytes (the strings,
// NUL-terminated and concatenated), mirroring original_source's
// string_table.hpp.
//
// Country/region/city values are NFC-normalized before interning so that
// combining-mark variants of the same name collapse to one table entry
// (SPEC_FULL.md §4.2); ASN text is interned byte-for-byte.
type StringTable struct {
	indexOf map[string]uint32
	indices []uint32
	bytes   []byte
}

func newStringTable() *StringTable {
	return &StringTable{indexOf: make(map[string]uint32)}
}

// Insert is idempotent: re-inserting a known string is a no-op and
// leaves Size() unchanged.
func (st *StringTable) Insert(s string) {
	if _, ok := st.indexOf[s]; ok {
		return
	}

	idx := uint32(len(st.indices))
	st.indexOf[s] = idx

	st.indices = append(st.indices, uint32(len(st.bytes)))
	st.bytes = append(st.bytes, s...)
	st.bytes = append(st.bytes, 0)
}

// normalizeString applies the NFC normalization used for interned
// country/region/city values, exposed so callers can reproduce the same
// key InsertNormalized interned without re-inserting.
func normalizeString(s string) string {
	return norm.NFC.String(s)
}

// InsertNormalized NFC-normalizes s before interning.
func (st *StringTable) InsertNormalized(s string) string {
	n := normalizeString(s)
	st.Insert(n)
	return n
}

// IndexOf returns the interned index of s, or sentinelIndex if s was
// never inserted.
func (st *StringTable) IndexOf(s string) uint32 {
	if idx, ok := st.indexOf[s]; ok {
		return idx
	}
	return sentinelIndex
}

// Size returns the number of distinct interned strings.
func (st *StringTable) Size() int { return len(st.indices) }

func (w *writer) saveStringTable(st *StringTable) error {
	if err := w.saveUint32Vector(st.indices); err != nil {
		return err
	}
	return w.saveByteVector(st.bytes)
}

// mappedStringVector is a read-only view over a serialized string table:
// an index vector paired with the packed, NUL-terminated string bytes.
type mappedStringVector struct {
	indices uint32View
	bytes   byteView
}

func (r *reader) loadMappedStringVector() (mappedStringVector, error) {
	indices, err := r.loadUint32View()
	if err != nil {
		return mappedStringVector{}, err
	}
	bytesView, err := r.loadByteView()
	if err != nil {
		return mappedStringVector{}, err
	}
	return mappedStringVector{indices: indices, bytes: bytesView}, nil
}

func (m mappedStringVector) Len() int { return m.indices.Len() }

// At returns the i-th interned string by scanning forward from its byte
// offset to the terminating NUL.
func (m mappedStringVector) At(i int) string {
	start := m.indices.At(i)
	data := m.bytes.data
	end := start
	for end < uint32(len(data)) && data[end] != 0 {
		end++
	}
	return string(data[start:end])
}
