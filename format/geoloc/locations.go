package geoloc

import (
	"math"

	"github.com/loadzero/geoloc/internal/errs"
)

// Location is one parsed row of location.csv: a stable numeric ID plus
// the three interned string fields and the two coordinate fields.
type Location struct {
	ID      uint32
	Country string
	Region  string
	City    string
	Lat     string
	Lon     string
}

// PackedLocation is the on-disk row: string fields replaced by their
// StringTable indices, coordinates parsed to float32. It is written as a
// dense vector indexed directly by Location.ID (spec.md §4.5): row i
// holds the location whose ID equals i, with unused rows left zeroed.
type PackedLocation struct {
	ID      uint32
	Country uint32
	Region  uint32
	City    uint32
	Lat     float32
	Lon     float32
}

// packedLocationSize is the fixed, explicit on-disk width of one
// PackedLocation row. It is written out field-by-field rather than via
// unsafe struct reinterpretation — see the package doc and SPEC_FULL.md
// §9 "no undefined-behavior type punning".
const packedLocationSize = 4 + 4 + 4 + 4 + 4 + 4

func encodePackedLocation(dst []byte, p PackedLocation) {
	bo := nativeByteOrder()
	bo.PutUint32(dst[0:4], p.ID)
	bo.PutUint32(dst[4:8], p.Country)
	bo.PutUint32(dst[8:12], p.Region)
	bo.PutUint32(dst[12:16], p.City)
	bo.PutUint32(dst[16:20], math.Float32bits(p.Lat))
	bo.PutUint32(dst[20:24], math.Float32bits(p.Lon))
}

func decodePackedLocation(src []byte) PackedLocation {
	bo := nativeByteOrder()
	return PackedLocation{
		ID:      bo.Uint32(src[0:4]),
		Country: bo.Uint32(src[4:8]),
		Region:  bo.Uint32(src[8:12]),
		City:    bo.Uint32(src[12:16]),
		Lat:     math.Float32frombits(bo.Uint32(src[16:20])),
		Lon:     math.Float32frombits(bo.Uint32(src[20:24])),
	}
}

// parseLocationCoord parses a latitude/longitude field, left as a string
// column (rather than folded into the float32 at parse time) only long
// enough to be packed, matching locations.hpp's deferred float conversion.
func parseLocationCoord(s []byte) float32 {
	var neg bool
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}

	var intPart uint64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		intPart = intPart*10 + uint64(s[i]-'0')
		i++
	}

	var frac float64
	var scale float64 = 1
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			scale *= 10
			frac = frac*10 + float64(s[i]-'0')
			i++
		}
	}

	v := float64(intPart) + frac/scale
	if neg {
		v = -v
	}
	return float32(v)
}

// packedLocationView is a zero-copy view over the dense packed-location
// PODV chunk, paired with the three interned string tables it indexes
// into.
type packedLocationView struct {
	rows    []byte
	country mappedStringVector
	region  mappedStringVector
	city    mappedStringVector
}

func (v packedLocationView) Len() int { return len(v.rows) / packedLocationSize }

func (v packedLocationView) At(i int) PackedLocation {
	return decodePackedLocation(v.rows[i*packedLocationSize:])
}

// Resolve expands row i back into display strings, or ("", ...) for any
// field whose index is the sentinel (no value recorded for that ID).
func (v packedLocationView) Resolve(i int) Location {
	p := v.At(i)
	loc := Location{ID: p.ID}
	if p.Country != sentinelIndex {
		loc.Country = v.country.At(int(p.Country))
	}
	if p.Region != sentinelIndex {
		loc.Region = v.region.At(int(p.Region))
	}
	if p.City != sentinelIndex {
		loc.City = v.city.At(int(p.City))
	}
	return loc
}

// locationTable is the fully loaded locations side of the store: the
// block vector that maps IP ranges to row indices, plus the packed rows
// themselves.
type locationTable struct {
	blocks blockTable
	rows   packedLocationView
}

func (w *writer) saveLocationBlocks(blocks []Block) error {
	return w.saveBlocks(blocks)
}

// saveLocations writes the dense packed-location vector and its three
// backing string tables, in the document order the header comment
// describes: country table (indices, bytes), region table (indices,
// bytes), city table (indices, bytes), then the packed vector itself.
func (w *writer) saveLocations(rows []PackedLocation, country, region, city *StringTable) error {
	if err := w.saveStringTable(country); err != nil {
		return err
	}
	if err := w.saveStringTable(region); err != nil {
		return err
	}
	if err := w.saveStringTable(city); err != nil {
		return err
	}
	return w.savePackedLocations(rows)
}

func (r *reader) loadPackedLocationView() (packedLocationView, error) {
	country, err := r.loadMappedStringVector()
	if err != nil {
		return packedLocationView{}, err
	}
	region, err := r.loadMappedStringVector()
	if err != nil {
		return packedLocationView{}, err
	}
	city, err := r.loadMappedStringVector()
	if err != nil {
		return packedLocationView{}, err
	}

	count, payload, err := r.loadPODV()
	if err != nil {
		return packedLocationView{}, err
	}
	if len(payload) != int(count)*packedLocationSize {
		return packedLocationView{}, errs.ErrTruncatedChunk
	}

	return packedLocationView{rows: payload, country: country, region: region, city: city}, nil
}

func (r *reader) loadLocationTable() (locationTable, error) {
	blocks, err := r.loadBlockTable()
	if err != nil {
		return locationTable{}, err
	}
	rows, err := r.loadPackedLocationView()
	if err != nil {
		return locationTable{}, err
	}
	return locationTable{blocks: blocks, rows: rows}, nil
}

// Query resolves quad (a host-order IPv4 address) to a Location, or
// false if quad falls outside every known block.
func (t locationTable) Query(quad uint32) (Location, bool) {
	idx := t.blocks.query(quad)
	if idx == notFound {
		return Location{}, false
	}

	loc := t.blocks.loc.At(int(idx))
	if int(loc) >= t.rows.Len() {
		return Location{}, false
	}
	return t.rows.Resolve(int(loc)), true
}
