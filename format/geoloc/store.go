package geoloc

import (
	"fmt"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/loadzero/geoloc/internal/logging"
)

// IPResult is the outcome of a single IP query: the resolved location
// fields (zero-valued if the IP fell outside every known location
// block) plus the resolved ASN fields (zero-valued likewise).
type IPResult struct {
	Quad uint32

	Country string
	Region  string
	City    string
	Lat     float32
	Lon     float32
	HasLoc  bool

	ASNNumber uint32
	ASNText   string
	HasASN    bool
}

// Store is a read-only, memory-mapped geolocation database opened from
// a file built by Build. It loads its four tables in the same document
// order they were written and is safe for concurrent queries from
// multiple goroutines once Open returns.
type Store struct {
	mf *mappedFile

	locationBlocks locationTable
	asnBlocks      asnTable
}

// Open memory-maps path and validates its header before loading the
// four tables in document order (location blocks, location data, asn
// blocks, asn data). The returned Store must be closed with Close.
func Open(log *logging.Logger, path string) (*Store, error) {
	log.Context("store.go", 0, "opening store %s", path)

	mf, err := openMapped(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := newReader(mf.data)

	if err := r.loadHeader(); err != nil {
		mf.Close()
		return nil, err
	}

	locBlocks, err := r.loadBlockTable()
	if err != nil {
		mf.Close()
		return nil, err
	}
	locRows, err := r.loadPackedLocationView()
	if err != nil {
		mf.Close()
		return nil, err
	}

	asnB, err := r.loadBlockTable()
	if err != nil {
		mf.Close()
		return nil, err
	}
	asnRows, err := r.loadPackedASNView()
	if err != nil {
		mf.Close()
		return nil, err
	}

	return &Store{
		mf:             mf,
		locationBlocks: locationTable{blocks: locBlocks, rows: locRows},
		asnBlocks:      asnTable{blocks: asnB, rows: asnRows},
	}, nil
}

// Close unmaps the underlying file. Queries against a closed Store are
// undefined, matching the lifetime contract of the mapped data it
// returns views over.
func (s *Store) Close() error {
	return s.mf.Close()
}

// Query resolves quad against both the location and ASN tables,
// independently: an IP can be known to one table and not the other.
func (s *Store) Query(quad uint32) IPResult {
	result := IPResult{Quad: quad}

	if loc, ok := s.locationBlocks.Query(quad); ok {
		result.HasLoc = true
		result.Country = loc.Country
		result.Region = loc.Region
		result.City = loc.City
		result.Lat = 0
		result.Lon = 0
		if row, found := s.locationRow(quad); found {
			result.Lat = row.Lat
			result.Lon = row.Lon
		}
	}

	if asn, ok := s.asnBlocks.Query(quad); ok {
		result.HasASN = true
		result.ASNNumber = asn.Number
		result.ASNText = asn.Text
	}

	return result
}

// locationRow re-resolves the raw PackedLocation for quad so Query can
// surface the numeric coordinates alongside the resolved strings.
func (s *Store) locationRow(quad uint32) (PackedLocation, bool) {
	idx := s.locationBlocks.blocks.query(quad)
	if idx == notFound {
		return PackedLocation{}, false
	}
	row := s.locationBlocks.blocks.loc.At(int(idx))
	if int(row) >= s.locationBlocks.rows.Len() {
		return PackedLocation{}, false
	}
	return s.locationBlocks.rows.At(int(row)), true
}

// ParseDottedQuad converts a dotted-decimal IPv4 address into its
// host-order 32-bit integer form, the same packing query.hpp's
// IPParser::consume performs.
func ParseDottedQuad(s []byte) (uint32, error) {
	toks := charSplit(s, '.')
	if len(toks) != 4 {
		return 0, fmt.Errorf("%w: %q is not a dotted quad", errs.ErrUsage, s)
	}

	var quad uint32
	for _, t := range toks {
		if len(t) == 0 {
			return 0, fmt.Errorf("%w: %q is not a dotted quad", errs.ErrUsage, s)
		}
		quad = quad<<8 | toUint(t)
	}
	return quad, nil
}
