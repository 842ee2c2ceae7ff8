// Package czdb adapts the encrypted CZDB country/area database format as
// an alternate producer for geoloc's location tables: same save
// routines as the CSV path (format/geoloc.Build), different source.
//
// On-disk layout (IPv4 only, all integers little-endian except IP
// bounds which are big-endian/network order):
//
//	Hyper Header  - version/client id, AES-ECB encrypted random-padding
//	                length, trailing random bytes
//	Super Part    - db type, file size, first/last index ptr
//	Header Block  - one (start IP, index ptr) pair per index-block span,
//	                used to narrow a query to a small binary search
//	Index Block   - (start IP, end IP, data ptr, data len) per range
//	Geo Map Block - XOR-keyed shared column data referenced by index
//	                blocks whose payload is a pointer rather than a
//	                literal string
//
// See format/czdb/sdk for the decoder.
package czdb

import (
	"fmt"
	"os"
	"strings"

	"github.com/loadzero/geoloc/format/czdb/sdk"
	"github.com/loadzero/geoloc/format/geoloc"
	pkgerrors "github.com/loadzero/geoloc/pkg/errors"
)

const (
	DBFormat = "czdb"
	DBExt    = ".czdb"
)

// Reader walks a CZDB file's full IPv4 address space and emits one
// Record per run of consecutive index ranges with identical text;
// ToLocations turns those into geoloc.Block/geoloc.Location pairs, letting
// it feed format/geoloc's save routines the same way a CSV parser does.
type Reader struct {
	db  *sdk.Reader
	key string
}

// NewReader opens a CZDB file. key is the base64-encoded decryption key
// the database was published with; Walk fails with ErrKeyRequired if it
// is empty.
func NewReader(file, key string) (*Reader, error) {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrFileNotFound, file)
		}
		return nil, err
	}

	db, err := sdk.NewReader(file)
	if err != nil {
		return nil, err
	}
	db.Key = key

	return &Reader{db: db, key: key}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// Record is one resolved CZDB row: an inclusive IPv4 range plus the
// country/area text the database stores for it.
type Record struct {
	StartIP uint32
	EndIP   uint32
	Country string
	Area    string
}

// Walk scans IPv4 space one index range at a time, coalescing
// consecutive ranges that resolve to identical text into a single
// Record. CZDB's Find is a point query with no "list all ranges" API;
// walking range boundaries this way is the same technique ip2region-style
// maker tools use to regenerate a full block table from a compiled
// database.
func (r *Reader) Walk() ([]Record, error) {
	var records []Record
	var cur *Record

	quad := uint32(0)
	for {
		start, end, data, err := r.db.Find(quad)
		if err != nil {
			return records, err
		}

		country, area := splitCountryArea(data)

		if cur == nil || cur.Country != country || cur.Area != area {
			if cur != nil {
				records = append(records, *cur)
			}
			cur = &Record{StartIP: start, EndIP: end, Country: country, Area: area}
		} else {
			cur.EndIP = end
		}

		if end == ^uint32(0) {
			break
		}
		quad = end + 1
	}

	if cur != nil {
		records = append(records, *cur)
	}

	return records, nil
}

func splitCountryArea(data string) (country, area string) {
	parts := strings.SplitN(data, "\t", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return data, ""
}

// ToLocations converts Walk's output into dense geoloc.Location rows
// (IDs assigned by discovery order) and the parallel block vector
// import-czdb writes through format/geoloc.Build's save routines.
func ToLocations(records []Record) ([]geoloc.Block, []geoloc.Location) {
	blocks := make([]geoloc.Block, len(records))
	locs := make([]geoloc.Location, len(records))

	for i, rec := range records {
		blocks[i] = geoloc.Block{StartIP: rec.StartIP, EndIP: rec.EndIP, Loc: uint32(i)}
		locs[i] = geoloc.Location{ID: uint32(i), Country: rec.Country, City: rec.Area}
	}

	return blocks, locs
}
