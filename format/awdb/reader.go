// Package awdb adapts the AWDB binary database format (a MaxMind-style
// binary trie, read via dilfish/awdb-golang) as a second alternate
// producer for geoloc's location tables — the same adapter seam
// format/czdb uses, exercising a different third-party decoder.
package awdb

import (
	"fmt"
	"net"
	"os"

	awdb "github.com/dilfish/awdb-golang/awdb-golang"
	"github.com/loadzero/geoloc/format/geoloc"
	pkgerrors "github.com/loadzero/geoloc/pkg/errors"
)

// record is the subset of AWDB's per-network fields geoloc cares about;
// awdb-golang decodes into arbitrary Go values via reflection, so a
// narrow struct here is enough to pull out what Location needs.
type record struct {
	Country struct {
		Names map[string]string `awdb:"names"`
	} `awdb:"country"`
	City struct {
		Names map[string]string `awdb:"names"`
	} `awdb:"city"`
	Subdivisions []struct {
		Names map[string]string `awdb:"names"`
	} `awdb:"subdivisions"`
	Location struct {
		Latitude  float64 `awdb:"latitude"`
		Longitude float64 `awdb:"longitude"`
	} `awdb:"location"`
}

// Reader walks every network an AWDB file defines and resolves it to a
// geoloc Location.
type Reader struct {
	db *awdb.Reader
}

func NewReader(file string) (*Reader, error) {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrFileNotFound, file)
		}
		return nil, err
	}

	db, err := awdb.Open(file)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// Walk iterates every IPv4 network AWDB defines, in the ascending order
// its internal trie stores them, and resolves each to a Block/Location
// pair. Locale picks which of AWDB's per-language "names" map entries
// to keep (e.g. "en"); a missing locale falls back to the first name
// found.
func (r *Reader) Walk(locale string) ([]geoloc.Block, []geoloc.Location, error) {
	var blocks []geoloc.Block
	var locs []geoloc.Location

	networks := r.db.Networks()
	id := uint32(0)

	for networks.Next() {
		var rec record
		network, err := networks.Network(&rec)
		if err != nil {
			continue
		}

		v4 := network.IP.To4()
		if v4 == nil {
			continue
		}

		ones, _ := network.Mask.Size()
		start, end := cidrRange(v4, ones)

		locs = append(locs, geoloc.Location{
			ID:      id,
			Country: pickName(rec.Country.Names, locale),
			Region:  pickSubdivision(rec.Subdivisions, locale),
			City:    pickName(rec.City.Names, locale),
			Lat:     floatToStr(rec.Location.Latitude),
			Lon:     floatToStr(rec.Location.Longitude),
		})
		blocks = append(blocks, geoloc.Block{StartIP: start, EndIP: end, Loc: id})
		id++
	}

	if err := networks.Err(); err != nil {
		return nil, nil, err
	}

	return blocks, locs, nil
}

func pickName(names map[string]string, locale string) string {
	if v, ok := names[locale]; ok {
		return v
	}
	for _, v := range names {
		return v
	}
	return ""
}

func pickSubdivision(subs []struct {
	Names map[string]string `awdb:"names"`
}, locale string) string {
	if len(subs) == 0 {
		return ""
	}
	return pickName(subs[0].Names, locale)
}

func floatToStr(f float64) string {
	return fmt.Sprintf("%g", f)
}

func cidrRange(ip net.IP, ones int) (start, end uint32) {
	v := uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
	if ones >= 32 {
		return v, v
	}
	mask := uint32(0xffffffff) << (32 - ones)
	start = v & mask
	end = start | ^mask
	return start, end
}
