// Package mmdbexport writes a geoloc Store out as a standard MaxMind
// DB file (via maxmind/mmdbwriter) for `geoloc export-mmdb`, so a store
// built from MaxMind's own legacy CSVs can be consumed by any of the
// many mmdb-reader libraries in the wild instead of only this one.
package mmdbexport

import (
	"fmt"
	"net"
	"net/netip"
	"os"

	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/ipnet"
	pkgerrors "github.com/loadzero/geoloc/pkg/errors"
	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
	maxminddb "github.com/oschwald/maxminddb-golang"
)

// Export queries store at the start address of every block in blocks
// and inserts each resolved range into a fresh mmdb writer, then
// flushes to outPath.
func Export(store *geoloc.Store, blocks []geoloc.Block, outPath string) error {
	writer, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: "geoloc-GeoLite",
		RecordSize:   28,
	})
	if err != nil {
		return err
	}

	for _, b := range blocks {
		r := store.Query(b.StartIP)

		rec := mmdbtype.Map{
			"country": mmdbtype.Map{"names": mmdbtype.Map{"en": mmdbtype.String(r.Country)}},
			"city":    mmdbtype.Map{"names": mmdbtype.Map{"en": mmdbtype.String(r.City)}},
			"location": mmdbtype.Map{
				"latitude":  mmdbtype.Float64(r.Lat),
				"longitude": mmdbtype.Float64(r.Lon),
			},
		}
		if r.HasASN {
			rec["autonomous_system_number"] = mmdbtype.Uint32(r.ASNNumber)
			rec["autonomous_system_organization"] = mmdbtype.String(r.ASNText)
		}

		ranges, err := (ipnet.Range{Start: b.StartIP, End: b.EndIP}).CIDRs()
		if err != nil {
			return fmt.Errorf("range %d-%d: %w", b.StartIP, b.EndIP, err)
		}
		for _, p := range ranges {
			_, ipNet, err := net.ParseCIDR(p.String())
			if err != nil {
				return fmt.Errorf("%w: %s: %v", pkgerrors.ErrInvalidCIDR, p, err)
			}
			if err := writer.Insert(ipNet, rec); err != nil {
				return err
			}
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = writer.WriteTo(f)
	return err
}

// SelfCheck opens the just-written file with oschwald/maxminddb-golang
// and performs one lookup, confirming the export round-trips before the
// caller reports success.
func SelfCheck(path string, probe netip.Addr) error {
	db, err := maxminddb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	var rec map[string]interface{}
	return db.Lookup(probe, &rec)
}
