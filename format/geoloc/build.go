package geoloc

import "github.com/loadzero/geoloc/internal/logging"

// BuildSources names the three MaxMind CSV inputs consumed by Build.
type BuildSources struct {
	BlocksCSV   string
	LocationCSV string
	ASNumCSV    string
}

// Build streams the three CSV sources into a fresh store at outPath, in
// the fixed document order the header comment and spec.md §4.1 require:
// location blocks, location data, asn blocks, asn data. It mirrors
// build_geo_data in original_source/etl.hpp, and returns a Manifest
// describing what it wrote so the caller can persist it alongside the
// store with WriteManifest. onLine, if non-nil, is called once per raw
// CSV line across all three sources — wired to a pkg/progress.Bar by
// the CLI layer so a multi-million-row build shows live progress.
func Build(log *logging.Logger, sources BuildSources, outPath string, onLine func()) (Manifest, error) {
	log.Context("build.go", 0, "building store from %s, %s, %s", sources.BlocksCSV, sources.LocationCSV, sources.ASNumCSV)

	w, err := newWriter(outPath)
	if err != nil {
		return Manifest{}, err
	}
	defer w.Close()

	if err := w.writeHeader(); err != nil {
		return Manifest{}, err
	}

	m := Manifest{Sources: sources}

	if m.BlockCount, err = buildBlocks(w, sources.BlocksCSV, onLine); err != nil {
		return Manifest{}, err
	}
	if m.LocationCount, m.CountryStrings, m.RegionStrings, m.CityStrings, err = buildLocations(w, sources.LocationCSV, onLine); err != nil {
		return Manifest{}, err
	}
	if m.ASNCount, m.ASNTextStrings, err = buildASNs(w, sources.ASNumCSV, onLine); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// buildBlocks streams blocks.csv (skipping its 2-line header) and writes
// the location block vector.
func buildBlocks(w *writer, path string, onLine func()) (count int, err error) {
	blocks, err := collectCSVProgress(path, 2, parseBlockLine, onLine)
	if err != nil {
		return 0, err
	}
	if err := w.saveLocationBlocks(blocks); err != nil {
		return 0, err
	}
	return len(blocks), nil
}

// buildLocations streams location.csv (skipping its 2-line header),
// interns the string columns, and writes the three string tables
// followed by the dense ID-indexed packed-location vector.
func buildLocations(w *writer, path string, onLine func()) (count, countryStrings, regionStrings, cityStrings int, err error) {
	rows, err := collectCSVProgress(path, 2, parseLocationLine, onLine)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return saveLocationRows(w, rows)
}

// saveLocationRows interns the string columns of rows and writes the
// three string tables followed by the dense ID-indexed packed-location
// vector. Shared by the CSV build path and the alternate (czdb, awdb)
// import adapters, which already have Location rows in hand and have no
// CSV of their own to stream.
func saveLocationRows(w *writer, rows []Location) (count, countryStrings, regionStrings, cityStrings int, err error) {
	country := newStringTable()
	region := newStringTable()
	city := newStringTable()

	var maxID uint32
	for _, r := range rows {
		if r.ID > maxID {
			maxID = r.ID
		}
		country.InsertNormalized(r.Country)
		region.InsertNormalized(r.Region)
		city.InsertNormalized(r.City)
	}

	packed := make([]PackedLocation, maxID+1)
	for _, r := range rows {
		packed[r.ID] = PackedLocation{
			ID:      r.ID,
			Country: country.IndexOf(normalizeString(r.Country)),
			Region:  region.IndexOf(normalizeString(r.Region)),
			City:    city.IndexOf(normalizeString(r.City)),
			Lat:     parseLocationCoord([]byte(r.Lat)),
			Lon:     parseLocationCoord([]byte(r.Lon)),
		}
	}

	if err := w.saveLocations(packed, country, region, city); err != nil {
		return 0, 0, 0, 0, err
	}
	return len(rows), country.Size(), region.Size(), city.Size(), nil
}

// buildASNs streams asnum.csv (no header line) and splits each record's
// repeated ASN number into a single deduplicated PackedASN row,
// producing a block vector whose Loc column indexes that row — the
// same layout as save_asns in original_source/asns.hpp.
func buildASNs(w *writer, path string, onLine func()) (count, textStrings int, err error) {
	lines, err := collectCSVProgress(path, 0, parseASNLine, onLine)
	if err != nil {
		return 0, 0, err
	}

	asnToIdx := make(map[uint32]uint32)
	var packed []PackedASN
	text := newStringTable()

	for _, l := range lines {
		if _, ok := asnToIdx[l.Number]; ok {
			continue
		}

		text.Insert(l.Text)
		asnToIdx[l.Number] = uint32(len(packed))
		packed = append(packed, PackedASN{
			Number: l.Number,
			Text:   text.IndexOf(l.Text),
		})
	}

	blocks := make([]Block, len(lines))
	for i, l := range lines {
		blocks[i] = Block{
			StartIP: l.StartIP,
			EndIP:   l.EndIP,
			Loc:     asnToIdx[l.Number],
		}
	}

	if err := w.saveASNBlocks(blocks); err != nil {
		return 0, 0, err
	}
	if err := w.saveASNs(packed, text); err != nil {
		return 0, 0, err
	}
	return len(packed), text.Size(), nil
}

// LoadBlocksCSV streams a blocks.csv file and returns its parsed rows,
// exported for tools (like the mmdb exporter) that need the range list
// without building a whole new store.
func LoadBlocksCSV(path string) ([]Block, error) {
	return collectCSV(path, 2, parseBlockLine)
}

// AlternateSource names the database this store was imported from, for
// a Manifest built by BuildFromRecords rather than Build.
type AlternateSource struct {
	Format string
	Path   string
}

// BuildFromRecords writes a store from already-resolved location and
// ASN rows rather than streaming CSV — the entry point format/czdb and
// format/awdb import through, once each has walked or decoded its own
// binary format into geoloc's plain Block/Location/ASN shapes. asnBlocks
// and asns may be nil for a format (like CZDB) that carries no ASN data.
func BuildFromRecords(log *logging.Logger, src AlternateSource, locBlocks []Block, locs []Location, asnBlocks []Block, asns []ASN, outPath string) (Manifest, error) {
	log.Context("build.go", 0, "building store from alternate source %s (%s)", src.Path, src.Format)

	w, err := newWriter(outPath)
	if err != nil {
		return Manifest{}, err
	}
	defer w.Close()

	if err := w.writeHeader(); err != nil {
		return Manifest{}, err
	}

	m := Manifest{Sources: BuildSources{BlocksCSV: src.Path}}
	m.BlockCount = len(locBlocks)

	if err := w.saveLocationBlocks(locBlocks); err != nil {
		return Manifest{}, err
	}
	if m.LocationCount, m.CountryStrings, m.RegionStrings, m.CityStrings, err = saveLocationRows(w, locs); err != nil {
		return Manifest{}, err
	}

	if err := w.saveASNBlocks(asnBlocks); err != nil {
		return Manifest{}, err
	}

	asnToIdx := make(map[uint32]uint32, len(asns))
	var packedASNs []PackedASN
	text := newStringTable()
	for _, a := range asns {
		if _, ok := asnToIdx[a.Number]; ok {
			continue
		}
		text.Insert(a.Text)
		asnToIdx[a.Number] = uint32(len(packedASNs))
		packedASNs = append(packedASNs, PackedASN{Number: a.Number, Text: text.IndexOf(a.Text)})
	}
	if err := w.saveASNs(packedASNs, text); err != nil {
		return Manifest{}, err
	}
	m.ASNCount = len(packedASNs)
	m.ASNTextStrings = text.Size()

	return m, nil
}
