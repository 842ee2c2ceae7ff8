package geoloc

// parseBlockLine parses one data line of blocks.csv: start_ip, end_ip,
// loc. Lines that don't split into exactly 3 fields are silently
// dropped, matching BlockParser::consume in original_source.
func parseBlockLine(line []byte) (Block, bool) {
	toks := csvSplit(line)
	if len(toks) != 3 {
		return Block{}, false
	}
	return Block{
		StartIP: toUint(toks[0]),
		EndIP:   toUint(toks[1]),
		Loc:     toUint(toks[2]),
	}, true
}

// parseLocationLine parses one data line of location.csv: id, country,
// region, city, postal, latitude, longitude, metro, area (9 fields);
// only id/country/region/city/lat/lon are retained.
func parseLocationLine(line []byte) (Location, bool) {
	toks := csvSplit(line)
	if len(toks) != 9 {
		return Location{}, false
	}
	return Location{
		ID:      toUint(toks[0]),
		Country: string(toks[1]),
		Region:  string(toks[2]),
		City:    string(toks[3]),
		Lat:     string(toks[5]),
		Lon:     string(toks[6]),
	}, true
}

// rawASNLine is one parsed line of asnum.csv: an IP range plus the
// decoded autonomous system number and organization text.
type rawASNLine struct {
	StartIP uint32
	EndIP   uint32
	Number  uint32
	Text    string
}

func parseASNLine(line []byte) (rawASNLine, bool) {
	toks := csvSplit(line)
	if len(toks) != 3 {
		return rawASNLine{}, false
	}

	num, text, ok := splitASNText(toks[2])
	if !ok {
		return rawASNLine{}, false
	}

	return rawASNLine{
		StartIP: toUint(toks[0]),
		EndIP:   toUint(toks[1]),
		Number:  num,
		Text:    text,
	}, true
}

// splitASNText splits a field of the form "AS<number> <org text>" into
// the numeric part and the trailing text, mirroring
// ASNParser::parse_text. The "AS" prefix is assumed; a field too short
// to carry it is rejected.
func splitASNText(field []byte) (number uint32, text string, ok bool) {
	if len(field) <= 2 {
		return 0, "", false
	}

	sp := -1
	for i, c := range field {
		if c == ' ' {
			sp = i
			break
		}
	}

	var numTok, textTok []byte
	if sp == -1 {
		numTok = field
	} else {
		numTok = field[:sp]
		textTok = field[sp+1:]
	}

	if len(numTok) <= 2 {
		return 0, "", false
	}

	return toUint(numTok[2:]), string(textTok), true
}
