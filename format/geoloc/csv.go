package geoloc

// csvSplit tokenizes a single CSV line in place over buf. It is the
// minimal splitter the MaxMind files require: fields are separated by
// ',' outside quotes; a field beginning with '"' runs to the next '"'.
// There is no escaped-quote ("") support — MaxMind's own data never
// needs it (see SPEC_FULL.md §4.3 / Open Questions).
//
// buf is not modified, and the returned slices alias it (no copy), so
// they are only valid while buf's contents are.
func csvSplit(buf []byte) [][]byte {
	var toks [][]byte

	i := 0
	n := len(buf)

	for i < n {
		if buf[i] == '"' {
			i++
			start := i
			for i < n && buf[i] != '"' {
				i++
			}
			toks = append(toks, buf[start:i])
			if i < n {
				i++ // skip closing quote
			}
			// skip to next comma or end
			for i < n && buf[i] != ',' {
				i++
			}
		} else {
			start := i
			for i < n && buf[i] != ',' {
				i++
			}
			toks = append(toks, buf[start:i])
		}

		if i < n && buf[i] == ',' {
			i++
			if i == n {
				// trailing comma: one more, empty, field
				toks = append(toks, buf[i:i])
			}
		}
	}

	if n == 0 {
		toks = append(toks, buf[0:0])
	}

	return toks
}

// charSplit splits s on a single delimiter byte with no quote handling.
// Used for IP dotted-quad parsing and header token parsing.
func charSplit(s []byte, delim byte) [][]byte {
	var toks [][]byte

	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == delim {
			toks = append(toks, s[start:i])
			start = i + 1
		}
	}
	toks = append(toks, s[start:])

	return toks
}

// toUint parses an unsigned decimal prefix of s, base 10, stopping at the
// first non-digit — the Go analog of strtoul(s, 0, 10). Returns 0 if no
// digits are present.
func toUint(s []byte) uint32 {
	var v uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint64(c-'0')
	}
	return uint32(v)
}
