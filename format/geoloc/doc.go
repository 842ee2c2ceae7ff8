// Package geoloc implements the binary geodata store: the on-disk format,
// the CSV build pipeline, and the memory-mapped interval-search query
// engine described by the geoloc CLI.
//
/*
geoloc store format

	+--------------------------------+
	|         32-byte header         |
	+--------------------------------+
	|     location blocks (x3)       |  start_ip, end_ip, loc
	+--------------------------------+
	|      location data (x7)        |  country str-table (x2), region str-table (x2),
	|                                 |  city str-table (x2), packed locations (x1)
	+--------------------------------+
	|        asn blocks (x3)         |  start_ip, end_ip, loc
	+--------------------------------+
	|         asn data (x3)          |  text str-table (x2), packed asns (x1)
	+--------------------------------+

Header (32 bytes, ASCII, space separated, trailing dashes and newline):

	geoloc loadzero v001 <endian> -...-\n

<endian> is the literal "little" or "big"; a mismatch against the host is
fatal at load time (no byte-swap path).

Every data section after the header is a sequence of PODV chunks:

	4 bytes  tag "PODV"
	4 bytes  length L (bytes of count + payload)
	4 bytes  element count N
	N*sizeof(T) bytes payload
	padding to a 4-byte boundary

String tables are two PODV chunks: a uint32 index vector (byte offset of
each string) and a byte vector (NUL-terminated, concatenated strings).

Packed locations are stored by MaxMind location id directly: the packed
vector has size max(id)+1, and unused slots stay zero (pointing at slot 0
of each string table).
*/
package geoloc
