package sdk

import (
	"bytes"

	"github.com/loadzero/geoloc/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// parseGeoInfo decodes one index block's data payload: a msgpack
// integer followed by a msgpack string. An integer of 0 means the string
// is the whole answer; otherwise it is a (length<<24 | offset) pointer
// into the shared geo map block, whose columns are filtered by
// geoColumnSelection, tab-joined, and followed by the string.
func (r *Reader) parseGeoInfo(data []byte) (string, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	mixSize, err := dec.DecodeInt64()
	if err != nil {
		return "", err
	}
	text, err := dec.DecodeString()
	if err != nil {
		return "", err
	}
	if mixSize == 0 {
		return text, nil
	}

	geoLen := int((mixSize >> 24) & 0xFF)
	geoPtr := int(mixSize & 0x00FFFFFF)
	if geoPtr+geoLen > len(r.geoData) {
		return "", errors.ErrInvalidDatabase
	}

	cols := msgpack.NewDecoder(bytes.NewReader(r.geoData[geoPtr : geoPtr+geoLen]))
	n, err := cols.DecodeArrayLen()
	if err != nil {
		return "", err
	}

	var out string
	for i := 0; i < n; i++ {
		v, err := cols.DecodeString()
		if err != nil {
			return "", err
		}
		if (r.geoColumnSelection>>uint(i+1))&1 != 1 {
			continue
		}
		if v == "" {
			v = "null"
		}
		out += v + "\t"
	}

	return out + "\t" + text, nil
}
