package geoloc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/loadzero/geoloc/internal/errs"
)

const (
	// HeaderLength is the fixed size of the ASCII header in bytes.
	HeaderLength = 32

	headerToken0 = "geoloc"
	headerToken1 = "loadzero"
	headerToken2 = "v001"
)

// hostEndian reports this process's native byte order as "little" or
// "big", the same trick as the original get_endian(): write a known
// multi-byte pattern and inspect the first byte.
func hostEndian() string {
	var x uint32 = 0x01020304
	b := (*[4]byte)(unsafe.Pointer(&x))
	if b[0] == 0x04 {
		return "little"
	}
	return "big"
}

// nativeByteOrder returns the binary.ByteOrder matching hostEndian(), used
// for every fixed-width read/write in this package. The store format is
// intentionally host-specific: see the package doc and spec §9
// "Endianness" — there is no byte-swap path.
func nativeByteOrder() binary.ByteOrder {
	if hostEndian() == "little" {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// buildHeader renders the 32-byte ASCII header: five space-separated
// tokens, then dash padding, then a trailing newline.
func buildHeader() [HeaderLength]byte {
	var buf [HeaderLength]byte
	for i := range buf {
		buf[i] = '-'
	}

	prefix := fmt.Sprintf("%s %s %s %s ", headerToken0, headerToken1, headerToken2, hostEndian())
	n := copy(buf[:], prefix)
	if n > HeaderLength-1 {
		n = HeaderLength - 1
	}
	buf[HeaderLength-1] = '\n'
	_ = n
	return buf
}

// parseHeader validates the first 32 bytes of a store: exactly 5
// space-separated tokens, with the first four pinned to the fixed
// protocol identifiers and host endianness.
func parseHeader(raw []byte) error {
	if len(raw) != HeaderLength {
		return errs.ErrBadHeader
	}

	toks := charSplit(raw, ' ')
	if len(toks) != 5 {
		return fmt.Errorf("%w: expected 5 tokens, got %d", errs.ErrBadHeader, len(toks))
	}

	if string(toks[0]) != headerToken0 {
		return fmt.Errorf("%w: token0 %q", errs.ErrBadHeader, toks[0])
	}
	if string(toks[1]) != headerToken1 {
		return fmt.Errorf("%w: token1 %q", errs.ErrBadHeader, toks[1])
	}
	if string(toks[2]) != headerToken2 {
		return fmt.Errorf("%w: version %q", errs.ErrBadHeader, toks[2])
	}
	if !bytes.Equal(toks[3], []byte(hostEndian())) {
		return fmt.Errorf("%w: file is %q, host is %q", errs.ErrEndianMismatch, toks[3], hostEndian())
	}

	return nil
}
