package geoloc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/loadzero/geoloc/internal/errs"
)

// podvTag is the 4-byte tag prefixing every chunk.
var podvTag = []byte("PODV")

// writer appends PODV chunks to an on-disk file in the document order
// spec.md §4.1 requires. It mirrors BinaryFile from the original source:
// every vector is tagged, length-prefixed, count-prefixed, and padded.
type writer struct {
	f *os.File
}

func newWriter(path string) (*writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &writer{f: f}, nil
}

func (w *writer) Close() error { return w.f.Close() }

func (w *writer) offset() (int64, error) {
	return w.f.Seek(0, io.SeekCurrent)
}

func (w *writer) writeRaw(b []byte) error {
	_, err := w.f.Write(b)
	return err
}

func (w *writer) writeUint32(x uint32) error {
	var buf [4]byte
	nativeByteOrder().PutUint32(buf[:], x)
	return w.writeRaw(buf[:])
}

func (w *writer) seek(where int64) error {
	_, err := w.f.Seek(where, io.SeekStart)
	return err
}

func (w *writer) pad() error {
	off, err := w.offset()
	if err != nil {
		return err
	}
	padded := (off + 3) &^ 3
	if padded == off {
		return nil
	}
	return w.writeRaw(make([]byte, padded-off))
}

// writeHeader writes the fixed 32-byte ASCII header.
func (w *writer) writeHeader() error {
	h := buildHeader()
	return w.writeRaw(h[:])
}

// savePODV writes one PODV chunk: tag, length placeholder, element
// count, payload, padding, then backpatches the length (count + payload
// bytes, padding excluded) once the payload size is known.
func (w *writer) savePODV(count uint32, payload []byte) error {
	if err := w.writeRaw(podvTag); err != nil {
		return err
	}

	lengthPos, err := w.offset()
	if err != nil {
		return err
	}
	if err := w.writeUint32(0); err != nil {
		return err
	}

	top, err := w.offset()
	if err != nil {
		return err
	}
	if err := w.writeUint32(count); err != nil {
		return err
	}
	if err := w.writeRaw(payload); err != nil {
		return err
	}

	end, err := w.offset()
	if err != nil {
		return err
	}
	if err := w.pad(); err != nil {
		return err
	}

	bottom, err := w.offset()
	if err != nil {
		return err
	}

	if err := w.seek(lengthPos); err != nil {
		return err
	}
	if err := w.writeUint32(uint32(end - top)); err != nil {
		return err
	}
	return w.seek(bottom)
}

func (w *writer) saveUint32Vector(v []uint32) error {
	payload := make([]byte, 4*len(v))
	bo := nativeByteOrder()
	for i, x := range v {
		bo.PutUint32(payload[i*4:], x)
	}
	return w.savePODV(uint32(len(v)), payload)
}

func (w *writer) saveByteVector(v []byte) error {
	return w.savePODV(uint32(len(v)), v)
}

func (w *writer) savePackedLocations(v []PackedLocation) error {
	payload := make([]byte, packedLocationSize*len(v))
	for i, p := range v {
		encodePackedLocation(payload[i*packedLocationSize:], p)
	}
	return w.savePODV(uint32(len(v)), payload)
}

func (w *writer) savePackedASNs(v []PackedASN) error {
	payload := make([]byte, packedASNSize*len(v))
	for i, p := range v {
		encodePackedASN(payload[i*packedASNSize:], p)
	}
	return w.savePODV(uint32(len(v)), payload)
}

// reader walks PODV chunks over a memory-mapped byte slice in the same
// document order they were written.
type reader struct {
	data   []byte
	offset int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) avail() int {
	return len(r.data) - r.offset
}

func (r *reader) getMem(n int) ([]byte, error) {
	if n < 0 || n > r.avail() {
		return nil, errs.ErrTruncatedChunk
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *reader) loadHeader() error {
	raw, err := r.getMem(HeaderLength)
	if err != nil {
		return fmt.Errorf("%w: truncated header", errs.ErrBadHeader)
	}
	return parseHeader(raw)
}

func (r *reader) loadUint32() (uint32, error) {
	if r.offset%4 != 0 {
		return 0, errs.ErrMisaligned
	}
	b, err := r.getMem(4)
	if err != nil {
		return 0, err
	}
	return nativeByteOrder().Uint32(b), nil
}

// loadPODV reads one chunk's tag, length, count, and payload, leaving the
// reader positioned after the chunk's padding.
func (r *reader) loadPODV() (count uint32, payload []byte, err error) {
	tag, err := r.getMem(4)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errs.ErrBadChunkTag, err)
	}
	if !bytes.Equal(tag, podvTag) {
		return 0, nil, fmt.Errorf("%w: got %q", errs.ErrBadChunkTag, tag)
	}

	length, err := r.loadUint32()
	if err != nil {
		return 0, nil, err
	}
	if length < 4 {
		return 0, nil, errs.ErrTruncatedChunk
	}

	count, err = r.loadUint32()
	if err != nil {
		return 0, nil, err
	}

	payloadLen := int(length) - 4
	payload, err = r.getMem(payloadLen)
	if err != nil {
		return 0, nil, err
	}

	pad := (4 - payloadLen%4) % 4
	if pad > 0 {
		if _, err := r.getMem(pad); err != nil {
			return 0, nil, err
		}
	}

	return count, payload, nil
}

// uint32View is a zero-copy read-only view over a PODV chunk of uint32
// values, used for start_ip/end_ip/loc columns and string-table indices.
type uint32View struct {
	count   uint32
	payload []byte
}

func (r *reader) loadUint32View() (uint32View, error) {
	count, payload, err := r.loadPODV()
	if err != nil {
		return uint32View{}, err
	}
	if len(payload) != int(count)*4 {
		return uint32View{}, errs.ErrTruncatedChunk
	}
	return uint32View{count: count, payload: payload}, nil
}

func (v uint32View) Len() int { return int(v.count) }

func (v uint32View) At(i int) uint32 {
	return nativeByteOrder().Uint32(v.payload[i*4:])
}

// byteView is a zero-copy view over a raw byte PODV chunk (string table
// backing bytes).
type byteView struct {
	data []byte
}

func (r *reader) loadByteView() (byteView, error) {
	count, payload, err := r.loadPODV()
	if err != nil {
		return byteView{}, err
	}
	if int(count) != len(payload) {
		return byteView{}, errs.ErrTruncatedChunk
	}
	return byteView{data: payload}, nil
}
