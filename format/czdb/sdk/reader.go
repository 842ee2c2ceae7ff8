// Package sdk decodes the encrypted CZDB binary format: an AES-ECB
// hyper header wrapping a super part, a header block used to narrow a
// target address to a range of index blocks, and an index block array
// holding the actual start/end/data pointers. Only the IPv4 layout is
// implemented — format/czdb's Block/Location types are IPv4-only, so
// an IPv6 branch here would have no caller.
package sdk

import (
	"encoding/base64"
	"encoding/binary"
	"os"
	"sort"
	"sync"

	"github.com/loadzero/geoloc/pkg/errors"
)

const (
	hyperHeaderLength = 12
	superPartLength   = 17
	headerBlockLength = 20
	indexBlockLength  = 13

	dbTypeIPv4 = 0x0
)

// Reader is a lazily-initialized, concurrency-safe CZDB (IPv4) reader.
// Create with NewReader, set Key, then call Find; Init runs once on
// first use.
type Reader struct {
	// Key is the base64-encoded decryption key published with the
	// database. Find fails with errors.ErrKeyRequired if it is empty.
	Key string

	data []byte

	encryptedDataLength  int
	decRandomBytesLength int

	totalHeaderBlockSize int
	lastIndexPtr         int

	// offset is where the super part begins: hyperHeaderLength +
	// encryptedDataLength + decRandomBytesLength.
	offset int

	// headerIPs/headerPtrs narrow a query address to the
	// [headerPtrs[i-1], headerPtrs[i]] span of index blocks to search,
	// avoiding an O(n) scan of the full index for every query.
	headerIPs  []uint32
	headerPtrs []int
	headerLen  int

	geoColumnSelection uint32
	geoData            []byte

	inited   bool
	initOnce sync.Once
	initErr  error
}

// NewReader opens a CZDB file and validates its hyper header framing.
// Decryption and index parsing are deferred to the first Find call.
func NewReader(filePath string) (*Reader, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	if len(data) < hyperHeaderLength {
		return nil, errors.ErrInvalidDatabase
	}

	encryptedDataLength := int(binary.LittleEndian.Uint32(data[8:12]))
	if len(data) < hyperHeaderLength+encryptedDataLength {
		return nil, errors.ErrInvalidDatabase
	}

	return &Reader{data: data, encryptedDataLength: encryptedDataLength}, nil
}

// Init decrypts the hyper header and parses the super part, header
// blocks and geo column settings. Called automatically by Find.
func (r *Reader) Init() error {
	if r.Key == "" {
		return errors.ErrKeyRequired
	}
	key, err := base64.StdEncoding.DecodeString(r.Key)
	if err != nil {
		return err
	}

	if err := r.decryptHyperHeader(key); err != nil {
		return err
	}
	if err := r.parseSuperPart(); err != nil {
		return err
	}
	r.parseHeaderBlocks()
	r.loadGeoSetting(key)

	r.inited = true
	return nil
}

func (r *Reader) decryptHyperHeader(key []byte) error {
	enc := r.data[hyperHeaderLength : hyperHeaderLength+r.encryptedDataLength]
	dec, err := aesECBDecrypt(enc, key)
	if err != nil {
		return err
	}
	if len(dec) < 8 {
		return errors.ErrInvalidDatabase
	}
	r.decRandomBytesLength = int(binary.LittleEndian.Uint32(dec[4:8]))
	r.offset = hyperHeaderLength + r.encryptedDataLength + r.decRandomBytesLength
	return nil
}

func (r *Reader) parseSuperPart() error {
	if r.offset+superPartLength > len(r.data) {
		return errors.ErrInvalidDatabase
	}
	sp := r.data[r.offset : r.offset+superPartLength]
	if sp[0] != dbTypeIPv4 {
		return errors.ErrInvalidDatabase
	}
	r.totalHeaderBlockSize = int(binary.LittleEndian.Uint32(sp[9:13]))
	r.lastIndexPtr = int(binary.LittleEndian.Uint32(sp[13:17]))
	return nil
}

func (r *Reader) parseHeaderBlocks() {
	base := r.offset + superPartLength
	count := r.totalHeaderBlockSize / headerBlockLength
	r.headerIPs = make([]uint32, 0, count)
	r.headerPtrs = make([]int, 0, count)

	for i := 0; i < r.totalHeaderBlockSize; i += headerBlockLength {
		p := base + i
		ptr := binary.LittleEndian.Uint32(r.data[p+16 : p+20])
		if ptr == 0 {
			break
		}
		r.headerIPs = append(r.headerIPs, binary.BigEndian.Uint32(r.data[p:p+4]))
		r.headerPtrs = append(r.headerPtrs, int(ptr))
	}
	r.headerLen = len(r.headerIPs)
}

func (r *Reader) loadGeoSetting(key []byte) {
	p := r.offset + r.lastIndexPtr + indexBlockLength
	if p+4 > len(r.data) {
		return
	}
	r.geoColumnSelection = binary.LittleEndian.Uint32(r.data[p : p+4])
	if r.geoColumnSelection == 0 {
		return
	}
	if p+8 > len(r.data) {
		return
	}
	geoLen := int(binary.LittleEndian.Uint32(r.data[p+4 : p+8]))
	if p+8+geoLen > len(r.data) {
		return
	}
	r.geoData = xorDecrypt(r.data[p+8:p+8+geoLen], key)
}

// Find resolves quad (a host-order IPv4 address) to the index range
// that contains it and the raw geo text stored for that range. It
// lazily initializes the reader on first call.
func (r *Reader) Find(quad uint32) (start, end uint32, info string, err error) {
	r.initOnce.Do(func() { r.initErr = r.Init() })
	if r.initErr != nil {
		return 0, 0, "", r.initErr
	}

	sptr, eptr := r.searchHeader(quad)
	if sptr == 0 && eptr == 0 {
		return 0, 0, "", errors.ErrInvalidDatabase
	}

	start, end, dataPtr, dataLen := r.searchIndex(sptr, eptr, quad)
	if dataPtr == 0 {
		return 0, 0, "", errors.ErrInvalidDatabase
	}

	info, err = r.parseGeoInfo(r.data[r.offset+dataPtr : r.offset+dataPtr+dataLen])
	if err != nil {
		return 0, 0, "", err
	}
	return start, end, info, nil
}

// searchHeader narrows quad to the [sptr, eptr] span of index blocks
// (both ends inclusive) that might contain it, via a predecessor search
// over headerIPs.
func (r *Reader) searchHeader(quad uint32) (sptr, eptr int) {
	if r.headerLen == 0 {
		return 0, 0
	}

	i := sort.Search(r.headerLen, func(i int) bool { return r.headerIPs[i] >= quad })
	switch {
	case i < r.headerLen && r.headerIPs[i] == quad:
		if i > 0 {
			sptr = r.headerPtrs[i-1]
		} else {
			sptr = r.headerPtrs[i]
		}
		eptr = r.headerPtrs[i]
	case i == 0:
		return 0, 0
	case i < r.headerLen:
		sptr = r.headerPtrs[i-1]
		eptr = r.headerPtrs[i]
	default:
		sptr = r.headerPtrs[r.headerLen-1]
		eptr = sptr + indexBlockLength
	}
	return sptr, eptr
}

// searchIndex binary-searches the index blocks from sptr through eptr
// (eptr is the offset of the last block searched, not one past it) for
// the block whose [start, end] interval contains quad.
func (r *Reader) searchIndex(sptr, eptr int, quad uint32) (start, end uint32, dataPtr, dataLen int) {
	l, h := 0, (eptr-sptr)/indexBlockLength

	for l <= h {
		m := (l + h) >> 1
		p := r.offset + sptr + m*indexBlockLength

		s := binary.BigEndian.Uint32(r.data[p : p+4])
		e := binary.BigEndian.Uint32(r.data[p+4 : p+8])

		switch {
		case quad < s:
			h = m - 1
		case quad > e:
			l = m + 1
		default:
			return s, e, int(binary.LittleEndian.Uint32(r.data[p+8 : p+12])), int(r.data[p+12])
		}
	}
	return 0, 0, 0, 0
}

func (r *Reader) Close() error {
	r.data = nil
	r.headerIPs = nil
	r.headerPtrs = nil
	r.geoData = nil
	r.inited = false
	r.initErr = nil
	r.initOnce = sync.Once{}
	return nil
}
