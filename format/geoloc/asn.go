package geoloc

import "github.com/loadzero/geoloc/internal/errs"

// ASN is one parsed row of asnum.csv: a numeric autonomous system number
// paired with its registered organization text ("AS<number> <text>" in
// the source file is split before this point).
type ASN struct {
	Number uint32
	Text   string
}

// PackedASN is the on-disk row: the text field replaced by its
// StringTable index. Unlike locations, ASN rows are stored densely in
// block order rather than indexed by an external ID — each block's Loc
// field is the row index directly (spec.md §4.5).
type PackedASN struct {
	Number uint32
	Text   uint32
}

const packedASNSize = 4 + 4

func encodePackedASN(dst []byte, p PackedASN) {
	bo := nativeByteOrder()
	bo.PutUint32(dst[0:4], p.Number)
	bo.PutUint32(dst[4:8], p.Text)
}

func decodePackedASN(src []byte) PackedASN {
	bo := nativeByteOrder()
	return PackedASN{
		Number: bo.Uint32(src[0:4]),
		Text:   bo.Uint32(src[4:8]),
	}
}

type packedASNView struct {
	rows []byte
	text mappedStringVector
}

func (v packedASNView) Len() int { return len(v.rows) / packedASNSize }

func (v packedASNView) At(i int) PackedASN {
	return decodePackedASN(v.rows[i*packedASNSize:])
}

func (v packedASNView) Resolve(i int) ASN {
	p := v.At(i)
	a := ASN{Number: p.Number}
	if p.Text != sentinelIndex {
		a.Text = v.text.At(int(p.Text))
	}
	return a
}

type asnTable struct {
	blocks blockTable
	rows   packedASNView
}

func (w *writer) saveASNBlocks(blocks []Block) error {
	return w.saveBlocks(blocks)
}

// saveASNs writes the organization-text string table followed by the
// packed ASN vector.
func (w *writer) saveASNs(rows []PackedASN, text *StringTable) error {
	if err := w.saveStringTable(text); err != nil {
		return err
	}
	return w.savePackedASNs(rows)
}

func (r *reader) loadPackedASNView() (packedASNView, error) {
	text, err := r.loadMappedStringVector()
	if err != nil {
		return packedASNView{}, err
	}

	count, payload, err := r.loadPODV()
	if err != nil {
		return packedASNView{}, err
	}
	if len(payload) != int(count)*packedASNSize {
		return packedASNView{}, errs.ErrTruncatedChunk
	}

	return packedASNView{rows: payload, text: text}, nil
}

func (r *reader) loadASNTable() (asnTable, error) {
	blocks, err := r.loadBlockTable()
	if err != nil {
		return asnTable{}, err
	}
	rows, err := r.loadPackedASNView()
	if err != nil {
		return asnTable{}, err
	}
	return asnTable{blocks: blocks, rows: rows}, nil
}

// Query resolves quad to an ASN, or false if quad falls outside every
// known block.
func (t asnTable) Query(quad uint32) (ASN, bool) {
	idx := t.blocks.query(quad)
	if idx == notFound {
		return ASN{}, false
	}

	row := t.blocks.loc.At(int(idx))
	if int(row) >= t.rows.Len() {
		return ASN{}, false
	}
	return t.rows.Resolve(int(row)), true
}
