package geoloc

import (
	"fmt"
	"io"
	"strings"

	"github.com/loadzero/geoloc/internal/fields"
	"github.com/olekukonko/tablewriter"
)

// fieldValues resolves r's columns to their display strings, keyed by
// the names in internal/fields, so RenderLine/RenderTable can honor a
// caller-selected subset without duplicating the placeholder logic.
// Absent fields render as "%"; lat/lon default to "0.0000" since they
// carry a numeric zero value even when no location resolved.
func fieldValues(r IPResult) map[string]string {
	v := map[string]string{
		fields.Country: "%",
		fields.Region:  "%",
		fields.City:    "%",
		fields.Lat:     "0.0000",
		fields.Lon:     "0.0000",
		fields.ASN:     "%",
		fields.ASNText: "%",
	}

	if r.HasLoc {
		v[fields.Country] = orPercent(r.Country)
		v[fields.Region] = orPercent(r.Region)
		v[fields.City] = orPercent(r.City)
		v[fields.Lat] = fmt.Sprintf("%3.4f", r.Lat)
		v[fields.Lon] = fmt.Sprintf("%3.4f", r.Lon)
	}

	if r.HasASN {
		v[fields.ASN] = fmt.Sprintf("AS%d", r.ASNNumber)
		v[fields.ASNText] = orPercent(r.ASNText)
	}

	return v
}

// RenderLine writes a single IPResult in the required default format:
// space-separated fields, absent values rendered as "%" (the same
// placeholder IPParser/escape use for an unresolved field).
func RenderLine(w io.Writer, r IPResult) error {
	return RenderLineFields(w, r, fields.Full)
}

// RenderLineFields is RenderLine restricted to the given column subset,
// in the order given, preceded by the dotted-quad address.
func RenderLineFields(w io.Writer, r IPResult, selected []string) error {
	v := fieldValues(r)

	line := quadToDotted(r.Quad)
	for _, f := range fields.Filter(selected) {
		line += " " + v[f]
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// RenderTable renders a batch of IPResult rows with tablewriter, used
// for the CLI's --format table option.
func RenderTable(w io.Writer, results []IPResult) {
	RenderTableFields(w, results, fields.Full)
}

// RenderTableFields is RenderTable restricted to the given column
// subset.
func RenderTableFields(w io.Writer, results []IPResult, selected []string) {
	cols := fields.Filter(selected)

	t := tablewriter.NewWriter(w)
	header := append([]string{"ip"}, cols...)
	t.SetHeader(header)

	for _, r := range results {
		v := fieldValues(r)
		row := make([]string, 0, len(cols)+1)
		row = append(row, quadToDotted(r.Quad))
		for _, f := range cols {
			row = append(row, v[f])
		}
		t.Append(row)
	}

	t.Render()
}

// orPercent substitutes spaces with "+" (the ip_to_s URL-encoding
// convention for text fields) and falls back to "%" for an empty
// string.
func orPercent(s string) string {
	if s == "" {
		return "%"
	}
	return strings.ReplaceAll(s, " ", "+")
}

// quadToDotted renders a host-order IPv4 integer back to dotted-decimal,
// the inverse of ParseDottedQuad and the Go analog of query.hpp's
// ip_to_s.
func quadToDotted(quad uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		(quad>>24)&0xff, (quad>>16)&0xff, (quad>>8)&0xff, quad&0xff)
}
