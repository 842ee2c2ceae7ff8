// Package ipnet converts geoloc's host-order IPv4 block ranges into
// netip-native ranges and minimal CIDR sets, used by the mmdb export
// path (it inserts each range through mmdbwriter's Insert, which takes a
// CIDR network, not a raw start/end pair).
package ipnet

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

// quadToAddr converts a host-order IPv4 integer to a netip.Addr.
func quadToAddr(quad uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{
		byte(quad >> 24), byte(quad >> 16), byte(quad >> 8), byte(quad),
	})
}

// Range is an inclusive [start, end] IPv4 range in host order, the same
// shape as a geoloc Block's address columns.
type Range struct {
	Start uint32
	End   uint32
}

// CIDRs decomposes r into the minimal set of CIDR prefixes that exactly
// cover it, via go4.org/netipx's range-to-prefix folding.
func (r Range) CIDRs() ([]netip.Prefix, error) {
	ipRange := netipx.IPRangeFrom(quadToAddr(r.Start), quadToAddr(r.End))
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid range %d-%d", r.Start, r.End)
	}
	return ipRange.Prefixes(), nil
}

// Builder accumulates Ranges into a netipx.IPSetBuilder, letting callers
// merge adjacent/overlapping block ranges (e.g. repeated ASN blocks)
// before asking for a minimal CIDR set.
type Builder struct {
	b netipx.IPSetBuilder
}

func (bd *Builder) Add(r Range) {
	bd.b.AddRange(netipx.IPRangeFrom(quadToAddr(r.Start), quadToAddr(r.End)))
}

// Prefixes returns the minimal CIDR prefixes covering every range added
// so far.
func (bd *Builder) Prefixes() ([]netip.Prefix, error) {
	set, err := bd.b.IPSet()
	if err != nil {
		return nil, err
	}
	return set.Prefixes(), nil
}
