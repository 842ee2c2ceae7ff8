// Package resolve lets geoloc's -q flag accept a hostname as well as a
// dotted-quad address: an internationalized name is converted to ASCII
// (IDNA) and resolved to an A record with a single recursive DNS query.
package resolve

import (
	"fmt"
	"net"
	"time"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// DefaultResolver is used whenever the caller passes an empty resolver;
// /etc/resolv.conf is not consulted.
const DefaultResolver = "8.8.8.8:53"

// Hostname resolves name (which may be IDN) to its first IPv4 A record
// using resolver, falling back to DefaultResolver if resolver is empty.
func Hostname(name, resolver string, timeout time.Duration) (net.IP, error) {
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrResolveFailed, err)
	}

	if resolver == "" {
		resolver = DefaultResolver
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(ascii), dns.TypeA)
	m.RecursionDesired = true

	c := new(dns.Client)
	c.Timeout = timeout

	resp, _, err := c.Exchange(m, resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrResolveFailed, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: rcode %s", errs.ErrResolveFailed, dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A, nil
		}
	}

	return nil, fmt.Errorf("%w: no A record for %s", errs.ErrResolveFailed, ascii)
}
