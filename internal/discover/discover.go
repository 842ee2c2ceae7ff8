// Package discover implements the "whoami" lookup: asking a public STUN
// server what address this process is reachable as, for `geoloc whoami`
// to then feed straight back into a self-lookup.
package discover

import (
	"fmt"
	"net"
	"time"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/pion/stun/v2"
)

// DefaultServer is a well-known public STUN server, used when the
// caller doesn't name one.
const DefaultServer = "stun.l.google.com:19302"

// PublicAddr performs a single STUN binding request against server and
// returns the reflexive (public-facing) IPv4 address it reports.
func PublicAddr(server string, timeout time.Duration) (net.IP, error) {
	if server == "" {
		server = DefaultServer
	}

	conn, err := net.DialTimeout("udp4", server, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", errs.ErrDiscoveryFailed, server, err)
	}
	defer conn.Close()

	c, err := stun.NewClient(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDiscoveryFailed, err)
	}
	defer c.Close()

	_ = conn.SetDeadline(time.Now().Add(timeout))

	message := stun.MustBuild(stun.TransactionID, stun.BindingRequest)

	var result net.IP
	var resultErr error

	done := make(chan struct{})
	err = c.Do(message, func(res stun.Event) {
		defer close(done)
		if res.Error != nil {
			resultErr = fmt.Errorf("%w: %v", errs.ErrDiscoveryFailed, res.Error)
			return
		}

		var xorAddr stun.XORMappedAddress
		if err := xorAddr.GetFrom(res.Message); err != nil {
			resultErr = fmt.Errorf("%w: %v", errs.ErrDiscoveryFailed, err)
			return
		}
		result = xorAddr.IP
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDiscoveryFailed, err)
	}

	<-done
	if resultErr != nil {
		return nil, resultErr
	}
	if result == nil {
		return nil, errs.ErrDiscoveryFailed
	}
	return result, nil
}
