// Package errors collects the sentinel errors surfaced by geoloc's
// import adapters and mmdb exporter — the error values a caller outside
// the format/geoloc package is expected to check against with errors.Is.
// Core sentinels live in internal/errs; this package re-exports the ones
// callers actually need plus the ones specific to the alternate import
// adapters and the mmdb exporter.
package errors

import (
	"errors"

	"github.com/loadzero/geoloc/internal/errs"
)

var (
	// Re-exported from internal/errs for callers that only import
	// pkg/errors.
	ErrKeyRequired     = errs.ErrKeyRequired
	ErrInvalidDatabase = errs.ErrInvalidDatabase
	ErrDiscoveryFailed = errs.ErrDiscoveryFailed

	// CIDR / IP range helpers (go4.org/netipx), surfaced by the mmdb
	// exporter when a block's range fails to decompose into CIDRs.
	ErrInvalidCIDR = errors.New("invalid CIDR format")

	// Command layer: the CZDB/AWDB import adapters check for their
	// source file up front rather than letting the underlying decoder's
	// os.Open error speak for itself.
	ErrFileNotFound = errors.New("file not found")
)
