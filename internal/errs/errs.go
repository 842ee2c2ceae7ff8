// Package errs collects the sentinel errors used across geoloc so callers
// can match with errors.Is instead of comparing strings.
package errs

import "errors"

var (
	// Format / store

	ErrBadHeader       = errors.New("corrupt or unrecognized header")
	ErrEndianMismatch  = errors.New("store was built on a different endianness")
	ErrBadChunkTag     = errors.New("missing or corrupt PODV chunk tag")
	ErrTruncatedChunk  = errors.New("truncated chunk")
	ErrMisaligned      = errors.New("mapped offset is not 4-byte aligned")
	ErrUnsortedBlocks  = errors.New("block vector is not strictly sorted by start_ip")
	ErrOverlapping     = errors.New("block vector contains overlapping ranges")
	ErrKeyRequired     = errors.New("key is required for encrypted database, use --key to set it")
	ErrInvalidDatabase = errors.New("invalid database")

	// CLI / config

	ErrUsage             = errors.New("usage error")
	ErrMissingHome       = errors.New("HOME is not set")
	ErrMutuallyExclusive = errors.New("-q and a positional query argument are mutually exclusive")
	ErrNoOutput          = errors.New("an output path is required")
	ErrNoInput           = errors.New("no query input given")

	// Discovery / resolution

	ErrDiscoveryFailed = errors.New("failed to discover IP address")
	ErrResolveFailed   = errors.New("failed to resolve hostname")
)
