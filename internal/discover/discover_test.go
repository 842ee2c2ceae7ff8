package discover

import (
	"testing"
	"time"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/stretchr/testify/require"
)

// TestPublicAddrTimesOutAgainstUnresponsiveServer exercises the error path
// without depending on a real STUN server: TEST-NET-3 (RFC 5737) never
// answers, so the binding request reliably times out.
func TestPublicAddrTimesOutAgainstUnresponsiveServer(t *testing.T) {
	_, err := PublicAddr("203.0.113.1:19302", 300*time.Millisecond)
	require.ErrorIs(t, err, errs.ErrDiscoveryFailed)
}
