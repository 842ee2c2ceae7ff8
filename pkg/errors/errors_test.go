package errors

import (
	"testing"

	"github.com/loadzero/geoloc/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestReExportsAliasInternalSentinels(t *testing.T) {
	require.Same(t, errs.ErrKeyRequired, ErrKeyRequired)
	require.Same(t, errs.ErrInvalidDatabase, ErrInvalidDatabase)
	require.Same(t, errs.ErrDiscoveryFailed, ErrDiscoveryFailed)
}
