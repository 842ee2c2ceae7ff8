package logging

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestContextRetainedInRingEvenAboveLevel(t *testing.T) {
	l := New(logrus.ErrorLevel)
	l.Context("build.go", 42, "building %s", "store")

	dump := l.ring.dump()
	require.Contains(t, dump, "build.go:42")
	require.Contains(t, dump, "building store")
}

func TestRingTrimsToCapacity(t *testing.T) {
	l := New(logrus.ErrorLevel)
	for i := 0; i < 200; i++ {
		l.Context("f.go", i, "%s", strings.Repeat("x", 50))
	}

	require.LessOrEqual(t, len(l.ring.dump()), ringCapacity)
}
