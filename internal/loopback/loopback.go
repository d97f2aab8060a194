// Package loopback provisions pairs of connected pseudo-terminals for tests.
// Bytes written to one end of a Pair can be read from the other.
package loopback

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Pair is two linked terminal device paths.
type Pair struct {
	A, B  string
	close func() error
}

// Close tears the link down. The paths stop working afterwards.
func (p *Pair) Close() error {
	return p.close()
}

// New returns a Pair backed by socat when it is installed and by an
// in-process bridge otherwise. The pair is closed when the test ends.
func New(t testing.TB) *Pair {
	t.Helper()

	var (
		p   *Pair
		err error
	)
	if _, lookErr := exec.LookPath("socat"); lookErr == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err = Socat(ctx)
	} else {
		p, err = Bridge()
	}
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}
