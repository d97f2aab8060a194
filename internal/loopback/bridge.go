package loopback

import (
	"io"
	"os"

	"github.com/creack/pty"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Bridge opens two pseudo-terminal pairs and copies between their masters,
// so the two slave paths behave like the ends of a null-modem cable.
func Bridge() (*Pair, error) {
	m1, s1, err := pty.Open()
	if err != nil {
		return nil, err
	}
	m2, s2, err := pty.Open()
	if err != nil {
		return nil, multierr.Combine(err, m1.Close(), s1.Close())
	}

	// Raw slaves keep echo from bouncing bytes between the two masters
	// before a test configures the devices itself.
	for _, s := range []*os.File{s1, s2} {
		if _, err := term.MakeRaw(int(s.Fd())); err != nil {
			return nil, multierr.Combine(err, m1.Close(), s1.Close(), m2.Close(), s2.Close())
		}
	}

	var g errgroup.Group
	g.Go(func() error { return pipe(m2, m1) })
	g.Go(func() error { return pipe(m1, m2) })

	// The slaves stay open so the masters do not see EIO while no test
	// holds the device.
	files := []*os.File{m1, m2, s1, s2}
	return &Pair{
		A: s1.Name(),
		B: s2.Name(),
		close: func() error {
			var err error
			for _, f := range files {
				err = multierr.Append(err, f.Close())
			}
			// copy errors caused by the closes above are expected
			g.Wait()
			return err
		},
	}, nil
}

func pipe(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}
