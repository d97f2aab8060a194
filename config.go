//go:build linux || darwin

package serial

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Access is the read/write mode a device is opened with.
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadWrite:
		return "read/write"
	case ReadOnly:
		return "read"
	case WriteOnly:
		return "write"
	}
	return fmt.Sprintf("Access(%d)", int(a))
}

func (a Access) openFlags() (int, error) {
	switch a {
	case ReadWrite:
		return unix.O_RDWR, nil
	case ReadOnly:
		return unix.O_RDONLY, nil
	case WriteOnly:
		return unix.O_WRONLY, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidAccess, int(a))
}

// ApplyPolicy controls when a change to the line discipline takes effect
// relative to I/O already queued on the device.
type ApplyPolicy int

const (
	// ApplyNow changes the attributes immediately (TCSANOW). Writes still in
	// the output queue go out with the new settings.
	ApplyNow ApplyPolicy = iota
	// ApplyDrain waits until queued output has been transmitted (TCSADRAIN).
	ApplyDrain
	// ApplyFlush waits for output like ApplyDrain and discards unread input
	// (TCSAFLUSH).
	ApplyFlush
)

// Config holds the parameters for opening a serial device.
type Config struct {
	Device string
	Access Access      // default ReadWrite
	Apply  ApplyPolicy // default ApplyNow

	// Exclusive sets TIOCEXCL after opening so that further opens of the
	// same device fail with EBUSY. Root can still open it.
	Exclusive bool

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

func (c Config) validate() error {
	if c.Device == "" {
		return errors.New("no device path")
	}
	if _, err := c.Access.openFlags(); err != nil {
		return err
	}
	if _, ok := setAttrRequest[c.Apply]; !ok {
		return fmt.Errorf("invalid apply policy %d", c.Apply)
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	l := c.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return l.Named("serial").With(zap.String("device", c.Device))
}
