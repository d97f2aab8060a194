//go:build linux || darwin

package serial

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// attrs is an in-memory copy of a device's terminal attributes. Accessors
// only touch memory; fetch and push are the sole syscall boundaries.
type attrs struct {
	t unix.Termios
}

// fetch reads the current attributes of fd from the kernel.
func fetch(fd int) (*attrs, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetAttr)
	if err != nil {
		return nil, &SyscallError{Op: "tcgetattr", Err: err}
	}
	return &attrs{t: *t}, nil
}

// push writes the whole structure back to fd. The kernel either accepts all
// of it or none of it.
func (a *attrs) push(fd int, policy ApplyPolicy) error {
	req, ok := setAttrRequest[policy]
	if !ok {
		return fmt.Errorf("invalid apply policy %d", policy)
	}
	if err := unix.IoctlSetTermios(fd, req, &a.t); err != nil {
		return &SyscallError{Op: "tcsetattr", Err: err}
	}
	return nil
}

// makeRaw applies the cfmakeraw(3) transform: no line editing, echo,
// signals, or input/output translation, 8-bit characters and reads that
// return as soon as one byte is available.
func (a *attrs) makeRaw() {
	a.t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	a.t.Oflag &^= unix.OPOST
	a.t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	a.t.Cflag &^= unix.CSIZE | unix.PARENB
	a.t.Cflag |= unix.CS8
	a.t.Cc[unix.VMIN] = 1
	a.t.Cc[unix.VTIME] = 0
}

func (a *attrs) baudRate() (in, out BaudRate, err error) {
	inCode, outCode := a.speeds()
	if in, err = baudRates.decode(inCode); err != nil {
		return 0, 0, err
	}
	if out, err = baudRates.decode(outCode); err != nil {
		return 0, 0, err
	}
	return in, out, nil
}

func (a *attrs) setBaudRate(dir Direction, rate BaudRate) error {
	code, err := baudRates.encode(rate)
	if err != nil {
		return err
	}
	switch dir {
	case Both, Input, Output:
	default:
		return fmt.Errorf("invalid direction %d", dir)
	}
	a.setSpeed(dir, code)
	return nil
}

func (a *attrs) dataBits() DataBits {
	switch a.t.Cflag & unix.CSIZE {
	case unix.CS8:
		return Data8
	case unix.CS7:
		return Data7
	case unix.CS6:
		return Data6
	default:
		return Data5
	}
}

func (a *attrs) setDataBits(bits DataBits) error {
	var size tcflag
	switch bits {
	case Data5:
		size = unix.CS5
	case Data6:
		size = unix.CS6
	case Data7:
		size = unix.CS7
	case Data8:
		size = unix.CS8
	default:
		return fmt.Errorf("invalid data bits %d", bits)
	}
	a.t.Cflag &^= unix.CSIZE
	a.t.Cflag |= size
	return nil
}

func (a *attrs) parity() Parity {
	switch {
	case a.t.Cflag&unix.PARENB == 0:
		return ParityNone
	case a.t.Cflag&unix.PARODD != 0:
		return ParityOdd
	default:
		return ParityEven
	}
}

func (a *attrs) setParity(parity Parity) error {
	switch parity {
	case ParityNone:
		a.t.Cflag &^= unix.PARENB | unix.PARODD
	case ParityEven:
		a.t.Cflag |= unix.PARENB
		a.t.Cflag &^= unix.PARODD
	case ParityOdd:
		a.t.Cflag |= unix.PARENB | unix.PARODD
	default:
		return fmt.Errorf("invalid parity %d", parity)
	}
	return nil
}

const softwareFlow = unix.IXON | unix.IXOFF | unix.IXANY

// flowControl reports hardware whenever RTS/CTS is on, whatever the XON/XOFF
// bits say.
func (a *attrs) flowControl() FlowControl {
	switch {
	case a.t.Cflag&unix.CRTSCTS != 0:
		return FlowHardware
	case a.t.Iflag&softwareFlow != 0:
		return FlowSoftware
	default:
		return FlowNone
	}
}

func (a *attrs) setFlowControl(flow FlowControl) error {
	switch flow {
	case FlowNone:
		a.t.Cflag &^= unix.CRTSCTS
		a.t.Iflag &^= softwareFlow
	case FlowSoftware:
		a.t.Cflag &^= unix.CRTSCTS
		a.t.Iflag |= softwareFlow
	case FlowHardware:
		a.t.Cflag |= unix.CRTSCTS
		a.t.Iflag &^= softwareFlow
	default:
		return fmt.Errorf("invalid flow control %d", flow)
	}
	return nil
}

func (a *attrs) stopBits() StopBits {
	if a.t.Cflag&unix.CSTOPB != 0 {
		return Stop2
	}
	return Stop1
}

func (a *attrs) setStopBits(bits StopBits) error {
	switch bits {
	case Stop1:
		a.t.Cflag &^= unix.CSTOPB
	case Stop2:
		a.t.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("invalid stop bits %d", bits)
	}
	return nil
}

func (a *attrs) blockingMode() BlockingMode {
	return BlockingMode{
		Bytes:       a.t.Cc[unix.VMIN],
		Deciseconds: a.t.Cc[unix.VTIME],
	}
}

func (a *attrs) setBlockingMode(mode BlockingMode) {
	a.t.Cc[unix.VMIN] = mode.Bytes
	a.t.Cc[unix.VTIME] = mode.Deciseconds
}
