package serial

import "golang.org/x/sys/unix"

type (
	tcflag = uint32
	speed  = uint32
)

// Rates only Linux can encode.
const (
	B460800  BaudRate = 460800
	B500000  BaudRate = 500000
	B576000  BaudRate = 576000
	B921600  BaudRate = 921600
	B1000000 BaudRate = 1000000
	B1152000 BaudRate = 1152000
	B1500000 BaudRate = 1500000
	B2000000 BaudRate = 2000000
	B2500000 BaudRate = 2500000
	B3000000 BaudRate = 3000000
	B3500000 BaudRate = 3500000
	B4000000 BaudRate = 4000000
)

var baudRates = newBaudTable([]baudEntry{
	{B0, unix.B0},
	{B50, unix.B50},
	{B75, unix.B75},
	{B110, unix.B110},
	{B134, unix.B134},
	{B150, unix.B150},
	{B200, unix.B200},
	{B300, unix.B300},
	{B600, unix.B600},
	{B1200, unix.B1200},
	{B1800, unix.B1800},
	{B2400, unix.B2400},
	{B4800, unix.B4800},
	{B9600, unix.B9600},
	{B19200, unix.B19200},
	{B38400, unix.B38400},
	{B57600, unix.B57600},
	{B115200, unix.B115200},
	{B230400, unix.B230400},
	{B460800, unix.B460800},
	{B500000, unix.B500000},
	{B576000, unix.B576000},
	{B921600, unix.B921600},
	{B1000000, unix.B1000000},
	{B1152000, unix.B1152000},
	{B1500000, unix.B1500000},
	{B2000000, unix.B2000000},
	{B2500000, unix.B2500000},
	{B3000000, unix.B3000000},
	{B3500000, unix.B3500000},
	{B4000000, unix.B4000000},
})

const ioctlGetAttr = unix.TCGETS

var setAttrRequest = map[ApplyPolicy]uint{
	ApplyNow:   unix.TCSETS,
	ApplyDrain: unix.TCSETSW,
	ApplyFlush: unix.TCSETSF,
}

var flushSelector = map[Queue]int{
	QueueInput:  unix.TCIFLUSH,
	QueueOutput: unix.TCOFLUSH,
	QueueBoth:   unix.TCIOFLUSH,
}

// The input speed lives in the CIBAUD bits, CBAUD shifted by IBSHIFT. Zero
// there means the input speed follows the output speed.
const ibshift = 16

func (a *attrs) speeds() (in, out speed) {
	out = a.t.Cflag & unix.CBAUD
	in = a.t.Cflag >> ibshift & unix.CBAUD
	if in == unix.B0 {
		in = out
	}
	return in, out
}

func (a *attrs) setSpeed(dir Direction, code speed) {
	if dir != Input {
		a.t.Cflag &^= unix.CBAUD
		a.t.Cflag |= code
	}
	if dir != Output {
		a.t.Cflag &^= unix.CBAUD << ibshift
		a.t.Cflag |= code << ibshift
	}
}

// drain is tcdrain(3): TCSBRK with a non-zero argument waits for output
// without sending a break.
func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}

func flush(fd int, q Queue) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, flushSelector[q])
}
