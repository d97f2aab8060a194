package serial

import "golang.org/x/sys/unix"

type (
	tcflag = uint64
	speed  = uint64
)

// Rates only macOS can encode.
const (
	B7200  BaudRate = 7200
	B14400 BaudRate = 14400
	B28800 BaudRate = 28800
	B76800 BaudRate = 76800
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
	{B7200, unix.B7200},
	{B9600, unix.B9600},
	{B14400, unix.B14400},
	{B19200, unix.B19200},
	{B28800, unix.B28800},
	{B38400, unix.B38400},
	{B57600, unix.B57600},
	{B76800, unix.B76800},
	{B115200, unix.B115200},
	{B230400, unix.B230400},
})

const ioctlGetAttr = unix.TIOCGETA

var setAttrRequest = map[ApplyPolicy]uint{
	ApplyNow:   unix.TIOCSETA,
	ApplyDrain: unix.TIOCSETAW,
	ApplyFlush: unix.TIOCSETAF,
}

// TIOCFLUSH takes FREAD/FWRITE from <sys/fcntl.h>.
const (
	fread  = 0x1
	fwrite = 0x2
)

var flushSelector = map[Queue]int{
	QueueInput:  fread,
	QueueOutput: fwrite,
	QueueBoth:   fread | fwrite,
}

// Speeds have dedicated fields holding the rate itself.
func (a *attrs) speeds() (in, out speed) {
	return a.t.Ispeed, a.t.Ospeed
}

func (a *attrs) setSpeed(dir Direction, code speed) {
	if dir != Input {
		a.t.Ospeed = code
	}
	if dir != Output {
		a.t.Ispeed = code
	}
}

func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCDRAIN, 0)
}

func flush(fd int, q Queue) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCFLUSH, flushSelector[q])
}
