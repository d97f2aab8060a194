//go:build linux || darwin

package serial

import "fmt"

// DataBits is the number of data bits per character.
type DataBits int

const (
	Data5 DataBits = 5
	Data6 DataBits = 6
	Data7 DataBits = 7
	Data8 DataBits = 8
)

func (d DataBits) String() string {
	return fmt.Sprintf("%d data bits", int(d))
}

// Parity is the parity check applied to each character.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	}
	return fmt.Sprintf("Parity(%d)", int(p))
}

// FlowControl selects how transmission is paused when the receiver falls
// behind. Hardware and software flow control are mutually exclusive.
type FlowControl int

const (
	FlowNone FlowControl = iota
	FlowSoftware // XON/XOFF
	FlowHardware // RTS/CTS
)

func (f FlowControl) String() string {
	switch f {
	case FlowNone:
		return "none"
	case FlowSoftware:
		return "software"
	case FlowHardware:
		return "hardware"
	}
	return fmt.Sprintf("FlowControl(%d)", int(f))
}

// StopBits is the number of stop bits per character.
type StopBits int

const (
	Stop1 StopBits = 1
	Stop2 StopBits = 2
)

func (s StopBits) String() string {
	return fmt.Sprintf("%d stop bits", int(s))
}

// BlockingMode mirrors the VMIN and VTIME control characters.
//
// Bytes is the minimum number of bytes a read waits for; Deciseconds is the
// inter-byte timeout in tenths of a second. See termios(3) for how the two
// interact; both zero makes reads return immediately.
type BlockingMode struct {
	Bytes       uint8
	Deciseconds uint8
}

// Direction selects which speed a baud rate change applies to.
type Direction int

const (
	Both Direction = iota
	Input
	Output
)

func (d Direction) String() string {
	switch d {
	case Both:
		return "both"
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Queue selects the kernel buffer discarded by Port.Flush.
type Queue int

const (
	QueueInput  Queue = iota // data received but not read
	QueueOutput              // data written but not transmitted
	QueueBoth
)
