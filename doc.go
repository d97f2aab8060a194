// Package serial opens a serial device as a raw byte stream and lets the
// caller inspect and change its line discipline: baud rate, data bits, stop
// bits, parity, flow control and read blocking behavior.
//
// The package talks to the terminal driver through the termios get/set
// attribute ioctls. Every getter fetches the current attributes from the
// kernel, and every setter fetches, changes one setting and writes the whole
// structure back, so settings changed by other programs are never
// overwritten with stale values.
//
// Features:
//   - Raw mode on open (cfmakeraw semantics), no controlling terminal
//   - Portable names for settings; platform speed codes stay internal
//   - Linux and macOS bit layouts, selected at build time
//   - Optional exclusive access (TIOCEXCL) and drain/flush apply policies
//   - Structured debug logging through zap
//   - PTY-based tests
//
// This package does **not** support Windows, and it does no buffering: Read
// and Write map directly onto read(2) and write(2).
//
// Example usage:
//
//	port, err := serial.Open(serial.Config{Device: "/dev/ttyUSB0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	if err := port.SetBaudRate(serial.Both, serial.B115200); err != nil {
//	    log.Fatal(err)
//	}
//	// wait up to half a second for the first byte of each read
//	if err := port.SetBlockingMode(serial.BlockingMode{Deciseconds: 5}); err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := make([]byte, 128)
//	n, err := port.Read(buf)
//
// Reads block according to the BlockingMode (VMIN/VTIME). There is no other
// timeout or cancellation; use poll(2) on Port.Fd for finer control.
package serial
