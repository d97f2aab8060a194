//go:build linux || darwin

package serial

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAccess is returned when Config.Access holds an unknown mode.
	ErrInvalidAccess = errors.New("invalid access mode")
	// ErrNotTerminal is returned when the opened path is not a terminal device.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrUnrecognizedBaudRate matches every *BaudRateError.
	ErrUnrecognizedBaudRate = errors.New("unrecognized baud rate")
)

// OpenError reports that a descriptor for Path could not be obtained or
// could not be put into raw mode.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SyscallError reports a failed terminal attribute call. Err carries the
// errno reported by the kernel.
type SyscallError struct {
	Op  string
	Err error
}

func (e *SyscallError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SyscallError) Unwrap() error { return e.Err }

// BaudRateError is returned when the device reports a speed code that is not
// in the platform table, typically because it was configured by another
// program.
type BaudRateError struct {
	Code uint64
}

func (e *BaudRateError) Error() string {
	return fmt.Sprintf("unrecognized baud rate code %#x", e.Code)
}

func (e *BaudRateError) Is(target error) bool {
	return target == ErrUnrecognizedBaudRate
}
