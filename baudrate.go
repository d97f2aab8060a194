//go:build linux || darwin

package serial

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnsupportedBaudRate is returned when asked to set a BaudRate that has no
// code on the running platform.
var ErrUnsupportedBaudRate = errors.New("baud rate not supported on this platform")

// BaudRate names a line speed. The value is the nominal rate in bits per
// second; the code stored in the terminal attributes is looked up in the
// platform table and is never derived from the value arithmetically.
type BaudRate uint32

// Rates shared by every supported platform. Platform specific rates are
// declared next to the platform tables.
const (
	B0      BaudRate = 0
	B50     BaudRate = 50
	B75     BaudRate = 75
	B110    BaudRate = 110
	B134    BaudRate = 134
	B150    BaudRate = 150
	B200    BaudRate = 200
	B300    BaudRate = 300
	B600    BaudRate = 600
	B1200   BaudRate = 1200
	B1800   BaudRate = 1800
	B2400   BaudRate = 2400
	B4800   BaudRate = 4800
	B9600   BaudRate = 9600
	B19200  BaudRate = 19200
	B38400  BaudRate = 38400
	B57600  BaudRate = 57600
	B115200 BaudRate = 115200
	B230400 BaudRate = 230400
)

// Rate returns the nominal rate in bits per second.
func (b BaudRate) Rate() int { return int(b) }

func (b BaudRate) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

type baudEntry struct {
	rate BaudRate
	code speed
}

type baudTable struct {
	entries []baudEntry
	byRate  map[BaudRate]speed
	byCode  map[speed]BaudRate
}

// newBaudTable indexes entries in both directions. A rate or code listed
// twice is a programming error in the platform table.
func newBaudTable(entries []baudEntry) *baudTable {
	t := &baudTable{
		entries: entries,
		byRate:  make(map[BaudRate]speed, len(entries)),
		byCode:  make(map[speed]BaudRate, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.byRate[e.rate]; dup {
			panic(fmt.Sprintf("serial: baud rate %v listed twice", e.rate))
		}
		if _, dup := t.byCode[e.code]; dup {
			panic(fmt.Sprintf("serial: baud code %#x listed twice", e.code))
		}
		t.byRate[e.rate] = e.code
		t.byCode[e.code] = e.rate
	}
	return t
}

func (t *baudTable) encode(rate BaudRate) (speed, error) {
	code, ok := t.byRate[rate]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedBaudRate, rate)
	}
	return code, nil
}

func (t *baudTable) decode(code speed) (BaudRate, error) {
	rate, ok := t.byCode[code]
	if !ok {
		return 0, &BaudRateError{Code: uint64(code)}
	}
	return rate, nil
}

// BaudRates returns every rate the running platform can encode, slowest
// first.
func BaudRates() []BaudRate {
	rates := make([]BaudRate, len(baudRates.entries))
	for i, e := range baudRates.entries {
		rates[i] = e.rate
	}
	return rates
}
