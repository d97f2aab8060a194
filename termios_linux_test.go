package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSpeedLivesInCflag(t *testing.T) {
	a := cooked()
	require.NoError(t, a.setBaudRate(Output, B57600))
	require.Equal(t, tcflag(unix.B57600), a.t.Cflag&unix.CBAUD)

	require.NoError(t, a.setBaudRate(Input, B300))
	require.Equal(t, tcflag(unix.B300), a.t.Cflag>>ibshift&unix.CBAUD)
	require.Equal(t, tcflag(unix.B57600), a.t.Cflag&unix.CBAUD)
	require.NotZero(t, a.t.Cflag&unix.CREAD)
}

func TestInputB0FollowsOutput(t *testing.T) {
	a := cooked()
	require.NoError(t, a.setBaudRate(Both, B4800))
	require.NoError(t, a.setBaudRate(Input, B0))
	require.NoError(t, a.setBaudRate(Output, B19200))

	in, out, err := a.baudRate()
	require.NoError(t, err)
	require.Equal(t, B19200, in)
	require.Equal(t, B19200, out)
}

func TestUnrecognizedBaudRate(t *testing.T) {
	a := cooked()
	require.NoError(t, a.setBaudRate(Both, B9600))

	// CBAUD has room for codes the table lacks, BOTHER among them; the
	// layout differs between architectures.
	unknown, found := speed(0), false
	for code := speed(0); code <= unix.CBAUD; code++ {
		if _, known := baudRates.byCode[code]; !known && code&^unix.CBAUD == 0 {
			unknown, found = code, true
			break
		}
	}
	require.True(t, found)
	a.t.Cflag &^= unix.CBAUD
	a.t.Cflag |= unknown

	_, _, err := a.baudRate()
	require.ErrorIs(t, err, ErrUnrecognizedBaudRate)
	var berr *BaudRateError
	require.ErrorAs(t, err, &berr)
	require.Equal(t, uint64(unknown), berr.Code)
}

func TestLinuxOnlyRates(t *testing.T) {
	rates := BaudRates()
	require.Len(t, rates, 31)
	require.Contains(t, rates, B4000000)
	require.Contains(t, rates, B1800)
}
