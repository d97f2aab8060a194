package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSpeedLivesInFields(t *testing.T) {
	a := cooked()
	flags := a.t.Cflag
	require.NoError(t, a.setBaudRate(Output, B76800))
	require.NoError(t, a.setBaudRate(Input, B7200))

	require.Equal(t, speed(unix.B76800), a.t.Ospeed)
	require.Equal(t, speed(unix.B7200), a.t.Ispeed)
	require.Equal(t, flags, a.t.Cflag)
}

func TestUnrecognizedBaudRate(t *testing.T) {
	a := cooked()
	require.NoError(t, a.setBaudRate(Both, B9600))
	a.t.Ospeed = 12345

	_, _, err := a.baudRate()
	require.ErrorIs(t, err, ErrUnrecognizedBaudRate)
	var berr *BaudRateError
	require.ErrorAs(t, err, &berr)
	require.Equal(t, uint64(12345), berr.Code)
}

func TestDarwinOnlyRates(t *testing.T) {
	rates := BaudRates()
	require.Len(t, rates, 23)
	require.Contains(t, rates, B14400)
	require.Contains(t, rates, B28800)
}
