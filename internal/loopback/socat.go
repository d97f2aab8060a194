package loopback

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Socat starts `socat -d -d pty pty` and returns the two device paths it
// reports on stderr. ctx bounds only the wait for those paths; the process
// lives until Close.
func Socat(ctx context.Context) (*Pair, error) {
	cmd := exec.Command("socat", "-d", "-d", "pty,raw,echo=0", "pty,raw,echo=0")
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start socat: %w", err)
	}
	paths := make(chan []string, 1)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		paths <- scanDevices(stderr, 2)
		// socat blocks once the pipe fills up
		io.Copy(io.Discard, stderr)
	}()

	// Wait closes the stderr pipe, so it must not run before the reader
	// above has seen EOF.
	stop := func() error {
		err := cmd.Process.Kill()
		<-drained
		cmd.Wait()
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return err
	}

	select {
	case devs := <-paths:
		if len(devs) < 2 {
			stop()
			return nil, errors.New("socat exited before reporting two devices")
		}
		return &Pair{A: devs[0], B: devs[1], close: stop}, nil
	case <-ctx.Done():
		stop()
		return nil, fmt.Errorf("waiting for socat devices: %w", ctx.Err())
	}
}

// scanDevices collects up to n paths from lines like
// "2024/01/02 15:04:05 socat[123] N PTY is /dev/pts/4".
func scanDevices(r io.Reader, n int) []string {
	var devs []string
	sc := bufio.NewScanner(r)
	for len(devs) < n && sc.Scan() {
		_, dev, ok := strings.Cut(strings.TrimSpace(sc.Text()), " is ")
		if ok && strings.HasPrefix(dev, "/") {
			devs = append(devs, dev)
		}
	}
	return devs
}
