//go:build linux || darwin

package serial

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Port is an open serial device in raw mode.
//
// Every getter reads the attributes from the kernel and every setter reads,
// changes one setting and writes the whole structure back, so a Port never
// acts on stale state. A Port does no locking: callers sharing one between
// goroutines must serialize configuration changes themselves.
type Port struct {
	fd        int
	file      *os.File
	apply     ApplyPolicy
	logger    *zap.Logger
	closeOnce sync.Once
	closed    atomic.Bool
}

// Open opens cfg.Device without making it the controlling terminal and puts
// it into raw mode. The descriptor is closed again if any step fails.
func Open(cfg Config) (*Port, error) {
	if err := cfg.validate(); err != nil {
		return nil, &OpenError{Path: cfg.Device, Err: err}
	}
	flags, _ := cfg.Access.openFlags()

	// O_NONBLOCK keeps open from waiting on carrier detect; it is cleared
	// before the descriptor is handed out.
	fd, err := unix.Open(cfg.Device, flags|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &OpenError{Path: cfg.Device, Err: err}
	}

	logger := cfg.logger()
	if err := setup(fd, cfg, logger); err != nil {
		return nil, &OpenError{Path: cfg.Device, Err: multierr.Append(err, unix.Close(fd))}
	}
	logger.Debug("opened serial device", zap.Stringer("access", cfg.Access))

	// The descriptor is blocking again, so os.File performs plain read and
	// write syscalls and VMIN/VTIME keep their meaning.
	return &Port{
		fd:     fd,
		file:   os.NewFile(uintptr(fd), cfg.Device),
		apply:  cfg.Apply,
		logger: logger,
	}, nil
}

func setup(fd int, cfg Config, logger *zap.Logger) error {
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if cfg.Exclusive {
		if err := unix.IoctlSetInt(fd, unix.TIOCEXCL, 0); err != nil {
			return &SyscallError{Op: "TIOCEXCL", Err: err}
		}
	}

	a, err := fetch(fd)
	if err != nil {
		return err
	}
	a.makeRaw()
	if err := a.push(fd, cfg.Apply); err != nil {
		return err
	}
	logger.Debug("switched to raw mode")

	if err := unix.SetNonblock(fd, false); err != nil {
		return fmt.Errorf("clear O_NONBLOCK: %w", err)
	}
	return nil
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string { return p.file.Name() }

// Fd returns the file descriptor, or -1 once the Port is closed. It stays
// owned by the Port.
func (p *Port) Fd() int {
	if p.closed.Load() {
		return -1
	}
	return p.fd
}

// Read reads up to len(b) bytes, blocking as the current BlockingMode
// dictates. A read that times out with no data returns 0, io.EOF.
func (p *Port) Read(b []byte) (int, error) {
	return p.file.Read(b)
}

// Write writes b to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

// Close releases the descriptor. Subsequent calls are no-ops. A Port that is
// dropped without Close has its descriptor released by the os.File
// finalizer.
func (p *Port) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		err = p.file.Close()
		if err != nil {
			p.logger.Warn("closing serial device", zap.Error(err))
		}
	})
	return err
}

// BaudRate returns the input and output speeds. It fails with a
// *BaudRateError if the device uses a speed missing from the platform table.
func (p *Port) BaudRate() (in, out BaudRate, err error) {
	a, err := p.current()
	if err != nil {
		return 0, 0, err
	}
	return a.baudRate()
}

// SetBaudRate changes the input speed, the output speed or both. Setting the
// input speed to B0 makes it follow the output speed.
func (p *Port) SetBaudRate(dir Direction, rate BaudRate) error {
	return p.update([]zap.Field{zap.Stringer("direction", dir), zap.Stringer("baud_rate", rate)}, func(a *attrs) error {
		return a.setBaudRate(dir, rate)
	})
}

// DataBits returns the character size.
func (p *Port) DataBits() (DataBits, error) {
	a, err := p.current()
	if err != nil {
		return 0, err
	}
	return a.dataBits(), nil
}

// SetDataBits changes the character size.
func (p *Port) SetDataBits(bits DataBits) error {
	return p.update([]zap.Field{zap.Stringer("data_bits", bits)}, func(a *attrs) error {
		return a.setDataBits(bits)
	})
}

// Parity returns the parity check in use.
func (p *Port) Parity() (Parity, error) {
	a, err := p.current()
	if err != nil {
		return 0, err
	}
	return a.parity(), nil
}

// SetParity enables even or odd parity, or disables it.
func (p *Port) SetParity(parity Parity) error {
	return p.update([]zap.Field{zap.Stringer("parity", parity)}, func(a *attrs) error {
		return a.setParity(parity)
	})
}

// FlowControl returns the flow control in use.
func (p *Port) FlowControl() (FlowControl, error) {
	a, err := p.current()
	if err != nil {
		return 0, err
	}
	return a.flowControl(), nil
}

// SetFlowControl switches between none, XON/XOFF and RTS/CTS. Both the
// control and input flags change in a single write.
func (p *Port) SetFlowControl(flow FlowControl) error {
	return p.update([]zap.Field{zap.Stringer("flow_control", flow)}, func(a *attrs) error {
		return a.setFlowControl(flow)
	})
}

// StopBits returns the number of stop bits per character.
func (p *Port) StopBits() (StopBits, error) {
	a, err := p.current()
	if err != nil {
		return 0, err
	}
	return a.stopBits(), nil
}

// SetStopBits changes the number of stop bits per character.
func (p *Port) SetStopBits(bits StopBits) error {
	return p.update([]zap.Field{zap.Stringer("stop_bits", bits)}, func(a *attrs) error {
		return a.setStopBits(bits)
	})
}

// BlockingMode returns the current VMIN/VTIME pair.
func (p *Port) BlockingMode() (BlockingMode, error) {
	a, err := p.current()
	if err != nil {
		return BlockingMode{}, err
	}
	return a.blockingMode(), nil
}

// SetBlockingMode changes VMIN and VTIME, which govern how long Read waits.
func (p *Port) SetBlockingMode(mode BlockingMode) error {
	fields := []zap.Field{
		zap.Uint8("vmin", mode.Bytes),
		zap.Uint8("vtime", mode.Deciseconds),
	}
	return p.update(fields, func(a *attrs) error {
		a.setBlockingMode(mode)
		return nil
	})
}

// Drain blocks until everything written has been transmitted.
func (p *Port) Drain() error {
	if p.closed.Load() {
		return os.ErrClosed
	}
	if err := drain(p.fd); err != nil {
		return &SyscallError{Op: "tcdrain", Err: err}
	}
	return nil
}

// Flush discards data in the selected kernel queue.
func (p *Port) Flush(q Queue) error {
	if _, ok := flushSelector[q]; !ok {
		return fmt.Errorf("invalid queue %d", q)
	}
	if p.closed.Load() {
		return os.ErrClosed
	}
	if err := flush(p.fd, q); err != nil {
		return &SyscallError{Op: "tcflush", Err: err}
	}
	return nil
}

// current fetches the attributes of the open descriptor. After Close the
// descriptor number may belong to another file, so it is never used again.
func (p *Port) current() (*attrs, error) {
	if p.closed.Load() {
		return nil, os.ErrClosed
	}
	return fetch(p.fd)
}

// update fetches the current attributes, applies mutate and pushes the
// result. Nothing is retried.
func (p *Port) update(fields []zap.Field, mutate func(*attrs) error) error {
	a, err := p.current()
	if err != nil {
		return err
	}
	if err := mutate(a); err != nil {
		return err
	}
	if err := a.push(p.fd, p.apply); err != nil {
		return err
	}
	p.logger.Debug("updated line settings", fields...)
	return nil
}
