package serialport

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Loopback is an in-memory Port whose transmit line feeds its own receive
// line, with the modem control lines cross-wired (DTR reads back on CD, RTS
// on CTS). It stands in for real hardware in tests and self-checks.
type Loopback struct {
	mu          sync.Mutex
	buf         chan byte
	closed      chan struct{}
	closeOnce   sync.Once
	readTimeout time.Duration
	dtr         bool
	rts         bool
}

// NewLoopback creates a loopback port with the given receive buffer size.
func NewLoopback(bufferSize int) *Loopback {
	if bufferSize <= 0 {
		bufferSize = 4096
	}
	return &Loopback{
		buf:    make(chan byte, bufferSize),
		closed: make(chan struct{}),
	}
}

// Write queues data on the receive buffer.
func (l *Loopback) Write(p []byte) (int, error) {
	for i, b := range p {
		select {
		case <-l.closed:
			return i, fmt.Errorf("port is closed")
		case l.buf <- b:
		}
	}
	return len(p), nil
}

// Read blocks until at least one byte is available or the read timeout
// elapses, then drains whatever else is already buffered, mirroring the
// blocking single-byte-then-drain read style of the hardware wrapper.
func (l *Loopback) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	l.mu.Lock()
	timeout := l.readTimeout
	l.mu.Unlock()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case <-l.closed:
		return 0, io.EOF
	case <-timer:
		return 0, ErrTimeout
	case b := <-l.buf:
		p[0] = b
	}

	n := 1
	for n < len(p) {
		select {
		case b := <-l.buf:
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

// Close shuts the port; pending and future reads return io.EOF.
func (l *Loopback) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}

// SetReadTimeout bounds a single Read call. Zero blocks forever.
func (l *Loopback) SetReadTimeout(d time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readTimeout = d
	return nil
}

// SetWriteTimeout is accepted but unused: loopback writes only block when the
// buffer is full.
func (l *Loopback) SetWriteTimeout(_ time.Duration) error {
	return nil
}

// InWaiting returns the number of bytes buffered for reading.
func (l *Loopback) InWaiting() (int, error) {
	return len(l.buf), nil
}

// SetDTR drives the Data Terminal Ready line.
func (l *Loopback) SetDTR(asserted bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dtr = asserted
	return nil
}

// SetRTS drives the Request To Send line.
func (l *Loopback) SetRTS(asserted bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rts = asserted
	return nil
}

// CD reads the Carrier Detect line, cross-wired to DTR.
func (l *Loopback) CD() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dtr, nil
}

// CTS reads the Clear To Send line, cross-wired to RTS.
func (l *Loopback) CTS() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rts, nil
}

// SendBreak holds the line for the given duration. Loopback has no physical
// line, so this only waits.
func (l *Loopback) SendBreak(d time.Duration) error {
	time.Sleep(d)
	return nil
}
