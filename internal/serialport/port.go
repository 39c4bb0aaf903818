// Package serialport declares the serial communication contract the gateway
// hardware suites are written against: a blocking, byte-oriented read/write
// channel with configurable timeouts and line-state control. No hardware
// driver lives here; the package carries the contract plus a loopback
// implementation for tests and self-checks.
package serialport

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Port is a blocking byte-oriented serial channel.
type Port interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds a single Read call. Zero blocks forever.
	SetReadTimeout(d time.Duration) error

	// SetWriteTimeout bounds a single Write call. Zero blocks forever.
	SetWriteTimeout(d time.Duration) error

	// InWaiting returns the number of bytes buffered for reading.
	InWaiting() (int, error)

	// SetDTR drives the Data Terminal Ready line.
	SetDTR(asserted bool) error

	// SetRTS drives the Request To Send line.
	SetRTS(asserted bool) error

	// CD reads the Carrier Detect line.
	CD() (bool, error)

	// CTS reads the Clear To Send line.
	CTS() (bool, error)

	// SendBreak holds the transmit line in a break condition.
	SendBreak(d time.Duration) error
}

// ErrTimeout is returned by Read when the read timeout elapses with no data.
var ErrTimeout = fmt.Errorf("serial read timed out")

// Printable renders raw serial traffic in a human-readable way: each byte as
// a width-3 decimal, then the ASCII rendering with unprintable bytes as dots.
func Printable(data []byte) string {
	if len(data) == 0 {
		return "    "
	}
	bytePart := make([]string, len(data))
	var ascii strings.Builder
	for i, b := range data {
		bytePart[i] = fmt.Sprintf("%3d", b)
		if b > 32 && b <= 126 {
			ascii.WriteByte(b)
		} else {
			ascii.WriteByte('.')
		}
	}
	return strings.Join(bytePart, " ") + "    " + ascii.String()
}
