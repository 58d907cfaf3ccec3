package transport

import (
	"errors"
	"io"
	"net"
)

// NewPipe returns a pair of connected, in-memory [ByteChannel]s backed by
// [net.Pipe], for tests that need two ends of a duplex stream without a
// real socket (e.g. [pkg/wsecho]'s loopback echo service).
func NewPipe() (client, server ByteChannel) {
	c, s := net.Pipe()
	return NewConnChannel(c), NewConnChannel(s)
}

// isClosed reports whether err is one of the "closed connection" errors
// (io.EOF or net.ErrClosed) that net.Conn implementations return, which
// connChannel.Read turns into an ok=false result, matching
// ByteChannel.Read's "Option<usize>" contract from spec.md §6.
func isClosed(err error) bool {
	return err != nil && (errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed))
}
