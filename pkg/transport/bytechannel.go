// Package transport implements ByteChannel, the duplex byte-stream
// collaborator a [pkg/websocket] session reads and writes frames over,
// standing in for the socket listener and TLS termination this module
// treats as external (spec.md §6). It supplies a [net.Conn] adapter for
// production use and an in-memory pipe for tests.
package transport

import (
	"net"
	"time"
)

// ByteChannel is a thread-safe (one reader + one writer) duplex byte
// stream, per spec.md §6's collaborator interface.
type ByteChannel interface {
	// Read fills buf and returns the number of bytes read, or ok=false on
	// a clean close with nothing more to read.
	Read(buf []byte) (n int, ok bool, err error)
	Write(buf []byte) error
	Close() error
	SetReadTimeout(d time.Duration) error
}

// connChannel adapts a [net.Conn] to [ByteChannel].
type connChannel struct {
	conn net.Conn
}

// NewConnChannel wraps conn as a [ByteChannel].
func NewConnChannel(conn net.Conn) ByteChannel {
	return &connChannel{conn: conn}
}

func (c *connChannel) Read(buf []byte) (int, bool, error) {
	n, err := c.conn.Read(buf)
	if err != nil {
		if isClosed(err) {
			return n, false, nil
		}
		return n, false, err
	}
	return n, true, nil
}

func (c *connChannel) Write(buf []byte) error {
	_, err := c.conn.Write(buf)
	return err
}

func (c *connChannel) Close() error { return c.conn.Close() }

func (c *connChannel) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return c.conn.SetReadDeadline(time.Time{})
	}
	return c.conn.SetReadDeadline(time.Now().Add(d))
}
