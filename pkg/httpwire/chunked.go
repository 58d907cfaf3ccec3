package httpwire

import (
	"io"
	"strconv"
	"strings"
)

// chunkedReader decodes RFC 7230 §4.1 chunked transfer coding off the
// shared [Reader], promoting the trailer header block into tb once the
// terminating zero-length chunk is consumed (spec.md §4.1 step 5).
type chunkedReader struct {
	r         *Reader
	remaining uint64
	done      bool
	tb        *trailerBox
}

func newChunkedReader(r *Reader, tb *trailerBox) *chunkedReader {
	return &chunkedReader{r: r, tb: tb}
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.done {
		return 0, io.EOF
	}
	if c.remaining == 0 {
		if err := c.nextChunk(); err != nil {
			return 0, err
		}
		if c.done {
			return 0, io.EOF
		}
	}

	want := len(p)
	if uint64(want) > c.remaining {
		want = int(c.remaining)
	}
	n, err := c.r.br.Read(p[:want])
	c.remaining -= uint64(n)
	if err != nil {
		return n, newError(Truncated, "chunk payload read failed", err)
	}
	if c.remaining == 0 {
		if _, err := c.r.readLine(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *chunkedReader) Close() error { return nil }

func (c *chunkedReader) nextChunk() error {
	line, err := c.r.readLine()
	if err != nil {
		return err
	}
	sizeStr := line
	if i := strings.IndexByte(line, ';'); i >= 0 {
		sizeStr = line[:i] // chunk extensions are ignored, per spec.md §4.1.
	}
	size, convErr := strconv.ParseUint(strings.TrimSpace(sizeStr), 16, 64)
	if convErr != nil {
		return newError(MalformedMessage, "invalid chunk size", convErr)
	}

	if size == 0 {
		trailers, err := c.r.readHeaderBlock()
		if err != nil {
			return err
		}
		c.tb.set(trailers)
		c.done = true
		return nil
	}
	c.remaining = size
	return nil
}
