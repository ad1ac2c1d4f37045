package listener

import (
	"bytes"
	"io"
)

// lineConn normalizes line endings for remote clients. Telnet clients send
// \r\n and SSH clients without a PTY may send a bare \r; the game only sees
// \n. Output gets \r\n.
type lineConn struct {
	rw io.ReadWriter

	// afterCR is set when the last byte read was \r, so a \n that arrives
	// in the next read belongs to the same line ending.
	afterCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\r':
				p[out] = '\n'
				out++
				c.afterCR = true
			case b == '\n' && c.afterCR:
				c.afterCR = false
			default:
				p[out] = b
				out++
				c.afterCR = false
			}
		}

		// A read holding only the \n of a split \r\n yields nothing; read
		// again rather than report an empty read.
		if out > 0 || n == 0 || err != nil {
			return out, err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
