package led

import (
	"fmt"
	"io"

	"go.uber.org/atomic"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Conn carries packets over any periph connection as write-only
// transactions.
type Conn struct {
	c      conn.Conn
	frames atomic.Uint64
}

func NewConn(c conn.Conn) *Conn { return &Conn{c: c} }

func (c *Conn) WriteBytes(p []byte) error {
	if err := c.c.Tx(p, nil); err != nil {
		return fmt.Errorf("led: %s: %v: %w", c.c, err, rogerr.ErrIO)
	}
	c.frames.Inc()
	return nil
}

// Written is the number of packets accepted so far.
func (c *Conn) Written() uint64 { return c.frames.Load() }

func (c *Conn) String() string { return c.c.String() }

func (c *Conn) Close() error {
	if cl, ok := c.c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// NewSim is a Conn that accepts and discards every packet.
func NewSim() *Conn {
	return NewConn(&conntest.Discard{D: conn.Half})
}
