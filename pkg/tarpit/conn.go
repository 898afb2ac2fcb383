package tarpit

import (
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
)

type ConnState int

const (
	ConnStateAccepted   ConnState = 0
	ConnStateRegistered ConnState = 1
	ConnStateDripping   ConnState = 2
	ConnStateClosing    ConnState = 3
	ConnStateClosed     ConnState = 4
)

// Conn is one trapped connection. The handler that drives it is the
// sole owner; the registry only holds it for counting and inspection.
type Conn struct {
	id         string
	remoteAddr string

	lock  sync.Mutex
	state ConnState
	raw   net.Conn
}

func newConn(raw net.Conn) *Conn {
	return &Conn{
		id:         uuid.NewString(),
		remoteAddr: raw.RemoteAddr().String(),
		state:      ConnStateAccepted,
		raw:        raw,
	}
}

func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address captured at accept time. It stays
// valid after the socket is gone, so log lines in the teardown path can
// still name the peer.
func (c *Conn) RemoteAddr() string {
	return c.remoteAddr
}

func (c *Conn) State() ConnState {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

func (c *Conn) setState(state ConnState) {
	c.lock.Lock()
	c.state = state
	c.lock.Unlock()
}

// Write writes b fully to the socket. A successful return means the
// kernel accepted every byte, which is the strongest flush guarantee
// TCP offers.
func (c *Conn) Write(b []byte) error {
	n, err := c.raw.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("failed to write all data")
	}
	return nil
}

// Close closes the socket once. Calling it on a connection that is
// already closing or closed is a no-op.
func (c *Conn) Close() error {
	c.lock.Lock()
	if c.state == ConnStateClosing || c.state == ConnStateClosed {
		c.lock.Unlock()
		return nil
	}
	c.state = ConnStateClosing
	c.lock.Unlock()

	err := c.raw.Close()
	c.setState(ConnStateClosed)
	return err
}
