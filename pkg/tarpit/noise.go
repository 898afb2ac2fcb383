package tarpit

import (
	"errors"
	"net"
)

// IsNoise reports whether err is expected transport-level disconnect
// noise: the peer reset or aborted the connection, or the pipe broke
// under a write. Scanners and bots produce these constantly, so they are
// logged as lifecycle events rather than errors. Everything else is a
// genuine failure and must be surfaced in full.
//
// The same predicate is applied on every path a transport error can take
// (drip write, teardown, accept), so abrupt disconnects never escalate
// regardless of where they surface.
func IsNoise(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, errConnReset) ||
		errors.Is(err, errConnAborted) ||
		errors.Is(err, errBrokenPipe)
}

// IsCloseNoise reports whether err can be ignored while tearing down a
// connection: disconnect noise plus the generic already-closed error.
func IsCloseNoise(err error) bool {
	return IsNoise(err) || errors.Is(err, net.ErrClosed)
}
