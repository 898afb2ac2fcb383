package tarpit

import (
	"context"
	"math/rand"
	"time"

	"github.com/blend/go-sdk/logger"
)

// handler drives one trapped connection from registration through close:
// registered -> dripping (looped) -> closing -> closed. The only exits
// from the drip loop are a failed write or context cancellation.
type handler struct {
	delay    time.Duration
	registry *Registry
	conn     *Conn
}

func newHandler(delay time.Duration, registry *Registry, conn *Conn) *handler {
	return &handler{
		delay:    delay,
		registry: registry,
		conn:     conn,
	}
}

// Run blocks until the connection dies. Safe to invoke exactly once.
func (h *handler) Run(ctx context.Context) {
	log := logger.GetLogger(ctx)

	h.registry.Add(h.conn)
	h.conn.setState(ConnStateRegistered)
	logger.MaybeInfofContext(ctx, log, "Connection trapped: %s id=%s", h.conn.RemoteAddr(), h.conn.ID())

	defer h.cleanup(ctx)

	err := h.drip(ctx)
	switch {
	case err == nil:
		// cancelled; cleanup logs the close
	case IsNoise(err):
		logger.MaybeInfofContext(ctx, log, "Connection lost: %s id=%s", h.conn.RemoteAddr(), h.conn.ID())
	default:
		logger.MaybeErrorfContext(ctx, log, "Error (%s id=%s): %v", h.conn.RemoteAddr(), h.conn.ID(), err)
	}
}

// drip sends one random byte per delay interval, forever. The byte is
// cryptographically irrelevant; it only defeats client-side idle
// timeouts. Nothing is ever sent before one full interval has elapsed.
func (h *handler) drip(ctx context.Context) error {
	h.conn.setState(ConnStateDripping)
	timer := time.NewTimer(h.delay)
	defer timer.Stop()
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		buf[0] = byte(rand.Intn(256))
		if err := h.conn.Write(buf); err != nil {
			return err
		}
		timer.Reset(h.delay)
	}
}

// cleanup runs exactly once per handler regardless of exit path: the
// connection leaves the registry, the socket is closed if the peer did
// not already close it, and close-time noise is suppressed.
func (h *handler) cleanup(ctx context.Context) {
	log := logger.GetLogger(ctx)
	h.registry.Remove(h.conn)
	if err := h.conn.Close(); err != nil && !IsCloseNoise(err) {
		logger.MaybeErrorfContext(ctx, log, "Error closing connection (%s id=%s): %v", h.conn.RemoteAddr(), h.conn.ID(), err)
	}
	logger.MaybeInfofContext(ctx, log, "Connection closed: %s id=%s", h.conn.RemoteAddr(), h.conn.ID())
}
