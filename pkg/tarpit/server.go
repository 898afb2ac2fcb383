package tarpit

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/blend/go-sdk/logger"
)

// Server owns the listening socket and the accept loop. Every accepted
// connection is handed to its own handler goroutine; the accept loop
// never waits on a handler.
type Server struct {
	lock     sync.Mutex
	running  bool
	stop     chan struct{}
	listener net.Listener

	config   Config
	registry *Registry
}

func NewServer(cfg Config) *Server {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	return &Server{
		config:   cfg,
		registry: NewRegistry(),
	}
}

// Registry exposes the live-connection set for observability.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Addr returns the bound address, or nil before Listen has bound the
// socket. With Port 0 this is how callers learn the assigned port.
func (s *Server) Addr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen binds the configured address and blocks running the accept
// loop until Stop is called or ctx is cancelled. A bind failure is
// returned before any connection is accepted.
//
// Stop only ends the accept loop: connections already trapped keep
// dripping on their own cadence. Cancelling ctx additionally interrupts
// every handler, so it is the path for full process shutdown.
func (s *Server) Listen(ctx context.Context) error {
	log := logger.GetLogger(ctx)
	s.lock.Lock()
	if s.running {
		s.lock.Unlock()
		return fmt.Errorf("already running")
	}
	stop := make(chan struct{})
	s.stop = stop
	s.running = true
	s.lock.Unlock()

	addr := s.config.BindAddr()
	listener, err := listen(ctx, addr)
	if err != nil {
		s.lock.Lock()
		s.stop = nil
		s.running = false
		s.lock.Unlock()
		return fmt.Errorf("tarpit: bind %s: %w", addr, err)
	}

	s.lock.Lock()
	s.listener = listener
	s.lock.Unlock()

	defer func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		s.listener = nil
		s.stop = nil
		s.running = false
	}()
	defer listener.Close()

	// Unblock a pending Accept as soon as stop or ctx fires, instead of
	// waiting for the next scanner to show up.
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		listener.Close()
	}()

	logger.MaybeInfofContext(ctx, log, "Tarpit active on %s. Waiting for scanners...", listener.Addr())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		conn, err := s.listenForNew(ctx, stop, listener)
		if err != nil {
			logger.MaybeErrorfContext(ctx, log, "Error accepting tarpit connection: %v", err)
			continue
		}
		if conn == nil {
			continue
		}
		s.trap(ctx, conn)
	}
}

// Stop ends the accept loop and closes the listening socket. Trapped
// connections are left dripping. Idempotent.
func (s *Server) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.running {
		return
	}
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// trap registers the connection synchronously, so the registry reflects
// it before the accept loop moves on, then starts its handler.
func (s *Server) trap(ctx context.Context, raw net.Conn) {
	conn := newConn(raw)
	s.registry.Add(conn)
	go newHandler(s.config.Delay, s.registry, conn).Run(ctx)
}

func (s *Server) listenForNew(ctx context.Context, stop chan struct{}, listener net.Listener) (net.Conn, error) {
	log := logger.GetLogger(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-stop:
			return nil, nil
		default:
		}

		conn, err := listener.Accept()
		if err != nil {
			if IsCloseNoise(err) {
				// listener shut down, or the peer vanished mid-handshake
				logger.MaybeDebugfContext(ctx, log, "Accept interrupted: %v", err)
				continue
			}
			return nil, err
		}
		return conn, nil
	}
}
