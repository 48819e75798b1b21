// Package acceptor owns the listening socket and hands every accepted
// connection to its own goroutine.
package acceptor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	"github.com/f4ah6o/sgs-go/internal/logfile"
)

// Handler serves one connection and closes it.
type Handler interface {
	Handle(conn net.Conn)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(net.Conn)

func (f HandlerFunc) Handle(conn net.Conn) { f(conn) }

// Logger is the sink the acceptor reports to.
type Logger interface {
	Log(s logfile.Severity, message string)
}

// Server accepts connections until its context ends.
type Server struct {
	Handler Handler
	Log     Logger

	// MaxConnections caps how many connections are served at once. Zero
	// means no cap; pending connections then wait only in the backlog.
	MaxConnections int
}

const maxAcceptDelay = time.Second

// Serve accepts on ln and runs Handler for each connection in a new
// goroutine. Accept errors are logged and the loop carries on. When ctx is
// done, ln is closed and Serve returns nil once every connection it started
// has finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.Handler == nil {
		return errors.New("acceptor: nil Handler")
	}
	if s.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.MaxConnections)
	}

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("acceptor: %w", err)
			}
			s.log(logfile.Warn, fmt.Sprintf("Failed to accept a connection! %v", err))

			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Handler.Handle(conn)
		}()
	}
}

func (s *Server) log(sev logfile.Severity, message string) {
	if s.Log != nil {
		s.Log.Log(sev, message)
	}
}
