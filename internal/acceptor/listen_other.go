//go:build !linux

package acceptor

import (
	"fmt"
	"net"
)

// Listen opens a TCP socket on every IPv4 interface at port. The backlog is
// left to the operating system's default on this platform.
func Listen(port, backlog int) (net.Listener, error) {
	ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("%w: port %d: %w", ErrBind, port, err)
	}
	return ln, nil
}
