package acceptor

import "errors"

// Startup failures. Listen wraps the system error in one of these.
var (
	ErrSocket = errors.New("unable to create socket file descriptor")
	ErrBind   = errors.New("failed to bind to the port")
	ErrListen = errors.New("failed to ready socket for listening")
)

// DefaultBacklog is the pending connection queue depth.
const DefaultBacklog = 256
