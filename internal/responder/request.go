package responder

import (
	"bytes"
	"errors"
	"strings"
)

// Reasons a request line is refused. The client sees the same 404 for all of
// them.
var (
	ErrMalformed = errors.New("malformed request")
	ErrNotGet    = errors.New("method is not GET")
	ErrNoPath    = errors.New("path token is not terminated")
	ErrBadPath   = errors.New("path does not start with /")
	ErrTraversal = errors.New("path contains ..")
)

// Request is the part of a request line the server acts on.
type Request struct {
	Method string
	Path   string
}

var getPrefix = []byte("GET ")

// ParseRequest reads the method and path from the start of buf. Only bytes up
// to the first space after the method are looked at; everything after,
// including the protocol version and headers, is ignored. A path with no
// terminating space inside buf is refused rather than guessed at.
func ParseRequest(buf []byte) (Request, error) {
	if len(buf) < len(getPrefix) {
		return Request{}, ErrMalformed
	}
	if !bytes.EqualFold(buf[:len(getPrefix)], getPrefix) {
		return Request{}, ErrNotGet
	}

	end := bytes.IndexByte(buf[len(getPrefix):], ' ')
	if end < 0 {
		return Request{}, ErrNoPath
	}
	path := string(buf[len(getPrefix) : len(getPrefix)+end])

	if !strings.HasPrefix(path, "/") {
		return Request{}, ErrBadPath
	}
	if strings.Contains(path, "..") {
		return Request{}, ErrTraversal
	}
	if path == "/" {
		path = "/index.html"
	}

	return Request{
		Method: string(buf[:len(getPrefix)-1]),
		Path:   path,
	}, nil
}
