// Package responder turns the first read on a connection into either a file
// or the fixed 404 and writes it back.
package responder

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"runtime/debug"
	"strings"
	"time"

	"github.com/f4ah6o/sgs-go/internal/logfile"
)

const (
	// DefaultBufferSize bounds the single read of a request.
	DefaultBufferSize = 4096

	// Linger is how long a connection stays open after its response.
	Linger = time.Second
)

// Reasons a parsed request still ends in a 404.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrUnavailable     = errors.New("file unavailable")
)

// Logger is the sink the responder reports to.
type Logger interface {
	Log(s logfile.Severity, message string)
}

// Responder serves one request per connection from Root.
type Responder struct {
	Root       fs.FS
	Table      Table
	BufferSize int
	Log        Logger

	linger time.Duration
}

// New returns a Responder with the default table, buffer size and linger.
func New(root fs.FS, log Logger) *Responder {
	return &Responder{
		Root:       root,
		Table:      DefaultTable,
		BufferSize: DefaultBufferSize,
		Log:        log,
		linger:     Linger,
	}
}

func (r *Responder) log(s logfile.Severity, format string, args ...any) {
	if r.Log != nil {
		r.Log.Log(s, fmt.Sprintf(format, args...))
	}
}

// Handle runs the whole exchange on conn and closes it. It owns conn from
// the moment it is called.
func (r *Responder) Handle(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if err := recover(); err != nil {
			r.log(logfile.Error, "panic serving %s: %v\n%s", remote(conn), err, debug.Stack())
		}
	}()

	res := r.Respond(conn)
	if _, err := res.WriteTo(conn); err != nil {
		r.log(logfile.Warn, "Short write to %s: %v", remote(conn), err)
	}
	time.Sleep(r.linger)
}

// Respond reads one request from rd and builds the response for it. It
// never returns nil.
func (r *Responder) Respond(rd io.Reader) *Response {
	size := r.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := make([]byte, size)

	n, err := rd.Read(buf)
	if n < 1 {
		r.log(logfile.Warn, "Unable to read client's request: %v", err)
		return &Response{}
	}

	req, err := ParseRequest(buf[:n])
	if err != nil {
		return &Response{}
	}

	res, err := r.Resolve(req)
	if err != nil {
		return &Response{}
	}
	return res
}

// Resolve looks req.Path up in the table and reads the file from Root.
func (r *Responder) Resolve(req Request) (*Response, error) {
	mime, ok := r.table().Lookup(req.Path)
	if !ok {
		return nil, ErrUnsupportedType
	}

	body, err := r.readFile(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, req.Path, err)
	}
	return &Response{MIME: mime, Body: body}, nil
}

func (r *Responder) table() Table {
	if r.Table == nil {
		return DefaultTable
	}
	return r.Table
}

func (r *Responder) readFile(name string) ([]byte, error) {
	if r.Root == nil {
		return nil, fs.ErrNotExist
	}
	f, err := r.Root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fs.ErrNotExist
	}

	return io.ReadAll(f)
}

func remote(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return "unknown"
}
