package responder

import (
	"fmt"
	"io"
)

// NotFound is sent for every refused or unresolvable request. The
// Content-Length is the exact size of the embedded document.
const NotFound = "HTTP/1.0 404 Not Found\r\n" +
	"Content-Type: text/html\r\n" +
	"Content-Length: 219\r\n" +
	"\r\n" +
	"<!doctype html>\n" +
	"<html lang='en'>\n" +
	"  <head>\n" +
	"    <meta charset='utf-8'>\n" +
	"    <title>File Not Found</title>\n" +
	"  </head>\n" +
	"  <body>\n" +
	"    <h1>Error: File Not Found!</h1>\n" +
	"    Could not find the file you requested!\n" +
	"  </body>\n" +
	"</html>\n"

// Response is what gets written back on a connection. A nil Body with an
// empty MIME means NotFound.
type Response struct {
	MIME string
	Body []byte
}

// IsNotFound reports whether r renders as the fixed 404.
func (r *Response) IsNotFound() bool {
	return r == nil || r.MIME == ""
}

// WriteTo writes r in HTTP/1.0 framing. Headers and body go out in a single
// Write so a short write surfaces as one error.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	if r.IsNotFound() {
		n, err := io.WriteString(w, NotFound)
		return int64(n), err
	}

	head := fmt.Sprintf("HTTP/1.0 200 OK\r\nContent-Type: %s\r\nContent-Length: %d\r\n\r\n",
		r.MIME, len(r.Body))
	out := make([]byte, 0, len(head)+len(r.Body))
	out = append(out, head...)
	out = append(out, r.Body...)
	n, err := w.Write(out)
	return int64(n), err
}
