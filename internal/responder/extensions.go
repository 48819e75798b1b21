package responder

import "strings"

// Extension maps a file suffix, leading dot included, to a MIME type.
type Extension struct {
	Ext  string `toml:"ext" yaml:"ext"`
	MIME string `toml:"mime" yaml:"mime"`
}

// Table is the ordered whitelist of servable suffixes.
type Table []Extension

// DefaultTable holds the basic web extensions.
var DefaultTable = Table{
	{".html", "text/html"},
	{".js", "text/javascript"},
	{".css", "text/css"},
}

// With returns a copy of t followed by extra. Entries in extra are scanned
// after t and therefore override it on a shared suffix.
func (t Table) With(extra ...Extension) Table {
	out := make(Table, 0, len(t)+len(extra))
	out = append(out, t...)
	return append(out, extra...)
}

// Lookup reports the MIME type for path. Every entry is tested as a
// case-sensitive suffix and the last one that matches wins.
func (t Table) Lookup(path string) (mime string, ok bool) {
	for _, e := range t {
		if len(path) > len(e.Ext) && strings.HasSuffix(path, e.Ext) {
			mime, ok = e.MIME, true
		}
	}
	return mime, ok
}
