package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts an HTML body of any declared or sniffed encoding to UTF-8
// before it reaches goquery. Album pages of older soundtracks are still served as
// windows-1252, which would otherwise garble accented track titles.
//
// The encoding is taken, in order, from a byte order mark, a <meta charset> or
// http-equiv Content-Type tag, or a heuristic over the first bytes. UTF-8 input
// passes through unchanged.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	// no Content-Type: detection runs on the document itself
	return charset.NewReader(body, "")
}
