package trace

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// enterRe matches the one line shape a text capture emits per executed
// method. Everything else in the file is noise and is skipped.
var enterRe = regexp.MustCompile(`^\s*Method Enter:\s*(.+?)\s*$`)

// TextReader pulls identifiers out of a line-oriented text capture.
// Lines not matching the enter pattern are silently ignored.
type TextReader struct {
	s *bufio.Scanner
}

// NewTextReader wraps a text capture stream.
func NewTextReader(r io.Reader) *TextReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &TextReader{s: s}
}

// Next returns the next raw identifier, or io.EOF when the stream is
// exhausted.
func (tr *TextReader) Next() (string, error) {
	for tr.s.Scan() {
		m := enterRe.FindStringSubmatch(tr.s.Text())
		if m == nil {
			continue
		}
		if id := strings.TrimSpace(m[1]); id != "" {
			return id, nil
		}
	}
	if err := tr.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
