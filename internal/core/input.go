package core

// input.go cleans up raw CSV bytes while they are read:
//
//   - a leading UTF-8 BOM, as written by Excel on Windows, is dropped
//   - invalid UTF-8 bytes are replaced with '?'
//
// The readers work chunk by chunk, so the file is never copied whole.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

// utf8BOM is the byte order mark written by many Windows programs.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const inputChunkSize = 32 * 1024

// newTextReader wraps r with BOM removal and UTF-8 sanitizing.
func newTextReader(r io.Reader) io.Reader {
	return &utf8Reader{src: skipBOM(r)}
}

// skipBOM returns a reader positioned after a leading BOM, if there is one.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Reader replaces every invalid UTF-8 byte with '?'. A rune split across
// two reads of the source is held back until the rest of it arrives.
type utf8Reader struct {
	src   io.Reader
	chunk []byte
	raw   []byte // undecoded tail of the previous chunk
	out   []byte // sanitized bytes not yet returned
	err   error
}

func (u *utf8Reader) Read(p []byte) (int, error) {
	for len(u.out) == 0 {
		if u.err != nil {
			return 0, u.err
		}
		u.fill()
	}
	n := copy(p, u.out)
	u.out = u.out[n:]
	return n, nil
}

func (u *utf8Reader) fill() {
	if u.chunk == nil {
		u.chunk = make([]byte, inputChunkSize)
	}
	n, err := u.src.Read(u.chunk)
	u.raw = append(u.raw, u.chunk[:n]...)
	u.err = err
	atEOF := err != nil

	u.out = u.out[:0]
	i := 0
	for i < len(u.raw) {
		r, size := utf8.DecodeRune(u.raw[i:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(u.raw[i:]) {
				break
			}
			u.out = append(u.out, '?')
			i++
			continue
		}
		u.out = append(u.out, u.raw[i:i+size]...)
		i += size
	}
	u.raw = append(u.raw[:0], u.raw[i:]...)
}
