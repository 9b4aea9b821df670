package engine

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/wippyai/pyembed/abi"
)

// decoder turns locale-encoded argument bytes into wide characters, the way
// Py_DecodeLocale does with the surrogateescape error handler.
type decoder interface {
	decode(b []byte) ([]abi.WChar, bool)
}

// newDecoder picks a decoder from a locale name such as "en_US.UTF-8".
// An empty locale means UTF-8.
func newDecoder(locale string) (decoder, error) {
	charset := locale
	if _, cs, ok := strings.Cut(locale, "."); ok {
		charset = cs
	}
	charset, _, _ = strings.Cut(charset, "@")

	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "c.utf-8":
		return utf8Decoder{}, nil
	case "c", "posix", "ascii", "us-ascii", "ansi_x3.4-1968":
		return asciiDecoder{}, nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no decoder", charset)
	}
	return newCharsetDecoder(enc), nil
}

func escape(b byte) abi.WChar {
	return abi.WChar(0xDC00 + int32(b))
}

type utf8Decoder struct{}

func (utf8Decoder) decode(b []byte) ([]abi.WChar, bool) {
	out := make([]abi.WChar, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			out = append(out, escape(b[0]))
			b = b[1:]
			continue
		}
		out = append(out, abi.WChar(r))
		b = b[size:]
	}
	return out, true
}

type asciiDecoder struct{}

func (asciiDecoder) decode(b []byte) ([]abi.WChar, bool) {
	out := make([]abi.WChar, len(b))
	for i, c := range b {
		if c < 0x80 {
			out[i] = abi.WChar(c)
		} else {
			out[i] = escape(c)
		}
	}
	return out, true
}

// maxCharLen is the longest byte sequence any supported charset maps to a
// single character (GB18030).
const maxCharLen = 4

// charsetDecoder decodes one character at a time so that bytes the charset
// cannot map are escaped individually instead of becoming U+FFFD.
type charsetDecoder struct {
	enc encoding.Encoding
	// replacement is U+FFFD in this charset, nil if it has no encoding
	replacement []byte
}

func newCharsetDecoder(enc encoding.Encoding) charsetDecoder {
	d := charsetDecoder{enc: enc}
	if b, err := enc.NewEncoder().Bytes([]byte(string(utf8.RuneError))); err == nil {
		d.replacement = b
	}
	return d
}

func (d charsetDecoder) decode(b []byte) ([]abi.WChar, bool) {
	out := make([]abi.WChar, 0, len(b))
	for len(b) > 0 {
		r, size := d.next(b)
		if size == 0 {
			// Py_DecodeLocale only escapes non-ASCII bytes
			if b[0] < utf8.RuneSelf {
				return nil, false
			}
			out = append(out, escape(b[0]))
			b = b[1:]
			continue
		}
		out = append(out, abi.WChar(r))
		b = b[size:]
	}
	return out, true
}

// next decodes the longest prefix of b that maps to exactly one character.
// size is 0 when no prefix does.
func (d charsetDecoder) next(b []byte) (r rune, size int) {
	for n := min(len(b), maxCharLen); n > 0; n-- {
		s, err := d.enc.NewDecoder().Bytes(b[:n])
		if err != nil || utf8.RuneCount(s) != 1 {
			continue
		}
		r, _ = utf8.DecodeRune(s)
		if r == utf8.RuneError && !bytes.Equal(b[:n], d.replacement) {
			continue
		}
		return r, n
	}
	return 0, 0
}
