// Package charset detects and converts the character encodings of Java
// source files.
//
// [Detect] sniffs an encoding from a file's byte order mark or, failing
// that, from whether its leading bytes hold Java keywords in valid UTF-8.
// [Lookup] resolves an explicit IANA encoding name. A [Charset] converts
// between file bytes and UTF-8 text, keeping any byte order mark intact.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknownEncoding indicates an encoding name that is not recognized
	// or not supported.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrUndecodable indicates file content that is not valid in its
	// encoding.
	ErrUndecodable = errors.New("cannot decode")
	// ErrUnencodable indicates text that the target encoding cannot
	// represent.
	ErrUnencodable = errors.New("cannot encode")
)

// sniffLen bounds how much of a file [Detect] examines.
const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// keywords appear early in nearly every Java source file.
var keywords = [][]byte{
	[]byte("package"),
	[]byte("import"),
	[]byte("class"),
	[]byte("interface"),
	[]byte("record"),
	[]byte("enum"),
}

// Charset is a character encoding together with the byte order mark, if
// any, that a file starts with.
type Charset struct {
	enc encoding.Encoding
	// Name is the IANA name of the encoding, such as "UTF-8".
	Name string
	// BOM is the byte order mark written before encoded text. It is empty
	// for files without one.
	BOM []byte
}

var (
	// UTF8 is UTF-8 without a byte order mark.
	UTF8 = Charset{Name: "UTF-8"}
	// Latin1 is ISO-8859-1.
	Latin1 = Charset{Name: "ISO-8859-1", enc: charmap.ISO8859_1}

	utf16LE = Charset{Name: "UTF-16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	utf16BE = Charset{Name: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}

	// utf16 is UTF-16 with its byte order still to be read from the mark.
	utf16 = Charset{Name: "UTF-16", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

// Detect guesses the encoding of data, the content of a Java source file.
//
// A byte order mark selects UTF-8, UTF-16LE or UTF-16BE. Otherwise the
// first 4096 bytes are examined: valid UTF-8 containing a Java keyword is
// UTF-8, other content containing a keyword is ISO-8859-1, and anything else
// defaults to UTF-8.
func Detect(data []byte) Charset {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8.withBOM(bomUTF8)
	case bytes.HasPrefix(data, bomUTF16LE):
		return utf16LE.withBOM(bomUTF16LE)
	case bytes.HasPrefix(data, bomUTF16BE):
		return utf16BE.withBOM(bomUTF16BE)
	}

	sniff := data[:min(len(data), sniffLen)]
	if !hasKeyword(sniff) {
		return UTF8
	}

	if validPrefix(sniff) {
		return UTF8
	}

	return Latin1
}

// Lookup returns the [Charset] named name, which may be any IANA name or
// alias, matched case-insensitively.
func Lookup(name string) (Charset, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil {
		return Charset{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	if enc == nil {
		return Charset{}, fmt.Errorf("%w: %q is not supported", ErrUnknownEncoding, name)
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = strings.ToUpper(name)
	}

	switch canonical {
	case UTF8.Name:
		return UTF8, nil
	case utf16LE.Name:
		return utf16LE, nil
	case utf16BE.Name:
		return utf16BE, nil
	case utf16.Name:
		return utf16, nil
	}

	return Charset{Name: canonical, enc: enc}, nil
}

// WithBOM returns c with its byte order mark set when data starts with the
// mark of c's encoding. Use it to keep the mark of a file whose encoding was
// given explicitly.
//
// A plain "UTF-16" charset takes its byte order from the mark, and is
// big-endian when data has none.
func (c Charset) WithBOM(data []byte) Charset {
	if c.Name == utf16.Name {
		switch {
		case bytes.HasPrefix(data, bomUTF16LE):
			return utf16LE.withBOM(bomUTF16LE)
		case bytes.HasPrefix(data, bomUTF16BE):
			return utf16BE.withBOM(bomUTF16BE)
		default:
			return utf16BE
		}
	}

	for _, bom := range [][]byte{bomUTF8, bomUTF16LE, bomUTF16BE} {
		if bytes.HasPrefix(data, bom) && bomFor(c.Name, bom) {
			return c.withBOM(bom)
		}
	}

	return c
}

// Decode converts data to UTF-8 text, dropping the byte order mark.
func (c Charset) Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, c.BOM)

	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid %s", ErrUndecodable, c.Name)
		}

		return string(data), nil
	}

	if c.wide() && len(data)%2 != 0 {
		return "", fmt.Errorf("%w: odd length for %s", ErrUndecodable, c.Name)
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	return string(out), nil
}

// Encode converts text to c's encoding, preceded by the byte order mark.
func (c Charset) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return append(bytes.Clone(c.BOM), text...), nil
	}

	out, err := c.enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnencodable, c.Name, err)
	}

	return append(bytes.Clone(c.BOM), out...), nil
}

func (c Charset) String() string {
	if len(c.BOM) > 0 {
		return c.Name + " (BOM)"
	}

	return c.Name
}

func (c Charset) withBOM(bom []byte) Charset {
	c.BOM = bom

	return c
}

func (c Charset) wide() bool {
	return strings.HasPrefix(c.Name, "UTF-16")
}

// bomFor reports whether bom is the byte order mark of the encoding named
// name.
func bomFor(name string, bom []byte) bool {
	switch name {
	case UTF8.Name:
		return bytes.Equal(bom, bomUTF8)
	case utf16LE.Name:
		return bytes.Equal(bom, bomUTF16LE)
	case utf16BE.Name:
		return bytes.Equal(bom, bomUTF16BE)
	default:
		return false
	}
}

func hasKeyword(data []byte) bool {
	for _, kw := range keywords {
		if bytes.Contains(data, kw) {
			return true
		}
	}

	return false
}

// validPrefix reports whether data is valid UTF-8, allowing an incomplete
// sequence at its end where the sniffed window cut a character.
func validPrefix(data []byte) bool {
	if utf8.Valid(data) {
		return true
	}

	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			return utf8.Valid(data[:i]) && !utf8.FullRune(data[i:])
		}
	}

	return false
}
