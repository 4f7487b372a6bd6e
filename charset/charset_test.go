package charset_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docfix/charset"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data    []byte
		want    string
		wantBOM []byte
	}{
		"empty": {
			data: nil,
			want: "UTF-8",
		},
		"ascii java": {
			data: []byte("package a;\nclass A {}\n"),
			want: "UTF-8",
		},
		"utf-8 java": {
			data: []byte("/** Café. */\nclass A {}\n"),
			want: "UTF-8",
		},
		"latin-1 java": {
			data: []byte("/** Caf\xe9. */\nclass A {}\n"),
			want: "ISO-8859-1",
		},
		"latin-1 without keywords": {
			data: []byte("caf\xe9"),
			want: "UTF-8",
		},
		"utf-8 bom": {
			data:    []byte("\xef\xbb\xbfclass A {}"),
			want:    "UTF-8",
			wantBOM: []byte{0xEF, 0xBB, 0xBF},
		},
		"utf-16le bom": {
			data:    []byte{0xFF, 0xFE, 'a', 0},
			want:    "UTF-16LE",
			wantBOM: []byte{0xFF, 0xFE},
		},
		"utf-16be bom": {
			data:    []byte{0xFE, 0xFF, 0, 'a'},
			want:    "UTF-16BE",
			wantBOM: []byte{0xFE, 0xFF},
		},
		"multibyte character cut at window edge": {
			data: append(append([]byte("class A {}"), bytes.Repeat([]byte(" "), 4096-len("class A {}")-1)...), "é"...),
			want: "UTF-8",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := charset.Detect(tc.data)
			assert.Equal(t, tc.want, got.Name)
			assert.Equal(t, tc.wantBOM, got.BOM)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name string
		want string
		err  error
	}{
		"utf-8":        {name: "utf-8", want: "UTF-8"},
		"iso-8859-1":   {name: "ISO-8859-1", want: "ISO-8859-1"},
		"latin1 alias": {name: "latin1", want: "ISO-8859-1"},
		"utf-16le":     {name: "UTF-16LE", want: "UTF-16LE"},
		"utf-16":       {name: "utf-16", want: "UTF-16"},
		"windows-1252": {name: "windows-1252", want: "windows-1252"},
		"unknown":      {name: "no-such-encoding", err: charset.ErrUnknownEncoding},
		"empty":        {name: "", err: charset.ErrUnknownEncoding},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := charset.Lookup(tc.name)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Name)
			assert.Empty(t, got.BOM)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data []byte
		text string
	}{
		"utf-8": {
			data: []byte("/** Café. */"),
			text: "/** Café. */",
		},
		"utf-8 bom": {
			data: []byte("\xef\xbb\xbfclass A {}"),
			text: "class A {}",
		},
		"latin-1": {
			data: []byte("/** Caf\xe9. */ class A {}"),
			text: "/** Café. */ class A {}",
		},
		"utf-16le": {
			data: []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			text: "hi",
		},
		"utf-16be": {
			data: []byte{0xFE, 0xFF, 0, 'h', 0, 'i'},
			text: "hi",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs := charset.Detect(tc.data)

			text, err := cs.Decode(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.text, text)

			data, err := cs.Encode(text)
			require.NoError(t, err)
			assert.Equal(t, tc.data, data)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := charset.UTF8.Decode([]byte("caf\xe9"))
	require.ErrorIs(t, err, charset.ErrUndecodable)

	_, err = charset.Detect([]byte{0xFF, 0xFE, 'a'}).Decode([]byte{0xFF, 0xFE, 'a'})
	require.ErrorIs(t, err, charset.ErrUndecodable)
}

func TestEncodeUnrepresentable(t *testing.T) {
	t.Parallel()

	_, err := charset.Latin1.Encode("price in €")
	require.ErrorIs(t, err, charset.ErrUnencodable)
}

func TestWithBOM(t *testing.T) {
	t.Parallel()

	data := []byte("\xef\xbb\xbfclass A {}")

	cs, err := charset.Lookup("UTF-8")
	require.NoError(t, err)

	cs = cs.WithBOM(data)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, cs.BOM)
	assert.Equal(t, "UTF-8 (BOM)", cs.String())

	latin, err := charset.Lookup("ISO-8859-1")
	require.NoError(t, err)
	assert.Empty(t, latin.WithBOM(data).BOM)
	assert.Equal(t, "ISO-8859-1", latin.String())
}

func TestWithBOMUTF16(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data     []byte
		wantName string
		wantBOM  []byte
	}{
		"little endian mark": {
			data:     []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			wantName: "UTF-16LE",
			wantBOM:  []byte{0xFF, 0xFE},
		},
		"big endian mark": {
			data:     []byte{0xFE, 0xFF, 0, 'h', 0, 'i'},
			wantName: "UTF-16BE",
			wantBOM:  []byte{0xFE, 0xFF},
		},
		"no mark": {
			data:     []byte{0, 'h', 0, 'i'},
			wantName: "UTF-16BE",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := charset.Lookup("UTF-16")
			require.NoError(t, err)

			cs = cs.WithBOM(tc.data)
			assert.Equal(t, tc.wantName, cs.Name)
			assert.Equal(t, tc.wantBOM, cs.BOM)

			text, err := cs.Decode(tc.data)
			require.NoError(t, err)
			assert.Equal(t, "hi", text)

			data, err := cs.Encode(text)
			require.NoError(t, err)
			assert.Equal(t, tc.data, data)
		})
	}
}
