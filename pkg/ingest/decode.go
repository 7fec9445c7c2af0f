package ingest

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/clinicops/rollup/pkg/errors"
)

// Byte order marks for the encodings the exports actually arrive in.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw export bytes into text. Sources are inconsistent about
// encoding: the same report downloads as UTF-8, UTF-8 with BOM, or UTF-16
// depending on the exporting tool, and older systems emit Windows-1252.
//
// Detection order: BOM, then BOM-less UTF-8, then a NUL-density heuristic for
// BOM-less UTF-16, then Windows-1252 as the byte-preserving fallback. The
// same report saved as UTF-8 and UTF-16 decodes to identical text.
func Decode(source string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		rest := data[len(bomUTF8):]
		if utf8.Valid(rest) && !bytes.ContainsRune(rest, 0) {
			return string(rest), nil
		}
		return decodeFallback(source, rest)

	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(source, data, unicode.UseBOM, unicode.LittleEndian)
	}

	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return string(data), nil
	}

	// NUL bytes in text are the signature of ASCII-range UTF-16 without a
	// BOM. Their position tells us the byte order.
	if endian, ok := sniffUTF16(data); ok {
		return decodeUTF16(source, data, unicode.IgnoreBOM, endian)
	}

	return decodeFallback(source, data)
}

// decodeUTF16 decodes data as UTF-16 with the given BOM policy and endianness.
func decodeUTF16(source string, data []byte, policy unicode.BOMPolicy, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, policy).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", errors.NewEncodingError(source, "utf-8", "utf-16")
	}

	text := strings.TrimPrefix(string(out), "\uFEFF")
	if text == "" || strings.ContainsRune(text, 0) {
		return "", errors.NewEncodingError(source, "utf-8", "utf-16")
	}
	return text, nil
}

// decodeFallback decodes data as Windows-1252, the superset the legacy
// systems write. Every byte maps to something, so the only failure mode is
// text that is still unusable afterwards.
func decodeFallback(source string, data []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil || len(out) == 0 || bytes.ContainsRune(out, 0) {
		return "", errors.NewEncodingError(source, "utf-8", "utf-16", "windows-1252")
	}
	return string(out), nil
}

// sniffUTF16 guesses UTF-16 byte order from where the NUL bytes sit. In
// ASCII-heavy UTF-16LE the odd bytes are NUL; in UTF-16BE the even ones.
func sniffUTF16(data []byte) (unicode.Endianness, bool) {
	if len(data) < 4 {
		return unicode.LittleEndian, false
	}

	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}

	var evenNul, oddNul int
	for i, b := range sample {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			evenNul++
		} else {
			oddNul++
		}
	}

	pairs := len(sample) / 2
	switch {
	case oddNul > pairs/2 && oddNul > evenNul*4:
		return unicode.LittleEndian, true
	case evenNul > pairs/2 && evenNul > oddNul*4:
		return unicode.BigEndian, true
	default:
		return unicode.LittleEndian, false
	}
}
