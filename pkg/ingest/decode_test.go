package ingest

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/rollup/pkg/errors"
)

// encodeUTF16 renders s as UTF-16 bytes for fixture building.
func encodeUTF16(s string, bigEndian, withBOM bool) []byte {
	units := utf16.Encode([]rune(s))
	if withBOM {
		units = append([]uint16{0xFEFF}, units...)
	}

	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		var pair [2]byte
		if bigEndian {
			binary.BigEndian.PutUint16(pair[:], u)
		} else {
			binary.LittleEndian.PutUint16(pair[:], u)
		}
		out = append(out, pair[:]...)
	}
	return out
}

func TestDecode(t *testing.T) {
	const content = "Provider name,Duration\nJane Doe NP,00:20:00\n"

	t.Run("plain utf-8", func(t *testing.T) {
		got, err := Decode("test", []byte(content))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("utf-8 with bom", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(content)...)
		got, err := Decode("test", data)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("utf-16 little endian with bom", func(t *testing.T) {
		got, err := Decode("test", encodeUTF16(content, false, true))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("utf-16 big endian with bom", func(t *testing.T) {
		got, err := Decode("test", encodeUTF16(content, true, true))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("utf-16 little endian without bom", func(t *testing.T) {
		got, err := Decode("test", encodeUTF16(content, false, false))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("utf-16 big endian without bom", func(t *testing.T) {
		got, err := Decode("test", encodeUTF16(content, true, false))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("windows-1252 accents", func(t *testing.T) {
		// "José" with 0xE9, invalid as UTF-8.
		data := []byte{'J', 'o', 's', 0xE9, ',', '2', '0'}
		got, err := Decode("test", data)
		require.NoError(t, err)
		assert.Equal(t, "José,20", got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Decode("test", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("all encodings agree", func(t *testing.T) {
		utf8Text, err := Decode("test", []byte(content))
		require.NoError(t, err)

		for _, variant := range [][]byte{
			encodeUTF16(content, false, true),
			encodeUTF16(content, true, true),
			encodeUTF16(content, false, false),
		} {
			got, err := Decode("test", variant)
			require.NoError(t, err)
			assert.Equal(t, utf8Text, got)
		}
	})
}

func TestDecodeUndecodable(t *testing.T) {
	// Scattered NULs with no UTF-16 structure cannot decode to usable text.
	data := []byte{'a', 0x00, 0x00, 0x00, 'b', 'c', 0x00, 0x00, 0x00, 0x00, 'd', 0x00, 0x00, 0x00}

	_, err := Decode("doxy report", data)
	require.Error(t, err)
	assert.True(t, errors.IsEncoding(err))
	assert.Contains(t, err.Error(), "doxy report")
}
