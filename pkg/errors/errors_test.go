package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/clinicops/rollup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestInvalidNameError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.InvalidNameError{
			Name:   "12345",
			Reason: "no letters",
		}
		assert.Equal(t, `invalid provider name "12345": no letters`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidName))
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("empty name", func(t *testing.T) {
		err := pkgerrors.NewInvalidNameError("", "empty after normalization")
		assert.Equal(t, "invalid provider name: empty after normalization", err.Error())
		assert.True(t, pkgerrors.IsInvalidName(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewInvalidNameError("...", "no letters")
		wrapped := errors.Join(errors.New("row 4"), base)
		assert.True(t, pkgerrors.IsInvalidName(wrapped))
	})
}

func TestInvalidDurationError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.InvalidDurationError{
			Text:   "00:75:00",
			Reason: "minutes exceed 59",
		}
		assert.Contains(t, err.Error(), "00:75:00")
		assert.Contains(t, err.Error(), "minutes exceed 59")
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidDuration))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewInvalidDurationError("abc", "not a duration")
		assert.True(t, pkgerrors.IsInvalidDuration(err))
		assert.False(t, pkgerrors.IsInvalidName(err))
	})
}

func TestEncodingError(t *testing.T) {
	t.Run("with attempts", func(t *testing.T) {
		err := pkgerrors.NewEncodingError("doxy report", "utf-8", "utf-16", "windows-1252")
		assert.Contains(t, err.Error(), "doxy report")
		assert.Contains(t, err.Error(), "utf-16")
		assert.True(t, pkgerrors.IsEncoding(err))
	})

	t.Run("without attempts", func(t *testing.T) {
		err := &pkgerrors.EncodingError{Source: "gusto hours"}
		assert.Equal(t, "cannot decode gusto hours", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrEncoding))
	})
}

func TestEmptySourceError(t *testing.T) {
	t.Run("all rows skipped", func(t *testing.T) {
		err := pkgerrors.NewEmptySourceError("doxy report", 12, 12)
		assert.Contains(t, err.Error(), "doxy report")
		assert.Contains(t, err.Error(), "12 skipped")
		assert.True(t, pkgerrors.IsEmptySource(err))
	})

	t.Run("no rows at all", func(t *testing.T) {
		err := pkgerrors.NewEmptySourceError("booking summary", 0, 0)
		assert.Equal(t, "booking summary contains no records", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrEmptySource))
	})
}

func TestMissingColumnError(t *testing.T) {
	err := pkgerrors.NewMissingColumnError("doxy report", "Duration")
	assert.Equal(t, `doxy report is missing required column "Duration"`, err.Error())
	assert.True(t, pkgerrors.IsMissingColumn(err))
	assert.False(t, pkgerrors.IsEmptySource(err))
}

func TestSourceError(t *testing.T) {
	t.Run("wraps and unwraps", func(t *testing.T) {
		base := pkgerrors.NewMissingColumnError("gusto hours", "Name")
		err := pkgerrors.NewSourceError("gusto hours", base)
		assert.Contains(t, err.Error(), "gusto hours")
		assert.Equal(t, base, err.Unwrap())
		assert.True(t, pkgerrors.IsMissingColumn(err))
	})

	t.Run("wrap helper passes nil through", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapSource("doxy report", nil))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "doxy_file",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field doxy_file: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("size", 20<<20, "exceeds maximum")
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "exceeds maximum")
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("normalizer", "suffix list cannot be empty", nil)
	assert.Contains(t, err.Error(), "normalizer")
	assert.Contains(t, err.Error(), "suffix list")
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/report.xlsx", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/report.xlsx")
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("permission denied")
		err := pkgerrors.WrapIO("read", "/tmp/doxy.csv", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "read", ioErr.Operation)
		assert.Equal(t, "/tmp/doxy.csv", ioErr.Path)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "doxy.csv",
			Line:    7,
			Message: "bare quote",
		}
		assert.Contains(t, err.Error(), "doxy.csv:7")
	})

	t.Run("wrap helper passes nil through", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("csv", "doxy.csv", nil))
	})
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	assert.False(t, pkgerrors.IsCanceled(pkgerrors.ErrEmptySource))
}
