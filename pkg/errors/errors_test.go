package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	err := errors.New("original error")
	result := Wrapf(err, "failed to process %s in %d attempts", "file.txt", 3)
	assert.Equal(t, "failed to process file.txt in 3 attempts: original error", result.Error())
	assert.ErrorIs(t, result, err)
	assert.NoError(t, Wrapf(nil, "x %d", 1))
}

func TestBridgeErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		code     Code
		exitCode int
	}{
		{"validation", Validation(CodeInvalidInput, "bad name"), KindValidation, CodeInvalidInput, ExitFailure},
		{"package not found", PackageNotFound("nginx"), KindNotFound, CodePackageNotFound, ExitFailure},
		{"store not found", StoreNotFound("marine"), KindNotFound, CodeStoreNotFound, ExitFailure},
		{"external tool", ExternalTool(CodeLocked, "locked", "dpkg was interrupted"), KindExternalTool, CodeLocked, ExitFailure},
		{"config", Config("bad store", ErrStoreRoot), KindConfig, CodeConfigError, ExitFailure},
		{"internal", Internal("boom", errors.New("io")), KindInternal, CodeInternal, ExitUnexpected},
		{"foreign", errors.New("plain"), KindInternal, CodeInternal, ExitUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.exitCode, ExitCode(tt.err))
		})
	}
}

func TestBridgeErrorSurvivesWrapping(t *testing.T) {
	base := PackageNotFound("git")
	wrapped := fmt.Errorf("details: %w", base)

	assert.True(t, IsCode(wrapped, CodePackageNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ExitFailure, ExitCode(wrapped))
	assert.Equal(t, ExitOK, ExitCode(nil))
}

func TestBridgeErrorJSON(t *testing.T) {
	e := ExternalTool(CodeDiskFull, "Insufficient disk space", "You don't have enough free space")

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(e.ToJSON()), &decoded))
	assert.Equal(t, "Insufficient disk space", decoded["error"])
	assert.Equal(t, "DISK_FULL", decoded["code"])
	assert.Equal(t, "You don't have enough free space", decoded["details"])
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	be := Validation(CodeInvalidQuery, "short")
	assert.Same(t, be, Normalize(fmt.Errorf("ctx: %w", be)))

	n := Normalize(errors.New("kaput"))
	assert.Equal(t, CodeInternal, n.Code)
	assert.Contains(t, n.Message, "Unexpected error")
}
