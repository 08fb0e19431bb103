package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/aiden/nedots/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_not_found",
			code:    errors.ErrConfigNotFound,
			message: "manifest missing",
			wantStr: "[CONFIG_NOT_FOUND] manifest missing",
		},
		{
			name:    "copy_failed",
			code:    errors.ErrCopyFailed,
			message: "cannot copy",
			wantStr: "[COPY_FAILED] cannot copy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigMalformed, "section %q missing", "packages.core")
	assert.Equal(t, `section "packages.core" missing`, err.Message)
}

func TestWrap(t *testing.T) {
	base := stderrors.New("exit status 1")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(base, errors.ErrPackageManagerFailed, "dnf failed")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrPackageManagerFailed, err.Code)
		assert.Same(t, base, err.Wrapped)
		assert.Equal(t, "[PACKAGE_MANAGER_FAILED] dnf failed: exit status 1", err.Error())
		assert.ErrorIs(t, err, base)
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nothing %d", 1))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCopyFailed, "copy").
		WithDetail("source", "/etc/hosts").
		WithDetail("scope", "etc")

	assert.Equal(t, "/etc/hosts", err.Details["source"])
	assert.Equal(t, "etc", err.Details["scope"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	a := errors.New(errors.ErrConfigMalformed, "a")
	b := errors.New(errors.ErrConfigMalformed, "b")
	c := errors.New(errors.ErrConfigNotFound, "c")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestIsErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", errors.New(errors.ErrConfigNotFound, "absent"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrConfigNotFound))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrConfigMalformed))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrConfigNotFound))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrToolMissing, errors.GetErrorCode(errors.New(errors.ErrToolMissing, "dnf")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
