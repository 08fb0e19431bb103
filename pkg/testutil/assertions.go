package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

// AssertFileContent checks that path exists with the expected content
func AssertFileContent(t *testing.T, fs afero.Fs, path, expected string) bool {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if !assert.NoError(t, err, "reading %s", path) {
		return false
	}
	return assert.Equal(t, expected, string(data), "content of %s", path)
}

// AssertNoFile checks that nothing exists at path
func AssertNoFile(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	exists, err := afero.Exists(fs, path)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.False(t, exists, "expected %s not to exist", path)
}
