package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aiden/nedots/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Copier copies files and directory trees, overwriting the destination.
// Symlinks in the source are followed so the content, not the link, is
// copied.
type Copier struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewCopier creates a Copier over fs
func NewCopier(fs afero.Fs) *Copier {
	return &Copier{fs: fs, logger: logging.GetLogger("filesystem")}
}

// Fs returns the underlying filesystem
func (c *Copier) Fs() afero.Fs {
	return c.fs
}

// Exists reports whether path exists
func (c *Copier) Exists(path string) (bool, error) {
	return afero.Exists(c.fs, path)
}

// Copy copies src to dst. Directories are copied recursively and merged
// into an existing destination. It reports whether anything at dst changed;
// copying identical content again is a no-op. A symlink that leads back to
// a directory already being copied is skipped.
func (c *Copier) Copy(src, dst string) (bool, error) {
	return c.copy(src, dst, nil)
}

// copy carries the directories on the current path so symlink loops can be
// recognised
func (c *Copier) copy(src, dst string, ancestors []os.FileInfo) (bool, error) {
	srcInfo, err := c.fs.Stat(src)
	if err != nil {
		return false, fmt.Errorf("failed to stat source: %w", err)
	}

	if srcInfo.IsDir() {
		for _, a := range ancestors {
			if os.SameFile(a, srcInfo) {
				c.logger.Warn().Str("path", src).Msg("Skipping symlink loop")
				return false, nil
			}
		}
	}

	changed := false
	dstInfo, err := c.fs.Stat(dst)
	switch {
	case err == nil && srcInfo.IsDir() != dstInfo.IsDir():
		if err := c.fs.RemoveAll(dst); err != nil {
			return false, fmt.Errorf("failed to remove existing destination: %w", err)
		}
		changed = true
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("failed to stat destination: %w", err)
	}

	var sub bool
	if srcInfo.IsDir() {
		sub, err = c.copyDir(src, dst, srcInfo, ancestors)
	} else {
		sub, err = c.copyFile(src, dst, srcInfo)
	}
	return changed || sub, err
}

func (c *Copier) copyFile(src, dst string, srcInfo os.FileInfo) (bool, error) {
	if !srcInfo.Mode().IsRegular() {
		return false, fmt.Errorf("%s is not a regular file", src)
	}

	data, err := afero.ReadFile(c.fs, src)
	if err != nil {
		return false, fmt.Errorf("failed to read source: %w", err)
	}

	perm := srcInfo.Mode().Perm()
	same, err := c.sameFile(dst, data, perm)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := c.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return false, fmt.Errorf("failed to create destination: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close destination: %w", err)
	}

	// OpenFile only applies perm to new files
	if err := c.fs.Chmod(dst, perm); err != nil {
		return false, fmt.Errorf("failed to set permissions: %w", err)
	}

	return true, nil
}

// sameFile reports whether dst already holds data with the given permissions
func (c *Copier) sameFile(dst string, data []byte, perm os.FileMode) (bool, error) {
	info, err := c.fs.Stat(dst)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat destination: %w", err)
	}
	if !info.Mode().IsRegular() || info.Size() != int64(len(data)) || info.Mode().Perm() != perm {
		return false, nil
	}

	existing, err := afero.ReadFile(c.fs, dst)
	if err != nil {
		return false, fmt.Errorf("failed to read destination: %w", err)
	}
	return bytes.Equal(existing, data), nil
}

func (c *Copier) copyDir(src, dst string, srcInfo os.FileInfo, ancestors []os.FileInfo) (bool, error) {
	changed := false
	exists, err := afero.DirExists(c.fs, dst)
	if err != nil {
		return false, fmt.Errorf("failed to stat destination directory: %w", err)
	}
	if !exists {
		if err := c.fs.MkdirAll(dst, srcInfo.Mode().Perm()|0700); err != nil {
			return false, fmt.Errorf("failed to create destination directory: %w", err)
		}
		changed = true
	}

	entries, err := afero.ReadDir(c.fs, src)
	if err != nil {
		return false, fmt.Errorf("failed to read source directory: %w", err)
	}

	ancestors = append(ancestors[:len(ancestors):len(ancestors)], srcInfo)
	for _, entry := range entries {
		sub, err := c.copy(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), ancestors)
		if err != nil {
			return changed, err
		}
		changed = changed || sub
	}

	return changed, nil
}
