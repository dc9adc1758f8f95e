package filesystem

import (
	"errors"
	"io/fs"
	"os"

	"video-censor/domain/media"
)

// Checker implements media.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Mover removes and renames files on disk
type Mover struct{}

// NewMover creates a new filesystem mover
func NewMover() *Mover {
	return &Mover{}
}

// Remove deletes path. A file that is already gone is not an error.
func (m *Mover) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Rename moves oldPath to newPath, replacing newPath if it exists
func (m *Mover) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Ensure Checker implements media.FileChecker
var _ media.FileChecker = (*Checker)(nil)

// Ensure Mover implements the file ports
var (
	_ media.FileRemover = (*Mover)(nil)
	_ media.FileRenamer = (*Mover)(nil)
)
