package golden

import (
	"errors"
	"fmt"
	"os"
)

// Cleanup removes the file at path if it exists and reports whether it did.
// An absent file is not an error; a directory is left alone.
func (c *Comparator) Cleanup(path string) (bool, error) {
	info, err := c.fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("refusing to remove directory %s", path)
	}
	if err := c.fs.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return true, nil
}
