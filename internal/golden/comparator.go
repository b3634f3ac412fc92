// Package golden compares subject artifacts against literal expectations.
//
// Comparison is byte-exact: no trimming, no newline normalization and no
// prefix matching. A missing artifact is a read failure, which callers treat
// as a failed comparison.
package golden

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// MismatchError reports artifact content that differs from the golden literal.
type MismatchError struct {
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("content mismatch: want %q, got %q", e.Want, e.Got)
}

// Diff renders the difference for humans (-want +got).
func (e *MismatchError) Diff() string {
	return cmp.Diff(e.Want, e.Got)
}

// Comparator reads artifacts from a filesystem.
type Comparator struct {
	fs afero.Fs
}

// NewComparator returns a Comparator backed by fs.
func NewComparator(fs afero.Fs) *Comparator {
	return &Comparator{fs: fs}
}

// Read returns the full content of the artifact at path.
func (c *Comparator) Read(path string) (string, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return string(data), nil
}

// Compare checks got against want byte for byte.
func Compare(got, want string) error {
	if got != want {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}

// CompareFile reads the artifact at path and compares it with want.
// The content read is returned even when it does not match.
func (c *Comparator) CompareFile(path, want string) (string, error) {
	got, err := c.Read(path)
	if err != nil {
		return "", err
	}
	return got, Compare(got, want)
}
