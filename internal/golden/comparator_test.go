package golden

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareFileMatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/out.txt", []byte("00000000004030000000000000203000"), 0644))

	c := NewComparator(fs)
	got, err := c.CompareFile("/work/out.txt", "00000000004030000000000000203000")
	require.NoError(t, err)
	assert.Equal(t, "00000000004030000000000000203000", got)
}

func TestCompareIsByteExact(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"trailing newline", "0101\n", "0101"},
		{"leading space", " 0101", "0101"},
		{"prefix", "01", "0101"},
		{"longer", "010101", "0101"},
		{"crlf", "01\r\n", "01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.got, tt.want)
			require.Error(t, err)

			var mismatch *MismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.want, mismatch.Want)
			assert.Equal(t, tt.got, mismatch.Got)
			assert.NotEmpty(t, mismatch.Diff())
		})
	}
}

func TestCompareFileMismatchReturnsContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.txt", []byte("1111"), 0644))

	got, err := NewComparator(fs).CompareFile("/out.txt", "0000")
	require.Error(t, err)
	assert.Equal(t, "1111", got)
	assert.Contains(t, err.Error(), "content mismatch")
}

func TestCompareFileMissingArtifact(t *testing.T) {
	_, err := NewComparator(afero.NewMemMapFs()).CompareFile("/missing.txt", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read artifact")

	var mismatch *MismatchError
	assert.False(t, errors.As(err, &mismatch), "a read failure is not a content mismatch")
}

func TestCleanup(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/out.txt", []byte("x"), 0644))
	c := NewComparator(fs)

	removed, err := c.Cleanup("/work/out.txt")
	require.NoError(t, err)
	assert.True(t, removed)

	exists, err := afero.Exists(fs, "/work/out.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	removed, err = c.Cleanup("/work/out.txt")
	require.NoError(t, err, "removing an absent artifact is guarded")
	assert.False(t, removed)
}

func TestCleanupRefusesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0755))

	removed, err := NewComparator(fs).Cleanup("/work")
	require.Error(t, err)
	assert.False(t, removed)
}
