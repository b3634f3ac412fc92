package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acceptance/internal/store"
	"github.com/roach88/acceptance/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr and
// the error.
func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCommand(opts)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// workspace writes a subject stub and returns its path and a samples dir.
func workspace(t *testing.T, stub testutil.Stub) (subject, samples string) {
	t.Helper()
	dir := t.TempDir()
	samples = filepath.Join(dir, "samples")
	require.NoError(t, os.MkdirAll(samples, 0755))
	return testutil.WriteStub(t, dir, stub), samples
}

func assertGolden(t *testing.T, name string, got string) {
	t.Helper()
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, name, []byte(got))
}

func TestRootMissingSubject(t *testing.T) {
	stdout, _, err := execute(t, &RootOptions{})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "Unspecified file name")
	assert.Empty(t, stdout, "no scenario runs")
}

func TestRootSubjectNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "hex2bin")
	stdout, _, err := execute(t, &RootOptions{}, "-f", missing)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "File "+missing+" not found")
	assert.Empty(t, stdout)
}

func TestRootInvalidColor(t *testing.T) {
	_, _, err := execute(t, &RootOptions{}, "--color", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color mode")
}

func TestRootUnexpectedArgument(t *testing.T) {
	_, _, err := execute(t, &RootOptions{}, "stray")
	assert.Error(t, err)
}

func TestRootBasicPasses(t *testing.T) {
	subject, samples := workspace(t, testutil.ConformingStub())

	stdout, _, err := execute(t, &RootOptions{}, "-f", subject, "--samples", samples, "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, GetExitCode(err))
	assertGolden(t, "basic_pass", stdout)
	assert.NoFileExists(t, filepath.Join(samples, "sample.txt.temp"))
}

func TestRootExtendedPasses(t *testing.T) {
	subject, samples := workspace(t, testutil.ConformingStub())

	stdout, _, err := execute(t, &RootOptions{}, "--file", subject, "--extra", "--samples", samples)
	require.NoError(t, err)
	assertGolden(t, "extended_pass", stdout)
}

func TestRootFailureStopsRun(t *testing.T) {
	subject, samples := workspace(t, testutil.Stub{DefaultExit: 1})

	stdout, _, err := execute(t, &RootOptions{}, "-f", subject, "-e", "--samples", samples)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "acceptance run failed")
	assert.Equal(t, "Test 1 sample1 exec     FAILED\n", stdout)
}

func TestRootMismatchPrintsDiff(t *testing.T) {
	stub := testutil.ConformingStub()
	stub.Rules = append([]testutil.StubRule{{Match: `*"sample1.txt"*`, Exit: 0, Write: "0000"}}, stub.Rules...)
	subject, samples := workspace(t, stub)

	stdout, stderr, err := execute(t, &RootOptions{}, "-f", subject, "--samples", samples)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Test 2 sample1 compare  FAILED")
	assert.Contains(t, stderr, "artifact mismatch (-want +got)")
}

func TestRootCustomArtifactAndCatalog(t *testing.T) {
	subject, samples := workspace(t, testutil.Stub{
		Rules:       []testutil.StubRule{{Match: `*"only.txt"*`, Exit: 0, Write: "FF"}},
		DefaultExit: 1,
	})
	artifact := filepath.Join(t.TempDir(), "custom.out")
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`
basic:
  - label: "only exec"
    args: ["-i", "{samples}/only.txt", "-o", "{artifact}"]
    expect: success
    golden:
      label: "only compare"
      want: "FF"
`), 0644))

	stdout, _, err := execute(t, &RootOptions{},
		"-f", subject, "--samples", samples, "--artifact", artifact, "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Equal(t, "Test 1 only exec        OK\nTest 2 only compare     OK\nTEST PASSED\n", stdout)
	assert.NoFileExists(t, artifact)
}

func TestRootBadCatalog(t *testing.T) {
	subject, samples := workspace(t, testutil.ConformingStub())
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("basic: []\n"), 0644))

	_, _, err := execute(t, &RootOptions{}, "-f", subject, "--samples", samples, "--catalog", catalogPath)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestRootJournal(t *testing.T) {
	subject, samples := workspace(t, testutil.ConformingStub())
	journal := filepath.Join(t.TempDir(), "runs.db")
	opts := &RootOptions{RunIDs: testutil.NewFixedRunIDs("run-1", "run-2")}

	_, _, err := execute(t, opts, "-f", subject, "--samples", samples, "--journal", journal)
	require.NoError(t, err)

	failing, samples2 := workspace(t, testutil.Stub{DefaultExit: 1})
	_, _, err = execute(t, opts, "-f", failing, "--samples", samples2, "--journal", journal)
	require.Error(t, err)

	st, err := store.Open(journal)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ReadRuns(testContext(t))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, store.StatusPassed, runs[0].Status)
	assert.Equal(t, 6, runs[0].Checks)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, store.StatusFailed, runs[1].Status)
	assert.Equal(t, 1, runs[1].Checks)
	assert.Equal(t, runs[0].CatalogDigest, runs[1].CatalogDigest)

	checks, err := st.ReadChecks(testContext(t), "run-2")
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.False(t, checks[0].Passed)
	assert.Equal(t, 1, checks[0].ExitStatus)
}

func TestRootSubjectRelativeToWorkingDirectory(t *testing.T) {
	subject, samples := workspace(t, testutil.ConformingStub())
	testChdir(t, filepath.Dir(subject))
	t.Setenv("PATH", "/usr/bin:/bin")

	stdout, _, err := execute(t, &RootOptions{}, "-f", filepath.Base(subject), "--samples", samples)
	require.NoError(t, err, "a bare name resolves against the working directory, not $PATH")
	assertGolden(t, "basic_pass", stdout)
}

func TestRootUsesCommandContext(t *testing.T) {
	stub := testutil.ConformingStub()
	stub.Log = filepath.Join(t.TempDir(), "calls.log")
	subject, samples := workspace(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{})
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-f", subject, "--samples", samples})

	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Empty(t, testutil.ReadLog(t, stub.Log), "the subject never runs")
}
