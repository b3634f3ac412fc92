package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StubRule makes a stub subject react to argument vectors matching Match.
//
// Match is a shell case pattern tested against the space-joined arguments,
// e.g. "*sample1.txt*" or `*"-s 1"*`. It is written into the script verbatim.
// An empty pattern matches only an empty argument vector.
type StubRule struct {
	Match string

	// Exit is the status the stub exits with.
	Exit int

	// Write, if non-empty, is written verbatim to the -o path (when one is
	// given) before exiting.
	Write string

	// Touch creates an empty -o file before exiting, for subjects that
	// leave a dangling output behind when they fail.
	Touch bool
}

// Stub describes a shell-script stand-in for the subject.
type Stub struct {
	// Rules are tried in order; the first match wins.
	Rules []StubRule

	// DefaultExit applies when no rule matches.
	DefaultExit int

	// Log, if set, receives one line per invocation with the arguments.
	Log string
}

// WriteStub writes the stub as an executable script in dir and returns its
// path.
func WriteStub(t testing.TB, dir string, s Stub) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	if s.Log != "" {
		fmt.Fprintf(&b, "printf 'run:%%s\\n' \"$*\" >> %s\n", shellQuote(s.Log))
	}
	b.WriteString("out=\"\"\nprev=\"\"\n")
	b.WriteString("for a in \"$@\"; do\n")
	b.WriteString("  if [ \"$prev\" = \"-o\" ]; then out=\"$a\"; fi\n")
	b.WriteString("  prev=\"$a\"\n")
	b.WriteString("done\n")
	b.WriteString("case \"$*\" in\n")
	for _, r := range s.Rules {
		pattern := r.Match
		if pattern == "" {
			pattern = "''"
		}
		fmt.Fprintf(&b, "  %s)\n", pattern)
		if r.Write != "" {
			fmt.Fprintf(&b, "    [ -n \"$out\" ] && printf '%%s' %s > \"$out\"\n", shellQuote(r.Write))
		} else if r.Touch {
			b.WriteString("    [ -n \"$out\" ] && : > \"$out\"\n")
		}
		fmt.Fprintf(&b, "    exit %d ;;\n", r.Exit)
	}
	b.WriteString("esac\n")
	fmt.Fprintf(&b, "exit %d\n", s.DefaultExit)

	return WriteScript(t, dir, "subject", b.String())
}

// WriteScript writes an executable file named name in dir.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// ReadLog returns the lines a stub logged, one per invocation.
func ReadLog(t testing.TB, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read stub log %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if args, ok := strings.CutPrefix(line, "run:"); ok {
			lines = append(lines, args)
		}
	}
	return lines
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Golden artifact contents of the default catalog's basic scenarios.
const (
	Sample1Result = "00000000004030000000000000203000"
	Sample2Result = "00000000005030000000000000603000"
)

// ConformingStub behaves the way the default catalog expects of a correct
// subject, for both the basic and the extended set. Arguments are matched
// by their tails, so it works with any samples directory and artifact path.
//
// The sample3 run writes content that differs from its golden value; the
// catalog compares that scenario against the previous capture.
func ConformingStub() Stub {
	return Stub{
		Rules: []StubRule{
			{Match: `*" -p"`, Exit: 0, Touch: true},
			{Match: `*" -e"`, Exit: 0, Touch: true},
			{Match: `*"sample1.txt -o "*" -s 6 -l 47"`, Exit: 0, Write: Sample1Result},
			{Match: `*"sample2.txt -o "*" -l 47"`, Exit: 0, Write: Sample2Result},
			{Match: `*"sample3.txt -o "*" -s 1"`, Exit: 0, Write: "9999"},
			{Match: `*"sample4.txt"*`, Exit: 1, Touch: true},
			{Match: `"-o "*`, Exit: 1, Touch: true},
		},
		DefaultExit: 1,
	}
}
