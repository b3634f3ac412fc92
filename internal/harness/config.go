package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/acceptance/internal/catalog"
)

// ConfigError reports harness configuration that prevents any scenario from
// running.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is the harness-level configuration.
type Config struct {
	// Subject is the path of the executable under test. Required.
	Subject string

	// Extended enables the extended scenario set.
	Extended bool

	// Samples is the directory holding the sample inputs.
	Samples string

	// Artifact is the output path handed to the subject. Defaults to
	// sample.txt.temp inside Samples.
	Artifact string
}

// Validate checks that the subject exists and is not a directory.
func (c Config) Validate() error {
	if c.Subject == "" {
		return &ConfigError{Message: "Unspecified file name"}
	}
	info, err := os.Stat(c.Subject)
	if errors.Is(err, os.ErrNotExist) {
		return &ConfigError{Message: fmt.Sprintf("File %s not found", c.Subject)}
	}
	if err != nil {
		return &ConfigError{Message: fmt.Sprintf("File %s is not accessible", c.Subject), Err: err}
	}
	if info.IsDir() {
		return &ConfigError{Message: fmt.Sprintf("File %s is a directory", c.Subject)}
	}
	return nil
}

// SubjectPath returns the subject as an absolute path. Validate resolves a
// relative subject against the working directory, while exec would search
// $PATH for a bare name; invoking the absolute path keeps the two in step.
func (c Config) SubjectPath() (string, error) {
	abs, err := filepath.Abs(c.Subject)
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("File %s is not accessible", c.Subject), Err: err}
	}
	return abs, nil
}

// Vars returns the placeholder values for this configuration.
func (c Config) Vars() catalog.Vars {
	return catalog.NewVars(c.Samples, c.Artifact)
}
