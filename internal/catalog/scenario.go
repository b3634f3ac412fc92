package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/acceptance/internal/canon"
)

//go:embed default.yaml
var defaultCatalog []byte

// Outcome is the expected exit status class of an invocation.
type Outcome string

// Outcome values.
const (
	Success Outcome = "success" // exit status 0
	Failure Outcome = "failure" // any non-zero exit status
)

// IOMode selects what happens to the subject's standard streams.
type IOMode string

// IOMode values.
const (
	Observed IOMode = "observed" // streams inherited from the harness
	Silent   IOMode = "silent"   // streams discarded
)

// GoldenSource selects which content a golden comparison checks.
type GoldenSource string

// GoldenSource values.
const (
	// SourceArtifact reads the artifact written by this scenario's invocation.
	SourceArtifact GoldenSource = "artifact"

	// SourcePrevious reuses the content captured by the most recent earlier
	// artifact comparison instead of reading the artifact again.
	SourcePrevious GoldenSource = "previous"
)

// Golden is the content assertion attached to a successful scenario.
type Golden struct {
	// Label names the comparison check in the transcript.
	Label string `yaml:"label"`

	// Source defaults to SourceArtifact.
	Source GoldenSource `yaml:"source,omitempty"`

	// Want is the exact expected artifact content. No trimming, no
	// normalization.
	Want string `yaml:"want"`
}

// Scenario is one declarative invocation of the subject.
type Scenario struct {
	// Label names the exec check in the transcript.
	Label string `yaml:"label"`

	// Args is the argument vector passed to the subject. May contain
	// placeholders; see Vars.
	Args []string `yaml:"args"`

	// Expect is the expected exit status class.
	Expect Outcome `yaml:"expect"`

	// IO defaults to Observed.
	IO IOMode `yaml:"io,omitempty"`

	// Golden, if set, compares artifact content after a successful exec.
	Golden *Golden `yaml:"golden,omitempty"`

	// Remove lists stray files the harness deletes after the invocation,
	// for subjects that create an output before failing.
	Remove []string `yaml:"remove,omitempty"`
}

// ID returns the content-addressed fingerprint of the scenario.
// Fingerprints are computed on the unexpanded argument vector so they do not
// depend on where samples live on a given machine.
func (s Scenario) ID() (string, error) {
	want := ""
	if s.Golden != nil {
		want = s.Golden.Want
	}
	return canon.ScenarioID(s.Label, s.Args, string(s.Expect), want)
}

// Catalog is the full scenario table.
type Catalog struct {
	Basic    []Scenario `yaml:"basic"`
	Extended []Scenario `yaml:"extended,omitempty"`
}

// Select returns the scenarios to run, in order: the basic set followed by
// the extended set when extended is true.
func (c *Catalog) Select(extended bool) []Scenario {
	out := make([]Scenario, 0, len(c.Basic)+len(c.Extended))
	out = append(out, c.Basic...)
	if extended {
		out = append(out, c.Extended...)
	}
	return out
}

// Digest fingerprints the selected scenario sequence.
func (c *Catalog) Digest(extended bool) (string, error) {
	selected := c.Select(extended)
	ids := make([]string, len(selected))
	for i, s := range selected {
		id, err := s.ID()
		if err != nil {
			return "", fmt.Errorf("scenario %q: %w", s.Label, err)
		}
		ids[i] = id
	}
	return canon.CatalogDigest(ids)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse("default.yaml", defaultCatalog)
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the catalog schema, decodes it and checks
// ordering rules. name is used in error positions only.
func Parse(name string, data []byte) (*Catalog, error) {
	if err := validateSchema(name, data); err != nil {
		return nil, err
	}

	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(c.Basic)
	applyDefaults(c.Extended)

	if err := validateCatalog(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func applyDefaults(scenarios []Scenario) {
	for i := range scenarios {
		s := &scenarios[i]
		if s.IO == "" {
			s.IO = Observed
		}
		if s.Args == nil {
			s.Args = []string{}
		}
		if s.Golden != nil && s.Golden.Source == "" {
			s.Golden.Source = SourceArtifact
		}
	}
}

// validateCatalog checks the rules the schema cannot express.
func validateCatalog(c *Catalog) error {
	if len(c.Basic) == 0 {
		return fmt.Errorf("basic list is required and must be non-empty")
	}
	if err := validateSequence("basic", c.Basic, nil); err != nil {
		return err
	}
	return validateSequence("extended", c.Extended, c.Basic)
}

// validateSequence validates scenarios as they would run after before.
func validateSequence(set string, scenarios, before []Scenario) error {
	labels := make(map[string]bool)
	captured := false
	for _, s := range before {
		labels[s.Label] = true
		if s.Golden != nil {
			labels[s.Golden.Label] = true
			captured = true
		}
	}

	for i, s := range scenarios {
		if s.Label == "" {
			return fmt.Errorf("%s[%d]: label is required", set, i)
		}
		if labels[s.Label] {
			return fmt.Errorf("%s[%d]: duplicate label %q", set, i, s.Label)
		}
		labels[s.Label] = true

		switch s.Expect {
		case Success, Failure:
		default:
			return fmt.Errorf("%s[%d]: unknown expect %q", set, i, s.Expect)
		}
		switch s.IO {
		case Observed, Silent:
		default:
			return fmt.Errorf("%s[%d]: unknown io mode %q", set, i, s.IO)
		}

		for j, p := range s.Remove {
			if p == "" {
				return fmt.Errorf("%s[%d].remove[%d]: path is required", set, i, j)
			}
		}

		if s.Golden == nil {
			continue
		}
		g := s.Golden
		if s.Expect != Success {
			return fmt.Errorf("%s[%d].golden: only allowed when expect is %q", set, i, Success)
		}
		if g.Label == "" {
			return fmt.Errorf("%s[%d].golden: label is required", set, i)
		}
		if labels[g.Label] {
			return fmt.Errorf("%s[%d].golden: duplicate label %q", set, i, g.Label)
		}
		labels[g.Label] = true

		switch g.Source {
		case SourceArtifact:
		case SourcePrevious:
			if !captured {
				return fmt.Errorf("%s[%d].golden: source %q needs an earlier golden comparison", set, i, SourcePrevious)
			}
		default:
			return fmt.Errorf("%s[%d].golden: unknown source %q", set, i, g.Source)
		}
		captured = true
	}
	return nil
}
