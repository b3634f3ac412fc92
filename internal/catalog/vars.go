package catalog

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Vars holds the values substituted for catalog placeholders.
type Vars struct {
	Samples  string // {samples}
	Artifact string // {artifact}
	Workdir  string // {workdir}
}

// NewVars derives Vars from a samples directory and an artifact path.
// An empty artifact defaults to sample.txt.temp inside the samples directory.
func NewVars(samples, artifact string) Vars {
	if artifact == "" {
		artifact = filepath.Join(samples, "sample.txt.temp")
	}
	return Vars{
		Samples:  samples,
		Artifact: artifact,
		Workdir:  filepath.Dir(artifact),
	}
}

// Expand returns a copy of s with placeholders substituted in its argument
// vector and remove list. Golden content is never expanded.
func (v Vars) Expand(s Scenario) Scenario {
	r := strings.NewReplacer(
		"{samples}", v.Samples,
		"{artifact}", v.Artifact,
		"{workdir}", v.Workdir,
	)
	out := s
	out.Args = lo.Map(s.Args, func(arg string, _ int) string { return r.Replace(arg) })
	if s.Remove != nil {
		out.Remove = lo.Map(s.Remove, func(p string, _ int) string { return r.Replace(p) })
	}
	return out
}
