// Package harness runs a scenario table against the subject executable.
//
// The Runner is the only control loop: for each scenario, in catalog order,
// it invokes the subject, checks the exit status class, compares the artifact
// when the scenario carries a golden literal, reports each check and removes
// the artifact before moving on.
//
// # Checks
//
// Every scenario produces an exec check. Scenarios with a golden block produce
// a second, compare check. Each check receives the next sequence number from
// the report.Reporter.
//
// # Fail-fast
//
// The first failing check ends the run. Run returns a *Failure describing it
// and no later scenario is invoked. Callers map the failure to the process
// exit status; nothing in this package exits the process.
//
// # Previous-content comparisons
//
// A golden block with source "previous" compares against the content captured
// by the most recent artifact comparison rather than reading the artifact the
// scenario just produced. The default catalog's third basic scenario relies on
// this. It is preserved as observed behavior.
//
// # Usage
//
//	cat, _ := catalog.Default()
//	r := &harness.Runner{
//	    Invoker:    invoke.New(subject),
//	    Comparator: golden.NewComparator(afero.NewOsFs()),
//	    Reporter:   report.New(os.Stdout),
//	    Vars:       catalog.NewVars("samples", ""),
//	}
//	summary, err := r.Run(ctx, cat.Select(extended))
package harness
