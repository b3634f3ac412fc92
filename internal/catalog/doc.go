// Package catalog defines the ordered table of acceptance scenarios.
//
// A catalog is a YAML document with two ordered lists: the basic set, which
// always runs, and the extended set, which runs only when enabled. Each
// scenario describes one subject invocation and its expected outcome:
//
//	basic:
//	  - label: "sample1 exec"
//	    args: ["-i", "{samples}/sample1.txt", "-o", "{artifact}", "-s", "6"]
//	    expect: success
//	    golden:
//	      label: "sample1 compare"
//	      want: "00000000004030000000000000203000"
//	extended:
//	  - label: "opt error"
//	    args: ["-0"]
//	    expect: failure
//	    io: silent
//
// Catalogs are checked against an embedded CUE schema (shape, enums, unknown
// fields) and then against ordering rules in Go. The default catalog is
// embedded in the binary; see Default.
package catalog
