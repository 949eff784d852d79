// runc-go-seccomp loads an OCI runtime config.json, merges its seccomp
// rules into a filter database, and installs the resulting BPF filter
// on the current process.
//
// This is the repository's one CLI entrypoint: just enough of a
// command to make the package reachable from a real bundle, not a
// container-runtime frontend.
package main

import (
	"fmt"
	"os"

	"runc-go/linux"
	"runc-go/spec"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: runc-go-seccomp <config.json>")
		os.Exit(1)
	}

	s, err := spec.LoadSpec(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load spec: %v\n", err)
		os.Exit(1)
	}

	if s.Linux == nil || s.Linux.Seccomp == nil {
		fmt.Fprintln(os.Stderr, "config has no linux.seccomp section")
		os.Exit(1)
	}

	if err := linux.SetupSeccomp(s.Linux.Seccomp); err != nil {
		fmt.Fprintf(os.Stderr, "setup seccomp: %v\n", err)
		os.Exit(1)
	}
}
