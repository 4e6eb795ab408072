// Package main provides the ctxsim CLI tool.
//
// Usage:
//
//	ctxsim score -i stimuli.txt -m vectors.vec -o out/
//	ctxsim neighbors -m vectors.vec -k 5 cat dog
//	ctxsim version
package main

import (
	"fmt"
	"os"

	"github.com/viant/ctxsim/cmd/ctxsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
