package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	var exitErr *exitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.err == nil) {
		fmt.Fprintln(os.Stderr, "scriptindex:", err)
	}
	os.Exit(exitCode(err))
}
