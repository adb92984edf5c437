package main

import (
	"fmt"
	"io"
)

// Fail reports a chart that could not be used and carries on.
func Fail(w io.Writer, path string, reason error) {
	fmt.Fprintf(w, "fail: %s: %v\n", path, reason)
}
