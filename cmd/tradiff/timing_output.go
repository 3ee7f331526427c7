package main

import (
	"fmt"
	"io"

	"tradiff/internal/observ"
)

// printTimings writes the phase table when --timings is set.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
