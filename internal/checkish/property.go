// ABOUTME: Property driver for the checkish harness.
// ABOUTME: Runs a predicate against repeated fresh generator output and reports the first failure.

package checkish

import (
	"fmt"
	"io"
	"os"
)

// Prop pairs a generator with a predicate. It does not run itself; Assert
// calls evaluate repeatedly.
type Prop struct {
	evaluate func() bool
}

// Property builds a Prop whose single evaluation draws one value from gen and
// applies predicate to it, passing the boolean (or any raised failure) through
// unchanged.
func Property[T any](gen Gen[T], predicate func(T) bool) *Prop {
	return &Prop{evaluate: func() bool {
		return predicate(gen())
	}}
}

// RunParams controls a property run. A nil *RunParams means defaults.
type RunParams struct {
	// NumRuns is the iteration count; 0 means the default of 100. With no
	// shrinking in this harness, more runs are the confidence lever.
	NumRuns int
	// Output receives the run report; defaults to os.Stdout.
	Output io.Writer
}

const defaultNumRuns = 100

// Assert evaluates p once per iteration. The first falsy or raising iteration
// stops the run, prints a falsification line with the 1-based iteration number
// and the underlying message, and yields false. Failure is reported, not
// escalated, so surrounding cases keep running. All-pass prints a summary and
// yields true.
func Assert(p *Prop, params *RunParams) bool {
	numRuns := defaultNumRuns
	out := io.Writer(os.Stdout)
	if params != nil {
		if params.NumRuns > 0 {
			numRuns = params.NumRuns
		}
		if params.Output != nil {
			out = params.Output
		}
	}

	for i := 0; i < numRuns; i++ {
		ok, failure := evaluateOnce(p)
		if failure != nil {
			fmt.Fprintf(out, "! Falsified on run %d: %s\n", i+1, failure.Error())
			return false
		}
		if !ok {
			fmt.Fprintf(out, "! Falsified on run %d: predicate returned false\n", i+1)
			return false
		}
	}

	fmt.Fprintf(out, "+ OK, passed %d runs.\n", numRuns)
	return true
}

// evaluateOnce runs one iteration, converting a raised failure or unexpected
// panic into an error instead of unwinding the caller.
func evaluateOnce(p *Prop) (ok bool, failure error) {
	defer func() {
		if r := recover(); r != nil {
			if f, isFailure := r.(*Failure); isFailure {
				failure = f
				return
			}
			failure = fmt.Errorf("unexpected panic: %v", r)
		}
	}()
	return p.evaluate(), nil
}
