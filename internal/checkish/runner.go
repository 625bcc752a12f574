// ABOUTME: Eager describe/test runner for the checkish harness.
// ABOUTME: Registration and execution are the same step; async cases are tracked until settled.

package checkish

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Runner executes groups and cases eagerly: a Describe call runs its body
// before returning. The runner is an explicit capability so a deferred
// collection phase could later slot in behind the same surface.
type Runner struct {
	out io.Writer

	mu           sync.Mutex
	pendingSetup func()
	passed       int
	failed       int

	async sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects the runner's report, which is useful for tests.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// NewRunner constructs a Runner writing to stdout unless overridden.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BeforeEach stores fn as the single pending setup callback. Registering a
// new one discards the previous. The callback runs once per Describe body,
// not once per case.
func (r *Runner) BeforeEach(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingSetup = fn
}

// Group is the execution context threaded through a Describe body. Cases
// register against it rather than against ambient state.
type Group struct {
	runner *Runner
	name   string
}

// Describe prints the group header, runs the pending setup callback exactly
// once, then invokes body synchronously with the group context.
func (r *Runner) Describe(name string, body func(*Group)) {
	fmt.Fprintf(r.out, "\n%s\n", name)

	r.mu.Lock()
	setup := r.pendingSetup
	r.mu.Unlock()
	if setup != nil {
		setup()
	}

	body(&Group{runner: r, name: name})
}

// Test prints the case header and runs body immediately. A raised Failure or
// any other panic is recovered and reported; one failing case never aborts
// the remaining registrations.
func (g *Group) Test(name string, body func()) {
	fmt.Fprintf(g.runner.out, "  • %s\n", name)
	if err := runRecovered(body); err != nil {
		g.runner.record(false)
		fmt.Fprintf(g.runner.out, "    FAILED: %s\n", err)
		return
	}
	g.runner.record(true)
	fmt.Fprintf(g.runner.out, "    PASSED\n")
}

// TestAsync runs body on its own goroutine and reports when it settles, which
// may interleave after later synchronous output. Wait blocks until every
// async case has settled.
func (g *Group) TestAsync(name string, body func() error) {
	fmt.Fprintf(g.runner.out, "  • %s (async)\n", name)
	g.runner.async.Add(1)
	go func() {
		defer g.runner.async.Done()
		err := runRecovered(func() {
			if e := body(); e != nil {
				panic(&Failure{msg: e.Error()})
			}
		})
		if err != nil {
			g.runner.record(false)
			fmt.Fprintf(g.runner.out, "    FAILED (async) %s: %s\n", name, err)
			return
		}
		g.runner.record(true)
		fmt.Fprintf(g.runner.out, "    PASSED (async) %s\n", name)
	}()
}

// Wait blocks until all pending async cases have settled. A run is only
// finished once Wait returns.
func (r *Runner) Wait() {
	r.async.Wait()
}

// Failures reports the number of failed cases so far.
func (r *Runner) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Summary renders the aggregate outcome line.
func (r *Runner) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%d passed, %d failed", r.passed, r.failed)
}

func (r *Runner) record(pass bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pass {
		r.passed++
	} else {
		r.failed++
	}
}

func runRecovered(body func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f, ok := rec.(*Failure); ok {
				err = f
				return
			}
			err = fmt.Errorf("unexpected panic: %v", rec)
		}
	}()
	body()
	return nil
}

// Package-level surface delegating to a shared default runner, so simple
// suites can call Describe/BeforeEach without constructing a Runner.
var defaultRunner = NewRunner()

// Describe delegates to the default runner.
func Describe(name string, body func(*Group)) {
	defaultRunner.Describe(name, body)
}

// BeforeEach delegates to the default runner.
func BeforeEach(fn func()) {
	defaultRunner.BeforeEach(fn)
}

// Wait delegates to the default runner.
func Wait() {
	defaultRunner.Wait()
}
