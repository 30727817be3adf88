// Package report collects per-check outcomes and renders the banner output
// and end-of-run summary the harness prints.
package report

import (
	"fmt"
	"strings"
	"time"
)

const bannerWidth = 80

// Result is the outcome of a single check
type Result struct {
	Suite    string
	Check    string
	Passed   bool
	Skipped  bool
	Err      error
	Detail   string // optional human note, shown in the banner
	Duration time.Duration
}

// Recorder accumulates results across one harness invocation
type Recorder struct {
	results []Result
	quiet   bool
}

// NewRecorder returns a Recorder that prints a banner per result
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewQuietRecorder returns a Recorder that records without printing,
// for use in tests
func NewQuietRecorder() *Recorder {
	return &Recorder{quiet: true}
}

// Record stores the result and prints its banner
func (r *Recorder) Record(res Result) {
	r.results = append(r.results, res)
	if r.quiet {
		return
	}

	line := strings.Repeat("=", bannerWidth)
	fmt.Println(line)
	fmt.Printf("CHECK: %s / %s\n", res.Suite, res.Check)
	switch {
	case res.Skipped:
		fmt.Println("STATUS: ⚠️  SKIPPED")
	case res.Passed:
		fmt.Println("STATUS: ✅ SUCCESS")
	default:
		fmt.Println("STATUS: ❌ FAILED")
	}
	if res.Detail != "" {
		fmt.Printf("DETAIL: %s\n", res.Detail)
	}
	if res.Err != nil {
		fmt.Printf("ERROR: %v\n", res.Err)
	}
	fmt.Printf("TOOK: %v\n", res.Duration.Round(time.Millisecond))
	fmt.Println(line)
}

// Pass records a successful check
func (r *Recorder) Pass(suite, check string, took time.Duration, detail string) {
	r.Record(Result{Suite: suite, Check: check, Passed: true, Detail: detail, Duration: took})
}

// Fail records a failed check
func (r *Recorder) Fail(suite, check string, took time.Duration, err error) {
	r.Record(Result{Suite: suite, Check: check, Err: err, Duration: took})
}

// Skip records a check that could not run because a prerequisite failed
func (r *Recorder) Skip(suite, check, why string) {
	r.Record(Result{Suite: suite, Check: check, Skipped: true, Detail: why})
}

// Results returns everything recorded so far
func (r *Recorder) Results() []Result {
	return r.results
}

// Passed counts successful checks
func (r *Recorder) Passed() int {
	n := 0
	for _, res := range r.results {
		if res.Passed {
			n++
		}
	}
	return n
}

// Failed counts failed checks (skips are not failures)
func (r *Recorder) Failed() int {
	n := 0
	for _, res := range r.results {
		if !res.Passed && !res.Skipped {
			n++
		}
	}
	return n
}

// AllPassed reports whether no executed check failed
func (r *Recorder) AllPassed() bool {
	return r.Failed() == 0
}

// Summary renders the end-of-run table as text, used both for stdout and
// for the failure email body
func (r *Recorder) Summary() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	b.WriteString("CHECK SUMMARY\n")
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	for _, res := range r.results {
		status := "SUCCESS"
		if res.Skipped {
			status = "SKIPPED"
		} else if !res.Passed {
			status = "FAILED"
		}
		b.WriteString(fmt.Sprintf("%-50s %s\n", res.Suite+"/"+res.Check, status))
	}
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	b.WriteString(fmt.Sprintf("Total: %d  Passed: %d  Failed: %d\n",
		len(r.results), r.Passed(), r.Failed()))
	return b.String()
}

// PrintSummary writes the summary to stdout
func (r *Recorder) PrintSummary() {
	fmt.Println()
	fmt.Print(r.Summary())
	if r.AllPassed() {
		fmt.Println("\n✅ All checks passed")
	} else {
		fmt.Printf("\n❌ %d check(s) failed\n", r.Failed())
	}
}
