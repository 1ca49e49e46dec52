// Package report renders probe run outcomes: live console output while a
// run progresses and an optional JSON artifact exported through blob
// storage.
package report

import (
	"fmt"
	"io"

	"github.com/hairizuanbinnoorazman/flashprobe/probe"
)

// ConsoleReporter prints step outcomes and the final summary as a run
// progresses. It implements probe.Reporter.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to the given output.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// StepStarted announces the step about to run.
func (r *ConsoleReporter) StepStarted(name string) {
	fmt.Fprintf(r.out, "\n> %s\n", name)
}

// StepFinished prints one result line: STATUS | name | detail.
func (r *ConsoleReporter) StepFinished(res probe.StepResult) {
	label := statusLabel(res.Status)
	if res.Detail != "" {
		fmt.Fprintf(r.out, "%s | %s | %s\n", label, res.Name, res.Detail)
		return
	}
	fmt.Fprintf(r.out, "%s | %s\n", label, res.Name)
}

// RunFinished prints the summary block.
func (r *ConsoleReporter) RunFinished(sum probe.Summary) {
	fmt.Fprintf(r.out, "\nPassed:  %d\n", sum.Passed)
	fmt.Fprintf(r.out, "Failed:  %d\n", sum.Failed)
	fmt.Fprintf(r.out, "Skipped: %d\n", sum.Skipped)
	fmt.Fprintf(r.out, "Total:   %d\n", sum.Total())
}

func statusLabel(status probe.Status) string {
	switch status {
	case probe.StatusPassed:
		return "PASS"
	case probe.StatusFailed:
		return "FAIL"
	case probe.StatusSkipped:
		return "SKIP"
	default:
		return string(status)
	}
}
