package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"daofmt/internal/model"
)

type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer
}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout, errOut: os.Stderr}
}

func (r *ConsoleReporter) Start(path string) {
	fmt.Fprintf(r.out, "Processing file: %s\n", path)
}

func (r *ConsoleReporter) Finish(res model.FileResult) {
	switch res.Status {
	case model.StatusFailed:
		// Failures go to the error stream; the run itself carries on.
		fmt.Fprintf(r.errOut, "%s Error processing %s: %v\n", color.RedString("✘"), res.Path, res.Err)
	case model.StatusRewritten:
		fmt.Fprintf(r.out, "%s Updated %s (%d call sites)\n", color.GreenString("✔"), res.Path, res.CallSites)
	default:
		fmt.Fprintf(r.out, "Updated %s\n", res.Path)
	}
}

func (r *ConsoleReporter) Summary(results []model.FileResult) error {
	var rewritten, failed int
	for _, res := range results {
		switch res.Status {
		case model.StatusRewritten:
			rewritten++
		case model.StatusFailed:
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(r.out, "\nDAO SQL formatting completed. %d of %d files updated, %s.\n",
			rewritten, len(results), color.RedString("%d failed", failed))
		return nil
	}
	fmt.Fprintf(r.out, "\nDAO SQL formatting completed. %d of %d files updated.\n", rewritten, len(results))
	return nil
}
