package reporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"daofmt/internal/model"
)

func TestConsoleReporter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := &ConsoleReporter{out: &out, errOut: &errOut}

	r.Start("a/UserDao.java")

	results := []model.FileResult{
		{Path: "a/UserDao.java", Status: model.StatusRewritten, CallSites: 2},
		{Path: "a/PlainDao.java", Status: model.StatusUnchanged},
		{Path: "a/BrokenDao.java", Status: model.StatusFailed, Err: errors.New("read failed")},
	}
	for _, res := range results {
		r.Finish(res)
	}
	if err := r.Summary(results); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	stdout := out.String()
	stderr := errOut.String()

	if !strings.Contains(stdout, "Processing file: a/UserDao.java") {
		t.Errorf("missing processing line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Updated a/UserDao.java (2 call sites)") {
		t.Errorf("missing rewritten line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Updated a/PlainDao.java") {
		t.Errorf("missing unchanged line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "DAO SQL formatting completed. 1 of 3 files updated") {
		t.Errorf("missing summary line:\n%s", stdout)
	}

	// Failures land on the error stream only.
	if !strings.Contains(stderr, "Error processing a/BrokenDao.java: read failed") {
		t.Errorf("missing error line:\n%s", stderr)
	}
	if strings.Contains(stdout, "BrokenDao") {
		t.Errorf("failure leaked to stdout:\n%s", stdout)
	}
}
