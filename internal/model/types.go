package model

import "fmt"

// CallSite represents one matched data-access invocation holding an
// inline SQL string literal.
type CallSite struct {
	Method string // one of createQuery, createUpdate, prepareBatch, commit
	SQL    string // merged literal text, fragment joins folded to single spaces
	Indent string // leading whitespace of the line containing the call
	Start  int    // byte offset of the match within the file content
	End    int    // byte offset just past the match
}

// FileStatus classifies the outcome of processing one file
type FileStatus string

const (
	StatusRewritten FileStatus = "REWRITTEN"
	StatusUnchanged FileStatus = "UNCHANGED"
	StatusFailed    FileStatus = "FAILED"
)

// FileResult is the per-file outcome of one driver pass. Failures are
// carried here rather than aborting the traversal.
type FileResult struct {
	Path      string
	Status    FileStatus
	CallSites int // call sites reformatted in this file
	Err       error
}

func (r FileResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: [%s] %v", r.Path, r.Status, r.Err)
	}
	return fmt.Sprintf("%s: [%s]", r.Path, r.Status)
}
