package model

// Reporter defines how per-file progress and outcomes reach the user
type Reporter interface {
	// Start announces that processing of a file has begun
	Start(path string)
	// Finish reports the outcome for one file
	Finish(res FileResult)
	// Summary prints the final completion line after the full traversal
	Summary(results []FileResult) error
}
