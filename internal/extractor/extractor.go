package extractor

import (
	"regexp"
	"strings"

	"daofmt/internal/model"
)

// Patterns are compiled once at package init. Go's RE2 engine is
// linear-time, and the \s classes match newlines, so a literal wrapped
// over several source lines still matches as one span.
// We can't use backreferences in Go regexp (RE2), but none are needed:
// the literal chain is a plain sequence of quoted fragments.
var (
	// A call to one of the four data-access methods, followed by a
	// double-quoted literal possibly split into `"..." + "..."` fragments.
	callSiteRE = regexp.MustCompile(`(?s)(createQuery|createUpdate|prepareBatch|commit)\(\s*"([^"]+(?:\s*"\s*\+\s*"[^"]+)*)"`)

	// The seam between two concatenated fragments, folded to one space.
	fragmentJoinRE = regexp.MustCompile(`(?s)"\s*\+\s*"`)
)

// CallSiteExtractor locates data-access call sites carrying inline SQL
// literals and captures the raw text plus the call's indentation.
type CallSiteExtractor struct {
}

func NewCallSiteExtractor() *CallSiteExtractor {
	return &CallSiteExtractor{}
}

// Extract returns every non-overlapping call site in content, in order
// of appearance. Files without call sites yield an empty slice.
func (e *CallSiteExtractor) Extract(content string) []model.CallSite {
	var sites []model.CallSite

	for _, m := range callSiteRE.FindAllStringSubmatchIndex(content, -1) {
		start, end := m[0], m[1]
		method := content[m[2]:m[3]]
		raw := content[m[4]:m[5]]

		sites = append(sites, model.CallSite{
			Method: method,
			SQL:    fragmentJoinRE.ReplaceAllString(raw, " "),
			Indent: lineIndent(content, start),
			Start:  start,
			End:    end,
		})
	}

	return sites
}

// lineIndent returns the whitespace prefix of the line containing the
// byte offset pos. This is the base indentation the formatter aligns
// the re-emitted literal block against.
func lineIndent(content string, pos int) string {
	lineStart := strings.LastIndexByte(content[:pos], '\n') + 1

	i := lineStart
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	return content[lineStart:i]
}
