// Package rewriter splices formatted SQL literal blocks back into file
// content in place of the original call-site literals.
package rewriter

import (
	"fmt"
	"strings"

	"daofmt/internal/extractor"
	"daofmt/internal/formatter"
)

type Rewriter struct {
	ex *extractor.CallSiteExtractor
	fm *formatter.Formatter
}

func New(fm *formatter.Formatter) *Rewriter {
	return &Rewriter{
		ex: extractor.NewCallSiteExtractor(),
		fm: fm,
	}
}

// Rewrite replaces every call-site literal in content with its
// formatted block and returns the new content plus the number of call
// sites rewritten. Content without call sites is returned unchanged.
//
// A site whose SQL formats to zero lines is emitted as-is. Failing to
// locate the method head inside a matched span is an error for the
// whole file; the caller decides what to do with the file (the driver
// skips it and moves on).
func (r *Rewriter) Rewrite(content string) (string, int, error) {
	sites := r.ex.Extract(content)
	if len(sites) == 0 {
		return content, 0, nil
	}

	var b strings.Builder
	last := 0
	rewritten := 0

	for _, site := range sites {
		match := content[site.Start:site.End]

		lines := r.fm.Format(site.SQL, site.Indent)
		if len(lines) == 0 {
			// Degenerate SQL text: keep the original span untouched.
			b.WriteString(content[last:site.End])
			last = site.End
			continue
		}

		head := strings.Index(match, site.Method+"(")
		if head < 0 {
			return "", 0, fmt.Errorf("cannot locate %s( head in match at offset %d", site.Method, site.Start)
		}

		b.WriteString(content[last:site.Start])
		b.WriteString(match[:head])
		b.WriteString(site.Method)
		b.WriteString("(\n")
		b.WriteString(strings.Join(lines, "\n"))
		last = site.End
		rewritten++
	}
	b.WriteString(content[last:])

	return b.String(), rewritten, nil
}
