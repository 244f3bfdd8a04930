// Package formatter turns a raw SQL string into the padded,
// keyword-aligned block of quoted lines that replaces the literal at a
// call site.
package formatter

import (
	"strings"
)

// DefaultIndentOffset is the column distance between a call's base
// indentation and the re-emitted literal, matching the conventional
// formatting where the literal starts after the opening parenthesis.
const DefaultIndentOffset = 16

// itemMarker prefixes clause-body lines to set them apart from clause
// keywords. Fixed, not a configuration knob.
const itemMarker = "  "

// keywords is the closed clause vocabulary. Immutable after init;
// lookups are case-insensitive. Two-word entries win over their first
// word ("ORDER BY" is never split into "ORDER" plus a body line).
var keywords = map[string]struct{}{
	"SELECT":     {},
	"FROM":       {},
	"WHERE":      {},
	"ORDER BY":   {},
	"GROUP BY":   {},
	"HAVING":     {},
	"LIMIT":      {},
	"OFFSET":     {},
	"INSERT":     {},
	"UPDATE":     {},
	"DELETE":     {},
	"JOIN":       {},
	"LEFT JOIN":  {},
	"RIGHT JOIN": {},
	"INNER JOIN": {},
	"VALUES":     {},
	"SET":        {},
	"AND":        {},
	"OR":         {},
	"ON":         {},
	"INTO":       {},
	"COMMIT":     {},
}

func isKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// clause is one segment of the tokenized statement: either a keyword
// from the closed vocabulary or a run of free text between keywords.
type clause struct {
	text    string
	keyword bool
}

// Formatter renders SQL text as an aligned multi-line literal block.
type Formatter struct {
	// IndentOffset is added to the call site's base indentation to
	// place the literal column.
	IndentOffset int
}

func New() *Formatter {
	return &Formatter{IndentOffset: DefaultIndentOffset}
}

// Format renders sql as a sequence of fully quoted source lines aligned
// under baseIndent. Every quoted payload is padded to a uniform width.
// Degenerate input (no words) formats to zero lines.
func (f *Formatter) Format(sql string, baseIndent string) []string {
	// Collapse all whitespace runs, newlines included, to single spaces.
	words := strings.Fields(sql)

	parts := renderParts(segmentClauses(words))
	if len(parts) == 0 {
		return nil
	}

	width := maxWidth(parts) + 1
	indent := strings.Repeat(" ", len(baseIndent)+f.IndentOffset)

	lines := make([]string, 0, len(parts))
	for i, part := range parts {
		padded := padTo(part, width)
		if i == 0 {
			lines = append(lines, indent+`"`+padded+`"`)
		} else {
			lines = append(lines, indent+`+ "`+padded+`"`)
		}
	}
	return lines
}

// segmentClauses scans word by word, preferring two-word keywords over
// single-word ones, and flushes accumulated free text whenever a
// keyword starts a new clause.
func segmentClauses(words []string) []clause {
	var clauses []clause
	var run []string

	flush := func() {
		if len(run) > 0 {
			clauses = append(clauses, clause{text: strings.Join(run, " ")})
			run = nil
		}
	}

	for i := 0; i < len(words); {
		if i+1 < len(words) {
			pair := words[i] + " " + words[i+1]
			if isKeyword(pair) {
				flush()
				clauses = append(clauses, clause{text: pair, keyword: true})
				i += 2
				continue
			}
		}

		if isKeyword(words[i]) {
			flush()
			clauses = append(clauses, clause{text: words[i], keyword: true})
		} else {
			run = append(run, words[i])
		}
		i++
	}
	flush()

	return clauses
}

// renderParts expands clauses into output lines before padding:
// keywords stay verbatim, comma lists become one marked line per item,
// other free text becomes a single marked line.
func renderParts(clauses []clause) []string {
	var parts []string
	for _, c := range clauses {
		switch {
		case c.keyword:
			parts = append(parts, c.text)
		case strings.Contains(c.text, ","):
			for _, item := range splitListItems(c.text) {
				parts = append(parts, itemMarker+item)
			}
		default:
			parts = append(parts, itemMarker+c.text)
		}
	}
	return parts
}

// splitListItems splits a comma-separated list into trimmed items,
// dropping empties from stray commas and reattaching a trailing comma
// to every item but the last.
func splitListItems(text string) []string {
	text = strings.TrimRight(text, ",")

	var items []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	for i := 0; i < len(items)-1; i++ {
		items[i] += ","
	}
	return items
}

// maxWidth is the longest part length after stripping trailing
// whitespace; the caller adds one to get the padding width.
func maxWidth(parts []string) int {
	maxLen := 0
	for _, part := range parts {
		if n := len(strings.TrimRight(part, " \t")); n > maxLen {
			maxLen = n
		}
	}
	return maxLen
}

// padTo stretches s to exactly width with trailing spaces. Inputs are
// never longer than width by construction.
func padTo(s string, width int) string {
	s = strings.TrimRight(s, " \t")
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
