// Package markdown classifies document lines into structural contexts so
// prose rules know which lines they are allowed to evaluate.
//
// The classification is deliberately heuristic, not a full markdown parse:
// a single forward pass tracks fence and front-matter state, and everything
// else is per-line pattern matching. The heuristics are preserved as-is,
// including their known edge cases (a fence marker mid-line still toggles
// state for that line).
package markdown

import (
	"regexp"
	"strings"

	"github.com/skillworks/skillctl/internal/sourcemap"
)

const (
	fenceMarker          = "```"
	frontMatterDelimiter = "---"
)

// Inline patterns that exempt a single line from prose rules regardless of
// its structural context: blockquote/heading/list prefixes, inline code
// spans, definition-list continuation lines, and table rows.
var (
	prefixExceptionRe = regexp.MustCompile(`^\s*[>#-]\s+`)
	inlineCodeRe      = regexp.MustCompile("`[^`]+`")
	definitionListRe  = regexp.MustCompile(`^\s*:\s+`)
	tableRowRe        = regexp.MustCompile(`^\s*\|`)
	quoteRe           = regexp.MustCompile(`^\s*>`)
	fenceStartRe      = regexp.MustCompile("^\\s*```")
)

// LineContext holds the structural flags for one line.
type LineContext struct {
	// CodeBlock is true when the line is inside a fenced code block.
	// Fence-marker lines themselves carry the post-toggle state: an opening
	// fence reads as inside, a closing fence as outside. Either way fence
	// lines are exempt from prose rules (see IsException).
	CodeBlock bool

	// FrontMatter is true for the delimiter lines and body of a YAML
	// front-matter block. Only set when line 1 is exactly "---" and a
	// closing "---" exists; unterminated front matter degrades to prose.
	FrontMatter bool

	// Quote is true when the line starts a blockquote.
	Quote bool

	// Table is true when the line looks like a table row.
	Table bool
}

// Document is a classified document: the source lines plus precomputed
// per-line context flags, queried out of order by the checkers.
type Document struct {
	sm  *sourcemap.SourceMap
	ctx []LineContext
}

// Parse splits source into lines and classifies every line in a single
// forward pass. Empty input produces a document with a single empty line,
// matching how line splitting treats empty files.
func Parse(source []byte) *Document {
	sm := sourcemap.New(source)
	lines := sm.Lines()
	ctx := make([]LineContext, len(lines))

	// Front matter is only recognized when the first line is exactly "---"
	// and a closing delimiter exists somewhere below it.
	frontMatterEnd := -1
	if len(lines) > 0 && lines[0] == frontMatterDelimiter {
		for i := 1; i < len(lines); i++ {
			if lines[i] == frontMatterDelimiter {
				frontMatterEnd = i
				break
			}
		}
	}

	codeBlockActive := false
	for i, line := range lines {
		if strings.Contains(line, fenceMarker) {
			// One toggle per line, even if the line holds several markers.
			codeBlockActive = !codeBlockActive
		}
		ctx[i] = LineContext{
			CodeBlock:   codeBlockActive,
			FrontMatter: frontMatterEnd >= 0 && i <= frontMatterEnd,
			Quote:       quoteRe.MatchString(line),
			Table:       tableRowRe.MatchString(line),
		}
	}

	return &Document{sm: sm, ctx: ctx}
}

// Lines returns all lines without line endings.
func (d *Document) Lines() []string {
	return d.sm.Lines()
}

// LineCount returns the total number of lines.
func (d *Document) LineCount() int {
	return d.sm.LineCount()
}

// Line returns the text of a specific line (0-based).
func (d *Document) Line(i int) string {
	return d.sm.Line(i)
}

// Context returns the structural flags for a line (0-based).
// Out-of-range indexes return the zero value.
func (d *Document) Context(i int) LineContext {
	if i < 0 || i >= len(d.ctx) {
		return LineContext{}
	}
	return d.ctx[i]
}

// IsException reports whether prose rules must skip line i: any structural
// context (code block, front matter) or any inline exception pattern on the
// line itself. Fence-marker lines are always exempt, whichever side of the
// toggle they land on.
func (d *Document) IsException(i int) bool {
	if i < 0 || i >= len(d.ctx) {
		return true
	}
	c := d.ctx[i]
	if c.CodeBlock || c.FrontMatter {
		return true
	}
	line := d.sm.Line(i)
	if strings.Contains(line, fenceMarker) {
		return true
	}
	return prefixExceptionRe.MatchString(line) ||
		inlineCodeRe.MatchString(line) ||
		definitionListRe.MatchString(line) ||
		tableRowRe.MatchString(line)
}

// IsFenceStart reports whether line i begins a fenced code block marker
// (triple backtick with optional leading indentation and language tag).
// Used by the example-format checker's next-line lookahead.
func (d *Document) IsFenceStart(i int) bool {
	if i < 0 || i >= len(d.ctx) {
		return false
	}
	return fenceStartRe.MatchString(d.sm.Line(i))
}

// SourceMap exposes the underlying line table for snippet extraction.
func (d *Document) SourceMap() *sourcemap.SourceMap {
	return d.sm
}
