// Package structure implements the document-structure rules for skill
// documents: example-format checks and the anti-pattern presence heuristic.
package structure

import (
	"regexp"

	"github.com/skillworks/skillctl/internal/markdown"
)

var (
	positiveMarkerRe = regexp.MustCompile(`^\s*✅`)
	negativeMarkerRe = regexp.MustCompile(`^\s*❌`)

	// Headings that introduce example sections. The orphaned-fence check
	// only fires under one of these.
	exampleHeadingRe = regexp.MustCompile(`(?i)^#{1,6}\s+.*\b(?:examples?|patterns?|usage|anti-patterns?)\b`)
)

// IsPositiveMarker reports whether a line is a "good example" marker.
func IsPositiveMarker(line string) bool {
	return positiveMarkerRe.MatchString(line)
}

// IsNegativeMarker reports whether a line is a "bad example" marker.
func IsNegativeMarker(line string) bool {
	return negativeMarkerRe.MatchString(line)
}

// isProseMarker reports whether line i is an example marker outside code
// blocks and front matter. Markers quoted inside fences don't count.
func isProseMarker(doc *markdown.Document, i int) (positive, negative bool) {
	c := doc.Context(i)
	if c.CodeBlock || c.FrontMatter {
		return false, false
	}
	line := doc.Line(i)
	return IsPositiveMarker(line), IsNegativeMarker(line)
}

// HasExampleMarkers reports whether the document contains at least one
// good/bad example marker outside code blocks.
func HasExampleMarkers(doc *markdown.Document) bool {
	for i := range doc.LineCount() {
		pos, neg := isProseMarker(doc, i)
		if pos || neg {
			return true
		}
	}
	return false
}
