package structure

import "github.com/skillworks/skillctl/internal/rules"

// ImbalancedExamplesCode is the rule code for the imbalanced examples rule.
const ImbalancedExamplesCode = "imbalanced_examples"

// ImbalancedExamplesRule flags documents that show only positive or only
// negative examples. One violation per file, anchored at the first marker.
type ImbalancedExamplesRule struct{}

// NewImbalancedExamplesRule creates a new imbalanced examples rule instance.
func NewImbalancedExamplesRule() *ImbalancedExamplesRule {
	return &ImbalancedExamplesRule{}
}

// Metadata returns the rule metadata.
func (r *ImbalancedExamplesRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             ImbalancedExamplesCode,
		Name:             "Imbalanced Examples",
		Description:      "Flags documents showing only positive or only negative examples",
		DefaultSeverity:  rules.SeverityInfo,
		Category:         "structure",
		EnabledByDefault: true,
	}
}

// Check runs the imbalanced examples rule.
func (r *ImbalancedExamplesRule) Check(input rules.LintInput) []rules.Violation {
	meta := r.Metadata()
	doc := input.Doc

	positives, negatives := 0, 0
	firstMarker := -1
	for i := range doc.LineCount() {
		pos, neg := isProseMarker(doc, i)
		if pos {
			positives++
		}
		if neg {
			negatives++
		}
		if (pos || neg) && firstMarker < 0 {
			firstMarker = i
		}
	}

	if positives == 0 && negatives == 0 {
		return nil
	}
	if positives > 0 && negatives > 0 {
		return nil
	}

	msg := "examples show only the good pattern; add a bad example for contrast"
	if positives == 0 {
		msg = "examples show only the bad pattern; add a good example for contrast"
	}
	v := rules.NewViolation(
		rules.NewLineLocation(input.File, firstMarker+1),
		meta.Code,
		msg,
		meta.DefaultSeverity,
	).WithLineContent(doc.Line(firstMarker))
	return []rules.Violation{v}
}

// init registers the rule with the default registry.
func init() {
	rules.Register(NewImbalancedExamplesRule())
}
