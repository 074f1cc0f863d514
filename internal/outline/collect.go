package outline

import (
	"regexp"
	"strings"

	"inquest-cli/internal/model"
)

// DefaultQuoteType is used when an evidence title carries no bracketed tag.
const DefaultQuoteType = "example"

// CollectedEvidence is one flattened evidence quote pulled out of an
// argument subtree, ready to be attached to a claim.
type CollectedEvidence struct {
	QuoteType    string `json:"quoteType"`
	Content      string `json:"content"`
	SourceNodeID string `json:"sourceNodeId"`
}

var quoteTagRe = regexp.MustCompile(`\[\s*([A-Za-z][A-Za-z _-]*)\s*\]`)

// QuoteTypeFromTitle extracts the bracketed tag embedded in an evidence
// title ("[statistic] 23% rise" -> "statistic"). Untagged titles default to
// DefaultQuoteType.
func QuoteTypeFromTitle(title string) string {
	m := quoteTagRe.FindStringSubmatch(title)
	if m == nil {
		return DefaultQuoteType
	}
	tag := strings.ToLower(strings.TrimSpace(m[1]))
	if tag == "" {
		return DefaultQuoteType
	}
	return tag
}

// StripQuoteTag removes the leading bracketed tag from an evidence title.
func StripQuoteTag(title string) string {
	return strings.TrimSpace(quoteTagRe.ReplaceAllString(title, ""))
}

// CollectEvidence flattens every evidence-kind descendant of node, at any
// depth, into a single ordered list (pre-order). The walk recurses into all
// children regardless of kind, so evidence nested under sub-arguments is
// still collected. The node itself never contributes a record.
//
// Returns an empty list, never nil, when there is nothing to collect.
// Id-less nodes emit nothing but their children are still walked.
func CollectEvidence(node model.OutlineNode) []CollectedEvidence {
	out := []CollectedEvidence{}
	for _, ch := range node.Children {
		collectInto(ch, &out)
	}
	return out
}

func collectInto(n model.OutlineNode, out *[]CollectedEvidence) {
	switch n.Kind {
	case model.NodeKindEvidence:
		if strings.TrimSpace(n.ID) != "" {
			content := n.Content
			if content == "" {
				content = StripQuoteTag(n.Title)
			}
			*out = append(*out, CollectedEvidence{
				QuoteType:    QuoteTypeFromTitle(n.Title),
				Content:      content,
				SourceNodeID: n.ID,
			})
		}
	case model.NodeKindArgument:
		// Arguments contribute nothing directly; their subtree may.
	}
	for _, ch := range n.Children {
		collectInto(ch, out)
	}
}
