package soask

import (
	"regexp"
	"strings"
)

// DefaultCodeLanguage is the language assigned to untagged code blocks.
const DefaultCodeLanguage = "text"

// SegmentKind identifies the kind of a RenderSegment.
type SegmentKind int

// SegmentKind constants.
const (
	SegmentPlainText SegmentKind = iota
	SegmentCodeBlock
)

// RenderSegment is a span of text that is either prose or fenced code.
type RenderSegment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`

	// Language is set for code blocks only.
	Language string `json:"language,omitempty"`
}

// IsCode reports whether the segment is a fenced code block.
func (s RenderSegment) IsCode() bool {
	return s.Kind == SegmentCodeBlock
}

// Matches an opening fence with an optional language tag, the code, and the
// next closing fence. The rest of the info line after the tag is discarded.
var codeFenceRe = regexp.MustCompile("(?s)```([\\w+#.-]*)[^\\n`]*\\n(.*?)```")

// SplitCodeBlocks splits text into prose and fenced code segments in order.
// Fence markers and language tags are not part of any segment's text.
// Text without fences yields a single plain text segment holding all of it.
func SplitCodeBlocks(text string) []RenderSegment {
	matches := codeFenceRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []RenderSegment{{Kind: SegmentPlainText, Text: text}}
	}

	segments := make([]RenderSegment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, RenderSegment{Kind: SegmentPlainText, Text: text[last:m[0]]})
		}

		language := text[m[2]:m[3]]
		if language == "" {
			language = DefaultCodeLanguage
		}
		segments = append(segments, RenderSegment{
			Kind:     SegmentCodeBlock,
			Text:     text[m[4]:m[5]],
			Language: language,
		})
		last = m[1]
	}

	// Keep whatever follows the last fence, including an unclosed one.
	if last < len(text) {
		segments = append(segments, RenderSegment{Kind: SegmentPlainText, Text: text[last:]})
	}

	return segments
}

// JoinSegments concatenates the literal text of segments.
func JoinSegments(segments []RenderSegment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// CodeHighlighter renders source code for display.
type CodeHighlighter interface {
	Highlight(language, source string) (string, error)
}
