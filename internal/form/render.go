package form

import (
	"strings"
	"time"
)

// ParagraphStagger is the animation delay added per paragraph.
const ParagraphStagger = 150 * time.Millisecond

const (
	submitLabel  = "Reveal My Cosmic Insights"
	loadingLabel = "Consulting the Stars..."
)

// Paragraph is one line of a reading and when it should appear.
type Paragraph struct {
	Index int
	Text  string
	Delay time.Duration
}

// Paragraphs splits a reading on line breaks. Empty lines are kept so
// spacing in the reply survives.
func Paragraphs(reading string) []Paragraph {
	lines := strings.Split(reading, "\n")
	out := make([]Paragraph, len(lines))
	for i, line := range lines {
		out[i] = Paragraph{
			Index: i,
			Text:  strings.TrimSuffix(line, "\r"),
			Delay: time.Duration(i) * ParagraphStagger,
		}
	}
	return out
}

// SubmitLabel is the submit control's label for s.
func SubmitLabel(s State) string {
	if s.Loading() {
		return loadingLabel
	}
	return submitLabel
}
