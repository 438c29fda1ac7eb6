// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"unicode"

	"github.com/pdiddy/transcript-export/pkg/types"
)

// emptyNote is the body marker for conversations with no renderable turns.
// The file is still written (policy permitting) so every input conversation
// maps to an output document.
const emptyNote = "_This conversation has no messages._\n"

// Markdown renders a resolved conversation as a Markdown document: an H1
// title followed by one labeled H2 section per turn. User turns are
// labeled "Question", assistant turns "Answer"; any other role passes
// through under its capitalized role name.
func Markdown(title string, turns []types.Turn) string {
	var b strings.Builder
	b.WriteString("# ")
	if strings.TrimSpace(title) == "" {
		b.WriteString(untitled)
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n\n")

	if len(turns) == 0 {
		b.WriteString(emptyNote)
		return b.String()
	}

	for _, turn := range turns {
		b.WriteString("## ")
		b.WriteString(sectionLabel(turn.Role))
		b.WriteString("\n")
		b.WriteString(turn.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// sectionLabel maps a turn role to its section heading.
func sectionLabel(role string) string {
	switch role {
	case "user":
		return "Question"
	case "assistant":
		return "Answer"
	case "":
		return "Unknown"
	default:
		return capitalize(role)
	}
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
