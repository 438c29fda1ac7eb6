// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/transcript-export/pkg/types"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		updateTime float64
		want       string
	}{
		{
			name:       "plain title and date",
			title:      "Hello World",
			updateTime: 1672531200, // 2023-01-01 UTC
			want:       "2023-01-01-Hello_World",
		},
		{
			name:       "zero timestamp falls back to epoch sentinel",
			title:      "No Date",
			updateTime: 0,
			want:       "1970-01-01-No_Date",
		},
		{
			name:       "fractional seconds tolerated",
			title:      "Precise",
			updateTime: 1672531200.75,
			want:       "2023-01-01-Precise",
		},
		{
			name:       "empty title becomes Untitled",
			title:      "",
			updateTime: 1672531200,
			want:       "2023-01-01-Untitled",
		},
		{
			name:       "punctuation-only title becomes Untitled",
			title:      "?!...///",
			updateTime: 1672531200,
			want:       "2023-01-01-Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title, tt.updateTime, 0))
		})
	}
}

func TestFilename_Deterministic(t *testing.T) {
	a := Filename("Same Title", 1672531200, 0)
	b := Filename("Same Title", 1672531200, 0)
	assert.Equal(t, a, b)
}

func TestFilename_NoReservedCharacters(t *testing.T) {
	name := Filename(`a/b\c:d*e?f"g<h>i|j`, 1672531200, 0)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, `\`)
	assert.NotContains(t, name, ":")
	assert.NotContains(t, name, "*")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, `"`)
	assert.NotContains(t, name, "<")
	assert.NotContains(t, name, ">")
	assert.NotContains(t, name, "|")
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		maxLen int
		want   string
	}{
		{"replaces whitespace", "This is a Test", 100, "This_is_a_Test"},
		{"collapses separator runs", "Special @#$%^&*() Characters", 100, "Special_Characters"},
		{"trims leading and trailing separators", "  !trimmed!  ", 100, "trimmed"},
		{"word boundary truncation", "Word Boundaries Work Well", 10, "Word"},
		{"single long word is cut", "Supercalifragilistic", 5, "Super"},
		{"unicode letters preserved", "日本語のタイトル", 100, "日本語のタイトル"},
		{"empty becomes placeholder", "", 100, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitle(tt.title, tt.maxLen))
		})
	}
}

func TestSanitizeTitle_Idempotent(t *testing.T) {
	once := SanitizeTitle("A messy -- title!!", 100)
	twice := SanitizeTitle(once, 100)
	assert.Equal(t, once, twice)
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2023-01-01", Date(1672531200))
	assert.Equal(t, "1970-01-01", Date(0))
	assert.Equal(t, "2021-12-01", Date(1638316800))
}

func TestMarkdown(t *testing.T) {
	turns := []types.Turn{
		{Role: "user", Text: "What is the weather today?", CreateTime: 1},
		{Role: "assistant", Text: "The weather is sunny today.", CreateTime: 2},
	}

	got := Markdown("Sample Conversation", turns)
	want := "# Sample Conversation\n\n" +
		"## Question\nWhat is the weather today?\n\n" +
		"## Answer\nThe weather is sunny today.\n\n"
	assert.Equal(t, want, got)
}

func TestMarkdown_OtherRoleLabel(t *testing.T) {
	got := Markdown("Tooling", []types.Turn{{Role: "tool", Text: "exit 0"}})
	assert.Contains(t, got, "## Tool\n")
}

func TestMarkdown_EmptyConversation(t *testing.T) {
	got := Markdown("Nothing Here", nil)
	assert.True(t, strings.HasPrefix(got, "# Nothing Here\n\n"))
	assert.Contains(t, got, "no messages")
}

func TestMarkdown_BlankTitleFallsBack(t *testing.T) {
	got := Markdown("   ", []types.Turn{{Role: "user", Text: "hi"}})
	assert.True(t, strings.HasPrefix(got, "# Untitled\n"))
}
