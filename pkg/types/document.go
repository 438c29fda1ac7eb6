// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Turn is one resolved exchange unit: a role, its flattened text, and the
// creation timestamp. Turns are derived by the resolver, never parsed.
type Turn struct {
	Role       string
	Text       string
	CreateTime float64
}

// DocumentStatus indicates the outcome of rendering and writing one
// conversation.
type DocumentStatus string

const (
	DocumentWritten DocumentStatus = "written"
	DocumentSkipped DocumentStatus = "skipped"
	DocumentFailed  DocumentStatus = "failed"
)

// DocumentRecord describes one conversation's output document and how its
// processing ended.
type DocumentRecord struct {
	// Title is the conversation title as exported (may be empty).
	Title string `json:"title" yaml:"title"`

	// Filename is the collision-resolved output name, without directory.
	// Empty for conversations that failed before a name was assigned.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// Turns is the number of resolved turns in the rendered document.
	Turns int `json:"turns" yaml:"turns"`

	// Status is the processing outcome: written, skipped, or failed.
	Status DocumentStatus `json:"status" yaml:"status"`

	// Error holds the failure reason when Status is DocumentFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
