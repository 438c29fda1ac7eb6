// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the transcript-export pipeline.
package types

import "strings"

// Author identifies who produced a message in the exported graph.
type Author struct {
	// Role is the speaker role: "user", "assistant", "system", or a
	// tool-specific value passed through from the export.
	Role string `json:"role"`

	// Name is an optional display name for custom tools or plugins.
	Name string `json:"name,omitempty"`
}

// Content holds a message payload. Parts may mix plain strings with
// structured attachments (image pointers, tool results); only string
// parts carry renderable text.
type Content struct {
	ContentType string `json:"content_type,omitempty"`
	Parts       []any  `json:"parts"`
}

// Message is one utterance stored in a conversation node.
type Message struct {
	Author  Author  `json:"author"`
	Content Content `json:"content"`

	// CreateTime is the Unix timestamp (seconds, fractional allowed) when
	// the message was produced. Zero when the export omits it.
	CreateTime float64 `json:"create_time,omitempty"`
}

// Text returns the message's string parts joined by newlines. Non-string
// parts are dropped.
func (m Message) Text() string {
	var parts []string
	for _, p := range m.Content.Parts {
		if s, ok := p.(string); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Node is one entry in a conversation's message graph. Root and system
// nodes may carry no message. Parent and Children reference other node
// ids in the same mapping; malformed exports may contain dangling
// references or cycles, which consumers must tolerate.
type Node struct {
	Message  *Message `json:"message"`
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
}

// Conversation is one exported session: a titled tree of message nodes
// keyed by node id. Immutable after parse.
type Conversation struct {
	Title string `json:"title"`

	// UpdateTime is the Unix timestamp of the last modification. Zero
	// when the export omits it.
	UpdateTime float64 `json:"update_time"`

	Mapping map[string]Node `json:"mapping"`
}
