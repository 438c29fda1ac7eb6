// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export parses raw conversational-assistant export JSON into
// Conversation values. An export holds either a single conversation object
// or an array of them.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/transcript-export/pkg/types"
)

// Problem describes a conversation that could not be decoded. The rest of
// the export is unaffected.
type Problem struct {
	// Index is the element's position in the export (0 for a single-object
	// export).
	Index int

	// Reason is the decode failure in human-readable form.
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("conversation #%d: %s", p.Index+1, p.Reason)
}

// Parse decodes raw export bytes into conversations. Malformed top-level
// JSON is an error and aborts the run. A type mismatch inside one array
// element only marks that element as a Problem; the remaining elements
// still parse. Unknown fields are ignored, missing fields default to zero
// values.
func Parse(data []byte) ([]types.Conversation, []Problem, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("export is empty")
	}

	switch trimmed[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, nil, fmt.Errorf("parsing export: %w", err)
		}
		var conversations []types.Conversation
		var problems []Problem
		for i, raw := range elements {
			var c types.Conversation
			if err := json.Unmarshal(raw, &c); err != nil {
				problems = append(problems, Problem{Index: i, Reason: err.Error()})
				continue
			}
			conversations = append(conversations, c)
		}
		return conversations, problems, nil

	case '{':
		var c types.Conversation
		if err := json.Unmarshal(trimmed, &c); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, nil, fmt.Errorf("parsing export: %w", err)
			}
			// Well-formed JSON of the wrong shape: the single conversation
			// fails, the run itself does not.
			return nil, []Problem{{Index: 0, Reason: err.Error()}}, nil
		}
		return []types.Conversation{c}, nil, nil

	default:
		return nil, nil, fmt.Errorf("export must be a JSON object or array, got %q", trimmed[0])
	}
}

// ParseFile reads and parses the export at path.
func ParseFile(path string) ([]types.Conversation, []Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading export %s: %w", path, err)
	}
	conversations, problems, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("export %s: %w", path, err)
	}
	return conversations, problems, nil
}
