// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"testing"

	"github.com/pdiddy/transcript-export/pkg/types"
)

// msg builds a message node for tests.
func msg(role, text string, createTime float64) *types.Message {
	return &types.Message{
		Author:     types.Author{Role: role},
		Content:    types.Content{Parts: []any{text}},
		CreateTime: createTime,
	}
}

func conv(mapping map[string]types.Node) types.Conversation {
	return types.Conversation{Title: "Test", Mapping: mapping}
}

func roles(turns []types.Turn) []string {
	out := make([]string, len(turns))
	for i, t := range turns {
		out[i] = t.Role
	}
	return out
}

func TestResolve_LinearChain(t *testing.T) {
	c := conv(map[string]types.Node{
		"root": {Children: []string{"1"}},
		"1":    {Message: msg("user", "Hi", 100), Parent: "root", Children: []string{"2"}},
		"2":    {Message: msg("assistant", "Hello!", 110), Parent: "1", Children: []string{"3"}},
		"3":    {Message: msg("user", "Bye", 120), Parent: "2"},
	})

	turns := Resolve(c)
	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(turns))
	}
	wantTexts := []string{"Hi", "Hello!", "Bye"}
	for i, want := range wantTexts {
		if turns[i].Text != want {
			t.Errorf("turn %d text = %q, want %q", i, turns[i].Text, want)
		}
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].CreateTime < turns[i-1].CreateTime {
			t.Errorf("turns out of chronological order at %d", i)
		}
	}
}

func TestResolve_BranchSelection(t *testing.T) {
	// Node 1 has two answers; the regenerated one (later create_time)
	// should win, together with its own continuation.
	c := conv(map[string]types.Node{
		"1":  {Message: msg("user", "Question", 100), Children: []string{"2a", "2b"}},
		"2a": {Message: msg("assistant", "First answer", 110), Parent: "1"},
		"2b": {Message: msg("assistant", "Regenerated answer", 150), Parent: "1", Children: []string{"3"}},
		"3":  {Message: msg("user", "Follow-up", 160), Parent: "2b"},
	})

	turns := Resolve(c)
	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(turns))
	}
	if turns[1].Text != "Regenerated answer" {
		t.Errorf("turn 1 = %q, want the regenerated branch", turns[1].Text)
	}
	if turns[2].Text != "Follow-up" {
		t.Errorf("turn 2 = %q, want the follow-up", turns[2].Text)
	}
}

func TestResolve_BranchTieKeepsDeclarationOrder(t *testing.T) {
	c := conv(map[string]types.Node{
		"1":  {Message: msg("user", "Q", 100), Children: []string{"2a", "2b"}},
		"2a": {Message: msg("assistant", "A", 110), Parent: "1"},
		"2b": {Message: msg("assistant", "B", 110), Parent: "1"},
	})

	turns := Resolve(c)
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[1].Text != "A" {
		t.Errorf("tie broke to %q, want first declared child", turns[1].Text)
	}
}

func TestResolve_CycleTerminates(t *testing.T) {
	// 1 → 2 → 3 → back to 1.
	c := conv(map[string]types.Node{
		"1": {Message: msg("user", "a", 1), Children: []string{"2"}},
		"2": {Message: msg("assistant", "b", 2), Parent: "1", Children: []string{"3"}},
		"3": {Message: msg("user", "c", 3), Parent: "2", Children: []string{"1"}},
	})

	turns := Resolve(c)
	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3 (finite)", len(turns))
	}
}

func TestResolve_SelfReferenceTerminates(t *testing.T) {
	c := conv(map[string]types.Node{
		"1": {Message: msg("user", "loop", 1), Parent: "ghost", Children: []string{"1"}},
	})

	turns := Resolve(c)
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
}

func TestResolve_SkipsSystemAndEmptyNodes(t *testing.T) {
	c := conv(map[string]types.Node{
		"root": {Children: []string{"sys"}},
		"sys":  {Message: msg("system", "You are helpful", 1), Parent: "root", Children: []string{"u"}},
		"u":    {Message: msg("user", "Hi", 2), Parent: "sys", Children: []string{"blank"}},
		"blank": {
			Message:  msg("assistant", "   \n\t", 3),
			Parent:   "u",
			Children: []string{"a"},
		},
		"a": {Message: msg("assistant", "Hello", 4), Parent: "blank"},
	})

	turns := Resolve(c)
	got := roles(turns)
	if len(got) != 2 || got[0] != "user" || got[1] != "assistant" {
		t.Errorf("roles = %v, want [user assistant]", got)
	}
}

func TestResolve_OtherRolesPassThrough(t *testing.T) {
	c := conv(map[string]types.Node{
		"1": {Message: msg("user", "run it", 1), Children: []string{"2"}},
		"2": {Message: msg("tool", "exit 0", 2), Parent: "1"},
	})

	turns := Resolve(c)
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[1].Role != "tool" {
		t.Errorf("role = %q, want %q", turns[1].Role, "tool")
	}
}

func TestResolve_DanglingParentIsRoot(t *testing.T) {
	// Parent id points outside the mapping: the node still acts as a root.
	c := conv(map[string]types.Node{
		"orphan": {Message: msg("user", "hello?", 5), Parent: "missing"},
	})

	turns := Resolve(c)
	if len(turns) != 1 || turns[0].Text != "hello?" {
		t.Errorf("turns = %+v, want the orphan's turn", turns)
	}
}

func TestResolve_MultipleRootsPicksLongestPath(t *testing.T) {
	c := conv(map[string]types.Node{
		"shortRoot": {Message: msg("user", "lonely", 500)},
		"longRoot":  {Message: msg("user", "first", 1), Children: []string{"next"}},
		"next":      {Message: msg("assistant", "second", 2), Parent: "longRoot"},
	})

	turns := Resolve(c)
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want the 2-turn path", len(turns))
	}
	if turns[0].Text != "first" {
		t.Errorf("turn 0 = %q, want %q", turns[0].Text, "first")
	}
}

func TestResolve_EmptyMapping(t *testing.T) {
	turns := Resolve(conv(map[string]types.Node{}))
	if len(turns) != 0 {
		t.Errorf("got %d turns, want 0", len(turns))
	}
}

func TestResolve_ParentOnlyLinks(t *testing.T) {
	// Some exports omit children arrays entirely; the chain must still be
	// recoverable from parent references alone.
	c := conv(map[string]types.Node{
		"1": {Message: msg("user", "Hi", 1672531200)},
		"2": {Message: msg("assistant", "Hello!", 1672531220), Parent: "1"},
	})

	turns := Resolve(c)
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Text != "Hi" || turns[1].Text != "Hello!" {
		t.Errorf("turns = %+v", turns)
	}
}

func TestResolve_DanglingChildIgnored(t *testing.T) {
	c := conv(map[string]types.Node{
		"1": {Message: msg("user", "Hi", 1), Children: []string{"ghost"}},
	})

	turns := Resolve(c)
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
}
