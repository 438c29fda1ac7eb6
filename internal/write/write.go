// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package write fans per-conversation rendering out across a worker pool
// and writes one Markdown document per conversation. Failures are isolated
// per item and tallied; only output-directory setup aborts the run.
package write

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pdiddy/transcript-export/internal/export"
	"github.com/pdiddy/transcript-export/internal/render"
	"github.com/pdiddy/transcript-export/internal/resolve"
	"github.com/pdiddy/transcript-export/pkg/types"
)

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Written int
	Skipped int
	Failed  int

	// Documents records one entry per input conversation, in input order.
	// Parse problems appear first, also in input order.
	Documents []types.DocumentRecord
}

// Total returns the total number of conversations processed.
func (r BatchResult) Total() int {
	return r.Written + r.Skipped + r.Failed
}

// HasFailures reports whether any conversation failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Write renders every conversation and writes the documents into
// cfg.OutputDir, one file per conversation, processing items concurrently.
// Parse problems from the export are folded into the failure tally so the
// summary accounts for every conversation in the input. Per-item status
// lines go to w as items complete; the order of lines follows completion,
// not input.
//
// The only fatal error is an uncreatable output directory. Everything else
// is recorded per item and reflected in the returned BatchResult.
func Write(conversations []types.Conversation, problems []export.Problem, cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	policy := cfg.EmptyPolicy
	if policy == "" {
		policy = types.EmptyWrite
	}
	if !policy.Valid() {
		return BatchResult{}, fmt.Errorf("unknown empty policy %q (want %q or %q)", policy, types.EmptyWrite, types.EmptySkip)
	}

	var result BatchResult
	for _, p := range problems {
		fmt.Fprintf(w, "failed:  %s\n", p)
		result.Failed++
		result.Documents = append(result.Documents, types.DocumentRecord{
			Title:  fmt.Sprintf("conversation #%d", p.Index+1),
			Status: types.DocumentFailed,
			Error:  p.Reason,
		})
	}

	// Filenames are reserved single-threaded in input order so collision
	// suffixes are deterministic regardless of worker scheduling.
	names := reserveNames(conversations, cfg.MaxTitleLength)

	records := make([]types.DocumentRecord, len(conversations))
	jobs := make(chan int)
	done := make(chan int, len(conversations))
	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = processOne(conversations[i], names[i], cfg.OutputDir, policy)
				done <- i
			}
		}()
	}

	go func() {
		for i := range conversations {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(done)
	}()

	for i := range done {
		rec := records[i]
		switch rec.Status {
		case types.DocumentWritten:
			result.Written++
			fmt.Fprintf(w, "written: %s\n", rec.Filename)
		case types.DocumentSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (no renderable messages)\n", rec.Filename)
		case types.DocumentFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", rec.Filename, rec.Error)
		}
	}
	result.Documents = append(result.Documents, records...)

	fmt.Fprintf(w, "\nBatch summary: %d written, %d skipped, %d failed (total: %d)\n",
		result.Written, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// reserveNames assigns a distinct output filename (without extension) to
// each conversation. Conversations whose derived names collide get
// deterministic "-2", "-3", ... suffixes in input order.
func reserveNames(conversations []types.Conversation, maxTitle int) []string {
	taken := make(map[string]bool, len(conversations))
	names := make([]string, len(conversations))
	for i, c := range conversations {
		base := render.Filename(c.Title, c.UpdateTime, maxTitle)
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// processOne resolves, renders, and writes a single conversation.
func processOne(c types.Conversation, name, outDir string, policy types.EmptyPolicy) types.DocumentRecord {
	rec := types.DocumentRecord{
		Title:    c.Title,
		Filename: name + ".md",
	}

	turns := resolve.Resolve(c)
	rec.Turns = len(turns)

	if len(turns) == 0 && policy == types.EmptySkip {
		rec.Status = types.DocumentSkipped
		return rec
	}

	body := render.Markdown(c.Title, turns)
	if err := writeAtomic(filepath.Join(outDir, rec.Filename), []byte(body)); err != nil {
		rec.Status = types.DocumentFailed
		rec.Error = err.Error()
		return rec
	}

	rec.Status = types.DocumentWritten
	return rec
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it into place, so a crash mid-write never leaves a truncated
// document under the final name.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
