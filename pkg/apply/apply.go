// Package apply sequences validation, optional confirmation, edit
// computation, and persistence for structured review fixes, and runs
// batches with per-item failure isolation.
package apply

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/revfix/pkg/fix"
	"github.com/yaklabco/revfix/pkg/review"
)

// Distinct error strings per failure condition, so batch statistics can
// tell "declined" from "broken".
const (
	errNoStructuredFix = "no structured fix to apply"
	errCancelled       = "cancelled by user"
)

// Preview is handed to the confirmation callback before anything is
// written. Content is exactly what would be persisted.
type Preview struct {
	Path    string
	Fix     review.CodeFix
	Content []byte
	Diff    *fix.Diff
}

// ConfirmFunc gates the confirmed/cancelled transition. Returning false
// cancels the fix without error; an error aborts it as a failure.
type ConfirmFunc func(ctx context.Context, p *Preview) (bool, error)

// Applier orchestrates fix application against a DocumentStore.
//
// Every document read happens immediately before its corresponding edit is
// computed, and offsets derive from that same read, so no staleness can be
// introduced by caching across fixes.
type Applier struct {
	Store DocumentStore

	// Confirm, when non-nil, is invoked with a preview before each write.
	// Batch application never consults it.
	Confirm ConfirmFunc
}

// New creates an Applier over the given store.
func New(store DocumentStore) *Applier {
	return &Applier{Store: store}
}

// Apply runs one issue's structured fix through the full state machine:
// pending -> validating -> (confirmed|cancelled) -> applying ->
// (applied|failed). It mutates only issue.FixStatus.
func (a *Applier) Apply(ctx context.Context, issue *review.Issue) Result {
	if !issue.SuggestedFix.Appliable() {
		issue.FixStatus = review.FixFailed
		return Result{Error: errNoStructuredFix}
	}
	codeFix := *issue.SuggestedFix.Fix

	result := a.applyFix(ctx, issue.File, codeFix, a.Confirm)
	switch {
	case result.Success:
		issue.FixStatus = review.FixApplied
	case result.Error == errCancelled:
		// Declining is not a defect; the issue stays pending.
	default:
		issue.FixStatus = review.FixFailed
	}
	return result
}

// ApplyAll applies the fixes of every issue sequentially. Sequential is
// deliberate: fixes targeting the same file must not be computed against
// two different line-shifted snapshots. Confirmation is skipped, and one
// item's failure never aborts the batch.
func (a *Applier) ApplyAll(ctx context.Context, issues []*review.Issue) BatchResult {
	var batch BatchResult
	for i, issue := range issues {
		if !issue.SuggestedFix.Appliable() {
			issue.FixStatus = review.FixFailed
			batch.Failed++
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("fix %d (%s): %s", i+1, issue.Location(), errNoStructuredFix))
			continue
		}

		result := a.applyFix(ctx, issue.File, *issue.SuggestedFix.Fix, nil)
		if result.Success {
			issue.FixStatus = review.FixApplied
			batch.Succeeded++
			continue
		}

		issue.FixStatus = review.FixFailed
		batch.Failed++
		batch.Errors = append(batch.Errors,
			fmt.Sprintf("fix %d (%s): %s", i+1, issue.Location(), result.Error))
	}
	return batch
}

// applyFix performs one read-validate-preview-confirm-write cycle.
func (a *Applier) applyFix(ctx context.Context, path string, codeFix review.CodeFix, confirm ConfirmFunc) Result {
	original, err := a.Store.ReadDocument(ctx, path)
	if err != nil {
		return Result{Error: fmt.Sprintf("read %s: %v", path, err)}
	}

	// Validation failure skips confirmation entirely.
	content, err := fix.BuildPreview(original, codeFix)
	if err != nil {
		var rangeErr *fix.RangeError
		if errors.As(err, &rangeErr) {
			return Result{Error: "invalid range: " + rangeErr.Error()}
		}
		return Result{Error: err.Error()}
	}

	if confirm != nil {
		preview := &Preview{
			Path:    path,
			Fix:     codeFix,
			Content: content,
			Diff:    fix.NewDiff(path, original, content),
		}
		ok, err := confirm(ctx, preview)
		if err != nil {
			return Result{Error: fmt.Sprintf("confirmation failed: %v", err)}
		}
		if !ok {
			return Result{Error: errCancelled}
		}
	}

	if err := a.Store.WriteDocument(ctx, path, content); err != nil {
		return Result{Error: fmt.Sprintf("write %s: %v", path, err)}
	}

	applied := LineRange{Start: codeFix.StartLine, End: codeFix.EndLine}
	if codeFix.Type == review.FixInsert {
		applied.End = codeFix.StartLine
	}
	return Result{Success: true, AppliedLines: &applied}
}
