package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/revfix/pkg/langdetect"
	"github.com/yaklabco/revfix/pkg/provider"
	"github.com/yaklabco/revfix/pkg/reconcile"
)

// Engine runs one review round trip: submit file content to the provider,
// parse the issue envelope, and reconcile every issue's line number against
// the live content it refers to.
type Engine struct {
	Provider provider.Provider

	// ReadDocument supplies current file content for reconciliation and
	// prompt construction. It is called immediately before each use; the
	// engine never caches content across calls.
	ReadDocument func(path string) ([]byte, error)

	// MaxIssues truncates the parsed issue list when positive.
	MaxIssues int
}

// ReviewInput is one file submitted for review.
type ReviewInput struct {
	Path     string
	Content  []byte
	Language string
}

// ReviewResult carries the reconciled issues plus reconciliation stats.
type ReviewResult struct {
	Issues     []Issue
	Reconciled map[reconcile.Outcome]int
	TokensUsed int
}

// CollectInputs filters paths down to reviewable files, tagging each with
// its detected language. Binaries, vendored and generated code are skipped;
// skipped paths and their reasons are returned for logging.
func CollectInputs(read func(path string) ([]byte, error), paths []string) ([]ReviewInput, map[string]string) {
	inputs := make([]ReviewInput, 0, len(paths))
	skipped := make(map[string]string)

	for _, path := range paths {
		content, err := read(path)
		if err != nil {
			skipped[path] = err.Error()
			continue
		}
		if ok, reason := langdetect.Reviewable(path, content); !ok {
			skipped[path] = reason
			continue
		}
		inputs = append(inputs, ReviewInput{
			Path:     path,
			Content:  content,
			Language: langdetect.Detect(path, content),
		})
	}

	return inputs, skipped
}

// Review submits the inputs and returns reconciled issues.
func (e *Engine) Review(ctx context.Context, inputs []ReviewInput) (*ReviewResult, error) {
	if len(inputs) == 0 {
		return &ReviewResult{Reconciled: map[reconcile.Outcome]int{}}, nil
	}

	resp, err := e.Provider.Review(ctx, provider.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(inputs),
	})
	if err != nil {
		return nil, fmt.Errorf("provider review: %w", err)
	}

	issues, err := ParseIssues(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	if e.MaxIssues > 0 && len(issues) > e.MaxIssues {
		issues = issues[:e.MaxIssues]
	}

	// Attach detected languages to issues by path.
	langs := make(map[string]string, len(inputs))
	for _, in := range inputs {
		langs[in.Path] = in.Language
	}
	for i := range issues {
		issues[i].Language = langs[issues[i].File]
	}

	// Correct hallucinated line numbers against live content before anyone
	// acts on them.
	counts := reconcile.ReconcileAll(issues, e.ReadDocument)

	return &ReviewResult{
		Issues:     issues,
		Reconciled: counts,
		TokensUsed: resp.TokensUsed,
	}, nil
}

const systemPrompt = `You are an expert code reviewer. Review the submitted files and produce issues in JSON.

Rules:
1. Focus on bugs, security issues, performance problems, and correctness.
2. Every issue names the file, a 1-based line number, and the exact text of that line as codeSnippet.
3. Severity is one of "error", "warning", "info".
4. Category is one of "bug", "security", "performance", "style", "maintainability".
5. When a mechanical fix exists, provide suggestedFix as an object:
   {"type": "replace|insert|delete", "startLine": N, "endLine": N, "newCode": "...", "description": "..."}
   with 1-based inclusive lines referring to the file as submitted.
   Otherwise suggestedFix may be a plain string of advice, or omitted.

Respond with ONLY this JSON envelope:
{"issues": [{"file": "...", "line": 1, "codeSnippet": "...", "severity": "...", "category": "...", "message": "...", "suggestedFix": ...}]}

If there are no issues, respond with {"issues": []}.`

// buildUserPrompt lays out each file with line numbers so the model can
// report positions the reconciler can verify.
func buildUserPrompt(inputs []ReviewInput) string {
	var b strings.Builder
	b.WriteString("Review the following files.\n")

	for _, in := range inputs {
		fmt.Fprintf(&b, "\n=== %s (%s) ===\n", in.Path, in.Language)
		for i, line := range strings.Split(strings.TrimSuffix(string(in.Content), "\n"), "\n") {
			fmt.Fprintf(&b, "%4d | %s\n", i+1, line)
		}
	}

	return b.String()
}
