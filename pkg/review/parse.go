package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoIssuesPayload is returned when a model response contains no JSON
// issue envelope, neither raw nor inside a markdown code fence.
var ErrNoIssuesPayload = errors.New("no issues payload in response")

// envelope is the wire shape of the AI collaborator's response.
type envelope struct {
	Issues []Issue `json:"issues"`
}

// UnmarshalJSON accepts both shapes models emit for suggestedFix: a plain
// string (free-text advice) or a structured fix object. The tagged variant
// makes "cannot apply free text" a property of the type, not a runtime
// type switch.
func (s *SuggestedFix) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var txt string
		if err := json.Unmarshal(data, &txt); err != nil {
			return fmt.Errorf("suggested fix text: %w", err)
		}
		s.Text = txt
		return nil
	}

	var f CodeFix
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("suggested fix object: %w", err)
	}
	s.Fix = &f
	return nil
}

// MarshalJSON writes the populated variant back in its wire shape.
func (s SuggestedFix) MarshalJSON() ([]byte, error) {
	if s.Fix != nil {
		return json.Marshal(s.Fix)
	}
	return json.Marshal(s.Text)
}

// ParseIssues parses a model response into review issues.
//
// Models frequently wrap their JSON envelope in a markdown code fence, or
// surround it with prose. The response is tried as raw JSON first; failing
// that, each fenced code block is extracted from the markdown AST and tried
// in document order, preferring fences tagged json.
func ParseIssues(response string) ([]Issue, error) {
	if issues, err := decodeEnvelope([]byte(response)); err == nil {
		return issues, nil
	}

	for _, block := range fencedBlocks([]byte(response)) {
		if issues, err := decodeEnvelope(block); err == nil {
			return issues, nil
		}
	}

	return nil, ErrNoIssuesPayload
}

// decodeEnvelope unmarshals one candidate payload and normalizes the
// resulting issues.
func decodeEnvelope(data []byte) ([]Issue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrNoIssuesPayload
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	for i := range env.Issues {
		normalize(&env.Issues[i])
	}
	return env.Issues, nil
}

// normalize fills defaults the model omitted.
func normalize(issue *Issue) {
	issue.Severity = ParseSeverity(string(issue.Severity))
	if issue.Line < 1 {
		issue.Line = 1
	}
	if issue.FixStatus == "" {
		issue.FixStatus = FixPending
	}
	issue.File = strings.TrimSpace(issue.File)
}

// fencedBlocks returns the content of every fenced code block in document
// order, with blocks whose info string is "json" sorted first.
func fencedBlocks(source []byte) [][]byte {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var tagged, untagged [][]byte
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		for i := 0; i < fence.Lines().Len(); i++ {
			seg := fence.Lines().At(i)
			buf.Write(seg.Value(source))
		}

		info := ""
		if fence.Info != nil {
			info = strings.ToLower(strings.TrimSpace(string(fence.Info.Value(source))))
		}
		if info == "json" {
			tagged = append(tagged, buf.Bytes())
		} else {
			untagged = append(untagged, buf.Bytes())
		}
		return ast.WalkContinue, nil
	})

	return append(tagged, untagged...)
}
