package review_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/revfix/pkg/review"
)

func TestParseIssuesRawJSON(t *testing.T) {
	t.Parallel()

	response := `{"issues": [
		{"file": "main.go", "line": 3, "codeSnippet": "x := 1", "severity": "error",
		 "category": "bug", "message": "unused variable"}
	]}`

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, "main.go", issue.File)
	assert.Equal(t, 3, issue.Line)
	assert.Equal(t, "x := 1", issue.CodeSnippet)
	assert.Equal(t, review.SeverityError, issue.Severity)
	assert.Equal(t, review.CategoryBug, issue.Category)
	assert.Equal(t, review.FixPending, issue.FixStatus, "parsed issues start pending")
}

func TestParseIssuesFencedJSON(t *testing.T) {
	t.Parallel()

	response := "Here is my review.\n\n```json\n" +
		`{"issues": [{"file": "a.go", "line": 1, "severity": "info", "message": "m"}]}` +
		"\n```\n\nLet me know if you need more detail."

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "a.go", issues[0].File)
}

func TestParseIssuesUntaggedFence(t *testing.T) {
	t.Parallel()

	response := "```\n" +
		`{"issues": [{"file": "b.go", "line": 2, "severity": "warning", "message": "m"}]}` +
		"\n```"

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "b.go", issues[0].File)
}

func TestParseIssuesPrefersJSONTaggedFence(t *testing.T) {
	t.Parallel()

	// A code sample in an earlier untagged fence must not shadow the
	// actual envelope in the json fence.
	response := "```\n" +
		`{"issues": [{"file": "decoy.go", "line": 1, "severity": "info", "message": "m"}]}` +
		"\n```\n\n```json\n" +
		`{"issues": [{"file": "real.go", "line": 1, "severity": "info", "message": "m"}]}` +
		"\n```"

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "real.go", issues[0].File)
}

func TestParseIssuesEmptyEnvelope(t *testing.T) {
	t.Parallel()

	issues, err := review.ParseIssues(`{"issues": []}`)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestParseIssuesNoPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
	}{
		{"plain prose", "The code looks great, no issues found."},
		{"empty response", ""},
		{"broken json", `{"issues": [`},
		{"fence without envelope", "```go\nfunc main() {}\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := review.ParseIssues(tt.response)
			assert.ErrorIs(t, err, review.ErrNoIssuesPayload)
		})
	}
}

func TestParseIssuesNormalization(t *testing.T) {
	t.Parallel()

	response := `{"issues": [
		{"file": "  a.go ", "line": 0, "severity": "CRITICAL", "message": "m"},
		{"file": "b.go", "line": -5, "severity": "", "message": "m"}
	]}`

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "a.go", issues[0].File, "file paths are trimmed")
	assert.Equal(t, 1, issues[0].Line, "non-positive lines clamp to 1")
	assert.Equal(t, review.SeverityError, issues[0].Severity)

	assert.Equal(t, 1, issues[1].Line)
	assert.Equal(t, review.SeverityWarning, issues[1].Severity, "unknown severity defaults to warning")
}

func TestSuggestedFixUnmarshalString(t *testing.T) {
	t.Parallel()

	var s review.SuggestedFix
	require.NoError(t, json.Unmarshal([]byte(`"use a sync.Pool here"`), &s))

	assert.Equal(t, "use a sync.Pool here", s.Text)
	assert.Nil(t, s.Fix)
	assert.False(t, s.Appliable())
}

func TestSuggestedFixUnmarshalObject(t *testing.T) {
	t.Parallel()

	payload := `{"type": "replace", "startLine": 3, "endLine": 4, "newCode": "y := 2", "description": "rename"}`

	var s review.SuggestedFix
	require.NoError(t, json.Unmarshal([]byte(payload), &s))

	require.NotNil(t, s.Fix)
	assert.Empty(t, s.Text)
	assert.True(t, s.Appliable())
	assert.Equal(t, review.FixReplace, s.Fix.Type)
	assert.Equal(t, 3, s.Fix.StartLine)
	assert.Equal(t, 4, s.Fix.EndLine)
	assert.Equal(t, "y := 2", s.Fix.NewCode)
	assert.Equal(t, "rename", s.Fix.Description)
}

func TestSuggestedFixUnmarshalNull(t *testing.T) {
	t.Parallel()

	var s review.SuggestedFix
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Empty(t, s.Text)
	assert.Nil(t, s.Fix)
}

func TestSuggestedFixMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	structured := review.Structured(review.CodeFix{Type: review.FixInsert, StartLine: 7})
	data, err := json.Marshal(structured)
	require.NoError(t, err)

	var back review.SuggestedFix
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.Fix)
	assert.Equal(t, review.FixInsert, back.Fix.Type)
	assert.Equal(t, 7, back.Fix.StartLine)

	text := review.FreeText("advice")
	data, err = json.Marshal(text)
	require.NoError(t, err)
	assert.Equal(t, `"advice"`, string(data))
}

func TestParseIssuesMixedSuggestedFixShapes(t *testing.T) {
	t.Parallel()

	response := `{"issues": [
		{"file": "a.go", "line": 1, "severity": "warning", "message": "m",
		 "suggestedFix": "consider extracting a helper"},
		{"file": "a.go", "line": 2, "severity": "error", "message": "m",
		 "suggestedFix": {"type": "delete", "startLine": 2, "endLine": 2}}
	]}`

	issues, err := review.ParseIssues(response)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.False(t, issues[0].HasAppliableFix())
	assert.Equal(t, "consider extracting a helper", issues[0].SuggestedFix.Text)

	assert.True(t, issues[1].HasAppliableFix())
	assert.Equal(t, review.FixDelete, issues[1].SuggestedFix.Fix.Type)
}
