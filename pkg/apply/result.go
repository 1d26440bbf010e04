package apply

// LineRange is the 1-based inclusive range a fix was applied to, taken from
// the original fix rather than re-derived after the edit.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is the outcome of applying one fix. Errors travel as data so that
// batch aggregation always produces a complete report, even under partial
// failure.
type Result struct {
	Success      bool       `json:"success"`
	Error        string     `json:"error,omitempty"`
	AppliedLines *LineRange `json:"appliedLines,omitempty"`
}

// BatchResult aggregates the outcomes of a sequential batch application.
type BatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Total returns the number of fixes the batch attempted.
func (b BatchResult) Total() int {
	return b.Succeeded + b.Failed
}

// AllSucceeded returns true when no fix in the batch failed.
func (b BatchResult) AllSucceeded() bool {
	return b.Failed == 0
}
