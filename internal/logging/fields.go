package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"
	FieldLine  = "line"

	// Provider fields.
	FieldProvider = "provider"
	FieldModel    = "model"
	FieldTokens   = "tokens"

	// Review fields.
	FieldIssues     = "issues"
	FieldSeverity   = "severity"
	FieldReconciled = "reconciled"
	FieldCorrected  = "corrected"
	FieldSkipped    = "skipped"
	FieldReason     = "reason"

	// Fix application fields.
	FieldFixStatus = "fix_status"
	FieldSucceeded = "succeeded"
	FieldFailed    = "failed"
	FieldDryRun    = "dry_run"
	FieldBackup    = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
