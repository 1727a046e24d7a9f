package errors

import "errors"

// Domain errors
var (
	// Registry errors
	ErrCheckNotFound     = errors.New("check not found")
	ErrDuplicateCheckID  = errors.New("duplicate check id")
	ErrInvalidDefinition = errors.New("invalid check definition")
	ErrInvalidSeverity   = errors.New("severity must be between 1 and 5")
	ErrUnknownCategory   = errors.New("unknown check category")
	ErrEmptyCheckID      = errors.New("check id cannot be empty")

	// Scan errors
	ErrScanInProgress = errors.New("scan already in progress")
	ErrScanCancelled  = errors.New("scan cancelled before all checks completed")
	ErrNoReport       = errors.New("no report available")

	// Report errors
	ErrUnsupportedFormat   = errors.New("unsupported report format")
	ErrSerializationFailed = errors.New("serialization failed")

	// Integrity errors
	ErrInvalidHashAlgorithm = errors.New("invalid hash algorithm (use sha256 or sha512)")
	ErrHashFileNotFound     = errors.New("no hash file found")
	ErrIntegrityMismatch    = errors.New("report does not match its recorded hash")

	// Command errors
	ErrEmptyCommand = errors.New("command cannot be empty")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
