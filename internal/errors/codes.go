// Package errors provides structured error handling for AppDex.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (cache file, disk)
//   - 3XX: Launch errors (OS process start)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryLaunch indicates application launch errors.
	CategoryLaunch Category = "LAUNCH"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid    = "ERR_101_CONFIG_INVALID"
	ErrCodeConfigPermission = "ERR_102_CONFIG_PERMISSION"

	// IO errors (200-299)
	ErrCodeCacheRead    = "ERR_201_CACHE_READ"
	ErrCodeCacheWrite   = "ERR_202_CACHE_WRITE"
	ErrCodeCacheDelete  = "ERR_203_CACHE_DELETE"
	ErrCodeHistoryStore = "ERR_204_HISTORY_STORE"

	// Launch errors (300-399)
	ErrCodeLaunchFailed   = "ERR_301_LAUNCH_FAILED"
	ErrCodeLaunchNotFound = "ERR_302_LAUNCH_NOT_FOUND"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidPath  = "ERR_402_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_CACHE_READ"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryLaunch
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Cache write failures degrade durability only, so they are warnings;
// the in-memory index stays authoritative.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCacheRead, ErrCodeCacheWrite, ErrCodeHistoryStore:
		return SeverityWarning
	default:
		return SeverityError
	}
}
