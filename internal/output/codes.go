// Package output provides JSON/styled output formatting and error handling.
package output

// Exit codes.
const (
	ExitOK       = 0 // Success
	ExitUsage    = 1 // Invalid arguments or flags
	ExitParse    = 2 // Phrase not recognized by any parser
	ExitCanceled = 3 // Interactive prompt canceled
	ExitInternal = 4 // Unexpected failure
)

// Error codes for the JSON envelope.
const (
	CodeUsage    = "usage"
	CodeParse    = "parse_error"
	CodeCanceled = "canceled"
	CodeInternal = "internal"
)

// ExitCodeFor returns the exit code for a given error code.
func ExitCodeFor(code string) int {
	switch code {
	case CodeUsage:
		return ExitUsage
	case CodeParse:
		return ExitParse
	case CodeCanceled:
		return ExitCanceled
	default:
		return ExitInternal
	}
}
