package cli

import "github.com/yaklabco/gomdstruct/pkg/runner"

// Exit codes for gomdstruct.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChanges indicates files would change (check mode) or a file
	// failed to process.
	ExitChanges = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a run. In check mode
// pending changes are a failure, mirroring gofmt -l.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitChanges
	}
	if check && result.HasChanges() {
		return ExitChanges
	}
	return ExitSuccess
}
