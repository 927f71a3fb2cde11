package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

// ValidationError represents a configuration validation finding.
type ValidationError struct {
	// Field is the config key concerned (e.g. "header_level").
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues, surfaced but not blocking.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks the merged configuration. Out-of-range values that
// Normalized() silently clamps are warned about so the user learns the
// effective value; structurally unusable values are errors.
func Validate(result *LoadResult) *ValidationResult {
	vr := &ValidationResult{}

	o := result.Options
	if o.HeaderLevel < 1 || o.HeaderLevel > 6 {
		vr.Warnings = append(vr.Warnings, ValidationError{
			Field:   "header_level",
			Value:   o.HeaderLevel,
			Message: fmt.Sprintf("must be between 1 and 6, using default %d", config.DefaultHeaderLevel),
		})
	}
	if o.WrapWidth < 0 {
		vr.Warnings = append(vr.Warnings, ValidationError{
			Field:   "wrap_width",
			Value:   o.WrapWidth,
			Message: fmt.Sprintf("must not be negative, using default %d", config.DefaultWrapWidth),
		})
	}

	run := result.Run
	if run.Jobs < 0 {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   "jobs",
			Value:   run.Jobs,
			Message: "must not be negative (0 means auto)",
		})
	}
	for _, ext := range run.Extensions {
		if !strings.HasPrefix(ext, ".") {
			vr.Warnings = append(vr.Warnings, ValidationError{
				Field:   "extensions",
				Value:   ext,
				Message: "extensions should start with a dot",
			})
		}
	}

	return vr
}
