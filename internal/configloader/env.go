package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envVarPrefix is the prefix for all gomdstruct environment variables.
const envVarPrefix = "GOMDSTRUCT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeBool envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to setter binding.
type envMapping struct {
	typ   envFieldType
	apply func(result *LoadResult, boolVal bool, intVal int, sliceVal []string)
}

// envMappings maps environment variable names (without prefix) to
// config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"NLP": {typ: envTypeBool, apply: func(r *LoadResult, b bool, _ int, _ []string) {
		r.Options.NLP = b
	}},
	"HEADER_LEVEL": {typ: envTypeInt, apply: func(r *LoadResult, _ bool, i int, _ []string) {
		r.Options.HeaderLevel = i
	}},
	"WRAP_WIDTH": {typ: envTypeInt, apply: func(r *LoadResult, _ bool, i int, _ []string) {
		r.Options.WrapWidth = i
	}},
	"DETECT_CODE_LANGUAGE": {typ: envTypeBool, apply: func(r *LoadResult, b bool, _ int, _ []string) {
		r.Options.DetectCodeLanguage = b
	}},
	"JOBS": {typ: envTypeInt, apply: func(r *LoadResult, _ bool, i int, _ []string) {
		r.Run.Jobs = i
	}},
	"BACKUP": {typ: envTypeBool, apply: func(r *LoadResult, b bool, _ int, _ []string) {
		r.Run.Backup = b
	}},
	"EXCLUDE": {typ: envTypeSlice, apply: func(r *LoadResult, _ bool, _ int, s []string) {
		r.Run.Exclude = s
	}},
}

// applyEnv applies GOMDSTRUCT_* environment overrides to the result.
func applyEnv(result *LoadResult) error {
	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		switch mapping.typ {
		case envTypeBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
			}
			mapping.apply(result, b, 0, nil)
		case envTypeInt:
			i, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %q", envVar, value)
			}
			mapping.apply(result, false, i, nil)
		case envTypeSlice:
			mapping.apply(result, false, 0, parseSliceValue(value))
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, for help output.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOMDSTRUCT_NLP":                  "Enable NLP cleanup: true or false",
		"GOMDSTRUCT_HEADER_LEVEL":         "Heading level for folder headings (1-6)",
		"GOMDSTRUCT_WRAP_WIDTH":           "Semantic break threshold in characters (0 = off)",
		"GOMDSTRUCT_DETECT_CODE_LANGUAGE": "Tag bare code fences with a detected language: true or false",
		"GOMDSTRUCT_JOBS":                 "Number of parallel workers (0 = auto)",
		"GOMDSTRUCT_BACKUP":               "Create sidecar backups before writing: true or false",
		"GOMDSTRUCT_EXCLUDE":              "Comma-separated list of exclude glob patterns",
	}
}
