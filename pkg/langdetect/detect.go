// Package langdetect infers a fence info-string from code block
// content, using go-enry with a few fast-path checks for the languages
// that dominate pasted notes.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when the content cannot be classified with
// confidence. Callers tagging fences should leave the fence bare.
const Unknown = "text"

// classifierCandidates bounds the enry classifier to languages that
// plausibly appear in pasted snippets.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS",
}

// Detect returns a lowercase fence tag for the given code content, or
// Unknown when nothing matches with confidence.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	if lang := quickDetect(trimmed); lang != "" {
		return lang
	}

	// Fall back to the statistical classifier; accept only confident
	// results.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Unknown
}

// quickDetect short-circuits on unambiguous syntactic markers before
// paying for the classifier.
func quickDetect(trimmed []byte) string {
	s := string(trimmed)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) && strings.Contains(s, "func "):
		return "go"
	case strings.Contains(s, "def ") && strings.Contains(s, "):"):
		return "python"
	case bytes.HasPrefix(trimmed, []byte("{")) && strings.Contains(s, `"`):
		return "json"
	case bytes.HasPrefix(trimmed, []byte("SELECT ")) || bytes.HasPrefix(trimmed, []byte("select ")):
		return "sql"
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE html")) || bytes.HasPrefix(trimmed, []byte("<html")):
		return "html"
	case strings.Contains(s, "fn main()") || strings.Contains(s, "println!"):
		return "rust"
	default:
		return ""
	}
}

// fenceTag converts an enry language name into a lowercase fence tag.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
