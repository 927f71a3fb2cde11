package structure

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

// Built-in rule names, exported for rule listings and tests.
const (
	RuleFirstLineTitle     = "first-line-title"
	RuleNumberedItem       = "numbered-item"
	RuleBulletMarker       = "bullet-marker"
	RuleContextList        = "context-list"
	RuleCollapseBlankLines = "collapse-blank-lines"
)

var (
	firstLinePattern    = regexp.MustCompile(`^(.+)$`)
	numberedItemPattern = regexp.MustCompile(`^(\s*)(\d+)[.)]\s+(.+)$`)
	bulletMarkerPattern = regexp.MustCompile("^(\\s*)[*+•]\\s+(.+)$")
	contextListPattern  = regexp.MustCompile(`^\s*(\S.*)$`)
	blankRunPattern     = regexp.MustCompile(`\n{3,}`)
)

// Builtins returns the default rule sequence in precedence order. The
// order is load-bearing: numbered-item is tried before context-list so a
// line that is both ("1. already numbered" inside list context) keeps
// its ordinal instead of being demoted to a dash bullet.
func Builtins(opts config.Options) []Rule {
	var rules []Rule

	if opts.FirstLineTitle {
		rules = append(rules, NewFirstLineRule(RuleFirstLineTitle, firstLinePattern,
			func(m MatchResult) string {
				return "# " + strings.TrimSpace(m.Group(0))
			}))
	}

	rules = append(rules,
		NewLineRule(RuleNumberedItem, numberedItemPattern,
			func(m MatchResult) string {
				return m.Group(0) + m.Group(1) + ". " + m.Group(2)
			}),
		NewLineRule(RuleBulletMarker, bulletMarkerPattern,
			func(m MatchResult) string {
				return m.Group(0) + "- " + m.Group(1)
			}),
		NewContextualRule(RuleContextList, contextListPattern,
			func(m MatchResult) string {
				return "- " + m.Group(0)
			}),
		NewMultiLineRule(RuleCollapseBlankLines, blankRunPattern,
			func(MatchResult) string {
				return "\n\n"
			}),
	)

	return rules
}

// NewDefaultRegistry returns a registry seeded with the built-in rules
// for the given options.
func NewDefaultRegistry(opts config.Options) *Registry {
	reg := NewRegistry()
	reg.append(Builtins(opts)...)
	return reg
}
