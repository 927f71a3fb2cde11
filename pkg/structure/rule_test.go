package structure_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/gomdstruct/pkg/structure"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind structure.Kind
		want string
	}{
		{structure.KindLine, "line"},
		{structure.KindFirstLine, "first-line"},
		{structure.KindContextual, "contextual"},
		{structure.KindMultiLine, "multi-line"},
		{structure.Kind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestMatchResultGroup(t *testing.T) {
	t.Parallel()

	m := structure.MatchResult{Text: "a b", Groups: []string{"a", "b"}}

	assert.Equal(t, "a", m.Group(0))
	assert.Equal(t, "b", m.Group(1))
	assert.Empty(t, m.Group(2), "out-of-range group must be empty")
	assert.Empty(t, m.Group(-1))
}

func TestLineRule(t *testing.T) {
	t.Parallel()

	rule := structure.NewLineRule("arrow", regexp.MustCompile(`^-> (.+)$`),
		func(m structure.MatchResult) string { return "=> " + m.Group(0) })

	assert.Equal(t, structure.KindLine, rule.Kind())
	assert.Equal(t, "arrow", rule.Name())

	out, ok := rule.TryApply("-> next step", structure.LineState{})
	assert.True(t, ok)
	assert.Equal(t, "=> next step", out)

	_, ok = rule.TryApply("no arrow here", structure.LineState{})
	assert.False(t, ok)
}

func TestLineRuleSkipConverted(t *testing.T) {
	t.Parallel()

	// Pattern matches everything; the skip flag is what gates it.
	rule := structure.NewLineRuleSkipConverted("rewrite", regexp.MustCompile(`^(.+)$`),
		func(m structure.MatchResult) string { return "X " + m.Group(0) })

	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"plain prose matches", "some prose", true},
		{"list item declined", "- item", false},
		{"ordered item declined", "1. item", false},
		{"bold label declined", "**Status:** done", false},
		{"heading declined", "# Title", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := rule.TryApply(tt.input, structure.LineState{})
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFirstLineRuleRequiresOpenSlot(t *testing.T) {
	t.Parallel()

	rule := structure.NewFirstLineRule("title", regexp.MustCompile(`^(.+)$`),
		func(m structure.MatchResult) string { return "# " + m.Group(0) })

	assert.Equal(t, structure.KindFirstLine, rule.Kind())

	out, ok := rule.TryApply("hello", structure.LineState{FirstLine: true})
	assert.True(t, ok)
	assert.Equal(t, "# hello", out)

	_, ok = rule.TryApply("hello", structure.LineState{})
	assert.False(t, ok, "first-line rule must decline once the slot is closed")
}

func TestContextualRuleGating(t *testing.T) {
	t.Parallel()

	rule := structure.NewContextualRule("dash", regexp.MustCompile(`^\s*(\S.*)$`),
		func(m structure.MatchResult) string { return "- " + m.Group(0) })

	assert.Equal(t, structure.KindContextual, rule.Kind())

	inList := structure.LineState{ListContext: true}

	out, ok := rule.TryApply("eggs", inList)
	assert.True(t, ok)
	assert.Equal(t, "- eggs", out)

	_, ok = rule.TryApply("eggs", structure.LineState{})
	assert.False(t, ok, "no list context, no match")

	_, ok = rule.TryApply("   ", inList)
	assert.False(t, ok, "blank lines never continue a list")

	_, ok = rule.TryApply("- already a bullet", inList)
	assert.False(t, ok, "converted lines are left alone")
}

func TestMultiLineRuleReplacesAllOccurrences(t *testing.T) {
	t.Parallel()

	rule := structure.NewMultiLineRule("collapse", regexp.MustCompile(`\n{3,}`),
		func(structure.MatchResult) string { return "\n\n" })

	assert.Equal(t, structure.KindMultiLine, rule.Kind())

	out, ok := rule.TryApply("a\n\n\n\nb\n\n\n\n\nc", structure.LineState{})
	assert.True(t, ok)
	assert.Equal(t, "a\n\nb\n\nc", out)

	_, ok = rule.TryApply("a\n\nb", structure.LineState{})
	assert.False(t, ok)
}

func TestLineClassifiers(t *testing.T) {
	t.Parallel()

	assert.True(t, structure.IsListItem("- item"))
	assert.True(t, structure.IsListItem("  * item"))
	assert.True(t, structure.IsListItem("3. item"))
	assert.True(t, structure.IsListItem("3) item"))
	assert.False(t, structure.IsListItem("item"))
	assert.False(t, structure.IsListItem("-no space"))

	assert.True(t, structure.IsBoldLabel("**Status:** done"))
	assert.True(t, structure.IsBoldLabel("  **Status:** done"))
	assert.False(t, structure.IsBoldLabel("**not a label**"))
	assert.False(t, structure.IsBoldLabel("Status: done"))

	assert.True(t, structure.IsHeading("# Title"))
	assert.True(t, structure.IsHeading("###### Deep"))
	assert.False(t, structure.IsHeading("#NoSpace"))
	assert.False(t, structure.IsHeading("plain"))
}
