package structure_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gomdstruct/pkg/config"
	"github.com/yaklabco/gomdstruct/pkg/structure"
)

func identity(m structure.MatchResult) string { return m.Text }

func TestRegisterNilRulesFails(t *testing.T) {
	t.Parallel()

	reg := structure.NewRegistry()
	err := reg.Register(structure.Set{Name: "broken"})

	require.Error(t, err)
	var verr *structure.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, reg.Len())
}

func TestRegisterEmptyRulesSucceeds(t *testing.T) {
	t.Parallel()

	reg := structure.NewRegistry()
	err := reg.Register(structure.Set{Name: "empty", Rules: []structure.Descriptor{}})

	require.NoError(t, err)
	assert.Zero(t, reg.Len())
}

func TestRegisterValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc structure.Descriptor
	}{
		{"missing name", structure.Descriptor{Pattern: `^x$`, Transform: identity}},
		{"missing transform", structure.Descriptor{Name: "r", Pattern: `^x$`}},
		{"invalid pattern", structure.Descriptor{Name: "r", Pattern: `(`, Transform: identity}},
		{"first-line and multi-line conflict", structure.Descriptor{
			Name: "r", Pattern: `^x$`, Transform: identity, FirstLine: true, MultiLine: true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := structure.NewRegistry()
			err := reg.Register(structure.Set{Name: "set", Rules: []structure.Descriptor{tt.desc}})

			var verr *structure.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestRegisterIsAtomic(t *testing.T) {
	t.Parallel()

	reg := structure.NewRegistry()
	require.NoError(t, reg.Register(structure.Set{Name: "good", Rules: []structure.Descriptor{
		{Name: "keep", Pattern: `^a$`, Transform: identity},
	}}))
	require.Equal(t, 1, reg.Len())

	// One valid descriptor followed by a malformed one. Nothing from the
	// bad set may land in the registry.
	err := reg.Register(structure.Set{Name: "bad", Rules: []structure.Descriptor{
		{Name: "first", Pattern: `^b$`, Transform: identity},
		{Name: "", Pattern: `^c$`, Transform: identity},
	}})

	require.Error(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "keep", reg.Rules()[0].Name())
}

func TestRegisterCompilesVariants(t *testing.T) {
	t.Parallel()

	reg := structure.NewRegistry()
	err := reg.Register(structure.Set{Name: "variants", Rules: []structure.Descriptor{
		{Name: "plain", Pattern: `^a$`, Transform: identity},
		{Name: "skip", Pattern: `^b$`, Transform: identity, SkipIfConverted: true},
		{Name: "first", Pattern: `^c$`, Transform: identity, FirstLine: true},
		{Name: "ctx", Pattern: `^d$`, Transform: identity, ContextCheck: true},
		{Name: "multi", Pattern: `^e$`, Transform: identity, MultiLine: true},
	}})
	require.NoError(t, err)

	rules := reg.Rules()
	require.Len(t, rules, 5)
	assert.Equal(t, structure.KindLine, rules[0].Kind())
	assert.Equal(t, structure.KindLine, rules[1].Kind())
	assert.Equal(t, structure.KindFirstLine, rules[2].Kind())
	assert.Equal(t, structure.KindContextual, rules[3].Kind())
	assert.Equal(t, structure.KindMultiLine, rules[4].Kind())
}

func TestRegistrationOrderIsPrecedence(t *testing.T) {
	t.Parallel()

	reg := structure.NewRegistry()
	require.NoError(t, reg.Register(structure.Set{Name: "one", Rules: []structure.Descriptor{
		{Name: "early", Pattern: `^x$`, Transform: func(structure.MatchResult) string { return "early" }},
	}}))
	require.NoError(t, reg.Register(structure.Set{Name: "two", Rules: []structure.Descriptor{
		{Name: "late", Pattern: `^x$`, Transform: func(structure.MatchResult) string { return "late" }},
	}}))

	rules := reg.LineRules()
	require.Len(t, rules, 2)
	assert.Equal(t, "early", rules[0].Name())
	assert.Equal(t, "late", rules[1].Name())

	// First match wins in the line pass: the earlier rule shadows the
	// later one with the same pattern.
	out, ok := rules[0].TryApply("x", structure.LineState{})
	require.True(t, ok)
	assert.Equal(t, "early", out)
}

func TestRegistryFiltering(t *testing.T) {
	t.Parallel()

	reg := structure.NewDefaultRegistry(config.Default())

	first := reg.FirstLine()
	require.NotNil(t, first)
	assert.Equal(t, structure.RuleFirstLineTitle, first.Name())

	var lineNames []string
	for _, r := range reg.LineRules() {
		lineNames = append(lineNames, r.Name())
	}
	assert.Equal(t, []string{
		structure.RuleNumberedItem,
		structure.RuleBulletMarker,
		structure.RuleContextList,
	}, lineNames)

	multi := reg.MultiLineRules()
	require.Len(t, multi, 1)
	assert.Equal(t, structure.RuleCollapseBlankLines, multi[0].Name())
}

func TestRegistryFirstLineAbsent(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false
	reg := structure.NewDefaultRegistry(opts)

	assert.Nil(t, reg.FirstLine())
	assert.Equal(t, 4, reg.Len())
}

func TestRulesReturnsCopy(t *testing.T) {
	t.Parallel()

	reg := structure.NewDefaultRegistry(config.Default())
	rules := reg.Rules()
	rules[0] = structure.NewLineRule("swapped", regexp.MustCompile(`^$`), identity)

	assert.Equal(t, structure.RuleFirstLineTitle, reg.Rules()[0].Name(),
		"mutating the returned slice must not affect the registry")
}
