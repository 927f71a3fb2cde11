package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gomdstruct/pkg/config"
	"github.com/yaklabco/gomdstruct/pkg/structure"
)

func scanWith(t *testing.T, opts config.Options, input string) string {
	t.Helper()
	scanner := structure.NewScanner(opts, structure.NewDefaultRegistry(opts))
	return scanner.Scan(input)
}

func TestScanFirstLineTitle(t *testing.T) {
	t.Parallel()

	got := scanWith(t, config.Default(), "hello world\nmore text")
	assert.Equal(t, "# hello world\n\nmore text", got)
}

func TestScanFirstLineAlreadyHeading(t *testing.T) {
	t.Parallel()

	got := scanWith(t, config.Default(), "# Already a title\nmore text")
	assert.Equal(t, "# Already a title\nmore text", got)
}

func TestScanFirstLineSlotConsumedOnce(t *testing.T) {
	t.Parallel()

	// Only the first non-empty line is eligible; later prose stays prose.
	got := scanWith(t, config.Default(), "\n\ntitle here\nsecond line")
	assert.Equal(t, "\n# title here\n\nsecond line", got)
}

func TestScanFolderHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dashed name title-cased", "my-project/", "### My Project\n"},
		{"underscored name title-cased", "data_store/", "### Data Store\n"},
		{"single segment", "src/", "### Src\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scanWith(t, config.Default(), tt.input))
		})
	}
}

func TestScanFolderHeadingLevel(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.HeaderLevel = 2
	assert.Equal(t, "## My Project\n", scanWith(t, opts, "my-project/"))
}

func TestScanFolderNotMistaken(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	tests := []struct {
		name  string
		input string
	}{
		{"url is not a folder", "https://example.com/"},
		{"spaces disqualify", "two words/"},
		{"bare slash", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.input, scanWith(t, opts, tt.input))
		})
	}
}

func TestScanIndentedItems(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	got := scanWith(t, opts, "  alpha\n    beta\n  gamma")
	assert.Equal(t, "- alpha\n  - beta\n- gamma", got)
}

func TestScanIndentedItemAlreadyListed(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	// An indented line that already carries a marker keeps its indent.
	got := scanWith(t, opts, "  - alpha")
	assert.Equal(t, "  - alpha", got)
}

func TestScanLabels(t *testing.T) {
	t.Parallel()

	got := scanWith(t, config.Default(), "Title\nStatus: In progress\nOwner: sam")
	assert.Equal(t, "# Title\n\n**Status:** In progress\n**Owner:** sam", got)
}

func TestScanLabelEdgeCases(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty value keeps no trailing space", "Notes:", "**Notes:**"},
		{"lowercase key not a label", "status: done", "status: done"},
		{"already bolded untouched", "**Status:** done", "**Status:** done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scanWith(t, opts, tt.input))
		})
	}
}

func TestScanNumberedAndBulletMarkers(t *testing.T) {
	t.Parallel()

	got := scanWith(t, config.Default(), "Steps:\n1) first\n2) second\n* extra\n• dot")
	assert.Equal(t, "# Steps:\n\n1. first\n2. second\n- extra\n- dot", got)
}

func TestScanContextList(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	// The bold label opens list context; each produced item keeps it open.
	got := scanWith(t, opts, "Ingredients:\neggs\nmilk")
	assert.Equal(t, "**Ingredients:**\n- eggs\n- milk", got)
}

func TestScanContextListAfterPlainColon(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false
	opts.DetectLabels = false

	got := scanWith(t, opts, "Ingredients:\neggs\nmilk")
	assert.Equal(t, "Ingredients:\n- eggs\n- milk", got)
}

func TestScanContextClosedByBlank(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false
	opts.DetectLabels = false

	got := scanWith(t, opts, "Ingredients:\neggs\n\nnot a list item")
	assert.Equal(t, "Ingredients:\n- eggs\n\nnot a list item", got)
}

func TestScanCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false

	got := scanWith(t, opts, "alpha\n\n\n\nbeta")
	assert.Equal(t, "alpha\n\nbeta", got)
}

func TestScanPreservesCodeBlocks(t *testing.T) {
	t.Parallel()

	input := "Title\n```\n  indented code\n1) keep\nStatus: raw\n```"
	got := scanWith(t, config.Default(), input)

	require.Contains(t, got, "  indented code")
	require.Contains(t, got, "1) keep")
	require.Contains(t, got, "Status: raw")
	assert.Equal(t, "# Title\n\n```\n  indented code\n1) keep\nStatus: raw\n```", got)
}

func TestScanCodePreservationDisabled(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.PreserveCodeBlocks = false
	opts.FirstLineTitle = false

	// Without preservation the fence interior is fair game for rules.
	got := scanWith(t, opts, "```\n1) item\n```")
	assert.Equal(t, "```\n1. item\n```", got)
}

func TestScanIdempotent(t *testing.T) {
	t.Parallel()

	input := "Title\nStatus: open\n  alpha\n    beta\n1) first\n\n\nmore"
	once := scanWith(t, config.Default(), input)
	twice := scanWith(t, config.Default(), once)

	assert.Equal(t, once, twice)
}

func TestScanCustomRegisteredRule(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	opts.FirstLineTitle = false
	reg := structure.NewDefaultRegistry(opts)
	require.NoError(t, reg.Register(structure.Set{Name: "extras", Rules: []structure.Descriptor{
		{
			Name:    "arrow",
			Pattern: `^-> (.+)$`,
			Transform: func(m structure.MatchResult) string {
				return "> " + m.Group(0)
			},
		},
	}}))

	scanner := structure.NewScanner(opts, reg)
	assert.Equal(t, "> follow up", scanner.Scan("-> follow up"))
}
