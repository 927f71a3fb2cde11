package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/gomdstruct/pkg/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	opts := config.Default()

	assert.True(t, opts.DetectFolders)
	assert.True(t, opts.DetectLists)
	assert.True(t, opts.DetectLabels)
	assert.True(t, opts.FirstLineTitle)
	assert.True(t, opts.PreserveCodeBlocks)
	assert.True(t, opts.CollapseBlankLines)
	assert.False(t, opts.NLP)
	assert.Equal(t, config.DefaultHeaderLevel, opts.HeaderLevel)
	assert.Equal(t, config.DefaultWrapWidth, opts.WrapWidth)
}

func TestWithNLP_CopiesNotMutates(t *testing.T) {
	t.Parallel()

	base := config.Default()
	withNLP := base.WithNLP()

	assert.True(t, withNLP.NLP)
	assert.False(t, base.NLP, "WithNLP must not mutate the receiver")
}

func TestNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		headerLevel int
		wantLevel   int
	}{
		{"zero clamps to default", 0, config.DefaultHeaderLevel},
		{"negative clamps to default", -2, config.DefaultHeaderLevel},
		{"above six clamps to default", 9, config.DefaultHeaderLevel},
		{"valid level kept", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := config.Default()
			opts.HeaderLevel = tt.headerLevel

			got := opts.Normalized()
			assert.Equal(t, tt.wantLevel, got.HeaderLevel)
		})
	}

	t.Run("negative wrap width clamps", func(t *testing.T) {
		t.Parallel()

		opts := config.Default()
		opts.WrapWidth = -1
		assert.Equal(t, config.DefaultWrapWidth, opts.Normalized().WrapWidth)
	})
}
