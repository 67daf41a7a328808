package mdedit_test

import (
	"testing"

	"github.com/fwojciec/mdedit"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := mdedit.DefaultTheme()

	assert.Equal(t, 8, theme.Placeholder)
	for _, kind := range []mdedit.RegionKind{
		mdedit.CodeBlockLine,
		mdedit.CodeBlockInline,
		mdedit.BlockquoteLine,
		mdedit.AutolinkSpan,
	} {
		_, ok := theme.Style(kind.Class())
		assert.True(t, ok, "no style for %s", kind.Class())
	}

	code, _ := theme.Style("cm-codeblock")
	assert.Equal(t, 0, code.Background)
	assert.Equal(t, -1, code.Foreground)
}

func TestTheme_With(t *testing.T) {
	t.Parallel()

	base := mdedit.DefaultTheme()
	custom := base.With("cm-codeblock", mdedit.ClassStyle{Foreground: 2, Background: -1, Bold: true})

	got, ok := custom.Style("cm-codeblock")
	assert.True(t, ok)
	assert.True(t, got.Bold)

	orig, _ := base.Style("cm-codeblock")
	assert.False(t, orig.Bold, "base theme is unchanged")

	_, ok = custom.Style("cm-missing")
	assert.False(t, ok)
}
