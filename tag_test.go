package mdedit_test

import (
	"testing"

	"github.com/fwojciec/mdedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicates keep the first tag", func(t *testing.T) {
		t.Parallel()
		s := mdedit.NewTagSet("a", "b", "a", "")
		assert.Equal(t, 2, s.Len())
		require.NotNil(t, s.Lookup("a"))
		assert.Equal(t, "a", s.Tags()[0].Name())
	})

	t.Run("tags compare by identity", func(t *testing.T) {
		t.Parallel()
		other := mdedit.NewTagSet("url").Lookup("url")
		assert.NotSame(t, mdedit.TagURL, other)
		assert.Equal(t, mdedit.TagURL.Name(), other.Name())
	})

	t.Run("nil receivers", func(t *testing.T) {
		t.Parallel()
		var s *mdedit.TagSet
		var tg *mdedit.Tag
		assert.Nil(t, s.Lookup("url"))
		assert.Zero(t, s.Len())
		assert.Empty(t, tg.Name())
	})

	t.Run("MustLookup panics on unknown names", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { mdedit.DefaultTags().MustLookup("nope") })
	})
}

func TestHeadingTag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "heading3", mdedit.HeadingTag(3).Name())
	assert.Same(t, mdedit.HeadingTag(3), mdedit.HeadingTag(3))
	assert.Same(t, mdedit.TagHeading, mdedit.HeadingTag(0))
	assert.Same(t, mdedit.TagHeading, mdedit.HeadingTag(7))
}

func TestDefaultIgnoreSet(t *testing.T) {
	t.Parallel()
	ignore := mdedit.DefaultIgnoreSet()
	assert.True(t, ignore.Contains(mdedit.TagComment))
	assert.True(t, ignore.Contains(mdedit.TagQuote))
	assert.False(t, ignore.Contains(mdedit.TagURL))
	assert.False(t, ignore.Contains(nil))
	assert.Equal(t, 0, mdedit.NewIgnoreSet(nil).Len())
}
