package mdedit_test

import (
	"testing"

	"github.com/fwojciec/mdedit"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func tag(name string) *mdedit.Tag { return mdedit.DefaultTags().MustLookup(name) }

func TestClassifier_Default(t *testing.T) {
	t.Parallel()
	c := mdedit.NewClassifier(mdedit.ClassifierOptions{})

	assert.Equal(t, mdedit.PolicyDefault, c.Policy())
	assert.Equal(t, "cm-heading1", c.Classify("heading1", mdedit.HeadingTag(1)))
	assert.Equal(t, "cm-url", c.Classify("url", mdedit.TagURL))
	assert.Empty(t, c.Classify("definitionKeyword", tag("definitionKeyword")))
	assert.Empty(t, c.Classify("comment", mdedit.TagComment))
	assert.Empty(t, c.Classify("monospace", mdedit.TagMonospace))
}

func TestClassifier_NilSafety(t *testing.T) {
	t.Parallel()
	for _, p := range []mdedit.Policy{mdedit.PolicyDefault, mdedit.PolicyExternal, mdedit.PolicyCustom} {
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{
			Policy: p,
			Custom: func(string, *mdedit.Tag) string { return "x" },
		})
		assert.Empty(t, c.Classify("", mdedit.TagURL), p.String())
		assert.Empty(t, c.Classify("url", nil), p.String())
	}
}

func TestClassifier_External(t *testing.T) {
	t.Parallel()
	c := mdedit.NewClassifier(mdedit.ClassifierOptions{Policy: mdedit.PolicyExternal})

	tests := []struct {
		name string
		want string
	}{
		{"definitionKeyword", "token keyword"},
		{"controlKeyword", "token keyword"},
		{"className", "token class-name"},
		{"blockComment", "token comment"},
		{"arithmeticOperator", "token operator"},
		{"string", "token string"},
		{"bool", "token boolean"},
		{"heading1", "cm-heading1"},
		{"monospace", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, c.Classify(tc.name, tag(tc.name)))
		})
	}
}

func TestClassifier_Custom(t *testing.T) {
	t.Parallel()

	t.Run("result is trimmed", func(t *testing.T) {
		t.Parallel()
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{
			Policy: mdedit.PolicyCustom,
			Custom: func(name string, _ *mdedit.Tag) string { return "  my-" + name + " " },
		})
		assert.Equal(t, "my-url", c.Classify("url", mdedit.TagURL))
	})

	t.Run("empty result has no fallback", func(t *testing.T) {
		t.Parallel()
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{
			Policy: mdedit.PolicyCustom,
			Custom: func(string, *mdedit.Tag) string { return "" },
		})
		assert.Empty(t, c.Classify("heading1", mdedit.HeadingTag(1)))
	})

	t.Run("missing func classifies nothing", func(t *testing.T) {
		t.Parallel()
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{Policy: mdedit.PolicyCustom})
		assert.Empty(t, c.Classify("heading1", mdedit.HeadingTag(1)))
	})

	t.Run("external scheme as a custom func", func(t *testing.T) {
		t.Parallel()
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{
			Policy: mdedit.PolicyCustom,
			Custom: mdedit.ExternalClass,
		})
		assert.Equal(t, "token keyword", c.Classify("definitionKeyword", tag("definitionKeyword")))
	})
}

func TestClassifier_OnlyAutolink(t *testing.T) {
	t.Parallel()
	for _, p := range []mdedit.Policy{mdedit.PolicyDefault, mdedit.PolicyExternal, mdedit.PolicyCustom} {
		c := mdedit.NewClassifier(mdedit.ClassifierOptions{
			Policy:       p,
			OnlyAutolink: true,
			Custom:       func(name string, _ *mdedit.Tag) string { return name },
		})
		assert.Empty(t, c.Classify("link", mdedit.TagLink), p.String())
		assert.Empty(t, c.Classify("url", mdedit.TagURL), p.String())
		assert.NotEmpty(t, c.Classify("heading1", mdedit.HeadingTag(1)), p.String())
	}
}

func TestClassifier_Ignore(t *testing.T) {
	t.Parallel()
	c := mdedit.NewClassifier(mdedit.ClassifierOptions{Ignore: mdedit.NewIgnoreSet(mdedit.TagURL)})
	assert.Empty(t, c.Classify("url", mdedit.TagURL))
	assert.Equal(t, "cm-comment", c.Classify("comment", mdedit.TagComment))
}

func TestClassifier_ClassTable(t *testing.T) {
	t.Parallel()
	table := mdedit.NewClassifier(mdedit.ClassifierOptions{}).ClassTable(mdedit.DefaultTags())

	assert.Equal(t, "cm-url", table[mdedit.TagURL])
	assert.NotContains(t, table, mdedit.TagComment)
	assert.Len(t, table, mdedit.DefaultTags().Len()-mdedit.DefaultIgnoreSet().Len())
}

func TestClassifier_DefaultProperty(t *testing.T) {
	t.Parallel()
	c := mdedit.NewClassifier(mdedit.ClassifierOptions{})
	tags := mdedit.DefaultTags().Tags()
	rapid.Check(t, func(t *rapid.T) {
		tg := rapid.SampledFrom(tags).Draw(t, "tag")
		got := c.Classify(tg.Name(), tg)
		if mdedit.DefaultIgnoreSet().Contains(tg) {
			if got != "" {
				t.Fatalf("ignored tag %s got class %q", tg, got)
			}
			return
		}
		if got != "cm-"+tg.Name() {
			t.Fatalf("tag %s got class %q", tg, got)
		}
	})
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	assert.Equal(t, mdedit.PolicyExternal, mdedit.ParsePolicy("prism"))
	assert.Equal(t, mdedit.PolicyExternal, mdedit.ParsePolicy(" External "))
	assert.Equal(t, mdedit.PolicyCustom, mdedit.ParsePolicy("custom"))
	assert.Equal(t, mdedit.PolicyDefault, mdedit.ParsePolicy("nonsense"))
	assert.Equal(t, "external", mdedit.PolicyExternal.String())
}
