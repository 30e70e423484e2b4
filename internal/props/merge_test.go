package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *Properties {
	t.Helper()
	p, err := ParseString(s)
	require.NoError(t, err)
	return p
}

func TestMerge_OverrideScenario(t *testing.T) {
	base := mustParse(t, "# greeting\na=1\nb=2\n")
	override := mustParse(t, "b=20\nc=3\n")

	merged := Merge(base, override)

	assert.Equal(t, []Entry{
		{Key: "a", Raw: "a=1", Comment: "# greeting\n"},
		{Key: "b", Raw: "b=20"},
		{Key: "c", Raw: "c=3"},
	}, merged.Entries())
	assert.Equal(t, "\n# greeting\na=1\nb=20\nc=3\n", string(merged.Encode()))
}

func TestMerge_SelfIsIdentity(t *testing.T) {
	f := mustParse(t, "# a\na=1\nb:2\n# c\nc=3\\\n  more\n")

	assert.True(t, Merge(f, f).Equal(f))
}

func TestMerge_OverridePrecedence(t *testing.T) {
	base := mustParse(t, "x=1\ny=2\nz=3\n")
	override := mustParse(t, "z=30\nx=10\n")

	merged := Merge(base, override)

	for _, key := range []string{"x", "z"} {
		want, _ := override.Get(key)
		got, ok := merged.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want.Raw, got.Raw, key)
	}
	y, _ := merged.Get("y")
	assert.Equal(t, "y=2", y.Raw)
}

func TestMerge_CommentStickiness(t *testing.T) {
	base := mustParse(t, "# base a\na=1\nb=2\n")
	override := mustParse(t, "# override a\na=10\n# override b\nb=20\n")

	merged := Merge(base, override)

	a, _ := merged.Get("a")
	assert.Equal(t, "# base a\n", a.Comment)
	assert.Equal(t, "a=10", a.Raw)

	b, _ := merged.Get("b")
	assert.Empty(t, b.Comment)
	assert.Equal(t, "b=20", b.Raw)
}

func TestMerge_OrderPreservation(t *testing.T) {
	base := mustParse(t, "a=1\nb=2\nc=3\n")
	override := mustParse(t, "e=5\nb=20\nd=4\n")

	merged := Merge(base, override)

	assert.Equal(t, []string{"a", "b", "c", "e", "d"}, merged.Keys())
}

func TestMerge_OverrideOnlyKeysKeepTheirComment(t *testing.T) {
	base := mustParse(t, "a=1\n")
	override := mustParse(t, "# new\nb=2\n")

	b, ok := Merge(base, override).Get("b")
	require.True(t, ok)
	assert.Equal(t, "# new\n", b.Comment)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := mustParse(t, "a=1\nb=2\n")
	override := mustParse(t, "b=20\nc=3\n")
	baseBefore := base.Clone()
	overrideBefore := override.Clone()

	_ = Merge(base, override)

	assert.True(t, base.Equal(baseBefore))
	assert.True(t, override.Equal(overrideBefore))
	assert.False(t, base.Has("c"))
}

func TestMerge_EmptyInputs(t *testing.T) {
	f := mustParse(t, "a=1\n")

	assert.True(t, Merge(New(), f).Equal(f))
	assert.True(t, Merge(f, New()).Equal(f))
	assert.Equal(t, 0, Merge(New(), New()).Len())
}

func TestDiff(t *testing.T) {
	base := mustParse(t, "a=1\nb=2\nc=3\n")
	override := mustParse(t, "b=20\nc=3\nd=4\n")

	changes := Diff(base, override)

	assert.Equal(t, []Change{{Key: "b", From: "b=2", To: "b=20"}}, changes.Overridden)
	assert.Equal(t, []string{"c"}, changes.Unchanged)
	assert.Equal(t, []string{"d"}, changes.Added)
	assert.Equal(t, []string{"a"}, changes.Inherited)
	assert.False(t, changes.Empty())
}

func TestDiff_NoEffect(t *testing.T) {
	base := mustParse(t, "a=1\nb=2\n")
	override := mustParse(t, "b=2\n")

	changes := Diff(base, override)

	assert.True(t, changes.Empty())
	assert.Equal(t, []string{"b"}, changes.Unchanged)
	assert.Empty(t, changes.Added)
}
