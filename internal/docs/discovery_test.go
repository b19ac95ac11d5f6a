package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestLoad_SlugsAndTitles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"intro.md":                         "---\ntitle: Welcome\nsidebar_position: 1\n---\n# Not used\n",
		"getting-started.mdx":              "# Getting *Started* with `LanguageModelSession`\n\nBody.",
		"guides/tool-calling.md":           "No heading here.",
		"guides/02-streaming.md":           "# Streaming\n",
		"guides/custom.md":                 "---\nid: renamed\nsidebar_label: Short\n---\n# Custom Title\n",
		"guides/_partial.mdx":              "# Partial\n",
		".hidden/secret.md":                "# Secret\n",
		"notes.txt":                        "not markdown",
		"03-advanced/structured-output.md": "# Structured Output\n",
	})

	c, err := Load(root)
	require.NoError(t, err)

	slugs := make([]string, 0)
	for _, d := range c.Documents() {
		slugs = append(slugs, d.Slug)
	}
	require.Equal(t, []string{
		"advanced/structured-output",
		"getting-started",
		"guides/renamed",
		"guides/streaming",
		"guides/tool-calling",
		"intro",
	}, slugs)

	intro, ok := c.Lookup("intro")
	require.True(t, ok)
	require.Equal(t, "Welcome", intro.Title)
	require.True(t, intro.HasPosition)
	require.InDelta(t, 1.0, intro.Position, 0.0001)
	require.NotEmpty(t, intro.Fingerprint)

	gs, _ := c.Lookup("getting-started")
	require.Equal(t, "Getting Started with LanguageModelSession", gs.Title)

	tc, _ := c.Lookup("guides/tool-calling")
	require.Equal(t, "Tool Calling", tc.Title)
	require.Equal(t, "guides", tc.Dir)

	st, _ := c.Lookup("guides/streaming")
	require.True(t, st.HasPosition)
	require.InDelta(t, 2.0, st.Position, 0.0001)

	custom, _ := c.Lookup("guides/renamed")
	require.Equal(t, "Custom Title", custom.Title)
	require.Equal(t, "Short", custom.Label())

	require.False(t, c.Has("guides/_partial"))
	require.False(t, c.Has(".hidden/secret"))
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.True(t, errors.Is(err, derrors.ErrContentDirNotFound))
}

func TestLoad_DuplicateSlug(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"intro.md":  "# A\n",
		"intro.mdx": "# B\n",
	})
	_, err := Load(root)
	require.Error(t, err)
	require.True(t, errors.Is(err, derrors.ErrDuplicateSlug))
}

func TestLoad_BrokenFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"bad.md": "---\ntitle: x\n# never closed\n"})
	_, err := Load(root)
	require.True(t, errors.Is(err, derrors.ErrInvalidFrontMatter))
}

func TestList_OrdersByPositionThenName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zeta.md":          "---\nsidebar_position: 1\n---\n# Z\n",
		"alpha.md":         "# A\n",
		"beta.md":          "# B\n",
		"guides/one.md":    "---\nsidebar_position: 2\n---\n# One\n",
		"guides/two.md":    "# Two\n",
		"reference/api.md": "# API\n",
	})
	c, err := Load(root)
	require.NoError(t, err)

	var names []string
	for _, e := range c.List("") {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"zeta", "guides", "alpha", "beta", "reference"}, names)

	guides := c.List("guides")
	require.Len(t, guides, 2)
	require.Equal(t, "guides/one", guides[0].Doc.Slug)
	require.Equal(t, "guides/two", guides[1].Doc.Slug)
}

func TestHumanize(t *testing.T) {
	require.Equal(t, "Getting Started", Humanize("getting-started"))
	require.Equal(t, "Tool Calling", Humanize("guides/01-tool_calling"))
}
