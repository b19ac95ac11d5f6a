package features

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

const featuresYAML = `
- title: On-Device Intelligence
  icon: img/device.svg
  description: Run the **on-device** model with no network round trip.
- title: Guided Generation
  icon: /img/guided.svg
  description: |
    Generate Swift types directly with ` + "`@Generable`" + `.

    Works with <img src=x onerror=alert(1)> streaming too.
- title: Tool Calling
  icon: https://cdn.example.com/tools.svg
  description: Let the model call into your app.
`

func TestParse_PreservesOrder(t *testing.T) {
	list, err := Parse([]byte(featuresYAML))
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "On-Device Intelligence", list[0].Title)
	require.Equal(t, "Guided Generation", list[1].Title)
	require.Equal(t, "Tool Calling", list[2].Title)
}

func TestParse_MissingFields(t *testing.T) {
	_, err := Parse([]byte("- title: ''\n  icon: a.svg\n- title: B\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingField))
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	require.Contains(t, err.Error(), "feature #1: title")
	require.Contains(t, err.Error(), "feature #2: icon")
}

func TestCards_RenderAndSanitize(t *testing.T) {
	list, err := Parse([]byte(featuresYAML))
	require.NoError(t, err)

	cards, err := list.Cards()
	require.NoError(t, err)
	require.Len(t, cards, 3)

	require.Equal(t, "/img/device.svg", cards[0].Icon)
	require.Equal(t, "/img/guided.svg", cards[1].Icon)
	require.Equal(t, "https://cdn.example.com/tools.svg", cards[2].Icon)

	require.Contains(t, string(cards[0].Description), "<strong>on-device</strong>")
	require.Equal(t, "Run the on-device model with no network round trip.", cards[0].Summary)

	require.Contains(t, string(cards[1].Description), "<code>@Generable</code>")
	require.NotContains(t, string(cards[1].Description), "onerror")
	require.Equal(t, "Generate Swift types directly with @Generable. Works with streaming too.", cards[1].Summary)
}

func TestRender_WritesCardsInOrder(t *testing.T) {
	list, err := Parse([]byte(featuresYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf))
	out := buf.String()

	require.Equal(t, 3, strings.Count(out, `<div class="feature"`))
	first := strings.Index(out, "On-Device Intelligence")
	second := strings.Index(out, "Guided Generation")
	third := strings.Index(out, "Tool Calling")
	require.True(t, first < second && second < third)
}

func TestMissingIcons(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "img", "device.svg"), []byte("<svg/>"), 0o644))

	list, err := Parse([]byte(featuresYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"/img/guided.svg"}, list.MissingIcons(static))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "features.yaml"))
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}
