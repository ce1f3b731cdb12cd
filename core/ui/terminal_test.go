package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, DisplayWidth("flour"))
	assert.Equal(t, 4, DisplayWidth("黄油"))
	assert.Equal(t, 4, DisplayWidth("ｆｆ"))
	assert.Equal(t, 5, DisplayWidth("crème"))
	assert.Equal(t, 0, DisplayWidth(""))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "黄油  ", PadRight("黄油", 6))
	assert.Equal(t, "  黄油", PadLeft("黄油", 6))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}

func TestTableAlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Ingredient", "Amount").AlignRight(1)
	tbl.AddRow("flour", "100 g")
	tbl.AddRow("黄油", "30 克")
	tbl.SetFooter("Total", "2.94")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)

	sep := strings.Index(lines[2], "│")
	for _, l := range []string{lines[0], lines[2], lines[3], lines[5]} {
		assert.Equal(t, DisplayWidth(lines[2][:sep]), DisplayWidth(l[:strings.Index(l, "│")]), l)
	}
	assert.True(t, strings.HasSuffix(lines[3], "30 克"))
	assert.Contains(t, lines[1], "┼")
}

func TestWriterMessagesWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Success("saved %s", "cookie")
	w.Warning("no price for %s", "vanilla")
	w.Error("failed")
	w.Prompt("Product name:")

	out := buf.String()
	assert.Contains(t, out, "✓ saved cookie\n")
	assert.Contains(t, out, "⚠ no price for vanilla\n")
	assert.Contains(t, out, "✗ failed\n")
	assert.True(t, strings.HasSuffix(out, "Product name: "))
	assert.NotContains(t, out, "\x1b[")
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.SetQuiet(true)
	w.Info("hidden")
	assert.Empty(t, buf.String())
}
