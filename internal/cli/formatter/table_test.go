package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_PadsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{{"1", "Mathematics"}, {"22", "ML"}}))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, []string{
		"ID  NAME",
		"──  ───────────",
		"1   Mathematics",
		"22  ML",
	}, lines)
}

func TestRenderTableAligned_RightAlignsNumbers(t *testing.T) {
	out := stripANSI(RenderTableAligned([]string{"NAME", "XP"}, [][]string{{"a", "5.0"}, {"b", "120.0"}},
		[]Align{AlignLeft, AlignRight}))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "NAME     XP", lines[0])
	assert.Equal(t, "a       5.0", lines[2])
	assert.Equal(t, "b     120.0", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
