package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermWriter_PrintLine_AppendsNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTermWriter(&buf, 24).PrintLine("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestTermWriter_DrawFrame_TracksLineCount(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 24)
	tw.DrawFrame([]string{"line1", "line2", "line3"})
	assert.Equal(t, 3, tw.frameLines)
	assert.Equal(t, "line1\nline2\nline3\n", buf.String())
}

func TestTermWriter_EraseFrame_WhenNothingDrawn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTermWriter(&buf, 24).EraseFrame()
	assert.Zero(t, buf.Len())
}

func TestTermWriter_EraseFrame_ClearsEveryLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 24)
	tw.DrawFrame([]string{"line1", "line2"})
	buf.Reset()

	tw.EraseFrame()
	got := buf.String()
	assert.Equal(t, 2, strings.Count(got, "\033[1A"), "one cursor-up per frame line")
	assert.Equal(t, 2, strings.Count(got, "\033[2K"), "one erase per frame line")
	assert.Zero(t, tw.frameLines)
}

func TestTermWriter_DrawFrame_KeepsBottomRows_When_TallerThanTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := newTermWriter(&buf, 4)
	tw.DrawFrame([]string{"a", "b", "c", "d", "e"})
	assert.Equal(t, 3, tw.frameLines)
	assert.Equal(t, "c\nd\ne\n", buf.String())
}
