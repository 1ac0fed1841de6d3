// Package stream plays the chart reveal inline: each frame overwrites the
// previous one in place, and the screen is never taken over.
package stream

import (
	"fmt"
	"io"
)

// termWriter is the single point of terminal output while a reveal plays.
// Nothing else writes to the terminal until Play returns.
type termWriter struct {
	out        io.Writer
	height     int
	frameLines int
}

func newTermWriter(out io.Writer, height int) *termWriter {
	if height <= 0 {
		height = 24
	}
	return &termWriter{out: out, height: height}
}

// PrintLine writes a line below the frame. Always appends \n.
func (w *termWriter) PrintLine(s string) {
	fmt.Fprintln(w.out, s)
}

// EraseFrame moves the cursor back over the last frame, clearing each line.
// No-op if no frame is on screen.
func (w *termWriter) EraseFrame() {
	for i := 0; i < w.frameLines; i++ {
		fmt.Fprint(w.out, "\033[1A\r\033[2K")
	}
	w.frameLines = 0
}

// DrawFrame prints the frame lines. A frame taller than the terminal
// keeps its bottom rows, since cursor-up cannot reach scrolled-off lines.
func (w *termWriter) DrawFrame(lines []string) {
	if limit := w.height - 1; len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	for _, line := range lines {
		fmt.Fprintln(w.out, line)
	}
	w.frameLines = len(lines)
}
