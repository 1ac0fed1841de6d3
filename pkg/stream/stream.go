package stream

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/render"
)

// DefaultFPS is the redraw rate.
const DefaultFPS = 30

// maxRows caps the plot height on tall terminals.
const maxRows = 24

// Options configures Play.
type Options struct {
	// Terminal draws each frame; required.
	Terminal *render.Terminal
	// Height is the terminal height in rows.
	Height int
	FPS    int
	// Footer lines are printed once under the final frame.
	Footer []string

	// now and tick are replaced in tests.
	now  func() time.Time
	tick func(time.Duration) <-chan time.Time
}

// player is the frame loop state.
type player struct {
	tw     *termWriter
	term   *render.Terminal
	spec   *chart.Spec
	rows   int
	frame  time.Duration
	footer []string
	now    func() time.Time
	tick   func(time.Duration) <-chan time.Time
}

// Play reveals spec frame by frame for its animation duration and leaves
// the final, complete frame on screen. A cancelled ctx jumps straight to
// that final frame. It returns the number of frames drawn.
func Play(ctx context.Context, w io.Writer, spec *chart.Spec, opts Options) int {
	if spec == nil || opts.Terminal == nil {
		return 0
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	p := &player{
		tw:     newTermWriter(w, opts.Height),
		term:   opts.Terminal,
		spec:   spec,
		rows:   plotRows(opts.Height),
		frame:  time.Second / time.Duration(fps),
		footer: opts.Footer,
		now:    opts.now,
		tick:   opts.tick,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.tick == nil {
		p.tick = time.After
	}
	return p.run(ctx)
}

func (p *player) run(ctx context.Context) int {
	start := p.now()
	frames := 0
	for {
		progress, done := p.spec.Animation.Progress(p.now().Sub(start))
		if ctx.Err() != nil {
			progress, done = 1, true
		}
		p.draw(progress)
		frames++
		if done {
			for _, line := range p.footer {
				p.tw.PrintLine(line)
			}
			return frames
		}
		select {
		case <-ctx.Done():
		case <-p.tick(p.frame):
		}
	}
}

func (p *player) draw(progress float64) {
	out := p.term.RenderChart(p.spec, render.FrameOptions{Height: p.rows, Progress: progress})
	p.tw.EraseFrame()
	p.tw.DrawFrame(strings.Split(strings.TrimRight(out, "\n"), "\n"))
}

// plotRows leaves room for the axis, x labels, legend and prompt under
// the plot. Zero lets the renderer size the plot from the aspect ratio.
func plotRows(height int) int {
	if height <= 0 {
		return 0
	}
	return max(6, min(maxRows, height-4))
}
