package chart

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/series"
)

func TestSampleSpec_MatchesDemoChart(t *testing.T) {
	t.Parallel()

	s := SampleSpec()

	assert.Equal(t, 600, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May"}, s.Categories)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, Values{400, 300, 600, 800, 500}, s.Lines[0].Values)
	assert.Equal(t, "#64b5f6", s.Lines[0].Stroke)
	assert.Equal(t, 2.0, s.Lines[0].StrokeWidth)
	assert.Equal(t, "#fff", s.Axis.Text)
	assert.Equal(t, "#fff", s.Axis.Stroke)
	assert.Equal(t, "#fff", s.Legend.Text)
	assert.Equal(t, "3 3", s.Grid.Dash)
	assert.Equal(t, 1500*time.Millisecond, s.Animation.Duration)
	assert.Equal(t, EaseInOut, s.Animation.Easing)
	require.NoError(t, s.Validate())
}

func TestSampleSpec_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := SampleSpec()
	a.Lines[0].Values[0] = 1
	a.Categories[0] = "x"

	b := SampleSpec()
	assert.Equal(t, 400.0, b.Lines[0].Values[0])
	assert.Equal(t, "Jan", b.Categories[0])
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	s := SampleSpec()
	s.Width = 0
	s.Lines[0].Values = s.Lines[0].Values[:3]
	s.Lines[0].Stroke = "blue-ish"
	s.Animation.Easing = "bouncy"

	err := s.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidSpec)
	msg := err.Error()
	assert.Contains(t, msg, "size must be positive")
	assert.Contains(t, msg, "3 values for 5 categories")
	assert.Contains(t, msg, "line 0 stroke")
	assert.Contains(t, msg, "bouncy")
}

func TestStyle_Apply_OverridesOnlySetFields(t *testing.T) {
	t.Parallel()

	s := SampleSpec()
	Style{Width: 800, LineColor: "#ff0000", Easing: Linear}.Apply(s)

	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.Equal(t, "#ff0000", s.Lines[0].Stroke)
	assert.Equal(t, 2.0, s.Lines[0].StrokeWidth)
	assert.Equal(t, Linear, s.Animation.Easing)
	assert.True(t, Style{}.IsZero())
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  color.NRGBA
	}{
		{"long hex", "#64b5f6", color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}},
		{"short hex", "#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"rgba", "rgba(244, 63, 94, 0.1)", color.NRGBA{R: 244, G: 63, B: 94, A: 26}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseColor(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{
		"", "blue", "#12", "rgba(300,0,0,1)", "rgba(1,2,3)",
		"rgba(1,2,3,0.5x)", "rgba(1x,2,3,1)", "rgba(1,2,3,0.5,9)", "rgba(1,2,3,1.5)",
	} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
}

func TestHexAndBlend(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#64b5f6", Hex(color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}))

	opaque := color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}
	assert.Equal(t, opaque, Blend(opaque, color.NRGBA{A: 0xff}))

	half := Blend(color.NRGBA{R: 255, A: 128}, color.NRGBA{A: 0xff})
	assert.InDelta(t, 128, int(half.R), 2)
	assert.Equal(t, uint8(0xff), half.A)
}

func TestEasing_IsClampedAndMonotone(t *testing.T) {
	t.Parallel()

	for _, e := range Easings() {
		t.Run(string(e), func(t *testing.T) {
			t.Parallel()
			assert.Zero(t, e.At(-1))
			assert.Equal(t, 1.0, e.At(2))
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := e.At(float64(i) / 100)
				assert.GreaterOrEqual(t, v, prev-1e-9)
				prev = v
			}
		})
	}
}

func TestEasing_MatchesKnownCurvePoints(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, EaseInOut.At(0.5), 1e-6, "ease-in-out is symmetric")
	assert.InDelta(t, 0.25, Linear.At(0.25), 1e-12)
	assert.Less(t, EaseIn.At(0.25), 0.25)
	assert.Greater(t, EaseOut.At(0.25), 0.25)
}

func TestAnimation_Progress(t *testing.T) {
	t.Parallel()

	a := Animation{Duration: time.Second, Easing: Linear}

	p, done := a.Progress(0)
	assert.Zero(t, p)
	assert.False(t, done)

	p, done = a.Progress(250 * time.Millisecond)
	assert.InDelta(t, 0.25, p, 1e-9)
	assert.False(t, done)

	p, done = a.Progress(2 * time.Second)
	assert.Equal(t, 1.0, p)
	assert.True(t, done)

	p, done = Animation{}.Progress(0)
	assert.Equal(t, 1.0, p)
	assert.True(t, done)
}

func TestParseEasing(t *testing.T) {
	t.Parallel()

	e, err := ParseEasing("ease-out")
	require.NoError(t, err)
	assert.Equal(t, EaseOut, e)

	_, err = ParseEasing("elastic")
	require.Error(t, err)
}

func TestEasing_UnmarshalText(t *testing.T) {
	t.Parallel()

	var e Easing
	require.NoError(t, e.UnmarshalText([]byte("ease-in-out")))
	assert.Equal(t, EaseInOut, e)

	require.NoError(t, e.UnmarshalText(nil))
	assert.Equal(t, Easing(""), e)

	require.Error(t, e.UnmarshalText([]byte("bounce")))
}

func TestLayout_MapsSampleOntoGrid(t *testing.T) {
	t.Parallel()

	s := SampleSpec()
	l := NewLayout(s, 100, 50, Margins{Left: 10, Bottom: 10}, 0)

	assert.Equal(t, 0.0, l.YMin)
	assert.Equal(t, 800.0, l.YMax)
	assert.Equal(t, 10.0, l.X(0))
	assert.Equal(t, 100.0, l.X(4))
	assert.Equal(t, 40.0, l.Y(0))
	assert.Equal(t, 0.0, l.Y(800))

	assert.Equal(t, 0, l.Nearest(-50))
	assert.Equal(t, 2, l.Nearest(56))
	assert.Equal(t, 4, l.Nearest(500))

	require.NotEmpty(t, l.YTicks)
	for _, tk := range l.YTicks {
		assert.NotEmpty(t, tk.Label)
		assert.GreaterOrEqual(t, tk.Value, l.YMin)
		assert.LessOrEqual(t, tk.Value, l.YMax)
	}
}

func TestLayout_ThinsTicks(t *testing.T) {
	t.Parallel()

	l := NewLayout(SampleSpec(), 100, 50, Margins{}, 2)
	assert.LessOrEqual(t, len(l.YTicks), 2)
}

func TestLayout_SegmentsSplitAtGaps(t *testing.T) {
	t.Parallel()

	s := SampleSpec()
	l := NewLayout(s, 100, 50, Margins{}, 0)
	segs := l.Segments(Values{1, 2, Gap(), 4, 5})

	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 2)
	assert.Len(t, segs[1], 2)
}

func TestReveal_TruncatesByArcLength(t *testing.T) {
	t.Parallel()

	path := []Pt{{0, 0}, {10, 0}, {10, 10}}

	assert.Equal(t, []Pt{{0, 0}}, Reveal(path, 0))
	assert.Equal(t, path, Reveal(path, 1))
	assert.Equal(t, []Pt{{0, 0}, {5, 0}}, Reveal(path, 0.25))
	assert.Equal(t, []Pt{{0, 0}, {10, 0}, {10, 5}}, Reveal(path, 0.75))
}

func TestTooltipAt_SkipsGaps(t *testing.T) {
	t.Parallel()

	s := SampleSpec()
	s.Lines = append(s.Lines, Line{Name: "other", Values: Values{Gap(), 1, 2, 3, 4}, Stroke: "#000"})

	tc, ok := s.TooltipAt(0)
	require.True(t, ok)
	assert.Equal(t, "Jan", tc.Label)
	require.Len(t, tc.Items, 1)
	assert.Equal(t, 400.0, tc.Items[0].Value)
	assert.Equal(t, "#64b5f6", tc.Items[0].Color)

	_, ok = s.TooltipAt(5)
	assert.False(t, ok)
}

func TestValues_MarshalJSON_WritesNullForGaps(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Values{1, math.NaN(), 2.5})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,null,2.5]`, string(b))

	b, err = json.Marshal(Animation{Duration: 1500 * time.Millisecond, Easing: EaseInOut})
	require.NoError(t, err)
	assert.JSONEq(t, `{"duration_ms":1500,"easing":"ease-in-out"}`, string(b))
}

func TestDashboardSpec_JoinsProjectionToLastReading(t *testing.T) {
	t.Parallel()

	full := series.GenerateIndex(series.GenOptions{})
	v, err := analysis.BuildView(full, series.Period6M, []analysis.MovingAverage{analysis.MA4Month})
	require.NoError(t, err)

	s := DashboardSpec(v)
	require.NoError(t, s.Validate())

	assert.Len(t, s.Categories, 6+analysis.DefaultProjectionMonths)
	require.Len(t, s.Lines, 3)
	require.Len(t, s.Bands, 1)

	index, ma, proj := s.Lines[0], s.Lines[1], s.Lines[2]
	assert.Equal(t, IndexColor, index.Stroke)
	assert.Equal(t, "4-Month MA", ma.Name)
	assert.Equal(t, ProjectionColor, proj.Stroke)

	assert.False(t, IsGap(index.Values[5]))
	assert.True(t, IsGap(index.Values[6]))
	assert.True(t, IsGap(proj.Values[4]))
	assert.Equal(t, index.Values[5], proj.Values[5])
	assert.True(t, IsGap(s.Bands[0].Upper[5]))
	assert.False(t, IsGap(s.Bands[0].Upper[6]))
	assert.Equal(t, &Domain{Min: 0, Max: 100}, s.YDomain)
	assert.True(t, s.Zoom)
	assert.False(t, SampleSpec().Zoom)
}
