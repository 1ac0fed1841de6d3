package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme_MergesWithDefaults(t *testing.T) {
	t.Parallel()

	theme, err := ParseTheme([]byte(`
theme: orca
dashboard:
  colors:
    primary: "#ff00ff"
  title:
    text: "My Index"
  fps: 30
`))
	require.NoError(t, err)

	def := DefaultDashboardTheme()
	assert.Equal(t, "#ff00ff", theme.Colors.Primary)
	assert.Equal(t, def.Colors.Up, theme.Colors.Up)
	assert.Equal(t, "My Index", theme.Title.Text)
	assert.Equal(t, def.Title.Icon, theme.Title.Icon)
	assert.Equal(t, def.Icons, theme.Icons)
	assert.Equal(t, 30, theme.FPS)
}

func TestParseTheme_DefaultsWithoutSection(t *testing.T) {
	t.Parallel()

	theme, err := ParseTheme([]byte("theme: mono\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDashboardTheme(), theme)

	_, err = ParseTheme([]byte("dashboard: [unclosed"))
	require.Error(t, err)
}

func TestMergeWithDefaults_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := &DashboardTheme{Colors: DashboardColors{Up: "#000"}}
	out := MergeWithDefaults(in)

	assert.Empty(t, in.Colors.Primary)
	assert.Equal(t, "#000", out.Colors.Up)
	assert.NotEmpty(t, out.Colors.Primary)
}

func TestCompile_DefaultsFPS(t *testing.T) {
	t.Parallel()

	ct := (&DashboardTheme{}).Compile()
	assert.Equal(t, DefaultFPS, ct.FPS)
	assert.Equal(t, "Trendline", DefaultDashboardTheme().Compile().TitleText)
}
