package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/dashboard"
	"github.com/dkoosis/trendline/pkg/render"
	"github.com/dkoosis/trendline/pkg/series"
)

// Sources recorded on a ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ResolvedConfig holds the final resolved configuration after applying all
// priority rules. Values are parsed into their domain types.
type ResolvedConfig struct {
	Theme          render.Theme
	Mode           dashboard.Mode
	Period         series.Period
	MovingAverages []analysis.MovingAverage
	Seed           uint64
	NoColor        bool
	Debug          bool
	Addr           string
	Chart          chart.Style
	Dashboard      *dashboard.DashboardTheme

	// Resolution metadata (for debugging)
	ConfigPath    string
	ThemeSource   string
	PeriodSource  string
	NoColorSource string
	DebugSource   string
}

// ResolveConfig loads the config file and resolves it against the CLI
// flags and environment.
func ResolveConfig(cli CliFlags) (*ResolvedConfig, error) {
	app, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return Resolve(app, cli)
}

// Resolve applies the priority order CLI > env > file > default to an
// already loaded config. Every invalid value is reported, not just the
// first.
func Resolve(app *AppConfig, cli CliFlags) (*ResolvedConfig, error) {
	if app == nil {
		app = DefaultConfig()
	}
	fileSource := SourceFile
	if app.Path == "" {
		fileSource = SourceDefault
	}

	themeName, themeSource := pick(cli.Theme, cli.ThemeSet, []string{"TRENDLINE_THEME"}, app.Theme, fileSource)
	periodName, periodSource := pick(cli.Period, cli.PeriodSet, []string{"TRENDLINE_PERIOD"}, app.Period, fileSource)

	dataset := app.Dataset
	if cli.DatasetSet {
		dataset = cli.Dataset
	}
	mas := strings.Join(app.MovingAverages, ",")
	if cli.MovingAveragesSet {
		mas = cli.MovingAverages
	}
	seed := app.Seed
	if cli.SeedSet {
		seed = cli.Seed
	}
	addr := app.Server.Addr
	if cli.AddrSet {
		addr = cli.Addr
	}

	resolved := &ResolvedConfig{
		Seed:          seed,
		Addr:          addr,
		Chart:         app.Chart,
		Dashboard:     dashboard.MergeWithDefaults(app.Dashboard),
		ConfigPath:    app.Path,
		ThemeSource:   themeSource,
		PeriodSource:  periodSource,
		NoColor:       app.NoColor,
		NoColorSource: fileSource,
		Debug:         app.Debug,
		DebugSource:   fileSource,
	}

	// Resolve NoColor with priority: CLI > ENV > file > default
	if cli.NoColorSet {
		resolved.NoColor = cli.NoColor
		resolved.NoColorSource = SourceCLI
	} else if v := getEnvBool("TRENDLINE_NO_COLOR"); v != nil {
		resolved.NoColor = *v
		resolved.NoColorSource = SourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		// NO_COLOR disables color whatever its value.
		resolved.NoColor = true
		resolved.NoColorSource = SourceEnv
	}

	// Resolve Debug with priority: CLI > ENV > file > default
	if cli.DebugSet {
		resolved.Debug = cli.Debug
		resolved.DebugSource = SourceCLI
	} else if v := getEnvBool("TRENDLINE_DEBUG"); v != nil {
		resolved.Debug = *v
		resolved.DebugSource = SourceEnv
	}

	var errs []error
	if slices.Contains(render.ThemeNames(), themeName) {
		resolved.Theme = render.ThemeByName(themeName)
	} else {
		errs = append(errs, fmt.Errorf("unknown theme %q (expected %s)", themeName, strings.Join(render.ThemeNames(), ", ")))
	}
	// NoColor implies the monochrome theme.
	if resolved.NoColor {
		resolved.Theme = render.MonoTheme()
	}

	switch dashboard.Mode(dataset) {
	case dashboard.ModeSample, dashboard.ModeIndex:
		resolved.Mode = dashboard.Mode(dataset)
	default:
		errs = append(errs, fmt.Errorf("unknown dataset %q (expected sample or index)", dataset))
	}

	if p, err := series.ParsePeriod(periodName); err != nil {
		errs = append(errs, err)
	} else {
		resolved.Period = p
	}

	if m, err := analysis.ParseMovingAverages(mas); err != nil {
		errs = append(errs, err)
	} else {
		resolved.MovingAverages = m
	}

	if err := validateChart(resolved.Chart); err != nil {
		errs = append(errs, err)
	}
	if addr == "" {
		errs = append(errs, errors.New("server addr cannot be empty"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// pick returns the first value set by CLI, then env, then file.
func pick(cliVal string, cliSet bool, envKeys []string, fileVal, fileSource string) (string, string) {
	if cliSet {
		return cliVal, SourceCLI
	}
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return v, SourceEnv
		}
	}
	return fileVal, fileSource
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateChart checks the chart overrides by applying them to the sample
// and validating the result.
func validateChart(st chart.Style) error {
	if st.IsZero() {
		return nil
	}
	spec := chart.SampleSpec()
	st.Apply(spec)
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("chart overrides: %w", err)
	}
	return nil
}
