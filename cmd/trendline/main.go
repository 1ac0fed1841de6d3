// trendline draws a monthly line chart in the terminal, as an image or as
// an interactive HTML page.
//
// Usage:
//
//	trendline                          # sample chart, styled when on a TTY
//	trendline --dataset index --ma 4m,1y --format llm
//	trendline --format svg --out chart.svg
//	trendline --format terminal --animate  # replay the reveal inline
//	trendline tui --dataset index      # animated dashboard
//	trendline serve --addr :8080       # HTTP host page and images
//
// Output modes:
//
//	terminal  styled braille chart (default when TTY)
//	llm       terse plain text with an ASCII plot (default when piped)
//	json      structured JSON for automation
//	html      standalone ECharts page
//	svg, png, pdf  static image
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dkoosis/trendline/internal/config"
	"github.com/dkoosis/trendline/internal/logging"
	"github.com/dkoosis/trendline/internal/server"
	"github.com/dkoosis/trendline/internal/version"
	"github.com/dkoosis/trendline/pkg/dashboard"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/render"
	"github.com/dkoosis/trendline/pkg/series"
	"github.com/dkoosis/trendline/pkg/stream"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var formats = []string{"auto", "terminal", "llm", "json", "html", "svg", "png", "pdf"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Check for subcommands before flag parsing
	if len(args) > 0 {
		switch args[0] {
		case "tui":
			return runTUI(args[1:], stdin, stdout, stderr)
		case "serve":
			return runServe(args[1:], stderr)
		case "version":
			fmt.Fprintf(stdout, "trendline %s (commit %s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
			return exitOK
		}
	}

	fs := flag.NewFlagSet("trendline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", "auto", "Output format: "+strings.Join(formats, ", "))
	outFlag := fs.String("out", "", "Write to this file instead of stdout (format inferred from extension when auto)")
	animateFlag := fs.Bool("animate", false, "Replay the chart reveal inline (terminal format on stdout only)")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "trendline: unexpected argument %q\n", fs.Arg(0))
		return exitUsage
	}

	cfg, code := resolve(fs, common, stderr)
	if code >= 0 {
		return code
	}
	logger := logging.NewTextLogger(stderr, logging.Level(cfg.Debug))
	logConfig(logger, cfg)

	mode := *formatFlag
	if mode == "auto" && *outFlag != "" {
		mode = formatFromPath(*outFlag)
	}
	var w io.Writer = stdout
	if *outFlag == "" {
		mode = resolveFormat(mode, stdout)
	}
	if !validFormat(mode) {
		fmt.Fprintf(stderr, "trendline: unknown format %q (expected %s)\n", *formatFlag, strings.Join(formats, ", "))
		return exitUsage
	}
	if isImage(mode) && *outFlag == "" && isTTYWriter(stdout) {
		fmt.Fprintf(stderr, "trendline: refusing to write %s to a terminal; use --out\n", mode)
		return exitUsage
	}

	patterns := buildPatterns(cfg)
	for _, p := range patterns {
		if e, ok := p.(*pattern.Error); ok {
			logger.Warn("pattern failed", slog.String("source", e.Source), slog.String("error", e.Message))
		}
	}

	if *animateFlag && mode == "terminal" && *outFlag == "" {
		animate(stdout, cfg.Theme, patterns)
		return exitCode(patterns)
	}

	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fmt.Fprintf(stderr, "trendline: %v\n", err)
			return exitFailure
		}
		defer logging.SafeClose(f, logger, "write_output")
		w = f
	}

	if err := write(w, mode, cfg.Theme, patterns); err != nil {
		logging.LogError(logger, "render", err, slog.String("format", mode))
		fmt.Fprintf(stderr, "trendline: %v\n", err)
		return exitFailure
	}
	logging.LogOperation(logger, "rendered", slog.String("format", mode), slog.String("out", *outFlag))
	return exitCode(patterns)
}

// commonFlags are shared by the render, tui and serve commands.
type commonFlags struct {
	theme   *string
	dataset *string
	period  *string
	ma      *string
	seed    *uint64
	noColor *bool
	debug   *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		theme:   fs.String("theme", config.DefaultTheme, "Theme: "+strings.Join(render.ThemeNames(), ", ")),
		dataset: fs.String("dataset", config.DefaultDataset, "Dataset: sample, index"),
		period:  fs.String("period", config.DefaultPeriod, "Index period: 6m, 1y, 3y, 10y, max"),
		ma:      fs.String("ma", strings.Join(config.DefaultMovingAverages(), ","), "Moving averages for the index, comma separated: 4m, 1y (empty for none)"),
		seed:    fs.Uint64("seed", 0, fmt.Sprintf("Index generator seed (0 selects %d)", series.DefaultSeed)),
		noColor: fs.Bool("no-color", false, "Disable colors"),
		debug:   fs.Bool("debug", false, "Enable debug logging"),
	}
}

// cliFlags converts parsed flags, marking only those the user actually set.
func (c *commonFlags) cliFlags(fs *flag.FlagSet) config.CliFlags {
	cli := config.CliFlags{
		Theme:          *c.theme,
		Dataset:        *c.dataset,
		Period:         *c.period,
		MovingAverages: *c.ma,
		Seed:           *c.seed,
		NoColor:        *c.noColor,
		Debug:          *c.debug,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			cli.ThemeSet = true
		case "dataset":
			cli.DatasetSet = true
		case "period":
			cli.PeriodSet = true
		case "ma":
			cli.MovingAveragesSet = true
		case "seed":
			cli.SeedSet = true
		case "no-color":
			cli.NoColorSet = true
		case "debug":
			cli.DebugSet = true
		case "addr":
			cli.AddrSet = true
			cli.Addr = f.Value.String()
		}
	})
	return cli
}

// resolve loads and validates configuration.
// Returns (cfg, -1) on success; (nil, exitCode) on error.
func resolve(fs *flag.FlagSet, common *commonFlags, stderr io.Writer) (*config.ResolvedConfig, int) {
	cfg, err := config.ResolveConfig(common.cliFlags(fs))
	if err != nil {
		fmt.Fprintf(stderr, "trendline: %v\n", err)
		return nil, exitUsage
	}
	return cfg, -1
}

func logConfig(logger *slog.Logger, cfg *config.ResolvedConfig) {
	logger.Debug("resolved config",
		slog.String("path", cfg.ConfigPath),
		slog.String("theme", cfg.Theme.Name),
		slog.String("theme_source", cfg.ThemeSource),
		slog.String("dataset", string(cfg.Mode)),
		slog.String("period", string(cfg.Period)),
		slog.String("period_source", cfg.PeriodSource),
		slog.Bool("no_color", cfg.NoColor),
		slog.String("no_color_source", cfg.NoColorSource),
	)
}

// buildPatterns produces the chart and panels for the resolved dataset.
// An index that cannot be built comes back as an Error pattern.
func buildPatterns(cfg *config.ResolvedConfig) []pattern.Pattern {
	if cfg.Mode == dashboard.ModeIndex {
		return pattern.Index(series.GenerateIndex(series.GenOptions{Seed: cfg.Seed}), cfg.Period, cfg.MovingAverages)
	}
	patterns := pattern.FromSample()
	for _, p := range patterns {
		if lc, ok := p.(*pattern.LineChart); ok {
			cfg.Chart.Apply(lc.Chart)
		}
	}
	return patterns
}

// animate plays the chart reveal in place, then prints the other panels
// below it.
func animate(w io.Writer, theme render.Theme, patterns []pattern.Pattern) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	width, height := termSize(w)
	term := render.NewTerminal(theme, width)
	spec, err := render.ChartOf(patterns)
	if err != nil {
		_, _ = io.WriteString(w, term.Render(patterns))
		return
	}

	rest := make([]pattern.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if _, ok := p.(*pattern.LineChart); !ok {
			rest = append(rest, p)
		}
	}
	var footer []string
	if out := strings.TrimRight(term.Render(rest), "\n"); out != "" {
		footer = strings.Split(out, "\n")
	}
	stream.Play(ctx, w, spec, stream.Options{Terminal: term, Height: height, Footer: footer})
}

func write(w io.Writer, mode string, theme render.Theme, patterns []pattern.Pattern) error {
	switch mode {
	case "html":
		return render.NewHTML().Write(w, patterns)
	case "svg", "png", "pdf":
		spec, err := render.ChartOf(patterns)
		if err != nil {
			return err
		}
		return render.WriteImage(w, spec, mode)
	}
	_, err := io.WriteString(w, selectRenderer(mode, theme, w).Render(patterns))
	return err
}

func selectRenderer(mode string, theme render.Theme, w io.Writer) render.Renderer {
	switch mode {
	case "json":
		return render.NewJSON()
	case "llm":
		return render.NewLLM()
	default:
		width, _ := termSize(w)
		return render.NewTerminal(theme, width)
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

// formatFromPath maps an output file extension to a format. Unknown
// extensions fall back to llm text.
func formatFromPath(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "svg", "png", "pdf", "html", "json":
		return ext
	case "htm":
		return "html"
	default:
		return "llm"
	}
}

func validFormat(mode string) bool {
	for _, f := range formats[1:] {
		if f == mode {
			return true
		}
	}
	return false
}

func isImage(mode string) bool {
	return mode == "png" || mode == "pdf"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

// exitCode returns 1 when any Error pattern is present.
func exitCode(patterns []pattern.Pattern) int {
	for _, p := range patterns {
		if _, ok := p.(*pattern.Error); ok {
			return exitFailure
		}
	}
	return exitOK
}

// --- trendline tui ---

func runTUI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trendline tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, code := resolve(fs, common, stderr)
	if code >= 0 {
		return code
	}
	if !isTTYWriter(stdout) {
		fmt.Fprintf(stderr, "trendline tui: stdout is not a terminal\n")
		return exitUsage
	}

	opts := dashboard.Options{
		Mode:           cfg.Mode,
		Period:         cfg.Period,
		MovingAverages: cfg.MovingAverages,
		Style:          cfg.Chart,
		Theme:          cfg.Dashboard,
		Render:         cfg.Theme,
		Input:          stdin,
		Output:         stdout,
	}
	if cfg.Mode == dashboard.ModeIndex {
		opts.Index = series.GenerateIndex(series.GenOptions{Seed: cfg.Seed})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := dashboard.Run(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "trendline tui: %v\n", err)
		if errors.Is(err, dashboard.ErrNoData) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

// --- trendline serve ---

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("trendline serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("addr", config.DefaultAddr, "Listen address")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, code := resolve(fs, common, stderr)
	if code >= 0 {
		return code
	}

	logger := logging.NewStructuredLogger(stderr, logging.Level(cfg.Debug))
	logConfig(logger, cfg)
	srv := server.New(server.Options{
		Logger: logger,
		Defaults: server.Request{
			Dataset:        server.Dataset(cfg.Mode),
			Period:         cfg.Period,
			MovingAverages: cfg.MovingAverages,
			Seed:           cfg.Seed,
		},
		Style: cfg.Chart,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, cfg.Addr, nil); err != nil {
		logging.LogError(logger, "server failed", err)
		return exitFailure
	}
	return exitOK
}
