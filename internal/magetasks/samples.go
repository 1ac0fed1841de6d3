package magetasks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/render"
	"github.com/dkoosis/trendline/pkg/series"
)

// SamplesDir is where RenderSamples writes its files.
var SamplesDir = "./bin/samples"

// RenderSamples writes the sample and index charts in every file format,
// for eyeballing renderer changes.
func RenderSamples() error {
	PrintH2Header("Samples")
	if err := os.MkdirAll(SamplesDir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", SamplesDir, err)
	}

	index, err := pattern.FromIndex(series.GenerateIndex(series.GenOptions{}), series.Period3Y, nil)
	if err != nil {
		return err
	}
	sets := map[string][]pattern.Pattern{
		"sample": pattern.FromSample(),
		"index":  index,
	}
	for name, patterns := range sets {
		if err := writeSample(name+".html", func(f *os.File) error { return render.NewHTML().Write(f, patterns) }); err != nil {
			return err
		}
		spec := patterns[0].(*pattern.LineChart).Chart
		for _, format := range render.ImageFormats() {
			if err := writeSample(name+"."+format, func(f *os.File) error { return render.WriteImage(f, spec, format) }); err != nil {
				return err
			}
		}
	}
	return nil
}

// Serve runs the chart server from source on ServeAddr until interrupted.
func Serve() error {
	PrintH2Header("Serve")
	return Run("Serve", "go", "run", MainPackage, "serve", "--addr", ServeAddr)
}

func writeSample(name string, write func(*os.File) error) (err error) {
	path := filepath.Join(SamplesDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	PrintSuccess("Wrote " + path)
	return nil
}
