// Command voz-pura scores a directory of voice recordings and refines the
// best of them into training-ready clips.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/RyanBlaney/voz-pura/corpus"
	"github.com/RyanBlaney/voz-pura/dsp"
	"github.com/RyanBlaney/voz-pura/logging"
	"github.com/RyanBlaney/voz-pura/quality"
	"github.com/RyanBlaney/voz-pura/refine"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`
	Verbose bool             `help:"Enable debug logging"`
	NoColor bool             `help:"Disable colored output"`

	Analyze AnalyzeCmd `cmd:"" help:"Score every audio file in a directory and rank the results"`
	Refine  RefineCmd  `cmd:"" help:"Refine audio files into normalized, denoised training clips"`
}

// AnalyzeCmd scores a corpus and writes a ranked JSON report
type AnalyzeCmd struct {
	Dir     string `arg:"" type:"existingdir" help:"Directory of audio files"`
	Output  string `short:"o" default:"quality_report.json" help:"Ranked JSON report path"`
	Workers int    `short:"w" default:"0" help:"Worker count (0 = all CPUs)"`
	Backend string `default:"spectral" enum:"spectral,timedomain" help:"DSP backend"`
}

func (c *AnalyzeCmd) Run() error {
	files, err := corpus.ScanDir(c.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s", c.Dir)
	}

	config := corpus.DefaultRunnerConfig()
	config.Workers = c.Workers
	config.Analyzer.Backend = dsp.Kind(c.Backend)

	runner, err := corpus.NewRunner(config, newProgressPrinter(len(files)))
	if err != nil {
		return err
	}

	records, err := runner.AnalyzeAll(context.Background(), files)
	if err != nil {
		return err
	}

	ranked := quality.SortByScore(records)
	printRankedTable(ranked)

	if err := corpus.SaveRecords(c.Output, records); err != nil {
		return err
	}
	fmt.Printf("\n%s %s\n", keyStyle.Render("Report:"), valueStyle.Render(c.Output))

	return nil
}

// RefineCmd runs the five-stage pipeline over a corpus
type RefineCmd struct {
	Dir       string `arg:"" type:"existingdir" help:"Directory of audio files"`
	OutputDir string `short:"o" default:"refined" help:"Directory for refined clips"`
	Top       int    `short:"n" default:"0" help:"Refine only the N best-scoring files (0 = all)"`
	Workers   int    `short:"w" default:"0" help:"Worker count (0 = all CPUs)"`
	Backend   string `default:"spectral" enum:"spectral,timedomain" help:"DSP backend"`

	MinScore    float64 `default:"0" help:"Skip files scoring below this"`
	MinDuration float64 `default:"0" help:"Skip files shorter than this, seconds"`
	MaxSilence  float64 `default:"1" help:"Skip files with a higher silence ratio"`

	SampleRate int     `name:"rate" default:"22050" help:"Target sample rate, Hz"`
	Duration   float64 `default:"15" help:"Target clip duration, seconds"`
}

func (c *RefineCmd) Run() error {
	files, err := corpus.ScanDir(c.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s", c.Dir)
	}

	config := corpus.DefaultRunnerConfig()
	config.Workers = c.Workers
	config.Analyzer.Backend = dsp.Kind(c.Backend)
	config.Refiner.Backend = dsp.Kind(c.Backend)
	config.Refiner.TargetSampleRate = c.SampleRate
	config.Refiner.TargetDuration = c.Duration

	runner, err := corpus.NewRunner(config, newProgressPrinter(len(files)))
	if err != nil {
		return err
	}

	ctx := context.Background()

	var results []*refine.Result
	if c.Top > 0 || c.MinScore > 0 || c.MinDuration > 0 || c.MaxSilence < 1 {
		records, err := runner.AnalyzeAll(ctx, files)
		if err != nil {
			return err
		}

		records = quality.Filter(records, quality.FilterCriteria{
			MinScore:    c.MinScore,
			MinDuration: c.MinDuration,
			MaxSilence:  c.MaxSilence,
		})
		if len(records) == 0 {
			return fmt.Errorf("no files passed the quality filter")
		}

		results, err = runner.RefineTopN(ctx, records, c.Top, c.OutputDir)
		if err != nil {
			return err
		}
	} else {
		results, err = runner.RefineAll(ctx, files, c.OutputDir)
		if err != nil {
			return err
		}
	}

	printRefineSummary(results)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("voz-pura"),
		kong.Description("Voice corpus quality scoring and refinement"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if cli.Verbose {
		logging.SetLevel(logging.DebugLevel)
	} else {
		logging.SetLevel(logging.WarnLevel)
	}
	if cli.NoColor {
		logging.DisableColors()
	}

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
