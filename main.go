package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/denizgursoy/tursu/pkg/report"
	"github.com/denizgursoy/tursu/pkg/runner"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

func main() {
	tags := flag.String("tags", "", "tag expression filtering the scenarios to run, e.g. '@smoke and not @slow'")
	dryRun := flag.Bool("dry-run", false, "resolve and report every scenario without executing it")
	ndjson := flag.Bool("ndjson", false, "stream cucumber message envelopes to stdout as NDJSON")
	noColor := flag.Bool("no-color", false, "disable ANSI colors in the summary")
	flag.Parse()

	directories := flag.Args()
	if len(directories) == 0 {
		directories = []string{"features"}
	}

	library := tursu.NewLibrary().
		RegisterStep(`^I have entered (\d+)$`, func(w *tursu.World, value int) error {
			entered, _ := w.Data().Get("entered")
			values, _ := entered.([]int)
			w.Data().Set("entered", append(values, value))
			return nil
		}).
		RegisterStep(`^I press add$`, func(w *tursu.World) error {
			sum := 0
			for _, v := range w.Data().MustGet("entered").([]int) {
				sum += v
			}
			w.Data().Set("result", sum)
			return nil
		}).
		RegisterStep(`^the result should be (\d+)$`, func(w *tursu.World, expected int) error {
			if got := w.Data().MustGet("result").(int); got != expected {
				return errors.New("unexpected result")
			}
			return nil
		})

	collector := report.NewCollector()
	sinks := []report.Sink{collector}
	if *ndjson {
		sinks = append(sinks, report.NewNDJSONSink(os.Stdout))
	}

	suite := runner.NewSuiteRunner(library).
		WithFeaturesDirectories(directories...).
		WithTags(*tags).
		WithSink(report.NewMultiSink(sinks...)).
		WithOptions(runner.WithDryRun(*dryRun))

	if _, err := suite.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	summary := collector.Summary()
	report.NewConsoleWriter(os.Stderr, !*noColor).WriteSummary(summary)

	if !summary.Passed() {
		os.Exit(1)
	}
}
