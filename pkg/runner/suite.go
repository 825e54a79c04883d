package runner

import (
	"context"
	"fmt"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/denizgursoy/tursu/pkg/assembly"
	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/executor"
	"github.com/denizgursoy/tursu/pkg/gherkin_parser"
	"github.com/denizgursoy/tursu/pkg/ids"
	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

// SuiteRunner discovers feature files, assembles a test case per pickle
// and executes them sequentially through a TestCaseRunner. It is the
// convenience entry point; the test-case runner remains usable on its
// own with externally assembled cases.
type SuiteRunner struct {
	library            *tursu.Library
	featureDirectories []string
	tagExpression      string
	sink               Sink
	clock              clock.Clock
	ids                ids.Generator
	executorOpts       []executor.Option
	runnerOpts         []Option
}

func NewSuiteRunner(library *tursu.Library) *SuiteRunner {
	return &SuiteRunner{
		library: library,
		sink:    discardSink{},
		clock:   clock.NewSystem(),
		ids:     ids.NewUUID(),
	}
}

func (s *SuiteRunner) WithFeaturesDirectories(directories ...string) *SuiteRunner {
	s.featureDirectories = directories

	return s
}

// WithTags restricts the run to pickles whose tags match the given tag
// expression, e.g. "@smoke and not @slow".
func (s *SuiteRunner) WithTags(tagExpression string) *SuiteRunner {
	s.tagExpression = tagExpression

	return s
}

func (s *SuiteRunner) WithSink(sink Sink) *SuiteRunner {
	s.sink = sink

	return s
}

func (s *SuiteRunner) WithClock(c clock.Clock) *SuiteRunner {
	s.clock = c

	return s
}

func (s *SuiteRunner) WithIdGenerator(generator ids.Generator) *SuiteRunner {
	s.ids = generator

	return s
}

func (s *SuiteRunner) WithExecutorOptions(opts ...executor.Option) *SuiteRunner {
	s.executorOpts = opts

	return s
}

func (s *SuiteRunner) WithOptions(opts ...Option) *SuiteRunner {
	s.runnerOpts = opts

	return s
}

// Run executes every matching pickle and returns the worst terminal
// status across the suite. Parse failures abort the run; execution
// failures never do, they are part of the result stream.
func (s *SuiteRunner) Run(ctx context.Context) (messages.TestStepResultStatus, error) {
	if len(s.featureDirectories) == 0 {
		s.featureDirectories = []string{"."}
	}

	var evaluator tagexpressions.Evaluatable
	if s.tagExpression != "" {
		parsed, err := tagexpressions.Parse(s.tagExpression)
		if err != nil {
			return results.Unknown, fmt.Errorf("invalid tag expression %q: %w", s.tagExpression, err)
		}
		evaluator = parsed
	}

	featureFiles, err := gherkin_parser.SearchFeatureFilesIn(s.featureDirectories)
	if err != nil {
		return results.Unknown, err
	}

	caseRunner := NewTestCaseRunner(
		executor.New(s.clock, s.executorOpts...),
		s.sink,
		s.clock,
		s.ids,
		s.runnerOpts...,
	)
	assembler := assembly.New(s.library, s.ids)

	overall := results.Unknown
	for _, file := range featureFiles {
		document, err := gherkin_parser.ParseFeatureFile(file, s.ids.NewId)
		if err != nil {
			return results.Unknown, fmt.Errorf("gherkin parse error in file %s: %w", file, err)
		}

		for _, pickle := range gherkin_parser.CompilePickles(document, s.ids.NewId) {
			if evaluator != nil && !evaluator.Evaluate(pickleTagNames(pickle)) {
				continue
			}

			tc := assembler.Assemble(document, pickle)
			overall = results.Worst(overall, caseRunner.Run(ctx, tc))
		}
	}

	if overall == results.Unknown {
		overall = results.Passed
	}

	return overall, nil
}

func pickleTagNames(pickle *messages.Pickle) []string {
	names := make([]string, len(pickle.Tags))
	for i, tag := range pickle.Tags {
		names[i] = tag.Name
	}

	return names
}
