package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"

	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

func writeFeature(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func newSuite(library *tursu.Library, sink Sink) *SuiteRunner {
	return NewSuiteRunner(library).
		WithSink(sink).
		WithClock(clock.NewTicking(time.Unix(5000, 0), time.Millisecond)).
		WithIdGenerator(&messages.Incrementing{})
}

func TestSuiteRunner_Run(t *testing.T) {
	t.Run("executes every scenario of a feature file", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "calculator.feature", `Feature: calculator

  Scenario: addition
    Given I have entered 50
    And I have entered 70
    When I press add
    Then the result should be 120

  Scenario: another addition
    Given I have entered 1
    And I have entered 2
    When I press add
    Then the result should be 3
`)

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

		sink := NewMemorySink()
		status, err := newSuite(library, sink).WithFeaturesDirectories(dir).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Passed, status)

		caseStartedCount := 0
		for _, envelope := range sink.Envelopes() {
			if envelope.TestCaseStarted != nil {
				caseStartedCount++
			}
		}
		require.Equal(t, 2, caseStartedCount, "one attempt per scenario")
	})

	t.Run("worst status across scenarios wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "mixed.feature", `Feature: mixed outcomes

  Scenario: passing
    Given a passing step

  Scenario: failing
    Given a failing step
`)

		library := tursu.NewLibrary().
			RegisterStep(`^a passing step$`, func(*tursu.World) error { return nil }).
			RegisterStep(`^a failing step$`, func(*tursu.World) error { return errors.New("boom") })

		status, err := newSuite(library, NewMemorySink()).
			WithFeaturesDirectories(dir).
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Failed, status)
	})

	t.Run("unmatched steps surface as undefined", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "orphan.feature", `Feature: orphan

  Scenario: no definition
    Given a step nobody wrote
`)

		status, err := newSuite(tursu.NewLibrary(), NewMemorySink()).
			WithFeaturesDirectories(dir).
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Undefined, status)
	})

	t.Run("tag expression filters pickles", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "tagged.feature", `Feature: tagged scenarios

  @smoke
  Scenario: fast check
    Given a recorded step

  @slow
  Scenario: slow check
    Given a recorded step
`)

		var executed []string
		library := tursu.NewLibrary().
			RegisterStep(`^a recorded step$`, func(w *tursu.World) error { return nil }).
			Before("", func(w *tursu.World, hc tursu.HookContext) error {
				executed = append(executed, hc.Pickle.Name)
				return nil
			})

		status, err := newSuite(library, NewMemorySink()).
			WithFeaturesDirectories(dir).
			WithTags("@smoke and not @slow").
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Passed, status)
		require.Equal(t, []string{"fast check"}, executed)
	})

	t.Run("invalid tag expression fails fast", func(t *testing.T) {
		_, err := newSuite(tursu.NewLibrary(), NewMemorySink()).
			WithFeaturesDirectories(t.TempDir()).
			WithTags("@smoke and").
			Run(context.Background())

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tag expression")
	})

	t.Run("malformed feature file aborts the run", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "broken.feature", "Scenario: no enclosing feature\n  Given a step\n")

		_, err := newSuite(tursu.NewLibrary(), NewMemorySink()).
			WithFeaturesDirectories(dir).
			Run(context.Background())

		require.Error(t, err)
		require.Contains(t, err.Error(), "gherkin parse error")
	})

	t.Run("empty directory passes vacuously", func(t *testing.T) {
		status, err := newSuite(tursu.NewLibrary(), NewMemorySink()).
			WithFeaturesDirectories(t.TempDir()).
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Passed, status)
	})

	t.Run("hooks and background steps run per scenario", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "background.feature", `Feature: with background

  Background:
    Given a clean slate

  Scenario: first
    When something happens

  Scenario: second
    When something happens
`)

		var trace []string
		library := tursu.NewLibrary().
			RegisterStep(`^a clean slate$`, func(*tursu.World) error {
				trace = append(trace, "background")
				return nil
			}).
			RegisterStep(`^something happens$`, func(*tursu.World) error {
				trace = append(trace, "step")
				return nil
			}).
			After("", func(*tursu.World, tursu.HookContext) error {
				trace = append(trace, "after")
				return nil
			})

		status, err := newSuite(library, NewMemorySink()).
			WithFeaturesDirectories(dir).
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Passed, status)
		require.Equal(t, []string{
			"background", "step", "after",
			"background", "step", "after",
		}, trace)
	})

	t.Run("dry run reports skipped without executing", func(t *testing.T) {
		dir := t.TempDir()
		writeFeature(t, dir, "dry.feature", `Feature: dry

  Scenario: untouched
    Given a recorded step
`)

		executed := false
		library := tursu.NewLibrary().
			RegisterStep(`^a recorded step$`, func(*tursu.World) error {
				executed = true
				return nil
			})

		status, err := newSuite(library, NewMemorySink()).
			WithFeaturesDirectories(dir).
			WithOptions(WithDryRun(true)).
			Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, results.Skipped, status)
		require.False(t, executed)
	})
}
