package tursu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLibrary_RegisterStep(t *testing.T) {
	t.Run("registers valid step", func(t *testing.T) {
		lib := NewLibrary().
			RegisterStep("^I have (\\d+) apples$", func(count int) error { return nil })

		defs := lib.StepDefinitions()
		require.Len(t, defs, 1)
		require.Equal(t, "^I have (\\d+) apples$", defs[0].Expression)
		require.Contains(t, defs[0].Location, ":")
	})

	t.Run("records per-step timeout", func(t *testing.T) {
		lib := NewLibrary().
			RegisterStepWithTimeout("^slow$", 2*time.Second, func() {})

		require.Equal(t, 2*time.Second, lib.StepDefinitions()[0].Timeout)
	})

	t.Run("panics on duplicate pattern", func(t *testing.T) {
		lib := NewLibrary().RegisterStep("^test$", func() {})

		require.PanicsWithValue(t, "duplicate step pattern: ^test$", func() {
			lib.RegisterStep("^test$", func() {})
		})
	})

	t.Run("panics on invalid regex", func(t *testing.T) {
		require.Panics(t, func() {
			NewLibrary().RegisterStep("[invalid", func() {})
		})
	})

	t.Run("panics on non-function handler", func(t *testing.T) {
		require.Panics(t, func() {
			NewLibrary().RegisterStep("^test$", "not a function")
		})
	})

	t.Run("panics on non-error return value", func(t *testing.T) {
		require.Panics(t, func() {
			NewLibrary().RegisterStep("^test$", func() string { return "" })
		})
	})
}

func TestLibrary_Hooks(t *testing.T) {
	noop := func(*World, HookContext) error { return nil }
	noopStep := func(*World, StepHookContext) error { return nil }

	t.Run("keeps registration order per hook type", func(t *testing.T) {
		lib := NewLibrary().
			Before("", noop).
			Before("@smoke", noop).
			After("", noop).
			BeforeStep("", noopStep).
			AfterStep("", noopStep)

		require.Len(t, lib.HooksOf(BeforeHook), 2)
		require.Len(t, lib.HooksOf(AfterHook), 1)
		require.Len(t, lib.HooksOf(BeforeStepHook), 1)
		require.Len(t, lib.HooksOf(AfterStepHook), 1)
		require.Equal(t, "", lib.HooksOf(BeforeHook)[0].TagExpression)
		require.Equal(t, "@smoke", lib.HooksOf(BeforeHook)[1].TagExpression)
	})

	t.Run("hook without tag expression matches everything", func(t *testing.T) {
		lib := NewLibrary().Before("", noop)

		hook := lib.HooksOf(BeforeHook)[0]
		require.True(t, hook.Matches(nil))
		require.True(t, hook.Matches([]string{"@anything"}))
	})

	t.Run("hook tag expression restricts matching", func(t *testing.T) {
		lib := NewLibrary().Before("@smoke and not @slow", noop)

		hook := lib.HooksOf(BeforeHook)[0]
		require.True(t, hook.Matches([]string{"@smoke"}))
		require.False(t, hook.Matches([]string{"@smoke", "@slow"}))
		require.False(t, hook.Matches([]string{"@other"}))
	})

	t.Run("panics on invalid tag expression", func(t *testing.T) {
		require.Panics(t, func() {
			NewLibrary().Before("@smoke and", noop)
		})
	})
}

func TestHookType_String(t *testing.T) {
	require.Equal(t, "Before", BeforeHook.String())
	require.Equal(t, "After", AfterHook.String())
	require.Equal(t, "BeforeStep", BeforeStepHook.String())
	require.Equal(t, "AfterStep", AfterStepHook.String())
}
