package tursu

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Assert provides fail-fast assertions for step functions. A failed
// assertion panics; the executor recovers the panic and classifies the
// step as failed.
type Assert struct{}

// Equal asserts expected == actual using reflect.DeepEqual.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	if !reflect.DeepEqual(expected, actual) {
		a.failf(msgAndArgs, "expected %v, got %v", expected, actual)
	}
}

// NotEqual asserts the two values differ.
func (a *Assert) NotEqual(expected, actual any, msgAndArgs ...any) {
	if reflect.DeepEqual(expected, actual) {
		a.failf(msgAndArgs, "expected values to differ, but both are %v", expected)
	}
}

// Nil asserts value is nil.
func (a *Assert) Nil(value any, msgAndArgs ...any) {
	if !isNil(value) {
		a.failf(msgAndArgs, "expected nil, got %v", value)
	}
}

// NotNil asserts value is not nil.
func (a *Assert) NotNil(value any, msgAndArgs ...any) {
	if isNil(value) {
		a.failf(msgAndArgs, "expected non-nil value")
	}
}

// True asserts the condition holds.
func (a *Assert) True(condition bool, msgAndArgs ...any) {
	if !condition {
		a.failf(msgAndArgs, "expected true, got false")
	}
}

// False asserts the condition does not hold.
func (a *Assert) False(condition bool, msgAndArgs ...any) {
	if condition {
		a.failf(msgAndArgs, "expected false, got true")
	}
}

// NoError asserts err is nil.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	if err != nil {
		a.failf(msgAndArgs, "expected no error, got: %v", err)
	}
}

// Error asserts err is not nil.
func (a *Assert) Error(err error, msgAndArgs ...any) {
	if err == nil {
		a.failf(msgAndArgs, "expected an error, got nil")
	}
}

// ErrorIs asserts err matches target in the sense of errors.Is.
func (a *Assert) ErrorIs(err, target error, msgAndArgs ...any) {
	if !errors.Is(err, target) {
		a.failf(msgAndArgs, "expected error %v, got: %v", target, err)
	}
}

// Contains asserts that the string s contains substr.
func (a *Assert) Contains(s, substr string, msgAndArgs ...any) {
	if !strings.Contains(s, substr) {
		a.failf(msgAndArgs, "%q does not contain %q", s, substr)
	}
}

// Len asserts the collection has the expected length.
func (a *Assert) Len(collection any, length int, msgAndArgs ...any) {
	v := reflect.ValueOf(collection)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		if v.Len() != length {
			a.failf(msgAndArgs, "expected length %d, got %d", length, v.Len())
		}
	default:
		a.failf(msgAndArgs, "cannot get length of type %T", collection)
	}
}

func (a *Assert) failf(msgAndArgs []any, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if len(msgAndArgs) > 0 {
		prefix, ok := msgAndArgs[0].(string)
		if ok {
			message = fmt.Sprintf(prefix, msgAndArgs[1:]...) + ": " + message
		}
	}
	panic("assertion failed: " + message)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
