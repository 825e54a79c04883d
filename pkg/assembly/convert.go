package assembly

import (
	"fmt"
	"reflect"
	"strconv"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/tursu"
)

var (
	worldType = reflect.TypeOf((*tursu.World)(nil))
	tableType = reflect.TypeOf(tursu.Table{})
)

// invoke calls the user step function with converted arguments. Parameter
// shapes: an optional *tursu.World anywhere in the list, one parameter per
// capture group, and optionally a tursu.Table or string doc-string
// parameter fed from the step argument.
func invoke(fn any, w *tursu.World, captured []string, stepArg *messages.PickleStepArgument) error {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	callArgs, err := buildCallArgs(fnType, w, captured, stepArg)
	if err != nil {
		return err
	}

	out := fnValue.Call(callArgs)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}

func buildCallArgs(fnType reflect.Type, w *tursu.World, captured []string, stepArg *messages.PickleStepArgument) ([]reflect.Value, error) {
	callArgs := make([]reflect.Value, 0, fnType.NumIn())
	capturedIndex := 0

	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)

		if paramType == worldType {
			callArgs = append(callArgs, reflect.ValueOf(w))
			continue
		}

		if paramType == tableType {
			if stepArg == nil || stepArg.DataTable == nil {
				return nil, fmt.Errorf("handler wants a table but the step carries none")
			}
			callArgs = append(callArgs, reflect.ValueOf(tursu.NewTableFromPickleTable(stepArg.DataTable)))
			continue
		}

		// A trailing string parameter beyond the capture groups receives
		// the doc string attached to the step.
		if capturedIndex >= len(captured) {
			if paramType.Kind() == reflect.String && stepArg != nil && stepArg.DocString != nil {
				callArgs = append(callArgs, reflect.ValueOf(stepArg.DocString.Content))
				continue
			}
			return nil, fmt.Errorf("not enough captured arguments: handler wants %d more", fnType.NumIn()-i)
		}

		converted, err := convertArg(captured[capturedIndex], paramType)
		if err != nil {
			return nil, fmt.Errorf("cannot convert argument %q to %s: %w", captured[capturedIndex], paramType, err)
		}
		callArgs = append(callArgs, converted)
		capturedIndex++
	}

	return callArgs, nil
}

// convertArg converts one captured string to the target parameter type.
func convertArg(arg string, targetType reflect.Type) (reflect.Value, error) {
	value := reflect.New(targetType).Elem()

	switch kind := targetType.Kind(); {
	case kind == reflect.String:
		value.SetString(arg)

	case kind >= reflect.Int && kind <= reflect.Int64:
		v, err := strconv.ParseInt(arg, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetInt(v)

	case kind >= reflect.Uint && kind <= reflect.Uint64:
		v, err := strconv.ParseUint(arg, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetUint(v)

	case kind == reflect.Float32 || kind == reflect.Float64:
		v, err := strconv.ParseFloat(arg, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetFloat(v)

	case kind == reflect.Bool:
		v, err := strconv.ParseBool(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetBool(v)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type %s", targetType)
	}

	return value, nil
}
