package see

import (
	"fmt"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

// ToValue converts a host Go primitive into a runtime.Value (§6
// "convert between values and host primitives"). Supported inputs: nil,
// bool, every sized and unsized integer type, float32/float64, string,
// a runtime.Value (passed through unchanged) and *runtime.Object.
func ToValue(v any) (runtime.Value, error) {
	switch x := v.(type) {
	case nil:
		return runtime.Null(), nil
	case runtime.Value:
		return x, nil
	case bool:
		return runtime.Bool(x), nil
	case int:
		return runtime.Number(float64(x)), nil
	case int8:
		return runtime.Number(float64(x)), nil
	case int16:
		return runtime.Number(float64(x)), nil
	case int32:
		return runtime.Number(float64(x)), nil
	case int64:
		return runtime.Number(float64(x)), nil
	case uint:
		return runtime.Number(float64(x)), nil
	case uint8:
		return runtime.Number(float64(x)), nil
	case uint16:
		return runtime.Number(float64(x)), nil
	case uint32:
		return runtime.Number(float64(x)), nil
	case uint64:
		return runtime.Number(float64(x)), nil
	case float32:
		return runtime.Number(float64(x)), nil
	case float64:
		return runtime.Number(x), nil
	case string:
		s, err := runtime.NewStringFromUTF8([]byte(x))
		if err != nil {
			return runtime.Value{}, fmt.Errorf("see: converting string: %w", err)
		}
		return runtime.Str(s), nil
	case *runtime.Object:
		return runtime.Obj(x), nil
	default:
		return runtime.Value{}, fmt.Errorf("see: unsupported host type %T", v)
	}
}

// FromValue converts a runtime.Value back into a host Go primitive, the
// inverse of ToValue. Undefined and Null both convert to nil.
func FromValue(v runtime.Value) (any, error) {
	switch v.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return nil, nil
	case runtime.KindBoolean:
		return v.AsBool(), nil
	case runtime.KindNumber:
		return v.AsNumber(), nil
	case runtime.KindString:
		return v.AsString().GoString(), nil
	case runtime.KindObject:
		return v.AsObject(), nil
	default:
		return nil, fmt.Errorf("see: value with invalid kind %s", v.Kind())
	}
}
