package xorlist

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrUnsupportedType is returned when values of the type can't be stored in the list.
var ErrUnsupportedType = errors.New("unsupported element type")

// checkType verifies that values of T might be stored in memory not scanned by the garbage collector.
func checkType[T any]() error {
	var t T
	if unsafe.Sizeof(t) == 0 {
		return errors.Wrap(ErrUnsupportedType, "type has zero size")
	}
	return checkKind(reflect.TypeOf(&t).Elem())
}

func checkKind(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkKind(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if err := checkKind(t.Field(i).Type); err != nil {
				return errors.WithMessagef(err, "field %s of %s", t.Field(i).Name, t)
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrUnsupportedType, "%s contains pointers", t)
	}
}
