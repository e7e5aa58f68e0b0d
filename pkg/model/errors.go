package model

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotInstance is returned when a type, nil or a typed nil pointer is
	// passed where an object instance is required.
	ErrNotInstance = errors.New("model: object instance required")
	// ErrUnregistered is returned when no chain is known for a value's type.
	ErrUnregistered = errors.New("model: type not registered")
	// ErrEmptyChain is returned when a chain has no qualifying descriptor.
	ErrEmptyChain = errors.New("model: type chain has no addressable types")
)

// TypeError describes a value rejected by CheckInstance.
type TypeError struct {
	Got string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("model: object instance required, got %s", e.Got)
}

// Unwrap exposes ErrNotInstance to errors.Is.
func (e *TypeError) Unwrap() error {
	return ErrNotInstance
}

var reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// CheckInstance fails fast when v is not an object instance: nil, a
// reflect.Type, a reflect.Value wrapping nothing, or a typed nil pointer.
func CheckInstance(v any) error {
	if v == nil {
		return &TypeError{Got: "nil"}
	}
	if t, ok := v.(reflect.Type); ok {
		return &TypeError{Got: "type " + t.String()}
	}
	if rv, ok := v.(reflect.Value); ok {
		if !rv.IsValid() {
			return &TypeError{Got: "invalid reflect.Value"}
		}
		if rv.Type().Implements(reflectTypeType) {
			return &TypeError{Got: "reflect.Value of a type"}
		}
		return &TypeError{Got: "reflect.Value " + rv.Type().String()}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return &TypeError{Got: "nil " + rv.Type().String()}
		}
	}
	return nil
}
