package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in a module's Ports(): either the value itself or one of its
// exported struct fields (pointer to struct is followed once)
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok && !isNilIface(f) {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics naming the module when T is not exposed
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	var t T
	panic(fmt.Sprintf("module %q does not expose %T", m.Name(), &t))
}

func isNilIface(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
