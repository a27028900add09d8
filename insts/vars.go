package insts

import (
	"fmt"
	"reflect"
)

// Scope is the view of live bindings an expression runs against.
type Scope interface {
	Read(name string) (any, error)
	Lookup(name string) (any, bool)
	Write(name string, value any) error
}

// Vars is the accessor handed to every expression and action.
// The first failing read or write is recorded and later operations become no-ops;
// the engine checks Err after each callback returns.
type Vars struct {
	scope Scope
	err   error
}

func NewVars(scope Scope) *Vars {
	return &Vars{
		scope: scope,
	}
}

func (v *Vars) Err() error {
	return v.err
}

func (v *Vars) Fail(err error) {
	if v.err == nil && err != nil {
		v.err = err
	}
}

func (v *Vars) Read(name string) any {
	if v.err != nil {
		return nil
	}
	value, err := v.scope.Read(name)
	if err != nil {
		v.Fail(err)
		return nil
	}
	return value
}

// Lookup never fails; a missing name yields (nil, false).
func (v *Vars) Lookup(name string) (any, bool) {
	return v.scope.Lookup(name)
}

func (v *Vars) Write(name string, value any) {
	if v.err != nil {
		return
	}
	v.Fail(v.scope.Write(name, value))
}

func (v *Vars) PostIncrement(name string) int {
	return v.add(name, 1)
}

func (v *Vars) PostDecrement(name string) int {
	return v.add(name, -1)
}

func (v *Vars) add(name string, delta int) int {
	old := v.Int(name)
	if v.err != nil {
		return 0
	}
	v.Write(name, old+delta)
	return old
}

func (v *Vars) Int(name string) int {
	value := v.Read(name)
	if v.err != nil || value == nil {
		return 0
	}
	i, ok := ToInt(value)
	if !ok {
		v.Fail(fmt.Errorf("%w: %s is %T, not an integer", ErrTypeMismatch, name, value))
		return 0
	}
	return i
}

func (v *Vars) Bool(name string) bool {
	return Truthy(v.Read(name))
}

// Get reads name and asserts its type. A nil binding yields the zero value.
func Get[T any](v *Vars, name string) T {
	var zero T
	value := v.Read(name)
	if value == nil {
		return zero
	}
	ret, ok := value.(T)
	if !ok {
		v.Fail(fmt.Errorf("%w: %s is %T, want %T", ErrTypeMismatch, name, value, zero))
		return zero
	}
	return ret
}

func ToInt(value any) (int, bool) {
	switch value := value.(type) {
	case int:
		return value, true
	case int8:
		return int(value), true
	case int16:
		return int(value), true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case uint:
		return int(value), true
	case uint8:
		return int(value), true
	case uint16:
		return int(value), true
	case uint32:
		return int(value), true
	case uint64:
		return int(value), true
	case float32:
		if float32(int(value)) == value {
			return int(value), true
		}
	case float64:
		if float64(int(value)) == value {
			return int(value), true
		}
	}
	return 0, false
}

// Truthy reports whether value counts as true in a condition.
// Typed nil pointers, maps, slices and funcs are false.
func Truthy(value any) bool {
	switch value := value.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case int:
		return value != 0
	case float64:
		return value != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32:
		return rv.Float() != 0
	}
	return true
}
