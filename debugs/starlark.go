package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts engine values for inspection. A pointer already
// being converted further up is rendered as text, so parent links do not loop.
func toStarlarkValue(v any) starlark.Value {
	c := &converter{
		converting: make(map[uintptr]bool),
	}
	return c.convert(reflect.ValueOf(v))
}

type converter struct {
	converting map[uintptr]bool
}

func (c *converter) convert(value reflect.Value) starlark.Value {
	if !value.IsValid() {
		return starlark.None
	}
	if value.CanInterface() {
		if v, ok := value.Interface().(starlark.Value); ok {
			return v
		}
	}

	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		if value.Type().Elem().Kind() == reflect.Uint8 && value.Kind() == reflect.Slice {
			return starlark.Bytes(value.Bytes())
		}
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = c.convert(value.Index(i))
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(c.convert(iter.Key()), c.convert(iter.Value()))
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			if !typ.Field(i).IsExported() {
				continue
			}
			d.SetKey(starlark.String(typ.Field(i).Name), c.convert(value.Field(i)))
		}
		return d

	case reflect.Pointer:
		if value.IsNil() {
			return starlark.None
		}
		ptr := value.Pointer()
		if c.converting[ptr] {
			return starlark.String(fmt.Sprint(value.Interface()))
		}
		c.converting[ptr] = true
		defer delete(c.converting, ptr)
		return c.convert(value.Elem())

	case reflect.Interface:
		return c.convert(value.Elem())

	case reflect.Func:
		if value.IsNil() {
			return starlark.None
		}
		return starlarkutil.MakeFunc("", value.Interface())

	}

	if value.CanInterface() {
		return starlark.String(fmt.Sprint(value.Interface()))
	}
	return starlark.String(value.Type().String())
}
