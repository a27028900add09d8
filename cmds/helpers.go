package cmds

// Var defines name to set the value and name+"." to reset it.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset "+name).Hide())
	return &value
}

// Switch defines name to turn the value on and "!"+name to turn it off.
func Switch(name string, desc string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset "+name).Hide())
	return &value
}

// Collect defines a repeatable name that appends each argument.
func Collect[T any](name string, desc string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc+" (repeatable)"))
	return &value
}
