package configs

import (
	"reflect"

	"github.com/reusee/dscope"
)

// Override forks scope with values replacing the loaded ones.
// Values that are not Configurable, or whose type scope does not provide, are ignored.
func Override(scope dscope.Scope, values ...any) dscope.Scope {
	provided := make(map[reflect.Type]bool)
	for t := range scope.AllTypes() {
		if t.Implements(configurableType) {
			provided[t] = true
		}
	}
	var defs []any
	seen := make(map[reflect.Type]bool)
	// later values win
	for i := len(values) - 1; i >= 0; i-- {
		value := values[i]
		if value == nil {
			continue
		}
		t := reflect.TypeOf(value)
		if !provided[t] || seen[t] {
			continue
		}
		seen[t] = true
		defs = append(defs, value)
	}
	if len(defs) == 0 {
		return scope
	}
	return scope.Fork(defs...)
}
