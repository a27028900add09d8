package configs

import "reflect"

// Configurable marks config values that command line flags may override.
type Configurable interface {
	ConfigExpr() string
}

var configurableType = reflect.TypeFor[Configurable]()
