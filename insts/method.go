package insts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type ArgType uint8

const (
	ArgAny ArgType = iota
	ArgNumber
	ArgString
	ArgBool
)

func (a ArgType) String() string {
	switch a {
	case ArgNumber:
		return "number"
	case ArgString:
		return "string"
	case ArgBool:
		return "boolean"
	}
	return "any"
}

// Parse converts textual input supplied by a user. The declared type is only
// checked here, never by the engine.
func (a ArgType) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch a {
	case ArgNumber:
		if n, ok := parseNumber(raw); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, raw)
	case ArgString:
		return raw, nil
	case ArgBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidArgument, raw)
		}
		return b, nil
	}
	if n, ok := parseNumber(raw); ok {
		return n, nil
	}
	return raw, nil
}

func parseNumber(raw string) (any, bool) {
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	return nil, false
}

type Arg struct {
	Name string
	Type ArgType
}

// Params declares untyped arguments.
func Params(names ...string) []Arg {
	return lo.Map(names, func(name string, _ int) Arg {
		return Arg{Name: name}
	})
}

// Method is a named instruction list. Executing its declaration only registers it.
type Method struct {
	Node
	name   string
	args   []Arg
	public bool
	body   []Instruction
}

var _ Instruction = new(Method)

func NewMethod(name string, args []Arg, body ...Instruction) *Method {
	ret := &Method{
		name: name,
		args: args,
		body: body,
	}
	ret.init(name + "(" + strings.Join(ret.ArgNames(), ", ") + ")")
	return ret
}

// Public marks the method as invocable by users and returns it.
func (m *Method) Public() *Method {
	m.public = true
	return m
}

func (m *Method) IsPublic() bool {
	return m.public
}

func (m *Method) Kind() Kind {
	return KindMethod
}

func (m *Method) Nestable() bool {
	return true
}

func (m *Method) Children() []Instruction {
	return m.body
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) Body() []Instruction {
	return m.body
}

func (m *Method) Args() []Arg {
	return m.args
}

func (m *Method) ArgNames() []string {
	return lo.Map(m.args, func(arg Arg, _ int) string {
		return arg.Name
	})
}

// ParseArgs binds positional textual values to the declared arguments.
func (m *Method) ParseArgs(raw []string) (map[string]any, error) {
	if len(raw) != len(m.args) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, m.name, len(m.args), len(raw))
	}
	ret := make(map[string]any, len(m.args))
	for i, arg := range m.args {
		value, err := arg.Type.Parse(raw[i])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %s: %w", m.name, arg.Name, err)
		}
		ret[arg.Name] = value
	}
	return ret, nil
}
