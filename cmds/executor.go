package cmds

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Executor runs argv as a sequence of commands, each consuming as many
// following arguments as its function takes.
type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

func (p *Executor) Execute(args []string) error {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := p.commands[name]
		if !ok {
			// -name=value
			inlineName, value, inline := splitInline(name)
			if inline {
				command, ok = p.commands[inlineName]
			}
			if !ok {
				return fmt.Errorf("unknown command: %s", name)
			}
			args = append([]string{value}, args...)
		}

		fnType := command.Func.Type()
		callArgs := make([]reflect.Value, fnType.NumIn())
		for i := range callArgs {
			if len(args) == 0 {
				return fmt.Errorf("%s: expecting %d arguments, got %d", name, len(callArgs), i)
			}
			value, err := parseArg(fnType.In(i), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			args = args[1:]
			callArgs[i] = value
		}
		if rets := command.Func.Call(callArgs); len(rets) > 0 && !rets[0].IsNil() {
			return rets[0].Interface().(error)
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func parseArg(t reflect.Type, str string) (reflect.Value, error) {
	ret := reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.String:
		ret.SetString(str)

	case reflect.Bool:
		v, err := parseBool(str)
		if err != nil {
			return ret, err
		}
		ret.SetBool(v)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}
	return ret, nil
}
