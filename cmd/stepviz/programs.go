package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/linkedlists"
	"github.com/reusee/stepviz/rbtrees"
	"github.com/reusee/stepviz/stepvm"
	"github.com/samber/lo"
)

var programs = map[string]func() *insts.Program{
	linkedlists.Name: func() *insts.Program {
		return linkedlists.New().Program()
	},
	rbtrees.Name: func() *insts.Program {
		return rbtrees.New().Program()
	},
}

func newProgram(name string) (*insts.Program, error) {
	fn, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q, expecting one of %v", name, slices.Sorted(maps.Keys(programs)))
	}
	return fn(), nil
}

// parseCall parses method:arg,arg
func parseCall(e *stepvm.Engine, spec string) (string, map[string]any, error) {
	name, rawArgs, _ := strings.Cut(spec, ":")
	method := e.Method(name)
	if method == nil || !method.IsPublic() {
		return "", nil, fmt.Errorf("%w: %s", insts.ErrMethodNotFound, name)
	}
	var raw []string
	if rawArgs != "" {
		raw = strings.Split(rawArgs, ",")
	}
	args, err := method.ParseArgs(raw)
	if err != nil {
		return "", nil, err
	}
	return name, args, nil
}

// setBreakpoint parses method.index, where index counts the instructions
// of the method body depth-first from zero.
func setBreakpoint(e *stepvm.Engine, spec string) (insts.Instruction, error) {
	i := strings.LastIndex(spec, ".")
	if i < 0 {
		return nil, fmt.Errorf("bad breakpoint %q, expecting method.index", spec)
	}
	name := spec[:i]
	index, err := strconv.Atoi(spec[i+1:])
	if err != nil {
		return nil, fmt.Errorf("bad breakpoint %q: %w", spec, err)
	}
	method := e.Method(name)
	if method == nil {
		return nil, fmt.Errorf("%w: %s", insts.ErrMethodNotFound, name)
	}
	var body []insts.Instruction
	for _, inst := range method.Body() {
		insts.Walk(inst, func(inst insts.Instruction) bool {
			body = append(body, inst)
			return true
		})
	}
	body = lo.Uniq(body)
	if index < 0 || index >= len(body) {
		return nil, fmt.Errorf("bad breakpoint %q: method has %d instructions", spec, len(body))
	}
	body[index].SetBreakpoint(true)
	return body[index], nil
}
