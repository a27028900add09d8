package insts

import (
	"errors"
	"fmt"

	"github.com/reusee/stepviz/snapshots"
)

var ErrNoSnapshotHook = errors.New("program has no snapshot hook")

// Invocation is one method call replayed when importing a snapshot.
type Invocation struct {
	Method *Method
	Args   map[string]any
}

type Program struct {
	Node
	fields         []*Field
	methods        []*Method
	createSnapshot func() (snapshots.Snapshot, error)
	resolveImport  func(snapshots.Snapshot) ([]Invocation, error)
}

var _ Instruction = new(Program)

func NewProgram(name string, fields []*Field, methods []*Method) *Program {
	ret := &Program{
		fields:  fields,
		methods: methods,
	}
	ret.init(orDefault(name, KindProgram.String()))
	return ret
}

func (p *Program) Kind() Kind {
	return KindProgram
}

func (p *Program) Nestable() bool {
	return true
}

func (p *Program) Children() []Instruction {
	ret := make([]Instruction, 0, len(p.fields)+len(p.methods))
	for _, field := range p.fields {
		ret = append(ret, field)
	}
	for _, method := range p.methods {
		ret = append(ret, method)
	}
	return ret
}

func (p *Program) Fields() []*Field {
	return p.fields
}

func (p *Program) Methods() []*Method {
	return p.methods
}

func (p *Program) Method(name string) *Method {
	for _, method := range p.methods {
		if method.name == name {
			return method
		}
	}
	return nil
}

func (p *Program) OnCreateSnapshot(fn func() (snapshots.Snapshot, error)) {
	p.createSnapshot = fn
}

func (p *Program) OnResolveImport(fn func(snapshots.Snapshot) ([]Invocation, error)) {
	p.resolveImport = fn
}

func (p *Program) CreateSnapshot() (snapshots.Snapshot, error) {
	if p.createSnapshot == nil {
		return snapshots.Snapshot{}, ErrNoSnapshotHook
	}
	return p.createSnapshot()
}

func (p *Program) ResolveImport(snapshot snapshots.Snapshot) ([]Invocation, error) {
	if p.resolveImport == nil {
		return nil, ErrNoSnapshotHook
	}
	return p.resolveImport(snapshot)
}

// InsertEach maps every snapshot element to one call of method with the
// element bound to arg, in element order.
func (p *Program) InsertEach(method string, arg string) func(snapshots.Snapshot) ([]Invocation, error) {
	return func(snapshot snapshots.Snapshot) ([]Invocation, error) {
		m := p.Method(method)
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
		}
		ret := make([]Invocation, 0, len(snapshot.Elements))
		for _, elem := range snapshot.Elements {
			ret = append(ret, Invocation{
				Method: m,
				Args: map[string]any{
					arg: elem,
				},
			})
		}
		return ret, nil
	}
}
