package stepvm

import (
	"fmt"

	"github.com/reusee/stepviz/scopes"
	"github.com/samber/lo"
)

type Dump struct {
	State    string      `json:"state" yaml:"state"`
	Error    string      `json:"error,omitempty" yaml:"error,omitempty"`
	Methods  []string    `json:"methods" yaml:"methods"`
	CallPath []string    `json:"call_path" yaml:"call_path"`
	Work     []string    `json:"work" yaml:"work"`
	Frames   []FrameDump `json:"frames" yaml:"frames"`
}

type FrameDump struct {
	Label string    `json:"label" yaml:"label"`
	Vars  []VarDump `json:"vars" yaml:"vars"`
}

type VarDump struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Dump renders the engine state. Values are formatted with fmt, so cyclic
// structures stored in variables are printed shallowly.
func (e *Engine) Dump() Dump {
	ret := Dump{
		State:    e.State().String(),
		Methods:  e.Methods(),
		CallPath: e.callPathDescriptions(),
	}
	if e.failure != nil {
		ret.Error = e.failure.Error()
	}
	for i := len(e.work) - 1; i >= 0; i-- {
		ret.Work = append(ret.Work, e.work[i].inst.Description())
	}
	for _, frame := range e.scopes.Frames() {
		ret.Frames = append(ret.Frames, FrameDump{
			Label: frame.Label,
			Vars: lo.Map(frame.Bindings(), func(binding scopes.Binding, _ int) VarDump {
				return VarDump{
					Name:  binding.Name,
					Value: FormatValue(binding.Value),
				}
			}),
		})
	}
	return ret
}

// FormatValue renders a binding or return value for display. nil renders as undefined.
func FormatValue(value any) string {
	switch value := value.(type) {
	case nil:
		return "undefined"
	case fmt.Stringer:
		return value.String()
	}
	return fmt.Sprintf("%v", value)
}
