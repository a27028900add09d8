package nets

import (
	"errors"

	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/snapshots"
	"github.com/reusee/stepviz/stepvm"
	"github.com/samber/lo"
)

type Op string

const (
	OpDump         Op = "dump"
	OpMethods      Op = "methods"
	OpInstructions Op = "instructions"
	OpPause        Op = "pause"
	OpResume       Op = "resume"
	OpStep         Op = "step"
	OpStepNext     Op = "stepNext"
	OpTerminate    Op = "terminate"
	OpReset        Op = "reset"
	OpBreakpoint   Op = "breakpoint"
	OpCall         Op = "call"
	OpExport       Op = "export"
	OpImport       Op = "import"
)

var (
	ErrUnknownOp           = errors.New("unknown op")
	ErrInstructionNotFound = errors.New("instruction not found")
	ErrRemote              = errors.New("remote error")
)

// Request is sent by clients. ID must be positive; responses carry the same ID.
type Request struct {
	ID          int                 `json:"id"`
	Op          Op                  `json:"op"`
	Method      string              `json:"method,omitempty"`
	Args        []string            `json:"args,omitempty"`
	Instruction string              `json:"instruction,omitempty"`
	Snapshot    *snapshots.Snapshot `json:"snapshot,omitempty"`
}

// Message is either a response (ID set) or an engine event (ID zero).
type Message struct {
	ID           int                 `json:"id,omitempty"`
	Event        string              `json:"event,omitempty"`
	Error        string              `json:"error,omitempty"`
	Result       any                 `json:"result,omitempty"`
	Instruction  string              `json:"instruction,omitempty"`
	Dump         *stepvm.Dump        `json:"dump,omitempty"`
	Methods      []MethodInfo        `json:"methods,omitempty"`
	Instructions []InstructionInfo   `json:"instructions,omitempty"`
	Snapshot     *snapshots.Snapshot `json:"snapshot,omitempty"`
}

type MethodInfo struct {
	Name string    `json:"name"`
	Args []ArgInfo `json:"args"`
}

type ArgInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type InstructionInfo struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Breakpoint  bool   `json:"breakpoint"`
}

func methodInfos(methods []*insts.Method) []MethodInfo {
	return lo.Map(methods, func(method *insts.Method, _ int) MethodInfo {
		return MethodInfo{
			Name: method.Name(),
			Args: lo.Map(method.Args(), func(arg insts.Arg, _ int) ArgInfo {
				return ArgInfo{
					Name: arg.Name,
					Type: arg.Type.String(),
				}
			}),
		}
	})
}

func instructionInfos(root insts.Instruction) (ret []InstructionInfo) {
	seen := make(map[string]bool)
	insts.Walk(root, func(inst insts.Instruction) bool {
		// shared subtrees are listed once
		if seen[inst.ID()] {
			return false
		}
		seen[inst.ID()] = true
		ret = append(ret, InstructionInfo{
			ID:          inst.ID(),
			Kind:        inst.Kind().String(),
			Description: inst.Description(),
			Breakpoint:  inst.Breakpoint(),
		})
		return true
	})
	return
}

func eventMessage(ev stepvm.Event) Message {
	msg := Message{
		Event: ev.Kind.String(),
	}
	if ev.Instruction != nil {
		msg.Instruction = ev.Instruction.Description()
	}
	if ev.Err != nil {
		msg.Error = ev.Err.Error()
	}
	return msg
}

func resultMessage(id int, value any, err error) Message {
	msg := Message{
		ID: id,
	}
	if err != nil {
		msg.Error = err.Error()
		return msg
	}
	msg.Result = stepvm.FormatValue(value)
	return msg
}
