// Package scopes implements nested variable environments.
// The bottom frame holds program fields and is never popped.
package scopes

import (
	"fmt"

	"github.com/reusee/stepviz/insts"
)

const BaseLabel = "base"

type Stack struct {
	frames []*Frame
}

var _ insts.Scope = new(Stack)

func NewStack() *Stack {
	s := new(Stack)
	s.Reset()
	return s
}

// Reset drops every frame and installs a fresh base frame.
func (s *Stack) Reset() {
	s.frames = []*Frame{
		NewFrame(nil, nil, BaseLabel),
	}
}

func (s *Stack) Depth() int {
	return len(s.frames)
}

func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *Stack) Base() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[0]
}

// Frames returns frames from the base upward.
func (s *Stack) Frames() []*Frame {
	return append([]*Frame(nil), s.frames...)
}

func (s *Stack) Push(tag any, source insts.Instruction, label string) *Frame {
	frame := NewFrame(tag, source, label)
	s.frames = append(s.frames, frame)
	return frame
}

func (s *Stack) Pop() (*Frame, error) {
	if len(s.frames) <= 1 {
		return nil, fmt.Errorf("%w: pop base frame", insts.ErrStackUnderflow)
	}
	frame := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return frame, nil
}

// TopIs reports whether the top frame was pushed for tag.
func (s *Stack) TopIs(tag any) bool {
	top := s.Top()
	return top != nil && top != s.Base() && top.Tag == tag
}

func (s *Stack) Declare(name string, value any) error {
	top := s.Top()
	if top == nil {
		return fmt.Errorf("%w: no frame", insts.ErrStackUnderflow)
	}
	return top.Declare(name, value)
}

func (s *Stack) DeclareBase(name string, value any) error {
	base := s.Base()
	if base == nil {
		return fmt.Errorf("%w: no base frame", insts.ErrStackUnderflow)
	}
	if base.Has(name) {
		return fmt.Errorf("%w: %s", insts.ErrDuplicateField, name)
	}
	return base.Declare(name, value)
}

func (s *Stack) find(name string) *Frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Has(name) {
			return s.frames[i]
		}
	}
	return nil
}

func (s *Stack) Write(name string, value any) error {
	frame := s.find(name)
	if frame == nil {
		return fmt.Errorf("%w: %s", insts.ErrUndefinedVariable, name)
	}
	frame.values[name] = value
	return nil
}

func (s *Stack) Read(name string) (any, error) {
	frame := s.find(name)
	if frame == nil {
		return nil, fmt.Errorf("%w: %s", insts.ErrUndefinedVariable, name)
	}
	return frame.values[name], nil
}

// Lookup is the non-failing variant of Read.
func (s *Stack) Lookup(name string) (any, bool) {
	frame := s.find(name)
	if frame == nil {
		return nil, false
	}
	return frame.values[name], true
}
