package insts

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Instruction is a node of a program tree.
// Nodes are built once and re-executed many times, so they carry no runtime bindings.
type Instruction interface {
	Kind() Kind
	ID() string
	Description() string
	String() string
	Breakpoint() bool
	SetBreakpoint(enabled bool)
	Active() bool
	SetActive(active bool)
	Nestable() bool
	Children() []Instruction
}

// Node holds the attributes shared by every instruction kind.
// Breakpoint and active flags are toggled by debugger clients from other goroutines.
type Node struct {
	id          string
	description string
	breakpoint  atomic.Bool
	active      atomic.Bool
}

func (n *Node) init(description string) {
	n.id = uuid.NewString()
	n.description = description
}

func (n *Node) ID() string {
	return n.id
}

func (n *Node) Description() string {
	return n.description
}

func (n *Node) String() string {
	return n.description
}

// Describe replaces the human-readable description.
func (n *Node) Describe(description string) {
	n.description = description
}

func (n *Node) Breakpoint() bool {
	return n.breakpoint.Load()
}

func (n *Node) SetBreakpoint(enabled bool) {
	n.breakpoint.Store(enabled)
}

func (n *Node) ToggleBreakpoint() bool {
	for {
		old := n.breakpoint.Load()
		if n.breakpoint.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (n *Node) Active() bool {
	return n.active.Load()
}

func (n *Node) SetActive(active bool) {
	n.active.Store(active)
}

func orDefault(description string, def string) string {
	if description == "" {
		return def
	}
	return description
}
