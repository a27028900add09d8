// Package linkedlists is a singly linked list whose operations run as instruction trees.
package linkedlists

import (
	"fmt"
	"strings"
)

type Node struct {
	Value int
	Next  *Node
}

func (n *Node) String() string {
	if n == nil {
		return "null"
	}
	return fmt.Sprintf("Node(%d)", n.Value)
}

type List struct {
	Head *Node
	Size int
}

func New() *List {
	return new(List)
}

func (l *List) Values() []int {
	ret := make([]int, 0, l.Size)
	for node := l.Head; node != nil; node = node.Next {
		ret = append(ret, node.Value)
	}
	return ret
}

func (l *List) String() string {
	b := new(strings.Builder)
	b.WriteString("[")
	for node := l.Head; node != nil; node = node.Next {
		if node != l.Head {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(b, "%d", node.Value)
	}
	b.WriteString("]")
	return b.String()
}
