// Package rbtrees is a red-black tree whose operations run as instruction trees.
// Structural primitives such as rotations are plain Go, called from Run actions.
package rbtrees

import (
	"errors"
	"fmt"
)

type Node struct {
	Key    int
	Red    bool
	Left   *Node
	Right  *Node
	Parent *Node
	// placeholder leaf used while fixing up after a deletion
	nilNode bool
}

func (n *Node) String() string {
	if n == nil {
		return "NIL"
	}
	if n.nilNode {
		return "NIL*"
	}
	color := "B"
	if n.Red {
		color = "R"
	}
	return fmt.Sprintf("%d%s", n.Key, color)
}

func isBlack(n *Node) bool {
	return n == nil || !n.Red
}

type Tree struct {
	Root *Node
	Size int
}

func New() *Tree {
	return new(Tree)
}

func (t *Tree) rotateRight(node *Node) {
	parent := node.Parent
	left := node.Left
	node.Left = left.Right
	if left.Right != nil {
		left.Right.Parent = node
	}
	left.Right = node
	node.Parent = left
	t.replaceParentsChild(parent, node, left)
}

func (t *Tree) rotateLeft(node *Node) {
	parent := node.Parent
	right := node.Right
	node.Right = right.Left
	if right.Left != nil {
		right.Left.Parent = node
	}
	right.Left = node
	node.Parent = right
	t.replaceParentsChild(parent, node, right)
}

func (t *Tree) replaceParentsChild(parent *Node, oldChild *Node, newChild *Node) {
	switch {
	case parent == nil:
		t.Root = newChild
	case parent.Left == oldChild:
		parent.Left = newChild
	case parent.Right == oldChild:
		parent.Right = newChild
	default:
		panic(fmt.Errorf("node %v is not a child of %v", oldChild, parent))
	}
	if newChild != nil {
		newChild.Parent = parent
	}
}

func uncleOf(parent *Node) *Node {
	grandparent := parent.Parent
	if grandparent.Left == parent {
		return grandparent.Right
	}
	return grandparent.Left
}

func siblingOf(node *Node) *Node {
	parent := node.Parent
	if node == parent.Left {
		return parent.Right
	}
	return parent.Left
}

func minimum(node *Node) *Node {
	for node.Left != nil {
		node = node.Left
	}
	return node
}

// deleteWithZeroOrOneChild unlinks node and returns the node moved up into its place.
// A black leaf is replaced by a temporary placeholder so the fix-up has a position to work on.
func (t *Tree) deleteWithZeroOrOneChild(node *Node) *Node {
	if node.Left != nil {
		t.replaceParentsChild(node.Parent, node, node.Left)
		return node.Left
	}
	if node.Right != nil {
		t.replaceParentsChild(node.Parent, node, node.Right)
		return node.Right
	}
	var newChild *Node
	if !node.Red {
		newChild = &Node{
			nilNode: true,
		}
	}
	t.replaceParentsChild(node.Parent, node, newChild)
	return newChild
}

func (t *Tree) handleRedSibling(node *Node, sibling *Node) {
	sibling.Red = false
	node.Parent.Red = true
	if node == node.Parent.Left {
		t.rotateLeft(node.Parent)
	} else {
		t.rotateRight(node.Parent)
	}
}

func (t *Tree) handleBlackSiblingWithRedChild(node *Node, sibling *Node) {
	nodeIsLeft := node == node.Parent.Left
	if nodeIsLeft && isBlack(sibling.Right) {
		sibling.Left.Red = false
		sibling.Red = true
		t.rotateRight(sibling)
		sibling = node.Parent.Right
	} else if !nodeIsLeft && isBlack(sibling.Left) {
		sibling.Right.Red = false
		sibling.Red = true
		t.rotateLeft(sibling)
		sibling = node.Parent.Left
	}
	sibling.Red = node.Parent.Red
	node.Parent.Red = false
	if nodeIsLeft {
		sibling.Right.Red = false
		t.rotateLeft(node.Parent)
	} else {
		sibling.Left.Red = false
		t.rotateRight(node.Parent)
	}
}

// PreOrder lists keys root first.
func (t *Tree) PreOrder() []int {
	var ret []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil || n.nilNode {
			return
		}
		ret = append(ret, n.Key)
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root)
	return ret
}

func (t *Tree) InOrder() []int {
	var ret []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil || n.nilNode {
			return
		}
		walk(n.Left)
		ret = append(ret, n.Key)
		walk(n.Right)
	}
	walk(t.Root)
	return ret
}

var ErrInvalidTree = errors.New("invalid red-black tree")

// Validate checks ordering, parent links and the red-black properties.
func (t *Tree) Validate() error {
	if t.Root == nil {
		return nil
	}
	if t.Root.Red {
		return fmt.Errorf("%w: red root", ErrInvalidTree)
	}
	if t.Root.Parent != nil {
		return fmt.Errorf("%w: root has parent", ErrInvalidTree)
	}
	count := 0
	var check func(n *Node, lower, upper *int) (int, error)
	check = func(n *Node, lower, upper *int) (int, error) {
		if n == nil {
			return 1, nil
		}
		if n.nilNode {
			return 0, fmt.Errorf("%w: placeholder left in tree", ErrInvalidTree)
		}
		count++
		if lower != nil && n.Key <= *lower || upper != nil && n.Key >= *upper {
			return 0, fmt.Errorf("%w: %v out of order", ErrInvalidTree, n)
		}
		for _, child := range []*Node{n.Left, n.Right} {
			if child == nil {
				continue
			}
			if child.Parent != n {
				return 0, fmt.Errorf("%w: bad parent of %v", ErrInvalidTree, child)
			}
			if n.Red && child.Red {
				return 0, fmt.Errorf("%w: red %v has red child %v", ErrInvalidTree, n, child)
			}
		}
		left, err := check(n.Left, lower, &n.Key)
		if err != nil {
			return 0, err
		}
		right, err := check(n.Right, &n.Key, upper)
		if err != nil {
			return 0, err
		}
		if left != right {
			return 0, fmt.Errorf("%w: black height differs at %v", ErrInvalidTree, n)
		}
		if !n.Red {
			left++
		}
		return left, nil
	}
	if _, err := check(t.Root, nil, nil); err != nil {
		return err
	}
	if count != t.Size {
		return fmt.Errorf("%w: size %d, counted %d", ErrInvalidTree, t.Size, count)
	}
	return nil
}
