package rbtrees

import (
	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/snapshots"
)

const Name = "rbtree"

const (
	fixAfterInsert = "fixRedBlackPropertiesAfterInsert"
	fixAfterDelete = "fixRedBlackPropertiesAfterDelete"
)

func treeOf(v *insts.Vars) *Tree {
	return insts.Get[*Tree](v, "tree")
}

func nodeOf(v *insts.Vars, name string) *Node {
	return insts.Get[*Node](v, name)
}

func set(name string, value func(v *insts.Vars) *Node) insts.Action {
	return func(v *insts.Vars) {
		v.Write(name, value(v))
	}
}

func isNil(name string) insts.Predicate {
	return func(v *insts.Vars) bool {
		return nodeOf(v, name) == nil
	}
}

func keyLess(v *insts.Vars) bool {
	return v.Int("key") < nodeOf(v, "node").Key
}

func returnNothing() *insts.Return {
	return insts.NewReturn(nil)
}

// descend walks node down from the root while cond holds, moving left or right by key.
func descend(description string, cond insts.Predicate, body ...insts.Instruction) []insts.Instruction {
	return []insts.Instruction{
		insts.NewLet(insts.DescribeLet("node", "root"), "node", func(v *insts.Vars) any {
			return treeOf(v).Root
		}),
		insts.NewWhile(insts.DescribeWhile(description), cond, append(body,
			insts.NewIfElse(insts.DescribeIfElse("key < node.key"), keyLess, []insts.Instruction{
				insts.NewRun("node = node.left", set("node", func(v *insts.Vars) *Node {
					return nodeOf(v, "node").Left
				})),
			}, []insts.Instruction{
				insts.NewRun("node = node.right", set("node", func(v *insts.Vars) *Node {
					return nodeOf(v, "node").Right
				})),
			}),
		)...),
	}
}

func (t *Tree) Program() *insts.Program {

	searchNode := insts.NewMethod("searchNode", []insts.Arg{
		{Name: "key", Type: insts.ArgNumber},
	}, append(descend("node != null", func(v *insts.Vars) bool {
		return nodeOf(v, "node") != nil
	},
		insts.NewIf(insts.DescribeIf("key == node.key"), func(v *insts.Vars) bool {
			return v.Int("key") == nodeOf(v, "node").Key
		},
			insts.NewReturn(func(v *insts.Vars) any {
				return nodeOf(v, "node")
			}),
		),
	), returnNothing())...).Public()

	insertNode := insts.NewMethod("insertNode", []insts.Arg{
		{Name: "key", Type: insts.ArgNumber},
	}, append(append([]insts.Instruction{
		insts.NewLet(insts.DescribeLet("parent", "null"), "parent", nil),
	}, descend("node != null", func(v *insts.Vars) bool {
		return nodeOf(v, "node") != nil
	},
		insts.NewIf(insts.DescribeIf("key == node.key"), func(v *insts.Vars) bool {
			return v.Int("key") == nodeOf(v, "node").Key
		},
			returnNothing(),
		),
		insts.NewRun("parent = node", set("parent", func(v *insts.Vars) *Node {
			return nodeOf(v, "node")
		})),
	)...),
		insts.NewLet(insts.DescribeLet("newNode", "new Node(key, RED)"), "newNode", func(v *insts.Vars) any {
			return &Node{
				Key: v.Int("key"),
				Red: true,
			}
		}),
		insts.NewIfElse(insts.DescribeIfElse("parent == null"), isNil("parent"), []insts.Instruction{
			insts.NewRun("root = newNode", func(v *insts.Vars) {
				treeOf(v).Root = nodeOf(v, "newNode")
			}),
		}, []insts.Instruction{
			insts.NewIfElse(insts.DescribeIfElse("key < parent.key"), func(v *insts.Vars) bool {
				return v.Int("key") < nodeOf(v, "parent").Key
			}, []insts.Instruction{
				insts.NewRun("parent.left = newNode", func(v *insts.Vars) {
					nodeOf(v, "parent").Left = nodeOf(v, "newNode")
				}),
			}, []insts.Instruction{
				insts.NewRun("parent.right = newNode", func(v *insts.Vars) {
					nodeOf(v, "parent").Right = nodeOf(v, "newNode")
				}),
			}),
			insts.NewRun("newNode.parent = parent", func(v *insts.Vars) {
				nodeOf(v, "newNode").Parent = nodeOf(v, "parent")
			}),
		}),
		insts.NewRun("size++", func(v *insts.Vars) {
			treeOf(v).Size++
		}),
		insts.NewCall(fixAfterInsert, insts.Bind("node", func(v *insts.Vars) any {
			return nodeOf(v, "newNode")
		}), ""),
	)...).Public()

	fixInsert := insts.NewMethod(fixAfterInsert, insts.Params("node"),
		insts.NewLet(insts.DescribeLet("parent", "node.parent"), "parent", func(v *insts.Vars) any {
			return nodeOf(v, "node").Parent
		}),
		insts.NewIf(insts.DescribeIf("parent == null"), isNil("parent"),
			insts.NewRun("node.color = BLACK", func(v *insts.Vars) {
				nodeOf(v, "node").Red = false
			}),
			returnNothing(),
		),
		insts.NewIf(insts.DescribeIf("parent.color == BLACK"), func(v *insts.Vars) bool {
			return !nodeOf(v, "parent").Red
		},
			returnNothing(),
		),
		insts.NewLet(insts.DescribeLet("grandparent", "parent.parent"), "grandparent", func(v *insts.Vars) any {
			return nodeOf(v, "parent").Parent
		}),
		insts.NewIf(insts.DescribeIf("grandparent == null"), isNil("grandparent"),
			insts.NewRun("parent.color = BLACK", func(v *insts.Vars) {
				nodeOf(v, "parent").Red = false
			}),
			returnNothing(),
		),
		insts.NewLet(insts.DescribeLet("uncle", "getUncle(parent)"), "uncle", func(v *insts.Vars) any {
			return uncleOf(nodeOf(v, "parent"))
		}),
		insts.NewIf(insts.DescribeIf("uncle != null && uncle.color == RED"), func(v *insts.Vars) bool {
			return !isBlack(nodeOf(v, "uncle"))
		},
			insts.NewRun("parent.color = BLACK; grandparent.color = RED; uncle.color = BLACK", func(v *insts.Vars) {
				nodeOf(v, "parent").Red = false
				nodeOf(v, "grandparent").Red = true
				nodeOf(v, "uncle").Red = false
			}),
			insts.NewCall(fixAfterInsert, insts.Bind("node", func(v *insts.Vars) any {
				return nodeOf(v, "grandparent")
			}), ""),
			returnNothing(),
		),
		insts.NewIfElse(insts.DescribeIfElse("parent == grandparent.left"), func(v *insts.Vars) bool {
			return nodeOf(v, "parent") == nodeOf(v, "grandparent").Left
		}, []insts.Instruction{
			insts.NewIf(insts.DescribeIf("node == parent.right"), func(v *insts.Vars) bool {
				return nodeOf(v, "node") == nodeOf(v, "parent").Right
			},
				insts.NewRun("rotateLeft(parent); parent = node", func(v *insts.Vars) {
					t.rotateLeft(nodeOf(v, "parent"))
					v.Write("parent", nodeOf(v, "node"))
				}),
			),
			insts.NewRun("rotateRight(grandparent)", func(v *insts.Vars) {
				t.rotateRight(nodeOf(v, "grandparent"))
			}),
		}, []insts.Instruction{
			insts.NewIf(insts.DescribeIf("node == parent.left"), func(v *insts.Vars) bool {
				return nodeOf(v, "node") == nodeOf(v, "parent").Left
			},
				insts.NewRun("rotateRight(parent); parent = node", func(v *insts.Vars) {
					t.rotateRight(nodeOf(v, "parent"))
					v.Write("parent", nodeOf(v, "node"))
				}),
			),
			insts.NewRun("rotateLeft(grandparent)", func(v *insts.Vars) {
				t.rotateLeft(nodeOf(v, "grandparent"))
			}),
		}),
		insts.NewRun("parent.color = BLACK; grandparent.color = RED", func(v *insts.Vars) {
			nodeOf(v, "parent").Red = false
			nodeOf(v, "grandparent").Red = true
		}),
	)

	deleteNode := insts.NewMethod("deleteNode", []insts.Arg{
		{Name: "key", Type: insts.ArgNumber},
	}, append(descend("node != null && node.key != key", func(v *insts.Vars) bool {
		node := nodeOf(v, "node")
		return node != nil && node.Key != v.Int("key")
	}),
		insts.NewIf(insts.DescribeIf("node == null"), isNil("node"),
			returnNothing(),
		),
		insts.NewLet(insts.DescribeLet("movedUpNode", "null"), "movedUpNode", nil),
		insts.NewLet(insts.DescribeLet("deletedNodeColor", "node.color"), "deletedRed", func(v *insts.Vars) any {
			return nodeOf(v, "node").Red
		}),
		insts.NewIfElse(insts.DescribeIfElse("node.left == null || node.right == null"), func(v *insts.Vars) bool {
			node := nodeOf(v, "node")
			return node.Left == nil || node.Right == nil
		}, []insts.Instruction{
			insts.NewRun("movedUpNode = deleteNodeWithZeroOrOneChild(node)", set("movedUpNode", func(v *insts.Vars) *Node {
				return t.deleteWithZeroOrOneChild(nodeOf(v, "node"))
			})),
		}, []insts.Instruction{
			insts.NewLet(insts.DescribeLet("successor", "findMinimum(node.right)"), "successor", func(v *insts.Vars) any {
				return minimum(nodeOf(v, "node").Right)
			}),
			insts.NewRun("node.key = successor.key", func(v *insts.Vars) {
				nodeOf(v, "node").Key = nodeOf(v, "successor").Key
			}),
			insts.NewRun("movedUpNode = deleteNodeWithZeroOrOneChild(successor)", func(v *insts.Vars) {
				successor := nodeOf(v, "successor")
				v.Write("deletedRed", successor.Red)
				v.Write("movedUpNode", t.deleteWithZeroOrOneChild(successor))
			}),
		}),
		insts.NewRun("size--", func(v *insts.Vars) {
			treeOf(v).Size--
		}),
		insts.NewIf(insts.DescribeIf("deletedNodeColor == BLACK"), func(v *insts.Vars) bool {
			return !v.Bool("deletedRed")
		},
			insts.NewIfElse(insts.DescribeIfElse("movedUpNode.color == RED"), func(v *insts.Vars) bool {
				return !isBlack(nodeOf(v, "movedUpNode"))
			}, []insts.Instruction{
				insts.NewRun("movedUpNode.color = BLACK", func(v *insts.Vars) {
					nodeOf(v, "movedUpNode").Red = false
				}),
			}, []insts.Instruction{
				insts.NewCall(fixAfterDelete, insts.Bind("node", func(v *insts.Vars) any {
					return nodeOf(v, "movedUpNode")
				}), ""),
				insts.NewIf(insts.DescribeIf("movedUpNode instanceof NilNode"), func(v *insts.Vars) bool {
					node := nodeOf(v, "movedUpNode")
					return node != nil && node.nilNode
				},
					insts.NewRun("replaceParentsChild(movedUpNode.parent, movedUpNode, null)", func(v *insts.Vars) {
						node := nodeOf(v, "movedUpNode")
						t.replaceParentsChild(node.Parent, node, nil)
					}),
				),
			}),
		),
	)...).Public()

	fixDelete := insts.NewMethod(fixAfterDelete, insts.Params("node"),
		insts.NewIf(insts.DescribeIf("node == root"), func(v *insts.Vars) bool {
			return nodeOf(v, "node") == treeOf(v).Root
		},
			insts.NewRun("node.color = BLACK", func(v *insts.Vars) {
				nodeOf(v, "node").Red = false
			}),
			returnNothing(),
		),
		insts.NewLet(insts.DescribeLet("sibling", "getSibling(node)"), "sibling", func(v *insts.Vars) any {
			return siblingOf(nodeOf(v, "node"))
		}),
		insts.NewIf(insts.DescribeIf("sibling.color == RED"), func(v *insts.Vars) bool {
			return !isBlack(nodeOf(v, "sibling"))
		},
			insts.NewRun("handleRedSibling(node, sibling)", func(v *insts.Vars) {
				t.handleRedSibling(nodeOf(v, "node"), nodeOf(v, "sibling"))
			}),
			insts.NewRun("sibling = getSibling(node)", set("sibling", func(v *insts.Vars) *Node {
				return siblingOf(nodeOf(v, "node"))
			})),
		),
		insts.NewIfElse(insts.DescribeIfElse("isBlack(sibling.left) && isBlack(sibling.right)"), func(v *insts.Vars) bool {
			sibling := nodeOf(v, "sibling")
			return isBlack(sibling.Left) && isBlack(sibling.Right)
		}, []insts.Instruction{
			insts.NewRun("sibling.color = RED", func(v *insts.Vars) {
				nodeOf(v, "sibling").Red = true
			}),
			insts.NewIfElse(insts.DescribeIfElse("node.parent.color == RED"), func(v *insts.Vars) bool {
				return nodeOf(v, "node").Parent.Red
			}, []insts.Instruction{
				insts.NewRun("node.parent.color = BLACK", func(v *insts.Vars) {
					nodeOf(v, "node").Parent.Red = false
				}),
			}, []insts.Instruction{
				insts.NewCall(fixAfterDelete, insts.Bind("node", func(v *insts.Vars) any {
					return nodeOf(v, "node").Parent
				}), ""),
			}),
		}, []insts.Instruction{
			insts.NewRun("handleBlackSiblingWithAtLeastOneRedChild(node, sibling)", func(v *insts.Vars) {
				t.handleBlackSiblingWithRedChild(nodeOf(v, "node"), nodeOf(v, "sibling"))
			}),
		}),
	)

	program := insts.NewProgram(Name, []*insts.Field{
		insts.NewField("tree", t),
	}, []*insts.Method{
		searchNode, insertNode, fixInsert, deleteNode, fixDelete,
	})
	program.OnCreateSnapshot(func() (snapshots.Snapshot, error) {
		return snapshots.Snapshot{
			Elements: t.PreOrder(),
		}, nil
	})
	program.OnResolveImport(program.InsertEach("insertNode", "key"))
	return program
}
