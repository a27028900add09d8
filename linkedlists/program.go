package linkedlists

import (
	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/snapshots"
)

const Name = "linkedlist"

func listOf(v *insts.Vars) *List {
	return insts.Get[*List](v, "list")
}

func nodeOf(v *insts.Vars, name string) *Node {
	return insts.Get[*Node](v, name)
}

func inRange(inclusive bool) insts.Predicate {
	return func(v *insts.Vars) bool {
		index := v.Int("index")
		size := listOf(v).Size
		if inclusive {
			return index >= 0 && index <= size
		}
		return index >= 0 && index < size
	}
}

func not(pred insts.Predicate) insts.Predicate {
	return func(v *insts.Vars) bool {
		return !pred(v)
	}
}

// walkTo advances the variable name index-offset times from the head.
func walkTo(name string, offset int) []insts.Instruction {
	return []insts.Instruction{
		insts.NewLet("", name, func(v *insts.Vars) any {
			return listOf(v).Head
		}),
		insts.NewForI(
			insts.DescribeForI("i", "0", "i < index"+describeOffset(offset), "1"),
			"i", nil,
			func(v *insts.Vars, i int) bool {
				return i < v.Int("index")+offset
			},
			nil,
			insts.NewRun(name+" = "+name+".next", func(v *insts.Vars) {
				v.Write(name, nodeOf(v, name).Next)
			}),
		),
	}
}

func describeOffset(offset int) string {
	if offset < 0 {
		return " - 1"
	}
	return ""
}

func (l *List) Program() *insts.Program {
	sizeInc := insts.NewRun("size++", func(v *insts.Vars) {
		listOf(v).Size++
	})

	add := insts.NewMethod("add", []insts.Arg{
		{Name: "value", Type: insts.ArgNumber},
	},
		insts.NewLet(insts.DescribeLet("node", "new Node(value)"), "node", func(v *insts.Vars) any {
			return &Node{
				Value: v.Int("value"),
			}
		}),
		insts.NewIfElse(insts.DescribeIfElse("head == null"), func(v *insts.Vars) bool {
			return listOf(v).Head == nil
		}, []insts.Instruction{
			insts.NewRun("head = node", func(v *insts.Vars) {
				listOf(v).Head = nodeOf(v, "node")
			}),
		}, []insts.Instruction{
			insts.NewLet(insts.DescribeLet("cur", "head"), "cur", func(v *insts.Vars) any {
				return listOf(v).Head
			}),
			insts.NewWhile(insts.DescribeWhile("cur.next != null"), func(v *insts.Vars) bool {
				return nodeOf(v, "cur").Next != nil
			},
				insts.NewRun("cur = cur.next", func(v *insts.Vars) {
					v.Write("cur", nodeOf(v, "cur").Next)
				}),
			),
			insts.NewRun("cur.next = node", func(v *insts.Vars) {
				nodeOf(v, "cur").Next = nodeOf(v, "node")
			}),
		}),
		sizeInc,
	).Public()

	addIndex := insts.NewMethod("addIndex", []insts.Arg{
		{Name: "index", Type: insts.ArgNumber},
		{Name: "value", Type: insts.ArgNumber},
	}, append([]insts.Instruction{
		insts.NewIf(insts.DescribeIf("index < 0 || index > size"), not(inRange(true)),
			insts.NewReturn(func(*insts.Vars) any {
				return false
			}),
		),
		insts.NewLet(insts.DescribeLet("node", "new Node(value)"), "node", func(v *insts.Vars) any {
			return &Node{
				Value: v.Int("value"),
			}
		}),
		insts.NewIfElse(insts.DescribeIfElse("index == 0"), func(v *insts.Vars) bool {
			return v.Int("index") == 0
		}, []insts.Instruction{
			insts.NewRun("node.next = head; head = node", func(v *insts.Vars) {
				list := listOf(v)
				node := nodeOf(v, "node")
				node.Next = list.Head
				list.Head = node
			}),
		}, append(walkTo("prev", -1),
			insts.NewRun("node.next = prev.next; prev.next = node", func(v *insts.Vars) {
				prev := nodeOf(v, "prev")
				node := nodeOf(v, "node")
				node.Next = prev.Next
				prev.Next = node
			}),
		)),
		sizeInc,
		insts.NewReturn(func(*insts.Vars) any {
			return true
		}),
	})...).Public()

	remove := insts.NewMethod("remove", []insts.Arg{
		{Name: "index", Type: insts.ArgNumber},
	},
		insts.NewIf(insts.DescribeIf("index < 0 || index >= size"), not(inRange(false)),
			insts.NewReturn(nil),
		),
		insts.NewLet(insts.DescribeLet("removed", "null"), "removed", nil),
		insts.NewIfElse(insts.DescribeIfElse("index == 0"), func(v *insts.Vars) bool {
			return v.Int("index") == 0
		}, []insts.Instruction{
			insts.NewRun("removed = head; head = head.next", func(v *insts.Vars) {
				list := listOf(v)
				v.Write("removed", list.Head)
				list.Head = list.Head.Next
			}),
		}, append(walkTo("prev", -1),
			insts.NewRun("removed = prev.next; prev.next = removed.next", func(v *insts.Vars) {
				prev := nodeOf(v, "prev")
				v.Write("removed", prev.Next)
				prev.Next = prev.Next.Next
			}),
		)),
		insts.NewRun("size--", func(v *insts.Vars) {
			listOf(v).Size--
		}),
		insts.NewReturn(func(v *insts.Vars) any {
			return nodeOf(v, "removed").Value
		}),
	).Public()

	get := insts.NewMethod("get", []insts.Arg{
		{Name: "index", Type: insts.ArgNumber},
	}, append([]insts.Instruction{
		insts.NewIf(insts.DescribeIf("index < 0 || index >= size"), not(inRange(false)),
			insts.NewReturn(nil),
		),
	}, append(walkTo("cur", 0),
		insts.NewReturn(func(v *insts.Vars) any {
			return nodeOf(v, "cur").Value
		}),
	)...)...).Public()

	contains := insts.NewMethod("contains", []insts.Arg{
		{Name: "value", Type: insts.ArgNumber},
	},
		insts.NewLet(insts.DescribeLet("cur", "head"), "cur", func(v *insts.Vars) any {
			return listOf(v).Head
		}),
		insts.NewWhile(insts.DescribeWhile("cur != null"), func(v *insts.Vars) bool {
			return nodeOf(v, "cur") != nil
		},
			insts.NewIf(insts.DescribeIf("cur.value == value"), func(v *insts.Vars) bool {
				return nodeOf(v, "cur").Value == v.Int("value")
			},
				insts.NewReturn(func(*insts.Vars) any {
					return true
				}),
			),
			insts.NewRun("cur = cur.next", func(v *insts.Vars) {
				v.Write("cur", nodeOf(v, "cur").Next)
			}),
		),
		insts.NewReturn(func(*insts.Vars) any {
			return false
		}),
	).Public()

	clearAll := insts.NewMethod("clear", nil,
		insts.NewRun("head = null; size = 0", func(v *insts.Vars) {
			list := listOf(v)
			list.Head = nil
			list.Size = 0
		}),
	).Public()

	program := insts.NewProgram(Name, []*insts.Field{
		insts.NewField("list", l),
	}, []*insts.Method{
		add, addIndex, remove, get, contains, clearAll,
	})
	program.OnCreateSnapshot(func() (snapshots.Snapshot, error) {
		return snapshots.Snapshot{
			Elements: l.Values(),
		}, nil
	})
	program.OnResolveImport(program.InsertEach("add", "value"))
	return program
}
