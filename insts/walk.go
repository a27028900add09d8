package insts

// Walk visits root and its descendants depth-first, in source order.
// Returning false from fn skips the children of that node.
func Walk(root Instruction, fn func(Instruction) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, fn)
	}
}

func Find(root Instruction, id string) Instruction {
	var ret Instruction
	Walk(root, func(inst Instruction) bool {
		if ret != nil {
			return false
		}
		if inst.ID() == id {
			ret = inst
			return false
		}
		return true
	})
	return ret
}
