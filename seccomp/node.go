package seccomp

// noNode is the nil sentinel for arena indices. Go has no manual
// memory management, so the chain tree is an arena of nodes addressed
// by index rather than by pointer, per spec.md §5/§9's guidance for a
// garbage-collected implementation.
const noNode int32 = -1

// node is one chain-tree predicate. next{True,False} point at a
// successor subtree's level-list head; level{Prev,Next} link siblings
// evaluated at the same decision point. parent/parentBranch are a
// non-owning back-reference recording which branch of which node
// holds this level's head — meaningful only on a level's head node
// (levelPrev == noNode) — so collapse/remove never needs a separate
// upward search.
type node struct {
	pred Predicate

	nextTrue, nextFalse  int32
	levelPrev, levelNext int32

	actTFlag, actFFlag bool
	actT, actF         Action

	parent       int32
	parentBranch bool
}

// isLeaf reports whether branch b of n is a leaf: no successor and a
// leaf action is set.
func (n *node) isLeaf(trueBranch bool) bool {
	if trueBranch {
		return n.nextTrue == noNode && n.actTFlag
	}
	return n.nextFalse == noNode && n.actFFlag
}

func (n *node) next(trueBranch bool) int32 {
	if trueBranch {
		return n.nextTrue
	}
	return n.nextFalse
}

func (n *node) setNext(trueBranch bool, idx int32) {
	if trueBranch {
		n.nextTrue = idx
	} else {
		n.nextFalse = idx
	}
}

func (n *node) leafAction(trueBranch bool) (Action, bool) {
	if trueBranch {
		return n.actT, n.actTFlag
	}
	return n.actF, n.actFFlag
}

func (n *node) setLeaf(trueBranch bool, a Action) {
	if trueBranch {
		n.actTFlag, n.actT = true, a
	} else {
		n.actFFlag, n.actF = true, a
	}
}

// arena is a Db's node storage: a growable slice addressed by index,
// with a free list for reclaimed slots.
type arena struct {
	nodes []node
	free  []int32

	// maxNodes caps the arena's total live node count; 0 means
	// unbounded. It is the one allocation-failure trigger available to
	// a garbage-collected implementation (see DESIGN.md).
	maxNodes int
}

func (a *arena) liveCount() int {
	return len(a.nodes) - len(a.free)
}

func (a *arena) alloc() (int32, error) {
	if a.maxNodes > 0 && a.liveCount() >= a.maxNodes {
		return noNode, outOfMemory("arena: node limit exceeded")
	}
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[idx] = node{nextTrue: noNode, nextFalse: noNode, levelPrev: noNode, levelNext: noNode, parent: noNode}
		return idx, nil
	}
	a.nodes = append(a.nodes, node{nextTrue: noNode, nextFalse: noNode, levelPrev: noNode, levelNext: noNode, parent: noNode})
	return int32(len(a.nodes) - 1), nil
}

func (a *arena) at(idx int32) *node {
	return &a.nodes[idx]
}

// free1 reclaims a single node's index. It does not touch the node's
// neighbors; callers must unlink before freeing.
func (a *arena) free1(idx int32) {
	if idx == noNode {
		return
	}
	a.free = append(a.free, idx)
}

// freeSubtree reclaims root and every node reachable from it — both
// branch subtrees and any level-siblings root owns (root is assumed to
// be a level's head; siblings are reachable only through it). Uses an
// explicit stack rather than recursion, per spec.md §9's guidance
// ("rewrite as explicit work-stacks over the arena to avoid stack
// overflow on deep chains").
func (a *arena) freeSubtree(root int32) {
	if root == noNode {
		return
	}
	stack := []int32{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.at(idx)
		if n.levelNext != noNode {
			stack = append(stack, n.levelNext)
		}
		if n.nextTrue != noNode {
			stack = append(stack, n.nextTrue)
		}
		if n.nextFalse != noNode {
			stack = append(stack, n.nextFalse)
		}
		a.free1(idx)
	}
}

// countSubtree counts every node reachable from root the same way
// freeSubtree walks them, used to keep Entry.NodeCount exact (I4).
func (a *arena) countSubtree(root int32) int {
	if root == noNode {
		return 0
	}
	count := 0
	stack := []int32{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		n := a.at(idx)
		if n.levelNext != noNode {
			stack = append(stack, n.levelNext)
		}
		if n.nextTrue != noNode {
			stack = append(stack, n.nextTrue)
		}
		if n.nextFalse != noNode {
			stack = append(stack, n.nextFalse)
		}
	}
	return count
}

// actCheck reports whether every reachable leaf action inside the
// subtree rooted at root equals action (spec.md §4.3's act_check),
// walked iteratively for the same reason as freeSubtree. A branch with
// neither leaf nor successor (the empty side of a normalized NE/LT/LE
// node) has no leaf action and is treated as vacuously satisfied.
func (a *arena) actCheck(root int32, action Action) bool {
	if root == noNode {
		return true
	}
	stack := []int32{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.at(idx)
		for _, b := range [...]bool{true, false} {
			if n.isLeaf(b) {
				if act, _ := n.leafAction(b); act != action {
					return false
				}
			} else if nxt := n.next(b); nxt != noNode {
				stack = append(stack, nxt)
			}
		}
		if n.levelNext != noNode {
			stack = append(stack, n.levelNext)
		}
	}
	return true
}
