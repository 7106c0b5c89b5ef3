package tree

// UpdateGroup searches the tree depth-first for a group whose id matches
// updated.ID and replaces it in its parent's children (or swaps the root's
// contents when the root itself matches). Returns true when a replacement
// happened.
//
// A miss is not an error: the UI may issue updates for groups that were
// removed by an earlier edit, and those must be silent no-ops.
func UpdateGroup(root *Group, updated *Group) bool {
	if root == nil || updated == nil || updated.ID == "" {
		return false
	}
	if root.ID == updated.ID {
		*root = *updated
		return true
	}
	return replaceIn(root, updated)
}

func replaceIn(parent *Group, updated *Group) bool {
	for i, child := range parent.Children {
		if NodeID(child) == updated.ID {
			parent.Children[i] = updated
			return true
		}
		if g, ok := child.(*Group); ok {
			if replaceIn(g, updated) {
				return true
			}
		}
	}
	return false
}

// RemoveConditionGroup searches the tree depth-first for the node (leaf or
// group) with the given id and removes it from its parent's children.
// Returns true when a node was removed.
//
// A group emptied by the removal is left in place: it compiles to a no-op
// predicate, and collapsing it automatically would surprise a user who is
// mid-edit. The root group itself is never removed.
func RemoveConditionGroup(root *Group, targetID string) bool {
	if root == nil || targetID == "" {
		return false
	}
	return removeFrom(root, targetID)
}

func removeFrom(parent *Group, targetID string) bool {
	for i, child := range parent.Children {
		if NodeID(child) == targetID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
		if g, ok := child.(*Group); ok {
			if removeFrom(g, targetID) {
				return true
			}
		}
	}
	return false
}

// FindNode returns the node with the given id, or nil when absent.
func FindNode(root *Group, id string) Node {
	if root == nil || id == "" {
		return nil
	}
	var found Node
	Walk(root, func(n Node) bool {
		if NodeID(n) == id {
			found = n
			return false
		}
		return true
	})
	return found
}
