package tree

import "github.com/google/uuid"

// EnsureIDs walks the tree rooted at n and assigns a fresh unique id to
// every node that is missing one. Existing ids are preserved and children
// are never reordered, so the call is idempotent: a second pass over the
// same tree changes nothing.
//
// Returns the number of ids assigned.
func EnsureIDs(n Node) int {
	assigned := 0
	Walk(n, func(node Node) bool {
		switch v := node.(type) {
		case *Condition:
			if v.ID == "" {
				v.ID = newID()
				assigned++
			}
		case *Group:
			if v.ID == "" {
				v.ID = newID()
				assigned++
			}
		}
		return true
	})
	return assigned
}

// newID generates a node id. UUIDs keep ids unique across trees as well as
// within one, which matters when groups are copied between alerts.
func newID() string {
	return uuid.NewString()
}
