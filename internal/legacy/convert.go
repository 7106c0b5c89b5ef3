package legacy

import (
	"encoding/json"
	"fmt"

	"github.com/openobserve/alertquery/internal/tree"
)

// legacyLeaf is the leaf object shared by shapes 0 and 1. Field names map
// 1:1 onto the current model.
type legacyLeaf struct {
	ID         string            `json:"id"`
	Column     string            `json:"column"`
	Operator   string            `json:"operator"`
	Value      json.RawMessage   `json:"value"`
	Values     []json.RawMessage `json:"values"`
	IgnoreCase bool              `json:"ignoreCase"`
}

// ConvertV0 converts a shape-0 flat array into a current-shape tree: one
// root AND group whose children are the array's leaves, in order.
func ConvertV0(raw json.RawMessage) (*tree.Group, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed("", "shape-0 conditions must be an array: %v", err)
	}

	root := tree.NewRoot()
	for i, item := range items {
		leaf, err := convertLeaf(item, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, leaf)
	}
	tree.EnsureIDs(root)
	return root, nil
}

// ConvertV1Backend converts a shape-1 backend-dialect node: an object with
// a single "and" or "or" key holding an array of leaves and nested nodes.
func ConvertV1Backend(raw json.RawMessage) (*tree.Group, error) {
	root, err := convertV1BackendNode(raw, "")
	if err != nil {
		return nil, err
	}
	tree.EnsureIDs(root)
	return root, nil
}

func convertV1BackendNode(raw json.RawMessage, path string) (*tree.Group, error) {
	var node struct {
		And json.RawMessage `json:"and"`
		Or  json.RawMessage `json:"or"`
	}
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, malformed(path, "shape-1 node must be an object: %v", err)
	}

	var op tree.LogicalOp
	var payload json.RawMessage
	var key string
	switch {
	case node.And != nil:
		op, payload, key = tree.LogicalAnd, node.And, "and"
	case node.Or != nil:
		op, payload, key = tree.LogicalOr, node.Or, "or"
	default:
		return nil, malformed(path, "shape-1 node has neither \"and\" nor \"or\"")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, malformed(joinPath(path, key), "value of %q must be an array: %v", key, err)
	}

	group := tree.NewGroup(op)
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", joinPath(path, key), i)
		child, err := convertV1BackendChild(item, itemPath)
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, child)
	}
	return group, nil
}

func convertV1BackendChild(raw json.RawMessage, path string) (tree.Node, error) {
	var probe struct {
		And json.RawMessage `json:"and"`
		Or  json.RawMessage `json:"or"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, malformed(path, "entry must be an object: %v", err)
	}
	if probe.And != nil || probe.Or != nil {
		return convertV1BackendNode(raw, path)
	}
	return convertLeaf(raw, path)
}

// ConvertV1Frontend converts a shape-1 edit-time node: {label, groupId,
// items}, where label is "and"/"or" and groupId is preserved as the group's
// id. Items are converted recursively - nested {label, items} objects become
// groups, everything else becomes a leaf.
func ConvertV1Frontend(raw json.RawMessage) (*tree.Group, error) {
	root, err := convertV1FrontendNode(raw, "")
	if err != nil {
		return nil, err
	}
	tree.EnsureIDs(root)
	return root, nil
}

func convertV1FrontendNode(raw json.RawMessage, path string) (*tree.Group, error) {
	var node struct {
		Label   string          `json:"label"`
		GroupID string          `json:"groupId"`
		Items   json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, malformed(path, "shape-1 node must be an object: %v", err)
	}

	op, err := tree.ParseLogicalOp(node.Label)
	if err != nil {
		return nil, malformed(joinPath(path, "label"), "%v", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(node.Items, &items); err != nil {
		return nil, malformed(joinPath(path, "items"), "\"items\" must be an array: %v", err)
	}

	group := tree.NewGroup(op)
	group.ID = node.GroupID
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", joinPath(path, "items"), i)

		var probe struct {
			Label json.RawMessage `json:"label"`
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, malformed(itemPath, "entry must be an object: %v", err)
		}

		var child tree.Node
		if probe.Label != nil && probe.Items != nil {
			child, err = convertV1FrontendNode(item, itemPath)
		} else {
			child, err = convertLeaf(item, itemPath)
		}
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, child)
	}
	return group, nil
}

// convertLeaf maps a legacy leaf object onto a current-shape condition.
func convertLeaf(raw json.RawMessage, path string) (*tree.Condition, error) {
	var leaf legacyLeaf
	if err := json.Unmarshal(raw, &leaf); err != nil {
		return nil, malformed(path, "leaf must be an object: %v", err)
	}

	cond := &tree.Condition{
		ID:         leaf.ID,
		Column:     leaf.Column,
		Operator:   tree.Operator(leaf.Operator),
		IgnoreCase: leaf.IgnoreCase,
	}
	if len(leaf.Value) > 0 {
		value, err := tree.ParseScalar(leaf.Value)
		if err != nil {
			return nil, malformed(joinPath(path, "value"), "%v", err)
		}
		cond.Value = value
	}
	for i, rawValue := range leaf.Values {
		v, err := tree.ParseScalar(rawValue)
		if err != nil {
			return nil, malformed(fmt.Sprintf("%s[%d]", joinPath(path, "values"), i), "%v", err)
		}
		cond.Values = append(cond.Values, v)
	}
	return cond, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
