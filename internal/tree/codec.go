package tree

import (
	"github.com/agentic-research/mirrortree/api"
)

// FromDescription reconstructs a tree from its description. The concrete
// kind of each child is chosen structurally, not by a type tag: a child
// description carrying an "items" sequence (even an empty one) becomes a
// Subtree, any other becomes a Leaf. Children are built only after their
// parent exists, since Subtree and Leaf construction requires the parent up
// front.
func FromDescription(d api.Description) (*Root, error) {
	name, err := requireName(KindRoot, d)
	if err != nil {
		return nil, err
	}
	root := NewRoot(name)
	if prefix, ok := d.URLPrefix(); ok {
		root.SetURLPrefix(prefix)
	}
	items, ok, err := d.Items()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := buildItems(root, items); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func buildItems(parent Node, items []api.Description) error {
	for _, item := range items {
		child, err := buildChild(item, parent)
		if err != nil {
			return err
		}
		if err := parent.Children().Add(child); err != nil {
			return err
		}
	}
	return nil
}

func buildChild(d api.Description, parent Node) (Node, error) {
	items, hasItems, err := d.Items()
	if err != nil {
		return nil, err
	}
	kind := KindLeaf
	if hasItems {
		kind = KindSubtree
	}
	// Unreachable through FromDescription, which always passes the node it
	// just built, but guarded all the same.
	if parent == nil {
		return nil, &MissingParentError{Kind: kind}
	}
	name, err := requireName(kind, d)
	if err != nil {
		return nil, err
	}
	if !hasItems {
		return NewLeaf(name, parent)
	}
	subtree, err := NewSubtree(name, parent)
	if err != nil {
		return nil, err
	}
	if err := buildItems(subtree, items); err != nil {
		return nil, err
	}
	return subtree, nil
}

// requireName validates the one key every node kind needs. A present but
// non-string name counts as missing.
func requireName(kind string, d api.Description) (string, error) {
	name, ok := d.Name()
	if !ok {
		return "", &IncompleteDescriptionError{Kind: kind, Missing: []string{api.KeyName}}
	}
	return name, nil
}

// ToDescription renders a node and its descendants as a description,
// children in container (insertion) order. A Leaf description carries no
// "items" key so that a round-tripped leaf is again classified as a leaf;
// container nodes always carry one, even when empty.
func ToDescription(n Node) api.Description {
	d := api.Description{api.KeyName: n.Name()}
	if root, ok := n.(*Root); ok {
		if prefix := root.URLPrefix(); prefix != "" {
			d[api.KeyURLPrefix] = prefix
		}
	}
	if c := n.Children(); c != nil {
		d[api.KeyItems] = describeItems(c)
	}
	return d
}

func describeItems(c *Container) []any {
	children := c.All()
	items := make([]any, 0, len(children))
	for _, child := range children {
		items = append(items, map[string]any(ToDescription(child)))
	}
	return items
}
