package tree

import (
	"fmt"
	"strings"
)

// pathToRoot walks the parent chain upward, prepending each intermediate
// name, and returns the components in root-to-leaf order together with the
// terminal ancestor (the node whose own parent is nil).
func (l *Leaf) pathToRoot() ([]string, Node) {
	var components []string
	parent := l.Parent()
	for parent != nil && parent.Parent() != nil {
		components = append([]string{parent.Name()}, components...)
		parent = parent.Parent()
	}
	return components, parent
}

// Path returns the names leading from the tree root to this leaf, excluding
// the root and the leaf itself.
func (l *Leaf) Path() []string {
	components, _ := l.pathToRoot()
	return components
}

// URL resolves the leaf's absolute URL: the root's URL prefix (guaranteed a
// trailing slash), the path components joined by slashes, then the leaf
// name. Fails with MissingURLPrefixError when the root has no prefix set.
func (l *Leaf) URL() (string, error) {
	components, top := l.pathToRoot()
	root, ok := top.(*Root)
	if !ok || root.URLPrefix() == "" {
		name := ""
		if top != nil {
			name = top.Name()
		}
		return "", &MissingURLPrefixError{Root: name}
	}
	prefix := root.URLPrefix()
	if len(components) == 0 {
		return prefix + l.Name(), nil
	}
	return prefix + strings.Join(components, "/") + "/" + l.Name(), nil
}

// Lookup resolves a slash-separated chain of child names starting at n.
// Empty segments are skipped, so "A/B/x" and "/A/B/x" are equivalent.
func Lookup(n Node, path string) (Node, error) {
	current := n
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		c := current.Children()
		if c == nil {
			return nil, fmt.Errorf("lookup %q: %q has no children", path, current.Name())
		}
		child, ok := c.Get(segment)
		if !ok {
			return nil, fmt.Errorf("lookup %q: %w", segment, ErrNotFound)
		}
		current = child
	}
	return current, nil
}
