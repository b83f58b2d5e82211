package tree

import (
	"fmt"
	"reflect"
	"sync"
)

// Container is the name-indexed collection of a node's direct children.
// It is the single source of truth for "does a child with name X exist":
// renames go through the container so an entry can never survive under a
// stale key.
//
// All operations are serialized per container instance, so sibling subtrees
// under different parents can be mutated without contention.
type Container struct {
	mu       sync.RWMutex
	children map[string]Node
	order    []string // insertion order of names, kept in sync with children
}

// NewContainer returns an empty child container.
func NewContainer() *Container {
	return &Container{children: make(map[string]Node)}
}

// Add indexes the node under its name. An existing entry with the same name
// is silently overwritten and keeps its insertion position; callers that
// care about collisions must probe with Contains first.
func (c *Container) Add(n Node) error {
	if isNilNode(n) || n.Name() == "" {
		return &InvalidChildError{Value: n}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insert(n.Name(), n)
	return nil
}

// AddAll adds the nodes in order. A failure on one node does not roll back
// nodes added before it; the error reports the first unusable node.
func (c *Container) AddAll(nodes []Node) error {
	for _, n := range nodes {
		if err := c.Add(n); err != nil {
			return err
		}
	}
	return nil
}

// insert must be called with c.mu held.
func (c *Container) insert(name string, n Node) {
	if _, exists := c.children[name]; !exists {
		c.order = append(c.order, name)
	}
	c.children[name] = n
}

// Get looks up a child by name.
func (c *Container) Get(name string) (Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.children[name]
	return n, ok
}

// Contains reports whether a child is indexed under the given name string or
// under the name of the given node. Any other probe value, including nil,
// reports false rather than failing.
func (c *Container) Contains(v any) bool {
	name, err := resolveName(v)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.children[name]
	return ok
}

// Remove deletes the child resolved from the given name string or named
// node. It returns an error wrapping ErrNotFound if no such child exists and
// an InvalidChildSpecError if the argument is neither a string nor a node.
func (c *Container) Remove(v any) error {
	_, err := c.Pop(v)
	return err
}

// Pop removes and returns the child resolved from the given name string or
// named node, with the same failure rules as Remove.
func (c *Container) Pop(v any) (Node, error) {
	name, err := resolveName(v)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.children[name]
	if !ok {
		return nil, fmt.Errorf("pop %q: %w", name, ErrNotFound)
	}
	c.drop(name)
	return n, nil
}

// popNode removes the entry for n only if n itself is still the node indexed
// under its name. A node displaced by a same-named overwrite is therefore not
// confused with its replacement. Used by Move.
func (c *Container) popNode(n Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := n.Name()
	if existing, ok := c.children[name]; ok && existing == n {
		c.drop(name)
	}
}

// drop must be called with c.mu held.
func (c *Container) drop(name string) {
	delete(c.children, name)
	for i, existing := range c.order {
		if existing == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the container.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = make(map[string]Node)
	c.order = c.order[:0]
}

// Len returns the number of children.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.children)
}

// All returns a snapshot of the children in insertion order.
func (c *Container) All() []Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes := make([]Node, 0, len(c.order))
	for _, name := range c.order {
		nodes = append(nodes, c.children[name])
	}
	return nodes
}

// rename re-indexes the entry under oldName as newName, keeping its
// insertion position, and updates the node's own name field inside the same
// critical section. A concurrent reader therefore never observes the child
// under neither name, nor under both. Reports whether an entry was moved.
//
// Invoked by Node.SetName; not part of the public surface.
func (c *Container) rename(oldName, newName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.children[oldName]
	if !ok {
		return false
	}
	delete(c.children, oldName)
	n.ref().storeName(newName)
	c.children[newName] = n
	for i, existing := range c.order {
		if existing == oldName {
			c.order[i] = newName
			break
		}
	}
	return true
}

// isNilNode reports whether n is nil or a typed-nil pointer. Both would
// panic on any method call, so they must be caught before Name is read.
func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// resolveName maps a container argument to a lookup name: strings resolve to
// themselves, nodes resolve to their name.
func resolveName(v any) (string, error) {
	switch arg := v.(type) {
	case string:
		return arg, nil
	case Node:
		if isNilNode(arg) {
			return "", &InvalidChildSpecError{Value: v}
		}
		return arg.Name(), nil
	default:
		return "", &InvalidChildSpecError{Value: v}
	}
}
