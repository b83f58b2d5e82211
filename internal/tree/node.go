package tree

import (
	"fmt"
	"strings"
	"sync"
)

// Node kind names, used in error reporting and description building.
const (
	KindRoot    = "root"
	KindSubtree = "subtree"
	KindLeaf    = "leaf"
)

// Node is the capability set shared by Root, Subtree and Leaf. The set of
// implementations is closed: the unexported ref method keeps outside
// packages from adding variants.
type Node interface {
	// Name returns the node's current name.
	Name() string
	// SetName renames the node. If the node is indexed in a parent
	// container the index entry moves atomically with the name field.
	SetName(name string)
	// Parent returns the node's parent, or nil for a Root. The reference
	// is non-owning and is used only for upward traversal and for
	// keeping the parent's index in sync.
	Parent() Node
	// Children returns the node's child container, or nil for a Leaf.
	Children() *Container

	ref() *base
}

// base carries the name and parent shared by every node kind. The mutex
// guards only these two fields; child bookkeeping lives in Container.
type base struct {
	mu     sync.RWMutex
	name   string
	parent Node
}

func (b *base) ref() *base { return b }

func (b *base) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *base) Parent() Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parent
}

// storeName updates the name field only. Renames of indexed nodes go
// through Container.rename, which calls this inside its critical section.
func (b *base) storeName(name string) {
	b.mu.Lock()
	b.name = name
	b.mu.Unlock()
}

func (b *base) storeParent(p Node) {
	b.mu.Lock()
	b.parent = p
	b.mu.Unlock()
}

// SetName renames the node, keeping the parent's container index in sync.
// The old name is captured before any mutation so the container can locate
// the existing entry.
func (b *base) SetName(name string) {
	old := b.Name()
	if old == name {
		return
	}
	if p := b.Parent(); p != nil {
		if pc := p.Children(); pc != nil && pc.rename(old, name) {
			return
		}
	}
	// Root, detached node, or node not (yet) indexed by its parent.
	b.storeName(name)
}

// Root is the top level of an item tree. It has no parent and holds the URL
// prefix used to resolve every descendant leaf's URL.
type Root struct {
	base
	children *Container

	prefixMu  sync.RWMutex
	urlPrefix string
}

// NewRoot returns a root with no URL prefix set. URL resolution under such
// a root fails until SetURLPrefix is called.
func NewRoot(name string) *Root {
	r := &Root{children: NewContainer()}
	r.name = name
	return r
}

// Children implements Node.
func (r *Root) Children() *Container { return r.children }

// URLPrefix returns the normalized URL prefix, or "" if none is set.
func (r *Root) URLPrefix() string {
	r.prefixMu.RLock()
	defer r.prefixMu.RUnlock()
	return r.urlPrefix
}

// SetURLPrefix sets the URL prefix, normalizing a non-empty value to end
// with exactly one trailing slash. An empty value clears the prefix.
func (r *Root) SetURLPrefix(prefix string) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	r.prefixMu.Lock()
	r.urlPrefix = prefix
	r.prefixMu.Unlock()
}

// Subtree is an internal node. It always has a parent and owns a container
// of children.
type Subtree struct {
	base
	children *Container
}

// NewSubtree returns a subtree attached to parent. The parent is mandatory;
// the caller is responsible for also indexing the subtree in the parent's
// container (the codec and scanner do this).
func NewSubtree(name string, parent Node) (*Subtree, error) {
	if parent == nil {
		return nil, &MissingParentError{Kind: KindSubtree}
	}
	s := &Subtree{children: NewContainer()}
	s.name = name
	s.parent = parent
	return s, nil
}

// Children implements Node.
func (s *Subtree) Children() *Container { return s.children }

// Leaf is a terminal node: a name, a parent, no children, resolvable to a
// path and URL.
type Leaf struct {
	base
}

// NewLeaf returns a leaf attached to parent. The parent is mandatory.
func NewLeaf(name string, parent Node) (*Leaf, error) {
	if parent == nil {
		return nil, &MissingParentError{Kind: KindLeaf}
	}
	l := &Leaf{}
	l.name = name
	l.parent = parent
	return l, nil
}

// Children implements Node. A leaf never exposes a child container.
func (l *Leaf) Children() *Container { return nil }

// Move reparents n under newParent, updating both containers. The old
// parent's index entry is removed before the new one is added, so n is never
// double-indexed. Moves that would make n its own ancestor are rejected with
// ErrCycle. Roots cannot be moved.
func Move(n Node, newParent Node) error {
	if isNilNode(n) || isNilNode(newParent) {
		return &InvalidChildSpecError{Value: n}
	}
	nc := newParent.Children()
	if nc == nil {
		return fmt.Errorf("cannot move %q under a leaf", n.Name())
	}
	old := n.Parent()
	if old == nil {
		return fmt.Errorf("cannot move tree root %q", n.Name())
	}
	for p := newParent; p != nil; p = p.Parent() {
		if p == n {
			return fmt.Errorf("move %q: %w", n.Name(), ErrCycle)
		}
	}
	if oc := old.Children(); oc != nil {
		oc.popNode(n)
	}
	n.ref().storeParent(newParent)
	return nc.Add(n)
}
