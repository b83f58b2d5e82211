package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned (wrapped with the offending name) by Remove and
// Pop when no child is indexed under the resolved name.
var ErrNotFound = errors.New("no child with that name")

// ErrCycle is returned by Move when the requested parent is the node itself
// or one of its descendants.
var ErrCycle = errors.New("move would make the node its own ancestor")

// IncompleteDescriptionError reports a description that is missing one or
// more keys required to build a node of the given kind.
type IncompleteDescriptionError struct {
	Kind    string
	Missing []string
}

func (e *IncompleteDescriptionError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("cannot build %s from description, missing keys: %s",
		e.Kind, strings.Join(missing, ", "))
}

// MissingParentError reports a Subtree or Leaf constructed without a parent.
type MissingParentError struct {
	Kind string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("a %s must have a parent", e.Kind)
}

// MissingURLPrefixError reports a URL resolution against a root that has no
// URL prefix configured.
type MissingURLPrefixError struct {
	Root string
}

func (e *MissingURLPrefixError) Error() string {
	return fmt.Sprintf("tree root %q has no URL prefix set, cannot resolve URL", e.Root)
}

// InvalidChildError reports an attempt to add a child that cannot be
// indexed: a nil node or a node with an empty name.
type InvalidChildError struct {
	Value any
}

func (e *InvalidChildError) Error() string {
	return fmt.Sprintf("cannot add child %v: a child must have a name", e.Value)
}

// InvalidChildSpecError reports a container probe that is neither a name
// string nor a named node.
type InvalidChildSpecError struct {
	Value any
}

func (e *InvalidChildSpecError) Error() string {
	return fmt.Sprintf("%v (%T) is neither a child name nor a named node", e.Value, e.Value)
}
