// Package scan builds an item tree from a filesystem: directories become
// subtrees, files become leaves.
package scan

import (
	"fmt"
	"sort"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/mirrortree/internal/tree"
)

// FromFS builds a tree rooted at rootName from the contents of fsys.
// Children are added in name order so repeated scans of the same filesystem
// produce identical descriptions. urlPrefix may be empty; URL resolution
// under the returned root then fails until a prefix is set.
func FromFS(fsys billy.Filesystem, rootName, urlPrefix string) (*tree.Root, error) {
	root := tree.NewRoot(rootName)
	if urlPrefix != "" {
		root.SetURLPrefix(urlPrefix)
	}
	if err := scanDir(fsys, "/", root); err != nil {
		return nil, err
	}
	return root, nil
}

func scanDir(fsys billy.Filesystem, dir string, parent tree.Node) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() {
			subtree, err := tree.NewSubtree(entry.Name(), parent)
			if err != nil {
				return err
			}
			if err := parent.Children().Add(subtree); err != nil {
				return err
			}
			if err := scanDir(fsys, fsys.Join(dir, entry.Name()), subtree); err != nil {
				return err
			}
			continue
		}
		leaf, err := tree.NewLeaf(entry.Name(), parent)
		if err != nil {
			return err
		}
		if err := parent.Children().Add(leaf); err != nil {
			return err
		}
	}
	return nil
}
