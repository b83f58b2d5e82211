package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/mirrortree/api"
	"github.com/agentic-research/mirrortree/internal/config"
	"github.com/agentic-research/mirrortree/internal/tree"
)

var (
	manifestPath string
	configPath   string
	mirrorName   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "Path to a tree description (.json/.yaml)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a mirrortree.hcl config")
	rootCmd.PersistentFlags().StringVar(&mirrorName, "mirror", "", "Mirror block to use from the config (default: first)")
}

var rootCmd = &cobra.Command{
	Use:   "mirrortree",
	Short: "Model mirrored release-artifact trees and resolve their URLs",
}

// loadMirror picks the manifest to read: an explicit --manifest wins,
// otherwise the selected mirror block of --config.
func loadMirror() (*config.Mirror, error) {
	if manifestPath != "" {
		return &config.Mirror{Manifest: manifestPath}, nil
	}
	if configPath == "" {
		return nil, fmt.Errorf("either --manifest or --config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	m, ok := cfg.Mirror(mirrorName)
	if !ok {
		return nil, fmt.Errorf("no mirror %q in %s", mirrorName, configPath)
	}
	return m, nil
}

// loadTree builds the tree for the selected mirror, applying the config's
// url_prefix override when present.
func loadTree() (*tree.Root, *config.Mirror, error) {
	m, err := loadMirror()
	if err != nil {
		return nil, nil, err
	}
	desc, err := api.DecodeFile(m.Manifest)
	if err != nil {
		return nil, nil, err
	}
	root, err := tree.FromDescription(desc)
	if err != nil {
		return nil, nil, err
	}
	if m.URLPrefix != "" {
		root.SetURLPrefix(m.URLPrefix)
	}
	return root, m, nil
}

// findLeaf resolves a slash-separated path under root to a leaf.
func findLeaf(root *tree.Root, path string) (*tree.Leaf, error) {
	n, err := tree.Lookup(root, path)
	if err != nil {
		return nil, err
	}
	leaf, ok := n.(*tree.Leaf)
	if !ok {
		return nil, fmt.Errorf("%q is not a leaf", path)
	}
	return leaf, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
