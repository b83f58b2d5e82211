package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentic-research/mirrortree/api"
	"github.com/agentic-research/mirrortree/internal/tree"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Re-emit the tree as a JSON description")
	rootCmd.AddCommand(showCmd)
}

var dirColor = color.New(color.FgCyan, color.Bold)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the mirror tree from its manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := loadTree()
		if err != nil {
			return err
		}
		if showJSON {
			fmt.Println(string(api.EncodeJSON(tree.ToDescription(root))))
			return nil
		}
		if prefix := root.URLPrefix(); prefix != "" {
			fmt.Printf("%s (%s)\n", dirColor.Sprint(root.Name()), prefix)
		} else {
			fmt.Println(dirColor.Sprint(root.Name()))
		}
		printChildren(root, 1)
		return nil
	},
}

func printChildren(n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, child := range n.Children().All() {
		if child.Children() != nil {
			fmt.Printf("%s%s\n", indent, dirColor.Sprint(child.Name()+"/"))
			printChildren(child, depth+1)
			continue
		}
		fmt.Printf("%s%s\n", indent, child.Name())
	}
}
