package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url [leaf-path]",
	Short: "Resolve a leaf's absolute URL from the root's URL prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := loadTree()
		if err != nil {
			return err
		}
		leaf, err := findLeaf(root, args[0])
		if err != nil {
			return err
		}
		url, err := leaf.URL()
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}
