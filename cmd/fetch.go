package cmd

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/mirrortree/internal/fetch"
)

var fetchDest string

func init() {
	fetchCmd.Flags().StringVarP(&fetchDest, "dest", "d", "", "Extraction directory (default: mirror dest, else .)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [leaf-path]",
	Short: "Download a leaf's artifact and unpack it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, mirror, err := loadTree()
		if err != nil {
			return err
		}
		leaf, err := findLeaf(root, args[0])
		if err != nil {
			return err
		}
		dest := fetchDest
		if dest == "" {
			dest = mirror.Dest
		}
		if dest == "" {
			dest = "."
		}
		url, err := leaf.URL()
		if err != nil {
			return err
		}
		fmt.Printf("Fetching %s\n", url)
		hook := &fetch.Tracker{OnUpdate: printProgress}
		if err := fetch.DownloadAndUnpack(cmd.Context(), url, osfs.New(dest), "/", hook); err != nil {
			fmt.Println()
			return err
		}
		fmt.Printf("\nUnpacked into %s\n", dest)
		return nil
	},
}

func printProgress(done, total int64) {
	if total > 0 {
		fmt.Printf("\r%6.1f%% (%d/%d bytes)", 100*float64(done)/float64(total), done, total)
		return
	}
	fmt.Printf("\r%d bytes", done)
}
