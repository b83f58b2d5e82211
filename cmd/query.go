package cmd

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/mirrortree/api"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [jsonpath]",
	Short: "Run a JSONPath query against the raw manifest",
	Long: `Run a JSONPath query against the manifest before tree reconstruction,
e.g. mirrortree query '$..items[?(@.name == "release.tar.gz")]'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMirror()
		if err != nil {
			return err
		}
		desc, err := api.DecodeFile(m.Manifest)
		if err != nil {
			return err
		}
		x, err := jp.ParseString(args[0])
		if err != nil {
			return fmt.Errorf("invalid jsonpath %q: %w", args[0], err)
		}
		for _, result := range x.Get(map[string]any(desc)) {
			fmt.Println(oj.JSON(result, &ojg.Options{Sort: true}))
		}
		return nil
	},
}
