// mrdb is the record merge and deduplication CLI.
//
// Usage:
//
//	mrdb merge -i dataset.json [-c mrdb.yaml] [-o merged.json] [--report report.json]
//	mrdb validate -i dataset.json [-c mrdb.yaml]
//	mrdb classify -i dataset.json | --fields "Status,Completion Date"
//	mrdb report list
//	mrdb report show <run-id>
//	mrdb serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mrdb",
	Short: "Merge and deduplicate semi-structured action-request records",
	Long: "mrdb groups duplicate records by a primary-key field, resolves\n" +
		"conflicting values with kind-aware strategies, and emits merged\n" +
		"records carrying a full audit trail.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
