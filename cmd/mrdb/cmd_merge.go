package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/david3xu/mining-reliability-db-sub000/internal/display"
	"github.com/david3xu/mining-reliability-db-sub000/internal/graph"
	"github.com/david3xu/mining-reliability-db-sub000/internal/wiring"
)

var mergeFlags struct {
	input     string
	config    string
	output    string
	report    string
	handoff   string
	storePath string
	noStore   bool
	keyField  string
	workers   int
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge duplicate records in a dataset",
	Long: `Merge groups records by the key field, resolves conflicting values per
field kind, and writes merged records plus an audit report. Every run is
persisted to the run store unless --no-store is given.`,
	RunE: runMerge,
}

func init() {
	f := mergeCmd.Flags()
	f.StringVarP(&mergeFlags.input, "input", "i", "", "Dataset JSON file (required)")
	f.StringVarP(&mergeFlags.config, "config", "c", "", "Config YAML file")
	f.StringVarP(&mergeFlags.output, "output", "o", "", "Write merged records to this file")
	f.StringVar(&mergeFlags.report, "report", "", "Write the audit report JSON to this file")
	f.StringVar(&mergeFlags.handoff, "handoff", "", "Write the downstream loader payload to this file")
	f.StringVar(&mergeFlags.storePath, "store", "", "Run store path (default from config)")
	f.BoolVar(&mergeFlags.noStore, "no-store", false, "Skip persisting the run")
	f.StringVar(&mergeFlags.keyField, "key-field", "", "Override the duplicate-grouping key field")
	f.IntVar(&mergeFlags.workers, "workers", 0, "Parallel group workers (0 = config value)")

	_ = mergeCmd.MarkFlagRequired("input")
}

func runMerge(cmd *cobra.Command, _ []string) error {
	cfgFile, err := loadConfig(mergeFlags.config)
	if err != nil {
		return err
	}

	spec := wiring.RunSpec{
		Config:      cfgFile,
		DatasetPath: mergeFlags.input,
		KeyField:    mergeFlags.keyField,
		Workers:     mergeFlags.workers,
		OutputPath:  mergeFlags.output,
		ReportPath:  mergeFlags.report,
	}
	if !mergeFlags.noStore {
		st, err := openStore(cfgFile, mergeFlags.storePath)
		if err != nil {
			return err
		}
		defer st.Close()
		spec.Store = st
	}
	if mergeFlags.handoff != "" {
		spec.Loader = &graph.FileLoader{Path: mergeFlags.handoff}
	}

	res, err := wiring.Run(cmd.Context(), spec)
	if err != nil {
		return err
	}
	report := res.Outcome.Report

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", report.RunID)
	fmt.Fprintf(out, "Dataset:   %s (%d records)\n", res.Dataset, report.InputCount)
	fmt.Fprintf(out, "Output:    %d records (%d duplicates removed)\n",
		report.OutputCount, report.DuplicatesRemoved())
	fmt.Fprintf(out, "Groups:    %d (%d merged, %d keyless)\n",
		report.GroupCount, report.MergedGroups, report.KeylessCount)
	if high := report.HighRiskGroups(); len(high) > 0 {
		fmt.Fprintf(out, "High risk: %d %s need review\n",
			len(high), pluralGroups(len(high)))
		for _, g := range high {
			for _, w := range g.Warnings {
				fmt.Fprintf(out, "  - %s: %s\n", display.GroupKey(g.Key, g.Keyless), w)
			}
		}
	}
	return nil
}

func pluralGroups(n int) string {
	if n == 1 {
		return "group"
	}
	return "groups"
}
