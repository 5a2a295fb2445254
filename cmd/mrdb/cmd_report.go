package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/david3xu/mining-reliability-db-sub000/internal/dataset"
	"github.com/david3xu/mining-reliability-db-sub000/internal/format"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
)

var reportFlags struct {
	config    string
	storePath string
	format    string
	json      string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect persisted merge runs",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List merge runs, newest first",
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full audit report for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

func init() {
	pf := reportCmd.PersistentFlags()
	pf.StringVarP(&reportFlags.config, "config", "c", "", "Config YAML file")
	pf.StringVar(&reportFlags.storePath, "store", "", "Run store path (default from config)")
	reportListCmd.Flags().StringVar(&reportFlags.format, "format", "ascii", "Table format (ascii, markdown)")
	reportShowCmd.Flags().StringVar(&reportFlags.json, "json", "", "Also write the raw report JSON to this file")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	cfgFile, err := loadConfig(reportFlags.config)
	if err != nil {
		return err
	}
	st, err := openStore(cfgFile, reportFlags.storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No merge runs recorded yet. Run 'mrdb merge' first.")
		return nil
	}

	tbl := format.NewTable(format.ModeFromString(reportFlags.format))
	tbl.Header("Run", "Dataset", "Created", "In", "Out", "Merged", "High Risk")
	tbl.Columns(
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
	)
	for _, r := range runs {
		tbl.Row(
			r.ID,
			format.Truncate(r.Dataset, 30),
			format.FmtTime(r.CreatedAt),
			r.InputCount,
			r.OutputCount,
			r.MergedGroups,
			r.HighRisk,
		)
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	cfgFile, err := loadConfig(reportFlags.config)
	if err != nil {
		return err
	}
	st, err := openStore(cfgFile, reportFlags.storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(args[0])
	if err != nil {
		return err
	}

	if reportFlags.json != "" {
		if err := dataset.WriteJSON(reportFlags.json, run.Report); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), merge.RenderReport(run.Report))
	return nil
}
