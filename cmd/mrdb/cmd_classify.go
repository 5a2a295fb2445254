package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/david3xu/mining-reliability-db-sub000/internal/dataset"
	"github.com/david3xu/mining-reliability-db-sub000/internal/display"
	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/format"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
)

var classifyFlags struct {
	input  string
	config string
	fields string
	format string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show the kind and merge strategy for field names",
	Long: `Classify maps field names to kinds through the configured keyword rules
and shows which merge strategy each field would get. Read fields from a
dataset file with -i, or pass them directly with --fields.`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVarP(&classifyFlags.input, "input", "i", "", "Dataset JSON file to take field names from")
	f.StringVarP(&classifyFlags.config, "config", "c", "", "Config YAML file")
	f.StringVar(&classifyFlags.fields, "fields", "", "Comma-separated field names to classify")
	f.StringVar(&classifyFlags.format, "format", "ascii", "Table format (ascii, markdown)")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	cfgFile, err := loadConfig(classifyFlags.config)
	if err != nil {
		return err
	}

	var fields []string
	switch {
	case classifyFlags.input != "":
		ds, err := dataset.Load(classifyFlags.input)
		if err != nil {
			return err
		}
		fields = record.UnionFieldNames(ds.Records)
	case classifyFlags.fields != "":
		for _, f := range strings.Split(classifyFlags.fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("either --input or --fields is required")
	}

	classifier, err := fieldkind.NewClassifier(cfgFile.ClassifierRules)
	if err != nil {
		return err
	}
	engineCfg := cfgFile.EngineConfig()
	ranking := engineCfg.StatusRanking
	if ranking == nil {
		ranking = merge.DefaultStatusRanking()
	}
	registry, err := merge.NewRegistry(ranking, engineCfg.Overrides)
	if err != nil {
		return err
	}

	tbl := format.NewTable(format.ModeFromString(classifyFlags.format))
	tbl.Header("Field", "Kind", "Strategy")
	for _, f := range fields {
		kind := classifier.Classify(f)
		name, _ := registry.Resolve(f, kind)
		tbl.Row(f, display.Kind(string(kind)), display.StrategyWithCode(string(name)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
	return nil
}
