// Package mcp exposes the merge engine over the Model Context Protocol so
// agent tooling can run merges, classify fields, and inspect persisted runs
// without shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/david3xu/mining-reliability-db-sub000/internal/config"
	"github.com/david3xu/mining-reliability-db-sub000/internal/dataset"
	"github.com/david3xu/mining-reliability-db-sub000/internal/fieldkind"
	"github.com/david3xu/mining-reliability-db-sub000/internal/logging"
	"github.com/david3xu/mining-reliability-db-sub000/internal/merge"
	"github.com/david3xu/mining-reliability-db-sub000/internal/record"
	"github.com/david3xu/mining-reliability-db-sub000/internal/store"
	"github.com/david3xu/mining-reliability-db-sub000/internal/wiring"
)

// Server wraps the MCP SDK server. Every tool is synchronous: a merge runs
// to completion inside its tool call and the run lands in the store before
// the call returns.
type Server struct {
	MCPServer *sdkmcp.Server
	Config    *config.File
	Store     store.Store
}

// NewServer creates an MCP server with merge, classification, and run
// inspection tools. cfg supplies engine defaults (nil means config.Default);
// st persists runs and may be nil to disable persistence.
func NewServer(cfg *config.File, st store.Store) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{Config: cfg, Store: st}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "mrdb", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "merge_dataset",
		Description: "Merge duplicate records in a dataset file. Groups by the key field, resolves conflicts per field kind, persists the run, and returns a summary.",
	}, s.handleMergeDataset)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "classify_fields",
		Description: "Classify field names into kinds and show the merge strategy each would get. Pass field names directly or a dataset path to classify every field it uses.",
	}, s.handleClassifyFields)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_runs",
		Description: "List persisted merge runs, newest first.",
	}, s.handleListRuns)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_report",
		Description: "Get the full audit report for a persisted merge run, as structured JSON plus rendered Markdown.",
	}, s.handleGetReport)
}

// --- Tool input/output types ---

type mergeDatasetInput struct {
	DatasetPath string `json:"dataset_path" jsonschema:"path to the dataset JSON file (bare record array or {name, records} object)"`
	KeyField    string `json:"key_field,omitempty" jsonschema:"override the configured duplicate-grouping key field"`
	Workers     int    `json:"workers,omitempty" jsonschema:"parallel group workers (0 = configured default)"`
	OutputPath  string `json:"output_path,omitempty" jsonschema:"write merged records to this JSON file"`
	ReportPath  string `json:"report_path,omitempty" jsonschema:"write the audit report to this JSON file"`
}

type mergeDatasetOutput struct {
	RunID             string   `json:"run_id"`
	Dataset           string   `json:"dataset"`
	KeyField          string   `json:"key_field"`
	InputRecords      int      `json:"input_records"`
	OutputRecords     int      `json:"output_records"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	Groups            int      `json:"groups"`
	MergedGroups      int      `json:"merged_groups"`
	KeylessRecords    int      `json:"keyless_records"`
	HighRiskGroups    int      `json:"high_risk_groups"`
	Warnings          []string `json:"warnings,omitempty"`
	OutputPath        string   `json:"output_path,omitempty"`
	ReportPath        string   `json:"report_path,omitempty"`
}

type classifyFieldsInput struct {
	Fields      []string `json:"fields,omitempty" jsonschema:"field names to classify"`
	DatasetPath string   `json:"dataset_path,omitempty" jsonschema:"classify every field used by this dataset instead"`
}

type fieldClassification struct {
	Field    string `json:"field"`
	Kind     string `json:"kind"`
	Strategy string `json:"strategy"`
}

type classifyFieldsOutput struct {
	Fields []fieldClassification `json:"fields"`
}

type listRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum runs to return (0 = all)"`
}

type runSummary struct {
	RunID             string    `json:"run_id"`
	Dataset           string    `json:"dataset"`
	KeyField          string    `json:"key_field"`
	CreatedAt         time.Time `json:"created_at"`
	InputRecords      int       `json:"input_records"`
	OutputRecords     int       `json:"output_records"`
	DuplicatesRemoved int       `json:"duplicates_removed"`
	MergedGroups      int       `json:"merged_groups"`
	HighRiskGroups    int       `json:"high_risk_groups"`
}

type listRunsOutput struct {
	Runs  []runSummary `json:"runs"`
	Total int          `json:"total"`
}

type getReportInput struct {
	RunID string `json:"run_id" jsonschema:"run ID from merge_dataset or list_runs"`
}

type getReportOutput struct {
	RunID    string        `json:"run_id"`
	Dataset  string        `json:"dataset"`
	Report   *merge.Report `json:"report"`
	Markdown string        `json:"markdown"`
}

// --- Tool handlers ---

func (s *Server) handleMergeDataset(ctx context.Context, _ *sdkmcp.CallToolRequest, input mergeDatasetInput) (*sdkmcp.CallToolResult, mergeDatasetOutput, error) {
	logger := logging.New("mcp")

	if input.DatasetPath == "" {
		return nil, mergeDatasetOutput{}, fmt.Errorf("dataset_path is required")
	}

	res, err := wiring.Run(ctx, wiring.RunSpec{
		Config:      s.Config,
		DatasetPath: input.DatasetPath,
		KeyField:    input.KeyField,
		Workers:     input.Workers,
		Store:       s.Store,
		OutputPath:  input.OutputPath,
		ReportPath:  input.ReportPath,
	})
	if err != nil {
		return nil, mergeDatasetOutput{}, err
	}
	report := res.Outcome.Report

	out := mergeDatasetOutput{
		RunID:             report.RunID,
		Dataset:           res.Dataset,
		KeyField:          report.KeyField,
		InputRecords:      report.InputCount,
		OutputRecords:     report.OutputCount,
		DuplicatesRemoved: report.DuplicatesRemoved(),
		Groups:            report.GroupCount,
		MergedGroups:      report.MergedGroups,
		KeylessRecords:    report.KeylessCount,
		OutputPath:        input.OutputPath,
		ReportPath:        input.ReportPath,
	}
	for _, g := range report.HighRiskGroups() {
		out.HighRiskGroups++
		out.Warnings = append(out.Warnings, g.Warnings...)
	}

	logger.Info("merge_dataset complete",
		"run_id", out.RunID, "dataset", out.Dataset,
		"input", out.InputRecords, "output", out.OutputRecords,
		"high_risk", out.HighRiskGroups)
	return nil, out, nil
}

func (s *Server) handleClassifyFields(ctx context.Context, _ *sdkmcp.CallToolRequest, input classifyFieldsInput) (*sdkmcp.CallToolResult, classifyFieldsOutput, error) {
	fields := input.Fields
	if input.DatasetPath != "" {
		ds, err := dataset.Load(input.DatasetPath)
		if err != nil {
			return nil, classifyFieldsOutput{}, err
		}
		fields = record.UnionFieldNames(ds.Records)
	}
	if len(fields) == 0 {
		return nil, classifyFieldsOutput{}, fmt.Errorf("either fields or dataset_path is required")
	}

	entries, err := classify(s.Config, fields)
	if err != nil {
		return nil, classifyFieldsOutput{}, err
	}
	return nil, classifyFieldsOutput{Fields: entries}, nil
}

func (s *Server) handleListRuns(ctx context.Context, _ *sdkmcp.CallToolRequest, input listRunsInput) (*sdkmcp.CallToolResult, listRunsOutput, error) {
	if s.Store == nil {
		return nil, listRunsOutput{}, fmt.Errorf("no run store configured")
	}
	runs, err := s.Store.ListRuns()
	if err != nil {
		return nil, listRunsOutput{}, err
	}

	out := listRunsOutput{Total: len(runs)}
	for _, r := range runs {
		if input.Limit > 0 && len(out.Runs) >= input.Limit {
			break
		}
		out.Runs = append(out.Runs, runSummary{
			RunID:             r.ID,
			Dataset:           r.Dataset,
			KeyField:          r.KeyField,
			CreatedAt:         r.CreatedAt,
			InputRecords:      r.InputCount,
			OutputRecords:     r.OutputCount,
			DuplicatesRemoved: r.InputCount - r.OutputCount,
			MergedGroups:      r.MergedGroups,
			HighRiskGroups:    r.HighRisk,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetReport(ctx context.Context, _ *sdkmcp.CallToolRequest, input getReportInput) (*sdkmcp.CallToolResult, getReportOutput, error) {
	if s.Store == nil {
		return nil, getReportOutput{}, fmt.Errorf("no run store configured")
	}
	if input.RunID == "" {
		return nil, getReportOutput{}, fmt.Errorf("run_id is required")
	}
	run, err := s.Store.GetRun(input.RunID)
	if err != nil {
		return nil, getReportOutput{}, err
	}

	return nil, getReportOutput{
		RunID:    run.ID,
		Dataset:  run.Dataset,
		Report:   run.Report,
		Markdown: merge.RenderReport(run.Report),
	}, nil
}

// classify resolves kind and strategy for each field using the configured
// classifier rules, status ranking, and overrides.
func classify(cfg *config.File, fields []string) ([]fieldClassification, error) {
	classifier, err := fieldkind.NewClassifier(cfg.ClassifierRules)
	if err != nil {
		return nil, err
	}
	engineCfg := cfg.EngineConfig()
	ranking := engineCfg.StatusRanking
	if ranking == nil {
		ranking = merge.DefaultStatusRanking()
	}
	registry, err := merge.NewRegistry(ranking, engineCfg.Overrides)
	if err != nil {
		return nil, err
	}

	entries := make([]fieldClassification, len(fields))
	for i, f := range fields {
		kind := classifier.Classify(f)
		name, _ := registry.Resolve(f, kind)
		entries[i] = fieldClassification{
			Field:    f,
			Kind:     string(kind),
			Strategy: string(name),
		}
	}
	return entries, nil
}
