package mcp

import (
	"context"
	"fmt"
	"slices"

	"dealboard/internal/crm"
	"dealboard/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type LoadWorkbooksInput struct {
	Paths  []string `json:"paths" jsonschema:"one or two .xlsx or .csv CRM exports; relative paths resolve against DATA_PATH"`
	Reload bool     `json:"reload,omitempty" jsonschema:"parse the files again even if they were loaded before"`
}

type ListDealsInput struct {
	Cohort     string `json:"cohort,omitempty" jsonschema:"deal cohort to list; defaults to all deals"`
	SortBy     string `json:"sort_by,omitempty" jsonschema:"deal column to sort by; absent values sort last"`
	Descending bool   `json:"descending,omitempty" jsonschema:"sort in descending order"`
}

type GetDealInput struct {
	Regarding    string `json:"regarding" jsonschema:"deal identifier (the Regarding column)"`
	StatusFilter string `json:"status_filter,omitempty" jsonschema:"only list tasks with this status"`
}

type GetDealTimelineInput struct {
	Regarding    string `json:"regarding" jsonschema:"deal identifier (the Regarding column)"`
	StatusFilter string `json:"status_filter,omitempty" jsonschema:"only chart tasks with this status"`
}

type ExportWorkbookInput struct {
	Cohort       string `json:"cohort,omitempty" jsonschema:"deal cohort to export; defaults to all deals"`
	SortBy       string `json:"sort_by,omitempty" jsonschema:"deal column to sort by"`
	Descending   bool   `json:"descending,omitempty" jsonschema:"sort in descending order"`
	StatusFilter string `json:"status_filter,omitempty" jsonschema:"only export tasks with this status"`
	Dir          string `json:"dir,omitempty" jsonschema:"output directory; defaults to EXPORT_DIR"`
}

func cohortEnum() []any {
	out := []any{string(stats.CohortAll)}
	for _, c := range stats.Partition {
		out = append(out, string(c))
	}
	return out
}

// sortEnum lists the preferred sort fields first, then the remaining deal columns.
func sortEnum() []any {
	out := make([]any, 0, len(crm.DealColumns))
	for _, c := range stats.SortFields {
		out = append(out, c)
	}
	for _, c := range crm.DealColumns {
		if !slices.Contains(stats.SortFields, c) {
			out = append(out, c)
		}
	}
	return out
}

func statusEnum() []any {
	return []any{stats.ShowAll, crm.StatusNotStarted, crm.StatusInProgress, crm.StatusCompleted}
}

// inputSchema infers the schema of T and pins enumerated properties.
func inputSchema[T any](enums map[string][]any) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	for prop, values := range enums {
		p, ok := schema.Properties[prop]
		if !ok {
			return nil, fmt.Errorf("schema has no property %q", prop)
		}
		p.Enum = values
	}
	return schema, nil
}

// handlerFunc is the transport-free shape of every tool: an envelope plus an optional Mermaid chart.
type handlerFunc[In any] func(In) (ResponseEnvelope, string, error)

func toolHandler[In any](s *Server, h handlerFunc[In]) sdk.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		env, chart, err := h(in)
		if err != nil {
			return nil, nil, err
		}
		return s.result(env, chart), nil, nil
	}
}

func (s *Server) registerTools() error {
	loadSchema, err := inputSchema[LoadWorkbooksInput](nil)
	if err != nil {
		return err
	}
	listSchema, err := inputSchema[ListDealsInput](map[string][]any{"cohort": cohortEnum(), "sort_by": sortEnum()})
	if err != nil {
		return err
	}
	dealSchema, err := inputSchema[GetDealInput](map[string][]any{"status_filter": statusEnum()})
	if err != nil {
		return err
	}
	timelineSchema, err := inputSchema[GetDealTimelineInput](map[string][]any{"status_filter": statusEnum()})
	if err != nil {
		return err
	}
	exportSchema, err := inputSchema[ExportWorkbookInput](map[string][]any{
		"cohort": cohortEnum(), "sort_by": sortEnum(), "status_filter": statusEnum(),
	})
	if err != nil {
		return err
	}

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "load_workbooks",
		Description: "Load a combined Deals+Tasks export and, optionally, an Appointments export. Must be called before any other tool.",
		InputSchema: loadSchema,
	}, toolHandler(s, s.handleLoadWorkbooks))

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "list_deals",
		Description: "List deals in a cohort (approved, in_schedule, pre_submittal, approval_without_submittal, or all) with task status counts.",
		InputSchema: listSchema,
	}, toolHandler(s, s.handleListDeals))

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "get_deal",
		Description: "Show one deal with its tasks (urgency tagged), appointments and status counts.",
		InputSchema: dealSchema,
	}, toolHandler(s, s.handleGetDeal))

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "get_deal_timeline",
		Description: "Build the Gantt timeline of one deal: contract and Green Folder milestones followed by its tasks.",
		InputSchema: timelineSchema,
	}, toolHandler(s, s.handleGetDealTimeline))

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "export_workbook",
		Description: "Write the single-sheet deal/task/appointment workbook and return its path.",
		InputSchema: exportSchema,
	}, toolHandler(s, s.handleExportWorkbook))

	return nil
}
