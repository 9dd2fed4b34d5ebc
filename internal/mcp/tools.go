package mcp

import "github.com/mark3labs/mcp-go/mcp"

var statsToolDef = mcp.NewTool("contact_stats",
	mcp.WithDescription("Summary statistics over the contact table: totals, category count, email/notes coverage, international numbers, and high-quality contacts."),
)

var listToolDef = mcp.NewTool("contact_list",
	mcp.WithDescription("List contacts newest first with pagination."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum rows to return (default 20, max 200)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Rows to skip (default 0)."),
	),
)

var analyzeToolDef = mcp.NewTool("pipeline_analyze",
	mcp.WithDescription("Run the full analysis pipeline: derive features for every contact and write the report and dataset artifacts into a new run directory."),
	mcp.WithString("output_dir",
		mcp.Description("Directory to create the run directory in. Defaults to the configured output directory."),
	),
	mcp.WithString("now",
		mcp.Description("Reference instant for time-derived features, RFC 3339. Defaults to the current time."),
	),
)

var exportToolDef = mcp.NewTool("dataset_export",
	mcp.WithDescription("Export the enriched datasets (full CSV, ML-ready CSV and XLSX, category mapping) into a directory without rendering the report."),
	mcp.WithString("dir",
		mcp.Required(),
		mcp.Description("Directory to write the dataset files into. Created if missing."),
	),
)
