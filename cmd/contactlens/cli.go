package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/db"
	"github.com/dkeller9/contactlens/internal/errors"
	"github.com/dkeller9/contactlens/internal/export"
	"github.com/dkeller9/contactlens/internal/features"
	"github.com/dkeller9/contactlens/internal/pipeline"
	"github.com/dkeller9/contactlens/internal/report"
	"github.com/dkeller9/contactlens/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(database *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "contactlens",
		Usage:   "Contact analytics pipeline",
		Version: Version,
		Commands: []*cli.Command{
			analyzeCmd(database, cfg),
			statsCmd(database),
			exportCmd(database, cfg),
			reportCmd(database, cfg),
			importCmd(database),
			serveCmd(database, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// analyzeCmd creates the analyze command: the full pipeline run.
func analyzeCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Run the full analysis pipeline and write report and dataset artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output directory (default: configured output dir)"},
			&cli.StringFlag{Name: "now", Usage: "Reference instant for time features, RFC 3339 (default: current time)"},
		},
		Action: func(c *cli.Context) error {
			opts := pipeline.Options{OutputDir: c.String("out")}

			if s := c.String("now"); s != "" {
				now, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return outputError(errors.NewInvalidRequest("now must be RFC 3339"))
				}
				opts.Now = now
			}

			output, err := pipeline.Run(c.Context, database, cfg, opts)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print summary statistics for the contact table",
		Action: func(c *cli.Context) error {
			records, err := db.FetchContacts(c.Context, database)
			if err != nil {
				return outputError(err)
			}

			now := time.Now().UTC()
			result := features.Enrich(records, now)
			summary := report.BuildSummary(result.Records, result.Mapping, now)

			return outputJSON(summary)
		},
	}
}

// exportCmd creates the export command: datasets without the report.
func exportCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export enriched datasets (CSV, XLSX, category mapping) into a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Target directory (default: configured output dir)"},
		},
		Action: func(c *cli.Context) error {
			dir := c.String("dir")
			if dir == "" {
				dir = cfg.OutputDir
			}

			records, err := db.FetchContacts(c.Context, database)
			if err != nil {
				return outputError(err)
			}

			now := time.Now().UTC()
			result := features.Enrich(records, now)

			if err := os.MkdirAll(dir, 0755); err != nil {
				return outputError(errors.NewOutputWrite(dir, err))
			}

			output, err := export.WriteDatasets(dir, result, now)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command: HTML report and SVG charts only.
func reportCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render the HTML report and SVG charts into a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Target directory (default: configured output dir)"},
		},
		Action: func(c *cli.Context) error {
			dir := c.String("dir")
			if dir == "" {
				dir = cfg.OutputDir
			}

			records, err := db.FetchContacts(c.Context, database)
			if err != nil {
				return outputError(err)
			}

			now := time.Now().UTC()
			result := features.Enrich(records, now)
			summary := report.BuildSummary(result.Records, result.Mapping, now)
			charts := report.BuildCharts(result.Records)

			if err := os.MkdirAll(dir, 0755); err != nil {
				return outputError(errors.NewOutputWrite(dir, err))
			}

			output, err := report.Write(dir, summary, charts, now)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import contacts from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "CSV file path"},
		},
		Action: func(c *cli.Context) error {
			imported, err := importCSV(c.Context, database, c.String("path"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"imported": imported})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8384, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(database, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// importColumns is the required CSV header for import, in order.
var importColumns = []string{"name", "phone", "category", "email", "notes", "created_at", "updated_at"}

// importCSV reads a contact CSV and inserts its rows. Empty cells in
// nullable columns insert SQL NULL.
func importCSV(ctx context.Context, database *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("cannot open %s: %v", path, err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, errors.NewInvalidRequest("CSV file is empty or unreadable")
	}
	if len(header) != len(importColumns) {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("CSV header must have %d columns: %v", len(importColumns), importColumns))
	}
	for i, want := range importColumns {
		if header[i] != want {
			return 0, errors.NewInvalidRequest(fmt.Sprintf("CSV column %d is %q, want %q", i+1, header[i], want))
		}
	}

	imported := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, errors.NewInvalidRequest(fmt.Sprintf("CSV row %d: %v", imported+2, err))
		}
		if row[0] == "" {
			return imported, errors.NewInvalidRequest(fmt.Sprintf("CSV row %d: name is required", imported+2))
		}

		contact := db.NewContact{
			Name:      row[0],
			Phone:     row[1],
			Category:  nullable(row[2]),
			Email:     nullable(row[3]),
			Notes:     nullable(row[4]),
			CreatedAt: nullable(row[5]),
			UpdatedAt: nullable(row[6]),
		}
		if _, err := db.InsertContact(ctx, database, contact); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.PipelineError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// nullable returns a pointer to s if non-empty, nil otherwise.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
