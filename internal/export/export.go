// Package export writes the run artifacts: the full enriched dataset, the
// ML-ready feature subset, and the category mapping. Every file is written
// atomically into the run directory; a prior successful run's files are
// never touched.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dkeller9/contactlens/internal/errors"
	"github.com/dkeller9/contactlens/internal/features"
)

// Output names the dataset artifacts written for one run.
type Output struct {
	FullCSV     string `json:"full_csv"`
	MLCSV       string `json:"ml_csv"`
	MLXLSX      string `json:"ml_xlsx"`
	MappingJSON string `json:"mapping_json"`
	Rows        int    `json:"rows"`
}

// WriteDatasets writes all dataset artifacts into dir.
//
// The full dataset carries source columns plus every derived column; the
// ML subset carries exactly features.MLColumns in order. Null derived
// values become empty cells.
func WriteDatasets(dir string, result *features.Result, now time.Time) (*Output, error) {
	timestamp := now.Format("20060102_1504")
	out := &Output{
		FullCSV:     filepath.Join(dir, fmt.Sprintf("contacts_full_%s.csv", timestamp)),
		MLCSV:       filepath.Join(dir, "contacts_ml_ready.csv"),
		MLXLSX:      filepath.Join(dir, "contacts_ml_ready.xlsx"),
		MappingJSON: filepath.Join(dir, "category_mapping.json"),
		Rows:        len(result.Records),
	}

	fullRows := make([][]any, len(result.Records))
	mlRows := make([][]any, len(result.Records))
	for i := range result.Records {
		fullRows[i] = features.FullValues(result.Records[i])
		mlRows[i] = features.MLValues(result.Records[i])
	}

	if err := writeCSV(out.FullCSV, features.FullColumns, fullRows); err != nil {
		return nil, err
	}
	if err := writeCSV(out.MLCSV, features.MLColumns, mlRows); err != nil {
		return nil, err
	}
	if err := writeXLSX(out.MLXLSX, features.MLColumns, mlRows); err != nil {
		return nil, err
	}
	if err := writeMapping(out.MappingJSON, result.Mapping); err != nil {
		return nil, err
	}

	return out, nil
}

func writeCSV(path string, header []string, rows [][]any) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return errors.NewOutputWrite(path, err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return errors.NewOutputWrite(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewOutputWrite(path, err)
	}

	return WriteFileAtomic(path, buf.Bytes())
}

func writeXLSX(path string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return errors.NewOutputWrite(path, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewOutputWrite(path, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewOutputWrite(path, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return errors.NewOutputWrite(path, err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}

func writeMapping(path string, mapping features.CategoryMapping) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	data = append(data, '\n')
	return WriteFileAtomic(path, data)
}

// cellString renders a cell value for CSV; nil becomes an empty cell.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
