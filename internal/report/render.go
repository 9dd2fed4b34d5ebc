package report

import (
	"bytes"
	"embed"
	"html/template"
	"path/filepath"
	"time"

	"github.com/dkeller9/contactlens/internal/export"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTmpl = template.Must(template.New("report.html").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") },
}).ParseFS(templateFS, "templates/report.html"))

// reportData is the template data for the HTML report.
type reportData struct {
	Timestamp string
	Summary   Summary
	SVGFile   string
}

// Output names the report artifacts written for one run.
type Output struct {
	SVGPath  string `json:"svg_path"`
	HTMLPath string `json:"html_path"`
}

// RenderHTML renders the report document. The SVG image is referenced by
// filename so the report stays a self-contained pair of files in the run
// directory.
func RenderHTML(summary Summary, timestamp, svgFile string) ([]byte, error) {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, reportData{
		Timestamp: timestamp,
		Summary:   summary,
		SVGFile:   svgFile,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders and writes both report artifacts into dir.
// Files are written atomically; a failed run leaves no partial artifact.
func Write(dir string, summary Summary, charts []Chart, now time.Time) (*Output, error) {
	timestamp := now.Format("20060102_1504")
	svgFile := "EDA_Report_" + timestamp + ".svg"
	htmlFile := "Analysis_Report_" + timestamp + ".html"

	svgPath := filepath.Join(dir, svgFile)
	svg := RenderSVG("Contactlens – Comprehensive Data Analysis", charts)
	if err := export.WriteFileAtomic(svgPath, svg); err != nil {
		return nil, err
	}

	htmlPath := filepath.Join(dir, htmlFile)
	doc, err := RenderHTML(summary, timestamp, svgFile)
	if err != nil {
		return nil, err
	}
	if err := export.WriteFileAtomic(htmlPath, doc); err != nil {
		return nil, err
	}

	return &Output{SVGPath: svgPath, HTMLPath: htmlPath}, nil
}
