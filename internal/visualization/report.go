package visualization

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// ReportIndex is the name of the HTML page written by Report.Write.
const ReportIndex = "index.html"

// Report collects charts for a single command run.
type Report struct {
	Title string

	// Params, if set, is shown verbatim above the charts.
	Params string

	charts []Chart
}

// NewReport creates an empty report.
func NewReport(title string) *Report {
	return &Report{Title: title}
}

// Add appends charts in display order. Nil charts are ignored.
func (r *Report) Add(charts ...Chart) {
	for _, c := range charts {
		if c != nil {
			r.charts = append(r.charts, c)
		}
	}
}

type reportEntry struct {
	File  string
	Title string
}

type reportData struct {
	Title  string
	Params string
	Charts []reportEntry
}

// Write renders every chart into dir in format f, followed by an index
// page linking them. It returns the index path.
func (r *Report) Write(dir string, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data := reportData{Title: r.Title, Params: r.Params}
	for _, c := range r.charts {
		file := c.Name() + f.Ext()
		if err := writeChart(filepath.Join(dir, file), c, f); err != nil {
			return "", err
		}
		data.Charts = append(data.Charts, reportEntry{File: file, Title: c.Title()})
	}

	html, err := renderIndex(data)
	if err != nil {
		return "", err
	}
	indexPath := filepath.Join(dir, ReportIndex)
	if err := os.WriteFile(indexPath, html, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", ReportIndex, err)
	}
	return indexPath, nil
}

func writeChart(path string, c Chart, f Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := c.Render(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func renderIndex(data reportData) ([]byte, error) {
	tmplBytes, err := templates.ReadFile("templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}

	tmpl, err := template.New("report").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}
