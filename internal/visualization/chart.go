// Package visualization renders simulation results as charts, terminal
// plots and tables.
package visualization

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nvandessel/lifsim/internal/constants"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Format specifies the image format charts are rendered in.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrNoData is returned when a chart is requested for an empty series.
var ErrNoData = errors.New("no data to plot")

// ParseFormat maps a format name to a Format (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be png or svg)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Chart is a figure that can be rendered on demand.
type Chart interface {
	// Name is a file-safe identifier, unique within a report.
	Name() string
	Title() string
	Render(w io.Writer, f Format) error
}

// plotChart adapts a gonum plot.
type plotChart struct {
	name string
	p    *plot.Plot
}

func (c *plotChart) Name() string  { return c.name }
func (c *plotChart) Title() string { return c.p.Title.Text }

func (c *plotChart) Render(w io.Writer, f Format) error {
	wt, err := c.p.WriterTo(
		vg.Length(constants.ChartWidthInches)*vg.Inch,
		vg.Length(constants.ChartHeightInches)*vg.Inch,
		string(f),
	)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.name, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}

// goChart adapts a go-chart chart, used where a secondary y-axis is needed.
type goChart struct {
	name string
	c    chart.Chart
}

func (c *goChart) Name() string  { return c.name }
func (c *goChart) Title() string { return c.c.Title }

func (c *goChart) Render(w io.Writer, f Format) error {
	provider := chart.PNG
	if f == FormatSVG {
		provider = chart.SVG
	}
	if err := c.c.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", c.name, err)
	}
	return nil
}
