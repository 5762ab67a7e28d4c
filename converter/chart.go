package converter

// chart.go — chart placeholder and data block rendering.
//
// Chart parts (word/charts/chartN.xml) are stream-parsed with a small state
// machine: title text, the first plot-area child whose name ends in "Chart",
// and the cached series values. A chart never fails the pipeline — anything
// malformed degrades to the generic placeholder.

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const maxWorkbookRows = 20

type chartSeries struct {
	name       string
	categories []string
	values     []string
}

type chartInfo struct {
	title     string
	chartType string
	series    []chartSeries
}

func (ci *chartInfo) hasValues() bool {
	for _, s := range ci.series {
		if len(s.values) > 0 {
			return true
		}
	}
	return false
}

var chartTypeNames = map[string]string{
	"barChart":      "Bar Chart",
	"lineChart":     "Line Chart",
	"pieChart":      "Pie Chart",
	"areaChart":     "Area Chart",
	"scatterChart":  "Scatter Chart",
	"bubbleChart":   "Bubble Chart",
	"doughnutChart": "Doughnut Chart",
	"radarChart":    "Radar Chart",
	"surfaceChart":  "Surface Chart",
}

func humanChartType(local string) string {
	if name, ok := chartTypeNames[local]; ok {
		return name
	}
	return "Chart"
}

// parseChart extracts title, type, and cached series data from a chart part.
func parseChart(data []byte) (*chartInfo, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		info  chartInfo
		stack []string
		cur   *chartSeries
		text  strings.Builder
	)
	inCtx := func(name string) bool {
		for _, s := range stack {
			if s == name {
				return true
			}
		}
		return false
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse chart xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			switch {
			case info.chartType == "" && inCtx("plotArea") && strings.HasSuffix(t.Name.Local, "Chart"):
				info.chartType = humanChartType(t.Name.Local)
			case t.Name.Local == "ser":
				info.series = append(info.series, chartSeries{})
				cur = &info.series[len(info.series)-1]
			case t.Name.Local == "v" || t.Name.Local == "t":
				text.Reset()
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			local := t.Name.Local
			if local == "v" || local == "t" {
				val := strings.TrimSpace(text.String())
				if val != "" {
					switch {
					case inCtx("title"):
						info.title += val
					case cur != nil && inCtx("tx") && cur.name == "":
						cur.name = val
					case cur != nil && inCtx("cat"):
						cur.categories = append(cur.categories, val)
					case cur != nil && inCtx("val"):
						cur.values = append(cur.values, val)
					}
				}
			}
			if local == "ser" {
				cur = nil
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return &info, nil
}

func (c *conversion) renderChartFragment(f inlineFragment) string {
	title, chartType := "Untitled Chart", "Chart"
	var info *chartInfo
	var chartPart string

	if rel, ok := c.curRels[f.relID]; ok {
		chartPart = resolvePartPath(c.curPart, rel.Target)
		if data, found := c.pkg.part(chartPart); found {
			ci, err := parseChart(data)
			if err != nil {
				c.log.Debug("chart part unparsable", "part", chartPart, "error", err)
			} else {
				info = ci
				if ci.title != "" {
					title = ci.title
				}
				if ci.chartType != "" {
					chartType = ci.chartType
				}
			}
		} else {
			c.log.Debug("chart part missing", "part", chartPart)
		}
	} else {
		c.log.Debug("chart relationship not found", "id", f.relID, "part", c.curPart)
	}

	label := fmt.Sprintf("[Chart: %s (%s)]", title, chartType)
	if c.format == FormatText {
		return label
	}
	out := "*" + label + "*"
	if dataBlock := c.chartDataBlock(info, chartPart); dataBlock != "" {
		out += "\n\n" + dataBlock
	}
	return out
}

// chartDataBlock renders cached series values as a fenced block; when no
// caches exist it falls back to the chart's embedded workbook.
func (c *conversion) chartDataBlock(info *chartInfo, chartPart string) string {
	var sb strings.Builder

	if info != nil && info.hasValues() {
		sb.WriteString("```\nChart Data:\n")
		for i, s := range info.series {
			name := s.name
			if name == "" {
				name = fmt.Sprintf("Series %d", i+1)
			}
			sb.WriteString("\n" + name + ":\n")
			if len(s.categories) > 0 && len(s.categories) == len(s.values) {
				for j := range s.values {
					sb.WriteString(fmt.Sprintf("  %s: %s\n", s.categories[j], s.values[j]))
				}
			} else {
				sb.WriteString("  Values: " + strings.Join(s.values, ", ") + "\n")
			}
		}
		sb.WriteString("```")
		return sb.String()
	}

	rows := c.embeddedWorkbookRows(chartPart)
	if len(rows) == 0 {
		return ""
	}
	sb.WriteString("```\nChart Data:\n")
	for _, row := range rows {
		sb.WriteString("  " + strings.Join(row, " | ") + "\n")
	}
	sb.WriteString("```")
	return sb.String()
}

// embeddedWorkbookRows follows the chart part's externalData relationship to
// the embedded workbook and returns its first sheet's rows.
func (c *conversion) embeddedWorkbookRows(chartPart string) [][]string {
	if chartPart == "" {
		return nil
	}
	rels, err := c.pkg.rels(chartPart)
	if err != nil {
		c.log.Debug("chart rels unparsable", "part", chartPart, "error", err)
		return nil
	}

	ids := make([]string, 0, len(rels))
	for id := range rels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rel := rels[id]
		if !strings.Contains(rel.Type, "externalData") {
			continue
		}
		data, ok := c.pkg.part(resolvePartPath(chartPart, rel.Target))
		if !ok {
			continue
		}
		rows, err := workbookRows(data, maxWorkbookRows)
		if err != nil {
			c.log.Debug("embedded workbook unreadable", "part", chartPart, "error", err)
			continue
		}
		return rows
	}
	return nil
}
