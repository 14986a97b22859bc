// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchstat"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #999; padding: 0.3em 0.6em; text-align: left; }
tr.success td { background: #f0fff0; }
tr.timeout td { background: #fffaf0; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<h2>Summary statistics</h2>
<table>
<tr><th>Problem<th>Algorithm<th>Outcome<th>Runs<th>Time (ms)<th>Memory (KB)<th>Nodes visited<th>Nodes generated<th>Solution length<th>EBF
{{range .Summary -}}
<tr class='{{.Class}}'><td>{{.Problem}}<td>{{.Algorithm}}<td>{{.Outcome}}<td class='num'>{{.Runs}}<td class='num'>{{.Time}}<td class='num'>{{.Memory}}<td class='num'>{{.NodesVisited}}<td class='num'>{{.NodesGenerated}}<td class='num'>{{.SolutionLength}}<td class='num'>{{.EBF}}
{{end -}}
</table>

<h2>Comparative analysis</h2>
<table>
<tr><th>Problem{{range .Metrics}}<th>{{.}}{{end}}
{{range .Best -}}
<tr><td>{{.Problem}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
</table>
</body>
</html>
`))

type htmlSummaryRow struct {
	Class          string
	Problem        string
	Algorithm      string
	Outcome        string
	Runs           string
	Time           string
	Memory         string
	NodesVisited   string
	NodesGenerated string
	SolutionLength string
	EBF            string
}

type htmlBestRow struct {
	Problem string
	Cells   []string
}

type htmlReport struct {
	Title   string
	Summary []htmlSummaryRow
	Metrics []string
	Best    []htmlBestRow
}

// WriteHTML writes the summary and comparative tables as a standalone
// HTML page.
func WriteHTML(w io.Writer, rows []*benchstat.SummaryRow, best []*benchstat.BestOfRow, opts Options) error {
	data := htmlReport{Title: opts.title()}

	for _, row := range rows {
		class := "failed"
		switch row.Outcome {
		case benchjson.Success:
			class = "success"
		case benchjson.Timeout:
			class = "timeout"
		}
		data.Summary = append(data.Summary, htmlSummaryRow{
			Class:          class,
			Problem:        row.Problem,
			Algorithm:      row.Algorithm,
			Outcome:        outcomeLabel(row.Outcome),
			Runs:           fmtRuns(row),
			Time:           fmtDist(row.Time, 2),
			Memory:         fmtMemory(row),
			NodesVisited:   fmtDist(row.NodesVisited, 0),
			NodesGenerated: fmtDist(row.NodesGenerated, 0),
			SolutionLength: fmtDist(row.SolutionLength, 1),
			EBF:            fmtDist(row.EBF, 2),
		})
	}

	for _, m := range benchstat.BestOfMetrics {
		data.Metrics = append(data.Metrics, metricLabel[m])
	}
	// BestOf output is already grouped by problem in metric order.
	var lastProblem string
	for _, b := range best {
		if b.Problem != lastProblem {
			lastProblem = b.Problem
			data.Best = append(data.Best, htmlBestRow{Problem: b.Problem})
		}
		cur := &data.Best[len(data.Best)-1]
		cur.Cells = append(cur.Cells, fmt.Sprintf("%s (%.2f)", b.Algorithm, b.Mean))
	}

	return htmlTemplate.Execute(w, data)
}

func fmtRuns(row *benchstat.SummaryRow) string {
	return fmt.Sprintf("%d/%d", row.Observed, row.Attempted)
}
