package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nodesetexporter/aliasmap/internal/cli/output"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// previewTitle heads the preview in text and markdown output.
const previewTitle = "NodeID with aliases and data types:"

// nodeIDPrefix is the numeric namespace prefix shown in the preview only.
const nodeIDPrefix = "i="

// previewEntries converts the preview view of records to output rows.
func previewEntries(records nodeids.RecordSet) []output.PreviewEntry {
	view := records.Preview()
	entries := make([]output.PreviewEntry, 0, len(view))
	for _, rec := range view {
		entries = append(entries, output.PreviewEntry{
			Alias:      rec.Alias,
			NodeID:     nodeIDPrefix + rec.NodeID,
			TypeOfData: rec.TypeOfData,
			Line:       rec.Line,
		})
	}
	return entries
}

func previewSummary(records nodeids.RecordSet) output.PreviewSummary {
	c := records.Count()
	return output.PreviewSummary{
		Records:        c.Total,
		DataTypes:      c.DataTypes,
		ReferenceTypes: c.ReferenceTypes,
		Other:          c.Other,
	}
}

// renderPreview writes the human-readable preview. Structured modes are
// handled by the caller, which embeds the entries in its own document.
func renderPreview(r *output.Renderer, records nodeids.RecordSet) {
	switch r.EffectiveMode() {
	case output.ModeMarkdown:
		previewMarkdown(r, records)
	case output.ModeJSON, output.ModeYAML:
		return
	default:
		previewText(r, records)
	}
}

// previewText outputs the preview as a styled table.
func previewText(r *output.Renderer, records nodeids.RecordSet) {
	r.Header(1, previewTitle)

	entries := previewEntries(records)
	if len(entries) == 0 {
		r.Muted("(no data type or reference type rows)")
		return
	}

	styles := r.Styles()
	t := previewTable(entries, func(e output.PreviewEntry) string {
		if e.TypeOfData == nodeids.DataTypeName {
			return styles.DataType.Render(e.TypeOfData)
		}
		return styles.ReferenceType.Render(e.TypeOfData)
	})
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	r.Muted(summaryLine(records))
}

// previewMarkdown outputs the preview as a markdown table.
func previewMarkdown(r *output.Renderer, records nodeids.RecordSet) {
	r.Println(output.FormatHeader(2, previewTitle))
	r.Println("")

	entries := previewEntries(records)
	if len(entries) == 0 {
		r.Println("_No data type or reference type rows._")
		r.Println("")
		return
	}

	t := previewTable(entries, func(e output.PreviewEntry) string { return e.TypeOfData })
	r.Println(t.RenderMarkdown())
	r.Println("")
	r.Println(summaryLine(records))
	r.Println("")
}

func previewTable(entries []output.PreviewEntry, kind func(output.PreviewEntry) string) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Alias", "NodeId", "TypeOfData"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Alias, e.NodeID, kind(e)})
	}
	return t
}

func summaryLine(records nodeids.RecordSet) string {
	c := records.Count()
	return fmt.Sprintf("%d data types, %d reference types, %d other rows skipped",
		c.DataTypes, c.ReferenceTypes, c.Other)
}
