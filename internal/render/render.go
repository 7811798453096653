// Package render prints analysis results as terminal reports
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tildaslashalef/lintwire/internal/lint"
)

var (
	errorBadge   = color.New(color.FgRed, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	successMark  = color.New(color.FgGreen)
	subtle       = color.New(color.Faint)
)

// Report writes a human-readable report of one analysis run
func Report(w io.Writer, name string, result *lint.ParseResult) {
	fmt.Fprintf(w, "%s\n\n", color.New(color.Bold).Sprint(name))

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%s no issues found\n", successMark.Sprint("✓"))
	} else {
		diagnosticsTable(w, result)
	}

	if len(result.Variables) > 0 {
		fmt.Fprintln(w)
		variablesTable(w, result.Variables)
	}

	fmt.Fprintf(w, "\n%s\n", subtle.Sprintf("%d error(s), %d warning(s), %d variable(s)",
		len(result.Errors), len(result.Warnings), len(result.Variables)))
}

// diagnosticsTable renders errors and warnings in analyzer order,
// errors first
func diagnosticsTable(w io.Writer, result *lint.ParseResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Severity", "Location", "Message"})

	for _, d := range result.Errors {
		t.AppendRow(table.Row{errorBadge.Sprint("error"), formatRange(d.Range), d.Message})
	}
	for _, d := range result.Warnings {
		t.AppendRow(table.Row{warningBadge.Sprint("warning"), formatRange(d.Range), d.Message})
	}

	t.Render()
}

// variablesTable renders variable definition/usage records
func variablesTable(w io.Writer, variables []lint.VariableInfo) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Variable", "Scope", "Defined", "Used", "Comment"})

	for _, v := range variables {
		scope := "global"
		if v.IsLocal() {
			scope = "local"
		}
		t.AppendRow(table.Row{
			v.Name,
			scope,
			formatRanges(v.Definitions),
			formatRanges(v.Usage),
			v.Comment,
		})
	}

	t.Render()
}

// newTable creates a table with the house style
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	style := table.StyleLight
	style.Color.Header = text.Colors{text.Bold}
	style.Options.SeparateRows = false
	t.SetStyle(style)

	return t
}

// formatRange renders a range as one-based line:column for humans; the
// underlying ranges stay zero-based for editors
func formatRange(r *lint.Range) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", r.Start.Line+1, r.Start.Character+1)
}

func formatRanges(ranges []lint.Range) string {
	if len(ranges) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ranges))
	for i := range ranges {
		parts = append(parts, formatRange(&ranges[i]))
	}
	return strings.Join(parts, ", ")
}
