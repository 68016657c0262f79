// Package renderer turns the engine's reports into markdown documents.
package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/patrimonio"
)

// RenderSummary renders the full patrimony summary to a markdown string.
func RenderSummary(s *patrimonio.Summary) string {
	partials := map[string]string{
		"summary_assets":      "summary_assets.md",
		"summary_totals":      "summary_totals.md",
		"summary_allocation":  "allocation_table.md",
		"summary_deposits":    "summary_deposits.md",
		"summary_properties":  "summary_properties.md",
		"summary_diagnostics": "summary_diagnostics.md",
	}
	data := struct {
		*Overview
		Allocation *Allocation
	}{NewOverview(s), NewAllocation(s.Allocation)}
	return renderTemplate("summary", "summary.md", partials, data)
}

// RenderAllocation renders the allocation-vs-target comparison alone.
func RenderAllocation(r *patrimonio.AllocationReport) string {
	partials := map[string]string{
		"allocation_table": "allocation_table.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, NewAllocation(r))
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
