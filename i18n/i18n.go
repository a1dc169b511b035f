// Package i18n defines the translation contract consumed by the report
// engine and ships a built-in English catalog so the engine works
// standalone. Hosts with a full localization pipeline supply their own
// TranslateFunc; the engine never inspects catalogs directly.
package i18n

import (
	"fmt"
	"strings"
)

// TranslateFunc resolves a dotted message key to display text, substituting
// {name}-style placeholders from params. Implementations must return a
// visible string for unknown keys (conventionally the key itself) rather
// than failing.
type TranslateFunc func(key string, params map[string]any) string

// Table builds a TranslateFunc from a flat key/value catalog. Unknown keys
// come back unchanged so missing translations surface in the output instead
// of aborting generation.
func Table(catalog map[string]string) TranslateFunc {
	return func(key string, params map[string]any) string {
		msg, ok := catalog[key]
		if !ok {
			return key
		}
		for name, value := range params {
			msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
		}
		return msg
	}
}

// Default returns the built-in English catalog covering every key the
// report engine emits.
func Default() TranslateFunc {
	return Table(english)
}

var english = map[string]string{
	"report.title":                 "Threat Model Report",
	"report.summary.title":         "Summary",
	"report.summary.owner":         "Owner",
	"report.summary.version":       "Version",
	"report.summary.status":        "Status",
	"report.summary.created":       "Created",
	"report.summary.modified":      "Modified",
	"report.summary.description":   "Description",
	"report.summary.tags":          "Tags",
	"report.sections.inputs":       "Inputs",
	"report.sections.outputs":      "Outputs",
	"report.sections.assets":       "Assets",
	"report.sections.documents":    "Documents",
	"report.sections.repositories": "Repositories",
	"report.sections.diagrams":     "Diagrams",
	"report.sections.threats":      "Threats",
	"report.sections.notes":        "Notes",
	"report.table.name":            "Name",
	"report.table.type":            "Type",
	"report.table.sensitivity":     "Sensitivity",
	"report.table.description":     "Description",
	"report.table.url":             "URL",
	"report.threats.category":      "Category",
	"report.threats.severity":      "Severity",
	"report.threats.likelihood":    "Likelihood",
	"report.threats.impact":        "Impact",
	"report.threats.riskScore":     "Risk Score",
	"report.threats.status":        "Status",
	"report.threats.assignedTo":    "Assigned To",
	"report.threats.mitigation":    "Mitigation",
	"report.threats.description":   "Description",
	"report.footer.page":           "Page {page} of {pages}",
	"report.diagrams.renderFailed": "Diagram image could not be rendered: {name}",
}
