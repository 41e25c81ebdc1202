// Package query contains read operations (CQRS - Queries): the report
// aggregator and the roster export. Queries never mutate the directory.
package query

import "context"

// RowTone requests a visual tint for a table row in the exported file.
type RowTone int

const (
	// ToneNone leaves the row unstyled.
	ToneNone RowTone = iota
	// ToneGood tints the row green (present / attendance above threshold).
	ToneGood
	// ToneBad tints the row red (absent / attendance below threshold).
	ToneBad
)

// TableRow is one row of report output.
type TableRow struct {
	Cells []string
	Tone  RowTone
}

// Table is the structured report output handed to the exporter: a header
// row, data rows, and free-form summary lines rendered below the table.
type Table struct {
	Sheet   string
	Headers []string
	Rows    []TableRow
	Summary []string
}

// Exporter is the outbound port that renders a table to a tabular file on
// disk. The engine does not know or care about the file format.
type Exporter interface {
	Write(ctx context.Context, table Table, path string) error
}

// NopExporter discards tables. Useful in tests that only check statistics.
type NopExporter struct{}

// Write implements Exporter.
func (NopExporter) Write(context.Context, Table, string) error { return nil }

// Localized presence and sentinel values used in report cells. These are
// display symbols of the domain, the same ones the paper reports have
// always used, not translatable UI strings.
const (
	PresencePresent = "حاضر"
	PresenceAbsent  = "غائب"
	NoEvaluation    = "بدون تقييم"
	NoNotes         = "بدون ملاحظات"
)
