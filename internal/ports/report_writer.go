package ports

import "context"

// ReportTable is the flat projection of ledger rows handed to a file writer.
type ReportTable struct {
	Columns []string
	Rows    [][]string
}

// ReportWriter materializes a report table as a spreadsheet artifact.
type ReportWriter interface {
	Write(ctx context.Context, path string, table ReportTable) error
}
