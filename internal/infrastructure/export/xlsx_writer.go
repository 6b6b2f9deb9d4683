package export

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"

	"triagem/internal/errs"
	"triagem/internal/ports"
)

const sheetName = "Triagem"

// XLSXWriter materializes report tables as .xlsx workbooks.
type XLSXWriter struct{}

var _ ports.ReportWriter = (*XLSXWriter)(nil)

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (w *XLSXWriter) Write(ctx context.Context, path string, table ports.ReportTable) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if path == "" {
		return errors.New("output path is required")
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return errs.Wrap(err, "rename sheet")
	}

	if err := writeRow(f, 1, table.Columns); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errs.Wrapf(err, "save report %q", path)
	}
	return nil
}

func writeRow(f *excelize.File, rowIndex int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIndex)
		if err != nil {
			return errs.Wrap(err, "resolve cell name")
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return errs.Wrapf(err, "set cell %s", cell)
		}
	}
	return nil
}
