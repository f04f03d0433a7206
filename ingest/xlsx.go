package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX ingests the first sheet of a spreadsheet pricebook using the same
// header-location and re-keying policy as ReadCSV.
func ReadXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSourceUnreadable)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrSourceUnreadable)
	}

	return reframe(rows, LocateHeader(rows)), nil
}

// ReadXLSXFile is ReadXLSX over a file on disk.
func ReadXLSXFile(path string) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSourceUnreadable)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrSourceUnreadable)
	}

	return reframe(rows, LocateHeader(rows)), nil
}

// ReadFile dispatches on file extension: .xlsx/.xlsm go through excelize,
// everything else is treated as delimited text.
func ReadFile(path string) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSXFile(path)
	default:
		return ReadCSVFile(path)
	}
}
