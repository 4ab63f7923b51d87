package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"maps-scraper/models"
)

const sheetName = "Businesses"

// XLSXWriter accumulates businesses in a workbook and saves it after every
// batch, so the file on disk is always complete.
type XLSXWriter struct {
	mu   sync.Mutex
	path string
	file *excelize.File
	next int
}

func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrap(err, "xlsx: create output dir")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, eris.Wrap(err, "xlsx: rename sheet")
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, eris.Wrap(err, "xlsx: write header")
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}
	for i := 1; i <= len(Columns); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		_ = f.SetColWidth(sheetName, col, col, 24)
	}

	w := &XLSXWriter{path: path, file: f, next: 2}
	if err := f.SaveAs(path); err != nil {
		return nil, eris.Wrapf(err, "xlsx: save %q", path)
	}
	return w, nil
}

func (x *XLSXWriter) Write(businesses []*models.Business) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, b := range businesses {
		cell, err := excelize.CoordinatesToCellName(1, x.next)
		if err != nil {
			return eris.Wrap(err, "xlsx: cell name")
		}
		values := args(b)
		if err := x.file.SetSheetRow(sheetName, cell, &values); err != nil {
			return eris.Wrap(err, "xlsx: write row")
		}
		x.next++
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return eris.Wrapf(err, "xlsx: save %q", x.path)
	}
	return nil
}

func (x *XLSXWriter) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.file.Close()
}
