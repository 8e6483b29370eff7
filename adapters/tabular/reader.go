package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"datascope/domain/dataset"
	"datascope/internal"
	"datascope/internal/errors"
)

// Reader loads Excel and CSV files into the engine's column shape.
// Every cell is pre-normalized to {number | text | null}: empty cells
// and short rows become null, numeric-looking text becomes a number.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewReader creates a reader for the given file path; the extension
// picks the format, defaulting to xlsx.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger.Named("tabular")}
}

// Read loads and normalizes the file into a Dataset.
func (r *Reader) Read() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InvalidInputf("unsupported file type %q", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInputf("%s file must have a header row and at least one data row", strings.ToUpper(r.fileType))
	}

	ds := buildDataset(rows)
	r.logger.Info("loaded %s file %s (%d columns, %d rows)",
		strings.ToUpper(r.fileType), r.filePath, len(ds.Columns), ds.RowCount())
	return ds, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.FileReadError(r.filePath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.FileReadError(r.filePath, err)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.FileReadError(r.filePath, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV reads CSV rows from any source, tolerating ragged row lengths.
func ReadCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV input")
	}
	return rows, nil
}

// BuildDataset converts raw string rows (header first) into normalized
// columns. Cells beyond a short row are null.
func BuildDataset(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("input must have a header row and at least one data row")
	}
	return buildDataset(rows), nil
}

func buildDataset(rows [][]string) *dataset.Dataset {
	headers := rows[0]
	columns := make([]dataset.Column, len(headers))
	for i, header := range headers {
		columns[i] = dataset.Column{
			Name:   strings.TrimSpace(header),
			Values: make([]dataset.Value, 0, len(rows)-1),
		}
	}

	for _, row := range rows[1:] {
		for i := range columns {
			if i < len(row) {
				columns[i].Values = append(columns[i].Values, NormalizeCell(row[i]))
			} else {
				columns[i].Values = append(columns[i].Values, dataset.Null())
			}
		}
	}

	return &dataset.Dataset{Columns: columns}
}

// NormalizeCell maps one raw cell to the tagged value type: blank means
// null, parseable-and-finite means number, anything else stays text.
func NormalizeCell(raw string) dataset.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return dataset.Null()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		v := dataset.NewNumber(n)
		if v.IsNumber() {
			return v
		}
		// Inf/NaN literals parse but are not usable numbers.
		return dataset.NewText(trimmed)
	}
	return dataset.NewText(trimmed)
}
