package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"quoter/config"
)

// table is a source file read into memory: a header index and the data rows after it.
// lines[i] is the 1-based source line of rows[i].
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
	lines   []int
}

// cell returns the trimmed value of the named column, or "" when the row is short.
func (t *table) cell(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing column(s): %s", t.path, strings.Join(missing, ", "))
	}
	return nil
}

// readTable loads a .csv or .xlsx source. The first row must be the header.
func readTable(path, encoding string) (*table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path)
	default:
		records, err = readCSV(path, encoding)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	t := &table{path: path, columns: make(map[string]int)}
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := t.columns[key]; !dup {
			t.columns[key] = i
		}
	}
	for i, r := range records[1:] {
		if isBlank(r) {
			continue
		}
		t.rows = append(t.rows, r)
		t.lines = append(t.lines, i+2)
	}
	return t, nil
}

func readCSV(path, encoding string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	var decoder transform.Transformer
	switch encoding {
	case config.EncodingShiftJIS:
		decoder = japanese.ShiftJIS.NewDecoder()
	default:
		decoder = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}

	r := csv.NewReader(transform.NewReader(f, decoder))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		records = append(records, row)
	}
	return records, nil
}

// readWorkbook reads the active sheet of an Excel workbook.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
