package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/extrame/xls"
	"github.com/sunthewhat/easy-cert-form/common/util"
	"github.com/sunthewhat/easy-cert-form/type/shared"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnName    = "Name"
	ColumnCollege = "College"
	ColumnEvent   = "Event"
	ColumnEmail   = "Email"
)

var AllowedExtensions = []string{"xls", "xlsx", "csv"}

var (
	ErrMissingNameColumn = errors.New("spreadsheet has no Name column")
	ErrUnsupportedType   = errors.New("unsupported spreadsheet type")
)

// Table is a spreadsheet reduced to a header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Defaults fill College and Event for sheets that do not carry those columns.
type Defaults struct {
	College string
	Event   string
}

func IsAllowed(filename string) bool {
	return slices.Contains(AllowedExtensions, util.Extension(filename))
}

func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	return Read(file, util.Extension(path))
}

// Read parses r according to ext ("csv", "xlsx" or "xls"). The first non-blank row is the header.
func Read(r io.ReadSeeker, ext string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(ext) {
	case "csv":
		rows, err = readCSV(r)
	case "xlsx":
		rows, err = readXLSX(r)
	case "xls":
		rows, err = readXLS(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, err
	}

	return newTable(rows), nil
}

func newTable(rows [][]string) *Table {
	table := &Table{}
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		table.Header = row
		table.Rows = rows[i+1:]
		break
	}
	return table
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(r io.ReadSeeker) (rows [][]string, err error) {
	// the BIFF reader panics on truncated workbooks
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("failed to parse XLS: %v", p)
		}
	}()

	workbook, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open XLS: %w", err)
	}

	worksheet := workbook.GetSheet(0)
	if worksheet == nil {
		return nil, nil
	}

	width := 0
	for i := 0; i <= int(worksheet.MaxRow); i++ {
		row := xlsRow(worksheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		// rows without a ROW record report LastCol 0, so read at least as wide as the rows above
		width = max(width, row.LastCol())
		cells := make([]string, 0, width+1)
		for j := 0; j <= width; j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, trimTrailing(cells))
	}
	return rows, nil
}

// xlsRow returns nil for rows the sheet never stored; WorkSheet.Row dereferences them blindly.
func xlsRow(worksheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return worksheet.Row(i)
}

// Requests turns the table into certificate requests. Rows whose Name is blank are skipped.
func (t *Table) Requests(defaults Defaults) ([]shared.CertificateRequest, error) {
	nameIdx := t.column(ColumnName)
	if nameIdx < 0 {
		return nil, ErrMissingNameColumn
	}
	collegeIdx := t.column(ColumnCollege)
	eventIdx := t.column(ColumnEvent)
	emailIdx := t.column(ColumnEmail)

	requests := make([]shared.CertificateRequest, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}

		request := shared.CertificateRequest{
			Name:    name,
			College: defaults.College,
			Event:   defaults.Event,
			Email:   cell(row, emailIdx),
		}
		if collegeIdx >= 0 {
			request.College = cell(row, collegeIdx)
		}
		if eventIdx >= 0 {
			request.Event = cell(row, eventIdx)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (t *Table) column(name string) int {
	for i, header := range t.Header {
		if strings.EqualFold(strings.TrimSpace(header), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
