package sheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-form/type/shared"
	"github.com/xuri/excelize/v2"
)

func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()

	sheetName := file.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheetName, cellName, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestIsAllowed(t *testing.T) {
	testCases := []struct {
		filename string
		allowed  bool
	}{
		{"names.csv", true},
		{"names.xlsx", true},
		{"names.XLS", true},
		{"names.txt", false},
		{"names.pdf", false},
		{"csv", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.allowed, IsAllowed(tc.filename))
		})
	}
}

func TestRead_CSV(t *testing.T) {
	input := "Name,College,Event\nAda,Analytical,Hackathon\nGrace,Vassar,Symposium\nAlan,King's,Quiz\n"

	table, err := Read(strings.NewReader(input), "csv")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{})
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, shared.CertificateRequest{Name: "Ada", College: "Analytical", Event: "Hackathon"}, requests[0])
	assert.Equal(t, "Alan", requests[2].Name)
	assert.Equal(t, "King's", requests[2].College)
}

func TestRead_CSVWithBOMAndLooseHeader(t *testing.T) {
	input := "\xef\xbb\xbf name ,EVENT\nAda,Hackathon\n"

	table, err := Read(strings.NewReader(input), "CSV")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{College: "Form College"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, shared.CertificateRequest{Name: "Ada", College: "Form College", Event: "Hackathon"}, requests[0])
}

func TestRequests_MissingNameColumn(t *testing.T) {
	input := "Student,College\nAda,Analytical\n"

	table, err := Read(strings.NewReader(input), "csv")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{})
	assert.True(t, errors.Is(err, ErrMissingNameColumn))
	assert.Nil(t, requests)
}

func TestRequests_SkipsBlankNames(t *testing.T) {
	input := "Name,College,Event\nAda,A,E\n   ,B,F\n,C,G\nGrace,D,H\n\n"

	table, err := Read(strings.NewReader(input), "csv")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{})
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "Ada", requests[0].Name)
	assert.Equal(t, "Grace", requests[1].Name)
}

func TestRequests_DefaultsOnlyWhenColumnMissing(t *testing.T) {
	input := "Name,College\nAda,\nGrace,Vassar\n"

	table, err := Read(strings.NewReader(input), "csv")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{College: "Form College", Event: "Form Event"})
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, "", requests[0].College, "An empty College cell stays empty when the column exists")
	assert.Equal(t, "Vassar", requests[1].College)
	assert.Equal(t, "Form Event", requests[0].Event)
	assert.Equal(t, "Form Event", requests[1].Event)
}

func TestRequests_ShortRowsAndEmail(t *testing.T) {
	input := "Name,College,Event,Email\nAda\nGrace,Vassar,Symposium,grace@example.com\n"

	table, err := Read(strings.NewReader(input), "csv")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{})
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, shared.CertificateRequest{Name: "Ada"}, requests[0])
	assert.Equal(t, "grace@example.com", requests[1].Email)
}

func TestRead_EmptyCSV(t *testing.T) {
	table, err := Read(strings.NewReader(""), "csv")
	require.NoError(t, err)

	_, err = table.Requests(Defaults{})
	assert.ErrorIs(t, err, ErrMissingNameColumn)
}

func TestRead_XLSX(t *testing.T) {
	data := xlsxBytes(t, [][]any{
		{"Name", "College", "Event"},
		{"Ada", "Analytical", "Hackathon"},
		{"", "Nobody", "Nothing"},
		{"Grace", "Vassar", "Symposium"},
		{1234, "Numbers", "Quiz"},
	})

	table, err := Read(bytes.NewReader(data), "xlsx")
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{})
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, shared.CertificateRequest{Name: "Ada", College: "Analytical", Event: "Hackathon"}, requests[0])
	assert.Equal(t, "Grace", requests[1].Name)
	assert.Equal(t, "1234", requests[2].Name)
}

func TestReadFile_XLSX(t *testing.T) {
	data := xlsxBytes(t, [][]any{
		{"Name"},
		{"Ada"},
	})
	path := filepath.Join(t.TempDir(), "names.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0644))

	table, err := ReadFile(path)
	require.NoError(t, err)

	requests, err := table.Requests(Defaults{Event: "Form Event"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Form Event", requests[0].Event)
}

func TestReadFile_XLS(t *testing.T) {
	// names.xls: header, a full row, a missing row 3, a short row and a numeric Event cell
	table, err := ReadFile(filepath.Join("testdata", "names.xls"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "College", "Event", "Email"}, table.Header)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, []string{"Ada", "Analytical", "Engines", "ada@example.com"}, table.Rows[0])
	assert.Empty(t, table.Rows[1])
	assert.Equal(t, []string{"Grace", "Navy"}, table.Rows[2])
	assert.Equal(t, []string{"Alan", "Kings", "2024"}, table.Rows[3])

	requests, err := table.Requests(Defaults{College: "Ignored", Event: "Ignored"})
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, shared.CertificateRequest{Name: "Ada", College: "Analytical", Event: "Engines", Email: "ada@example.com"}, requests[0])
	assert.Equal(t, shared.CertificateRequest{Name: "Grace", College: "Navy"}, requests[1])
	assert.Equal(t, shared.CertificateRequest{Name: "Alan", College: "Kings", Event: "2024"}, requests[2])
}

func TestRead_CorruptWorkbooks(t *testing.T) {
	for _, ext := range []string{"xlsx", "xls"} {
		t.Run(ext, func(t *testing.T) {
			_, err := Read(bytes.NewReader([]byte("definitely not a workbook")), ext)
			assert.Error(t, err)
		})
	}
}

func TestRead_UnsupportedType(t *testing.T) {
	_, err := Read(strings.NewReader("Name\nAda\n"), "txt")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
