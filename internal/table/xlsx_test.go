package table

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "plots.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"Geometry", "Area"},
			{"POINT (1 2)", "3.5"},
			{"POINT (3 4)", ""},
		},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Geometry", "Area"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "POINT (1 2)", tbl.Rows[0]["Geometry"])
	assert.Equal(t, "3.5", tbl.Rows[0]["Area"])
}

func TestReadXLSX_SheetName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"First":  {{"a"}},
		"Second": {{"Geometry"}, {"POINT (0 0)"}},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Geometry"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
}

func TestReadXLSX_SheetNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ReadXLSX(path, XLSXOptions{})
	require.Error(t, err)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"Geometry"}, {"POINT (0 0)"}}})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	tbl, err := Read(context.Background(), "upload.XLSX", bytes.NewReader(data), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Geometry"}, tbl.Columns)

	tbl, err = Read(context.Background(), "upload.csv", bytes.NewReader([]byte("A,B\n1,2\n")), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tbl.Columns)
}

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots.csv")
	require.NoError(t, os.WriteFile(path, []byte("Geometry\nPOINT (0 0)\n"), 0o644))

	tbl, err := ReadFile(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)

	_, err = ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.Error(t, err)
}
