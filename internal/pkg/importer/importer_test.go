package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSVHeaderAliases(t *testing.T) {
	csvData := `Student Name,Roll No.,Date of Birth,Sex,Contact No,Father's Name,Total Fee,Fee Paid
Asha Verma,12,15-06-2012,F,9876543210,Ramesh Verma,"₹12,000",5000
Bilal Khan,,2011-03-04,m,,,,`

	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Students, 2)
	assert.Empty(t, result.Warnings)

	asha := result.Students[0]
	assert.Equal(t, "Asha Verma", asha.Name)
	assert.Equal(t, "12", asha.RollNo)
	assert.Equal(t, "2012-06-15", asha.DOB)
	assert.Equal(t, "female", asha.Gender)
	assert.Equal(t, "9876543210", asha.Phone)
	assert.Equal(t, "Ramesh Verma", asha.Parent.FatherName)
	assert.Equal(t, 12000.0, asha.Fee.Total)
	assert.Equal(t, 5000.0, asha.Fee.Paid)

	bilal := result.Students[1]
	assert.Equal(t, "male", bilal.Gender)
	assert.Equal(t, "2011-03-04", bilal.DOB)
}

func TestParseCSVFirstLastNameFallback(t *testing.T) {
	csvData := `First Name,Last Name,Email
Asha,Verma,asha@example.com
Bilal,,bilal@example.com`

	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Students, 2)
	assert.Equal(t, "Asha Verma", result.Students[0].Name)
	assert.Equal(t, "Bilal", result.Students[1].Name)
}

func TestParseCSVSkipsRowsWithoutName(t *testing.T) {
	csvData := `Name,Phone
Asha,123
,456
,,
Chand,789`

	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, result.Students, 2)

	// The blank row is dropped silently; the row with data but no name warns.
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "row 3: skipped, no name", result.Warnings[0])
}

func TestParseCSVWarnsOnBadDate(t *testing.T) {
	csvData := `Name,DOB
Asha,not-a-date`

	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Students, 1)
	assert.Empty(t, result.Students[0].DOB)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unrecognized date "not-a-date"`)
}

func TestParseCSVNoNameColumn(t *testing.T) {
	csvData := `Phone,Email
123,a@example.com`

	_, err := ParseCSV(strings.NewReader(csvData))
	assert.ErrorContains(t, err, "no name column")
}

func TestParseCSVNoUsableRows(t *testing.T) {
	csvData := `Name,Phone
,123`

	_, err := ParseCSV(strings.NewReader(csvData))
	assert.ErrorContains(t, err, "no usable rows")
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Roll Number", "Gender"},
		{"Asha Verma", "A-12", "girl"},
		{"Bilal Khan", "A-13", "boy"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	result, err := Parse(&buf, "roster.xlsx")
	require.NoError(t, err)
	require.Len(t, result.Students, 2)
	assert.Equal(t, "Asha Verma", result.Students[0].Name)
	assert.Equal(t, "A-12", result.Students[0].RollNo)
	assert.Equal(t, "female", result.Students[0].Gender)
	assert.Equal(t, "male", result.Students[1].Gender)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse(strings.NewReader("data"), "roster.pdf")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{name: "iso passthrough", raw: "2012-06-15", expected: "2012-06-15"},
		{name: "day first dashes", raw: "15-06-2012", expected: "2012-06-15"},
		{name: "day first slashes", raw: "15/06/2012", expected: "2012-06-15"},
		{name: "day first dots", raw: "15.06.2012", expected: "2012-06-15"},
		{name: "single digit day and month", raw: "5/6/2012", expected: "2012-06-05"},
		{name: "textual month", raw: "15 Jun 2012", expected: "2012-06-15"},
		{name: "excel serial", raw: "41075", expected: "2012-06-15"},
		{name: "garbage", raw: "soon", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
	}{
		{"12000", 12000},
		{"12,000", 12000},
		{"₹12,000.50", 12000.50},
		{"Rs 500", 500},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expected, got, tt.raw)
	}

	_, err := parseAmount("free")
	assert.Error(t, err)
}
