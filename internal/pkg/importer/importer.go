// Package importer parses roster files (CSV and XLSX) exported from
// whatever tool an institution already uses. Headers are matched loosely
// against known aliases, dates are normalized to ISO form and rows with no
// usable name are dropped with a warning.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/xuri/excelize/v2"
)

// Result is the outcome of parsing one roster file.
type Result struct {
	Students []models.StudentInput
	Warnings []string
}

// Parse dispatches on the file extension. Only .csv and .xlsx are
// supported.
func Parse(r io.Reader, filename string) (*Result, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return ParseCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// ParseCSV reads a comma-separated roster with a header row.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}

	return fromRows(rows)
}

// ParseXLSX reads the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	return fromRows(rows)
}

func fromRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := buildHeaderIndex(rows[0])
	if _, ok := header["name"]; !ok {
		if _, ok := header["firstname"]; !ok {
			return nil, fmt.Errorf("no name column found in header")
		}
	}

	result := &Result{}
	for i, row := range rows[1:] {
		student, warnings := rowToStudent(header, row)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", i+2, w))
		}
		if student == nil {
			continue
		}
		result.Students = append(result.Students, *student)
	}

	if len(result.Students) == 0 {
		return nil, fmt.Errorf("no usable rows found")
	}

	return result, nil
}

// headerAliases maps normalized column headers onto canonical field names.
// Normalization strips everything but letters and digits and lowercases, so
// "Roll No.", "roll_no" and "RollNo" all land on the same key.
var headerAliases = map[string]string{
	"name":            "name",
	"studentname":     "name",
	"fullname":        "name",
	"firstname":       "firstname",
	"lastname":        "lastname",
	"rollno":          "rollno",
	"roll":            "rollno",
	"rollnumber":      "rollno",
	"enrollmentno":    "rollno",
	"admissionno":     "admissionno",
	"admission":       "admissionno",
	"admissionnumber": "admissionno",
	"gender":          "gender",
	"sex":             "gender",
	"dob":             "dob",
	"dateofbirth":     "dob",
	"birthdate":       "dob",
	"email":           "email",
	"emailid":         "email",
	"phone":           "phone",
	"mobile":          "phone",
	"phoneno":         "phone",
	"contactno":       "phone",
	"address":         "address",
	"city":            "city",
	"state":           "state",
	"pincode":         "pincode",
	"pin":             "pincode",
	"zipcode":         "pincode",
	"fathername":      "fathername",
	"fathersname":     "fathername",
	"mothername":      "mothername",
	"mothersname":     "mothername",
	"guardianname":    "guardianname",
	"fatherphone":     "fatherphone",
	"motherphone":     "motherphone",
	"guardianphone":   "guardianphone",
	"parentemail":     "parentemail",
	"feetotal":        "feetotal",
	"totalfee":        "feetotal",
	"fee":             "feetotal",
	"feepaid":         "feepaid",
	"paidfee":         "feepaid",
	"status":          "status",
}

func buildHeaderIndex(headerRow []string) map[string]int {
	index := make(map[string]int)
	for i, cell := range headerRow {
		canonical, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, taken := index[canonical]; !taken {
			index[canonical] = i
		}
	}
	return index
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func rowToStudent(header map[string]int, row []string) (*models.StudentInput, []string) {
	cell := func(field string) string {
		idx, ok := header[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := cell("name")
	if name == "" {
		name = strings.TrimSpace(cell("firstname") + " " + cell("lastname"))
	}
	if name == "" {
		if rowIsEmpty(row) {
			return nil, nil
		}
		return nil, []string{"skipped, no name"}
	}

	var warnings []string
	student := &models.StudentInput{
		Name:        name,
		RollNo:      cell("rollno"),
		AdmissionNo: cell("admissionno"),
		Gender:      normalizeGender(cell("gender")),
		Email:       cell("email"),
		Phone:       cell("phone"),
		Address:     cell("address"),
		City:        cell("city"),
		State:       cell("state"),
		Pincode:     cell("pincode"),
		Status:      normalizeStatus(cell("status")),
		Parent: models.ParentInfo{
			FatherName:    cell("fathername"),
			MotherName:    cell("mothername"),
			GuardianName:  cell("guardianname"),
			FatherPhone:   cell("fatherphone"),
			MotherPhone:   cell("motherphone"),
			GuardianPhone: cell("guardianphone"),
			Email:         cell("parentemail"),
		},
	}

	if raw := cell("dob"); raw != "" {
		dob, err := NormalizeDate(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unrecognized date %q", raw))
		} else {
			student.DOB = dob
		}
	}

	if raw := cell("feetotal"); raw != "" {
		if v, err := parseAmount(raw); err == nil {
			student.Fee.Total = v
		} else {
			warnings = append(warnings, fmt.Sprintf("unrecognized fee amount %q", raw))
		}
	}
	if raw := cell("feepaid"); raw != "" {
		if v, err := parseAmount(raw); err == nil {
			student.Fee.Paid = v
		}
	}

	return student, warnings
}

func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male", "m", "boy":
		return "male"
	case "female", "f", "girl":
		return "female"
	case "":
		return ""
	default:
		return "other"
	}
}

func normalizeStatus(s string) string {
	if strings.ToLower(strings.TrimSpace(s)) == "inactive" {
		return "inactive"
	}
	return "active"
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		case r == ',':
			return -1
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in %q", raw)
	}
	return strconv.ParseFloat(cleaned, 64)
}
