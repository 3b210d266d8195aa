package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/storeops/salesdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "SalesPerson,GSV,Category,SubCategory,Quantity,InvoiceNumber,BillDate,ProductName\n"

func parseSample(t *testing.T, csv string) []domain.SaleLine {
	t.Helper()
	rows, err := NewParser(domain.WeekSchemeRetail).ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return rows
}

func TestParseCSVDayFirstDates(t *testing.T) {
	csv := sampleHeader +
		"Alice,5000,Electronics,Phones,1,101,04/05/2025,Charger\n"

	rows := parseSample(t, csv)
	require.Len(t, rows, 1)
	// 04/05/2025 is 4 May, not 5 April
	assert.Equal(t, time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), rows[0].BillDate)
	assert.Equal(t, "Sunday", rows[0].DayName)
	assert.Equal(t, "May 2025", rows[0].Month)
}

func TestParseCSVDropsUnparseableDates(t *testing.T) {
	csv := sampleHeader +
		"Alice,5000,Electronics,Phones,1,101,04/05/2025,Charger\n" +
		"Bob,3000,Electronics,Phones,2,102,not-a-date,Cable\n"

	rows := parseSample(t, csv)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].SalesPerson)
}

func TestParseCSVAllDatesBadIsDateParseError(t *testing.T) {
	csv := sampleHeader +
		"Alice,5000,Electronics,Phones,1,101,garbage,Charger\n" +
		"Bob,3000,Electronics,Phones,2,102,also-garbage,Cable\n"

	_, err := NewParser(domain.WeekSchemeRetail).ParseCSV(strings.NewReader(csv))
	var dateErr *DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, ColBillDate, dateErr.Column)
}

func TestParseCSVMissingColumnsIsSchemaError(t *testing.T) {
	csv := "SalesPerson,Category,Quantity\nAlice,Electronics,1\n"

	_, err := NewParser(domain.WeekSchemeRetail).ParseCSV(strings.NewReader(csv))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, ColGSV)
	assert.Contains(t, schemaErr.Columns, "SalesPerson")
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := NewParser(domain.WeekSchemeRetail).ParseCSV(strings.NewReader(sampleHeader))
	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
}

func TestParseCSVTolerantNumericParsing(t *testing.T) {
	csv := sampleHeader +
		"Alice,\"1,250.50\",Electronics,Phones,2.0,101,04/05/2025,Charger\n"

	rows := parseSample(t, csv)
	require.Len(t, rows, 1)
	assert.Equal(t, "1250.5", rows[0].GrossValue.String())
	assert.Equal(t, int64(2), rows[0].Quantity)
}

func TestRetailWeekLabel(t *testing.T) {
	cases := []struct {
		day  int
		week int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{31, 5},
	}
	for _, tc := range cases {
		d := time.Date(2025, 5, tc.day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.week, WeekLabel(d, domain.WeekSchemeRetail), "day %d", tc.day)
	}
}

func TestISOWeekLabel(t *testing.T) {
	// 1 May 2025 is a Thursday in ISO week 18
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 18, WeekLabel(d, domain.WeekSchemeISO))
}

func TestParseFileRejectsUnknownExtension(t *testing.T) {
	_, err := NewParser(domain.WeekSchemeRetail).ParseFile("report.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}
