package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeops/salesdash/internal/domain"
)

// dateLayouts are tried in order. Day-first layouts come first so an
// ambiguous value like 04/05/2025 reads as 4 May, not 5 April.
var dateLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parser turns a raw article sale report into normalized SaleLines.
type Parser struct {
	weekScheme domain.WeekScheme
}

func NewParser(scheme domain.WeekScheme) *Parser {
	return &Parser{weekScheme: scheme}
}

// ParseFile reads a CSV or XLSX export from disk.
func (p *Parser) ParseFile(path string) ([]domain.SaleLine, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
		}
		defer f.Close()
		return p.ParseCSV(f)
	case ".xlsx":
		records, err := readXLSXRecords(path)
		if err != nil {
			return nil, err
		}
		return p.ParseRecords(records)
	default:
		return nil, fmt.Errorf("unsupported file extension %s for %s (csv or xlsx expected)", ext, path)
	}
}

// ParseCSV reads a comma-delimited export with a header row.
func (p *Parser) ParseCSV(r io.Reader) ([]domain.SaleLine, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return p.ParseRecords(records)
}

// ParseRecords normalizes raw records (header row first) into SaleLines.
// Rows with unparseable bill dates are dropped. It fails with SchemaError
// when required columns are missing, DateParseError when no row's date
// parses, and EmptyInputError when no data rows survive.
func (p *Parser) ParseRecords(records [][]string) ([]domain.SaleLine, error) {
	if len(records) == 0 {
		return nil, &EmptyInputError{}
	}

	header := records[0]
	index, missing := ResolveHeader(header)
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Columns: CanonicalHeader(header)}
	}

	get := func(record []string, col string) string {
		idx, ok := index[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]domain.SaleLine, 0, len(records)-1)
	var dataRows int
	var badDateSample string
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		dataRows++

		rawDate := get(record, ColBillDate)
		billDate, ok := parseDate(rawDate)
		if !ok {
			if badDateSample == "" {
				badDateSample = rawDate
			}
			continue
		}

		rows = append(rows, domain.SaleLine{
			InvoiceNumber: get(record, ColInvoiceNumber),
			SalesPerson:   get(record, ColSalesPerson),
			Category:      get(record, ColCategory),
			SubCategory:   get(record, ColSubCategory),
			ProductName:   get(record, ColProductName),
			Quantity:      parseQuantity(get(record, ColQuantity)),
			GrossValue:    parseValue(get(record, ColGSV)),
			BillDate:      billDate,
			DayName:       billDate.Weekday().String(),
			Week:          WeekLabel(billDate, p.weekScheme),
			Month:         billDate.Format("January 2006"),
		})
	}

	if dataRows == 0 {
		return nil, &EmptyInputError{}
	}
	if len(rows) == 0 {
		return nil, &DateParseError{Column: ColBillDate, Sample: badDateSample}
	}
	return rows, nil
}

// WeekLabel buckets a bill date into a week number under the given scheme.
// Retail weeks are month-relative: days 1-7 are week 1, through day 31 in
// week 5. ISO weeks follow the ISO-8601 calendar.
func WeekLabel(t time.Time, scheme domain.WeekScheme) int {
	if scheme == domain.WeekSchemeISO {
		_, week := t.ISOWeek()
		return week
	}
	return ((t.Day() - 1) / 7) + 1
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseQuantity(v string) int64 {
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	// Some exports write quantities as decimals ("2.0")
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int64(f)
	}
	return 0
}

func parseValue(v string) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	v = strings.ReplaceAll(v, ",", "")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
