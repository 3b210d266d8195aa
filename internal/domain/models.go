package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekScheme selects how bill dates are bucketed into week labels.
type WeekScheme string

const (
	// WeekSchemeRetail buckets by day-of-month: days 1-7 are week 1, 8-14
	// week 2, and so on up to week 5. Aligned with store staffing cycles.
	WeekSchemeRetail WeekScheme = "retail"
	// WeekSchemeISO uses ISO-8601 calendar week numbers.
	WeekSchemeISO WeekScheme = "iso"
)

// ParseWeekScheme maps a config string to a WeekScheme, defaulting to retail.
func ParseWeekScheme(s string) WeekScheme {
	if s == string(WeekSchemeISO) {
		return WeekSchemeISO
	}
	return WeekSchemeRetail
}

// SaleLine is one normalized row of the article sale report. Rows that fail
// date parsing never become SaleLines, so BillDate is always valid.
type SaleLine struct {
	InvoiceNumber string          `json:"invoice_number"`
	SalesPerson   string          `json:"sales_person"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"sub_category"`
	ProductName   string          `json:"product_name"`
	Quantity      int64           `json:"quantity"`
	GrossValue    decimal.Decimal `json:"gsv"`
	BillDate      time.Time       `json:"bill_date"`

	// Derived at ingestion time
	DayName string `json:"day"`
	Week    int    `json:"week"`
	Month   string `json:"month"`
}
