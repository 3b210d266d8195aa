package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffMetrics is the per-salesperson KPI row of the staff incentive table.
type StaffMetrics struct {
	SalesPerson       string          `json:"sales_person"`
	TotalValue        decimal.Decimal `json:"total_gsv"`
	TotalQty          int64           `json:"total_qty"`
	TotalBills        int             `json:"total_bills"`
	SingleItemBills   int             `json:"single_bills"`
	AvgValuePerTicket decimal.Decimal `json:"avpt"`
	AvgUnitsPerTicket decimal.Decimal `json:"aupt"`
	SingleBillRatio   decimal.Decimal `json:"single_bill_pct"`
	Rank              int             `json:"rank"`
}

// WeeklyQualifier is a salesperson who met both incentive thresholds in the
// current week. The table is a filter, not a ranking.
type WeeklyQualifier struct {
	SalesPerson       string          `json:"sales_person"`
	Week              int             `json:"week"`
	TotalValue        decimal.Decimal `json:"total_gsv"`
	TotalQty          int64           `json:"total_qty"`
	TotalBills        int             `json:"total_bills"`
	AvgValuePerTicket decimal.Decimal `json:"avpt"`
	AvgUnitsPerTicket decimal.Decimal `json:"aupt"`
}

// DayRollup is one row of the day-wise sales table.
type DayRollup struct {
	Date       time.Time       `json:"date"`
	DayName    string          `json:"day"`
	TotalValue decimal.Decimal `json:"total_gsv"`
	BillCount  int             `json:"bill_count"`
}

// WeekRollup is one row of the week-wise sales table.
type WeekRollup struct {
	Week       int             `json:"week"`
	TotalValue decimal.Decimal `json:"total_gsv"`
	BillCount  int             `json:"bill_count"`
}

// GroupMode says which dimension the category rollup is grouped by. It is
// decided from the two filter values, never inferred at the call site.
type GroupMode string

const (
	GroupByCategory    GroupMode = "category"
	GroupBySubCategory GroupMode = "sub_category"
	GroupByStaffOnly   GroupMode = "staff"
)

// CategoryRow is one group of the category rollup. GroupValue is the category
// or sub-category label, empty when grouping by staff only.
type CategoryRow struct {
	GroupValue      string          `json:"group_value,omitempty"`
	SalesPerson     string          `json:"sales_person"`
	Sales           decimal.Decimal `json:"sales"`
	Qty             int64           `json:"qty"`
	Bills           int             `json:"bills"`
	ContributionPct decimal.Decimal `json:"contribution_pct"`
}

// CategoryReport is the filtered, dynamically grouped category rollup. An
// empty Rows slice is a valid "no rows match" outcome.
type CategoryReport struct {
	Mode        GroupMode       `json:"group_mode"`
	Category    string          `json:"category"`
	SubCategory string          `json:"sub_category"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	Rows        []CategoryRow   `json:"rows"`
}

// FilterOptions lists the filter values present in the sales stream. When a
// category is selected, SubCategories is restricted to that category.
type FilterOptions struct {
	Categories    []string `json:"categories"`
	SubCategories []string `json:"sub_categories"`
}

// TierMatrixRow is one row of a membership tier matrix; Counts is aligned to
// the parent matrix's Tiers columns.
type TierMatrixRow struct {
	Label  string `json:"label"`
	Counts []int  `json:"counts"`
	Total  int    `json:"total"`
}

// TierMatrix is a time-or-staff by price-tier count matrix. Tiers are
// emergent from the data: every distinct membership gross value becomes a
// column, not a predefined price band.
type TierMatrix struct {
	Tiers []string        `json:"tiers"`
	Rows  []TierMatrixRow `json:"rows"`
}

// MembershipReport bundles the three tier matrices of the membership hub.
type MembershipReport struct {
	ByDay   TierMatrix `json:"by_day"`
	ByWeek  TierMatrix `json:"by_week"`
	ByStaff TierMatrix `json:"by_staff"`
}

// ReportBundle is the complete output of one pipeline run. Everything is
// recomputed from the uploaded snapshot; nothing survives across runs except
// the bundle itself, which replaces its predecessor wholesale.
type ReportBundle struct {
	RunID       string     `json:"run_id"`
	SourceFile  string     `json:"source_file"`
	GeneratedAt time.Time  `json:"generated_at"`
	WeekScheme  WeekScheme `json:"week_scheme"`

	RawRows        int `json:"raw_rows"`
	SalesRows      int `json:"sales_rows"`
	MembershipRows int `json:"membership_rows"`
	CurrentWeek    int `json:"current_week"`

	Staff            []StaffMetrics    `json:"staff"`
	WeeklyQualifiers []WeeklyQualifier `json:"weekly_qualifiers"`
	DayRollups       []DayRollup       `json:"day_rollups"`
	WeekRollups      []WeekRollup      `json:"week_rollups"`
	Category         CategoryReport    `json:"category"`
	Memberships      MembershipReport  `json:"memberships"`

	// SalesStream is retained so category filter queries can be re-run
	// against the same snapshot without re-parsing the file.
	SalesStream []SaleLine `json:"-"`
}

// FormatHints tells the rendering layer which columns carry currency or
// percent values. Purely cosmetic; the core never formats.
type FormatHints struct {
	Currency []string `json:"currency"`
	Percent  []string `json:"percent"`
}

var (
	StaffHints      = FormatHints{Currency: []string{"total_gsv", "avpt"}, Percent: []string{"single_bill_pct"}}
	QualifierHints  = FormatHints{Currency: []string{"total_gsv", "avpt"}}
	DayRollupHints  = FormatHints{Currency: []string{"total_gsv"}}
	WeekRollupHints = FormatHints{Currency: []string{"total_gsv"}}
	CategoryHints   = FormatHints{Currency: []string{"sales", "total_sales"}, Percent: []string{"contribution_pct"}}
)
