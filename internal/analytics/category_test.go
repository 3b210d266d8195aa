package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storeops/salesdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineSub(person, category, subCategory, invoice string, qty int64, gsv int64, day int) domain.SaleLine {
	l := line(person, category, "Item", invoice, qty, gsv, day)
	l.SubCategory = subCategory
	return l
}

func TestDecideGroupMode(t *testing.T) {
	assert.Equal(t, domain.GroupByCategory, DecideGroupMode(FilterAll, FilterAll))
	assert.Equal(t, domain.GroupByCategory, DecideGroupMode("", ""))
	assert.Equal(t, domain.GroupBySubCategory, DecideGroupMode("Electronics", FilterAll))
	assert.Equal(t, domain.GroupByStaffOnly, DecideGroupMode("Electronics", "Phones"))
}

func TestCategoryFilterOptions(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 5000, 1),
		lineSub("Alice", "Electronics", "Audio", "102", 1, 2000, 1),
		lineSub("Bob", "Toys", "Blocks", "201", 1, 1000, 2),
	}

	opts := CategoryFilterOptions(rows, FilterAll)
	assert.Equal(t, []string{"Electronics", "Toys"}, opts.Categories)
	assert.Equal(t, []string{"Audio", "Blocks", "Phones"}, opts.SubCategories)

	// sub-category options restricted by a selected category
	opts = CategoryFilterOptions(rows, "Electronics")
	assert.Equal(t, []string{"Audio", "Phones"}, opts.SubCategories)
}

func TestComputeCategoryReportUnfiltered(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 6000, 1),
		lineSub("Bob", "Toys", "Blocks", "201", 2, 2000, 2),
		lineSub("Bob", "Toys", "Blocks", "202", 1, 2000, 3),
	}

	report := ComputeCategoryReport(rows, FilterAll, FilterAll)
	assert.Equal(t, domain.GroupByCategory, report.Mode)
	assert.Equal(t, "10000", report.TotalSales.String())
	require.Len(t, report.Rows, 2)

	// sorted by sales descending
	assert.Equal(t, "Electronics", report.Rows[0].GroupValue)
	assert.Equal(t, "60", report.Rows[0].ContributionPct.String())
	assert.Equal(t, "Toys", report.Rows[1].GroupValue)
	assert.Equal(t, int64(3), report.Rows[1].Qty)
	assert.Equal(t, 2, report.Rows[1].Bills)
}

func TestComputeCategoryReportContributionSumsTo100(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 3333, 1),
		lineSub("Bob", "Toys", "Blocks", "201", 1, 3333, 2),
		lineSub("Carol", "Books", "Fiction", "301", 1, 3334, 3),
	}

	report := ComputeCategoryReport(rows, FilterAll, FilterAll)
	sum := decimal.Zero
	for _, row := range report.Rows {
		sum = sum.Add(row.ContributionPct)
	}
	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.05)), "sum was %s", sum)
}

func TestComputeCategoryReportSubCategoryMode(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 6000, 1),
		lineSub("Alice", "Electronics", "Audio", "102", 1, 4000, 1),
		lineSub("Bob", "Toys", "Blocks", "201", 1, 9999, 2),
	}

	report := ComputeCategoryReport(rows, "Electronics", FilterAll)
	assert.Equal(t, domain.GroupBySubCategory, report.Mode)
	assert.Equal(t, "10000", report.TotalSales.String())
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Phones", report.Rows[0].GroupValue)
	assert.Equal(t, "60", report.Rows[0].ContributionPct.String())
}

func TestComputeCategoryReportStaffOnlyMode(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 6000, 1),
		lineSub("Bob", "Electronics", "Phones", "102", 1, 4000, 1),
	}

	report := ComputeCategoryReport(rows, "Electronics", "Phones")
	assert.Equal(t, domain.GroupByStaffOnly, report.Mode)
	require.Len(t, report.Rows, 2)
	assert.Empty(t, report.Rows[0].GroupValue)
	assert.Equal(t, "Alice", report.Rows[0].SalesPerson)
}

func TestComputeCategoryReportEmptyResultIsValid(t *testing.T) {
	rows := []domain.SaleLine{
		lineSub("Alice", "Electronics", "Phones", "101", 1, 6000, 1),
	}

	report := ComputeCategoryReport(rows, "Groceries", FilterAll)
	assert.Empty(t, report.Rows)
	assert.True(t, report.TotalSales.IsZero())
}
