package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/storeops/salesdash/internal/domain"
)

// FilterAll is the sentinel meaning "no filter" for category selections.
const FilterAll = "All"

// DecideGroupMode picks the rollup's grouping dimension from the two filter
// values: category when nothing is fixed, sub-category when only the category
// is fixed, staff alone when both are.
func DecideGroupMode(category, subCategory string) domain.GroupMode {
	switch {
	case category == FilterAll || category == "":
		return domain.GroupByCategory
	case subCategory == FilterAll || subCategory == "":
		return domain.GroupBySubCategory
	default:
		return domain.GroupByStaffOnly
	}
}

// CategoryFilterOptions lists the distinct categories in the sales stream
// and, when a specific category is selected, the sub-categories present
// within it. Values come from the data, never from a static enum.
func CategoryFilterOptions(sales []domain.SaleLine, category string) domain.FilterOptions {
	catSet := make(map[string]struct{})
	subSet := make(map[string]struct{})
	for _, r := range sales {
		if r.Category != "" {
			catSet[r.Category] = struct{}{}
		}
		if category != FilterAll && category != "" && r.Category != category {
			continue
		}
		if r.SubCategory != "" {
			subSet[r.SubCategory] = struct{}{}
		}
	}

	opts := domain.FilterOptions{
		Categories:    make([]string, 0, len(catSet)),
		SubCategories: make([]string, 0, len(subSet)),
	}
	for c := range catSet {
		opts.Categories = append(opts.Categories, c)
	}
	for s := range subSet {
		opts.SubCategories = append(opts.SubCategories, s)
	}
	sort.Strings(opts.Categories)
	sort.Strings(opts.SubCategories)
	return opts
}

// ComputeCategoryReport filters the sales stream by the two selections and
// rolls it up under the decided group mode. Contribution percent is each
// group's share of the total filtered sales. An empty result is a valid
// "no rows match" outcome, not an error.
func ComputeCategoryReport(sales []domain.SaleLine, category, subCategory string) domain.CategoryReport {
	mode := DecideGroupMode(category, subCategory)

	filtered := make([]domain.SaleLine, 0, len(sales))
	for _, r := range sales {
		if category != FilterAll && category != "" && r.Category != category {
			continue
		}
		if subCategory != FilterAll && subCategory != "" && r.SubCategory != subCategory {
			continue
		}
		filtered = append(filtered, r)
	}

	type groupKey struct {
		Group       string
		SalesPerson string
	}
	type accum struct {
		sales    decimal.Decimal
		qty      int64
		invoices map[string]struct{}
	}
	groups := make(map[groupKey]*accum)
	total := decimal.Zero

	for _, r := range filtered {
		key := groupKey{SalesPerson: r.SalesPerson}
		switch mode {
		case domain.GroupByCategory:
			key.Group = r.Category
		case domain.GroupBySubCategory:
			key.Group = r.SubCategory
		}

		a, ok := groups[key]
		if !ok {
			a = &accum{sales: decimal.Zero, invoices: make(map[string]struct{})}
			groups[key] = a
		}
		a.sales = a.sales.Add(r.GrossValue)
		a.qty += r.Quantity
		a.invoices[r.InvoiceNumber] = struct{}{}
		total = total.Add(r.GrossValue)
	}

	rows := make([]domain.CategoryRow, 0, len(groups))
	for key, a := range groups {
		contribution := decimal.Zero
		if !total.IsZero() {
			contribution = a.sales.Mul(hundred).DivRound(total, 2)
		}
		rows = append(rows, domain.CategoryRow{
			GroupValue:      key.Group,
			SalesPerson:     key.SalesPerson,
			Sales:           a.sales,
			Qty:             a.qty,
			Bills:           len(a.invoices),
			ContributionPct: contribution,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		cmp := rows[i].Sales.Cmp(rows[j].Sales)
		if cmp != 0 {
			return cmp > 0
		}
		if rows[i].GroupValue != rows[j].GroupValue {
			return rows[i].GroupValue < rows[j].GroupValue
		}
		return rows[i].SalesPerson < rows[j].SalesPerson
	})

	return domain.CategoryReport{
		Mode:        mode,
		Category:    normalizeFilter(category),
		SubCategory: normalizeFilter(subCategory),
		TotalSales:  total,
		Rows:        rows,
	}
}

func normalizeFilter(v string) string {
	if v == "" {
		return FilterAll
	}
	return v
}
