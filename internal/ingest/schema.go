package ingest

import "strings"

// Canonical column names of the article sale report.
const (
	ColSalesPerson   = "SalesPerson"
	ColGSV           = "GSV"
	ColCategory      = "Category"
	ColSubCategory   = "SubCategory"
	ColQuantity      = "Quantity"
	ColInvoiceNumber = "InvoiceNumber"
	ColBillDate      = "BillDate"
	ColProductName   = "ProductName"
)

// requiredColumns must all be present after alias resolution. SubCategory is
// optional; some exports omit it entirely.
var requiredColumns = []string{
	ColSalesPerson,
	ColGSV,
	ColCategory,
	ColQuantity,
	ColInvoiceNumber,
	ColBillDate,
	ColProductName,
}

// columnAliases maps known variant header spellings to canonical names.
// Matching is done on normalized names, so case and separators don't matter.
var columnAliases = map[string]string{
	"SalePerson": ColSalesPerson,
	"NSV":        ColGSV,
	"Date":       ColBillDate,
	"Bill Date":  ColBillDate,
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

// canonicalLookup indexes canonical names and their aliases by normalized form.
var canonicalLookup = func() map[string]string {
	m := make(map[string]string)
	for _, c := range append(append([]string{}, requiredColumns...), ColSubCategory) {
		m[normalizeColumnName(c)] = c
	}
	for alias, canonical := range columnAliases {
		m[normalizeColumnName(alias)] = canonical
	}
	return m
}()

// CanonicalHeader trims every header cell and rewrites known aliases to their
// canonical spelling. Unknown headers pass through unchanged.
func CanonicalHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if canonical, ok := canonicalLookup[normalizeColumnName(h)]; ok {
			out[i] = canonical
		} else {
			out[i] = h
		}
	}
	return out
}

// ResolveHeader maps canonical column names to their position in the header.
// The second return value lists required columns that could not be resolved;
// it is nil when the schema is complete.
func ResolveHeader(header []string) (map[string]int, []string) {
	canonical := CanonicalHeader(header)
	index := make(map[string]int, len(canonical))
	for i, h := range canonical {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}
