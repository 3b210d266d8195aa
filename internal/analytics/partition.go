package analytics

import (
	"strings"

	"github.com/storeops/salesdash/internal/domain"
)

const giftCertificateCategory = "GiftCertificate"

// salesExclusions is a fixed business constant: free samples are the only
// category removed from the sales stream.
var salesExclusions = map[string]struct{}{
	"Free Sample Category": {},
}

// IsMembership reports whether a row belongs in the membership stream:
// product name contains "membership" (any case) or the category is
// GiftCertificate.
func IsMembership(row domain.SaleLine) bool {
	if strings.Contains(strings.ToLower(row.ProductName), "membership") {
		return true
	}
	return row.Category == giftCertificateCategory
}

// IsExcludedFromSales reports whether a row is dropped from the sales stream.
// Gift certificates and memberships stay in: they count as sales revenue and
// are additionally tracked in the membership hub.
func IsExcludedFromSales(row domain.SaleLine) bool {
	_, excluded := salesExclusions[row.Category]
	return excluded
}

// Partition splits normalized rows into the sales stream and the membership
// stream. A row can land in both: the streams serve different reports, they
// are not a disjoint split of revenue.
func Partition(rows []domain.SaleLine) (sales, memberships []domain.SaleLine) {
	sales = make([]domain.SaleLine, 0, len(rows))
	for _, row := range rows {
		if IsMembership(row) {
			memberships = append(memberships, row)
		}
		if !IsExcludedFromSales(row) {
			sales = append(sales, row)
		}
	}
	return sales, memberships
}
