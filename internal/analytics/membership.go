package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/storeops/salesdash/internal/domain"
)

// PriceTier derives the membership tier label from a row's gross value. Tiers
// are emergent from the data: every distinct amount becomes its own tier.
func PriceTier(row domain.SaleLine) string {
	return "₹" + row.GrossValue.String()
}

// ComputeMembershipReport builds the day, week, and staff tier-count matrices
// from the membership stream. Columns are the tiers seen in the data, sorted
// by label; each row carries its total count.
func ComputeMembershipReport(memberships []domain.SaleLine) domain.MembershipReport {
	tierSet := make(map[string]struct{})
	dayCounts := make(map[time.Time]map[string]int)
	weekCounts := make(map[int]map[string]int)
	staffCounts := make(map[string]map[string]int)

	bump := func(m map[string]int, tier string) map[string]int {
		if m == nil {
			m = make(map[string]int)
		}
		m[tier]++
		return m
	}

	for _, r := range memberships {
		tier := PriceTier(r)
		tierSet[tier] = struct{}{}

		day := r.BillDate.Truncate(24 * time.Hour)
		dayCounts[day] = bump(dayCounts[day], tier)
		weekCounts[r.Week] = bump(weekCounts[r.Week], tier)
		staffCounts[r.SalesPerson] = bump(staffCounts[r.SalesPerson], tier)
	}

	tiers := make([]string, 0, len(tierSet))
	for t := range tierSet {
		tiers = append(tiers, t)
	}
	sort.Strings(tiers)

	buildRow := func(label string, counts map[string]int) domain.TierMatrixRow {
		row := domain.TierMatrixRow{Label: label, Counts: make([]int, len(tiers))}
		for i, t := range tiers {
			row.Counts[i] = counts[t]
			row.Total += counts[t]
		}
		return row
	}

	var byDay domain.TierMatrix
	byDay.Tiers = tiers
	dayKeys := make([]time.Time, 0, len(dayCounts))
	for d := range dayCounts {
		dayKeys = append(dayKeys, d)
	}
	sort.Slice(dayKeys, func(i, j int) bool { return dayKeys[i].After(dayKeys[j]) })
	for _, d := range dayKeys {
		byDay.Rows = append(byDay.Rows, buildRow(d.Format("2006-01-02"), dayCounts[d]))
	}

	var byWeek domain.TierMatrix
	byWeek.Tiers = tiers
	weekKeys := make([]int, 0, len(weekCounts))
	for w := range weekCounts {
		weekKeys = append(weekKeys, w)
	}
	sort.Ints(weekKeys)
	for _, w := range weekKeys {
		byWeek.Rows = append(byWeek.Rows, buildRow("Week "+strconv.Itoa(w), weekCounts[w]))
	}

	var byStaff domain.TierMatrix
	byStaff.Tiers = tiers
	staffRows := make([]domain.TierMatrixRow, 0, len(staffCounts))
	for person, counts := range staffCounts {
		staffRows = append(staffRows, buildRow(person, counts))
	}
	sort.Slice(staffRows, func(i, j int) bool {
		if staffRows[i].Total != staffRows[j].Total {
			return staffRows[i].Total > staffRows[j].Total
		}
		return staffRows[i].Label < staffRows[j].Label
	})
	byStaff.Rows = staffRows

	return domain.MembershipReport{ByDay: byDay, ByWeek: byWeek, ByStaff: byStaff}
}
