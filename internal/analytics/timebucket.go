package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeops/salesdash/internal/domain"
)

// ComputeDayRollups groups the sales stream by calendar day: GSV total and
// distinct invoice count per day, most recent day first.
func ComputeDayRollups(sales []domain.SaleLine) []domain.DayRollup {
	type accum struct {
		dayName  string
		value    decimal.Decimal
		invoices map[string]struct{}
	}
	days := make(map[time.Time]*accum)

	for _, r := range sales {
		day := r.BillDate.Truncate(24 * time.Hour)
		a, ok := days[day]
		if !ok {
			a = &accum{dayName: r.DayName, value: decimal.Zero, invoices: make(map[string]struct{})}
			days[day] = a
		}
		a.value = a.value.Add(r.GrossValue)
		a.invoices[r.InvoiceNumber] = struct{}{}
	}

	out := make([]domain.DayRollup, 0, len(days))
	for day, a := range days {
		out = append(out, domain.DayRollup{
			Date:       day,
			DayName:    a.dayName,
			TotalValue: a.value,
			BillCount:  len(a.invoices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// ComputeWeekRollups groups the sales stream by week label: GSV total and
// distinct invoice count per week, latest week first.
func ComputeWeekRollups(sales []domain.SaleLine) []domain.WeekRollup {
	type accum struct {
		value    decimal.Decimal
		invoices map[string]struct{}
	}
	weeks := make(map[int]*accum)

	for _, r := range sales {
		a, ok := weeks[r.Week]
		if !ok {
			a = &accum{value: decimal.Zero, invoices: make(map[string]struct{})}
			weeks[r.Week] = a
		}
		a.value = a.value.Add(r.GrossValue)
		a.invoices[r.InvoiceNumber] = struct{}{}
	}

	out := make([]domain.WeekRollup, 0, len(weeks))
	for week, a := range weeks {
		out = append(out, domain.WeekRollup{
			Week:       week,
			TotalValue: a.value,
			BillCount:  len(a.invoices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week > out[j].Week })
	return out
}
