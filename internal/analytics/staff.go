package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/storeops/salesdash/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// Fixed business thresholds for the weekly incentive.
	qualifierMinAUPT = decimal.NewFromInt(4)
	qualifierMinAVPT = decimal.NewFromInt(3000)
)

type staffBase struct {
	SalesPerson       string
	TotalValue        decimal.Decimal
	TotalQty          int64
	TotalBills        int
	SingleItemBills   int
	AvgValuePerTicket decimal.Decimal
	AvgUnitsPerTicket decimal.Decimal
	SingleBillRatio   decimal.Decimal
}

type invoiceKey struct {
	Invoice     string
	SalesPerson string
}

// computeStaffBase runs the shared aggregation behind the master staff table
// and the weekly qualifier: per-staff value/quantity totals, distinct bill
// counts, single-item bill counts, and the derived per-ticket ratios.
// Output is sorted by total value descending, ties broken by name.
func computeStaffBase(rows []domain.SaleLine) []staffBase {
	type accum struct {
		value decimal.Decimal
		qty   int64
	}
	totals := make(map[string]*accum)
	invoiceQty := make(map[invoiceKey]int64)

	for _, r := range rows {
		a, ok := totals[r.SalesPerson]
		if !ok {
			a = &accum{value: decimal.Zero}
			totals[r.SalesPerson] = a
		}
		a.value = a.value.Add(r.GrossValue)
		a.qty += r.Quantity

		invoiceQty[invoiceKey{Invoice: r.InvoiceNumber, SalesPerson: r.SalesPerson}] += r.Quantity
	}

	bills := make(map[string]int)
	singles := make(map[string]int)
	for key, qty := range invoiceQty {
		bills[key.SalesPerson]++
		if qty == 1 {
			singles[key.SalesPerson]++
		}
	}

	out := make([]staffBase, 0, len(totals))
	for person, a := range totals {
		totalBills := bills[person]
		if totalBills == 0 {
			// Division guard: a zero-bill salesperson gets a denominator
			// of 1 rather than an error. Business policy, not a bug.
			totalBills = 1
		}
		billsDec := decimal.NewFromInt(int64(totalBills))

		out = append(out, staffBase{
			SalesPerson:       person,
			TotalValue:        a.value,
			TotalQty:          a.qty,
			TotalBills:        totalBills,
			SingleItemBills:   singles[person],
			AvgValuePerTicket: a.value.DivRound(billsDec, 0),
			AvgUnitsPerTicket: decimal.NewFromInt(a.qty).DivRound(billsDec, 2),
			SingleBillRatio:   decimal.NewFromInt(int64(singles[person])).Mul(hundred).DivRound(billsDec, 1),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].TotalValue.Cmp(out[j].TotalValue)
		if cmp != 0 {
			return cmp > 0
		}
		return out[i].SalesPerson < out[j].SalesPerson
	})
	return out
}

// ComputeStaffMetrics builds the master staff KPI table from the sales
// stream, ranked by total value. Rank ties are broken by salesperson name so
// the ordering is deterministic across runs.
func ComputeStaffMetrics(sales []domain.SaleLine) []domain.StaffMetrics {
	base := computeStaffBase(sales)
	out := make([]domain.StaffMetrics, 0, len(base))
	for i, b := range base {
		out = append(out, domain.StaffMetrics{
			SalesPerson:       b.SalesPerson,
			TotalValue:        b.TotalValue,
			TotalQty:          b.TotalQty,
			TotalBills:        b.TotalBills,
			SingleItemBills:   b.SingleItemBills,
			AvgValuePerTicket: b.AvgValuePerTicket,
			AvgUnitsPerTicket: b.AvgUnitsPerTicket,
			SingleBillRatio:   b.SingleBillRatio,
			Rank:              i + 1,
		})
	}
	return out
}

// MaxWeek returns the highest week label present in the rows. The incentive's
// "current week" is the latest week seen in the upload, not wall-clock time.
func MaxWeek(rows []domain.SaleLine) int {
	max := 0
	for _, r := range rows {
		if r.Week > max {
			max = r.Week
		}
	}
	return max
}

// ComputeWeeklyQualifiers repeats the staff aggregation restricted to the
// current week and keeps only staff meeting both incentive thresholds
// (AUPT >= 4 and AVPT >= 3000). It filters; it does not rank.
func ComputeWeeklyQualifiers(sales []domain.SaleLine, currentWeek int) []domain.WeeklyQualifier {
	weekRows := make([]domain.SaleLine, 0)
	for _, r := range sales {
		if r.Week == currentWeek {
			weekRows = append(weekRows, r)
		}
	}

	out := make([]domain.WeeklyQualifier, 0)
	for _, b := range computeStaffBase(weekRows) {
		if b.AvgUnitsPerTicket.Cmp(qualifierMinAUPT) < 0 {
			continue
		}
		if b.AvgValuePerTicket.Cmp(qualifierMinAVPT) < 0 {
			continue
		}
		out = append(out, domain.WeeklyQualifier{
			SalesPerson:       b.SalesPerson,
			Week:              currentWeek,
			TotalValue:        b.TotalValue,
			TotalQty:          b.TotalQty,
			TotalBills:        b.TotalBills,
			AvgValuePerTicket: b.AvgValuePerTicket,
			AvgUnitsPerTicket: b.AvgUnitsPerTicket,
		})
	}
	return out
}
