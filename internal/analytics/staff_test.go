package analytics

import (
	"testing"

	"github.com/storeops/salesdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStaffMetricsScenario(t *testing.T) {
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "Phone", "101", 1, 5000, 1),
		line("Alice", "Electronics", "Case", "102", 2, 3000, 1),
	}

	metrics := ComputeStaffMetrics(rows)
	require.Len(t, metrics, 1)

	alice := metrics[0]
	assert.Equal(t, "Alice", alice.SalesPerson)
	assert.Equal(t, 2, alice.TotalBills)
	assert.Equal(t, int64(3), alice.TotalQty)
	assert.Equal(t, "8000", alice.TotalValue.String())
	assert.Equal(t, "4000", alice.AvgValuePerTicket.String())
	assert.Equal(t, "1.5", alice.AvgUnitsPerTicket.String())
	assert.Equal(t, 1, alice.SingleItemBills)
	assert.Equal(t, "50", alice.SingleBillRatio.String())
	assert.Equal(t, 1, alice.Rank)
}

func TestComputeStaffMetricsMultiLineInvoiceNotSingle(t *testing.T) {
	// One invoice, two line items of qty 1 each: summed quantity is 2,
	// so it is not a single-item bill.
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "Phone", "101", 1, 5000, 1),
		line("Alice", "Electronics", "Case", "101", 1, 500, 1),
	}

	metrics := ComputeStaffMetrics(rows)
	require.Len(t, metrics, 1)
	assert.Equal(t, 1, metrics[0].TotalBills)
	assert.Equal(t, 0, metrics[0].SingleItemBills)
	assert.Equal(t, "0", metrics[0].SingleBillRatio.String())
}

func TestComputeStaffMetricsRankProperties(t *testing.T) {
	rows := []domain.SaleLine{
		line("Carol", "Toys", "Blocks", "201", 1, 2000, 2),
		line("Alice", "Electronics", "Phone", "101", 1, 5000, 1),
		line("Bob", "Electronics", "Tablet", "102", 1, 5000, 1),
		line("Dave", "Toys", "Puzzle", "202", 1, 1000, 2),
	}

	metrics := ComputeStaffMetrics(rows)
	require.Len(t, metrics, 4)

	for i, m := range metrics {
		assert.Equal(t, i+1, m.Rank)
		if i > 0 {
			assert.LessOrEqual(t, m.TotalValue.Cmp(metrics[i-1].TotalValue), 0)
		}
	}
	// equal totals tie-break by name
	assert.Equal(t, "Alice", metrics[0].SalesPerson)
	assert.Equal(t, "Bob", metrics[1].SalesPerson)
}

func TestComputeStaffMetricsDivisionGuard(t *testing.T) {
	for _, m := range ComputeStaffMetrics([]domain.SaleLine{
		line("Alice", "Electronics", "Phone", "", 0, 0, 1),
	}) {
		assert.GreaterOrEqual(t, m.TotalBills, 1)
	}
}

func TestSingleItemBillsNeverExceedTotalBills(t *testing.T) {
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "Phone", "101", 1, 5000, 1),
		line("Alice", "Electronics", "Case", "102", 1, 500, 1),
		line("Bob", "Toys", "Blocks", "201", 3, 2000, 2),
	}
	for _, m := range ComputeStaffMetrics(rows) {
		assert.LessOrEqual(t, m.SingleItemBills, m.TotalBills)
	}
}

func TestMaxWeek(t *testing.T) {
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "Phone", "101", 1, 5000, 3),
		line("Bob", "Toys", "Blocks", "201", 1, 2000, 20),
	}
	assert.Equal(t, 3, MaxWeek(rows))
}

func TestComputeWeeklyQualifiers(t *testing.T) {
	// Week 3 (days 15-21). Alice: one bill, qty 5, 16000 GSV -> AUPT 5,
	// AVPT 16000: qualifies. Bob: qty 2, AUPT 2: fails the units bar.
	// Carol: qty 4 but AVPT 500: fails the value bar.
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "TV", "301", 5, 16000, 15),
		line("Bob", "Electronics", "Phone", "302", 2, 9000, 16),
		line("Carol", "Toys", "Blocks", "303", 4, 500, 17),
		line("Alice", "Electronics", "Radio", "101", 1, 100, 2), // earlier week, ignored
	}

	qualifiers := ComputeWeeklyQualifiers(rows, 3)
	require.Len(t, qualifiers, 1)
	q := qualifiers[0]
	assert.Equal(t, "Alice", q.SalesPerson)
	assert.Equal(t, 3, q.Week)
	assert.Equal(t, "16000", q.AvgValuePerTicket.String())
	assert.Equal(t, "5", q.AvgUnitsPerTicket.String())
}

func TestComputeWeeklyQualifiersEmptyWeek(t *testing.T) {
	rows := []domain.SaleLine{
		line("Alice", "Electronics", "Radio", "101", 1, 100, 2),
	}
	assert.Empty(t, ComputeWeeklyQualifiers(rows, 5))
}
