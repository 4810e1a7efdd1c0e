package ledger

import (
	"math/bits"
	"time"
)

// DefaultWindow is the number of months covered by a MonthlySeries when none is asked for.
const DefaultWindow = 6

const monthLabelLayout = "Jan 2006"

type Summary struct {
	TotalIncome  Money `json:"totalIncome"`
	TotalExpense Money `json:"totalExpense"`
	Balance      Money `json:"balance"`
}

// Summarize totals income and expense over txs. Balance may be negative.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.TotalIncome += tx.Amount
		case TypeExpense:
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// MonthlySeries holds per-month income and expense totals, oldest month first.
// The three slices always have the same length.
type MonthlySeries struct {
	Labels  []string `json:"labels"`
	Income  []Money  `json:"income"`
	Expense []Money  `json:"expense"`
}

// Monthly buckets txs into the `window` calendar months ending with the month of ref.
// Transactions outside of the window are ignored.
func Monthly(txs []Transaction, ref time.Time, window int) MonthlySeries {
	if window <= 0 {
		window = DefaultWindow
	}
	// time.Date normalizes month underflows into previous years
	first := time.Date(ref.Year(), ref.Month()-time.Month(window-1), 1, 0, 0, 0, 0, time.UTC)

	series := MonthlySeries{
		Labels:  make([]string, window),
		Income:  make([]Money, window),
		Expense: make([]Money, window),
	}
	for i := 0; i < window; i++ {
		series.Labels[i] = first.AddDate(0, i, 0).Format(monthLabelLayout)
	}

	for _, tx := range txs {
		idx := monthsBetween(first, tx.Date.Time)
		if idx < 0 || idx >= window {
			continue
		}
		switch tx.Type {
		case TypeIncome:
			series.Income[idx] += tx.Amount
		case TypeExpense:
			series.Expense[idx] += tx.Amount
		}
	}
	return series
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// Breakdown is the share of each expense category in the total expense.
// Categories appear in the order they are first met.
type Breakdown struct {
	Categories  []Category `json:"categories"`
	Percentages []int      `json:"percentages"`
	Amounts     []Money    `json:"amounts"`
}

// CategoryBreakdown groups expense transactions by category.
// Percentages are rounded half-up, so they may not add up to exactly 100.
// Categories whose expenses sum to zero are left out.
func CategoryBreakdown(txs []Transaction) Breakdown {
	sums := make(map[Category]Money)
	order := make([]Category, 0)
	var total Money

	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount
		total += tx.Amount
	}

	b := Breakdown{
		Categories:  make([]Category, 0, len(order)),
		Percentages: make([]int, 0, len(order)),
		Amounts:     make([]Money, 0, len(order)),
	}
	for _, cat := range order {
		sum := sums[cat]
		if sum == 0 {
			continue
		}
		b.Categories = append(b.Categories, cat)
		b.Amounts = append(b.Amounts, sum)
		b.Percentages = append(b.Percentages, percentOf(sum, total))
	}
	return b
}

// percentOf returns round(100*part/total) for 0 <= part <= total, using 128-bit integer math.
func percentOf(part, total Money) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(part), 200)
	lo, carry := bits.Add64(lo, uint64(total), 0)
	hi += carry
	q, _ := bits.Div64(hi, lo, uint64(total)*2)
	return int(q)
}
