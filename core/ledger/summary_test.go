package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

func newTx(date core.Date, typ Type, cat Category, amount Money) Transaction {
	return Transaction{Date: date, Type: typ, Category: cat, Amount: amount, Status: StatusCompleted}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want Summary
	}{
		{name: "no transactions", want: Summary{}},
		{
			name: "single income",
			txs:  []Transaction{newTx(core.NewDate(2024, 1, 1), TypeIncome, CategoryDues, 100000)},
			want: Summary{TotalIncome: 100000, Balance: 100000},
		},
		{
			name: "negative balance",
			txs: []Transaction{
				newTx(core.NewDate(2024, 1, 1), TypeIncome, CategoryDues, 500),
				newTx(core.NewDate(2024, 1, 2), TypeExpense, CategorySupplies, 800),
			},
			want: Summary{TotalIncome: 500, TotalExpense: 800, Balance: -300},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.txs))
		})
	}
}

func TestMonthly(t *testing.T) {
	txs := []Transaction{
		newTx(core.NewDate(2023, 11, 30), TypeIncome, CategoryDues, 100), // before the window
		newTx(core.NewDate(2023, 12, 1), TypeIncome, CategoryDues, 200),
		newTx(core.NewDate(2023, 12, 31), TypeExpense, CategorySupplies, 50),
		newTx(core.NewDate(2024, 2, 15), TypeIncome, CategoryEvent, 300),
		newTx(core.NewDate(2024, 2, 20), TypeExpense, CategoryStudy, 70),
		newTx(core.NewDate(2024, 3, 1), TypeIncome, CategoryDues, 999), // after the window
	}
	ref := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)

	got := Monthly(txs, ref, 3)
	assert.Equal(t, MonthlySeries{
		Labels:  []string{"Dec 2023", "Jan 2024", "Feb 2024"},
		Income:  []Money{200, 0, 300},
		Expense: []Money{50, 0, 70},
	}, got)
}

func TestMonthly_defaultWindow(t *testing.T) {
	got := Monthly(nil, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 0)
	assert.Equal(t, []string{"Oct 2023", "Nov 2023", "Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}, got.Labels)
	assert.Len(t, got.Income, DefaultWindow)
	assert.Len(t, got.Expense, DefaultWindow)
	for i := range got.Labels {
		assert.Zero(t, got.Income[i])
		assert.Zero(t, got.Expense[i])
	}
}

func TestCategoryBreakdown(t *testing.T) {
	d := core.NewDate(2024, 1, 1)
	tests := []struct {
		name string
		txs  []Transaction
		want Breakdown
	}{
		{
			name: "no expense",
			txs:  []Transaction{newTx(d, TypeIncome, CategoryDues, 100)},
			want: Breakdown{Categories: []Category{}, Percentages: []int{}, Amounts: []Money{}},
		},
		{
			name: "two categories",
			txs: []Transaction{
				newTx(d, TypeExpense, CategorySupplies, 300),
				newTx(d, TypeIncome, CategoryDues, 10000),
				newTx(d, TypeExpense, CategoryPrinting, 700),
			},
			want: Breakdown{
				Categories:  []Category{CategorySupplies, CategoryPrinting},
				Percentages: []int{30, 70},
				Amounts:     []Money{300, 700},
			},
		},
		{
			name: "rounding half up",
			txs: []Transaction{
				newTx(d, TypeExpense, CategoryStudy, 1),
				newTx(d, TypeExpense, CategoryEvent, 1),
				newTx(d, TypeExpense, CategoryOther, 1),
				newTx(d, TypeExpense, CategoryStudy, 5),
			},
			want: Breakdown{
				Categories:  []Category{CategoryStudy, CategoryEvent, CategoryOther},
				Percentages: []int{75, 13, 13},
				Amounts:     []Money{6, 1, 1},
			},
		},
		{
			name: "zero sum category left out",
			txs: []Transaction{
				newTx(d, TypeExpense, CategoryOther, 0),
				newTx(d, TypeExpense, CategorySupplies, 40),
			},
			want: Breakdown{
				Categories:  []Category{CategorySupplies},
				Percentages: []int{100},
				Amounts:     []Money{40},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryBreakdown(tt.txs))
		})
	}
}

func TestPercentOf_largeAmounts(t *testing.T) {
	total := Money(1 << 62)
	assert.Equal(t, 100, percentOf(total, total))
	assert.Equal(t, 50, percentOf(total/2, total))
	assert.Equal(t, 0, percentOf(0, total))
	assert.Equal(t, 0, percentOf(1, 0))

	d := core.NewDate(2024, 1, 1)
	b := CategoryBreakdown([]Transaction{
		newTx(d, TypeExpense, CategorySupplies, MaxMoney),
		newTx(d, TypeExpense, CategorySupplies, MaxMoney),
	})
	assert.Equal(t, []int{100}, b.Percentages)
	assert.Equal(t, []Money{2 * MaxMoney}, b.Amounts)
}

func TestReports_leaveInputUntouched(t *testing.T) {
	txs := []Transaction{
		newTx(core.NewDate(2024, 2, 1), TypeIncome, CategoryDues, 1000),
		newTx(core.NewDate(2024, 1, 5), TypeExpense, CategoryPrinting, 700),
		newTx(core.NewDate(2024, 2, 9), TypeExpense, CategorySupplies, 300),
	}
	orig := make([]Transaction, len(txs))
	copy(orig, txs)

	Summarize(txs)
	assert.Equal(t, orig, txs)
	Monthly(txs, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 2)
	assert.Equal(t, orig, txs)
	CategoryBreakdown(txs)
	assert.Equal(t, orig, txs)
}
