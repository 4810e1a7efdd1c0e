package metricsvc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
)

// RegisterLedgerGauges exposes the current ledger totals, computed on every scrape.
func RegisterLedgerGauges(reg prometheus.Registerer, svc *ledger.Service) {
	factory := promauto.With(reg)
	total := func(pick func(ledger.Summary) ledger.Money) func() float64 {
		return func() float64 {
			s, err := svc.Summary()
			if err != nil {
				return 0
			}
			return float64(pick(s).Cents()) / 100
		}
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "income_total",
		Help:      "Sum of all income transactions.",
	}, total(func(s ledger.Summary) ledger.Money { return s.TotalIncome }))
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "expense_total",
		Help:      "Sum of all expense transactions.",
	}, total(func(s ledger.Summary) ledger.Money { return s.TotalExpense }))
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "balance",
		Help:      "Income minus expense.",
	}, total(func(s ledger.Summary) ledger.Money { return s.Balance }))
}
