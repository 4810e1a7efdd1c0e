package ledger

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	// errors
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidOrdering = errors.New("invalid ordering")
)

type (
	Repository interface {
		CreateTransaction(tx Transaction) (Transaction, error)
		QueryAllTransactions() ([]Transaction, error)
		FilterTransactions(filter QueryFilter) ([]Transaction, error)
		GetTransactionByID(id int) (Transaction, error)
		UpdateTransaction(id int, ut UpdateTransaction) (Transaction, error)
		DeleteTransaction(id int) error
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

func (svc *Service) Create(nt NewTransaction) (Transaction, error) {
	tx := Transaction{
		Date:        nt.Date,
		Description: nt.Description,
		Category:    nt.Category,
		Type:        nt.Type,
		Notes:       nt.Notes,
		Status:      nt.Status,
		CreatedAt:   svc.nowFunc().UTC(),
	}
	if nt.Amount != nil {
		tx.Amount = *nt.Amount
	}
	if tx.Status == "" {
		tx.Status = StatusCompleted
	}
	return svc.repo.CreateTransaction(tx)
}

func (svc *Service) QueryAll() ([]Transaction, error) {
	return svc.repo.QueryAllTransactions()
}

// Query returns the transactions matching filter, sorted by orderings (newest date first by default).
func (svc *Service) Query(filter QueryFilter, orderings []core.Ordering) ([]Transaction, error) {
	if len(orderings) == 0 {
		orderings = []core.Ordering{{Field: "date"}, {Field: "id"}}
	}
	for _, ord := range orderings {
		if _, ok := transactionOrderings[ord.Field]; !ok {
			return nil, core.NewValidationError(
				ErrInvalidOrdering,
				core.FieldError{Field: "ordering", Error: "cannot order by " + ord.Field},
			)
		}
	}

	txs, err := svc.repo.FilterTransactions(filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering transactions")
	}
	sortTransactions(txs, orderings)
	return txs, nil
}

func (svc *Service) GetByID(id int) (Transaction, error) {
	return svc.repo.GetTransactionByID(id)
}

func (svc *Service) Update(id int, ut UpdateTransaction) (Transaction, error) {
	return svc.repo.UpdateTransaction(id, ut)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteTransaction(id)
}

func (svc *Service) Summary() (Summary, error) {
	txs, err := svc.repo.QueryAllTransactions()
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying transactions")
	}
	return Summarize(txs), nil
}

// Monthly returns the monthly series ending with the month of ref (now when zero).
func (svc *Service) Monthly(ref time.Time, window int) (MonthlySeries, error) {
	txs, err := svc.repo.QueryAllTransactions()
	if err != nil {
		return MonthlySeries{}, errors.Wrap(err, "querying transactions")
	}
	if ref.IsZero() {
		ref = svc.nowFunc()
	}
	return Monthly(txs, ref, window), nil
}

func (svc *Service) Breakdown() (Breakdown, error) {
	txs, err := svc.repo.QueryAllTransactions()
	if err != nil {
		return Breakdown{}, errors.Wrap(err, "querying transactions")
	}
	return CategoryBreakdown(txs), nil
}

// compare funcs return <0, 0 or >0
var transactionOrderings = map[string]func(a, b Transaction) int{
	"id":        func(a, b Transaction) int { return a.ID - b.ID },
	"date":      func(a, b Transaction) int { return a.Date.Compare(b.Date.Time) },
	"amount":    func(a, b Transaction) int { return compareInt64(int64(a.Amount), int64(b.Amount)) },
	"createdAt": func(a, b Transaction) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sortTransactions(txs []Transaction, orderings []core.Ordering) {
	sort.SliceStable(txs, func(i, j int) bool {
		for _, ord := range orderings {
			c := transactionOrderings[ord.Field](txs[i], txs[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}
