package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/ledger"

type transactionRepository struct {
	tbl *Table[ledger.Transaction]
}

var _ ledger.Repository = (*transactionRepository)(nil)

func NewTransactionRepository(db *DB) ledger.Repository {
	return &transactionRepository{tbl: db.transactions}
}

func (repo *transactionRepository) CreateTransaction(tx ledger.Transaction) (ledger.Transaction, error) {
	return repo.tbl.Create(tx), nil
}

func (repo *transactionRepository) QueryAllTransactions() ([]ledger.Transaction, error) {
	return repo.tbl.All(), nil
}

func (repo *transactionRepository) FilterTransactions(filter ledger.QueryFilter) ([]ledger.Transaction, error) {
	return repo.tbl.Filter(filter.Match), nil
}

func (repo *transactionRepository) GetTransactionByID(id int) (ledger.Transaction, error) {
	if tx, ok := repo.tbl.Get(id); ok {
		return tx, nil
	}
	return ledger.Transaction{}, ledger.ErrNotFound
}

func (repo *transactionRepository) UpdateTransaction(id int, ut ledger.UpdateTransaction) (ledger.Transaction, error) {
	if tx, ok := repo.tbl.Update(id, ut.Apply); ok {
		return tx, nil
	}
	return ledger.Transaction{}, ledger.ErrNotFound
}

func (repo *transactionRepository) DeleteTransaction(id int) error {
	if !repo.tbl.Delete(id) {
		return ledger.ErrNotFound
	}
	return nil
}
