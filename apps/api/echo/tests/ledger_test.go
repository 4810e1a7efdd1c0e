package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
)

func (app *testApp) createTransaction(t *testing.T, date, desc, category, typ, amount string) ledger.Transaction {
	t.Helper()
	body := fmt.Sprintf(
		`{"date":%q,"description":%q,"category":%q,"type":%q,"amount":%s}`,
		date, desc, category, typ, amount,
	)
	var tx ledger.Transaction
	rec := app.serve(t, http.MethodPost, "/api/transactions", app.userToken, []byte(body), &tx)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return tx
}

func TestCreateTransaction(t *testing.T) {
	app := setup(t)

	valid := []byte(`{"date":"2023-09-01","description":"  Uang kas  ","category":"Dues","type":"income","amount":"1000"}`)

	tests := []httpTest{
		{
			name:     "no session",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     valid,
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     []byte(`{}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"date":        "this field is required",
				"description": "this field is required",
				"category":    "this field is required",
				"type":        "this field is required",
				"amount":      "this field is required",
			}),
		},
		{
			name:     "unknown category",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     []byte(`{"date":"2023-09-01","description":"lunch","category":"food","type":"expense","amount":10}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"category": "category must be one of: dues, donation, event, supplies, study, printing, other",
			}),
		},
		{
			name:     "bad amount",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     []byte(`{"date":"2023-09-01","description":"x","category":"dues","type":"income","amount":"-5"}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": ledger.ErrInvalidAmount.Error()}),
		},
		{
			name:     "amount over the maximum",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     []byte(`{"date":"2023-09-01","description":"x","category":"supplies","type":"expense","amount":"1000000000000000"}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": ledger.ErrInvalidAmount.Error()}),
		},
		{
			name:     "bad date",
			method:   http.MethodPost,
			path:     "/api/transactions",
			body:     []byte(`{"date":"01/09/2023","description":"x","category":"dues","type":"income","amount":1}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "invalid date, expected YYYY-MM-DD"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("valid", func(t *testing.T) {
		var tx ledger.Transaction
		rec := app.serve(t, http.MethodPost, "/api/transactions", app.userToken, valid, &tx)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		assert.NotZero(t, tx.ID)
		assert.Equal(t, "2023-09-01", tx.Date.String())
		assert.Equal(t, "Uang kas", tx.Description)
		assert.Equal(t, ledger.CategoryDues, tx.Category)
		assert.Equal(t, ledger.Money(100000), tx.Amount)
		assert.Equal(t, ledger.StatusCompleted, tx.Status)
		assert.False(t, tx.CreatedAt.IsZero())
	})
}

func TestQueryTransactions(t *testing.T) {
	app := setup(t)
	dues := app.createTransaction(t, "2023-08-01", "August dues", "dues", "income", "500")
	paper := app.createTransaction(t, "2023-09-05", "Paper", "supplies", "expense", "120.50")
	prints := app.createTransaction(t, "2023-09-10", "Handout prints", "printing", "expense", "40")

	tests := []httpTest{
		{
			name:     "newest first by default",
			method:   http.MethodGet,
			path:     "/api/transactions",
			wantCode: http.StatusOK,
			wantData: marchallList(t, prints, paper, dues),
		},
		{
			name:     "filter by type",
			method:   http.MethodGet,
			path:     "/api/transactions?type=expense&ordering=amount",
			wantCode: http.StatusOK,
			wantData: marchallList(t, prints, paper),
		},
		{
			name:     "filter by date range",
			method:   http.MethodGet,
			path:     "/api/transactions?from=2023-09-01&to=2023-09-06",
			wantCode: http.StatusOK,
			wantData: marchallList(t, paper),
		},
		{
			name:     "search",
			method:   http.MethodGet,
			path:     "/api/transactions?search=AUGUST",
			wantCode: http.StatusOK,
			wantData: marchallList(t, dues),
		},
		{
			name:     "malformed date filters",
			method:   http.MethodGet,
			path:     "/api/transactions?from=yesterday&to=2023-13-01",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"from": "invalid date, expected YYYY-MM-DD",
				"to":   "invalid date, expected YYYY-MM-DD",
			}),
		},
		{
			name:     "no match",
			method:   http.MethodGet,
			path:     "/api/transactions?category=study",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "descending amount",
			method:   http.MethodGet,
			path:     "/api/transactions?ordering=-amount",
			wantCode: http.StatusOK,
			wantData: marchallList(t, dues, paper, prints),
		},
		{
			name:     "invalid ordering",
			method:   http.MethodGet,
			path:     "/api/transactions?ordering=-foo",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"ordering": "cannot order by foo"}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     fmt.Sprintf("/api/transactions/%d", paper.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, paper),
		},
		{
			name:     "non integer id",
			method:   http.MethodGet,
			path:     "/api/transactions/abc",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFnd),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	app := setup(t)
	tx := app.createTransaction(t, "2023-09-05", "Paper", "supplies", "expense", "120")
	path := fmt.Sprintf("/api/transactions/%d", tx.ID)

	updated := tx
	updated.Amount = 1250
	updated.Status = ledger.StatusPending

	recategorized := updated
	recategorized.Category = ledger.CategoryPrinting
	recategorized.Type = ledger.TypeIncome

	tests := []httpTest{
		{
			name:     "no session",
			method:   http.MethodPut,
			path:     path,
			body:     []byte(`{"amount":"12.5"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
		{
			name:     "unknown id",
			method:   http.MethodPut,
			path:     "/api/transactions/999",
			body:     []byte(`{"amount":"12.5"}`),
			token:    app.userToken,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFnd),
		},
		{
			name:     "blank description",
			method:   http.MethodPut,
			path:     path,
			body:     []byte(`{"description":"   "}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"description": "this field cannot be blank"}),
		},
		{
			name:     "partial update",
			method:   http.MethodPut,
			path:     path,
			body:     []byte(`{"amount":"12.5","status":"pending"}`),
			token:    app.userToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, updated),
		},
		{
			name:     "enums are case insensitive",
			method:   http.MethodPut,
			path:     path,
			body:     []byte(`{"category":"Printing","type":"Income","status":"PENDING"}`),
			token:    app.userToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, recategorized),
		},
		{
			name:     "amount over the maximum",
			method:   http.MethodPut,
			path:     path,
			body:     []byte(`{"amount":100000000}`),
			token:    app.userToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": ledger.ErrInvalidAmount.Error()}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     path,
			token:    app.userToken,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "deleted",
			method:   http.MethodGet,
			path:     path,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFnd),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}
}

func TestFinanceReports(t *testing.T) {
	app := setup(t)

	t.Run("empty ledger", func(t *testing.T) {
		app.run(t, httpTest{
			method:   http.MethodGet,
			path:     "/api/finance/summary",
			wantCode: http.StatusOK,
			wantData: []byte(`{"totalIncome":0,"totalExpense":0,"balance":0}`),
		})
		app.run(t, httpTest{
			method:   http.MethodGet,
			path:     "/api/finance/breakdown",
			wantCode: http.StatusOK,
			wantData: []byte(`{"categories":[],"percentages":[],"amounts":[]}`),
		})
	})

	app.createTransaction(t, "2023-08-20", "Dues", "dues", "income", "1000")
	app.createTransaction(t, "2023-09-02", "Markers", "supplies", "expense", "300")
	app.createTransaction(t, "2023-09-03", "Prints", "printing", "expense", "700")

	tests := []httpTest{
		{
			name:     "summary",
			method:   http.MethodGet,
			path:     "/api/finance/summary",
			wantCode: http.StatusOK,
			wantData: []byte(`{"totalIncome":1000,"totalExpense":1000,"balance":0}`),
		},
		{
			name:     "breakdown",
			method:   http.MethodGet,
			path:     "/api/finance/breakdown",
			wantCode: http.StatusOK,
			wantData: []byte(`{"categories":["supplies","printing"],"percentages":[30,70],"amounts":[300,700]}`),
		},
		{
			name:     "monthly",
			method:   http.MethodGet,
			path:     "/api/finance/monthly?months=3&ref=2023-09-15",
			wantCode: http.StatusOK,
			wantData: []byte(`{"labels":["Jul 2023","Aug 2023","Sep 2023"],"income":[0,1000,0],"expense":[0,0,1000]}`),
		},
		{
			name:     "months out of range",
			method:   http.MethodGet,
			path:     "/api/finance/monthly?months=37",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"months": "must be a number between 1 and 36"}),
		},
		{
			name:     "months not a number",
			method:   http.MethodGet,
			path:     "/api/finance/monthly?months=six",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"months": "must be a number between 1 and 36"}),
		},
		{
			name:     "bad ref",
			method:   http.MethodGet,
			path:     "/api/finance/monthly?ref=yesterday",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"ref": "invalid date, expected YYYY-MM-DD"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("default window", func(t *testing.T) {
		var series ledger.MonthlySeries
		rec := app.serve(t, http.MethodGet, "/api/finance/monthly", "", nil, &series)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, series.Labels, ledger.DefaultWindow)
		assert.Len(t, series.Income, ledger.DefaultWindow)
		assert.Len(t, series.Expense, ledger.DefaultWindow)
	})
}

func TestFinanceReportsAtMaximumAmounts(t *testing.T) {
	app := setup(t)
	app.createTransaction(t, "2023-09-01", "Big grant", "donation", "income", "99999999.99")
	app.createTransaction(t, "2023-09-02", "Bigger grant", "donation", "income", "99999999.99")
	app.createTransaction(t, "2023-09-03", "Lab kit", "supplies", "expense", "99999999.99")

	tests := []httpTest{
		{
			name:     "summary",
			method:   http.MethodGet,
			path:     "/api/finance/summary",
			wantCode: http.StatusOK,
			wantData: []byte(`{"totalIncome":199999999.98,"totalExpense":99999999.99,"balance":99999999.99}`),
		},
		{
			name:     "breakdown",
			method:   http.MethodGet,
			path:     "/api/finance/breakdown",
			wantCode: http.StatusOK,
			wantData: []byte(`{"categories":["supplies"],"percentages":[100],"amounts":[99999999.99]}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}
}
