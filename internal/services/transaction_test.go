package services

import (
	"context"
	"testing"
	"time"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/money"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionService(t *testing.T) (*TransactionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewTransactionService(db), mock
}

func expectAccountInWorkspace(mock pgxmock.PgxPoolIface, accountID, workspaceID uuid.UUID, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bank_accounts`).
		WithArgs(accountID, workspaceID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestTransactionService_Create(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	userID := uuid.New()
	transactionID := uuid.New()
	date := time.Now().Truncate(time.Second)
	now := time.Now()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)
	expectAccountInWorkspace(mock, accountID, workspaceID, true)

	rows := pgxmock.NewRows([]string{
		"id", "bank_account_id", "created_by", "title", "description",
		"amount_cents", "date", "type", "created_at", "updated_at",
	}).AddRow(transactionID, accountID, userID, "Groceries", nil,
		int64(15099), date, "EXPENSE", now, now)
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(accountID, userID, "Groceries", (*string)(nil), int64(15099), date, "EXPENSE").
		WillReturnRows(rows)

	tr, err := svc.Create(ctx, workspaceID, userID, CreateTransactionInput{
		Title:         "Groceries",
		Amount:        "150,99",
		Date:          date,
		Type:          models.TransactionExpense,
		BankAccountID: accountID,
	})

	require.NoError(t, err)
	assert.Equal(t, transactionID, tr.ID)
	assert.Equal(t, int64(15099), tr.AmountCents)
	assert.Equal(t, models.TransactionExpense, tr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Create_AccountOutsideWorkspace(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	userID := uuid.New()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)
	expectAccountInWorkspace(mock, accountID, workspaceID, false)

	_, err := svc.Create(ctx, workspaceID, userID, CreateTransactionInput{
		Title:         "Groceries",
		Amount:        "150,99",
		Date:          time.Now(),
		Type:          models.TransactionExpense,
		BankAccountID: accountID,
	})

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Create_InvalidAmount(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	userID := uuid.New()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)
	expectAccountInWorkspace(mock, accountID, workspaceID, true)

	_, err := svc.Create(ctx, workspaceID, userID, CreateTransactionInput{
		Title:         "Groceries",
		Amount:        "not a number",
		Date:          time.Now(),
		Type:          models.TransactionExpense,
		BankAccountID: accountID,
	})

	assert.ErrorIs(t, err, money.ErrInvalidAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func transactionListColumns() []string {
	return []string{
		"id", "bank_account_id", "created_by", "title", "description",
		"amount_cents", "date", "type", "created_at", "updated_at",
		"ba_id", "ba_name", "u_id", "u_name", "u_email",
	}
}

func TestTransactionService_List_FilterValidated(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	userID := uuid.New()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)
	expectAccountInWorkspace(mock, accountID, workspaceID, false)

	_, err := svc.List(ctx, workspaceID, userID, &accountID)

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_List(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)

	rows := pgxmock.NewRows(transactionListColumns()).
		AddRow(uuid.New(), accountID, userID, "Salary", nil,
			int64(500000), now, "INCOME", now, now,
			accountID, "Nubank", userID, "Gerald", "gerald@example.com").
		AddRow(uuid.New(), accountID, userID, "Groceries", nil,
			int64(15099), now.Add(-time.Hour), "EXPENSE", now, now,
			accountID, "Nubank", userID, "Gerald", "gerald@example.com")

	mock.ExpectQuery(`SELECT t.id, t.bank_account_id`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	transactions, err := svc.List(ctx, workspaceID, userID, nil)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionIncome, transactions[0].Type)
	require.NotNil(t, transactions[0].BankAccount)
	assert.Equal(t, "Nubank", transactions[0].BankAccount.Name)
	require.NotNil(t, transactions[0].CreatedBy)
	assert.Equal(t, "Gerald", transactions[0].CreatedBy.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Get_WrongWorkspace(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	transactionID := uuid.New()
	userID := uuid.New()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)

	mock.ExpectQuery(`SELECT t.id, t.bank_account_id`).
		WithArgs(transactionID, workspaceID).
		WillReturnRows(pgxmock.NewRows(transactionListColumns()))

	_, err := svc.Get(ctx, workspaceID, transactionID, userID)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Update_RepointValidatesAccount(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	oldAccountID := uuid.New()
	newAccountID := uuid.New()
	transactionID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)

	existing := pgxmock.NewRows(transactionListColumns()).
		AddRow(transactionID, oldAccountID, userID, "Groceries", nil,
			int64(15099), now, "EXPENSE", now, now,
			oldAccountID, "Nubank", userID, "Gerald", "gerald@example.com")
	mock.ExpectQuery(`SELECT t.id, t.bank_account_id`).
		WithArgs(transactionID, workspaceID).
		WillReturnRows(existing)

	expectAccountInWorkspace(mock, newAccountID, workspaceID, false)

	_, err := svc.Update(ctx, workspaceID, transactionID, userID, UpdateTransactionInput{
		BankAccountID: &newAccountID,
	})

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Update(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	transactionID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)

	existing := pgxmock.NewRows(transactionListColumns()).
		AddRow(transactionID, accountID, userID, "Groceries", nil,
			int64(15099), now, "EXPENSE", now, now,
			accountID, "Nubank", userID, "Gerald", "gerald@example.com")
	mock.ExpectQuery(`SELECT t.id, t.bank_account_id`).
		WithArgs(transactionID, workspaceID).
		WillReturnRows(existing)

	updated := pgxmock.NewRows([]string{
		"id", "bank_account_id", "created_by", "title", "description",
		"amount_cents", "date", "type", "created_at", "updated_at",
	}).AddRow(transactionID, accountID, userID, "Groceries", nil,
		int64(20000), now, "EXPENSE", now, now)
	mock.ExpectQuery(`UPDATE transactions`).
		WithArgs(accountID, "Groceries", (*string)(nil), int64(20000), pgxmock.AnyArg(), "EXPENSE", transactionID).
		WillReturnRows(updated)

	amount := "200.00"
	tr, err := svc.Update(ctx, workspaceID, transactionID, userID, UpdateTransactionInput{
		Amount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(20000), tr.AmountCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Delete(t *testing.T) {
	svc, mock := setupTransactionService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	accountID := uuid.New()
	transactionID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleMember)

	existing := pgxmock.NewRows(transactionListColumns()).
		AddRow(transactionID, accountID, userID, "Groceries", nil,
			int64(15099), now, "EXPENSE", now, now,
			accountID, "Nubank", userID, "Gerald", "gerald@example.com")
	mock.ExpectQuery(`SELECT t.id, t.bank_account_id`).
		WithArgs(transactionID, workspaceID).
		WillReturnRows(existing)

	mock.ExpectExec(`DELETE FROM transactions WHERE id`).
		WithArgs(transactionID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(ctx, workspaceID, transactionID, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
