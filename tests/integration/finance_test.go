package integration

import (
	"context"
	"testing"
	"time"

	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/gerald0n/finmoni-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Integration_CreateAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAccountService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	workspace := fixtures.CreateWorkspace(t, owner, "Family Budget")

	balance := "1.234,56"
	account, err := svc.Create(ctx, workspace.ID, owner.ID, services.CreateAccountInput{
		Name:           "Nubank",
		InitialBalance: &balance,
	})
	require.NoError(t, err)
	require.NotNil(t, account.InitialBalanceCents)
	assert.Equal(t, int64(123456), *account.InitialBalanceCents)

	accounts, err := svc.List(ctx, workspace.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Nubank", accounts[0].Name)
}

func TestAccountService_Integration_WorkspaceScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewAccountService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	workspaceA := fixtures.CreateWorkspace(t, owner, "Workspace A")
	workspaceB := fixtures.CreateWorkspace(t, owner, "Workspace B")
	account := fixtures.CreateBankAccount(t, workspaceA.ID, "Nubank")

	// An account is only reachable through its own workspace
	_, err := svc.Get(ctx, workspaceB.ID, account.ID, owner.ID)
	assert.ErrorIs(t, err, services.ErrAccountNotFound)

	got, err := svc.Get(ctx, workspaceA.ID, account.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestTransactionService_Integration_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTransactionService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	workspace := fixtures.CreateWorkspace(t, owner, "Family Budget")
	account := fixtures.CreateBankAccount(t, workspace.ID, "Nubank")

	date := time.Now().UTC().Truncate(time.Second)
	transaction, err := svc.Create(ctx, workspace.ID, owner.ID, services.CreateTransactionInput{
		Title:         "Groceries",
		Amount:        "150,99",
		Date:          date,
		Type:          models.TransactionExpense,
		BankAccountID: account.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15099), transaction.AmountCents)
	assert.Equal(t, models.TransactionExpense, transaction.Type)

	newAmount := "200.00"
	updated, err := svc.Update(ctx, workspace.ID, transaction.ID, owner.ID, services.UpdateTransactionInput{
		Amount: &newAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), updated.AmountCents)
	assert.Equal(t, "Groceries", updated.Title)

	err = svc.Delete(ctx, workspace.ID, transaction.ID, owner.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, workspace.ID, transaction.ID, owner.ID)
	assert.ErrorIs(t, err, services.ErrTransactionNotFound)
}

func TestTransactionService_Integration_AccountMustBelongToWorkspace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTransactionService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	workspaceA := fixtures.CreateWorkspace(t, owner, "Workspace A")
	workspaceB := fixtures.CreateWorkspace(t, owner, "Workspace B")
	foreignAccount := fixtures.CreateBankAccount(t, workspaceB.ID, "Itau")

	_, err := svc.Create(ctx, workspaceA.ID, owner.ID, services.CreateTransactionInput{
		Title:         "Groceries",
		Amount:        "10,00",
		Date:          time.Now(),
		Type:          models.TransactionExpense,
		BankAccountID: foreignAccount.ID,
	})
	assert.ErrorIs(t, err, services.ErrAccountNotFound)
}

func TestTransactionService_Integration_ListFilterByAccount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTransactionService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	workspace := fixtures.CreateWorkspace(t, owner, "Family Budget")
	accountA := fixtures.CreateBankAccount(t, workspace.ID, "Nubank")
	accountB := fixtures.CreateBankAccount(t, workspace.ID, "Itau")

	_, err := svc.Create(ctx, workspace.ID, owner.ID, services.CreateTransactionInput{
		Title: "Salary", Amount: "5000,00", Date: time.Now(),
		Type: models.TransactionIncome, BankAccountID: accountA.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, workspace.ID, owner.ID, services.CreateTransactionInput{
		Title: "Rent", Amount: "1500,00", Date: time.Now(),
		Type: models.TransactionExpense, BankAccountID: accountB.ID,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, workspace.ID, owner.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := svc.List(ctx, workspace.ID, owner.ID, &accountA.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, "Salary", onlyA[0].Title)
}
