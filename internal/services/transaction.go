package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TransactionService struct {
	db *database.DB
}

func NewTransactionService(db *database.DB) *TransactionService {
	return &TransactionService{db: db}
}

type CreateTransactionInput struct {
	Title         string
	Description   *string
	Amount        string
	Date          time.Time
	Type          models.TransactionType
	BankAccountID uuid.UUID
}

type UpdateTransactionInput struct {
	Title         *string
	Description   *string
	Amount        *string
	Date          *time.Time
	Type          *models.TransactionType
	BankAccountID *uuid.UUID
}

func (s *TransactionService) Create(ctx context.Context, workspaceID, userID uuid.UUID, input CreateTransactionInput) (*models.Transaction, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	if err := s.checkAccountInWorkspace(ctx, workspaceID, input.BankAccountID); err != nil {
		return nil, err
	}

	cents, err := money.ToCents(input.Amount)
	if err != nil {
		return nil, err
	}

	var tr models.Transaction
	var trType string
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO transactions (bank_account_id, created_by, title, description, amount_cents, date, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, bank_account_id, created_by, title, description, amount_cents, date, type, created_at, updated_at
	`, input.BankAccountID, userID, input.Title, input.Description, cents, input.Date, string(input.Type)).Scan(
		&tr.ID, &tr.BankAccountID, &tr.CreatedByID, &tr.Title, &tr.Description,
		&tr.AmountCents, &tr.Date, &trType, &tr.CreatedAt, &tr.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	tr.Type = models.TransactionType(trType)
	return &tr, nil
}

// List returns a workspace's transactions newest-first by their date. An
// optional bank-account filter is validated against the workspace before it
// is applied.
func (s *TransactionService) List(ctx context.Context, workspaceID, userID uuid.UUID, bankAccountID *uuid.UUID) ([]models.Transaction, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.bank_account_id, t.created_by, t.title, t.description,
		       t.amount_cents, t.date, t.type, t.created_at, t.updated_at,
		       ba.id, ba.name,
		       u.id, u.name, u.email
		FROM transactions t
		JOIN bank_accounts ba ON t.bank_account_id = ba.id
		JOIN users u ON t.created_by = u.id
		WHERE ba.workspace_id = $1`
	args := []any{workspaceID}

	if bankAccountID != nil {
		if err := s.checkAccountInWorkspace(ctx, workspaceID, *bankAccountID); err != nil {
			return nil, err
		}
		query += ` AND t.bank_account_id = $2`
		args = append(args, *bankAccountID)
	}
	query += ` ORDER BY t.date DESC`

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tr, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tr)
	}
	return transactions, rows.Err()
}

func (s *TransactionService) Get(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) (*models.Transaction, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, workspaceID, transactionID)
}

func (s *TransactionService) Update(ctx context.Context, workspaceID, transactionID, userID uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	existing, err := s.getScoped(ctx, workspaceID, transactionID)
	if err != nil {
		return nil, err
	}

	// a re-pointed transaction must stay inside the workspace
	if input.BankAccountID != nil && *input.BankAccountID != existing.BankAccountID {
		if err := s.checkAccountInWorkspace(ctx, workspaceID, *input.BankAccountID); err != nil {
			return nil, err
		}
		existing.BankAccountID = *input.BankAccountID
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = nilIfEmpty(*input.Description)
	}
	if input.Amount != nil {
		cents, err := money.ToCents(*input.Amount)
		if err != nil {
			return nil, err
		}
		existing.AmountCents = cents
	}
	if input.Date != nil {
		existing.Date = *input.Date
	}
	if input.Type != nil {
		existing.Type = *input.Type
	}

	var tr models.Transaction
	var trType string
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE transactions
		SET bank_account_id = $1, title = $2, description = $3, amount_cents = $4, date = $5, type = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, bank_account_id, created_by, title, description, amount_cents, date, type, created_at, updated_at
	`, existing.BankAccountID, existing.Title, existing.Description, existing.AmountCents,
		existing.Date, string(existing.Type), transactionID).Scan(
		&tr.ID, &tr.BankAccountID, &tr.CreatedByID, &tr.Title, &tr.Description,
		&tr.AmountCents, &tr.Date, &trType, &tr.CreatedAt, &tr.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	tr.Type = models.TransactionType(trType)
	return &tr, nil
}

func (s *TransactionService) Delete(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) error {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return err
	}

	if _, err := s.getScoped(ctx, workspaceID, transactionID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	return err
}

// getScoped resolves a transaction through its bank account's workspace so
// cross-workspace ids behave like missing ones.
func (s *TransactionService) getScoped(ctx context.Context, workspaceID, transactionID uuid.UUID) (*models.Transaction, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.bank_account_id, t.created_by, t.title, t.description,
		       t.amount_cents, t.date, t.type, t.created_at, t.updated_at,
		       ba.id, ba.name,
		       u.id, u.name, u.email
		FROM transactions t
		JOIN bank_accounts ba ON t.bank_account_id = ba.id
		JOIN users u ON t.created_by = u.id
		WHERE t.id = $1 AND ba.workspace_id = $2
	`, transactionID, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrTransactionNotFound
	}
	return scanTransactionRow(rows)
}

func (s *TransactionService) checkAccountInWorkspace(ctx context.Context, workspaceID, accountID uuid.UUID) error {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bank_accounts WHERE id = $1 AND workspace_id = $2)
	`, accountID, workspaceID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check bank account: %w", err)
	}
	if !exists {
		return ErrAccountNotFound
	}
	return nil
}

func scanTransactionRow(rows pgx.Rows) (*models.Transaction, error) {
	var tr models.Transaction
	var account models.BankAccount
	var creator models.User
	var trType string
	if err := rows.Scan(
		&tr.ID, &tr.BankAccountID, &tr.CreatedByID, &tr.Title, &tr.Description,
		&tr.AmountCents, &tr.Date, &trType, &tr.CreatedAt, &tr.UpdatedAt,
		&account.ID, &account.Name,
		&creator.ID, &creator.Name, &creator.Email,
	); err != nil {
		return nil, err
	}
	tr.Type = models.TransactionType(trType)
	tr.BankAccount = &account
	tr.CreatedBy = &creator
	return &tr, nil
}
