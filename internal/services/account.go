package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AccountService struct {
	db *database.DB
}

func NewAccountService(db *database.DB) *AccountService {
	return &AccountService{db: db}
}

// CreateAccountInput and UpdateAccountInput carry monetary amounts as
// decimal strings. On update, a nil InitialBalance leaves the stored value
// unchanged while an empty string clears it to NULL.
type CreateAccountInput struct {
	Name           string
	InitialBalance *string
	Agency         *string
	AccountNumber  *string
	OwnerID        *uuid.UUID
}

type UpdateAccountInput struct {
	Name           *string
	InitialBalance *string
	Agency         *string
	AccountNumber  *string
}

func (s *AccountService) Create(ctx context.Context, workspaceID, userID uuid.UUID, input CreateAccountInput) (*models.BankAccount, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	var balanceCents *int64
	if input.InitialBalance != nil && *input.InitialBalance != "" {
		cents, err := money.ToCents(*input.InitialBalance)
		if err != nil {
			return nil, err
		}
		balanceCents = &cents
	}

	var account models.BankAccount
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO bank_accounts (workspace_id, owner_id, name, initial_balance_cents, agency, account_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, workspace_id, owner_id, name, initial_balance_cents, agency, account_number, created_at, updated_at
	`, workspaceID, input.OwnerID, input.Name, balanceCents, input.Agency, input.AccountNumber).Scan(
		&account.ID, &account.WorkspaceID, &account.OwnerID, &account.Name,
		&account.InitialBalanceCents, &account.Agency, &account.AccountNumber,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	return &account, nil
}

func (s *AccountService) List(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.BankAccount, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id, owner_id, name, initial_balance_cents, agency, account_number, created_at, updated_at
		FROM bank_accounts
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var account models.BankAccount
		if err := rows.Scan(
			&account.ID, &account.WorkspaceID, &account.OwnerID, &account.Name,
			&account.InitialBalanceCents, &account.Agency, &account.AccountNumber,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *AccountService) Get(ctx context.Context, workspaceID, accountID, userID uuid.UUID) (*models.BankAccount, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, workspaceID, accountID)
}

func (s *AccountService) Update(ctx context.Context, workspaceID, accountID, userID uuid.UUID, input UpdateAccountInput) (*models.BankAccount, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	account, err := s.getScoped(ctx, workspaceID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Agency != nil {
		account.Agency = nilIfEmpty(*input.Agency)
	}
	if input.AccountNumber != nil {
		account.AccountNumber = nilIfEmpty(*input.AccountNumber)
	}
	if input.InitialBalance != nil {
		if *input.InitialBalance == "" {
			account.InitialBalanceCents = nil
		} else {
			cents, err := money.ToCents(*input.InitialBalance)
			if err != nil {
				return nil, err
			}
			account.InitialBalanceCents = &cents
		}
	}

	var updated models.BankAccount
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE bank_accounts
		SET name = $1, initial_balance_cents = $2, agency = $3, account_number = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, workspace_id, owner_id, name, initial_balance_cents, agency, account_number, created_at, updated_at
	`, account.Name, account.InitialBalanceCents, account.Agency, account.AccountNumber, accountID).Scan(
		&updated.ID, &updated.WorkspaceID, &updated.OwnerID, &updated.Name,
		&updated.InitialBalanceCents, &updated.Agency, &updated.AccountNumber,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}
	return &updated, nil
}

func (s *AccountService) Delete(ctx context.Context, workspaceID, accountID, userID uuid.UUID) error {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return err
	}

	if _, err := s.getScoped(ctx, workspaceID, accountID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1`, accountID)
	return err
}

// getScoped resolves an account strictly within one workspace; a hit in a
// different workspace is indistinguishable from no account at all.
func (s *AccountService) getScoped(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.BankAccount, error) {
	var account models.BankAccount
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, owner_id, name, initial_balance_cents, agency, account_number, created_at, updated_at
		FROM bank_accounts
		WHERE id = $1 AND workspace_id = $2
	`, accountID, workspaceID).Scan(
		&account.ID, &account.WorkspaceID, &account.OwnerID, &account.Name,
		&account.InitialBalanceCents, &account.Agency, &account.AccountNumber,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up bank account: %w", err)
	}
	return &account, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
