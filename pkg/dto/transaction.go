package dto

import "github.com/google/uuid"

type CreateTransactionRequest struct {
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Amount        string    `json:"amount"`
	Date          string    `json:"date"`
	Type          string    `json:"type"`
	BankAccountID uuid.UUID `json:"bank_account_id"`
}

type UpdateTransactionRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Amount        *string    `json:"amount,omitempty"`
	Date          *string    `json:"date,omitempty"`
	Type          *string    `json:"type,omitempty"`
	BankAccountID *uuid.UUID `json:"bank_account_id,omitempty"`
}

type TransactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	BankAccountID uuid.UUID        `json:"bank_account_id"`
	Title         string           `json:"title"`
	Description   *string          `json:"description,omitempty"`
	AmountCents   int64            `json:"amount_cents"`
	Date          string           `json:"date"`
	Type          string           `json:"type"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	BankAccount   *AccountResponse `json:"bank_account,omitempty"`
	CreatedBy     *UserResponse    `json:"created_by,omitempty"`
}
