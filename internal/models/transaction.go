package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	CreatedByID   uuid.UUID       `json:"created_by_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	AmountCents   int64           `json:"amount_cents"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	BankAccount   *BankAccount    `json:"bank_account,omitempty"`
	CreatedBy     *User           `json:"created_by,omitempty"`
}
