package dto

import "github.com/google/uuid"

type CreateAccountRequest struct {
	Name           string     `json:"name"`
	InitialBalance *string    `json:"initial_balance,omitempty"`
	Agency         *string    `json:"agency,omitempty"`
	AccountNumber  *string    `json:"account_number,omitempty"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
}

type UpdateAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	InitialBalance *string `json:"initial_balance,omitempty"`
	Agency         *string `json:"agency,omitempty"`
	AccountNumber  *string `json:"account_number,omitempty"`
}

type AccountResponse struct {
	ID                  uuid.UUID  `json:"id"`
	WorkspaceID         uuid.UUID  `json:"workspace_id"`
	OwnerID             *uuid.UUID `json:"owner_id,omitempty"`
	Name                string     `json:"name"`
	InitialBalanceCents *int64     `json:"initial_balance_cents,omitempty"`
	Agency              *string    `json:"agency,omitempty"`
	AccountNumber       *string    `json:"account_number,omitempty"`
	CreatedAt           string     `json:"created_at"`
	UpdatedAt           string     `json:"updated_at"`
}
