package models

import (
	"time"

	"github.com/google/uuid"
)

type BankAccount struct {
	ID                  uuid.UUID  `json:"id"`
	WorkspaceID         uuid.UUID  `json:"workspace_id"`
	OwnerID             *uuid.UUID `json:"owner_id,omitempty"`
	Name                string     `json:"name"`
	InitialBalanceCents *int64     `json:"initial_balance_cents,omitempty"`
	Agency              *string    `json:"agency,omitempty"`
	AccountNumber       *string    `json:"account_number,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
