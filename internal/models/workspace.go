package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceRole is the closed set of roles a member can hold inside a
// workspace. Privilege order: OWNER > ADMIN > MEMBER = VIEWER.
type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "OWNER"
	RoleAdmin  WorkspaceRole = "ADMIN"
	RoleMember WorkspaceRole = "MEMBER"
	RoleViewer WorkspaceRole = "VIEWER"
)

func (r WorkspaceRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Level maps a role to its privilege rank for comparisons. MEMBER and
// VIEWER share the lowest rank.
func (r WorkspaceRole) Level() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	default:
		return 1
	}
}

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusDeclined InviteStatus = "DECLINED"
)

type Workspace struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WorkspaceMember struct {
	ID          uuid.UUID     `json:"id"`
	WorkspaceID uuid.UUID     `json:"workspace_id"`
	UserID      uuid.UUID     `json:"user_id"`
	Role        WorkspaceRole `json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`
	User        *User         `json:"user,omitempty"`
}

type WorkspaceInvite struct {
	ID          uuid.UUID     `json:"id"`
	WorkspaceID uuid.UUID     `json:"workspace_id"`
	SenderID    uuid.UUID     `json:"sender_id"`
	Email       string        `json:"email"`
	Role        WorkspaceRole `json:"role"`
	Token       string        `json:"-"`
	Message     *string       `json:"message,omitempty"`
	Status      InviteStatus  `json:"status"`
	ExpiresAt   time.Time     `json:"expires_at"`
	AcceptedAt  *time.Time    `json:"accepted_at,omitempty"`
	AcceptedBy  *uuid.UUID    `json:"accepted_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Workspace   *Workspace    `json:"workspace,omitempty"`
	Sender      *User         `json:"sender,omitempty"`
}
