package dto

import "github.com/google/uuid"

type InviteMemberRequest struct {
	Email   string  `json:"email"`
	Role    string  `json:"role,omitempty"`
	Message *string `json:"message,omitempty"`
}

type RespondInviteRequest struct {
	Token string `json:"token"`
}

type InviteResponse struct {
	ID          uuid.UUID          `json:"id"`
	WorkspaceID uuid.UUID          `json:"workspace_id"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Token       string             `json:"token,omitempty"`
	Message     *string            `json:"message,omitempty"`
	Status      string             `json:"status"`
	ExpiresAt   string             `json:"expires_at"`
	CreatedAt   string             `json:"created_at"`
	Workspace   *WorkspaceResponse `json:"workspace,omitempty"`
	Sender      *UserResponse      `json:"sender,omitempty"`
}
