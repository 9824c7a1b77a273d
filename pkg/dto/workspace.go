package dto

import "github.com/google/uuid"

type CreateWorkspaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

type MemberResponse struct {
	ID       uuid.UUID    `json:"id"`
	UserID   uuid.UUID    `json:"user_id"`
	Role     string       `json:"role"`
	JoinedAt string       `json:"joined_at"`
	User     UserResponse `json:"user"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}
